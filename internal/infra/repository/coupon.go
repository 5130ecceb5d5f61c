package repository

import (
	"context"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"

	"github.com/google/uuid"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

// IncrementUsage upserts the per-user usage row. The guard on the update arm
// rejects the increment once the per-user limit is reached, which surfaces to
// the caller as zero rows affected.
func (r *CouponRepository) IncrementUsage(ctx context.Context, userID, couponID uuid.UUID, perUserLimit int, now time.Time) (bool, error) {
	query := `
		INSERT INTO coupon_usages (user_id, coupon_id, usage_count, last_used_at)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (user_id, coupon_id) DO UPDATE
		SET usage_count = coupon_usages.usage_count + 1, last_used_at = $3
		WHERE coupon_usages.usage_count < $4
	`

	tag, err := r.db.Exec(ctx, query, userID, couponID, now, perUserLimit)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementTotalUsed bumps the global counter, guarded against the global
// limit in the same statement so concurrent redemptions cannot overshoot.
func (r *CouponRepository) IncrementTotalUsed(ctx context.Context, couponID uuid.UUID) (bool, error) {
	query := `
		UPDATE coupons SET total_used = total_used + 1
		WHERE id = $1 AND (global_limit IS NULL OR total_used < global_limit)
	`

	tag, err := r.db.Exec(ctx, query, couponID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon total", err)
	}
	return tag.RowsAffected() > 0, nil
}
