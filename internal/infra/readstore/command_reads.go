package readstore

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/repository"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the write side's validation lookups. It runs against
// whatever DBTX it is built on, so the same code backs both the pool-level
// reads and the in-transaction reads.
type CommandReads struct {
	db         db.DBTX
	interviews *repository.InterviewRepository
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{
		db:         dbtx,
		interviews: repository.NewInterviewRepository(dbtx),
	}
}

func (r *CommandReads) InterviewByID(ctx context.Context, id uuid.UUID) (*interview.Interview, error) {
	return r.interviews.FindByID(ctx, id)
}

func (r *CommandReads) JobSeekerByID(ctx context.Context, userID uuid.UUID) (*shared.JobSeekerSnapshot, error) {
	query := `
		SELECT p.user_id, p.free_interviews_used, p.total_interviews, p.average_rating
		FROM job_seeker_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND u.role = 'job_seeker'
	`

	var snap shared.JobSeekerSnapshot
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&snap.UserID, &snap.FreeInterviewsUsed, &snap.TotalInterviews, &snap.AverageRating,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("job seeker not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find job seeker", err)
	}
	return &snap, nil
}

func (r *CommandReads) InterviewerByID(ctx context.Context, userID uuid.UUID) (*shared.InterviewerSnapshot, error) {
	query := `
		SELECT p.user_id, p.is_approved, p.expertise, p.earnings_cents, p.interviews_completed
		FROM interviewer_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND u.role = 'interviewer'
	`

	var snap shared.InterviewerSnapshot
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&snap.UserID, &snap.IsApproved, &snap.Expertise, &snap.EarningsCents, &snap.InterviewsCompleted,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("interviewer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find interviewer", err)
	}
	return &snap, nil
}

func (r *CommandReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	query := `
		SELECT id, code, per_user_limit, global_limit, total_used, is_active, expires_at
		FROM coupons WHERE code = $1
	`

	var snap shared.CouponSnapshot
	err := r.db.QueryRow(ctx, query, code).Scan(
		&snap.ID, &snap.Code, &snap.PerUserLimit, &snap.GlobalLimit,
		&snap.TotalUsed, &snap.IsActive, &snap.ExpiresAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon", err)
	}
	return &snap, nil
}

func (r *CommandReads) CouponUsage(ctx context.Context, userID, couponID uuid.UUID) (*shared.CouponUsageSnapshot, error) {
	query := `
		SELECT user_id, coupon_id, usage_count, last_used_at
		FROM coupon_usages WHERE user_id = $1 AND coupon_id = $2
	`

	var snap shared.CouponUsageSnapshot
	err := r.db.QueryRow(ctx, query, userID, couponID).Scan(
		&snap.UserID, &snap.CouponID, &snap.UsageCount, &snap.LastUsedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon usage not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon usage", err)
	}
	return &snap, nil
}

func (r *CommandReads) ApprovedInterviewerIDsBySkills(ctx context.Context, skills []string) ([]uuid.UUID, error) {
	query := `
		SELECT user_id FROM interviewer_profiles
		WHERE is_approved = true AND expertise && $1::text[]
	`

	rows, err := r.db.Query(ctx, query, skills)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list matching interviewers", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interviewer id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate interviewer ids", err)
	}
	return ids, nil
}
