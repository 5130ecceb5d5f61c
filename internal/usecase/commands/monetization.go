package commands

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/coupon"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/errs"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrCouponInvalid = errs.New("coupon is not valid")

// MonetizationDecision is the gate's answer for a prospective request.
type MonetizationDecision struct {
	PaymentRequired bool
	PriceCents      int64
}

// MonetizationGate decides whether a new request must be backed by a payment.
// Payment is always required unless a coupon covers the request; the legacy
// free tier is the intake's concern, not the gate's.
type MonetizationGate struct {
	billing config.BillingConfig
}

func NewMonetizationGate(billing config.BillingConfig) *MonetizationGate {
	return &MonetizationGate{billing: billing}
}

func (g *MonetizationGate) Decide(_ uuid.UUID) MonetizationDecision {
	return MonetizationDecision{
		PaymentRequired: true,
		PriceCents:      g.billing.PricePerInterviewCents,
	}
}

// CouponValidation mirrors the ledger's validate contract: a verdict, the
// user's remaining redemptions and a human-readable reason on failure.
type CouponValidation struct {
	Valid         bool
	RemainingUses int
	Message       string
	Coupon        *coupon.Coupon
	UsageCount    int
}

// CouponLedger owns every mutation of the shared redemption counters.
type CouponLedger struct {
	clock clock.Clock
}

func NewCouponLedger(clk clock.Clock) *CouponLedger {
	return &CouponLedger{clock: clk}
}

// Validate runs the redemption checks without mutating anything.
func (l *CouponLedger) Validate(ctx context.Context, reads shared.CommandReads, code string, userID uuid.UUID) (*CouponValidation, error) {
	snap, err := reads.CouponByCode(ctx, coupon.NormalizeCode(code))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &CouponValidation{Valid: false, Message: "coupon not found"}, nil
		}
		return nil, err
	}

	coup, err := coupon.New(snap.ID, snap.Code, snap.PerUserLimit, snap.GlobalLimit, snap.TotalUsed, snap.IsActive, snap.ExpiresAt)
	if err != nil {
		return nil, err
	}

	usageCount := 0
	usage, err := reads.CouponUsage(ctx, userID, snap.ID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
	} else {
		usageCount = usage.UsageCount
	}

	if verr := coup.Validate(l.clock.Now(), usageCount); verr != nil {
		return &CouponValidation{
			Valid:         false,
			RemainingUses: coup.RemainingUses(usageCount),
			Message:       verr.Error(),
			Coupon:        coup,
			UsageCount:    usageCount,
		}, nil
	}

	return &CouponValidation{
		Valid:         true,
		RemainingUses: coup.RemainingUses(usageCount),
		Message:       "ok",
		Coupon:        coup,
		UsageCount:    usageCount,
	}, nil
}

// Redeem re-validates inside the transaction (never trusting an earlier
// verdict) and applies both counter increments. It must only run inside the
// same transaction as the request creation the redemption pays for.
func (l *CouponLedger) Redeem(ctx context.Context, tx shared.Tx, code string, userID uuid.UUID) (*coupon.Coupon, error) {
	validation, err := l.Validate(ctx, tx.Reads(), code, userID)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, errs.Mark(errs.Newf("coupon rejected: %s", validation.Message), ErrCouponInvalid)
	}

	coup := validation.Coupon

	ok, err := tx.Coupons().IncrementUsage(ctx, userID, coup.ID(), coup.PerUserLimit(), l.clock.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Mark(errs.New("coupon rejected: per-user usage limit reached"), ErrCouponInvalid)
	}

	ok, err = tx.Coupons().IncrementTotalUsed(ctx, coup.ID())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Mark(errs.New("coupon rejected: global usage limit reached"), ErrCouponInvalid)
	}

	return coup, nil
}
