package coupon

import (
	"strings"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCouponInactive      = errs.New("coupon is not active")
	ErrCouponExpired       = errs.New("coupon has expired")
	ErrCouponExhausted     = errs.New("coupon global usage limit reached")
	ErrCouponUserLimit     = errs.New("coupon per-user usage limit reached")
	ErrInvalidPerUserLimit = errs.New("per-user limit must be positive")
)

// NormalizeCode canonicalizes a user-supplied code; lookups and storage
// always use the normalized form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Coupon is the shared discount ledger head: limits plus the global counter.
// Per-user counters live in CouponUsage rows keyed by (userID, couponID).
type Coupon struct {
	id           uuid.UUID
	code         string
	perUserLimit int
	globalLimit  *int
	totalUsed    int
	isActive     bool
	expiresAt    *time.Time
}

func New(id uuid.UUID, code string, perUserLimit int, globalLimit *int, totalUsed int, isActive bool, expiresAt *time.Time) (*Coupon, error) {
	if perUserLimit <= 0 {
		return nil, ErrInvalidPerUserLimit
	}
	return &Coupon{
		id:           id,
		code:         NormalizeCode(code),
		perUserLimit: perUserLimit,
		globalLimit:  globalLimit,
		totalUsed:    totalUsed,
		isActive:     isActive,
		expiresAt:    expiresAt,
	}, nil
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() string          { return c.code }
func (c *Coupon) PerUserLimit() int     { return c.perUserLimit }
func (c *Coupon) GlobalLimit() *int     { return c.globalLimit }
func (c *Coupon) TotalUsed() int        { return c.totalUsed }
func (c *Coupon) IsActive() bool        { return c.isActive }
func (c *Coupon) ExpiresAt() *time.Time { return c.expiresAt }

// Validate applies the redemption checks in order, short-circuiting on the
// first failure: active → not expired → global limit → per-user limit.
// usageCount is the caller's current count from the matching usage row.
func (c *Coupon) Validate(now time.Time, usageCount int) error {
	if !c.isActive {
		return ErrCouponInactive
	}
	if c.expiresAt != nil && !c.expiresAt.After(now) {
		return ErrCouponExpired
	}
	if c.globalLimit != nil && c.totalUsed >= *c.globalLimit {
		return ErrCouponExhausted
	}
	if usageCount >= c.perUserLimit {
		return ErrCouponUserLimit
	}
	return nil
}

// RemainingUses is how many redemptions the user has left, never negative.
func (c *Coupon) RemainingUses(usageCount int) int {
	remaining := c.perUserLimit - usageCount
	if remaining < 0 {
		return 0
	}
	return remaining
}
