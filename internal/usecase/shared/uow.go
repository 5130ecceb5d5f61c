package shared

import (
	"context"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the transactional boundary for every multi-write operation:
// coupon redemption + request creation, claim, completion + settlement.
type UnitOfWork interface {
	// Within: full read-write transaction with retry on serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single statement operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// Interviews: pool-backed repository for best-effort single writes that
	// must not ride inside (or roll back with) a business transaction.
	Interviews() InterviewRepository
	// CommandReads: validation reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Interviews() InterviewRepository
	Coupons() CouponRepository
	Profiles() ProfileRepository
	Reads() CommandReads
}

// CommandReads are the write-side lookups commands need before mutating.
type CommandReads interface {
	InterviewByID(ctx context.Context, id uuid.UUID) (*interview.Interview, error)
	JobSeekerByID(ctx context.Context, userID uuid.UUID) (*JobSeekerSnapshot, error)
	InterviewerByID(ctx context.Context, userID uuid.UUID) (*InterviewerSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	CouponUsage(ctx context.Context, userID, couponID uuid.UUID) (*CouponUsageSnapshot, error)
	// ApprovedInterviewerIDsBySkills lists approved interviewers whose
	// expertise intersects the given skills, for the intake fan-out.
	ApprovedInterviewerIDsBySkills(ctx context.Context, skills []string) ([]uuid.UUID, error)
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *interview.Interview) error
	FindByID(ctx context.Context, id uuid.UUID) (*interview.Interview, error)
	// ClaimConditional performs the compare-and-swap claim write: it only
	// succeeds if the row is still requested and unassigned.
	ClaimConditional(ctx context.Context, iv *interview.Interview) (bool, error)
	// TransitionStatus updates status only when the row still holds `from`.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to interview.Status, now time.Time) (bool, error)
	SetFeedback(ctx context.Context, iv *interview.Interview) (bool, error)
	SetMeetingURL(ctx context.Context, id uuid.UUID, url string, now time.Time) error
	SetRecordingURL(ctx context.Context, id uuid.UUID, url string, now time.Time) error
	// MarkExpired flips a single still-requested row to expired.
	MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	// SweepExpired bulk-expires every requested row past its deadline.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	// ListActiveByInterviewer returns the interviewer's scheduled and
	// in-progress sessions, for the claim overlap check.
	ListActiveByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*interview.Interview, error)
}

type CouponRepository interface {
	// IncrementUsage upserts the (userID, couponID) row, guarded by the
	// per-user limit. Returns false when the guard rejects the increment.
	IncrementUsage(ctx context.Context, userID, couponID uuid.UUID, perUserLimit int, now time.Time) (bool, error)
	// IncrementTotalUsed bumps the coupon's global counter, guarded by the
	// global limit. Returns false when the limit is already reached.
	IncrementTotalUsed(ctx context.Context, couponID uuid.UUID) (bool, error)
}

type ProfileRepository interface {
	// LockInterviewer takes a row lock on the interviewer's profile for the
	// duration of the transaction, serializing concurrent claims by the same
	// interviewer so the overlap check cannot miss an uncommitted claim.
	LockInterviewer(ctx context.Context, interviewerID uuid.UUID) error
	IncrementFreeInterviewsUsed(ctx context.Context, jobSeekerID uuid.UUID) error
	IncrementTotalInterviews(ctx context.Context, jobSeekerID uuid.UUID) error
	// RecalcAverageRating recomputes the job seeker's average over completed
	// interviews that carry feedback.
	RecalcAverageRating(ctx context.Context, jobSeekerID uuid.UUID) error
	// SettleCompletion bumps interviews_completed and credits earnings in one
	// atomic statement; the credit is suppressed in-database when this is the
	// interviewer's first completion. Returns the credited amount in cents.
	SettleCompletion(ctx context.Context, interviewerID uuid.UUID, amountCents int64) (int64, error)
}

type JobSeekerSnapshot struct {
	UserID             uuid.UUID
	FreeInterviewsUsed int
	TotalInterviews    int
	AverageRating      float64
}

type InterviewerSnapshot struct {
	UserID              uuid.UUID
	IsApproved          bool
	Expertise           []string
	EarningsCents       int64
	InterviewsCompleted int
}

type CouponSnapshot struct {
	ID           uuid.UUID
	Code         string
	PerUserLimit int
	GlobalLimit  *int
	TotalUsed    int
	IsActive     bool
	ExpiresAt    *time.Time
}

type CouponUsageSnapshot struct {
	UserID     uuid.UUID
	CouponID   uuid.UUID
	UsageCount int
	LastUsedAt time.Time
}

type PaymentSnapshot struct {
	ID          uuid.UUID
	OwnerUserID uuid.UUID
	AmountCents int64
	Status      string
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)
