package queries

import (
	"context"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/user"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/errs"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInterviewNotFound = errs.New("interview not found")
	ErrAccessDenied      = errs.New("access denied")
	ErrNotApproved       = errs.New("interviewer is not approved")
	ErrInvalidCursor     = errs.New("invalid pagination cursor")
)

// InterviewView is the read model for a single interview.
type InterviewView struct {
	ID              uuid.UUID  `json:"id"`
	JobSeekerID     uuid.UUID  `json:"job_seeker_id"`
	InterviewerID   *uuid.UUID `json:"interviewer_id,omitempty"`
	RequestedSkills []string   `json:"requested_skills"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           *string    `json:"notes,omitempty"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	ClaimedAt       *time.Time `json:"claimed_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
	IsPaid          bool       `json:"is_paid"`
	PaymentID       *uuid.UUID `json:"payment_id,omitempty"`
	CouponCode      *string    `json:"coupon_code,omitempty"`
	FeedbackRating  *int       `json:"feedback_rating,omitempty"`
	FeedbackComment *string    `json:"feedback_comment,omitempty"`
	MeetingURL      *string    `json:"meeting_url,omitempty"`
	RecordingURL    *string    `json:"recording_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type InterviewListItem struct {
	ID              uuid.UUID  `json:"id"`
	JobSeekerID     uuid.UUID  `json:"job_seeker_id"`
	RequestedSkills []string   `json:"requested_skills"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type InterviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InterviewView, error)
	// ListAvailable returns unclaimed, unexpired requests whose skills
	// intersect the given expertise, newest first, keyset-paginated.
	ListAvailable(ctx context.Context, expertise []string, now time.Time, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*InterviewListItem, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*InterviewListItem, error)
}

type InterviewQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*InterviewView, error)
	ListAvailable(ctx context.Context, interviewerID uuid.UUID, after *Cursor, limit int) ([]*InterviewListItem, *Cursor, error)
	ListMine(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*InterviewListItem, *Cursor, error)
}

type interviewQueriesImpl struct {
	store InterviewReadStore
	reads shared.CommandReads
	clock clock.Clock
}

func NewInterviewQueries(store InterviewReadStore, reads shared.CommandReads, clk clock.Clock) InterviewQueries {
	return &interviewQueriesImpl{store: store, reads: reads, clock: clk}
}

func (q *interviewQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*InterviewView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	if actorRole != user.RoleAdmin && !isParticipantView(view, actorID) {
		return nil, ErrAccessDenied
	}

	return view, nil
}

func isParticipantView(view *InterviewView, actorID uuid.UUID) bool {
	if view.JobSeekerID == actorID {
		return true
	}
	return view.InterviewerID != nil && *view.InterviewerID == actorID
}

func (q *interviewQueriesImpl) ListAvailable(ctx context.Context, interviewerID uuid.UUID, after *Cursor, limit int) ([]*InterviewListItem, *Cursor, error) {
	interviewer, err := q.reads.InterviewerByID(ctx, interviewerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrNotApproved
		}
		return nil, nil, err
	}
	if !interviewer.IsApproved {
		return nil, nil, ErrNotApproved
	}

	// No declared expertise matches nothing; an empty page, not an error.
	if len(interviewer.Expertise) == 0 {
		return []*InterviewListItem{}, nil, nil
	}

	afterTime, afterID, err := decodeCursor(after)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	items, err := q.store.ListAvailable(ctx, interviewer.Expertise, q.clock.Now(), afterTime, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}

	return items, nextCursor(items, limit), nil
}

func (q *interviewQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*InterviewListItem, *Cursor, error) {
	afterTime, afterID, err := decodeCursor(after)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	items, err := q.store.ListByParticipant(ctx, userID, afterTime, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}

	return items, nextCursor(items, limit), nil
}

func decodeCursor(after *Cursor) (*time.Time, *uuid.UUID, error) {
	if after == nil || after.After == "" {
		return nil, nil, nil
	}
	t, id, err := DecodeAfterCursor(after.After)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrInvalidCursor)
	}
	return &t, &id, nil
}

func nextCursor(items []*InterviewListItem, limit int) *Cursor {
	if len(items) < limit {
		return nil
	}
	last := items[len(items)-1]
	return &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
}
