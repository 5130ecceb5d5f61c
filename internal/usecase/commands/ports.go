package commands

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

// PaymentGateway exposes the only fact this engine needs from the payment
// system: a payment record's owner, amount and completion state.
type PaymentGateway interface {
	GetPayment(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error)
}

// MeetingService acquires a meeting URL for a scheduled session. It is
// best-effort with a bounded timeout and must always return a usable URL,
// falling back to a static panel link; it never fails a claim or a start.
type MeetingService interface {
	EnsureMeetingURL(ctx context.Context, creatorID, interviewID uuid.UUID, title string) string
}

// Notifier delivers user notifications fire-and-forget. Implementations log
// failures and never propagate them.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind, title, message string, data map[string]any)
}

const (
	NotifyKindRequestMatch       = "interview_request_match"
	NotifyKindInterviewScheduled = "interview_scheduled"
	NotifyKindInterviewCancelled = "interview_cancelled"
	NotifyKindInterviewCompleted = "interview_completed"
	NotifyKindFeedbackReceived   = "interview_feedback"
)
