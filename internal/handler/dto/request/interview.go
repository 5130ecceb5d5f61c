package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateInterviewRequest struct {
	Skills          []string   `json:"skills" binding:"required"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	PaymentID       *uuid.UUID `json:"payment_id,omitempty"`
	CouponCode      *string    `json:"coupon_code,omitempty"`
}

func (r CreateInterviewRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type ClaimInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
}

type CancelInterviewRequest struct {
	Reason string `json:"reason,omitempty"`
}

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

type AttachRecordingRequest struct {
	URL string `json:"url" binding:"required,url"`
}
