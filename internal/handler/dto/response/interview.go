package response

import (
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/queries"

	"github.com/google/uuid"
)

type InterviewResponse struct {
	ID              uuid.UUID  `json:"id"`
	JobSeekerID     uuid.UUID  `json:"jobSeekerId"`
	InterviewerID   *uuid.UUID `json:"interviewerId,omitempty"`
	RequestedSkills []string   `json:"requestedSkills"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           *string    `json:"notes,omitempty"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	ClaimedAt       *time.Time `json:"claimedAt,omitempty"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	IsPaid          bool       `json:"isPaid"`
	PaymentID       *uuid.UUID `json:"paymentId,omitempty"`
	CouponCode      *string    `json:"couponCode,omitempty"`
	FeedbackRating  *int       `json:"feedbackRating,omitempty"`
	FeedbackComment *string    `json:"feedbackComment,omitempty"`
	MeetingURL      *string    `json:"meetingUrl,omitempty"`
	RecordingURL    *string    `json:"recordingUrl,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type InterviewListItemResponse struct {
	ID              uuid.UUID  `json:"id"`
	JobSeekerID     uuid.UUID  `json:"jobSeekerId"`
	RequestedSkills []string   `json:"requestedSkills"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type InterviewListResponse struct {
	Items      []*InterviewListItemResponse `json:"items"`
	NextCursor *string                      `json:"nextCursor,omitempty"`
}

type SweepResponse struct {
	Expired int64 `json:"expired"`
}

func FromInterviewEntity(iv *interview.Interview) *InterviewResponse {
	resp := &InterviewResponse{
		ID:              iv.ID(),
		JobSeekerID:     iv.JobSeekerID(),
		InterviewerID:   iv.InterviewerID(),
		RequestedSkills: iv.RequestedSkills().Values(),
		DurationMinutes: iv.Duration().Minutes(),
		Status:          iv.Status().String(),
		ScheduledAt:     iv.ScheduledAt(),
		ClaimedAt:       iv.ClaimedAt(),
		ExpiresAt:       iv.ExpiresAt(),
		IsPaid:          iv.IsPaid(),
		PaymentID:       iv.PaymentID(),
		CouponCode:      iv.CouponCode(),
		MeetingURL:      iv.MeetingURL(),
		RecordingURL:    iv.RecordingURL(),
		CreatedAt:       iv.CreatedAt(),
		UpdatedAt:       iv.UpdatedAt(),
	}

	if notes := iv.Notes().String(); notes != "" {
		resp.Notes = &notes
	}
	if fb := iv.Feedback(); fb != nil {
		rating := fb.Rating()
		comment := fb.Comment()
		resp.FeedbackRating = &rating
		resp.FeedbackComment = &comment
	}

	return resp
}

func FromInterviewView(rm *queries.InterviewView) *InterviewResponse {
	return &InterviewResponse{
		ID:              rm.ID,
		JobSeekerID:     rm.JobSeekerID,
		InterviewerID:   rm.InterviewerID,
		RequestedSkills: rm.RequestedSkills,
		DurationMinutes: rm.DurationMinutes,
		Notes:           rm.Notes,
		Status:          rm.Status,
		ScheduledAt:     rm.ScheduledAt,
		ClaimedAt:       rm.ClaimedAt,
		ExpiresAt:       rm.ExpiresAt,
		IsPaid:          rm.IsPaid,
		PaymentID:       rm.PaymentID,
		CouponCode:      rm.CouponCode,
		FeedbackRating:  rm.FeedbackRating,
		FeedbackComment: rm.FeedbackComment,
		MeetingURL:      rm.MeetingURL,
		RecordingURL:    rm.RecordingURL,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromInterviewList(items []*queries.InterviewListItem, next *queries.Cursor) *InterviewListResponse {
	resp := &InterviewListResponse{
		Items: make([]*InterviewListItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = &InterviewListItemResponse{
			ID:              item.ID,
			JobSeekerID:     item.JobSeekerID,
			RequestedSkills: item.RequestedSkills,
			DurationMinutes: item.DurationMinutes,
			Status:          item.Status,
			ScheduledAt:     item.ScheduledAt,
			ExpiresAt:       item.ExpiresAt,
			CreatedAt:       item.CreatedAt,
		}
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
