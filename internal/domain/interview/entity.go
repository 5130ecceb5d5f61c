package interview

import (
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus             = errs.New("invalid interview status")
	ErrInvalidStateTransition    = errs.New("invalid state transition")
	ErrAlreadyClaimed            = errs.New("interview request already claimed")
	ErrRequestExpired            = errs.New("interview request has expired")
	ErrNotAssignedInterviewer    = errs.New("caller is not the assigned interviewer")
	ErrNotParticipant            = errs.New("caller is not a participant of this interview")
	ErrFeedbackAlreadySubmitted  = errs.New("feedback has already been submitted")
	ErrFeedbackNotAllowedYet     = errs.New("feedback is only allowed once the interview is underway")
)

// Interview is the central aggregate: an interview request moving from an
// unclaimed intent through scheduling, execution and settlement.
//
// Invariant: status == requested ⟺ interviewerID == nil ∧ scheduledAt == nil.
type Interview struct {
	id              uuid.UUID
	jobSeekerID     uuid.UUID
	interviewerID   *uuid.UUID
	requestedSkills SkillSet
	duration        Duration
	notes           Notes
	status          Status

	scheduledAt *time.Time
	claimedAt   *time.Time
	expiresAt   time.Time

	isPaid     bool
	paymentID  *uuid.UUID
	couponCode *string

	feedback     *Feedback
	feedbackAt   *time.Time
	meetingURL   *string
	recordingURL *string

	createdAt time.Time
	updatedAt time.Time
}

// NewRequest creates an unclaimed request. Monetization fields are resolved
// by the intake use case before this constructor runs.
func NewRequest(
	jobSeekerID uuid.UUID,
	skills SkillSet,
	duration Duration,
	notes Notes,
	isPaid bool,
	paymentID *uuid.UUID,
	couponCode *string,
	now time.Time,
	ttl time.Duration,
) *Interview {
	return &Interview{
		id:              uuid.New(),
		jobSeekerID:     jobSeekerID,
		requestedSkills: skills,
		duration:        duration,
		notes:           notes,
		status:          StatusRequested,
		expiresAt:       now.Add(ttl),
		isPaid:          isPaid,
		paymentID:       paymentID,
		couponCode:      couponCode,
		createdAt:       now,
		updatedAt:       now,
	}
}

func Reconstruct(
	id, jobSeekerID uuid.UUID,
	interviewerID *uuid.UUID,
	skills SkillSet,
	duration Duration,
	notes Notes,
	status Status,
	scheduledAt, claimedAt *time.Time,
	expiresAt time.Time,
	isPaid bool,
	paymentID *uuid.UUID,
	couponCode *string,
	feedback *Feedback,
	feedbackAt *time.Time,
	meetingURL, recordingURL *string,
	createdAt, updatedAt time.Time,
) *Interview {
	return &Interview{
		id:              id,
		jobSeekerID:     jobSeekerID,
		interviewerID:   interviewerID,
		requestedSkills: skills,
		duration:        duration,
		notes:           notes,
		status:          status,
		scheduledAt:     scheduledAt,
		claimedAt:       claimedAt,
		expiresAt:       expiresAt,
		isPaid:          isPaid,
		paymentID:       paymentID,
		couponCode:      couponCode,
		feedback:        feedback,
		feedbackAt:      feedbackAt,
		meetingURL:      meetingURL,
		recordingURL:    recordingURL,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (i *Interview) ID() uuid.UUID             { return i.id }
func (i *Interview) JobSeekerID() uuid.UUID    { return i.jobSeekerID }
func (i *Interview) InterviewerID() *uuid.UUID { return i.interviewerID }
func (i *Interview) RequestedSkills() SkillSet { return i.requestedSkills }
func (i *Interview) Duration() Duration        { return i.duration }
func (i *Interview) Notes() Notes              { return i.notes }
func (i *Interview) Status() Status            { return i.status }
func (i *Interview) ScheduledAt() *time.Time   { return i.scheduledAt }
func (i *Interview) ClaimedAt() *time.Time     { return i.claimedAt }
func (i *Interview) ExpiresAt() time.Time      { return i.expiresAt }
func (i *Interview) IsPaid() bool              { return i.isPaid }
func (i *Interview) PaymentID() *uuid.UUID     { return i.paymentID }
func (i *Interview) CouponCode() *string       { return i.couponCode }
func (i *Interview) Feedback() *Feedback       { return i.feedback }
func (i *Interview) FeedbackAt() *time.Time    { return i.feedbackAt }
func (i *Interview) MeetingURL() *string       { return i.meetingURL }
func (i *Interview) RecordingURL() *string     { return i.recordingURL }
func (i *Interview) CreatedAt() time.Time      { return i.createdAt }
func (i *Interview) UpdatedAt() time.Time      { return i.updatedAt }

func (i *Interview) IsExpiredAt(now time.Time) bool {
	return !i.expiresAt.After(now)
}

// UsedFreeTier reports whether the request consumed neither a payment
// nor a coupon (the legacy free-interview path).
func (i *Interview) UsedFreeTier() bool {
	return i.paymentID == nil && i.couponCode == nil
}

func (i *Interview) IsParticipant(actorID uuid.UUID) bool {
	if i.jobSeekerID == actorID {
		return true
	}
	return i.interviewerID != nil && *i.interviewerID == actorID
}

func (i *Interview) isAssignedInterviewer(actorID uuid.UUID) bool {
	return i.interviewerID != nil && *i.interviewerID == actorID
}

// Claim assigns an interviewer and a concrete slot, moving the request to
// scheduled. The persistence layer still guards the race with a conditional
// write; this method enforces the state machine for the loaded snapshot.
func (i *Interview) Claim(interviewerID uuid.UUID, scheduledAt time.Time, duration Duration, now time.Time) error {
	if i.status != StatusRequested || i.interviewerID != nil {
		return ErrAlreadyClaimed
	}
	if i.IsExpiredAt(now) {
		return ErrRequestExpired
	}
	if scheduledAt.Before(now) {
		return ErrScheduleInPast
	}

	id := interviewerID
	i.interviewerID = &id
	i.scheduledAt = &scheduledAt
	i.claimedAt = &now
	i.duration = duration
	i.status = StatusScheduled
	i.updatedAt = now
	return nil
}

func (i *Interview) Start(actorID uuid.UUID, now time.Time) error {
	if !i.isAssignedInterviewer(actorID) {
		return ErrNotAssignedInterviewer
	}
	if i.status != StatusScheduled {
		return ErrInvalidStateTransition
	}
	i.status = StatusInProgress
	i.updatedAt = now
	return nil
}

func (i *Interview) Complete(actorID uuid.UUID, now time.Time) error {
	if !i.isAssignedInterviewer(actorID) {
		return ErrNotAssignedInterviewer
	}
	if i.status != StatusInProgress {
		return ErrInvalidStateTransition
	}
	i.status = StatusCompleted
	i.updatedAt = now
	return nil
}

func (i *Interview) Cancel(actorID uuid.UUID, now time.Time) error {
	if !i.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if i.status != StatusScheduled {
		return ErrInvalidStateTransition
	}
	i.status = StatusCancelled
	i.updatedAt = now
	return nil
}

// AttachFeedback records the interviewer's one-time feedback. Submitting
// while still in progress also closes the session.
func (i *Interview) AttachFeedback(actorID uuid.UUID, fb Feedback, now time.Time) error {
	if !i.isAssignedInterviewer(actorID) {
		return ErrNotAssignedInterviewer
	}
	if i.feedback != nil {
		return ErrFeedbackAlreadySubmitted
	}
	if i.status != StatusInProgress && i.status != StatusCompleted {
		return ErrFeedbackNotAllowedYet
	}
	i.feedback = &fb
	i.feedbackAt = &now
	if i.status == StatusInProgress {
		i.status = StatusCompleted
	}
	i.updatedAt = now
	return nil
}

func (i *Interview) SetMeetingURL(url string, now time.Time) {
	i.meetingURL = &url
	i.updatedAt = now
}

func (i *Interview) AttachRecording(actorID uuid.UUID, url string, now time.Time) error {
	if !i.isAssignedInterviewer(actorID) {
		return ErrNotAssignedInterviewer
	}
	if i.status != StatusInProgress && i.status != StatusCompleted {
		return ErrInvalidStateTransition
	}
	i.recordingURL = &url
	i.updatedAt = now
	return nil
}

// OverlapsWindow applies the claim conflict rule: two sessions clash when
// their starts are closer than the sum of their durations, so the existing
// session blocks any candidate starting inside
// [scheduledAt-(duration+candidate), scheduledAt+(duration+candidate)].
func (i *Interview) OverlapsWindow(candidateStart time.Time, candidate Duration) bool {
	if i.scheduledAt == nil {
		return false
	}
	window := i.duration.AsTimeDuration() + candidate.AsTimeDuration()
	lower := i.scheduledAt.Add(-window)
	upper := i.scheduledAt.Add(window)
	return !candidateStart.Before(lower) && !candidateStart.After(upper)
}
