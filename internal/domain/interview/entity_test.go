//go:build unit

package interview_test

import (
	"testing"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl      = 168 * time.Hour
)

func newRequest(t *testing.T) *interview.Interview {
	t.Helper()
	skills, err := interview.NewSkillSet([]string{"go", "sql"})
	require.NoError(t, err)
	notes, err := interview.NewNotes("backend focus")
	require.NoError(t, err)
	return interview.NewRequest(uuid.New(), skills, interview.DefaultDurationMinutes(), notes, true, nil, nil, baseTime, ttl)
}

func claimedInterview(t *testing.T, interviewerID uuid.UUID) *interview.Interview {
	t.Helper()
	iv := newRequest(t)
	scheduledAt := baseTime.Add(24 * time.Hour)
	require.NoError(t, iv.Claim(interviewerID, scheduledAt, interview.DefaultDurationMinutes(), baseTime.Add(time.Hour)))
	return iv
}

func TestNewRequest(t *testing.T) {
	iv := newRequest(t)

	assert.NotEqual(t, uuid.Nil, iv.ID())
	assert.Equal(t, interview.StatusRequested, iv.Status())
	assert.Nil(t, iv.InterviewerID())
	assert.Nil(t, iv.ScheduledAt())
	assert.Equal(t, baseTime.Add(ttl), iv.ExpiresAt())
	assert.True(t, iv.UsedFreeTier())
}

func TestUsedFreeTier(t *testing.T) {
	skills, err := interview.NewSkillSet([]string{"go"})
	require.NoError(t, err)
	notes, _ := interview.NewNotes("")

	paymentID := uuid.New()
	code := "WELCOME10"

	cases := []struct {
		name       string
		paymentID  *uuid.UUID
		couponCode *string
		want       bool
	}{
		{name: "no payment and no coupon", want: true},
		{name: "payment attached", paymentID: &paymentID, want: false},
		{name: "coupon attached", couponCode: &code, want: false},
		{name: "payment and coupon", paymentID: &paymentID, couponCode: &code, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv := interview.NewRequest(uuid.New(), skills, interview.DefaultDurationMinutes(), notes, true, tc.paymentID, tc.couponCode, baseTime, ttl)
			assert.Equal(t, tc.want, iv.UsedFreeTier())
		})
	}
}

func TestClaim(t *testing.T) {
	interviewerID := uuid.New()
	scheduledAt := baseTime.Add(24 * time.Hour)
	now := baseTime.Add(time.Hour)

	t.Run("success moves to scheduled", func(t *testing.T) {
		iv := newRequest(t)
		err := iv.Claim(interviewerID, scheduledAt, interview.DefaultDurationMinutes(), now)
		require.NoError(t, err)

		assert.Equal(t, interview.StatusScheduled, iv.Status())
		require.NotNil(t, iv.InterviewerID())
		assert.Equal(t, interviewerID, *iv.InterviewerID())
		require.NotNil(t, iv.ScheduledAt())
		assert.Equal(t, scheduledAt, *iv.ScheduledAt())
		require.NotNil(t, iv.ClaimedAt())
		assert.Equal(t, now, *iv.ClaimedAt())
	})

	t.Run("second claim is rejected", func(t *testing.T) {
		iv := newRequest(t)
		require.NoError(t, iv.Claim(interviewerID, scheduledAt, interview.DefaultDurationMinutes(), now))

		err := iv.Claim(uuid.New(), scheduledAt.Add(time.Hour), interview.DefaultDurationMinutes(), now)
		assert.ErrorIs(t, err, interview.ErrAlreadyClaimed)
	})

	t.Run("expired request cannot be claimed", func(t *testing.T) {
		iv := newRequest(t)
		afterDeadline := baseTime.Add(ttl)

		err := iv.Claim(interviewerID, afterDeadline.Add(time.Hour), interview.DefaultDurationMinutes(), afterDeadline)
		assert.ErrorIs(t, err, interview.ErrRequestExpired)
		assert.Equal(t, interview.StatusRequested, iv.Status())
	})

	t.Run("schedule in the past is rejected", func(t *testing.T) {
		iv := newRequest(t)
		err := iv.Claim(interviewerID, now.Add(-time.Minute), interview.DefaultDurationMinutes(), now)
		assert.ErrorIs(t, err, interview.ErrScheduleInPast)
	})
}

func TestStart(t *testing.T) {
	interviewerID := uuid.New()
	now := baseTime.Add(25 * time.Hour)

	t.Run("assigned interviewer starts a scheduled session", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		assert.Equal(t, interview.StatusInProgress, iv.Status())
	})

	t.Run("someone else cannot start", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		err := iv.Start(uuid.New(), now)
		assert.ErrorIs(t, err, interview.ErrNotAssignedInterviewer)
	})

	t.Run("unclaimed request cannot start", func(t *testing.T) {
		iv := newRequest(t)
		err := iv.Start(interviewerID, now)
		assert.ErrorIs(t, err, interview.ErrNotAssignedInterviewer)
	})

	t.Run("double start is rejected", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		err := iv.Start(interviewerID, now)
		assert.ErrorIs(t, err, interview.ErrInvalidStateTransition)
	})
}

func TestComplete(t *testing.T) {
	interviewerID := uuid.New()
	now := baseTime.Add(26 * time.Hour)

	t.Run("in progress completes", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		require.NoError(t, iv.Complete(interviewerID, now))
		assert.Equal(t, interview.StatusCompleted, iv.Status())
	})

	t.Run("scheduled cannot skip to completed", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		err := iv.Complete(interviewerID, now)
		assert.ErrorIs(t, err, interview.ErrInvalidStateTransition)
	})
}

func TestCancel(t *testing.T) {
	interviewerID := uuid.New()
	now := baseTime.Add(2 * time.Hour)

	t.Run("job seeker cancels a scheduled session", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Cancel(iv.JobSeekerID(), now))
		assert.Equal(t, interview.StatusCancelled, iv.Status())
	})

	t.Run("interviewer cancels a scheduled session", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Cancel(interviewerID, now))
		assert.Equal(t, interview.StatusCancelled, iv.Status())
	})

	t.Run("outsider cannot cancel", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		err := iv.Cancel(uuid.New(), now)
		assert.ErrorIs(t, err, interview.ErrNotParticipant)
	})

	t.Run("in progress cannot be cancelled", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		err := iv.Cancel(interviewerID, now)
		assert.ErrorIs(t, err, interview.ErrInvalidStateTransition)
	})
}

func TestAttachFeedback(t *testing.T) {
	interviewerID := uuid.New()
	now := baseTime.Add(26 * time.Hour)
	fb, err := interview.NewFeedback(4, "solid fundamentals")
	require.NoError(t, err)

	t.Run("feedback on in-progress session also completes it", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))

		require.NoError(t, iv.AttachFeedback(interviewerID, fb, now))
		assert.Equal(t, interview.StatusCompleted, iv.Status())
		require.NotNil(t, iv.Feedback())
		assert.Equal(t, 4, iv.Feedback().Rating())
	})

	t.Run("feedback on completed session keeps status", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		require.NoError(t, iv.Complete(interviewerID, now))

		require.NoError(t, iv.AttachFeedback(interviewerID, fb, now))
		assert.Equal(t, interview.StatusCompleted, iv.Status())
	})

	t.Run("feedback is write-once", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		require.NoError(t, iv.AttachFeedback(interviewerID, fb, now))

		err := iv.AttachFeedback(interviewerID, fb, now)
		assert.ErrorIs(t, err, interview.ErrFeedbackAlreadySubmitted)
	})

	t.Run("feedback before the session runs is rejected", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		err := iv.AttachFeedback(interviewerID, fb, now)
		assert.ErrorIs(t, err, interview.ErrFeedbackNotAllowedYet)
	})

	t.Run("only the assigned interviewer may submit", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		err := iv.AttachFeedback(uuid.New(), fb, now)
		assert.ErrorIs(t, err, interview.ErrNotAssignedInterviewer)
	})
}

func TestAttachRecording(t *testing.T) {
	interviewerID := uuid.New()
	now := baseTime.Add(26 * time.Hour)

	t.Run("recording attaches to a completed session", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		require.NoError(t, iv.Start(interviewerID, now))
		require.NoError(t, iv.Complete(interviewerID, now))

		require.NoError(t, iv.AttachRecording(interviewerID, "https://cdn.example.com/rec/1.mp4", now))
		require.NotNil(t, iv.RecordingURL())
	})

	t.Run("recording is rejected before the session runs", func(t *testing.T) {
		iv := claimedInterview(t, interviewerID)
		err := iv.AttachRecording(interviewerID, "https://cdn.example.com/rec/1.mp4", now)
		assert.ErrorIs(t, err, interview.ErrInvalidStateTransition)
	})
}

func TestOverlapsWindow(t *testing.T) {
	interviewerID := uuid.New()
	iv := claimedInterview(t, interviewerID)
	scheduledAt := *iv.ScheduledAt()
	dur := interview.DefaultDurationMinutes()
	// Both sessions run the default duration, so the blocking window spans
	// the sum of the two on either side of the existing start.
	window := iv.Duration().AsTimeDuration() + dur.AsTimeDuration()

	cases := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{name: "same start", candidate: scheduledAt, want: true},
		{name: "just inside lower bound", candidate: scheduledAt.Add(-window), want: true},
		{name: "just inside upper bound", candidate: scheduledAt.Add(window), want: true},
		{name: "before the window", candidate: scheduledAt.Add(-window - time.Minute), want: false},
		{name: "after the window", candidate: scheduledAt.Add(window + time.Minute), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, iv.OverlapsWindow(tc.candidate, dur))
		})
	}

	t.Run("unscheduled request never overlaps", func(t *testing.T) {
		assert.False(t, newRequest(t).OverlapsWindow(scheduledAt, dur))
	})
}

func TestIsExpiredAt(t *testing.T) {
	iv := newRequest(t)

	assert.False(t, iv.IsExpiredAt(baseTime.Add(ttl-time.Second)))
	assert.True(t, iv.IsExpiredAt(baseTime.Add(ttl)))
	assert.True(t, iv.IsExpiredAt(baseTime.Add(ttl+time.Second)))
}
