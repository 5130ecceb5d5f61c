//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lifecycleFixture struct {
	uow      *fakeUoW
	payments *fakePayments
	meetings *fakeMeetings
	notifier *fakeNotifier
	clock    *clock.MockClock
	cmd      commands.LifecycleCommands

	seekerID      uuid.UUID
	interviewerID uuid.UUID
}

func newLifecycleFixture() *lifecycleFixture {
	uow := newFakeUoW()
	payments := &fakePayments{payments: make(map[uuid.UUID]*shared.PaymentSnapshot)}
	meetings := &fakeMeetings{}
	notifier := &fakeNotifier{}
	clk := clock.NewMockClock(testTime)

	return &lifecycleFixture{
		uow:           uow,
		payments:      payments,
		meetings:      meetings,
		notifier:      notifier,
		clock:         clk,
		cmd:           commands.NewLifecycleCommands(uow, payments, meetings, notifier, clk),
		seekerID:      uuid.New(),
		interviewerID: uuid.New(),
	}
}

func (f *lifecycleFixture) seed(t *testing.T, status interview.Status, paymentID *uuid.UUID) *interview.Interview {
	t.Helper()
	skills, err := interview.NewSkillSet([]string{"go"})
	require.NoError(t, err)
	notes, _ := interview.NewNotes("")

	iv := interview.NewRequest(f.seekerID, skills, interview.DefaultDurationMinutes(), notes, true, paymentID, nil, testTime, 168*time.Hour)
	if status != interview.StatusRequested {
		require.NoError(t, iv.Claim(f.interviewerID, testTime.Add(24*time.Hour), interview.DefaultDurationMinutes(), testTime))
	}
	if status == interview.StatusInProgress || status == interview.StatusCompleted {
		require.NoError(t, iv.Start(f.interviewerID, testTime.Add(24*time.Hour)))
	}
	if status == interview.StatusCompleted {
		require.NoError(t, iv.Complete(f.interviewerID, testTime.Add(25*time.Hour)))
	}

	f.uow.reads.interviews[iv.ID()] = iv
	return iv
}

func TestStartLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned interviewer starts and gets a meeting url", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)
		f.uow.interviews.transitionOK = true

		started, err := f.cmd.Start(ctx, iv.ID(), f.interviewerID)
		require.NoError(t, err)

		assert.Equal(t, interview.StatusInProgress, started.Status())
		assert.Equal(t, 1, f.meetings.calls)
		assert.Contains(t, f.uow.interviews.meetingURLs, iv.ID())
	})

	t.Run("existing meeting url is not replaced", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)
		iv.SetMeetingURL("https://meet.example.com/abc", testTime)
		f.uow.interviews.transitionOK = true

		_, err := f.cmd.Start(ctx, iv.ID(), f.interviewerID)
		require.NoError(t, err)
		assert.Equal(t, 0, f.meetings.calls)
	})

	t.Run("only the assigned interviewer starts", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)

		_, err := f.cmd.Start(ctx, iv.ID(), uuid.New())
		assert.ErrorIs(t, err, interview.ErrNotAssignedInterviewer)
	})

	t.Run("unknown interview", func(t *testing.T) {
		f := newLifecycleFixture()
		_, err := f.cmd.Start(ctx, uuid.New(), f.interviewerID)
		assert.ErrorIs(t, err, commands.ErrInterviewNotFound)
	})
}

func TestCompleteLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("completion settles with the linked payment amount", func(t *testing.T) {
		f := newLifecycleFixture()
		paymentID := uuid.New()
		f.payments.payments[paymentID] = &shared.PaymentSnapshot{
			ID:          paymentID,
			OwnerUserID: f.seekerID,
			AmountCents: 50000,
			Status:      shared.PaymentStatusCompleted,
		}
		iv := f.seed(t, interview.StatusInProgress, &paymentID)
		f.uow.interviews.transitionOK = true

		completed, err := f.cmd.Complete(ctx, iv.ID(), f.interviewerID)
		require.NoError(t, err)

		assert.Equal(t, interview.StatusCompleted, completed.Status())
		assert.Equal(t, []uuid.UUID{f.interviewerID}, f.uow.profiles.settledInterviewers)
		assert.Equal(t, []int64{50000}, f.uow.profiles.settledAmounts)
		assert.Equal(t, []uuid.UUID{f.seekerID}, f.uow.profiles.totalIncremented)
		assert.Contains(t, f.notifier.sentKinds(), commands.NotifyKindInterviewCompleted)
	})

	t.Run("completion without a payment settles zero", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusInProgress, nil)
		f.uow.interviews.transitionOK = true

		_, err := f.cmd.Complete(ctx, iv.ID(), f.interviewerID)
		require.NoError(t, err)
		assert.Equal(t, []int64{0}, f.uow.profiles.settledAmounts)
	})

	t.Run("scheduled session cannot complete", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)

		_, err := f.cmd.Complete(ctx, iv.ID(), f.interviewerID)
		assert.ErrorIs(t, err, interview.ErrInvalidStateTransition)
		assert.Empty(t, f.uow.profiles.settledInterviewers)
	})

	t.Run("first completion is subsidized, the second one credits", func(t *testing.T) {
		f := newLifecycleFixture()
		paymentID := uuid.New()
		f.payments.payments[paymentID] = &shared.PaymentSnapshot{
			ID:          paymentID,
			OwnerUserID: f.seekerID,
			AmountCents: 50000,
			Status:      shared.PaymentStatusCompleted,
		}
		first := f.seed(t, interview.StatusInProgress, &paymentID)
		second := f.seed(t, interview.StatusInProgress, &paymentID)
		f.uow.interviews.transitionOK = true

		_, err := f.cmd.Complete(ctx, first.ID(), f.interviewerID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), f.uow.profiles.earnings[f.interviewerID])
		assert.Equal(t, 1, f.uow.profiles.completions[f.interviewerID])

		_, err = f.cmd.Complete(ctx, second.ID(), f.interviewerID)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), f.uow.profiles.earnings[f.interviewerID])
		assert.Equal(t, 2, f.uow.profiles.completions[f.interviewerID])
	})
}

func TestCancelLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("job seeker cancels, interviewer is notified", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)
		f.uow.interviews.transitionOK = true

		cancelled, err := f.cmd.Cancel(ctx, iv.ID(), f.seekerID, "found a job")
		require.NoError(t, err)

		assert.Equal(t, interview.StatusCancelled, cancelled.Status())
		require.Len(t, f.notifier.sent, 1)
		assert.Equal(t, f.interviewerID, f.notifier.sent[0].userID)
		assert.Equal(t, commands.NotifyKindInterviewCancelled, f.notifier.sent[0].kind)
	})

	t.Run("interviewer cancels, job seeker is notified", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)
		f.uow.interviews.transitionOK = true

		_, err := f.cmd.Cancel(ctx, iv.ID(), f.interviewerID, "")
		require.NoError(t, err)
		require.Len(t, f.notifier.sent, 1)
		assert.Equal(t, f.seekerID, f.notifier.sent[0].userID)
	})

	t.Run("outsider cannot cancel", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)

		_, err := f.cmd.Cancel(ctx, iv.ID(), uuid.New(), "")
		assert.ErrorIs(t, err, interview.ErrNotParticipant)
	})
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()
	input := commands.FeedbackInput{Rating: 4, Comment: "good structure, work on system design"}

	t.Run("feedback on in-progress session completes and settles", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusInProgress, nil)
		f.uow.interviews.setFeedbackOK = true

		updated, err := f.cmd.SubmitFeedback(ctx, iv.ID(), f.interviewerID, input)
		require.NoError(t, err)

		assert.Equal(t, interview.StatusCompleted, updated.Status())
		require.NotNil(t, updated.Feedback())
		assert.Equal(t, 4, updated.Feedback().Rating())
		assert.Equal(t, []uuid.UUID{f.interviewerID}, f.uow.profiles.settledInterviewers)
		assert.Equal(t, []uuid.UUID{f.seekerID}, f.uow.profiles.ratingRecalced)
		assert.Contains(t, f.notifier.sentKinds(), commands.NotifyKindFeedbackReceived)
	})

	t.Run("feedback on completed session does not settle twice", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusCompleted, nil)
		f.uow.interviews.setFeedbackOK = true

		_, err := f.cmd.SubmitFeedback(ctx, iv.ID(), f.interviewerID, input)
		require.NoError(t, err)
		assert.Empty(t, f.uow.profiles.settledInterviewers)
		assert.Equal(t, []uuid.UUID{f.seekerID}, f.uow.profiles.ratingRecalced)
	})

	t.Run("write-once enforced by the conditional update", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusInProgress, nil)
		f.uow.interviews.setFeedbackOK = false

		_, err := f.cmd.SubmitFeedback(ctx, iv.ID(), f.interviewerID, input)
		assert.ErrorIs(t, err, interview.ErrFeedbackAlreadySubmitted)
	})

	t.Run("invalid rating is rejected before any write", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusInProgress, nil)

		_, err := f.cmd.SubmitFeedback(ctx, iv.ID(), f.interviewerID, commands.FeedbackInput{Rating: 6})
		assert.ErrorIs(t, err, interview.ErrInvalidRating)
	})

	t.Run("feedback before the session runs is rejected", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusScheduled, nil)

		_, err := f.cmd.SubmitFeedback(ctx, iv.ID(), f.interviewerID, input)
		assert.ErrorIs(t, err, interview.ErrFeedbackNotAllowedYet)
	})
}

func TestAttachRecording(t *testing.T) {
	ctx := context.Background()
	url := "https://cdn.mockomi.app/recordings/abc.mp4"

	t.Run("recording attaches to completed session", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusCompleted, nil)

		updated, err := f.cmd.AttachRecording(ctx, iv.ID(), f.interviewerID, url)
		require.NoError(t, err)
		require.NotNil(t, updated.RecordingURL())
		assert.Equal(t, url, *updated.RecordingURL())
		assert.Equal(t, url, f.uow.interviews.recordingURLs[iv.ID()])
	})

	t.Run("only the assigned interviewer attaches recordings", func(t *testing.T) {
		f := newLifecycleFixture()
		iv := f.seed(t, interview.StatusCompleted, nil)

		_, err := f.cmd.AttachRecording(ctx, iv.ID(), uuid.New(), url)
		assert.ErrorIs(t, err, interview.ErrNotAssignedInterviewer)
	})
}
