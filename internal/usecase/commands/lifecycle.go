package commands

import (
	"context"
	"log/slog"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

type FeedbackInput struct {
	Rating  int
	Comment string
}

type LifecycleCommands interface {
	Start(ctx context.Context, interviewID, actorID uuid.UUID) (*interview.Interview, error)
	Complete(ctx context.Context, interviewID, actorID uuid.UUID) (*interview.Interview, error)
	Cancel(ctx context.Context, interviewID, actorID uuid.UUID, reason string) (*interview.Interview, error)
	SubmitFeedback(ctx context.Context, interviewID, actorID uuid.UUID, in FeedbackInput) (*interview.Interview, error)
	AttachRecording(ctx context.Context, interviewID, actorID uuid.UUID, url string) (*interview.Interview, error)
}

type lifecycleCommandsImpl struct {
	uow      shared.UnitOfWork
	payments PaymentGateway
	meetings MeetingService
	notifier Notifier
	clock    clock.Clock
}

func NewLifecycleCommands(
	uow shared.UnitOfWork,
	payments PaymentGateway,
	meetings MeetingService,
	notifier Notifier,
	clk clock.Clock,
) LifecycleCommands {
	return &lifecycleCommandsImpl{
		uow:      uow,
		payments: payments,
		meetings: meetings,
		notifier: notifier,
		clock:    clk,
	}
}

func (c *lifecycleCommandsImpl) loadInterview(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*interview.Interview, error) {
	iv, err := reads.InterviewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return iv, nil
}

func (c *lifecycleCommandsImpl) Start(ctx context.Context, interviewID, actorID uuid.UUID) (*interview.Interview, error) {
	var started *interview.Interview
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		iv, terr := c.loadInterview(ctx, tx.Reads(), interviewID)
		if terr != nil {
			return terr
		}

		if terr = iv.Start(actorID, c.clock.Now()); terr != nil {
			return terr
		}

		ok, terr := tx.Interviews().TransitionStatus(ctx, interviewID, interview.StatusScheduled, interview.StatusInProgress, c.clock.Now())
		if terr != nil {
			return terr
		}
		if !ok {
			return interview.ErrInvalidStateTransition
		}

		started = iv
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The session must have a meeting URL by the time it runs.
	if started.MeetingURL() == nil {
		c.ensureMeetingURL(ctx, started, actorID)
	}

	return started, nil
}

func (c *lifecycleCommandsImpl) ensureMeetingURL(ctx context.Context, iv *interview.Interview, creatorID uuid.UUID) {
	now := c.clock.Now()
	url := c.meetings.EnsureMeetingURL(ctx, creatorID, iv.ID(), "Mock interview")
	iv.SetMeetingURL(url, now)

	if err := c.uow.Interviews().SetMeetingURL(ctx, iv.ID(), url, now); err != nil {
		slog.Warn("failed to persist meeting url", "interview_id", iv.ID(), "error", err.Error())
	}
}

func (c *lifecycleCommandsImpl) Complete(ctx context.Context, interviewID, actorID uuid.UUID) (*interview.Interview, error) {
	var completed *interview.Interview
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		iv, terr := c.loadInterview(ctx, tx.Reads(), interviewID)
		if terr != nil {
			return terr
		}

		if terr = iv.Complete(actorID, c.clock.Now()); terr != nil {
			return terr
		}

		ok, terr := tx.Interviews().TransitionStatus(ctx, interviewID, interview.StatusInProgress, interview.StatusCompleted, c.clock.Now())
		if terr != nil {
			return terr
		}
		if !ok {
			return interview.ErrInvalidStateTransition
		}

		if terr = c.settleCompletion(ctx, tx, iv); terr != nil {
			return terr
		}

		completed = iv
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, completed.JobSeekerID(), NotifyKindInterviewCompleted,
		"Interview completed",
		"Your mock interview has been completed.",
		map[string]any{"interview_id": completed.ID().String()},
	)

	return completed, nil
}

// settleCompletion credits interviewer earnings from the linked payment and
// bumps both parties' counters. The first completed interview per interviewer
// is platform-subsidized: the counter still moves, the credit does not.
func (c *lifecycleCommandsImpl) settleCompletion(ctx context.Context, tx shared.Tx, iv *interview.Interview) error {
	var amountCents int64
	if iv.PaymentID() != nil {
		payment, err := c.payments.GetPayment(ctx, *iv.PaymentID())
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if payment != nil && payment.Status == shared.PaymentStatusCompleted {
			amountCents = payment.AmountCents
		}
	}

	credited, err := tx.Profiles().SettleCompletion(ctx, *iv.InterviewerID(), amountCents)
	if err != nil {
		return err
	}
	if credited == 0 && amountCents > 0 {
		slog.Info("first completed interview, earnings not credited",
			"interviewer_id", iv.InterviewerID(), "interview_id", iv.ID())
	}

	return tx.Profiles().IncrementTotalInterviews(ctx, iv.JobSeekerID())
}

func (c *lifecycleCommandsImpl) Cancel(ctx context.Context, interviewID, actorID uuid.UUID, reason string) (*interview.Interview, error) {
	var cancelled *interview.Interview
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		iv, terr := c.loadInterview(ctx, tx.Reads(), interviewID)
		if terr != nil {
			return terr
		}

		if terr = iv.Cancel(actorID, c.clock.Now()); terr != nil {
			return terr
		}

		ok, terr := tx.Interviews().TransitionStatus(ctx, interviewID, interview.StatusScheduled, interview.StatusCancelled, c.clock.Now())
		if terr != nil {
			return terr
		}
		if !ok {
			return interview.ErrInvalidStateTransition
		}

		cancelled = iv
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifyCancellation(ctx, cancelled, actorID, reason)

	return cancelled, nil
}

func (c *lifecycleCommandsImpl) notifyCancellation(ctx context.Context, iv *interview.Interview, actorID uuid.UUID, reason string) {
	counterpart := iv.JobSeekerID()
	if actorID == iv.JobSeekerID() && iv.InterviewerID() != nil {
		counterpart = *iv.InterviewerID()
	}

	message := "The interview has been cancelled."
	if reason != "" {
		message = "The interview has been cancelled: " + reason
	}
	c.notifier.Notify(ctx, counterpart, NotifyKindInterviewCancelled,
		"Interview cancelled", message,
		map[string]any{"interview_id": iv.ID().String(), "reason": reason},
	)
}

func (c *lifecycleCommandsImpl) SubmitFeedback(ctx context.Context, interviewID, actorID uuid.UUID, in FeedbackInput) (*interview.Interview, error) {
	fb, err := interview.NewFeedback(in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	var updated *interview.Interview
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		iv, terr := c.loadInterview(ctx, tx.Reads(), interviewID)
		if terr != nil {
			return terr
		}

		wasInProgress := iv.Status() == interview.StatusInProgress

		if terr = iv.AttachFeedback(actorID, fb, c.clock.Now()); terr != nil {
			return terr
		}

		ok, terr := tx.Interviews().SetFeedback(ctx, iv)
		if terr != nil {
			return terr
		}
		if !ok {
			return interview.ErrFeedbackAlreadySubmitted
		}

		// Feedback while still in progress closes the session, so the
		// completion side effects run in the same transaction.
		if wasInProgress {
			if terr = c.settleCompletion(ctx, tx, iv); terr != nil {
				return terr
			}
		}

		if terr = tx.Profiles().RecalcAverageRating(ctx, iv.JobSeekerID()); terr != nil {
			return terr
		}

		updated = iv
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, updated.JobSeekerID(), NotifyKindFeedbackReceived,
		"Interview feedback available",
		"Your interviewer has submitted feedback for your session.",
		map[string]any{"interview_id": updated.ID().String()},
	)

	return updated, nil
}

func (c *lifecycleCommandsImpl) AttachRecording(ctx context.Context, interviewID, actorID uuid.UUID, url string) (*interview.Interview, error) {
	var updated *interview.Interview
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		iv, terr := c.loadInterview(ctx, tx.Reads(), interviewID)
		if terr != nil {
			return terr
		}

		if terr = iv.AttachRecording(actorID, url, c.clock.Now()); terr != nil {
			return terr
		}

		updated = iv
		return tx.Interviews().SetRecordingURL(ctx, interviewID, url, c.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
