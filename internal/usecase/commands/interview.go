package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/coupon"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/errs"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrJobSeekerNotFound   = errs.New("job seeker profile not found")
	ErrInterviewerNotFound = errs.New("interviewer profile not found")
	ErrNotAuthorized       = errs.New("interviewer is not approved")
	ErrPaymentRequired     = errs.New("payment required to create this request")
	ErrPaymentInvalid      = errs.New("payment is missing, incomplete or owned by another user")
	ErrInterviewNotFound   = errs.New("interview not found")
	ErrSkillMismatch       = errs.New("interviewer expertise does not cover the requested skills")
	ErrScheduleConflict    = errs.New("interviewer has a conflicting session in that window")
)

type CreateRequestInput struct {
	Skills          []string
	DurationMinutes int
	Notes           string
	PaymentID       *uuid.UUID
	CouponCode      *string
}

type ClaimInput struct {
	InterviewID     uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
}

type InterviewCommands interface {
	CreateRequest(ctx context.Context, in CreateRequestInput, jobSeekerID uuid.UUID) (*interview.Interview, error)
	Claim(ctx context.Context, in ClaimInput, interviewerID uuid.UUID) (*interview.Interview, error)
}

type interviewCommandsImpl struct {
	uow      shared.UnitOfWork
	gate     *MonetizationGate
	ledger   *CouponLedger
	payments PaymentGateway
	meetings MeetingService
	notifier Notifier
	billing  config.BillingConfig
	clock    clock.Clock
}

func NewInterviewCommands(
	uow shared.UnitOfWork,
	gate *MonetizationGate,
	ledger *CouponLedger,
	payments PaymentGateway,
	meetings MeetingService,
	notifier Notifier,
	billing config.BillingConfig,
	clk clock.Clock,
) InterviewCommands {
	return &interviewCommandsImpl{
		uow:      uow,
		gate:     gate,
		ledger:   ledger,
		payments: payments,
		meetings: meetings,
		notifier: notifier,
		billing:  billing,
		clock:    clk,
	}
}

func (c *interviewCommandsImpl) CreateRequest(ctx context.Context, in CreateRequestInput, jobSeekerID uuid.UUID) (*interview.Interview, error) {
	skills, err := interview.NewSkillSet(in.Skills)
	if err != nil {
		return nil, err
	}

	duration := interview.DefaultDurationMinutes()
	if in.DurationMinutes != 0 {
		if duration, err = interview.NewDuration(in.DurationMinutes); err != nil {
			return nil, err
		}
	}

	notes, err := interview.NewNotes(in.Notes)
	if err != nil {
		return nil, err
	}

	seeker, err := c.uow.CommandReads().JobSeekerByID(ctx, jobSeekerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}

	isPaid, paymentID, couponCode, err := c.resolveMonetization(ctx, in, seeker)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	iv := interview.NewRequest(jobSeekerID, skills, duration, notes, isPaid, paymentID, couponCode, now, c.billing.RequestTTL)

	// Coupon redemption and the request insert commit or roll back together.
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if couponCode != nil {
			if _, rerr := c.ledger.Redeem(ctx, tx, *couponCode, jobSeekerID); rerr != nil {
				return rerr
			}
		}
		return tx.Interviews().Create(ctx, iv)
	})
	if err != nil {
		return nil, err
	}

	go c.notifyMatchingInterviewers(iv)

	return iv, nil
}

// resolveMonetization applies the intake policy in order: coupon-only,
// coupon-plus-payment, payment-mandatory with the legacy free tier as the
// only exemption. Redemption itself happens later, inside the transaction.
func (c *interviewCommandsImpl) resolveMonetization(ctx context.Context, in CreateRequestInput, seeker *shared.JobSeekerSnapshot) (bool, *uuid.UUID, *string, error) {
	decision := c.gate.Decide(seeker.UserID)

	if in.CouponCode != nil {
		normalized := coupon.NormalizeCode(*in.CouponCode)
		validation, err := c.ledger.Validate(ctx, c.uow.CommandReads(), normalized, seeker.UserID)
		if err != nil {
			return false, nil, nil, err
		}
		if !validation.Valid {
			return false, nil, nil, errs.Mark(errs.Newf("coupon rejected: %s (remaining uses %d)", validation.Message, validation.RemainingUses), ErrCouponInvalid)
		}

		if in.PaymentID != nil {
			// Discounted-but-paid path: the payment must still check out.
			if err := c.verifyPayment(ctx, *in.PaymentID, seeker.UserID, decision.PriceCents); err != nil {
				return false, nil, nil, err
			}
			return true, in.PaymentID, &normalized, nil
		}
		return true, nil, &normalized, nil
	}

	if in.PaymentID == nil {
		if seeker.FreeInterviewsUsed < c.billing.FreeInterviewLimit {
			// Legacy free tier; the counter is consumed at claim time.
			return true, nil, nil, nil
		}
		return false, nil, nil, ErrPaymentRequired
	}

	if err := c.verifyPayment(ctx, *in.PaymentID, seeker.UserID, decision.PriceCents); err != nil {
		return false, nil, nil, err
	}
	return true, in.PaymentID, nil, nil
}

func (c *interviewCommandsImpl) verifyPayment(ctx context.Context, paymentID, ownerID uuid.UUID, priceCents int64) error {
	payment, err := c.payments.GetPayment(ctx, paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrPaymentInvalid
		}
		return err
	}
	if payment.OwnerUserID != ownerID {
		return ErrPaymentInvalid
	}
	if payment.Status != shared.PaymentStatusCompleted {
		return ErrPaymentInvalid
	}
	if payment.AmountCents < priceCents {
		return ErrPaymentInvalid
	}
	return nil
}

// Fan-out to approved interviewers whose expertise intersects the request.
// Fire-and-forget: failures are logged, never surfaced to the job seeker.
func (c *interviewCommandsImpl) notifyMatchingInterviewers(iv *interview.Interview) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids, err := c.uow.CommandReads().ApprovedInterviewerIDsBySkills(ctx, iv.RequestedSkills().Values())
	if err != nil {
		slog.Warn("interviewer fan-out lookup failed", "interview_id", iv.ID(), "error", err.Error())
		return
	}
	for _, id := range ids {
		c.notifier.Notify(ctx, id, NotifyKindRequestMatch,
			"New mock interview request",
			"A new interview request matches your expertise.",
			map[string]any{"interview_id": iv.ID().String()},
		)
	}
}

func (c *interviewCommandsImpl) Claim(ctx context.Context, in ClaimInput, interviewerID uuid.UUID) (*interview.Interview, error) {
	interviewer, err := c.uow.CommandReads().InterviewerByID(ctx, interviewerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInterviewerNotFound
		}
		return nil, err
	}
	if !interviewer.IsApproved {
		return nil, ErrNotAuthorized
	}

	duration := interview.DefaultDurationMinutes()
	if in.DurationMinutes != 0 {
		if duration, err = interview.NewDuration(in.DurationMinutes); err != nil {
			return nil, err
		}
	}

	var claimed *interview.Interview
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		iv, terr := tx.Reads().InterviewByID(ctx, in.InterviewID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrInterviewNotFound
			}
			return terr
		}

		now := c.clock.Now()

		if iv.Status() != interview.StatusRequested || iv.InterviewerID() != nil {
			return interview.ErrAlreadyClaimed
		}
		if iv.IsExpiredAt(now) {
			// Logically expired the instant the deadline passed; the physical
			// flip happens below, outside this rolled-back transaction.
			return interview.ErrRequestExpired
		}

		expertise, terr := interview.NewSkillSet(interviewer.Expertise)
		if terr != nil {
			// No declared expertise can never match a non-empty skill set.
			return ErrSkillMismatch
		}
		if !iv.RequestedSkills().Intersects(expertise) {
			return ErrSkillMismatch
		}

		// Serialize claims per interviewer: the row lock makes concurrent
		// claim transactions run one after another, so the overlap scan below
		// always sees the winner's committed session.
		if terr = tx.Profiles().LockInterviewer(ctx, interviewerID); terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrInterviewerNotFound
			}
			return terr
		}

		active, terr := tx.Interviews().ListActiveByInterviewer(ctx, interviewerID)
		if terr != nil {
			return terr
		}
		for _, session := range active {
			if session.OverlapsWindow(in.ScheduledAt, duration) {
				return ErrScheduleConflict
			}
		}

		if terr = iv.Claim(interviewerID, in.ScheduledAt, duration, now); terr != nil {
			return terr
		}

		ok, terr := tx.Interviews().ClaimConditional(ctx, iv)
		if terr != nil {
			return terr
		}
		if !ok {
			// Lost the race: another interviewer's conditional write won.
			return interview.ErrAlreadyClaimed
		}

		if iv.UsedFreeTier() {
			if terr = tx.Profiles().IncrementFreeInterviewsUsed(ctx, iv.JobSeekerID()); terr != nil {
				return terr
			}
		}

		claimed = iv
		return nil
	})
	if err != nil {
		if errors.Is(err, interview.ErrRequestExpired) {
			c.expireBestEffort(ctx, in.InterviewID)
		}
		return nil, err
	}

	c.attachMeetingURL(ctx, claimed, interviewerID)

	c.notifier.Notify(ctx, claimed.JobSeekerID(), NotifyKindInterviewScheduled,
		"Interview scheduled",
		"An interviewer has claimed your request and scheduled the session.",
		map[string]any{"interview_id": claimed.ID().String(), "scheduled_at": in.ScheduledAt},
	)

	return claimed, nil
}

// attachMeetingURL is best-effort: the claim already committed and a meeting
// service outage must not undo it.
func (c *interviewCommandsImpl) attachMeetingURL(ctx context.Context, iv *interview.Interview, creatorID uuid.UUID) {
	now := c.clock.Now()
	url := c.meetings.EnsureMeetingURL(ctx, creatorID, iv.ID(), "Mock interview")
	iv.SetMeetingURL(url, now)

	if err := c.uow.Interviews().SetMeetingURL(ctx, iv.ID(), url, now); err != nil {
		slog.Warn("failed to persist meeting url", "interview_id", iv.ID(), "error", err.Error())
	}
}

func (c *interviewCommandsImpl) expireBestEffort(ctx context.Context, id uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, merr := tx.Interviews().MarkExpired(ctx, id, c.clock.Now())
		return merr
	})
	if err != nil {
		slog.Warn("failed to mark interview expired during claim", "interview_id", id, "error", err.Error())
	}
}
