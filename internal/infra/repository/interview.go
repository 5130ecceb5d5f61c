package repository

import (
	"context"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"

	"github.com/google/uuid"
)

type InterviewRepository struct {
	db db.DBTX
}

func NewInterviewRepository(dbtx db.DBTX) *InterviewRepository {
	return &InterviewRepository{db: dbtx}
}

const interviewColumns = `
	id, job_seeker_id, interviewer_id, requested_skills, duration_minutes, notes,
	status, scheduled_at, claimed_at, expires_at, is_paid, payment_id, coupon_code,
	feedback_rating, feedback_comment, feedback_submitted_at, meeting_url,
	recording_url, created_at, updated_at`

func (r *InterviewRepository) Create(ctx context.Context, iv *interview.Interview) error {
	query := `
		INSERT INTO interviews (
			id, job_seeker_id, interviewer_id, requested_skills, duration_minutes, notes,
			status, scheduled_at, claimed_at, expires_at, is_paid, payment_id, coupon_code,
			meeting_url, recording_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	notes := iv.Notes().String()
	_, err := r.db.Exec(ctx, query,
		iv.ID(), iv.JobSeekerID(), iv.InterviewerID(), iv.RequestedSkills().Values(),
		iv.Duration().Minutes(), notes, iv.Status().String(), iv.ScheduledAt(),
		iv.ClaimedAt(), iv.ExpiresAt(), iv.IsPaid(), iv.PaymentID(), iv.CouponCode(),
		iv.MeetingURL(), iv.RecordingURL(), iv.CreatedAt(), iv.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create interview request", err)
	}
	return nil
}

func (r *InterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*interview.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	iv, err := scanInterview(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("interview not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find interview", err)
	}
	return iv, nil
}

// ClaimConditional is the compare-and-swap claim write: it matches only while
// the row is still requested and unassigned, so two racing claims resolve to
// exactly one winner.
func (r *InterviewRepository) ClaimConditional(ctx context.Context, iv *interview.Interview) (bool, error) {
	query := `
		UPDATE interviews
		SET interviewer_id = $2, scheduled_at = $3, duration_minutes = $4,
		    claimed_at = $5, status = $6, updated_at = $7
		WHERE id = $1 AND status = $8 AND interviewer_id IS NULL
	`

	tag, err := r.db.Exec(ctx, query,
		iv.ID(), iv.InterviewerID(), iv.ScheduledAt(), iv.Duration().Minutes(),
		iv.ClaimedAt(), interview.StatusScheduled.String(), iv.UpdatedAt(),
		interview.StatusRequested.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim interview", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InterviewRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to interview.Status, now time.Time) (bool, error) {
	query := `UPDATE interviews SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, from.String(), to.String(), now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition interview status", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetFeedback enforces write-once at the row level: it matches only while no
// feedback exists, and closes an in-progress session in the same statement.
func (r *InterviewRepository) SetFeedback(ctx context.Context, iv *interview.Interview) (bool, error) {
	fb := iv.Feedback()
	if fb == nil {
		return false, infra.WrapRepoErr("no feedback attached to interview", nil, infra.KindDBFailure)
	}

	query := `
		UPDATE interviews
		SET feedback_rating = $2, feedback_comment = $3, feedback_submitted_at = $4,
		    status = $5, updated_at = $4
		WHERE id = $1 AND feedback_rating IS NULL AND status IN ($6, $7)
	`

	tag, err := r.db.Exec(ctx, query,
		iv.ID(), fb.Rating(), fb.Comment(), iv.FeedbackAt(), iv.Status().String(),
		interview.StatusInProgress.String(), interview.StatusCompleted.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to set interview feedback", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InterviewRepository) SetMeetingURL(ctx context.Context, id uuid.UUID, url string, now time.Time) error {
	query := `UPDATE interviews SET meeting_url = $2, updated_at = $3 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, url, now); err != nil {
		return infra.WrapRepoErr("failed to set meeting url", err)
	}
	return nil
}

func (r *InterviewRepository) SetRecordingURL(ctx context.Context, id uuid.UUID, url string, now time.Time) error {
	query := `UPDATE interviews SET recording_url = $2, updated_at = $3 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, url, now); err != nil {
		return infra.WrapRepoErr("failed to set recording url", err)
	}
	return nil
}

func (r *InterviewRepository) MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	query := `
		UPDATE interviews SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4 AND expires_at <= $3
	`

	tag, err := r.db.Exec(ctx, query, id, interview.StatusExpired.String(), now, interview.StatusRequested.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark interview expired", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SweepExpired is a single conditional statement rather than read-then-write
// per row, so it never races an individual claim.
func (r *InterviewRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE interviews SET status = $1, updated_at = $2
		WHERE status = $3 AND expires_at <= $2
	`

	tag, err := r.db.Exec(ctx, query, interview.StatusExpired.String(), now, interview.StatusRequested.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sweep expired interviews", err)
	}
	return tag.RowsAffected(), nil
}

// ListActiveByInterviewer loads the sessions the claim overlap rule has to
// consider. The caller must hold the interviewer row lock before reading.
func (r *InterviewRepository) ListActiveByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*interview.Interview, error) {
	query := `
		SELECT ` + interviewColumns + ` FROM interviews
		WHERE interviewer_id = $1 AND status IN ($2, $3)
	`

	rows, err := r.db.Query(ctx, query,
		interviewerID, interview.StatusScheduled.String(), interview.StatusInProgress.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active interviews", err)
	}
	defer rows.Close()

	var items []*interview.Interview
	for rows.Next() {
		iv, serr := scanInterview(rows)
		if serr != nil {
			return nil, infra.WrapRepoErr("failed to scan active interview", serr)
		}
		items = append(items, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active interviews", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (*interview.Interview, error) {
	var (
		id, jobSeekerID                  uuid.UUID
		interviewerID, paymentID         *uuid.UUID
		skills                           []string
		durationMinutes                  int
		notes                            string
		status                           string
		scheduledAt, claimedAt           *time.Time
		expiresAt                        time.Time
		isPaid                           bool
		couponCode                       *string
		feedbackRating                   *int
		feedbackComment                  *string
		feedbackAt                       *time.Time
		meetingURL, recordingURL         *string
		createdAt, updatedAt             time.Time
	)

	err := row.Scan(
		&id, &jobSeekerID, &interviewerID, &skills, &durationMinutes, &notes,
		&status, &scheduledAt, &claimedAt, &expiresAt, &isPaid, &paymentID, &couponCode,
		&feedbackRating, &feedbackComment, &feedbackAt, &meetingURL,
		&recordingURL, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	skillSet, err := interview.NewSkillSet(skills)
	if err != nil {
		return nil, err
	}
	duration, err := interview.NewDuration(durationMinutes)
	if err != nil {
		return nil, err
	}
	noteVal, err := interview.NewNotes(notes)
	if err != nil {
		return nil, err
	}
	statusVal, err := interview.NewStatus(status)
	if err != nil {
		return nil, err
	}

	var feedback *interview.Feedback
	if feedbackRating != nil {
		comment := ""
		if feedbackComment != nil {
			comment = *feedbackComment
		}
		fb, ferr := interview.NewFeedback(*feedbackRating, comment)
		if ferr != nil {
			return nil, ferr
		}
		feedback = &fb
	}

	return interview.Reconstruct(
		id, jobSeekerID, interviewerID, skillSet, duration, noteVal, statusVal,
		scheduledAt, claimedAt, expiresAt, isPaid, paymentID, couponCode,
		feedback, feedbackAt, meetingURL, recordingURL, createdAt, updatedAt,
	), nil
}
