package repository

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"

	"github.com/google/uuid"
)

type ProfileRepository struct {
	db db.DBTX
}

func NewProfileRepository(dbtx db.DBTX) *ProfileRepository {
	return &ProfileRepository{db: dbtx}
}

// LockInterviewer holds a FOR UPDATE lock on the profile row until the
// surrounding transaction ends. Concurrent claims by the same interviewer
// queue up behind it, so each one sees the previous claim's committed rows
// when it runs the overlap check.
func (r *ProfileRepository) LockInterviewer(ctx context.Context, interviewerID uuid.UUID) error {
	query := `SELECT user_id FROM interviewer_profiles WHERE user_id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, interviewerID).Scan(&id); err != nil {
		if infra.IsNoRows(err) {
			return infra.WrapRepoErr("interviewer profile not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock interviewer profile", err)
	}
	return nil
}

func (r *ProfileRepository) IncrementFreeInterviewsUsed(ctx context.Context, jobSeekerID uuid.UUID) error {
	query := `
		UPDATE job_seeker_profiles SET free_interviews_used = free_interviews_used + 1
		WHERE user_id = $1
	`

	if _, err := r.db.Exec(ctx, query, jobSeekerID); err != nil {
		return infra.WrapRepoErr("failed to increment free interviews used", err)
	}
	return nil
}

func (r *ProfileRepository) IncrementTotalInterviews(ctx context.Context, jobSeekerID uuid.UUID) error {
	query := `
		UPDATE job_seeker_profiles SET total_interviews = total_interviews + 1
		WHERE user_id = $1
	`

	if _, err := r.db.Exec(ctx, query, jobSeekerID); err != nil {
		return infra.WrapRepoErr("failed to increment total interviews", err)
	}
	return nil
}

func (r *ProfileRepository) RecalcAverageRating(ctx context.Context, jobSeekerID uuid.UUID) error {
	query := `
		UPDATE job_seeker_profiles
		SET average_rating = COALESCE((
			SELECT AVG(feedback_rating)::numeric(3,2) FROM interviews
			WHERE job_seeker_id = $1 AND status = 'completed' AND feedback_rating IS NOT NULL
		), 0)
		WHERE user_id = $1
	`

	if _, err := r.db.Exec(ctx, query, jobSeekerID); err != nil {
		return infra.WrapRepoErr("failed to recalc average rating", err)
	}
	return nil
}

// SettleCompletion moves the completion counter and the earnings credit in one
// statement. The CASE suppresses the credit on the interviewer's first
// completion, so the free-first policy holds even under concurrent settles.
func (r *ProfileRepository) SettleCompletion(ctx context.Context, interviewerID uuid.UUID, amountCents int64) (int64, error) {
	query := `
		UPDATE interviewer_profiles
		SET earnings_cents = earnings_cents + CASE WHEN interviews_completed = 0 THEN 0 ELSE $2 END,
		    interviews_completed = interviews_completed + 1
		WHERE user_id = $1
		RETURNING CASE WHEN interviews_completed = 1 THEN 0 ELSE $2 END
	`

	var credited int64
	err := r.db.QueryRow(ctx, query, interviewerID, amountCents).Scan(&credited)
	if err != nil {
		if infra.IsNoRows(err) {
			return 0, infra.WrapRepoErr("interviewer profile not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to settle interview completion", err)
	}
	return credited, nil
}
