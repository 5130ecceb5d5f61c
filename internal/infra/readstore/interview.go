package readstore

import (
	"context"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InterviewReadStore backs the query side directly with SQL shaped for each
// listing, bypassing the domain aggregate.
type InterviewReadStore struct {
	db db.DBTX
}

func NewInterviewReadStore(dbtx db.DBTX) *InterviewReadStore {
	return &InterviewReadStore{db: dbtx}
}

func (s *InterviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.InterviewView, error) {
	query := `
		SELECT id, job_seeker_id, interviewer_id, requested_skills, duration_minutes,
		       NULLIF(notes, ''), status, scheduled_at, claimed_at, expires_at, is_paid,
		       payment_id, coupon_code, feedback_rating, feedback_comment,
		       meeting_url, recording_url, created_at, updated_at
		FROM interviews WHERE id = $1
	`

	var view queries.InterviewView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.JobSeekerID, &view.InterviewerID, &view.RequestedSkills,
		&view.DurationMinutes, &view.Notes, &view.Status, &view.ScheduledAt,
		&view.ClaimedAt, &view.ExpiresAt, &view.IsPaid, &view.PaymentID,
		&view.CouponCode, &view.FeedbackRating, &view.FeedbackComment,
		&view.MeetingURL, &view.RecordingURL, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("interview not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find interview", err)
	}
	return &view, nil
}

func (s *InterviewReadStore) ListAvailable(ctx context.Context, expertise []string, now time.Time, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.InterviewListItem, error) {
	query := `
		SELECT id, job_seeker_id, requested_skills, duration_minutes, status,
		       scheduled_at, expires_at, created_at
		FROM interviews
		WHERE status = 'requested'
		  AND interviewer_id IS NULL
		  AND expires_at > $2
		  AND requested_skills && $1::text[]
		  AND ($3::timestamptz IS NULL OR (created_at, id) < ($3::timestamptz, $4::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $5
	`

	rows, err := s.db.Query(ctx, query, expertise, now, afterTime, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available interviews", err)
	}
	return scanListItems(rows)
}

func (s *InterviewReadStore) ListByParticipant(ctx context.Context, userID uuid.UUID, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.InterviewListItem, error) {
	query := `
		SELECT id, job_seeker_id, requested_skills, duration_minutes, status,
		       scheduled_at, expires_at, created_at
		FROM interviews
		WHERE (job_seeker_id = $1 OR interviewer_id = $1)
		  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2::timestamptz, $3::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`

	rows, err := s.db.Query(ctx, query, userID, afterTime, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list interviews by participant", err)
	}
	return scanListItems(rows)
}

func scanListItems(rows pgx.Rows) ([]*queries.InterviewListItem, error) {
	defer rows.Close()

	items := make([]*queries.InterviewListItem, 0)
	for rows.Next() {
		var item queries.InterviewListItem
		err := rows.Scan(
			&item.ID, &item.JobSeekerID, &item.RequestedSkills, &item.DurationMinutes,
			&item.Status, &item.ScheduledAt, &item.ExpiresAt, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan interview list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate interview list", err)
	}
	return items, nil
}
