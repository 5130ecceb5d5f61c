package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notifier writes in-app notifications. Delivery is fire-and-forget: failures
// are logged and swallowed so a missed notification never fails a command.
type Notifier struct {
	pool *pgxpool.Pool
}

func NewNotifier(pool *pgxpool.Pool) *Notifier {
	return &Notifier{pool: pool}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, kind, title, message string, data map[string]any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Warn("failed to marshal notification payload", "user_id", userID, "kind", kind, "error", err.Error())
		payload = []byte("{}")
	}

	query := `
		INSERT INTO notifications (id, user_id, kind, title, message, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`

	if _, err := n.pool.Exec(ctx, query, uuid.New(), userID, kind, title, message, payload); err != nil {
		slog.Warn("failed to store notification", "user_id", userID, "kind", kind, "error", err.Error())
	}
}
