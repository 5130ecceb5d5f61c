package gateway

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentGateway reads payment records written by the billing service into
// the shared payments table.
type PaymentGateway struct {
	pool *pgxpool.Pool
}

func NewPaymentGateway(pool *pgxpool.Pool) *PaymentGateway {
	return &PaymentGateway{pool: pool}
}

func (g *PaymentGateway) GetPayment(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	query := `SELECT id, owner_user_id, amount_cents, status FROM payments WHERE id = $1`

	var snap shared.PaymentSnapshot
	err := g.pool.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.OwnerUserID, &snap.AmountCents, &snap.Status,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return &snap, nil
}
