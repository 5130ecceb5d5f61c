package components

import (
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/db"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/readstore"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/uow"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/queries"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read side
		fx.Annotate(
			readstore.NewInterviewReadStore,
			fx.As(new(queries.InterviewReadStore)),
		),
		fx.Annotate(
			readstore.NewCommandReads,
			fx.As(new(shared.CommandReads)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
