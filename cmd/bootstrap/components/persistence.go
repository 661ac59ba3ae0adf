package components

import (
	"shortstay/internal/infra/db"
	"shortstay/internal/infra/repository"
	"shortstay/internal/infra/uow"
	"shortstay/internal/usecase/queries"
	"shortstay/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewPropertyRepository,
			fx.As(new(shared.PropertyCatalog)),
		),
		fx.Annotate(
			repository.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			repository.NewWalletRepository,
			fx.As(new(shared.WalletRepository)),
		),
		fx.Annotate(
			repository.NewAvailabilityRepository,
			fx.As(new(shared.AvailabilityRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
