package components

import (
	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/infra/repository"
	"restock-sentinel/internal/ledger"
	"restock-sentinel/internal/watcher"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		repository.NewKVStore,
		fx.Annotate(
			repository.NewTransactionRepository,
			fx.As(new(ledger.Store)),
		),
		fx.Annotate(
			repository.NewOutboxRepository,
			fx.As(new(ledger.EventBus)),
		),
		fx.Annotate(
			repository.NewWatchRepository,
			fx.As(new(watcher.WatchSource)),
		),
		fx.Annotate(
			repository.NewRetailerRepository,
			fx.As(new(watcher.RetailerDirectory)),
		),
		fx.Annotate(
			repository.NewWindowStore,
			fx.As(new(watcher.WindowSource)),
		),
		fx.Annotate(
			repository.NewWeightRepository,
			fx.As(new(dispatch.WeightSource)),
		),
		func(kv *repository.KVStore) dispatch.Locker { return kv },
	),
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}
