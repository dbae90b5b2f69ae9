package storage

import (
	"context"
	"log/slog"
	"path/filepath"

	"go.uber.org/fx"

	"github.com/eparsel/eparsel/internal/config"
	"github.com/eparsel/eparsel/internal/domain/repository"
	"github.com/eparsel/eparsel/internal/storage/postgres"
	"github.com/eparsel/eparsel/internal/storage/snapshot"
)

// Module wires the repository factory. A configured database URI selects
// PostgreSQL; otherwise the file snapshot store serves.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.ShipmentRepository { return f.Shipments() },
	),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI != "" {
		storage, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				storage.Close()
				return nil
			},
		})
		return storage, nil
	}

	shipmentSlot, err := snapshot.NewFileSlot(p.Config.StorePath)
	if err != nil {
		return nil, err
	}
	userSlot, err := snapshot.NewFileSlot(filepath.Join(filepath.Dir(p.Config.StorePath), "e_parsel_users.json"))
	if err != nil {
		return nil, err
	}
	return snapshot.New(shipmentSlot, userSlot, p.Logger), nil
}
