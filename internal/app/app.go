package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/eparsel/eparsel/internal/adapter/carrier"
	"github.com/eparsel/eparsel/internal/config"
	"github.com/eparsel/eparsel/internal/pickup"
	"github.com/eparsel/eparsel/internal/usecase"
	"github.com/eparsel/eparsel/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newShippingFacade,
		newHTTPServer,
		newTrackingUpdater,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Shipments *usecase.ShipmentUseCase
	Bookings  *usecase.BookingUseCase
	Pickups   pickup.Scheduler
	Carrier   carrier.Client
}

func newShippingFacade(p facadeParams) *ShippingFacade {
	return NewShippingFacade(p.Auth, p.Shipments, p.Bookings, p.Pickups, p.Carrier)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *ShippingFacade
	Config *config.Config
	Logger *slog.Logger
}

func newTrackingUpdater(p workerParams) *worker.TrackingUpdater {
	return worker.NewTrackingUpdater(
		p.Facade,
		p.Config.TrackPollInterval,
		p.Config.MaxShipmentsBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.TrackingUpdater
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting eparsel", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("eparsel stopped")
			return nil
		},
	})
}
