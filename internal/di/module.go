package di

import (
	"go.uber.org/fx"

	"github.com/eparsel/eparsel/internal/adapter/carrier"
	"github.com/eparsel/eparsel/internal/app"
	"github.com/eparsel/eparsel/internal/config"
	"github.com/eparsel/eparsel/internal/label"
	"github.com/eparsel/eparsel/internal/logger"
	"github.com/eparsel/eparsel/internal/pickup"
	"github.com/eparsel/eparsel/internal/pkg/auth"
	"github.com/eparsel/eparsel/internal/server/http/router"
	"github.com/eparsel/eparsel/internal/storage"
	"github.com/eparsel/eparsel/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		carrier.Module,
		label.Module,
		pickup.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
