package label

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/eparsel/eparsel/internal/config"
)

// Module exposes the label renderer to the fx graph.
var Module = fx.Provide(newGenerator)

type generatorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGenerator(p generatorParams) (Generator, error) {
	return NewHTMLRenderer(p.Config.LabelDir, p.Logger)
}
