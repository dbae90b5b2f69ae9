package usecase

import (
	"go.uber.org/fx"

	"github.com/eparsel/eparsel/internal/config"
	"github.com/eparsel/eparsel/internal/domain/repository"
	"github.com/eparsel/eparsel/internal/label"
	"github.com/eparsel/eparsel/internal/pickup"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewShipmentUseCase,
	NewIDGenerator,
	newBookingUseCase,
)

type bookingParams struct {
	fx.In

	Shipments repository.ShipmentRepository
	Labels    label.Generator
	Pickups   pickup.Scheduler
	IDs       *IDGenerator
	Config    *config.Config
}

func newBookingUseCase(p bookingParams) *BookingUseCase {
	return NewBookingUseCase(p.Shipments, p.Labels, p.Pickups, p.IDs, p.Config.CancellationWindow)
}
