package handlers

import (
	"context"
	"time"

	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/pickup"
	"github.com/eparsel/eparsel/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
}

// BookingFacade encapsulates the booking workflow exposed via HTTP.
type BookingFacade interface {
	BookShipment(ctx context.Context, userID string, req usecase.BookingRequest) (*model.Shipment, error)
	CancelBooking(ctx context.Context, userID, trackingCode string) error
	CancellationDeadline(shipment *model.Shipment) time.Time
	Rates(weight, speed string) []model.Rate
	PickupSlots(ctx context.Context) ([]pickup.Slot, error)
}

// ShipmentFacade provides shipment record operations.
type ShipmentFacade interface {
	Shipments(ctx context.Context, userID string) ([]model.Shipment, error)
	Shipment(ctx context.Context, id, userID string) (*model.Shipment, error)
	DeleteShipment(ctx context.Context, id, userID string) (bool, error)
	UpdateShipmentStatus(ctx context.Context, id, userID string, status model.ShipmentStatus, event *model.ShipmentEvent) (bool, error)
	AppendShipmentEvent(ctx context.Context, id, userID string, event model.ShipmentEvent) (bool, error)
}

// TrackingFacade resolves public tracking lookups.
type TrackingFacade interface {
	Track(ctx context.Context, trackingCode string) (*model.Shipment, error)
}

// ShippingFacade aggregates the full set of operations used across handlers.
type ShippingFacade interface {
	AuthFacade
	BookingFacade
	ShipmentFacade
	TrackingFacade
}
