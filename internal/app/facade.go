package app

import (
	"context"
	"time"

	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/pickup"
	"github.com/eparsel/eparsel/internal/usecase"
)

// TrackingProvider fetches carrier tracking entries for a code.
type TrackingProvider interface {
	Fetch(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error)
}

// ShippingFacade aggregates the use cases behind one application surface
// consumed by the HTTP layer and the tracking worker.
type ShippingFacade struct {
	auth      *usecase.AuthUseCase
	shipments *usecase.ShipmentUseCase
	bookings  *usecase.BookingUseCase
	pickups   pickup.Scheduler
	tracking  TrackingProvider
}

func NewShippingFacade(auth *usecase.AuthUseCase, shipments *usecase.ShipmentUseCase, bookings *usecase.BookingUseCase, pickups pickup.Scheduler, tracking TrackingProvider) *ShippingFacade {
	return &ShippingFacade{auth: auth, shipments: shipments, bookings: bookings, pickups: pickups, tracking: tracking}
}

func (f *ShippingFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *ShippingFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *ShippingFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *ShippingFacade) BookShipment(ctx context.Context, userID string, req usecase.BookingRequest) (*model.Shipment, error) {
	return f.bookings.Book(ctx, userID, req)
}

func (f *ShippingFacade) CancelBooking(ctx context.Context, userID, trackingCode string) error {
	return f.bookings.Cancel(ctx, userID, trackingCode)
}

func (f *ShippingFacade) CancellationDeadline(shipment *model.Shipment) time.Time {
	return f.bookings.CancellationDeadline(shipment)
}

func (f *ShippingFacade) Rates(weight, speed string) []model.Rate {
	return f.bookings.Rates(weight, speed)
}

func (f *ShippingFacade) PickupSlots(ctx context.Context) ([]pickup.Slot, error) {
	return f.pickups.Slots(ctx)
}

func (f *ShippingFacade) Shipments(ctx context.Context, userID string) ([]model.Shipment, error) {
	return f.shipments.ListByUser(ctx, userID)
}

func (f *ShippingFacade) Shipment(ctx context.Context, id, userID string) (*model.Shipment, error) {
	return f.shipments.GetByID(ctx, id, userID)
}

func (f *ShippingFacade) DeleteShipment(ctx context.Context, id, userID string) (bool, error) {
	return f.shipments.Delete(ctx, id, userID)
}

func (f *ShippingFacade) UpdateShipmentStatus(ctx context.Context, id, userID string, status model.ShipmentStatus, event *model.ShipmentEvent) (bool, error) {
	return f.shipments.UpdateStatus(ctx, id, userID, status, event)
}

func (f *ShippingFacade) AppendShipmentEvent(ctx context.Context, id, userID string, event model.ShipmentEvent) (bool, error) {
	return f.shipments.AppendEvent(ctx, id, userID, event)
}

func (f *ShippingFacade) Track(ctx context.Context, trackingCode string) (*model.Shipment, error) {
	return f.shipments.Track(ctx, trackingCode)
}

func (f *ShippingFacade) ShipmentsForTracking(ctx context.Context, limit int) ([]model.Shipment, error) {
	return f.shipments.ListActive(ctx, limit)
}

func (f *ShippingFacade) CheckTracking(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error) {
	return f.tracking.Fetch(ctx, trackingCode)
}

func (f *ShippingFacade) RecordTrackingEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error) {
	return f.shipments.AddEvent(ctx, shipmentID, event)
}
