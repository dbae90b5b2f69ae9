package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/pickup"
	"github.com/eparsel/eparsel/internal/usecase"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, error)
}

// Register delegates to provided function or returns a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate delegates to provided function or returns a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken resolves tokens to the configured user.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "user-1", nil
}

// BookingFacadeStub simulates booking operations.
type BookingFacadeStub struct {
	BookFn        func(context.Context, string, usecase.BookingRequest) (*model.Shipment, error)
	CancelFn      func(context.Context, string, string) error
	RatesFn       func(string, string) []model.Rate
	PickupSlotsFn func(context.Context) ([]pickup.Slot, error)
}

// BookShipment delegates or returns a minimal booked shipment.
func (s BookingFacadeStub) BookShipment(ctx context.Context, userID string, req usecase.BookingRequest) (*model.Shipment, error) {
	if s.BookFn != nil {
		return s.BookFn(ctx, userID, req)
	}
	return &model.Shipment{ID: "SHIP-1", UserID: userID, TrackingCode: "EP0000001FI", Status: model.ShipmentStatusPending}, nil
}

// CancelBooking executes configured cancellation handler.
func (s BookingFacadeStub) CancelBooking(ctx context.Context, userID, trackingCode string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, trackingCode)
	}
	return nil
}

// CancellationDeadline reports a fixed deadline.
func (s BookingFacadeStub) CancellationDeadline(shipment *model.Shipment) time.Time {
	return shipment.CreatedAt.Add(24 * time.Hour)
}

// Rates returns configured quotes.
func (s BookingFacadeStub) Rates(weight, speed string) []model.Rate {
	if s.RatesFn != nil {
		return s.RatesFn(weight, speed)
	}
	return []model.Rate{{Carrier: "Posti", Service: "Parcel", Price: 8.99, EstimatedDays: 3}}
}

// PickupSlots returns configured pickup windows.
func (s BookingFacadeStub) PickupSlots(ctx context.Context) ([]pickup.Slot, error) {
	if s.PickupSlotsFn != nil {
		return s.PickupSlotsFn(ctx)
	}
	return []pickup.Slot{{ID: "slot-1", Date: "2024-01-02", TimeWindow: "09:00 - 12:00", Available: true}}, nil
}

// ShipmentFacadeStub simulates shipment record operations.
type ShipmentFacadeStub struct {
	ShipmentsFn    func(context.Context, string) ([]model.Shipment, error)
	ShipmentFn     func(context.Context, string, string) (*model.Shipment, error)
	DeleteFn       func(context.Context, string, string) (bool, error)
	UpdateStatusFn func(context.Context, string, string, model.ShipmentStatus, *model.ShipmentEvent) (bool, error)
	AppendEventFn  func(context.Context, string, string, model.ShipmentEvent) (bool, error)
}

// Shipments returns predefined shipments for given user.
func (s ShipmentFacadeStub) Shipments(ctx context.Context, userID string) ([]model.Shipment, error) {
	if s.ShipmentsFn != nil {
		return s.ShipmentsFn(ctx, userID)
	}
	return []model.Shipment{{ID: "SHIP-1", UserID: userID}}, nil
}

// Shipment returns one predefined shipment.
func (s ShipmentFacadeStub) Shipment(ctx context.Context, id, userID string) (*model.Shipment, error) {
	if s.ShipmentFn != nil {
		return s.ShipmentFn(ctx, id, userID)
	}
	return &model.Shipment{ID: id, UserID: userID}, nil
}

// DeleteShipment executes configured delete handler.
func (s ShipmentFacadeStub) DeleteShipment(ctx context.Context, id, userID string) (bool, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id, userID)
	}
	return true, nil
}

// UpdateShipmentStatus executes configured update handler.
func (s ShipmentFacadeStub) UpdateShipmentStatus(ctx context.Context, id, userID string, status model.ShipmentStatus, event *model.ShipmentEvent) (bool, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, userID, status, event)
	}
	return true, nil
}

// AppendShipmentEvent executes configured append handler.
func (s ShipmentFacadeStub) AppendShipmentEvent(ctx context.Context, id, userID string, event model.ShipmentEvent) (bool, error) {
	if s.AppendEventFn != nil {
		return s.AppendEventFn(ctx, id, userID, event)
	}
	return true, nil
}

// TrackingFacadeStub resolves public tracking lookups.
type TrackingFacadeStub struct {
	TrackFn func(context.Context, string) (*model.Shipment, error)
}

// Track returns a predefined shipment for the code.
func (s TrackingFacadeStub) Track(ctx context.Context, trackingCode string) (*model.Shipment, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, trackingCode)
	}
	return &model.Shipment{TrackingCode: trackingCode, Status: model.ShipmentStatusInTransit}, nil
}

// ShippingFacadeStub aggregates the handler-facing facade stubs.
type ShippingFacadeStub struct {
	AuthFacadeStub
	BookingFacadeStub
	ShipmentFacadeStub
	TrackingFacadeStub
}

// EventRecordCall stores information about RecordTrackingEvent invocations.
type EventRecordCall struct {
	ShipmentID string
	Event      model.ShipmentEvent
}

// WorkerFacadeStub mimics worker interactions with the shipping facade.
type WorkerFacadeStub struct {
	Batches   [][]model.Shipment
	BatchesFn func(context.Context, int) ([]model.Shipment, error)
	CheckFn   func(context.Context, string) ([]model.ShipmentEvent, error)
	RecordFn  func(context.Context, string, model.ShipmentEvent) (bool, error)
	Records   []EventRecordCall

	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// ShipmentsForTracking returns batches from configured queue.
func (s *WorkerFacadeStub) ShipmentsForTracking(ctx context.Context, limit int) ([]model.Shipment, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckTracking returns configured carrier updates.
func (s *WorkerFacadeStub) CheckTracking(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, trackingCode)
	}
	return []model.ShipmentEvent{{Date: time.Now(), Status: "In transit"}}, nil
}

// RecordTrackingEvent records append requests.
func (s *WorkerFacadeStub) RecordTrackingEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, shipmentID, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, EventRecordCall{ShipmentID: shipmentID, Event: event})
	return true, nil
}
