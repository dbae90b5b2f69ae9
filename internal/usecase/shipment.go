package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/domain/repository"
)

// ShipmentUseCase encapsulates shipment lifecycle logic.
type ShipmentUseCase struct {
	shipments repository.ShipmentRepository
}

// NewShipmentUseCase constructs ShipmentUseCase.
func NewShipmentUseCase(shipments repository.ShipmentRepository) *ShipmentUseCase {
	return &ShipmentUseCase{shipments: shipments}
}

// ListByUser returns shipments owned by the user, newest first.
func (u *ShipmentUseCase) ListByUser(ctx context.Context, userID string) ([]model.Shipment, error) {
	return u.shipments.ListByUser(ctx, userID)
}

// GetByID fetches one shipment scoped to its owner.
func (u *ShipmentUseCase) GetByID(ctx context.Context, id, userID string) (*model.Shipment, error) {
	return u.shipments.GetByID(ctx, id, userID)
}

// Delete removes the shipment owned by the user.
func (u *ShipmentUseCase) Delete(ctx context.Context, id, userID string) (bool, error) {
	return u.shipments.Delete(ctx, id, userID)
}

// Track resolves a tracking code to its shipment regardless of the caller.
// Recipients track parcels they do not own, so no user scope applies.
func (u *ShipmentUseCase) Track(ctx context.Context, trackingCode string) (*model.Shipment, error) {
	if !ValidateTrackingCode(trackingCode) {
		return nil, domainErrors.ErrInvalidTrackingCode
	}
	return u.shipments.GetByTrackingCode(ctx, trackingCode)
}

// AddEvent appends a carrier event to the shipment history. The status
// enum follows the event label where the label is recognized.
func (u *ShipmentUseCase) AddEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error) {
	return u.shipments.AddEvent(ctx, shipmentID, event)
}

// AppendEvent is the owner-facing event path: the caller must own the
// shipment, then the append goes through the derivation path.
func (u *ShipmentUseCase) AppendEvent(ctx context.Context, id, userID string, event model.ShipmentEvent) (bool, error) {
	if _, err := u.shipments.GetByID(ctx, id, userID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.shipments.AddEvent(ctx, id, event)
}

// UpdateStatus sets the status enum directly from the fixed palette. This
// administrative path bypasses event derivation; an optional event is
// logged verbatim alongside the change.
func (u *ShipmentUseCase) UpdateStatus(ctx context.Context, id, userID string, status model.ShipmentStatus, event *model.ShipmentEvent) (bool, error) {
	if !model.ValidStatus(status) {
		return false, domainErrors.ErrUnknownStatus
	}

	shipment, err := u.shipments.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	shipment.Status = status
	if event != nil {
		shipment.Events = append(shipment.Events, *event)
	}

	return u.shipments.Update(ctx, shipment)
}

// ListActive returns non-terminal shipments for tracking refresh.
func (u *ShipmentUseCase) ListActive(ctx context.Context, limit int) ([]model.Shipment, error) {
	return u.shipments.ListActive(ctx, limit)
}
