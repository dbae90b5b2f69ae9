package repository

import (
	"context"

	"github.com/eparsel/eparsel/internal/domain/model"
)

// ShipmentRepository describes persistence operations with shipment records.
// Lookups signal a miss with domain ErrNotFound; mutations targeting a
// missing record report false instead of an error.
type ShipmentRepository interface {
	// ListByUser returns all shipments owned by the user, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Shipment, error)
	// GetByID fetches one shipment scoped to its owner.
	GetByID(ctx context.Context, id, userID string) (*model.Shipment, error)
	// GetByTrackingCode fetches a shipment regardless of owner. Tracking
	// codes are shared with recipients, so the lookup is deliberately global.
	GetByTrackingCode(ctx context.Context, code string) (*model.Shipment, error)
	// Add stores a fully formed shipment. The caller assigns the ID.
	Add(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error)
	// Update replaces the stored record matching id+userID.
	Update(ctx context.Context, shipment *model.Shipment) (bool, error)
	// Delete removes exactly one record matching id+userID.
	Delete(ctx context.Context, id, userID string) (bool, error)
	// AddEvent appends an event to the shipment's history and derives the
	// status enum from the event label where the label is recognized.
	AddEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error)
	// ListActive returns shipments in a non-terminal status, oldest first.
	ListActive(ctx context.Context, limit int) ([]model.Shipment, error)
}
