package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
)

// envelopeVersion identifies the persisted snapshot schema. Bump it together
// with a migration branch in decode.
const envelopeVersion = 1

type shipmentEnvelope struct {
	Version   int              `json:"version"`
	Shipments []model.Shipment `json:"shipments"`
}

// ShipmentStore keeps the authoritative in-process shipment collection,
// mirrored to a durable slot after every successful mutation. The whole
// collection is re-serialized on each write; with one record store per
// process and session-sized data the full snapshot stays cheap.
type ShipmentStore struct {
	mu        sync.RWMutex
	shipments []model.Shipment
	slot      Slot
	logger    *slog.Logger
}

// NewShipmentStore builds the store and loads the persisted collection.
// An absent or unparsable payload yields an empty collection, never an error.
func NewShipmentStore(slot Slot, logger *slog.Logger) *ShipmentStore {
	s := &ShipmentStore{slot: slot, logger: logger}
	s.load()
	return s
}

func (s *ShipmentStore) load() {
	data, ok, err := s.slot.Load()
	if err != nil {
		s.logger.Warn("load shipment snapshot failed, starting empty", slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	shipments, err := decodeShipments(data)
	if err != nil {
		s.logger.Warn("parse shipment snapshot failed, starting empty", slog.String("error", err.Error()))
		return
	}
	s.shipments = shipments
}

// decodeShipments accepts the current versioned envelope and migrates the
// legacy payload format, a bare record array without envelope.
func decodeShipments(data []byte) ([]model.Shipment, error) {
	var env shipmentEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version == envelopeVersion {
		return env.Shipments, nil
	}

	var legacy []model.Shipment
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	return legacy, nil
}

// persist overwrites the slot with the full collection. Callers hold the
// write lock.
func (s *ShipmentStore) persist() error {
	data, err := json.Marshal(shipmentEnvelope{Version: envelopeVersion, Shipments: s.shipments})
	if err != nil {
		return err
	}
	return s.slot.Store(data)
}

// ListByUser returns shipments owned by the user, newest first.
func (s *ShipmentStore) ListByUser(ctx context.Context, userID string) ([]model.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Shipment, 0)
	for i := range s.shipments {
		if s.shipments[i].UserID == userID {
			result = append(result, *s.shipments[i].Clone())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetByID fetches a shipment scoped to its owner.
func (s *ShipmentStore) GetByID(ctx context.Context, id, userID string) (*model.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.shipments {
		if s.shipments[i].ID == id && s.shipments[i].UserID == userID {
			return s.shipments[i].Clone(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTrackingCode fetches a shipment by code without an owner restriction.
func (s *ShipmentStore) GetByTrackingCode(ctx context.Context, code string) (*model.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.shipments {
		if s.shipments[i].TrackingCode == code {
			return s.shipments[i].Clone(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Add stores a new shipment. Both the ID and the tracking code must be
// unique within the collection.
func (s *ShipmentStore) Add(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shipments {
		if s.shipments[i].ID == shipment.ID || s.shipments[i].TrackingCode == shipment.TrackingCode {
			return nil, domainErrors.ErrAlreadyExists
		}
	}

	s.shipments = append(s.shipments, *shipment.Clone())
	if err := s.persist(); err != nil {
		s.shipments = s.shipments[:len(s.shipments)-1]
		return nil, err
	}
	return shipment.Clone(), nil
}

// Update replaces the stored record matching id+userID.
func (s *ShipmentStore) Update(ctx context.Context, shipment *model.Shipment) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shipments {
		if s.shipments[i].ID == shipment.ID && s.shipments[i].UserID == shipment.UserID {
			prev := s.shipments[i]
			s.shipments[i] = *shipment.Clone()
			if err := s.persist(); err != nil {
				s.shipments[i] = prev
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Delete removes exactly one record matching id+userID.
func (s *ShipmentStore) Delete(ctx context.Context, id, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shipments {
		if s.shipments[i].ID == id && s.shipments[i].UserID == userID {
			removed := s.shipments[i]
			s.shipments = append(s.shipments[:i], s.shipments[i+1:]...)
			if err := s.persist(); err != nil {
				s.shipments = append(s.shipments, model.Shipment{})
				copy(s.shipments[i+1:], s.shipments[i:])
				s.shipments[i] = removed
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// AddEvent appends an event to the shipment history and re-derives the
// status enum from the event label. Unrecognized labels keep the current
// enum value while the event is still logged, so the history can carry
// finer-grained occurrences than the status palette expresses.
func (s *ShipmentStore) AddEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shipments {
		if s.shipments[i].ID != shipmentID {
			continue
		}

		prevStatus := s.shipments[i].Status
		s.shipments[i].Events = append(s.shipments[i].Events, event)
		if status, ok := model.StatusForEvent(event.Status); ok {
			s.shipments[i].Status = status
		}
		if err := s.persist(); err != nil {
			s.shipments[i].Events = s.shipments[i].Events[:len(s.shipments[i].Events)-1]
			s.shipments[i].Status = prevStatus
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ListActive returns shipments in a non-terminal status, oldest first.
func (s *ShipmentStore) ListActive(ctx context.Context, limit int) ([]model.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Shipment, 0)
	for i := range s.shipments {
		if !s.shipments[i].Status.Terminal() {
			result = append(result, *s.shipments[i].Clone())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
