package test

import (
	"context"
	"sync"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, id, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: id, Login: login, PasswordHash: passwordHash}
	s.Users[login] = user
	s.ByID[id] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ShipmentRepositoryStub allows tests to customize behaviour per call while
// defaulting to a small in-memory collection.
type ShipmentRepositoryStub struct {
	ListByUserFn        func(context.Context, string) ([]model.Shipment, error)
	GetByIDFn           func(context.Context, string, string) (*model.Shipment, error)
	GetByTrackingCodeFn func(context.Context, string) (*model.Shipment, error)
	AddFn               func(context.Context, *model.Shipment) (*model.Shipment, error)
	UpdateFn            func(context.Context, *model.Shipment) (bool, error)
	DeleteFn            func(context.Context, string, string) (bool, error)
	AddEventFn          func(context.Context, string, model.ShipmentEvent) (bool, error)
	ListActiveFn        func(context.Context, int) ([]model.Shipment, error)

	mu        sync.Mutex
	Shipments []model.Shipment
}

// Seed replaces the in-memory collection.
func (s *ShipmentRepositoryStub) Seed(shipments ...model.Shipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Shipments = append([]model.Shipment(nil), shipments...)
}

// ListByUser lists seeded shipments owned by the user.
func (s *ShipmentRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Shipment, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Shipment, 0)
	for i := range s.Shipments {
		if s.Shipments[i].UserID == userID {
			result = append(result, *s.Shipments[i].Clone())
		}
	}
	return result, nil
}

// GetByID fetches a seeded shipment scoped to its owner.
func (s *ShipmentRepositoryStub) GetByID(ctx context.Context, id, userID string) (*model.Shipment, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Shipments {
		if s.Shipments[i].ID == id && s.Shipments[i].UserID == userID {
			return s.Shipments[i].Clone(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTrackingCode fetches a seeded shipment by code.
func (s *ShipmentRepositoryStub) GetByTrackingCode(ctx context.Context, code string) (*model.Shipment, error) {
	if s.GetByTrackingCodeFn != nil {
		return s.GetByTrackingCodeFn(ctx, code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Shipments {
		if s.Shipments[i].TrackingCode == code {
			return s.Shipments[i].Clone(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Add appends the shipment to the collection.
func (s *ShipmentRepositoryStub) Add(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, shipment)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Shipments {
		if s.Shipments[i].ID == shipment.ID || s.Shipments[i].TrackingCode == shipment.TrackingCode {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	s.Shipments = append(s.Shipments, *shipment.Clone())
	return shipment.Clone(), nil
}

// Update replaces a seeded record matching id+userID.
func (s *ShipmentRepositoryStub) Update(ctx context.Context, shipment *model.Shipment) (bool, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, shipment)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Shipments {
		if s.Shipments[i].ID == shipment.ID && s.Shipments[i].UserID == shipment.UserID {
			s.Shipments[i] = *shipment.Clone()
			return true, nil
		}
	}
	return false, nil
}

// Delete removes a seeded record matching id+userID.
func (s *ShipmentRepositoryStub) Delete(ctx context.Context, id, userID string) (bool, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Shipments {
		if s.Shipments[i].ID == id && s.Shipments[i].UserID == userID {
			s.Shipments = append(s.Shipments[:i], s.Shipments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// AddEvent appends an event and derives the status enum.
func (s *ShipmentRepositoryStub) AddEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error) {
	if s.AddEventFn != nil {
		return s.AddEventFn(ctx, shipmentID, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Shipments {
		if s.Shipments[i].ID != shipmentID {
			continue
		}
		s.Shipments[i].Events = append(s.Shipments[i].Events, event)
		if status, ok := model.StatusForEvent(event.Status); ok {
			s.Shipments[i].Status = status
		}
		return true, nil
	}
	return false, nil
}

// ListActive returns seeded shipments in a non-terminal status.
func (s *ShipmentRepositoryStub) ListActive(ctx context.Context, limit int) ([]model.Shipment, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Shipment, 0)
	for i := range s.Shipments {
		if !s.Shipments[i].Status.Terminal() {
			result = append(result, *s.Shipments[i].Clone())
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
