package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
)

// now is swapped out in tests.
var now = time.Now

type userEnvelope struct {
	Version int          `json:"version"`
	Users   []model.User `json:"users"`
}

// UserStore mirrors registered users to its own durable slot with the same
// write-through snapshot discipline as the shipment store.
type UserStore struct {
	mu     sync.RWMutex
	users  []model.User
	slot   Slot
	logger *slog.Logger
}

// NewUserStore builds the store and loads the persisted collection.
func NewUserStore(slot Slot, logger *slog.Logger) *UserStore {
	s := &UserStore{slot: slot, logger: logger}
	s.load()
	return s
}

func (s *UserStore) load() {
	data, ok, err := s.slot.Load()
	if err != nil {
		s.logger.Warn("load user snapshot failed, starting empty", slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	var env userEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Version != envelopeVersion {
		s.logger.Warn("parse user snapshot failed, starting empty")
		return
	}
	s.users = env.Users
}

func (s *UserStore) persist() error {
	data, err := json.Marshal(userEnvelope{Version: envelopeVersion, Users: s.users})
	if err != nil {
		return err
	}
	return s.slot.Store(data)
}

// Create registers a user with a unique login.
func (s *UserStore) Create(ctx context.Context, id, login, passwordHash string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Login == login {
			return nil, domainErrors.ErrAlreadyExists
		}
	}

	user := model.User{ID: id, Login: login, PasswordHash: passwordHash, CreatedAt: now()}
	s.users = append(s.users, user)
	if err := s.persist(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return nil, err
	}
	return &user, nil
}

// GetByLogin fetches a user by login.
func (s *UserStore) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Login == login {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a user by identifier.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
