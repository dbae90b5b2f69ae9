package snapshot

import (
	"log/slog"

	"github.com/eparsel/eparsel/internal/domain/repository"
)

// Storage bundles the snapshot-backed repositories behind the common
// factory contract. It is the zero-dependency alternative to the
// PostgreSQL storage for single-process deployments.
type Storage struct {
	shipments *ShipmentStore
	users     *UserStore
}

// New builds snapshot storage over the two provided slots.
func New(shipmentSlot, userSlot Slot, logger *slog.Logger) *Storage {
	return &Storage{
		shipments: NewShipmentStore(shipmentSlot, logger),
		users:     NewUserStore(userSlot, logger),
	}
}

func (s *Storage) Shipments() repository.ShipmentRepository {
	return s.shipments
}

func (s *Storage) Users() repository.UserRepository {
	return s.users
}
