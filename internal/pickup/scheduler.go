package pickup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Slot is one bookable pickup window offered by a carrier.
type Slot struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	TimeWindow string `json:"timeWindow"`
	Available  bool   `json:"available"`
}

// Request asks for a pickup at the shipment's origin address.
type Request struct {
	ShipmentID    string
	CarrierName   string
	PickupAddress string
	SlotID        string
}

// Response reports whether the pickup was confirmed and for when.
type Response struct {
	Confirmed  bool
	PickupTime string
	Message    string
}

// Scheduler books carrier pickups for outgoing shipments.
type Scheduler interface {
	Slots(ctx context.Context) ([]Slot, error)
	Schedule(ctx context.Context, req Request) (*Response, error)
}

// StaticScheduler offers a fixed window table seeded relative to its
// construction time. Carrier slot APIs stay behind this seam.
type StaticScheduler struct {
	mu    sync.RWMutex
	slots []Slot
}

// NewStaticScheduler seeds two pickup windows per day for the next days.
func NewStaticScheduler(start time.Time, days int) *StaticScheduler {
	if days <= 0 {
		days = 3
	}
	windows := []string{"09:00 - 12:00", "13:00 - 16:00"}
	slots := make([]Slot, 0, days*len(windows))
	for d := 1; d <= days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		for w, window := range windows {
			slots = append(slots, Slot{
				ID:         fmt.Sprintf("slot-%d", (d-1)*len(windows)+w+1),
				Date:       date,
				TimeWindow: window,
				Available:  true,
			})
		}
	}
	return &StaticScheduler{slots: slots}
}

// Slots lists the currently offered pickup windows.
func (s *StaticScheduler) Slots(ctx context.Context) ([]Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out, nil
}

// Schedule books the requested slot, falling back to the first available
// window when no slot was chosen.
func (s *StaticScheduler) Schedule(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chosen *Slot
	if req.SlotID != "" {
		for i := range s.slots {
			if s.slots[i].ID == req.SlotID && s.slots[i].Available {
				chosen = &s.slots[i]
				break
			}
		}
	} else {
		for i := range s.slots {
			if s.slots[i].Available {
				chosen = &s.slots[i]
				break
			}
		}
	}

	if chosen == nil {
		return &Response{Confirmed: false, Message: "no available pickup slots"}, nil
	}

	start := strings.SplitN(chosen.TimeWindow, " - ", 2)[0]
	return &Response{
		Confirmed:  true,
		PickupTime: chosen.Date + " " + start,
	}, nil
}
