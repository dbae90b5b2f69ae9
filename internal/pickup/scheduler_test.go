package pickup

import (
	"context"
	"testing"
	"time"
)

func TestStaticSchedulerSeedsWindows(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	scheduler := NewStaticScheduler(start, 3)

	slots, err := scheduler.Slots(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[0].Date != "2024-01-02" || slots[0].TimeWindow != "09:00 - 12:00" {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	if slots[5].Date != "2024-01-04" || slots[5].TimeWindow != "13:00 - 16:00" {
		t.Fatalf("unexpected last slot: %+v", slots[5])
	}
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("expected seeded slots to be available: %+v", s)
		}
	}
}

func TestScheduleRequestedSlot(t *testing.T) {
	scheduler := NewStaticScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2)

	resp, err := scheduler.Schedule(context.Background(), Request{
		ShipmentID: "SHIP-1",
		SlotID:     "slot-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Confirmed {
		t.Fatalf("expected confirmation, got %+v", resp)
	}
	if resp.PickupTime != "2024-01-02 13:00" {
		t.Fatalf("unexpected pickup time: %s", resp.PickupTime)
	}
}

func TestScheduleFallsBackToFirstAvailable(t *testing.T) {
	scheduler := NewStaticScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2)

	resp, err := scheduler.Schedule(context.Background(), Request{ShipmentID: "SHIP-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Confirmed || resp.PickupTime != "2024-01-02 09:00" {
		t.Fatalf("expected first window, got %+v", resp)
	}
}

func TestScheduleUnknownSlot(t *testing.T) {
	scheduler := NewStaticScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1)

	resp, err := scheduler.Schedule(context.Background(), Request{SlotID: "slot-99"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Confirmed {
		t.Fatal("unknown slot must not confirm")
	}
	if resp.Message == "" {
		t.Fatal("expected explanatory message")
	}
}
