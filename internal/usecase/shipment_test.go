package usecase_test

import (
	. "github.com/eparsel/eparsel/internal/usecase"

	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/test"
)

func seededShipment(id, userID, code string) model.Shipment {
	return model.Shipment{
		ID:           id,
		UserID:       userID,
		TrackingCode: code,
		Status:       model.ShipmentStatusPending,
		CreatedAt:    time.Unix(100, 0),
		Events:       []model.ShipmentEvent{{Date: time.Unix(100, 0), Status: "Shipment created"}},
	}
}

func TestTrackValidatesFormat(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	repo.Seed(seededShipment("SHIP-1", "user-1", "EP0000001FI"))
	uc := NewShipmentUseCase(repo)

	if _, err := uc.Track(context.Background(), "not-a-code"); !errors.Is(err, domainErrors.ErrInvalidTrackingCode) {
		t.Fatalf("expected ErrInvalidTrackingCode, got %v", err)
	}

	got, err := uc.Track(context.Background(), "EP0000001FI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "SHIP-1" {
		t.Fatalf("expected SHIP-1, got %s", got.ID)
	}

	if _, err := uc.Track(context.Background(), "EP9999999FI"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusPalette(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	repo.Seed(seededShipment("SHIP-1", "user-1", "EP0000001FI"))
	uc := NewShipmentUseCase(repo)
	ctx := context.Background()

	found, err := uc.UpdateStatus(ctx, "SHIP-1", "user-1", model.ShipmentStatusDelivered, nil)
	if err != nil || !found {
		t.Fatalf("expected update, got found=%v err=%v", found, err)
	}
	got, _ := repo.GetByID(ctx, "SHIP-1", "user-1")
	if got.Status != model.ShipmentStatusDelivered {
		t.Fatalf("expected delivered, got %s", got.Status)
	}

	if _, err := uc.UpdateStatus(ctx, "SHIP-1", "user-1", "lost", nil); !errors.Is(err, domainErrors.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}

	found, err = uc.UpdateStatus(ctx, "SHIP-9", "user-1", model.ShipmentStatusDelivered, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("missing shipment must report false")
	}
}

func TestUpdateStatusLogsOptionalEventVerbatim(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	repo.Seed(seededShipment("SHIP-1", "user-1", "EP0000001FI"))
	uc := NewShipmentUseCase(repo)
	ctx := context.Background()

	event := &model.ShipmentEvent{Date: time.Unix(200, 0), Status: "Manual correction"}
	found, err := uc.UpdateStatus(ctx, "SHIP-1", "user-1", model.ShipmentStatusException, event)
	if err != nil || !found {
		t.Fatalf("expected update, got found=%v err=%v", found, err)
	}

	got, _ := repo.GetByID(ctx, "SHIP-1", "user-1")
	if got.Status != model.ShipmentStatusException {
		t.Fatalf("expected exception, got %s", got.Status)
	}
	if len(got.Events) != 2 || got.Events[1].Status != "Manual correction" {
		t.Fatalf("event must be logged verbatim, got %+v", got.Events)
	}
}

func TestAppendEventRequiresOwnership(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	repo.Seed(seededShipment("SHIP-1", "user-1", "EP0000001FI"))
	uc := NewShipmentUseCase(repo)
	ctx := context.Background()

	found, err := uc.AppendEvent(ctx, "SHIP-1", "user-2", model.ShipmentEvent{Status: "Delivered"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("foreign owner must not append events")
	}

	found, err = uc.AppendEvent(ctx, "SHIP-1", "user-1", model.ShipmentEvent{Date: time.Unix(200, 0), Status: "Delivered"})
	if err != nil || !found {
		t.Fatalf("expected append, got found=%v err=%v", found, err)
	}
	got, _ := repo.GetByID(ctx, "SHIP-1", "user-1")
	if got.Status != model.ShipmentStatusDelivered {
		t.Fatalf("expected derived delivered, got %s", got.Status)
	}
}

func TestDeleteDelegates(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	repo.Seed(seededShipment("SHIP-1", "user-1", "EP0000001FI"))
	uc := NewShipmentUseCase(repo)
	ctx := context.Background()

	found, err := uc.Delete(ctx, "SHIP-1", "user-1")
	if err != nil || !found {
		t.Fatalf("expected delete, got found=%v err=%v", found, err)
	}
	found, err = uc.Delete(ctx, "SHIP-1", "user-1")
	if err != nil || found {
		t.Fatalf("second delete must report false, got found=%v err=%v", found, err)
	}
}
