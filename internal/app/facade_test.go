package app

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/label"
	"github.com/eparsel/eparsel/internal/pickup"
	testhelpers "github.com/eparsel/eparsel/internal/test"
	"github.com/eparsel/eparsel/internal/usecase"
)

type labelGeneratorStub struct{}

func (labelGeneratorStub) Generate(ctx context.Context, req label.Request) (*label.Response, error) {
	return &label.Response{LabelURL: "file:///labels/" + req.ShipmentID + ".html"}, nil
}

type fetcherStub struct {
	events []model.ShipmentEvent
	err    error
}

func (f fetcherStub) Fetch(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error) {
	return f.events, f.err
}

func newFacade(t *testing.T, tracking TrackingProvider) (*ShippingFacade, *testhelpers.UserRepositoryStub, *testhelpers.ShipmentRepositoryStub) {
	t.Helper()

	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (string, error) { return "u-99", nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	repo := &testhelpers.ShipmentRepositoryStub{}
	shipmentUC := usecase.NewShipmentUseCase(repo)

	ids, err := usecase.NewIDGenerator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scheduler := pickup.NewStaticScheduler(time.Now(), 2)
	bookingUC := usecase.NewBookingUseCase(repo, labelGeneratorStub{}, scheduler, ids, 24*time.Hour)

	facade := NewShippingFacade(authUC, shipmentUC, bookingUC, scheduler, tracking)
	return facade, users, repo
}

func TestShippingFacadeAuth(t *testing.T) {
	facade, users, _ := newFacade(t, fetcherStub{})

	token, err := facade.Register(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := users.GetByLogin(context.Background(), "user")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Login != "user" {
		t.Fatalf("unexpected stored login %q", stored.Login)
	}

	token, err = facade.Authenticate(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != "u-99" {
		t.Fatalf("expected id u-99, got %q", id)
	}
}

func TestShippingFacadeBooking(t *testing.T) {
	facade, _, repo := newFacade(t, fetcherStub{})

	shipment, err := facade.BookShipment(context.Background(), "u-1", usecase.BookingRequest{
		Weight:        "2",
		Dimensions:    model.Dimensions{Length: "30", Width: "20", Height: "10"},
		Pickup:        "Mannerheimintie 1, Helsinki",
		Delivery:      "Aleksanterinkatu 2, Tampere",
		Carrier:       model.Carrier{Name: "Posti", Price: 8.99},
		DeliverySpeed: "standard",
	})
	if err != nil {
		t.Fatalf("book returned error: %v", err)
	}
	if shipment.UserID != "u-1" || shipment.Status != model.ShipmentStatusPending {
		t.Fatalf("unexpected shipment: %+v", shipment)
	}

	deadline := facade.CancellationDeadline(shipment)
	if !deadline.Equal(shipment.CreatedAt.Add(24 * time.Hour)) {
		t.Fatalf("unexpected deadline: %v", deadline)
	}

	rates := facade.Rates("2", "standard")
	if len(rates) == 0 {
		t.Fatal("expected rate quotes")
	}

	slots, err := facade.PickupSlots(context.Background())
	if err != nil {
		t.Fatalf("pickup slots returned error: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}

	if err := facade.CancelBooking(context.Background(), "u-1", shipment.TrackingCode); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	stored, err := repo.GetByTrackingCode(context.Background(), shipment.TrackingCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != model.ShipmentStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", stored.Status)
	}
}

func TestShippingFacadeShipments(t *testing.T) {
	facade, _, repo := newFacade(t, fetcherStub{})
	repo.Seed(
		model.Shipment{ID: "SHIP-1", UserID: "u-1", TrackingCode: "EP1234567FI", Status: model.ShipmentStatusInTransit},
		model.Shipment{ID: "SHIP-2", UserID: "u-2", TrackingCode: "EP7654321FI", Status: model.ShipmentStatusPending},
	)

	listed, err := facade.Shipments(context.Background(), "u-1")
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one shipment, got %v err=%v", listed, err)
	}

	single, err := facade.Shipment(context.Background(), "SHIP-1", "u-1")
	if err != nil || single.TrackingCode != "EP1234567FI" {
		t.Fatalf("unexpected shipment: %+v err=%v", single, err)
	}

	found, err := facade.UpdateShipmentStatus(context.Background(), "SHIP-1", "u-1", model.ShipmentStatusDelivered, nil)
	if err != nil || !found {
		t.Fatalf("unexpected update result: found=%v err=%v", found, err)
	}

	found, err = facade.AppendShipmentEvent(context.Background(), "SHIP-1", "u-1", model.ShipmentEvent{Date: time.Now(), Status: "In transit"})
	if err != nil || !found {
		t.Fatalf("unexpected append result: found=%v err=%v", found, err)
	}

	found, err = facade.AppendShipmentEvent(context.Background(), "SHIP-2", "u-1", model.ShipmentEvent{Date: time.Now(), Status: "In transit"})
	if err != nil || found {
		t.Fatalf("expected foreign shipment to stay untouched, found=%v err=%v", found, err)
	}

	tracked, err := facade.Track(context.Background(), "EP7654321FI")
	if err != nil || tracked.ID != "SHIP-2" {
		t.Fatalf("unexpected tracked shipment: %+v err=%v", tracked, err)
	}
	if _, err := facade.Track(context.Background(), "bogus"); !errors.Is(err, domainErrors.ErrInvalidTrackingCode) {
		t.Fatalf("expected invalid tracking code error, got %v", err)
	}

	found, err = facade.DeleteShipment(context.Background(), "SHIP-1", "u-1")
	if err != nil || !found {
		t.Fatalf("unexpected delete result: found=%v err=%v", found, err)
	}
}

func TestShippingFacadeTracking(t *testing.T) {
	updates := []model.ShipmentEvent{{Date: time.Now(), Location: "Tampere", Status: "Delivered"}}
	facade, _, repo := newFacade(t, fetcherStub{events: updates})
	repo.Seed(
		model.Shipment{ID: "SHIP-1", UserID: "u-1", TrackingCode: "EP1234567FI", Status: model.ShipmentStatusInTransit},
		model.Shipment{ID: "SHIP-2", UserID: "u-1", TrackingCode: "EP7654321FI", Status: model.ShipmentStatusDelivered},
	)

	batch, err := facade.ShipmentsForTracking(context.Background(), 10)
	if err != nil || len(batch) != 1 || batch[0].ID != "SHIP-1" {
		t.Fatalf("expected one active shipment, got %v err=%v", batch, err)
	}

	events, err := facade.CheckTracking(context.Background(), "EP1234567FI")
	if err != nil || len(events) != 1 {
		t.Fatalf("unexpected carrier updates: %v err=%v", events, err)
	}

	found, err := facade.RecordTrackingEvent(context.Background(), "SHIP-1", events[0])
	if err != nil || !found {
		t.Fatalf("unexpected record result: found=%v err=%v", found, err)
	}
	stored, err := repo.GetByTrackingCode(context.Background(), "EP1234567FI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != model.ShipmentStatusDelivered || len(stored.Events) != 1 {
		t.Fatalf("expected derived delivered status, got %+v", stored)
	}
}
