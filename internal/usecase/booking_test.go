package usecase_test

import (
	. "github.com/eparsel/eparsel/internal/usecase"

	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/label"
	"github.com/eparsel/eparsel/internal/pickup"
	"github.com/eparsel/eparsel/internal/test"
)

type generatorStub struct {
	fn func(context.Context, label.Request) (*label.Response, error)
}

func (s generatorStub) Generate(ctx context.Context, req label.Request) (*label.Response, error) {
	if s.fn != nil {
		return s.fn(ctx, req)
	}
	return &label.Response{LabelURL: "file:///labels/" + req.ShipmentID + ".html"}, nil
}

type schedulerStub struct {
	scheduleFn func(context.Context, pickup.Request) (*pickup.Response, error)
}

func (s schedulerStub) Slots(ctx context.Context) ([]pickup.Slot, error) {
	return []pickup.Slot{{ID: "slot-1", Available: true}}, nil
}

func (s schedulerStub) Schedule(ctx context.Context, req pickup.Request) (*pickup.Response, error) {
	if s.scheduleFn != nil {
		return s.scheduleFn(ctx, req)
	}
	return &pickup.Response{Confirmed: true, PickupTime: "2024-01-02 09:00"}, nil
}

func validBookingRequest() BookingRequest {
	return BookingRequest{
		Weight:        "2",
		Dimensions:    model.Dimensions{Length: "30", Width: "20", Height: "10"},
		Pickup:        "Mannerheimintie 1, Helsinki",
		Delivery:      "Aleksanterinkatu 2, Tampere",
		Carrier:       model.Carrier{Name: "Posti", Price: 8.99},
		DeliverySpeed: "standard",
	}
}

func newBookingTestUseCase(t *testing.T, repo *test.ShipmentRepositoryStub, labels label.Generator, pickups pickup.Scheduler) *BookingUseCase {
	t.Helper()
	ids, err := NewIDGenerator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewBookingUseCase(repo, labels, pickups, ids, 24*time.Hour)
}

func TestBookCreatesShipment(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{})
	SetNow(uc, func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) })

	shipment, err := uc.Book(context.Background(), "user-1", validBookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shipment.UserID != "user-1" {
		t.Fatalf("unexpected owner: %s", shipment.UserID)
	}
	if shipment.Status != model.ShipmentStatusPending {
		t.Fatalf("expected pending, got %s", shipment.Status)
	}
	if !ValidateTrackingCode(shipment.TrackingCode) {
		t.Fatalf("invalid tracking code: %s", shipment.TrackingCode)
	}
	if shipment.LabelURL == "" || shipment.PickupTime == "" {
		t.Fatalf("expected label and pickup to be populated: %+v", shipment)
	}
	if shipment.EstimatedDelivery != "2024-01-04" {
		t.Fatalf("expected standard +3 days, got %s", shipment.EstimatedDelivery)
	}
	if shipment.TotalPrice != 8.99 {
		t.Fatalf("unexpected total: %v", shipment.TotalPrice)
	}
	if len(shipment.Events) != 1 || shipment.Events[0].Status != "Shipment created" {
		t.Fatalf("expected initial event, got %+v", shipment.Events)
	}
	if len(repo.Shipments) != 1 {
		t.Fatalf("expected stored shipment, got %d", len(repo.Shipments))
	}
}

func TestBookComplianceFee(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{})

	req := validBookingRequest()
	req.IncludeCompliance = true
	shipment, err := uc.Book(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipment.TotalPrice != 10.99 {
		t.Fatalf("expected carrier price plus fee, got %v", shipment.TotalPrice)
	}
}

func TestBookValidation(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{})
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"empty weight", func(r *BookingRequest) { r.Weight = " " }},
		{"empty length", func(r *BookingRequest) { r.Dimensions.Length = "" }},
		{"empty pickup", func(r *BookingRequest) { r.Pickup = "" }},
		{"empty delivery", func(r *BookingRequest) { r.Delivery = "" }},
		{"empty carrier", func(r *BookingRequest) { r.Carrier.Name = "" }},
		{"negative price", func(r *BookingRequest) { r.Carrier.Price = -1 }},
	}
	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest()
			tc.mutate(&req)
			if _, err := uc.Book(ctx, "user-1", req); !errors.Is(err, domainErrors.ErrInvalidBooking) {
				t.Fatalf("expected ErrInvalidBooking, got %v", err)
			}
		})
	}

	if _, err := uc.Book(ctx, "", validBookingRequest()); !errors.Is(err, domainErrors.ErrInvalidBooking) {
		t.Fatalf("expected ErrInvalidBooking for missing user, got %v", err)
	}
	if len(repo.Shipments) != 0 {
		t.Fatal("rejected bookings must not be stored")
	}
}

func TestBookLabelFailureAbortsBooking(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{
		fn: func(context.Context, label.Request) (*label.Response, error) {
			return nil, errors.New("printer on fire")
		},
	}, schedulerStub{})

	if _, err := uc.Book(context.Background(), "user-1", validBookingRequest()); !errors.Is(err, domainErrors.ErrLabelGeneration) {
		t.Fatalf("expected ErrLabelGeneration, got %v", err)
	}
	if len(repo.Shipments) != 0 {
		t.Fatal("failed booking must not be stored")
	}
}

func TestBookPickupFailureAbortsBooking(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{
		scheduleFn: func(context.Context, pickup.Request) (*pickup.Response, error) {
			return &pickup.Response{Confirmed: false, Message: "no slots"}, nil
		},
	})

	if _, err := uc.Book(context.Background(), "user-1", validBookingRequest()); !errors.Is(err, domainErrors.ErrPickupScheduling) {
		t.Fatalf("expected ErrPickupScheduling, got %v", err)
	}
	if len(repo.Shipments) != 0 {
		t.Fatal("failed booking must not be stored")
	}
}

func TestCancelWithinWindow(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{})
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	SetNow(uc, func() time.Time { return created })

	shipment, err := uc.Book(context.Background(), "user-1", validBookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	SetNow(uc, func() time.Time { return created.Add(2 * time.Hour) })
	if err := uc.Cancel(context.Background(), "user-1", shipment.TrackingCode); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), shipment.ID, "user-1")
	if got.Status != model.ShipmentStatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
	if got.Events[len(got.Events)-1].Status != "Cancelled" {
		t.Fatalf("expected cancellation event, got %+v", got.Events)
	}
}

func TestCancelRejections(t *testing.T) {
	repo := &test.ShipmentRepositoryStub{}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{})
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	SetNow(uc, func() time.Time { return created })
	ctx := context.Background()

	shipment, err := uc.Book(ctx, "user-1", validBookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.Cancel(ctx, "user-2", shipment.TrackingCode); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("foreign owner must see not found, got %v", err)
	}
	if err := uc.Cancel(ctx, "user-1", "EP9999999FI"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	SetNow(uc, func() time.Time { return created.Add(25 * time.Hour) })
	if err := uc.Cancel(ctx, "user-1", shipment.TrackingCode); !errors.Is(err, domainErrors.ErrBookingNotCancellable) {
		t.Fatalf("expected ErrBookingNotCancellable after window, got %v", err)
	}

	SetNow(uc, func() time.Time { return created })
	if _, err := repo.AddEvent(ctx, shipment.ID, model.ShipmentEvent{Status: "Delivered"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Cancel(ctx, "user-1", shipment.TrackingCode); !errors.Is(err, domainErrors.ErrBookingNotCancellable) {
		t.Fatalf("expected ErrBookingNotCancellable for terminal status, got %v", err)
	}
}

func TestRates(t *testing.T) {
	uc := newBookingTestUseCase(t, &test.ShipmentRepositoryStub{}, generatorStub{}, schedulerStub{})

	standard := uc.Rates("1", "standard")
	if len(standard) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(standard))
	}
	if standard[0].Price != 8.99 || standard[0].EstimatedDays != 3 {
		t.Fatalf("unexpected standard quote: %+v", standard[0])
	}

	express := uc.Rates("1", "express")
	if express[0].Price != 13.49 || express[0].EstimatedDays != 1 {
		t.Fatalf("unexpected express quote: %+v", express[0])
	}

	economy := uc.Rates("1", "economy")
	if economy[0].Price != 7.19 || economy[0].EstimatedDays != 5 {
		t.Fatalf("unexpected economy quote: %+v", economy[0])
	}

	heavy := uc.Rates("5 kg", "standard")
	if heavy[0].Price != 10.99 {
		t.Fatalf("expected per-kg surcharge, got %v", heavy[0].Price)
	}

	junkWeight := uc.Rates("???", "standard")
	if junkWeight[0].Price != 8.99 {
		t.Fatalf("unparsable weight must fall back to 1 kg, got %v", junkWeight[0].Price)
	}
}

func TestEstimateDelivery(t *testing.T) {
	from := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		speed string
		want  string
	}{
		{"express", "2024-01-02"},
		{"standard", "2024-01-04"},
		{"economy", "2024-01-06"},
		{"", "2024-01-06"},
	}
	for _, tc := range cases {
		if got := EstimateDelivery(from, tc.speed); got != tc.want {
			t.Errorf("estimateDelivery(%q) = %s, want %s", tc.speed, got, tc.want)
		}
	}
}

func TestUniqueTrackingCodeCollisions(t *testing.T) {
	calls := 0
	repo := &test.ShipmentRepositoryStub{
		GetByTrackingCodeFn: func(ctx context.Context, code string) (*model.Shipment, error) {
			calls++
			return &model.Shipment{TrackingCode: code}, nil
		},
	}
	uc := newBookingTestUseCase(t, repo, generatorStub{}, schedulerStub{})

	if _, err := uc.Book(context.Background(), "user-1", validBookingRequest()); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists after exhausted retries, got %v", err)
	}
	if calls != TrackingCodeAttempts {
		t.Fatalf("expected %d attempts, got %d", TrackingCodeAttempts, calls)
	}
}
