package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/domain/repository"
	"github.com/eparsel/eparsel/internal/label"
	"github.com/eparsel/eparsel/internal/pickup"
)

// complianceFee is added to the carrier price when the customs compliance
// add-on is selected.
const complianceFee = 2.0

// trackingCodeAttempts bounds collision retries for generated codes.
const trackingCodeAttempts = 5

// BookingRequest is a validated booking submission. The caller is
// authenticated; the user scope arrives separately.
type BookingRequest struct {
	Weight            string
	Dimensions        model.Dimensions
	Pickup            string
	Delivery          string
	Carrier           model.Carrier
	DeliverySpeed     string
	IncludeCompliance bool
	PickupSlotID      string
	LabelLanguage     string
}

// BookingUseCase orchestrates the booking workflow: label generation,
// pickup scheduling, pricing, and record creation.
type BookingUseCase struct {
	shipments          repository.ShipmentRepository
	labels             label.Generator
	pickups            pickup.Scheduler
	ids                *IDGenerator
	cancellationWindow time.Duration
	now                func() time.Time
}

// NewBookingUseCase constructs BookingUseCase.
func NewBookingUseCase(shipments repository.ShipmentRepository, labels label.Generator, pickups pickup.Scheduler, ids *IDGenerator, cancellationWindow time.Duration) *BookingUseCase {
	return &BookingUseCase{
		shipments:          shipments,
		labels:             labels,
		pickups:            pickups,
		ids:                ids,
		cancellationWindow: cancellationWindow,
		now:                time.Now,
	}
}

func validateBooking(req BookingRequest) error {
	switch {
	case strings.TrimSpace(req.Weight) == "",
		strings.TrimSpace(req.Dimensions.Length) == "",
		strings.TrimSpace(req.Dimensions.Width) == "",
		strings.TrimSpace(req.Dimensions.Height) == "",
		strings.TrimSpace(req.Pickup) == "",
		strings.TrimSpace(req.Delivery) == "",
		strings.TrimSpace(req.Carrier.Name) == "":
		return domainErrors.ErrInvalidBooking
	}
	if req.Carrier.Price < 0 {
		return domainErrors.ErrInvalidBooking
	}
	return nil
}

// estimateDelivery projects the delivery date from the chosen speed tier.
func estimateDelivery(from time.Time, speed string) string {
	days := 5
	switch speed {
	case "express":
		days = 1
	case "standard":
		days = 3
	}
	return from.AddDate(0, 0, days).Format("2006-01-02")
}

// Book runs the full booking workflow and stores the resulting shipment.
// Label generation and pickup scheduling failures abort the booking before
// anything is persisted; the store never sees a half-booked record.
func (u *BookingUseCase) Book(ctx context.Context, userID string, req BookingRequest) (*model.Shipment, error) {
	if userID == "" {
		return nil, domainErrors.ErrInvalidBooking
	}
	if err := validateBooking(req); err != nil {
		return nil, err
	}

	shipmentID := u.ids.ShipmentID()
	trackingCode, err := u.uniqueTrackingCode(ctx)
	if err != nil {
		return nil, err
	}

	labelResp, err := u.labels.Generate(ctx, label.Request{
		ShipmentID:       shipmentID,
		CarrierName:      req.Carrier.Name,
		TrackingCode:     trackingCode,
		SenderAddress:    req.Pickup,
		RecipientAddress: req.Delivery,
		Weight:           req.Weight,
		Dimensions:       fmt.Sprintf("%sx%sx%s cm", req.Dimensions.Length, req.Dimensions.Width, req.Dimensions.Height),
		Language:         req.LabelLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrLabelGeneration, err)
	}

	pickupResp, err := u.pickups.Schedule(ctx, pickup.Request{
		ShipmentID:    shipmentID,
		CarrierName:   req.Carrier.Name,
		PickupAddress: req.Pickup,
		SlotID:        req.PickupSlotID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPickupScheduling, err)
	}
	if !pickupResp.Confirmed {
		return nil, domainErrors.ErrPickupScheduling
	}

	totalPrice := req.Carrier.Price
	if req.IncludeCompliance {
		totalPrice += complianceFee
	}

	createdAt := u.now()
	shipment := &model.Shipment{
		ID:                shipmentID,
		UserID:            userID,
		TrackingCode:      trackingCode,
		Carrier:           req.Carrier,
		Weight:            req.Weight,
		Dimensions:        req.Dimensions,
		Pickup:            req.Pickup,
		Delivery:          req.Delivery,
		DeliverySpeed:     req.DeliverySpeed,
		IncludeCompliance: req.IncludeCompliance,
		Status:            model.ShipmentStatusPending,
		CreatedAt:         createdAt,
		LabelURL:          labelResp.LabelURL,
		PickupTime:        pickupResp.PickupTime,
		EstimatedDelivery: estimateDelivery(createdAt, req.DeliverySpeed),
		TotalPrice:        totalPrice,
		Events: []model.ShipmentEvent{{
			Date:        createdAt,
			Location:    req.Pickup,
			Status:      "Shipment created",
			Description: "Shipment has been registered in our system",
		}},
	}

	return u.shipments.Add(ctx, shipment)
}

// uniqueTrackingCode retries generation until the code is unused.
func (u *BookingUseCase) uniqueTrackingCode(ctx context.Context) (string, error) {
	for i := 0; i < trackingCodeAttempts; i++ {
		code := u.ids.TrackingCode()
		_, err := u.shipments.GetByTrackingCode(ctx, code)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", domainErrors.ErrAlreadyExists
}

// Cancel voids a booking while the cancellation window is open. The
// shipment stays in the store with a cancelled status and a logged event.
func (u *BookingUseCase) Cancel(ctx context.Context, userID, trackingCode string) error {
	shipment, err := u.shipments.GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		return err
	}
	if shipment.UserID != userID {
		return domainErrors.ErrNotFound
	}
	if shipment.Status.Terminal() {
		return domainErrors.ErrBookingNotCancellable
	}
	if u.now().After(shipment.CreatedAt.Add(u.cancellationWindow)) {
		return domainErrors.ErrBookingNotCancellable
	}

	found, err := u.shipments.AddEvent(ctx, shipment.ID, model.ShipmentEvent{
		Date:        u.now(),
		Location:    shipment.Pickup,
		Status:      "Cancelled",
		Description: "Booking cancelled by customer",
	})
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return nil
}

// CancellationDeadline reports until when a booking can be cancelled.
func (u *BookingUseCase) CancellationDeadline(shipment *model.Shipment) time.Time {
	return shipment.CreatedAt.Add(u.cancellationWindow)
}

// rateTable holds the carrier base offers quoted during booking.
var rateTable = []model.Rate{
	{Carrier: "Posti", Service: "Parcel", Price: 8.99},
	{Carrier: "Bring", Service: "Parcel", Price: 10.99},
	{Carrier: "DB Schenker", Service: "Parcel", Price: 12.49},
}

// Rates quotes carrier prices for the given weight and speed tier.
// Weight strings keep their booking-form shape ("5" or "5 kg").
func (u *BookingUseCase) Rates(weight, speed string) []model.Rate {
	kg := parseWeight(weight)

	multiplier := 0.8
	days := 5
	switch speed {
	case "standard":
		multiplier = 1.0
		days = 3
	case "express":
		multiplier = 1.5
		days = 1
	}

	quotes := make([]model.Rate, 0, len(rateTable))
	for _, base := range rateTable {
		price := base.Price * multiplier
		if kg > 1 {
			price += (kg - 1) * 0.5
		}
		quotes = append(quotes, model.Rate{
			Carrier:       base.Carrier,
			Service:       base.Service,
			Price:         roundCents(price),
			EstimatedDays: days,
		})
	}
	return quotes
}

func parseWeight(weight string) float64 {
	fields := strings.Fields(strings.TrimSpace(weight))
	if len(fields) == 0 {
		return 1
	}
	kg, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || kg <= 0 {
		return 1
	}
	return kg
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
