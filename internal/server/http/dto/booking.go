package dto

// CarrierPayload is the carrier offer chosen on the booking form.
type CarrierPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DimensionsPayload keeps parcel measurements as form strings.
type DimensionsPayload struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// BookingRequest describes a booking submission.
type BookingRequest struct {
	Weight            string            `json:"weight"`
	Dimensions        DimensionsPayload `json:"dimensions"`
	Pickup            string            `json:"pickup"`
	Delivery          string            `json:"delivery"`
	Carrier           CarrierPayload    `json:"carrier"`
	DeliverySpeed     string            `json:"deliverySpeed"`
	IncludeCompliance bool              `json:"includeCompliance"`
	PickupSlotID      string            `json:"pickupSlotId"`
	LabelLanguage     string            `json:"labelLanguage"`
}

// RateResponse is one carrier quote.
type RateResponse struct {
	Carrier       string  `json:"carrier"`
	Service       string  `json:"service"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimatedDays"`
}

// PickupSlotResponse is one bookable pickup window.
type PickupSlotResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	TimeWindow string `json:"timeWindow"`
	Available  bool   `json:"available"`
}
