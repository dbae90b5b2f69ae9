package dto

import "time"

// ShipmentEventPayload is one tracking history entry on the wire.
type ShipmentEventPayload struct {
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}

// ShipmentResponse is the owner-facing shipment view.
type ShipmentResponse struct {
	ID                string                 `json:"id"`
	TrackingCode      string                 `json:"trackingCode"`
	Carrier           CarrierPayload         `json:"carrier"`
	Weight            string                 `json:"weight"`
	Dimensions        DimensionsPayload      `json:"dimensions"`
	Pickup            string                 `json:"pickup"`
	Delivery          string                 `json:"delivery"`
	DeliverySpeed     string                 `json:"deliverySpeed"`
	IncludeCompliance bool                   `json:"includeCompliance"`
	Status            string                 `json:"status"`
	CreatedAt         time.Time              `json:"createdAt"`
	LabelURL          string                 `json:"labelUrl"`
	PickupTime        string                 `json:"pickupTime"`
	EstimatedDelivery string                 `json:"estimatedDelivery,omitempty"`
	TotalPrice        float64                `json:"totalPrice"`
	Events            []ShipmentEventPayload `json:"events"`
}

// StatusUpdateRequest sets the status enum directly, optionally logging an
// event alongside.
type StatusUpdateRequest struct {
	Status string                `json:"status"`
	Event  *ShipmentEventPayload `json:"event,omitempty"`
}

// EventRequest appends one history entry; the status enum follows the
// label derivation table.
type EventRequest struct {
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}
