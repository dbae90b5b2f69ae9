package dto

import "time"

// TrackingResponse is the public tracking view. It omits owner identity,
// pricing, and label links.
type TrackingResponse struct {
	TrackingCode      string                 `json:"trackingCode"`
	Carrier           string                 `json:"carrier"`
	Status            string                 `json:"status"`
	EstimatedDelivery string                 `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	Events            []ShipmentEventPayload `json:"events"`
}
