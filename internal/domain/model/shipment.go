package model

import "time"

// ShipmentStatus is the coarse lifecycle state of a shipment. It is always
// derived from the event history, never set by tracking feeds directly.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusPickedUp  ShipmentStatus = "picked_up"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusException ShipmentStatus = "exception"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

// ValidStatus reports whether s belongs to the status palette.
func ValidStatus(s ShipmentStatus) bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusPickedUp, ShipmentStatusInTransit,
		ShipmentStatusDelivered, ShipmentStatusException, ShipmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the shipment lifecycle.
func (s ShipmentStatus) Terminal() bool {
	switch s {
	case ShipmentStatusDelivered, ShipmentStatusException, ShipmentStatusCancelled:
		return true
	}
	return false
}

// eventStatusTable maps recognized event labels to the derived status.
// The match is exact and case sensitive.
var eventStatusTable = map[string]ShipmentStatus{
	"Picked up":  ShipmentStatusPickedUp,
	"In transit": ShipmentStatusInTransit,
	"Delivered":  ShipmentStatusDelivered,
	"Exception":  ShipmentStatusException,
	"Cancelled":  ShipmentStatusCancelled,
}

// StatusForEvent resolves an event label to a status. Unrecognized labels
// report ok=false: the event is still history-worthy, it just does not move
// the status enum.
func StatusForEvent(label string) (ShipmentStatus, bool) {
	status, ok := eventStatusTable[label]
	return status, ok
}

// Carrier is the carrier offer a shipment was booked with.
type Carrier struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Dimensions keeps parcel measurements as entered on the booking form.
type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// ShipmentEvent is one append-only entry of the tracking history.
type ShipmentEvent struct {
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}

// Shipment is a booked parcel with its full tracking history.
type Shipment struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	TrackingCode      string          `json:"trackingCode"`
	Carrier           Carrier         `json:"carrier"`
	Weight            string          `json:"weight"`
	Dimensions        Dimensions      `json:"dimensions"`
	Pickup            string          `json:"pickup"`
	Delivery          string          `json:"delivery"`
	DeliverySpeed     string          `json:"deliverySpeed"`
	IncludeCompliance bool            `json:"includeCompliance"`
	Status            ShipmentStatus  `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	LabelURL          string          `json:"labelUrl"`
	PickupTime        string          `json:"pickupTime"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
	TotalPrice        float64         `json:"totalPrice"`
	Events            []ShipmentEvent `json:"events"`
}

// LatestEventTime returns the timestamp of the most recent event, or the
// zero time for an empty history. Events are kept in append order, but the
// scan tolerates out-of-order feeds.
func (s *Shipment) LatestEventTime() time.Time {
	var latest time.Time
	for i := range s.Events {
		if s.Events[i].Date.After(latest) {
			latest = s.Events[i].Date
		}
	}
	return latest
}

// Clone returns a deep copy so stored records never share event slices
// with callers.
func (s *Shipment) Clone() *Shipment {
	cp := *s
	if s.Events != nil {
		cp.Events = make([]ShipmentEvent, len(s.Events))
		copy(cp.Events, s.Events)
	}
	return &cp
}
