package label

import "context"

// Request carries everything printed on a shipping label.
type Request struct {
	ShipmentID       string
	CarrierName      string
	TrackingCode     string
	SenderAddress    string
	RecipientAddress string
	Weight           string
	Dimensions       string
	Language         string
}

// Response points at the rendered label document.
type Response struct {
	LabelURL string
}

// Generator renders a shipping label for a booked shipment.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
