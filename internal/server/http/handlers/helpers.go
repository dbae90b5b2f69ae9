package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/server/http/dto"
	"github.com/eparsel/eparsel/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func toEventPayloads(events []model.ShipmentEvent) []dto.ShipmentEventPayload {
	out := make([]dto.ShipmentEventPayload, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ShipmentEventPayload{
			Date:        e.Date,
			Location:    e.Location,
			Status:      e.Status,
			Description: e.Description,
		})
	}
	return out
}

func toShipmentResponse(s model.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		Carrier:      dto.CarrierPayload{Name: s.Carrier.Name, Price: s.Carrier.Price},
		Weight:       s.Weight,
		Dimensions: dto.DimensionsPayload{
			Length: s.Dimensions.Length,
			Width:  s.Dimensions.Width,
			Height: s.Dimensions.Height,
		},
		Pickup:            s.Pickup,
		Delivery:          s.Delivery,
		DeliverySpeed:     s.DeliverySpeed,
		IncludeCompliance: s.IncludeCompliance,
		Status:            string(s.Status),
		CreatedAt:         s.CreatedAt,
		LabelURL:          s.LabelURL,
		PickupTime:        s.PickupTime,
		EstimatedDelivery: s.EstimatedDelivery,
		TotalPrice:        s.TotalPrice,
		Events:            toEventPayloads(s.Events),
	}
}
