package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/server/http/dto"
)

// timeNow is a seam for handler tests.
var timeNow = time.Now

// TrackingHandler serves the public tracking lookup.
type TrackingHandler struct {
	facade TrackingFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade TrackingFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// Track handles GET /api/track/:trackingCode.
func (h *TrackingHandler) Track(c *gin.Context) {
	shipment, err := h.facade.Track(c.Request.Context(), c.Param("trackingCode"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidTrackingCode):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.TrackingResponse{
		TrackingCode:      shipment.TrackingCode,
		Carrier:           shipment.Carrier.Name,
		Status:            string(shipment.Status),
		EstimatedDelivery: shipment.EstimatedDelivery,
		CreatedAt:         shipment.CreatedAt,
		Events:            toEventPayloads(shipment.Events),
	})
}
