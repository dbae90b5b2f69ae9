package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/server/http/dto"
)

// ShipmentHandler manages shipment record endpoints.
type ShipmentHandler struct {
	facade ShipmentFacade
}

// NewShipmentHandler constructs ShipmentHandler.
func NewShipmentHandler(facade ShipmentFacade) *ShipmentHandler {
	return &ShipmentHandler{facade: facade}
}

// List handles GET /api/user/shipments.
func (h *ShipmentHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	shipments, err := h.facade.Shipments(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(shipments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		response = append(response, toShipmentResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/user/shipments/:id.
func (h *ShipmentHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	shipment, err := h.facade.Shipment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toShipmentResponse(*shipment))
}

// Delete handles DELETE /api/user/shipments/:id.
func (h *ShipmentHandler) Delete(c *gin.Context) {
	userID := CurrentUserID(c)
	found, err := h.facade.DeleteShipment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateStatus handles POST /api/user/shipments/:id/status.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var event *model.ShipmentEvent
	if req.Event != nil {
		event = &model.ShipmentEvent{
			Date:        req.Event.Date,
			Location:    req.Event.Location,
			Status:      req.Event.Status,
			Description: req.Event.Description,
		}
	}

	found, err := h.facade.UpdateShipmentStatus(c.Request.Context(), c.Param("id"), userID, model.ShipmentStatus(req.Status), event)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownStatus):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// AddEvent handles POST /api/user/shipments/:id/events.
func (h *ShipmentHandler) AddEvent(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = timeNow()
	}

	found, err := h.facade.AppendShipmentEvent(c.Request.Context(), c.Param("id"), userID, model.ShipmentEvent{
		Date:        req.Date,
		Location:    req.Location,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusAccepted)
}
