package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/server/http/dto"
	"github.com/eparsel/eparsel/internal/usecase"
)

// BookingHandler manages booking endpoints.
type BookingHandler struct {
	facade BookingFacade
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(facade BookingFacade) *BookingHandler {
	return &BookingHandler{facade: facade}
}

// Book handles POST /api/user/bookings.
func (h *BookingHandler) Book(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	shipment, err := h.facade.BookShipment(c.Request.Context(), userID, usecase.BookingRequest{
		Weight: req.Weight,
		Dimensions: model.Dimensions{
			Length: req.Dimensions.Length,
			Width:  req.Dimensions.Width,
			Height: req.Dimensions.Height,
		},
		Pickup:            req.Pickup,
		Delivery:          req.Delivery,
		Carrier:           model.Carrier{Name: req.Carrier.Name, Price: req.Carrier.Price},
		DeliverySpeed:     req.DeliverySpeed,
		IncludeCompliance: req.IncludeCompliance,
		PickupSlotID:      req.PickupSlotID,
		LabelLanguage:     req.LabelLanguage,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidBooking):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toShipmentResponse(*shipment))
}

// Rates handles GET /api/user/bookings/rates.
func (h *BookingHandler) Rates(c *gin.Context) {
	quotes := h.facade.Rates(c.Query("weight"), c.Query("speed"))

	response := make([]dto.RateResponse, 0, len(quotes))
	for _, q := range quotes {
		response = append(response, dto.RateResponse{
			Carrier:       q.Carrier,
			Service:       q.Service,
			Price:         q.Price,
			EstimatedDays: q.EstimatedDays,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Cancel handles DELETE /api/user/bookings/:trackingCode.
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	trackingCode := c.Param("trackingCode")

	err := h.facade.CancelBooking(c.Request.Context(), userID, trackingCode)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrBookingNotCancellable):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// PickupSlots handles GET /api/pickup-slots.
func (h *BookingHandler) PickupSlots(c *gin.Context) {
	slots, err := h.facade.PickupSlots(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.PickupSlotResponse, 0, len(slots))
	for _, s := range slots {
		response = append(response, dto.PickupSlotResponse{
			ID:         s.ID,
			Date:       s.Date,
			TimeWindow: s.TimeWindow,
			Available:  s.Available,
		})
	}
	c.JSON(http.StatusOK, response)
}
