package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/eparsel/eparsel/internal/server/http/handlers"
	"github.com/eparsel/eparsel/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShippingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	bookingHandler := handlers.NewBookingHandler(facade)
	shipmentHandler := handlers.NewShipmentHandler(facade)
	trackingHandler := handlers.NewTrackingHandler(facade)

	api := engine.Group("/api")
	api.GET("/track/:trackingCode", trackingHandler.Track)
	api.GET("/pickup-slots", bookingHandler.PickupSlots)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/bookings", bookingHandler.Book)
	userAuth.GET("/bookings/rates", bookingHandler.Rates)
	userAuth.DELETE("/bookings/:trackingCode", bookingHandler.Cancel)
	userAuth.GET("/shipments", shipmentHandler.List)
	userAuth.GET("/shipments/:id", shipmentHandler.Get)
	userAuth.DELETE("/shipments/:id", shipmentHandler.Delete)
	userAuth.POST("/shipments/:id/status", shipmentHandler.UpdateStatus)
	userAuth.POST("/shipments/:id/events", shipmentHandler.AddEvent)

	return engine
}
