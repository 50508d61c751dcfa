package routes

import (
	"rosa/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the guest booking endpoints.
func RegisterBookingRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/agendamentos")
	{
		booking.Use(hb.GuestAuth)
		booking.GET("", hb.Booking.GetDayGrid)
		booking.GET("/stream", hb.Booking.StreamDay)
		booking.POST("/slots", hb.Booking.ReserveSlot)
		booking.POST("/preferences", hb.Booking.RequestPreference)
	}
}
