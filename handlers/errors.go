package handlers

import (
	"errors"
	"net/http"

	"rosa/services/booking"
	"rosa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bookingStatus maps a business error onto an HTTP status.
func bookingStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, booking.ErrServiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrCabinAlreadyBooked),
		errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrSlotClosed),
		errors.Is(err, booking.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondBookingError writes err as {"error": code, "message": text}.
// Anything that is not a business error is logged and hidden from the client.
func respondBookingError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var be *booking.BookingError
	if errors.As(err, &be) {
		utils.JSONError(c, bookingStatus(be), be.Code, be.Message)
		return
	}
	if errors.Is(err, booking.ErrStoreUnavailable) {
		logger.Warn(op+": booking store unavailable", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "store_unavailable", "The booking store is temporarily unavailable. Please try again.")
		return
	}
	logger.Error(op+": booking store failure", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal_error", "The booking could not be processed. Please try again.")
}

func invalidBody(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, booking.ErrValidation.Code, err.Error())
}

// dateParam is the ?date= query value, defaulting to the business date today.
func dateParam(c *gin.Context, svc booking.BookingService) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return svc.Today()
}
