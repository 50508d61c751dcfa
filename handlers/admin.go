package handlers

import (
	"errors"
	"net/http"

	"rosa/models"
	"rosa/services/booking"
	"rosa/services/catalog"
	"rosa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates staff-only booking and catalog operations.
type AdminHandler struct {
	BookingSvc booking.BookingService
	CatalogSvc catalog.CatalogService
	Logger     *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bs booking.BookingService, cs catalog.CatalogService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{BookingSvc: bs, CatalogSvc: cs, Logger: logger}
}

type updateGuestRequest struct {
	GuestName string `json:"guestName" binding:"required"`
	CabinName string `json:"cabinName" binding:"required"`
}

// GetDayGrid handles GET /api/admin/agendamentos?date=; the date defaults to today.
func (ah *AdminHandler) GetDayGrid(c *gin.Context) {
	date := dateParam(c, ah.BookingSvc)
	grid, err := ah.BookingSvc.DayGrid(c.Request.Context(), date, booking.AudienceAdmin)
	if err != nil {
		respondBookingError(c, ah.Logger, "AdminGetDayGrid", err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// StreamDay handles GET /api/admin/agendamentos/stream?date=.
func (ah *AdminHandler) StreamDay(c *gin.Context) {
	streamDay(c, ah.BookingSvc, ah.Logger, booking.AudienceAdmin)
}

// ReserveSlot handles POST /api/admin/agendamentos/slots. Staff may book
// past dates on a guest's behalf.
func (ah *AdminHandler) ReserveSlot(c *gin.Context) {
	var body reserveSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		invalidBody(c, err)
		return
	}
	b, err := ah.BookingSvc.ReserveSlot(c.Request.Context(), body.toReservation(booking.AudienceAdmin))
	if err != nil {
		respondBookingError(c, ah.Logger, "AdminReserveSlot", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Block handles POST /api/admin/agendamentos/block.
func (ah *AdminHandler) Block(c *gin.Context) {
	ah.slotAction(c, "Block", func(ref models.SlotRef) (*models.Booking, error) {
		return ah.BookingSvc.Block(c.Request.Context(), ref)
	})
}

// Unblock handles POST /api/admin/agendamentos/unblock.
func (ah *AdminHandler) Unblock(c *gin.Context) {
	ah.slotAction(c, "Unblock", func(ref models.SlotRef) (*models.Booking, error) {
		return nil, ah.BookingSvc.Unblock(c.Request.Context(), ref)
	})
}

// Release handles POST /api/admin/agendamentos/release.
func (ah *AdminHandler) Release(c *gin.Context) {
	ah.slotAction(c, "Release", func(ref models.SlotRef) (*models.Booking, error) {
		return ah.BookingSvc.Release(c.Request.Context(), ref)
	})
}

// Revoke handles POST /api/admin/agendamentos/revoke.
func (ah *AdminHandler) Revoke(c *gin.Context) {
	ah.slotAction(c, "Revoke", func(ref models.SlotRef) (*models.Booking, error) {
		return nil, ah.BookingSvc.Revoke(c.Request.Context(), ref)
	})
}

// slotAction binds a slot reference and replies 200 with the written
// booking, or 204 when the action deleted it.
func (ah *AdminHandler) slotAction(c *gin.Context, op string, do func(models.SlotRef) (*models.Booking, error)) {
	var ref models.SlotRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		invalidBody(c, err)
		return
	}
	b, err := do(ref)
	if err != nil {
		respondBookingError(c, ah.Logger, op, err)
		return
	}
	if b == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles DELETE /api/admin/agendamentos/:id.
func (ah *AdminHandler) CancelBooking(c *gin.Context) {
	if err := ah.BookingSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondBookingError(c, ah.Logger, "CancelBooking", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateGuest handles PATCH /api/admin/agendamentos/:id.
func (ah *AdminHandler) UpdateGuest(c *gin.Context) {
	var body updateGuestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		invalidBody(c, err)
		return
	}
	b, err := ah.BookingSvc.UpdateGuest(c.Request.Context(), c.Param("id"), booking.GuestUpdate{
		GuestName: body.GuestName,
		CabinName: body.CabinName,
	})
	if err != nil {
		respondBookingError(c, ah.Logger, "UpdateGuest", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckIntegrity handles GET /api/admin/agendamentos/integrity?date=.
func (ah *AdminHandler) CheckIntegrity(c *gin.Context) {
	date := dateParam(c, ah.BookingSvc)
	report, err := ah.BookingSvc.CheckIntegrity(c.Request.Context(), date)
	if err != nil {
		respondBookingError(c, ah.Logger, "CheckIntegrity", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpsertService handles PUT /api/admin/services/:id.
func (ah *AdminHandler) UpsertService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		invalidBody(c, err)
		return
	}
	svc.ID = c.Param("id")

	saved, err := ah.CatalogSvc.UpsertService(c.Request.Context(), svc)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidService) {
			utils.JSONError(c, http.StatusBadRequest, "invalid_service", err.Error())
			return
		}
		ah.Logger.Error("UpsertService: failed to save service", zap.String("serviceId", svc.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to save service")
		return
	}
	c.JSON(http.StatusOK, saved)
}
