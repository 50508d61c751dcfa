package handlers

import (
	"io"
	"net/http"
	"time"

	"rosa/middleware"
	"rosa/models"
	"rosa/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const streamKeepAlive = 25 * time.Second

// BookingHandler serves the guest booking endpoints.
type BookingHandler struct {
	BookingSvc booking.BookingService
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{BookingSvc: svc, Logger: logger}
}

type reserveSlotRequest struct {
	ServiceID  string `json:"serviceId" binding:"required"`
	Unit       string `json:"unit" binding:"required"`
	TimeSlotID string `json:"timeSlotId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	GuestName  string `json:"guestName"`
	CabinName  string `json:"cabinName"`
}

func (r reserveSlotRequest) toReservation(audience booking.Audience) booking.SlotReservation {
	return booking.SlotReservation{
		SlotRef: models.SlotRef{
			ServiceID:  r.ServiceID,
			Unit:       r.Unit,
			TimeSlotID: r.TimeSlotID,
			Date:       r.Date,
		},
		GuestName: r.GuestName,
		CabinName: r.CabinName,
		Audience:  audience,
	}
}

type preferenceRequest struct {
	ServiceID         string   `json:"serviceId" binding:"required"`
	Date              string   `json:"date" binding:"required"`
	GuestName         string   `json:"guestName"`
	CabinName         string   `json:"cabinName"`
	PreferenceTime    string   `json:"preferenceTime"`
	SelectedOptions   []string `json:"selectedOptions"`
	HasPet            bool     `json:"hasPet"`
	PetPolicyAccepted bool     `json:"petPolicyAccepted"`
}

// comandaIdentity applies the cabin (and guest name, when the form left it
// blank) carried by the caller's comanda.
func comandaIdentity(c *gin.Context, guestName, cabinName *string) {
	if cabin := c.GetString(middleware.CabinKey); cabin != "" {
		*cabinName = cabin
	}
	if guest := c.GetString(middleware.GuestKey); guest != "" && *guestName == "" {
		*guestName = guest
	}
}

// GetDayGrid handles GET /api/agendamentos?date=.
func (h *BookingHandler) GetDayGrid(c *gin.Context) {
	date := dateParam(c, h.BookingSvc)
	grid, err := h.BookingSvc.DayGrid(c.Request.Context(), date, booking.AudienceGuest)
	if err != nil {
		respondBookingError(c, h.Logger, "GetDayGrid", err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// StreamDay handles GET /api/agendamentos/stream?date= as server-sent events.
func (h *BookingHandler) StreamDay(c *gin.Context) {
	streamDay(c, h.BookingSvc, h.Logger, booking.AudienceGuest)
}

// ReserveSlot handles POST /api/agendamentos/slots.
func (h *BookingHandler) ReserveSlot(c *gin.Context) {
	var body reserveSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		invalidBody(c, err)
		return
	}
	comandaIdentity(c, &body.GuestName, &body.CabinName)

	b, err := h.BookingSvc.ReserveSlot(c.Request.Context(), body.toReservation(booking.AudienceGuest))
	if err != nil {
		respondBookingError(c, h.Logger, "ReserveSlot", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// RequestPreference handles POST /api/agendamentos/preferences.
func (h *BookingHandler) RequestPreference(c *gin.Context) {
	var body preferenceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		invalidBody(c, err)
		return
	}
	comandaIdentity(c, &body.GuestName, &body.CabinName)

	b, err := h.BookingSvc.RequestPreference(c.Request.Context(), booking.PreferenceRequest{
		ServiceID:         body.ServiceID,
		Date:              body.Date,
		GuestName:         body.GuestName,
		CabinName:         body.CabinName,
		PreferenceTime:    body.PreferenceTime,
		SelectedOptions:   body.SelectedOptions,
		HasPet:            body.HasPet,
		PetPolicyAccepted: body.PetPolicyAccepted,
		Audience:          booking.AudienceGuest,
	})
	if err != nil {
		respondBookingError(c, h.Logger, "RequestPreference", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// streamDay pushes a "grid" event on every change and a "ping" comment
// while idle, until the client goes away.
func streamDay(c *gin.Context, svc booking.BookingService, logger *zap.Logger, audience booking.Audience) {
	date := dateParam(c, svc)
	sub, err := svc.SubscribeDay(c.Request.Context(), date, audience)
	if err != nil {
		respondBookingError(c, logger, "StreamDay", err)
		return
	}
	defer sub.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case grid, ok := <-sub.Updates():
			if !ok {
				if err := sub.Err(); err != nil {
					c.SSEvent("error", gin.H{"error": "stream_failed", "message": "Live updates stopped"})
				}
				return false
			}
			c.SSEvent("grid", grid)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
