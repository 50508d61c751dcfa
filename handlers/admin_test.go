package handlers

import (
	"errors"
	"net/http"
	"testing"

	"rosa/models"
	"rosa/services/booking"
	"rosa/services/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func adminRouter(bs *MockBookingService, cs *MockCatalogService) *gin.Engine {
	h := NewAdminHandler(bs, cs, zap.NewNop())
	r := gin.New()
	g := r.Group("/api/admin")
	g.POST("/agendamentos/slots", h.ReserveSlot)
	g.POST("/agendamentos/block", h.Block)
	g.POST("/agendamentos/unblock", h.Unblock)
	g.POST("/agendamentos/release", h.Release)
	g.POST("/agendamentos/revoke", h.Revoke)
	g.PATCH("/agendamentos/:id", h.UpdateGuest)
	g.DELETE("/agendamentos/:id", h.CancelBooking)
	g.GET("/agendamentos/integrity", h.CheckIntegrity)
	g.PUT("/services/:id", h.UpsertService)
	return r
}

var refBody = map[string]string{"serviceId": "sauna", "unit": "Única", "timeSlotId": "11-12", "date": "2026-03-14"}

func TestAdminSlotActions(t *testing.T) {
	ref := models.SlotRef{ServiceID: "sauna", Unit: "Única", TimeSlotID: "11-12", Date: "2026-03-14"}
	bs := new(MockBookingService)
	bs.On("Block", mock.Anything, ref).Return(&models.Booking{ID: ref.ID(), Status: models.StatusBlocked}, nil).Once()
	bs.On("Unblock", mock.Anything, ref).Return(nil).Once()
	bs.On("Release", mock.Anything, ref).Return(nil, booking.ErrInvalidTransition).Once()
	bs.On("Revoke", mock.Anything, ref).Return(booking.ErrInvalidTransition).Once()
	r := adminRouter(bs, new(MockCatalogService))

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/admin/agendamentos/block", refBody).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodPost, "/api/admin/agendamentos/unblock", refBody).Code)

	w := doJSON(r, http.MethodPost, "/api/admin/agendamentos/release", refBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", decodeError(t, w)["error"])
	assert.Equal(t, http.StatusConflict, doJSON(r, http.MethodPost, "/api/admin/agendamentos/revoke", refBody).Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/api/admin/agendamentos/block", map[string]string{"unit": "Única"}).Code)
	bs.AssertExpectations(t)
}

func TestAdminReserveSlotUsesAdminAudience(t *testing.T) {
	bs := new(MockBookingService)
	bs.On("ReserveSlot", mock.Anything, mock.MatchedBy(func(req booking.SlotReservation) bool {
		return req.Audience == booking.AudienceAdmin
	})).Return(&models.Booking{ID: "x"}, nil).Once()

	w := doJSON(adminRouter(bs, new(MockCatalogService)), http.MethodPost, "/api/admin/agendamentos/slots", slotBody)
	assert.Equal(t, http.StatusCreated, w.Code)
	bs.AssertExpectations(t)
}

func TestAdminCancelAndUpdate(t *testing.T) {
	bs := new(MockBookingService)
	bs.On("Cancel", mock.Anything, "b1").Return(nil).Once()
	bs.On("Cancel", mock.Anything, "gone").Return(booking.ErrNotFound).Once()
	bs.On("UpdateGuest", mock.Anything, "b1", booking.GuestUpdate{GuestName: "Ana", CabinName: "Cabana 4"}).
		Return(&models.Booking{ID: "b1", GuestName: "Ana", CabinName: "Cabana 4"}, nil).Once()
	r := adminRouter(bs, new(MockCatalogService))

	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/api/admin/agendamentos/b1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, "/api/admin/agendamentos/gone", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPatch, "/api/admin/agendamentos/b1",
		map[string]string{"guestName": "Ana", "cabinName": "Cabana 4"}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPatch, "/api/admin/agendamentos/b1",
		map[string]string{"guestName": "Ana"}).Code)
	bs.AssertExpectations(t)
}

func TestAdminCheckIntegrity(t *testing.T) {
	bs := new(MockBookingService)
	bs.On("CheckIntegrity", mock.Anything, "2026-03-14").
		Return(&models.IntegrityReport{Date: "2026-03-14", Conflicts: []models.IntegrityConflict{}}, nil).Once()

	w := doJSON(adminRouter(bs, new(MockCatalogService)), http.MethodGet, "/api/admin/agendamentos/integrity?date=2026-03-14", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	bs.AssertExpectations(t)
}

func TestAdminUpsertService(t *testing.T) {
	cs := new(MockCatalogService)
	cs.On("UpsertService", mock.Anything, mock.MatchedBy(func(s models.Service) bool { return s.ID == "sauna" && s.Name == "Sauna" })).
		Return(&models.Service{ID: "sauna", Name: "Sauna"}, nil).Once()
	cs.On("UpsertService", mock.Anything, mock.MatchedBy(func(s models.Service) bool { return s.ID == "bad" })).
		Return(nil, errors.Join(catalog.ErrInvalidService, errors.New("no units"))).Once()
	r := adminRouter(new(MockBookingService), cs)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/api/admin/services/sauna", map[string]string{"name": "Sauna", "type": "slots"}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/api/admin/services/bad", map[string]string{"name": "Bad"}).Code)
	cs.AssertExpectations(t)
}
