package handlers

import (
	"context"

	"rosa/models"
	"rosa/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Today() string {
	return m.Called().String(0)
}

func (m *MockBookingService) DayGrid(ctx context.Context, date string, audience booking.Audience) (*models.DayGrid, error) {
	args := m.Called(ctx, date, audience)
	grid, _ := args.Get(0).(*models.DayGrid)
	return grid, args.Error(1)
}

func (m *MockBookingService) SubscribeDay(ctx context.Context, date string, audience booking.Audience) (*booking.DaySubscription, error) {
	args := m.Called(ctx, date, audience)
	sub, _ := args.Get(0).(*booking.DaySubscription)
	return sub, args.Error(1)
}

func (m *MockBookingService) ReserveSlot(ctx context.Context, req booking.SlotReservation) (*models.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) RequestPreference(ctx context.Context, req booking.PreferenceRequest) (*models.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) Block(ctx context.Context, ref models.SlotRef) (*models.Booking, error) {
	args := m.Called(ctx, ref)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) Unblock(ctx context.Context, ref models.SlotRef) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockBookingService) Release(ctx context.Context, ref models.SlotRef) (*models.Booking, error) {
	args := m.Called(ctx, ref)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) Revoke(ctx context.Context, ref models.SlotRef) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockBookingService) Cancel(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *MockBookingService) UpdateGuest(ctx context.Context, bookingID string, upd booking.GuestUpdate) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, upd)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) CheckIntegrity(ctx context.Context, date string) (*models.IntegrityReport, error) {
	args := m.Called(ctx, date)
	r, _ := args.Get(0).(*models.IntegrityReport)
	return r, args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]models.Service)
	return s, args.Error(1)
}

func (m *MockCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *MockCatalogService) UpsertService(ctx context.Context, svc models.Service) (*models.Service, error) {
	args := m.Called(ctx, svc)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *MockCatalogService) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Cabin)
	return c, args.Error(1)
}
