package booking

import (
	"context"
	"time"

	bookingsRepo "rosa/database/repository/bookings"
	"rosa/models"
	"rosa/utils"

	"go.uber.org/zap"
)

// Audience decides which actions and details a caller sees.
type Audience string

const (
	AudienceGuest Audience = "guest"
	AudienceAdmin Audience = "admin"
)

// AdminGuestName is written on slots blocked by staff.
const AdminGuestName = "Admin"

// BookingService is the booking engine used by the HTTP handlers and jobs.
type BookingService interface {
	Today() string
	DayGrid(ctx context.Context, date string, audience Audience) (*models.DayGrid, error)
	SubscribeDay(ctx context.Context, date string, audience Audience) (*DaySubscription, error)

	ReserveSlot(ctx context.Context, req SlotReservation) (*models.Booking, error)
	RequestPreference(ctx context.Context, req PreferenceRequest) (*models.Booking, error)

	Block(ctx context.Context, ref models.SlotRef) (*models.Booking, error)
	Unblock(ctx context.Context, ref models.SlotRef) error
	Release(ctx context.Context, ref models.SlotRef) (*models.Booking, error)
	Revoke(ctx context.Context, ref models.SlotRef) error
	Cancel(ctx context.Context, bookingID string) error
	UpdateGuest(ctx context.Context, bookingID string, upd GuestUpdate) (*models.Booking, error)

	CheckIntegrity(ctx context.Context, date string) (*models.IntegrityReport, error)
}

// ServiceCatalog is the slice of the catalog the booking engine reads.
type ServiceCatalog interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
}

// Notifier is told about confirmed guest bookings. Failures never undo a booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b models.Booking) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingsRepo.BookingRepository
	Catalog  ServiceCatalog
	Notifier Notifier
	Logger   *zap.Logger
	Location *time.Location
	Clock    func() time.Time
}

// NewBookingService wires a DefaultBookingService with the wall clock.
func NewBookingService(
	repo bookingsRepo.BookingRepository,
	catalog ServiceCatalog,
	notifier Notifier,
	logger *zap.Logger,
	loc *time.Location,
) *DefaultBookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultBookingService{
		Repo:     repo,
		Catalog:  catalog,
		Notifier: notifier,
		Logger:   logger,
		Location: loc,
		Clock:    time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock == nil {
		return time.Now().In(s.Location)
	}
	return s.Clock().In(s.Location)
}

// Today is the current business date.
func (s *DefaultBookingService) Today() string {
	return utils.Today(s.now(), s.Location)
}
