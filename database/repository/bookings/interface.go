package bookingsRepo

import (
	"context"
	"errors"

	"rosa/models"
)

const CollectionName = "bookings"

var (
	// ErrNotFound is returned when a booking document does not exist.
	ErrNotFound = errors.New("bookings repository: booking not found")
	// ErrAlreadyExists is returned when creating a document whose id is taken.
	ErrAlreadyExists = errors.New("bookings repository: booking already exists")
	// ErrCabinTaken is returned when the store itself rejects a second
	// confirmed booking for the same cabin, service and date.
	ErrCabinTaken = errors.New("bookings repository: cabin already has a confirmed booking")
	// ErrConflict is returned when a concurrent transaction won.
	ErrConflict = errors.New("bookings repository: concurrent modification")
	// ErrUnavailable is returned when the store cannot be reached in time.
	ErrUnavailable = errors.New("bookings repository: store unavailable")
)

// Tx is the set of reads and writes available inside a transaction. All
// reads must happen before the first write.
type Tx interface {
	// GetSlot returns the booking occupying ref, or nil when the slot has no document.
	GetSlot(ref models.SlotRef) (*models.Booking, error)
	// Get returns the booking with id or ErrNotFound.
	Get(id string) (*models.Booking, error)
	// FindConfirmedForCabin returns a confirmed booking of cabinName for the
	// service on date, or nil.
	FindConfirmedForCabin(serviceID, cabinName, date string) (*models.Booking, error)
	Create(b *models.Booking) error
	Put(b *models.Booking) error
	Delete(id string) error
}

// BookingRepository persists booking documents.
type BookingRepository interface {
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindConfirmedForCabin(ctx context.Context, serviceID, cabinName, date string) (*models.Booking, error)
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WatchDate calls onChange with the full booking list of date every time
	// it changes, starting with the current list. It blocks until ctx is done.
	WatchDate(ctx context.Context, date string, onChange func([]models.Booking)) error
	Ping(ctx context.Context) error
}
