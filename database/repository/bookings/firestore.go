package bookingsRepo

import (
	"context"
	"errors"
	"fmt"

	"rosa/models"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreBookingRepo implements BookingRepository on Cloud Firestore.
type FirestoreBookingRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
	logger *zap.Logger
}

// NewFirestoreBookingRepo constructs a Firestore-backed repository.
func NewFirestoreBookingRepo(client *firestore.Client, logger *zap.Logger) *FirestoreBookingRepo {
	return &FirestoreBookingRepo{
		client: client,
		coll:   client.Collection(CollectionName),
		logger: logger,
	}
}

func decodeSnapshot(snap *firestore.DocumentSnapshot) (*models.Booking, error) {
	var b models.Booking
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("error decoding booking %s: %w", snap.Ref.ID, err)
	}
	b.ID = snap.Ref.ID
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// decodeAll skips documents that fail validation; a single corrupt record
// must not take the whole day grid down.
func (repo *FirestoreBookingRepo) decodeAll(snaps []*firestore.DocumentSnapshot) []models.Booking {
	bookings := make([]models.Booking, 0, len(snaps))
	for _, snap := range snaps {
		b, err := decodeSnapshot(snap)
		if err != nil {
			repo.logger.Warn("skipping invalid booking document", zap.String("id", snap.Ref.ID), zap.Error(err))
			continue
		}
		bookings = append(bookings, *b)
	}
	return bookings
}

func (repo *FirestoreBookingRepo) cabinQuery(serviceID, cabinName, date string) firestore.Query {
	return repo.coll.
		Where("serviceId", "==", serviceID).
		Where("cabinName", "==", cabinName).
		Where("date", "==", date).
		Where("status", "==", string(models.StatusConfirmed)).
		Limit(1)
}

// ListByDate returns every booking document for date.
func (repo *FirestoreBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	snaps, err := repo.coll.Where("date", "==", date).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for %s: %w", date, firestoreUnavailable(err))
	}
	return repo.decodeAll(snaps), nil
}

// GetByID fetches one booking.
func (repo *FirestoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	snap, err := repo.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, firestoreUnavailable(err))
	}
	return decodeSnapshot(snap)
}

// FindConfirmedForCabin runs the cabin uniqueness query outside any transaction.
func (repo *FirestoreBookingRepo) FindConfirmedForCabin(ctx context.Context, serviceID, cabinName, date string) (*models.Booking, error) {
	iter := repo.cabinQuery(serviceID, cabinName, date).Documents(ctx)
	defer iter.Stop()
	return firstBooking(iter)
}

func firstBooking(iter *firestore.DocumentIterator) (*models.Booking, error) {
	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying cabin bookings: %w", firestoreUnavailable(err))
	}
	return decodeSnapshot(snap)
}

// RunInTransaction runs fn in a Firestore transaction. Firestore may call fn
// more than once on contention, so fn must not have side effects outside tx.
func (repo *FirestoreBookingRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	err := repo.client.RunTransaction(ctx, func(ctx context.Context, ftx *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{repo: repo, tx: ftx})
	})
	switch status.Code(err) {
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case codes.Aborted:
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return firestoreUnavailable(err)
}

// firestoreUnavailable tags errors caused by the store being unreachable.
func firestoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// WatchDate streams the date's bookings through a snapshot listener.
func (repo *FirestoreBookingRepo) WatchDate(ctx context.Context, date string, onChange func([]models.Booking)) error {
	it := repo.coll.Where("date", "==", date).Snapshots(ctx)
	defer it.Stop()

	for {
		qs, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("booking listener for %s failed: %w", date, err)
		}
		snaps, err := qs.Documents.GetAll()
		if err != nil {
			return fmt.Errorf("booking listener for %s failed: %w", date, err)
		}
		onChange(repo.decodeAll(snaps))
	}
}

// Ping performs a minimal read.
func (repo *FirestoreBookingRepo) Ping(ctx context.Context) error {
	iter := repo.coll.Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

type firestoreTx struct {
	repo *FirestoreBookingRepo
	tx   *firestore.Transaction
}

func (t *firestoreTx) GetSlot(ref models.SlotRef) (*models.Booking, error) {
	b, err := t.Get(ref.ID())
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (t *firestoreTx) Get(id string) (*models.Booking, error) {
	snap, err := t.tx.Get(t.repo.coll.Doc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return decodeSnapshot(snap)
}

func (t *firestoreTx) FindConfirmedForCabin(serviceID, cabinName, date string) (*models.Booking, error) {
	iter := t.tx.Documents(t.repo.cabinQuery(serviceID, cabinName, date))
	defer iter.Stop()
	return firstBooking(iter)
}

func (t *firestoreTx) Create(b *models.Booking) error {
	return t.tx.Create(t.repo.coll.Doc(b.ID), b)
}

func (t *firestoreTx) Put(b *models.Booking) error {
	return t.tx.Set(t.repo.coll.Doc(b.ID), b)
}

func (t *firestoreTx) Delete(id string) error {
	return t.tx.Delete(t.repo.coll.Doc(id))
}
