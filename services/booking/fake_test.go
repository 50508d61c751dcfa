package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingsRepo "rosa/database/repository/bookings"
	catalogRepo "rosa/database/repository/catalog"
	"rosa/models"

	"go.uber.org/zap"
)

// memRepo is an in-memory BookingRepository. Transactions are serialized
// and applied to a copy that replaces the state only on success.
type memRepo struct {
	mu       sync.Mutex
	docs     map[string]models.Booking
	txCount  int
	watchers []chan struct{}

	// staleCabinReads makes the out-of-transaction cabin lookup miss, as
	// when another booking commits between the pre-check and the transaction.
	staleCabinReads bool
}

func newMemRepo(seed ...models.Booking) *memRepo {
	r := &memRepo{docs: map[string]models.Booking{}}
	for _, b := range seed {
		r.docs[b.ID] = b
	}
	return r
}

func (r *memRepo) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(date), nil
}

func (r *memRepo) listLocked(date string) []models.Booking {
	var out []models.Booking
	for _, b := range r.docs {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.docs[id]
	if !ok {
		return nil, bookingsRepo.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) FindConfirmedForCabin(_ context.Context, serviceID, cabinName, date string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleCabinReads {
		return nil, nil
	}
	return findCabin(r.docs, serviceID, cabinName, date), nil
}

func findCabin(docs map[string]models.Booking, serviceID, cabinName, date string) *models.Booking {
	for _, b := range docs {
		if b.ServiceID == serviceID && b.CabinName == cabinName && b.Date == date && b.Status == models.StatusConfirmed {
			found := b
			return &found
		}
	}
	return nil
}

func (r *memRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx bookingsRepo.Tx) error) error {
	r.mu.Lock()
	r.txCount++
	tx := &memTx{docs: make(map[string]models.Booking, len(r.docs))}
	for k, v := range r.docs {
		tx.docs[k] = v
	}
	if err := fn(ctx, tx); err != nil {
		r.mu.Unlock()
		return err
	}
	r.docs = tx.docs
	watchers := append([]chan struct{}(nil), r.watchers...)
	r.mu.Unlock()

	for _, w := range watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
	return nil
}

func (r *memRepo) WatchDate(ctx context.Context, date string, onChange func([]models.Booking)) error {
	changed := make(chan struct{}, 1)
	r.mu.Lock()
	r.watchers = append(r.watchers, changed)
	initial := r.listLocked(date)
	r.mu.Unlock()

	onChange(initial)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
			r.mu.Lock()
			list := r.listLocked(date)
			r.mu.Unlock()
			onChange(list)
		}
	}
}

func (r *memRepo) Ping(context.Context) error { return nil }

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func (r *memRepo) transactions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.txCount
}

type memTx struct {
	docs map[string]models.Booking
}

func (t *memTx) GetSlot(ref models.SlotRef) (*models.Booking, error) {
	b, ok := t.docs[ref.ID()]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (t *memTx) Get(id string) (*models.Booking, error) {
	b, ok := t.docs[id]
	if !ok {
		return nil, bookingsRepo.ErrNotFound
	}
	return &b, nil
}

func (t *memTx) FindConfirmedForCabin(serviceID, cabinName, date string) (*models.Booking, error) {
	return findCabin(t.docs, serviceID, cabinName, date), nil
}

func (t *memTx) Create(b *models.Booking) error {
	if _, ok := t.docs[b.ID]; ok {
		return bookingsRepo.ErrAlreadyExists
	}
	t.docs[b.ID] = *b
	return nil
}

func (t *memTx) Put(b *models.Booking) error {
	t.docs[b.ID] = *b
	return nil
}

func (t *memTx) Delete(id string) error {
	delete(t.docs, id)
	return nil
}

type memCatalog struct {
	services []models.Service
}

func (c *memCatalog) ListServices(context.Context) ([]models.Service, error) {
	return c.services, nil
}

func (c *memCatalog) GetService(_ context.Context, id string) (*models.Service, error) {
	for i := range c.services {
		if c.services[i].ID == id {
			svc := c.services[i]
			return &svc, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Booking
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, b models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, b)
	return nil
}

const testDate = "2026-03-14"

var (
	sauna = models.Service{
		ID:            "sauna",
		Name:          "Sauna",
		Type:          models.ServiceTypeSlots,
		DefaultStatus: models.DefaultStatusOpen,
		Units:         []string{"Única"},
		TimeSlots:     []models.TimeSlot{{ID: "11-12", StartTime: "11:00", EndTime: "12:00", Label: "11h–12h"}},
	}
	jacuzzi = models.Service{
		ID:            "jacuzzi",
		Name:          "Jacuzzi",
		Type:          models.ServiceTypeSlots,
		DefaultStatus: models.DefaultStatusClosed,
		Units:         []string{"Deck", "Jardim"},
		TimeSlots: []models.TimeSlot{
			{ID: "14-15", StartTime: "14:00", EndTime: "15:00", Label: "14h–15h"},
			{ID: "15-16", StartTime: "15:00", EndTime: "16:00", Label: "15h–16h"},
		},
	}
	limpeza = models.Service{
		ID:                "limpeza",
		Name:              "Limpeza",
		Type:              models.ServiceTypePreference,
		DefaultStatus:     models.DefaultStatusOpen,
		AdditionalOptions: []string{"Troca de toalhas", "Troca de roupa de cama"},
	}
)

type fixture struct {
	repo     *memRepo
	notifier *recordingNotifier
	svc      *DefaultBookingService
}

func newFixture(t *testing.T, seed ...models.Booking) *fixture {
	t.Helper()
	repo := newMemRepo(seed...)
	notifier := &recordingNotifier{}
	svc := NewBookingService(repo, &memCatalog{services: []models.Service{sauna, jacuzzi, limpeza}}, notifier, zap.NewNop(), time.UTC)
	// the day before testDate, at noon
	svc.Clock = func() time.Time { return time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC) }
	return &fixture{repo: repo, notifier: notifier, svc: svc}
}

func slotRef(serviceID, unit, slotID string) models.SlotRef {
	return models.SlotRef{ServiceID: serviceID, Unit: unit, TimeSlotID: slotID, Date: testDate}
}
