package booking

import (
	"context"
	"sync"

	"rosa/models"
	"rosa/utils"

	"go.uber.org/zap"
)

// DaySubscription streams a freshly resolved grid every time a date's
// bookings change. Only the latest grid is kept for a slow reader.
type DaySubscription struct {
	Date     string
	Audience Audience

	updates chan *models.DayGrid
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// Updates is closed when the subscription ends.
func (d *DaySubscription) Updates() <-chan *models.DayGrid {
	return d.updates
}

// Err is the reason the watch stopped, nil after a normal Close.
func (d *DaySubscription) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Close stops the store watcher and waits for it to exit.
func (d *DaySubscription) Close() {
	d.cancel()
	<-d.done
}

// SubscribeDay starts watching date. The first grid arrives as soon as the
// store delivers the initial snapshot.
func (s *DefaultBookingService) SubscribeDay(ctx context.Context, date string, audience Audience) (*DaySubscription, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &DaySubscription{
		Date:     date,
		Audience: audience,
		updates:  make(chan *models.DayGrid, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.updates)
		utils.ActiveSubscriptions.Inc()
		defer utils.ActiveSubscriptions.Dec()

		err := s.Repo.WatchDate(ctx, date, func(bookings []models.Booking) {
			services, err := s.Catalog.ListServices(ctx)
			if err != nil {
				s.Logger.Warn("Skipping grid update, catalog unavailable", zap.String("date", date), zap.Error(err))
				return
			}
			grid := BuildDayGrid(date, services, bookings, audience)

			// drop a grid the reader has not picked up yet
			select {
			case <-sub.updates:
			default:
			}
			select {
			case sub.updates <- grid:
			case <-ctx.Done():
			}
		})
		if err != nil && ctx.Err() == nil {
			s.Logger.Error("Day watch stopped", zap.String("date", date), zap.Error(err))
			sub.mu.Lock()
			sub.err = err
			sub.mu.Unlock()
		}
	}()

	return sub, nil
}
