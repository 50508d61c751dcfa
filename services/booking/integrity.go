package booking

import (
	"context"
	"sort"

	"rosa/models"
	"rosa/utils"

	"go.uber.org/zap"
)

const (
	ConflictSlot  = "slot"
	ConflictCabin = "cabin"
)

// CheckIntegrity reports tuples holding more than one confirmed booking.
// It never repairs anything.
func (s *DefaultBookingService) CheckIntegrity(ctx context.Context, date string) (*models.IntegrityReport, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}
	bookings, err := s.Repo.ListByDate(ctx, date)
	if err != nil {
		return nil, translateStoreError("integrity", err)
	}

	report := BuildIntegrityReport(date, bookings)

	counts := map[string]int{ConflictSlot: 0, ConflictCabin: 0}
	for _, c := range report.Conflicts {
		counts[c.Kind]++
		s.Logger.Warn("Duplicate confirmed bookings",
			zap.String("kind", c.Kind),
			zap.String("serviceId", c.ServiceID),
			zap.String("date", c.Date),
			zap.String("key", c.Key),
			zap.Strings("bookingIds", c.BookingIDs))
	}
	for kind, n := range counts {
		utils.IntegrityConflicts.WithLabelValues(kind).Set(float64(n))
	}
	return report, nil
}

// BuildIntegrityReport groups the confirmed bookings of one date by slot
// tuple and by cabin.
func BuildIntegrityReport(date string, bookings []models.Booking) *models.IntegrityReport {
	type key struct{ kind, serviceID, key string }
	groups := map[key][]string{}
	for _, b := range bookings {
		if b.Status != models.StatusConfirmed || b.Date != date {
			continue
		}
		if b.IsSlotBooking() {
			k := key{ConflictSlot, b.ServiceID, b.Unit + "/" + b.TimeSlotID}
			groups[k] = append(groups[k], b.ID)
		}
		if b.CabinName != "" {
			k := key{ConflictCabin, b.ServiceID, b.CabinName}
			groups[k] = append(groups[k], b.ID)
		}
	}

	report := &models.IntegrityReport{Date: date, Scanned: len(bookings), Conflicts: []models.IntegrityConflict{}}
	for k, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		report.Conflicts = append(report.Conflicts, models.IntegrityConflict{
			Kind:       k.kind,
			ServiceID:  k.serviceID,
			Date:       date,
			Key:        k.key,
			BookingIDs: ids,
		})
	}
	sort.Slice(report.Conflicts, func(i, j int) bool {
		a, b := report.Conflicts[i], report.Conflicts[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.ServiceID != b.ServiceID {
			return a.ServiceID < b.ServiceID
		}
		return a.Key < b.Key
	})
	return report
}
