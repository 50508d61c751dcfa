package booking

import (
	"context"
	"testing"

	"rosa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIntegrityReport(t *testing.T) {
	confirmed := func(id, serviceID, unit, slotID, cabin string) models.Booking {
		return models.Booking{
			ID: id, ServiceID: serviceID, Unit: unit, TimeSlotID: slotID,
			Date: testDate, CabinName: cabin, Status: models.StatusConfirmed,
		}
	}
	bookings := []models.Booking{
		// legacy random-id documents sharing one slot
		confirmed("b", "sauna", "Única", "11-12", "Cabana 1"),
		confirmed("a", "sauna", "Única", "11-12", "Cabana 2"),
		// one cabin on two jacuzzi slots
		confirmed("c", "jacuzzi", "Deck", "14-15", "Cabana 3"),
		confirmed("d", "jacuzzi", "Jardim", "15-16", "Cabana 3"),
		// same cabin on different services is allowed
		confirmed("e", "limpeza", "", "", "Cabana 1"),
		// non-confirmed documents are ignored
		{ID: "f", ServiceID: "jacuzzi", Unit: "Deck", TimeSlotID: "15-16", Date: testDate, GuestName: AdminGuestName, Status: models.StatusBlocked},
	}

	report := BuildIntegrityReport(testDate, bookings)

	assert.Equal(t, testDate, report.Date)
	assert.Equal(t, len(bookings), report.Scanned)
	require.Len(t, report.Conflicts, 2)

	assert.Equal(t, models.IntegrityConflict{
		Kind: ConflictCabin, ServiceID: "jacuzzi", Date: testDate, Key: "Cabana 3", BookingIDs: []string{"c", "d"},
	}, report.Conflicts[0])
	assert.Equal(t, models.IntegrityConflict{
		Kind: ConflictSlot, ServiceID: "sauna", Date: testDate, Key: "Única/11-12", BookingIDs: []string{"a", "b"},
	}, report.Conflicts[1])
}

func TestCheckIntegrity_CleanDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReserveSlot(ctx, guestReservation(slotRef("sauna", "Única", "11-12"), "Ana", "Cabana 3"))
	require.NoError(t, err)

	report, err := f.svc.CheckIntegrity(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Empty(t, report.Conflicts)

	_, err = f.svc.CheckIntegrity(ctx, "tomorrow")
	assert.ErrorIs(t, err, ErrValidation)
}
