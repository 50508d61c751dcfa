package booking

import (
	"context"
	"testing"
	"time"

	"rosa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextGrid(t *testing.T, sub *DaySubscription) *models.DayGrid {
	t.Helper()
	select {
	case grid, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed early")
		return grid
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a grid")
	}
	return nil
}

func TestSubscribeDay_PushesGridOnChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.svc.SubscribeDay(ctx, testDate, AudienceAdmin)
	require.NoError(t, err)
	defer sub.Close()

	initial := nextGrid(t, sub)
	assert.Equal(t, models.SlotFree, initial.Services[0].Units[0].Slots[0].State)

	_, err = f.svc.Block(ctx, slotRef("sauna", "Única", "11-12"))
	require.NoError(t, err)

	updated := nextGrid(t, sub)
	assert.Equal(t, models.SlotBlocked, updated.Services[0].Units[0].Slots[0].State)
}

func TestSubscribeDay_CloseEndsUpdates(t *testing.T) {
	f := newFixture(t)

	sub, err := f.svc.SubscribeDay(context.Background(), testDate, AudienceGuest)
	require.NoError(t, err)
	nextGrid(t, sub)

	sub.Close()
	_, ok := <-sub.Updates()
	assert.False(t, ok)
	assert.NoError(t, sub.Err())
}

func TestSubscribeDay_RejectsBadDate(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SubscribeDay(context.Background(), "", AudienceGuest)
	assert.ErrorIs(t, err, ErrValidation)
}
