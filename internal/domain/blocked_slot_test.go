package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/pkg/ptr"
)

func TestNewBlockedSlot(t *testing.T) {
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	b, err := NewBlockedSlot(NewBlockedSlotParams{
		LocationID: "loc-1",
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Reason:     "  filter change  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "filter change", b.Reason)
	assert.True(t, b.IsLocationWide())

	_, err = NewBlockedSlot(NewBlockedSlotParams{LocationID: "loc-1", StartTime: start, EndTime: start, Reason: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewBlockedSlot(NewBlockedSlotParams{LocationID: "loc-1", StartTime: start, EndTime: start.Add(time.Hour), Reason: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewBlockedSlot(NewBlockedSlotParams{LocationID: "loc-1", StartTime: start, EndTime: start.Add(8 * 24 * time.Hour), Reason: "x", Recurring: true})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlockedSlot_Overlaps(t *testing.T) {
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	b := &BlockedSlot{LocationID: "loc-1", TankID: ptr.Ptr("tank-1"), StartTime: start, EndTime: start.Add(30 * time.Minute)}

	assert.False(t, b.IsLocationWide())
	assert.True(t, b.Overlaps(start.Add(-time.Hour).Add(time.Minute), start.Add(time.Minute), time.UTC))
	assert.False(t, b.Overlaps(start.Add(30*time.Minute), start.Add(time.Hour), time.UTC), "touching end is not overlap")
	assert.False(t, b.Overlaps(start.Add(7*24*time.Hour), start.Add(7*24*time.Hour+time.Hour), time.UTC))
}

func TestBlockedSlot_RecurringOverlaps(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, loc)
	b := &BlockedSlot{LocationID: "loc-1", StartTime: start, EndTime: start.Add(time.Hour), Recurring: true}

	nextWeek := start.AddDate(0, 0, 14)
	assert.True(t, b.Overlaps(nextWeek.Add(30*time.Minute), nextWeek.Add(90*time.Minute), loc))
	assert.False(t, b.Overlaps(nextWeek.Add(time.Hour), nextWeek.Add(2*time.Hour), loc))

	weekBefore := start.AddDate(0, 0, -7)
	assert.False(t, b.Overlaps(weekBefore, weekBefore.Add(time.Hour), loc), "no occurrences before the first one")

	assert.True(t, b.Overlaps(start.AddDate(0, 0, -30), start.Add(time.Minute), loc))
}
