package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperatingHours(t *testing.T) {
	h, err := NewOperatingHours("loc-1", 1, "09:00", "21:00", true)
	require.NoError(t, err)
	assert.True(t, h.IsOpen())

	_, err = NewOperatingHours("loc-1", 7, "09:00", "21:00", true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOperatingHours("loc-1", 1, "21:00", "09:00", true)
	assert.ErrorIs(t, err, ErrValidation)

	closed, err := NewOperatingHours("loc-1", 0, "00:00", "00:00", false)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())

	var missing *OperatingHours
	assert.False(t, missing.IsOpen())
}

func TestOperatingHours_Contains(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	h, err := NewOperatingHours("loc-1", 3, "09:00", "11:00", true)
	require.NoError(t, err)

	start := time.Date(2025, 6, 11, 10, 0, 0, 0, loc)
	ok, err := h.Contains(start, start.Add(time.Hour), loc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Contains(start, start.Add(90*time.Minute), loc)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 3, DayOfWeekOf(start))
}

func TestNewPagination(t *testing.T) {
	p, err := NewPagination(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 1, Limit: 20}, p)

	p, err = NewPagination(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())

	_, err = NewPagination(1, 101)
	assert.ErrorIs(t, err, ErrValidation)

	page := NewPage([]int{1, 2}, 41, Pagination{Page: 1, Limit: 20})
	assert.Equal(t, 3, page.TotalPages)
}
