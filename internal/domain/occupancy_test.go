package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/FloatBookingService/pkg/ptr"
)

func TestCountOccupied(t *testing.T) {
	nine := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	ten := nine.Add(time.Hour)

	confirmed := &Appointment{Status: StatusConfirmed, StartTime: nine, EndTime: ten}
	cancelled := &Appointment{Status: StatusCancelled, StartTime: nine, EndTime: ten}
	adjacent := &Appointment{Status: StatusPending, StartTime: ten, EndTime: ten.Add(time.Hour)}

	assert.Equal(t, 1, CountOccupied(nine, ten, 2, []*Appointment{confirmed, cancelled, adjacent}, nil, time.UTC))

	tankBlock := &BlockedSlot{TankID: ptr.Ptr("t-1"), StartTime: nine, EndTime: nine.Add(30 * time.Minute)}
	assert.Equal(t, 2, CountOccupied(nine, ten, 2, []*Appointment{confirmed}, []*BlockedSlot{tankBlock}, time.UTC))

	locationBlock := &BlockedSlot{StartTime: nine, EndTime: nine.Add(30 * time.Minute)}
	assert.Equal(t, 3, CountOccupied(nine, ten, 3, nil, []*BlockedSlot{locationBlock, locationBlock}, time.UTC),
		"location-wide blocks consume capacity once")
	assert.Equal(t, 0, CountOccupied(ten, ten.Add(time.Hour), 3, nil, []*BlockedSlot{locationBlock}, time.UTC))
}

func TestOverlaps(t *testing.T) {
	a := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	b := a.Add(time.Hour)

	assert.True(t, Overlaps(a, b, a.Add(59*time.Minute), b.Add(time.Hour)))
	assert.False(t, Overlaps(a, b, b, b.Add(time.Hour)))
	assert.False(t, Overlaps(b, b.Add(time.Hour), a, b))
}
