package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/ptr"
	"github.com/m04kA/FloatBookingService/pkg/types"
)

// Понедельник
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 6, hour, minute, 0, 0, time.UTC)
}

func hours(open, closeAt string) *domain.OperatingHours {
	return &domain.OperatingHours{
		LocationID: "loc-1",
		DayOfWeek:  1,
		OpenTime:   types.TimeString(open),
		CloseTime:  types.TimeString(closeAt),
		Active:     true,
	}
}

func appointment(start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         start.Format(time.RFC3339) + string(status),
		ClientID:   "client-1",
		ServiceID:  "float-60",
		LocationID: ptr.Ptr("loc-1"),
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	}
}

func block(start, end time.Time, tankID *string) *domain.BlockedSlot {
	return &domain.BlockedSlot{
		ID:         "block-" + start.Format(time.RFC3339),
		LocationID: "loc-1",
		TankID:     tankID,
		StartTime:  start,
		EndTime:    end,
		Reason:     "maintenance",
	}
}

func slot(t string, available bool) domain.Slot {
	return domain.Slot{Time: types.TimeString(t), Available: available}
}

func baseParams() CalculateParams {
	return CalculateParams{
		Date:               monday,
		Hours:              hours("09:00", "11:00"),
		Capacity:           2,
		DurationMinutes:    60,
		GranularityMinutes: 60,
		Location:           time.UTC,
	}
}

func TestCalculateSlots_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *CalculateParams)
		want   []domain.Slot
	}{
		{
			name:   "empty day with two tanks",
			modify: func(p *CalculateParams) {},
			want:   []domain.Slot{slot("09:00", true), slot("10:00", true)},
		},
		{
			name: "one confirmed appointment with two tanks",
			modify: func(p *CalculateParams) {
				p.Appointments = []*domain.Appointment{appointment(at(9, 0), at(10, 0), domain.StatusConfirmed)}
			},
			want: []domain.Slot{slot("09:00", true), slot("10:00", true)},
		},
		{
			name: "one confirmed appointment with one tank",
			modify: func(p *CalculateParams) {
				p.Capacity = 1
				p.Appointments = []*domain.Appointment{appointment(at(9, 0), at(10, 0), domain.StatusConfirmed)}
			},
			want: []domain.Slot{slot("09:00", false), slot("10:00", true)},
		},
		{
			name: "location-wide block with one tank",
			modify: func(p *CalculateParams) {
				p.Capacity = 1
				p.Blocks = []*domain.BlockedSlot{block(at(9, 0), at(9, 30), nil)}
			},
			want: []domain.Slot{slot("09:00", false), slot("10:00", true)},
		},
		{
			name: "location-wide block consumes every tank",
			modify: func(p *CalculateParams) {
				p.Capacity = 5
				p.Blocks = []*domain.BlockedSlot{block(at(9, 0), at(9, 30), nil)}
			},
			want: []domain.Slot{slot("09:00", false), slot("10:00", true)},
		},
		{
			name: "tank block with two tanks",
			modify: func(p *CalculateParams) {
				p.Blocks = []*domain.BlockedSlot{block(at(9, 0), at(9, 30), ptr.Ptr("tank-1"))}
			},
			want: []domain.Slot{slot("09:00", true), slot("10:00", true)},
		},
		{
			name: "tank block plus appointment fill two tanks",
			modify: func(p *CalculateParams) {
				p.Blocks = []*domain.BlockedSlot{block(at(9, 0), at(9, 30), ptr.Ptr("tank-1"))}
				p.Appointments = []*domain.Appointment{appointment(at(9, 30), at(10, 30), domain.StatusPending)}
			},
			want: []domain.Slot{slot("09:00", false), slot("10:00", true)},
		},
		{
			name: "inactive appointments do not occupy",
			modify: func(p *CalculateParams) {
				p.Capacity = 1
				p.Appointments = []*domain.Appointment{
					appointment(at(9, 0), at(10, 0), domain.StatusCancelled),
					appointment(at(9, 0), at(10, 0), domain.StatusNoShow),
					appointment(at(9, 0), at(10, 0), domain.StatusCompleted),
				}
			},
			want: []domain.Slot{slot("09:00", true), slot("10:00", true)},
		},
		{
			name: "touching intervals do not overlap",
			modify: func(p *CalculateParams) {
				p.Capacity = 1
				p.Appointments = []*domain.Appointment{appointment(at(8, 0), at(9, 0), domain.StatusConfirmed)}
				p.Blocks = []*domain.BlockedSlot{block(at(11, 0), at(12, 0), nil)}
			},
			want: []domain.Slot{slot("09:00", true), slot("10:00", true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := baseParams()
			tt.modify(&params)

			got, err := CalculateSlots(params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateSlots_ClosedDay(t *testing.T) {
	params := baseParams()
	params.Hours.Active = false

	got, err := CalculateSlots(params)
	require.NoError(t, err)
	assert.Empty(t, got)

	params.Hours = nil
	got, err = CalculateSlots(params)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCalculateSlots_NoTanks(t *testing.T) {
	params := baseParams()
	params.Capacity = 0

	got, err := CalculateSlots(params)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCalculateSlots_InvalidDuration(t *testing.T) {
	for _, minutes := range []int{0, -30} {
		params := baseParams()
		params.DurationMinutes = minutes

		_, err := CalculateSlots(params)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	params := baseParams()
	params.GranularityMinutes = 0
	_, err := CalculateSlots(params)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCalculateSlots_CompleteWindow(t *testing.T) {
	params := baseParams()
	params.Hours = hours("08:00", "22:00")
	params.Capacity = 1
	params.GranularityMinutes = 30
	params.Appointments = []*domain.Appointment{
		appointment(at(10, 0), at(11, 0), domain.StatusConfirmed),
		appointment(at(15, 30), at(17, 0), domain.StatusPending),
	}
	params.Blocks = []*domain.BlockedSlot{block(at(19, 0), at(20, 0), nil)}

	got, err := CalculateSlots(params)
	require.NoError(t, err)

	// 08:00 .. 21:00 включительно с шагом 30 минут
	require.Len(t, got, 27)
	assert.Equal(t, types.TimeString("08:00"), got[0].Time)
	assert.Equal(t, types.TimeString("21:00"), got[len(got)-1].Time)

	available, unavailable := 0, 0
	for i, s := range got {
		if s.Available {
			available++
		} else {
			unavailable++
		}
		if i > 0 {
			assert.True(t, got[i-1].Time.IsBefore(s.Time), "slots must be chronological")
		}
	}
	assert.Equal(t, len(got), available+unavailable)
	assert.Positive(t, unavailable)
}

func TestCalculateSlots_DurationLongerThanStep(t *testing.T) {
	params := baseParams()
	params.Capacity = 1
	params.DurationMinutes = 90
	params.GranularityMinutes = 30
	params.Appointments = []*domain.Appointment{appointment(at(10, 15), at(10, 30), domain.StatusConfirmed)}

	got, err := CalculateSlots(params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{slot("09:00", false), slot("09:30", false)}, got)
}

func TestCalculateSlots_Idempotent(t *testing.T) {
	params := baseParams()
	params.Hours = hours("08:00", "20:00")
	params.GranularityMinutes = 15
	params.Appointments = []*domain.Appointment{
		appointment(at(9, 0), at(10, 0), domain.StatusConfirmed),
		appointment(at(9, 30), at(10, 30), domain.StatusPending),
	}
	params.Blocks = []*domain.BlockedSlot{block(at(12, 0), at(13, 0), ptr.Ptr("tank-2"))}

	first, err := CalculateSlots(params)
	require.NoError(t, err)
	second, err := CalculateSlots(params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateSlots_RecurringBlock(t *testing.T) {
	params := baseParams()
	params.Capacity = 1

	// Блокировка с прошлого понедельника, повторяется каждую неделю
	weekly := block(at(10, 0).AddDate(0, 0, -7), at(11, 0).AddDate(0, 0, -7), nil)
	weekly.Recurring = true
	params.Blocks = []*domain.BlockedSlot{weekly}

	got, err := CalculateSlots(params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{slot("09:00", true), slot("10:00", false)}, got)
}

func TestCalculateSlots_LocalTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	params := baseParams()
	params.Capacity = 1
	params.Location = loc
	params.Date = time.Date(2025, 1, 6, 0, 0, 0, 0, loc)
	// 06:00 UTC = 09:00 по местному времени
	params.Appointments = []*domain.Appointment{appointment(at(6, 0), at(7, 0), domain.StatusConfirmed)}

	got, err := CalculateSlots(params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{slot("09:00", false), slot("10:00", true)}, got)
}
