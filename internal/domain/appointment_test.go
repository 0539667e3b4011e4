package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/pkg/ptr"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestAppointment(t *testing.T, start time.Time, minutes int) *Appointment {
	t.Helper()
	a, err := NewAppointment(NewAppointmentParams{
		ClientID:   "client-1",
		ServiceID:  "float-60",
		LocationID: ptr.Ptr("loc-1"),
		StartTime:  start,
		EndTime:    start.Add(time.Duration(minutes) * time.Minute),
		Now:        testNow,
	})
	require.NoError(t, err)
	return a
}

func TestNewAppointment(t *testing.T) {
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	a := newTestAppointment(t, start, 60)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, 60, a.DurationMinutes())
	assert.Equal(t, testNow, a.CreatedAt)
}

func TestNewAppointment_RejectsBadWindow(t *testing.T) {
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	for name, end := range map[string]time.Time{
		"equal":    start,
		"reversed": start.Add(-time.Minute),
		"zero":     {},
	} {
		_, err := NewAppointment(NewAppointmentParams{
			ClientID:  "client-1",
			ServiceID: "float-60",
			StartTime: start,
			EndTime:   end,
		})
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestNewAppointment_RequiresIDs(t *testing.T) {
	start := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	_, err := NewAppointment(NewAppointmentParams{ServiceID: "s", StartTime: start, EndTime: start.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewAppointment(NewAppointmentParams{ClientID: "c", StartTime: start, EndTime: start.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointment_Transition(t *testing.T) {
	a := newTestAppointment(t, testNow.Add(time.Hour), 60)
	later := testNow.Add(time.Minute)

	confirmed, err := a.Transition(StatusConfirmed, later)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Equal(t, later, confirmed.UpdatedAt)
	assert.Equal(t, StatusPending, a.Status, "original must not change")

	completed, err := confirmed.Transition(StatusCompleted, later)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	_, err = confirmed.Transition(StatusPending, later)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = confirmed.Transition(AppointmentStatus("archived"), later)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointment_TerminalStatesRejectEveryTransition(t *testing.T) {
	base := newTestAppointment(t, testNow.Add(time.Hour), 60)
	all := []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		a := *base
		a.Status = terminal
		for _, target := range all {
			_, err := a.Transition(target, testNow)
			assert.ErrorIs(t, err, ErrConflict, "%s -> %s", terminal, target)
			assert.Equal(t, terminal, a.Status)
		}
		assert.True(t, terminal.IsTerminal())
		assert.False(t, a.IsCancellable())
	}
}

func TestAppointment_Predicates(t *testing.T) {
	past := newTestAppointment(t, testNow.Add(-2*time.Hour), 60)
	assert.True(t, past.IsPast(testNow))
	assert.True(t, past.IsToday(testNow))
	assert.True(t, past.IsCancellable())

	tomorrow := newTestAppointment(t, testNow.Add(24*time.Hour), 90)
	assert.False(t, tomorrow.IsPast(testNow))
	assert.False(t, tomorrow.IsToday(testNow))
	assert.Equal(t, 90, tomorrow.DurationMinutes())
}

func TestAppointment_Reschedule(t *testing.T) {
	a := newTestAppointment(t, testNow.Add(time.Hour), 60)
	newStart := testNow.Add(3 * time.Hour)

	moved, err := a.Reschedule(newStart, newStart.Add(time.Hour), testNow)
	require.NoError(t, err)
	assert.Equal(t, newStart, moved.StartTime)
	assert.Equal(t, a.ID, moved.ID)

	_, err = a.Reschedule(newStart, newStart, testNow)
	assert.ErrorIs(t, err, ErrValidation)

	cancelled, err := a.Transition(StatusCancelled, testNow)
	require.NoError(t, err)
	_, err = cancelled.Reschedule(newStart, newStart.Add(time.Hour), testNow)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseAppointmentStatus("done")
	assert.ErrorIs(t, err, ErrValidation)
}
