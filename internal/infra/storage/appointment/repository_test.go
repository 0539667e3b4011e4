package appointment

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/dbmetrics"
	"github.com/m04kA/FloatBookingService/pkg/ptr"
)

var (
	nine = time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	ten  = nine.Add(time.Hour)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	a := &domain.Appointment{
		ID:         "a-1",
		ClientID:   "c-1",
		ServiceID:  "s-1",
		LocationID: ptr.Ptr("loc-1"),
		StartTime:  nine,
		EndTime:    ten,
		Status:     domain.StatusPending,
	}

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs("a-1", "c-1", "s-1", "loc-1", nil, nine, ten, "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(nine, nine))

	created, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, nine, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE id = \$1$`).
		WithArgs("a-1").
		WillReturnRows(appointmentRows().AddRow("a-1", "c-1", "s-1", "loc-1", nil, nine, ten, "confirmed", "quiet room", nine, nine))

	a, err := repo.FindByID(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, a.Status)
	assert.Equal(t, "loc-1", *a.LocationID)
	assert.Nil(t, a.TankID)
	assert.Equal(t, "quiet room", *a.Notes)

	mock.ExpectQuery("SELECT .+ FROM appointments").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_LocksInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE id = \$1 FOR UPDATE`).
		WithArgs("a-1").
		WillReturnRows(appointmentRows().AddRow("a-1", "c-1", "s-1", nil, nil, nine, ten, "pending", nil, nine, nine))

	_, err = repo.FindByID(ctx, "a-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindMany(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	status := domain.StatusPending
	filter := domain.AppointmentFilter{ClientID: ptr.Ptr("c-1"), Status: &status}
	page := domain.Pagination{Page: 2, Limit: 1}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE \(client_id = \$1 AND status = \$2\)`).
		WithArgs("c-1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE .+ ORDER BY start_time ASC, id ASC LIMIT 1 OFFSET 1`).
		WithArgs("c-1", "pending").
		WillReturnRows(appointmentRows().AddRow("a-2", "c-1", "s-1", nil, nil, nine, ten, "pending", nil, nine, nine))

	list, total, err := repo.FindMany(context.Background(), filter, page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 1)
	assert.Equal(t, "a-2", list[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindMany_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.FindMany(context.Background(), domain.AppointmentFilter{}, domain.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	a := &domain.Appointment{ID: "a-1", Status: domain.StatusCancelled, StartTime: nine, EndTime: ten, UpdatedAt: ten}

	mock.ExpectExec("UPDATE appointments SET status = \\$1").
		WithArgs("cancelled", nine, ten, nil, nil, ten, "a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), a))

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), a), ErrAppointmentNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE start_time >= \$1 AND start_time < \$2 AND location_id = \$3`).
		WithArgs(day, day.AddDate(0, 0, 1), "loc-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountByDate(context.Background(), ptr.Ptr("loc-1"), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActiveOverlapping(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE location_id = \$1 AND status IN \(\$2,\$3\) AND start_time < \$4 AND end_time > \$5`).
		WithArgs("loc-1", "pending", "confirmed", ten, nine).
		WillReturnRows(appointmentRows().AddRow("a-1", "c-1", "s-1", "loc-1", nil, nine, ten, "confirmed", nil, nine, nine))

	list, err := repo.ListActiveOverlapping(context.Background(), "loc-1", nine, ten)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockLocation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("loc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.LockLocation(context.Background(), "loc-1"))

	boom := errors.New("connection reset")
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnError(boom)
	err := repo.LockLocation(context.Background(), "loc-1")
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
