package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/infra/cache/idempotency"
	"github.com/m04kA/FloatBookingService/internal/infra/storage/memory"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
	"github.com/m04kA/FloatBookingService/pkg/logger"
	"github.com/m04kA/FloatBookingService/pkg/ptr"
	"github.com/m04kA/FloatBookingService/pkg/txmanager"
	"github.com/m04kA/FloatBookingService/pkg/types"
)

// Воскресенье, накануне понедельника 2025-01-06
var now = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 6, hour, minute, 0, 0, time.UTC)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) RecordBookingCommit(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

type fixture struct {
	store   *memory.Store
	metrics *countingMetrics
	uc      *UseCase
}

func newFixture(t *testing.T, tanks int, store IdempotencyStore) *fixture {
	t.Helper()
	mem := memory.NewStore()

	for i := 0; i < tanks; i++ {
		mem.Tanks().Put(domain.Tank{ID: fmt.Sprintf("tank-%d", i), LocationID: "loc-1", Status: domain.TankReady, Active: true})
	}
	_, err := mem.OperatingHours().Upsert(context.Background(), &domain.OperatingHours{
		LocationID: "loc-1",
		DayOfWeek:  1,
		OpenTime:   types.TimeString("09:00"),
		CloseTime:  types.TimeString("22:00"),
		Active:     true,
	})
	require.NoError(t, err)

	checker := capacity.NewChecker(mem.Appointments(), mem.BlockedSlots(), mem.OperatingHours(),
		mem.SchedulingConfigs(), mem.Tanks(), time.UTC)
	m := &countingMetrics{}

	uc := NewUseCase(mem.Appointments(), mem.Outbox(), checker, store, mem.TxManager(), m, logger.Nop())
	uc.timeProvider = fixedTime{now: now}

	return &fixture{store: mem, metrics: m, uc: uc}
}

func request() *Request {
	return &Request{
		ClientID:   "client-1",
		ServiceID:  "float-60",
		LocationID: "loc-1",
		StartTime:  at(10, 0),
		EndTime:    at(11, 0),
		Notes:      ptr.Ptr("first visit"),
	}
}

func (f *fixture) appointments(t *testing.T) []*domain.Appointment {
	t.Helper()
	list, _, err := f.store.Appointments().FindMany(context.Background(), domain.AppointmentFilter{}, domain.Pagination{Page: 1, Limit: 100})
	require.NoError(t, err)
	return list
}

func TestUseCase_Execute_CreatesPending(t *testing.T) {
	f := newFixture(t, 1, nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment)
	assert.False(t, resp.Replayed)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, "loc-1", *resp.Appointment.LocationID)
	assert.Equal(t, "first visit", *resp.Appointment.Notes)

	events, err := f.store.Outbox().FetchUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventAppointmentCreated, events[0].EventType)
	assert.Equal(t, resp.Appointment.ID, events[0].AggregateID)

	assert.Equal(t, 1, f.metrics.outcomes["created"])
}

func TestUseCase_Execute_LastTankTaken(t *testing.T) {
	f := newFixture(t, 1, nil)

	_, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	req := request()
	req.ClientID = "client-2"
	req.StartTime = at(10, 30)
	req.EndTime = at(11, 30)

	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.appointments(t), 1)
	assert.Equal(t, 1, f.metrics.outcomes["conflict"])
}

func TestUseCase_Execute_LocationWideBlock(t *testing.T) {
	f := newFixture(t, 3, nil)
	_, err := f.store.BlockedSlots().Create(context.Background(), &domain.BlockedSlot{
		ID:         "block-1",
		LocationID: "loc-1",
		StartTime:  at(10, 45),
		EndTime:    at(12, 0),
		Reason:     "deep clean",
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUseCase_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(t *testing.T, f *fixture, req *Request)
		wantErr error
	}{
		{
			name: "end before start",
			modify: func(t *testing.T, f *fixture, req *Request) {
				req.EndTime = req.StartTime
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "missing location",
			modify: func(t *testing.T, f *fixture, req *Request) {
				req.LocationID = ""
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "closed weekday",
			modify: func(t *testing.T, f *fixture, req *Request) {
				req.StartTime = req.StartTime.AddDate(0, 0, 1)
				req.EndTime = req.EndTime.AddDate(0, 0, 1)
			},
			wantErr: capacity.ErrLocationClosed,
		},
		{
			name: "outside operating hours",
			modify: func(t *testing.T, f *fixture, req *Request) {
				req.StartTime = at(21, 30)
				req.EndTime = at(22, 30)
			},
			wantErr: capacity.ErrOutsideOperatingHours,
		},
		{
			name: "start in the past",
			modify: func(t *testing.T, f *fixture, req *Request) {
				f.uc.timeProvider = fixedTime{now: at(10, 30)}
			},
			wantErr: capacity.ErrStartInPast,
		},
		{
			name: "beyond advance booking limit",
			modify: func(t *testing.T, f *fixture, req *Request) {
				_, err := f.store.SchedulingConfigs().Upsert(context.Background(), &domain.LocationSchedulingConfig{
					LocationID:             "loc-1",
					SlotGranularityMinutes: 30,
					AdvanceBookingDays:     7,
				})
				require.NoError(t, err)
				req.StartTime = req.StartTime.AddDate(0, 0, 14)
				req.EndTime = req.EndTime.AddDate(0, 0, 14)
			},
			wantErr: capacity.ErrTooFarInAdvance,
		},
		{
			name: "no bookable tanks",
			modify: func(t *testing.T, f *fixture, req *Request) {
				f.store.Tanks().Put(domain.Tank{ID: "tank-0", LocationID: "loc-1", Status: domain.TankOffline, Active: true})
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1, nil)
			req := request()
			tt.modify(t, f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments(t))
		})
	}
}

func TestUseCase_Execute_ValidatesBeforeTransaction(t *testing.T) {
	tx := &stubTxManager{}
	uc := NewUseCase(nil, nil, nil, nil, tx, nil, logger.Nop())

	req := request()
	req.EndTime = req.StartTime.Add(-time.Hour)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, tx.calls)
}

func TestUseCase_Execute_SerializationRetriesExhausted(t *testing.T) {
	tx := &stubTxManager{err: fmt.Errorf("%w: 4 attempts: %v", txmanager.ErrSerializationFailure, errors.New("pq: could not serialize access"))}
	uc := NewUseCase(nil, nil, nil, nil, tx, nil, logger.Nop())
	uc.timeProvider = fixedTime{now: now}

	_, err := uc.Execute(context.Background(), request())
	require.ErrorIs(t, err, ErrConcurrentBooking)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, tx.calls)
}

func TestUseCase_Execute_CancelledContextLeavesNoState(t *testing.T) {
	f := newFixture(t, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Execute(ctx, request())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.appointments(t))

	events, err := f.store.Outbox().FetchUnpublished(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUseCase_Execute_ConcurrentCommitsNeverExceedCapacity(t *testing.T) {
	for _, tanks := range []int{1, 3} {
		t.Run(fmt.Sprintf("tanks=%d", tanks), func(t *testing.T) {
			f := newFixture(t, tanks, nil)

			const attempts = 20
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
				conflicts int
			)

			start := make(chan struct{})
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start

					req := request()
					req.ClientID = fmt.Sprintf("client-%d", i)
					_, err := f.uc.Execute(context.Background(), req)

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						succeeded++
					case errors.Is(err, domain.ErrConflict):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			close(start)
			wg.Wait()

			assert.Equal(t, tanks, succeeded)
			assert.Equal(t, attempts-tanks, conflicts)

			overlapping, err := f.store.Appointments().ListActiveOverlapping(context.Background(), "loc-1", at(10, 0), at(11, 0))
			require.NoError(t, err)
			assert.Len(t, overlapping, tanks)
		})
	}
}

func newIdempotencyStore(t *testing.T) *idempotency.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return idempotency.NewStore(client, time.Hour)
}

func TestUseCase_Execute_IdempotencyKeyReplay(t *testing.T) {
	f := newFixture(t, 2, newIdempotencyStore(t))

	req := request()
	req.IdempotencyKey = "key-1"

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Appointment.ID, second.Appointment.ID)

	assert.Len(t, f.appointments(t), 1)
	assert.Equal(t, 1, f.metrics.outcomes["idempotent"])
}

func TestUseCase_Execute_IdempotencyKeyReusedForOtherRequest(t *testing.T) {
	f := newFixture(t, 2, newIdempotencyStore(t))

	req := request()
	req.IdempotencyKey = "key-1"
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	other := request()
	other.IdempotencyKey = "key-1"
	other.StartTime = at(12, 0)
	other.EndTime = at(13, 0)

	_, err = f.uc.Execute(context.Background(), other)
	require.ErrorIs(t, err, ErrIdempotencyKeyReused)
	assert.Len(t, f.appointments(t), 1)
}

func TestUseCase_Execute_ConcurrentSameIdempotencyKey(t *testing.T) {
	f := newFixture(t, 5, newIdempotencyStore(t))

	const attempts = 5
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ids        = map[string]struct{}{}
		inProgress int
	)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			req := request()
			req.IdempotencyKey = "double-click"
			resp, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ids[resp.Appointment.ID] = struct{}{}
			case errors.Is(err, ErrIdempotencyRequestInProgress):
				inProgress++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, f.appointments(t), 1)
	assert.Len(t, ids, 1)
	assert.LessOrEqual(t, inProgress, attempts-1)
}

func TestUseCase_Execute_IdempotencyKeyInProgress(t *testing.T) {
	store := newIdempotencyStore(t)
	f := newFixture(t, 2, store)

	req := request()
	req.IdempotencyKey = "key-1"
	reserved, err := store.Reserve(context.Background(), req.IdempotencyKey, fingerprint(req))
	require.NoError(t, err)
	require.True(t, reserved)

	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrIdempotencyRequestInProgress)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.appointments(t))
}

func TestUseCase_Execute_FailedCommitReleasesIdempotencyKey(t *testing.T) {
	f := newFixture(t, 1, newIdempotencyStore(t))

	other := request()
	other.ClientID = "client-2"
	taken, err := f.uc.Execute(context.Background(), other)
	require.NoError(t, err)

	req := request()
	req.IdempotencyKey = "key-1"
	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	cancelled := *taken.Appointment
	cancelled.Status = domain.StatusCancelled
	require.NoError(t, f.store.Appointments().Update(context.Background(), &cancelled))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Replayed)
	assert.Equal(t, "client-1", resp.Appointment.ClientID)
}

type stubTxManager struct {
	calls int
	err   error
}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}
