package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/appointment"
	blockedSlotRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/blockedslot"
	operatingHoursRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/operatinghours"
	schedulingConfigRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/schedulingconfig"
)

// AppointmentRepository записи в памяти
type AppointmentRepository struct {
	s *Store
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.onRollback(ctx, restoreEntry(r.s.appointments, a.ID))

	if a.CreatedAt.IsZero() {
		now := r.s.now()
		a.CreatedAt, a.UpdatedAt = now, now
	}
	r.s.appointments[a.ID] = *a
	return a, nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *AppointmentRepository) FindMany(_ context.Context, filter domain.AppointmentFilter, page domain.Pagination) ([]*domain.Appointment, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if !matchAppointment(a, filter) {
			continue
		}
		a := a
		matched = append(matched, &a)
	}
	sortAppointments(matched)

	return paginate(matched, page), len(matched), nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[a.ID]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.s.onRollback(ctx, restoreEntry(r.s.appointments, a.ID))
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *AppointmentRepository) CountByDate(_ context.Context, locationID *string, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, a := range r.s.appointments {
		if locationID != nil && (a.LocationID == nil || *a.LocationID != *locationID) {
			continue
		}
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *AppointmentRepository) ListActiveOverlapping(_ context.Context, locationID string, from, to time.Time) ([]*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.LocationID == nil || *a.LocationID != locationID || !a.IsActive() {
			continue
		}
		if domain.Overlaps(from, to, a.StartTime, a.EndTime) {
			a := a
			list = append(list, &a)
		}
	}
	sortAppointments(list)
	return list, nil
}

func (r *AppointmentRepository) ListExpiredPending(_ context.Context, before time.Time, limit int) ([]*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.Status == domain.StatusPending && a.EndTime.Before(before) {
			a := a
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EndTime.Before(list[j].EndTime) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// LockLocation ничего не делает: транзакции хранилища и так выполняются по одной
func (r *AppointmentRepository) LockLocation(context.Context, string) error {
	return nil
}

func matchAppointment(a domain.Appointment, f domain.AppointmentFilter) bool {
	if f.ClientID != nil && a.ClientID != *f.ClientID {
		return false
	}
	if f.LocationID != nil && (a.LocationID == nil || *a.LocationID != *f.LocationID) {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.StartDate != nil && a.StartTime.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !a.StartTime.Before(*f.EndDate) {
		return false
	}
	return true
}

func sortAppointments(list []*domain.Appointment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StartTime.Equal(list[j].StartTime) {
			return list[i].StartTime.Before(list[j].StartTime)
		}
		return list[i].ID < list[j].ID
	})
}

func paginate[T any](list []T, page domain.Pagination) []T {
	from := page.Offset()
	if from >= len(list) {
		return []T{}
	}
	to := from + page.Limit
	if to > len(list) {
		to = len(list)
	}
	return list[from:to]
}

// BlockedSlotRepository блокировки в памяти
type BlockedSlotRepository struct {
	s *Store
}

func (r *BlockedSlotRepository) Create(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.onRollback(ctx, restoreEntry(r.s.blocks, b.ID))

	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.s.now()
	}
	r.s.blocks[b.ID] = *b
	return b, nil
}

func (r *BlockedSlotRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blocks[id]; !ok {
		return blockedSlotRepo.ErrBlockedSlotNotFound
	}
	r.s.onRollback(ctx, restoreEntry(r.s.blocks, id))
	delete(r.s.blocks, id)
	return nil
}

func (r *BlockedSlotRepository) FindMany(_ context.Context, filter domain.BlockedSlotFilter, page domain.Pagination) ([]*domain.BlockedSlot, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*domain.BlockedSlot, 0)
	for _, b := range r.s.blocks {
		if filter.LocationID != nil && b.LocationID != *filter.LocationID {
			continue
		}
		if filter.TankID != nil && (b.TankID == nil || *b.TankID != *filter.TankID) {
			continue
		}
		if filter.StartDate != nil && !b.EndTime.After(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !b.StartTime.Before(*filter.EndDate) {
			continue
		}
		b := b
		matched = append(matched, &b)
	}
	sortBlocks(matched)

	return paginate(matched, page), len(matched), nil
}

func (r *BlockedSlotRepository) ListForWindow(_ context.Context, locationID string, from, to time.Time) ([]*domain.BlockedSlot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := make([]*domain.BlockedSlot, 0)
	for _, b := range r.s.blocks {
		if b.LocationID != locationID || !b.StartTime.Before(to) {
			continue
		}
		if b.Recurring || b.EndTime.After(from) {
			b := b
			list = append(list, &b)
		}
	}
	sortBlocks(list)
	return list, nil
}

func sortBlocks(list []*domain.BlockedSlot) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StartTime.Equal(list[j].StartTime) {
			return list[i].StartTime.Before(list[j].StartTime)
		}
		return list[i].ID < list[j].ID
	})
}

// OperatingHoursRepository часы работы в памяти
type OperatingHoursRepository struct {
	s *Store
}

func (r *OperatingHoursRepository) Get(_ context.Context, locationID string, dayOfWeek int) (*domain.OperatingHours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h, ok := r.s.hours[hoursKey{locationID: locationID, dayOfWeek: dayOfWeek}]
	if !ok {
		return nil, operatingHoursRepo.ErrOperatingHoursNotFound
	}
	return &h, nil
}

func (r *OperatingHoursRepository) ListByLocation(_ context.Context, locationID string) ([]*domain.OperatingHours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := make([]*domain.OperatingHours, 0, 7)
	for day := 0; day < 7; day++ {
		if h, ok := r.s.hours[hoursKey{locationID: locationID, dayOfWeek: day}]; ok {
			list = append(list, &h)
		}
	}
	return list, nil
}

func (r *OperatingHoursRepository) Upsert(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := hoursKey{locationID: h.LocationID, dayOfWeek: h.DayOfWeek}
	r.s.onRollback(ctx, restoreEntry(r.s.hours, key))

	h.UpdatedAt = r.s.now()
	r.s.hours[key] = *h
	return h, nil
}

// SchedulingConfigRepository настройки расписания в памяти
type SchedulingConfigRepository struct {
	s *Store
}

func (r *SchedulingConfigRepository) Get(_ context.Context, locationID string) (*domain.LocationSchedulingConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.configs[locationID]
	if !ok {
		return nil, schedulingConfigRepo.ErrConfigNotFound
	}
	return &c, nil
}

func (r *SchedulingConfigRepository) Upsert(ctx context.Context, c *domain.LocationSchedulingConfig) (*domain.LocationSchedulingConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.onRollback(ctx, restoreEntry(r.s.configs, c.LocationID))

	now := r.s.now()
	if existing, ok := r.s.configs[c.LocationID]; ok {
		c.CreatedAt = existing.CreatedAt
	} else {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.s.configs[c.LocationID] = *c
	return c, nil
}

// TankRepository инвентарь камер в памяти
type TankRepository struct {
	s *Store
}

// Put добавляет или заменяет камеру (в PostgreSQL-варианте этим занимается внешний инвентарь)
func (r *TankRepository) Put(t domain.Tank) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tanks[t.ID] = t
}

func (r *TankRepository) CountBookable(_ context.Context, locationID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, t := range r.s.tanks {
		if t.LocationID == locationID && t.IsBookable() {
			count++
		}
	}
	return count, nil
}

// OutboxRepository outbox в памяти
type OutboxRepository struct {
	s *Store
}

func (r *OutboxRepository) Insert(ctx context.Context, e *domain.OutboxEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.outbox = append(r.s.outbox, *e)

	id := e.ID
	r.s.onRollback(ctx, func() {
		for i := range r.s.outbox {
			if r.s.outbox[i].ID == id {
				r.s.outbox = append(r.s.outbox[:i], r.s.outbox[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *OutboxRepository) FetchUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := make([]*domain.OutboxEvent, 0)
	for _, e := range r.s.outbox {
		if e.PublishedAt != nil {
			continue
		}
		e := e
		events = append(events, &e)
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	prev := make(map[string]*time.Time, len(ids))
	for i := range r.s.outbox {
		if _, ok := set[r.s.outbox[i].ID]; ok {
			prev[r.s.outbox[i].ID] = r.s.outbox[i].PublishedAt
			published := at
			r.s.outbox[i].PublishedAt = &published
		}
	}

	r.s.onRollback(ctx, func() {
		for i := range r.s.outbox {
			if p, ok := prev[r.s.outbox[i].ID]; ok {
				r.s.outbox[i].PublishedAt = p
			}
		}
	})
	return nil
}
