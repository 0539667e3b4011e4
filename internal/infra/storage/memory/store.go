package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

type hoursKey struct {
	locationID string
	dayOfWeek  int
}

// Store хранилище в памяти с теми же контрактами, что и PostgreSQL-репозитории
// Используется в тестах и при storage.driver = "memory"
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	appointments map[string]domain.Appointment
	blocks       map[string]domain.BlockedSlot
	hours        map[hoursKey]domain.OperatingHours
	configs      map[string]domain.LocationSchedulingConfig
	tanks        map[string]domain.Tank
	outbox       []domain.OutboxEvent

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		appointments: make(map[string]domain.Appointment),
		blocks:       make(map[string]domain.BlockedSlot),
		hours:        make(map[hoursKey]domain.OperatingHours),
		configs:      make(map[string]domain.LocationSchedulingConfig),
		tanks:        make(map[string]domain.Tank),
		now:          time.Now,
	}
}

// Appointments репозиторий записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

// BlockedSlots репозиторий блокировок
func (s *Store) BlockedSlots() *BlockedSlotRepository {
	return &BlockedSlotRepository{s: s}
}

// OperatingHours репозиторий часов работы
func (s *Store) OperatingHours() *OperatingHoursRepository {
	return &OperatingHoursRepository{s: s}
}

// SchedulingConfigs репозиторий настроек расписания
func (s *Store) SchedulingConfigs() *SchedulingConfigRepository {
	return &SchedulingConfigRepository{s: s}
}

// Tanks инвентарь камер
func (s *Store) Tanks() *TankRepository {
	return &TankRepository{s: s}
}

// Outbox репозиторий событий
func (s *Store) Outbox() *OutboxRepository {
	return &OutboxRepository{s: s}
}

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

// restoreEntry действие отката для одного ключа map: вернуть прежнее значение или удалить
func restoreEntry[K comparable, V any](m map[K]V, k K) func() {
	prev, existed := m[k]
	return func() {
		if existed {
			m[k] = prev
		} else {
			delete(m, k)
		}
	}
}

// onRollback запоминает действие отката текущей транзакции
// Вызывается под s.mu; вне транзакции запись сразу окончательная
func (s *Store) onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.undo = append(tx.undo, undo)
	}
}

type txKey struct{}

// txState журнал отката транзакции
type txState struct {
	undo []func()
}

func (s *Store) rollback(tx *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
}

// TxManager выполняет транзакции строго по одной
// При ошибке fn откатываются только изменения, сделанные внутри fn;
// записи вне транзакции, сделанные в это время, сохраняются
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &txState{}
	err := fn(context.WithValue(ctx, txKey{}, tx))
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		m.s.rollback(tx)
		return err
	}
	return nil
}
