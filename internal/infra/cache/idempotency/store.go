package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:appointment:"

const (
	// DefaultTTL время жизни ключа идемпотентности по умолчанию
	DefaultTTL = 24 * time.Hour

	// DefaultPendingTTL время жизни резерва, если процесс упал до Complete/Release
	DefaultPendingTTL = time.Minute
)

// Удаляет ключ, только если в нем все еще лежит наш резерв
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Record состояние запроса с данным ключом
// Pending = true, пока запрос с этим ключом выполняется
type Record struct {
	AppointmentID string    `json:"appointmentId,omitempty"`
	Fingerprint   string    `json:"fingerprint"`
	Pending       bool      `json:"pending,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Store хранит соответствие Idempotency-Key -> созданная запись в Redis
type Store struct {
	redis      *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewStore создает хранилище ключей идемпотентности
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	pendingTTL := DefaultPendingTTL
	if ttl < pendingTTL {
		pendingTTL = ttl
	}
	return &Store{redis: client, ttl: ttl, pendingTTL: pendingTTL}
}

// Get возвращает сохраненное состояние по ключу
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	data, err := s.redis.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Get - redis get: %w", ErrStore, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}
	return &record, nil
}

// Reserve атомарно занимает ключ до выполнения запроса
// Возвращает false, если ключ уже занят (запрос выполняется или выполнен)
func (s *Store) Reserve(ctx context.Context, key, fingerprint string) (bool, error) {
	data, err := pendingValue(fingerprint)
	if err != nil {
		return false, err
	}

	reserved, err := s.redis.SetNX(ctx, keyPrefix+key, data, s.pendingTTL).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - redis setnx: %w", ErrStore, err)
	}
	return reserved, nil
}

// Complete заменяет резерв итоговым результатом
func (s *Store) Complete(ctx context.Context, key string, record Record) error {
	record.Pending = false
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: Complete - marshal: %v", ErrDecode, err)
	}

	if err := s.redis.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Complete - redis set: %w", ErrStore, err)
	}
	return nil
}

// Release снимает резерв после неудачного запроса, чтобы клиент мог повторить его
// Чужой резерв и завершенный результат не трогаются
func (s *Store) Release(ctx context.Context, key, fingerprint string) error {
	data, err := pendingValue(fingerprint)
	if err != nil {
		return err
	}

	if err := releaseScript.Run(ctx, s.redis, []string{keyPrefix + key}, data).Err(); err != nil {
		return fmt.Errorf("%w: Release - redis eval: %w", ErrStore, err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (s *Store) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %w", ErrStore, err)
	}
	return nil
}

func pendingValue(fingerprint string) (string, error) {
	data, err := json.Marshal(Record{Fingerprint: fingerprint, Pending: true})
	if err != nil {
		return "", fmt.Errorf("%w: marshal pending record: %v", ErrDecode, err)
	}
	return string(data), nil
}
