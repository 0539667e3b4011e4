package outbox

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// OutboxRepository интерфейс репозитория outbox-событий
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MessageWriter интерфейс отправки сообщений в Kafka (реализуется *kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Metrics интерфейс метрик публикации
type Metrics interface {
	RecordOutboxPublished(eventType string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
