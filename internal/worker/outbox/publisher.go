package outbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultBatchSize    = 50
)

// Config настройки публикатора
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// Publisher периодически забирает неопубликованные события из outbox и отправляет их в Kafka
// Топик сообщения = тип события, ключ = ID записи (события одной записи попадают в одну партицию)
type Publisher struct {
	outboxRepo OutboxRepository
	txManager  TransactionManager
	writer     MessageWriter
	metrics    Metrics
	cfg        Config
	now        func() time.Time
	logger     Logger
}

// NewWriter создает Kafka writer с хешированием по ключу сообщения
func NewWriter(brokers string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(SplitBrokers(brokers)...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewPublisher создает публикатор outbox-событий
// m может быть nil
func NewPublisher(
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	writer MessageWriter,
	m Metrics,
	cfg Config,
	logger Logger,
) *Publisher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Publisher{
		outboxRepo: outboxRepo,
		txManager:  txManager,
		writer:     writer,
		metrics:    m,
		cfg:        cfg,
		now:        time.Now,
		logger:     logger,
	}
}

// Run публикует события до отмены контекста
func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("Run: outbox publisher started (interval=%s, batch=%d)", p.cfg.PollInterval, p.cfg.BatchSize)
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("Run: failed to close kafka writer: %v", err)
		}
	}()

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Run: outbox publisher stopped")
			return
		case <-ticker.C:
			n, err := p.PublishBatch(ctx)
			if err != nil {
				p.logger.Error("Run: outbox publish failed: %v", err)
				continue
			}
			if n > 0 {
				p.logger.Info("Run: published %d outbox events", n)
			}
		}
	}
}

// PublishBatch отправляет одну пачку событий и помечает их опубликованными
// При ошибке отправки пачка остается неопубликованной и будет отправлена повторно (at-least-once)
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	published := 0

	err := p.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := p.outboxRepo.FetchUnpublished(txCtx, p.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("fetch unpublished: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(events))
		ids := make([]string, 0, len(events))
		for _, e := range events {
			msgs = append(msgs, kafka.Message{
				Topic: string(e.EventType),
				Key:   []byte(e.AggregateID),
				Value: e.Payload,
				Headers: injectTraceHeaders(ctx, []kafka.Header{
					{Key: "event_id", Value: []byte(e.ID)},
					{Key: "event_type", Value: []byte(e.EventType)},
				}),
				Time: e.CreatedAt,
			})
			ids = append(ids, e.ID)
		}

		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			for _, e := range events {
				p.record(string(e.EventType), err)
			}
			return fmt.Errorf("write messages: %w", err)
		}
		for _, e := range events {
			p.record(string(e.EventType), nil)
		}

		if err := p.outboxRepo.MarkPublished(txCtx, ids, p.now()); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}
		published = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}

func (p *Publisher) record(eventType string, err error) {
	if p.metrics != nil {
		p.metrics.RecordOutboxPublished(eventType, err)
	}
}

// injectTraceHeaders добавляет W3C trace context в заголовки сообщения
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, key := range carrier.Keys() {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(carrier.Get(key))})
	}
	return headers
}
