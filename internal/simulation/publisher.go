package simulation

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"mobiq/internal/platform/kafka/producer"
)

// TopicAudit is the kafka topic audit entries fan out to for downstream
// consumers (compliance export, notifications).
const TopicAudit = "mobiq.simulation.audit"

// EventEmitter publishes audit entries beyond the local store.
type EventEmitter interface {
	ProduceAsync(msg *producer.Message) error
}

// Publisher captures audit entries. It is append-only and uses the storage
// layer for persistence so tests can swap sinks easily. With an async buffer,
// entries are queued and persisted in a background goroutine.
type Publisher struct {
	store   AuditStore
	emitter EventEmitter
	events  chan AuditEntry
	wg      sync.WaitGroup
	logger  *slog.Logger
	async   bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan AuditEntry, size)
			p.async = true
		}
	}
}

// WithEmitter adds kafka fan-out alongside store persistence.
func WithEmitter(emitter EventEmitter) PublisherOption {
	return func(p *Publisher) {
		p.emitter = emitter
	}
}

// WithPublisherLogger sets a logger for async error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store AuditStore, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

// Emit records an audit entry. In async mode a full buffer drops the entry
// with a logged error rather than blocking the write path.
func (p *Publisher) Emit(ctx context.Context, entry AuditEntry) error {
	if p.async {
		select {
		case p.events <- entry:
			return nil
		default:
			p.logger.ErrorContext(ctx, "audit buffer full, dropping entry",
				"simulation_id", entry.SimulationID.String(),
				"action", string(entry.Action),
			)
			return nil
		}
	}
	return p.persist(ctx, entry)
}

// processEvents runs in a goroutine and persists entries from the channel.
func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for entry := range p.events {
		if err := p.persist(context.Background(), entry); err != nil {
			p.logger.Error("failed to persist audit entry",
				"error", err,
				"simulation_id", entry.SimulationID.String(),
			)
		}
	}
}

func (p *Publisher) persist(ctx context.Context, entry AuditEntry) error {
	if err := p.store.Append(ctx, &entry); err != nil {
		return err
	}
	if p.emitter != nil {
		payload, err := json.Marshal(entry)
		if err == nil {
			_ = p.emitter.ProduceAsync(&producer.Message{
				Topic: TopicAudit,
				Key:   []byte(entry.TenantID.String()),
				Value: payload,
			})
		}
	}
	return nil
}

// Close drains the async buffer and waits for the worker to finish.
func (p *Publisher) Close() {
	if p.async {
		close(p.events)
		p.wg.Wait()
	}
}
