package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	defaultTopicPrefix = "invest.events"
	maxDeliveries      = 3
	retryBackoff       = 500 * time.Millisecond
)

// wireMessage is the value of every record on an event topic.
type wireMessage struct {
	Type     string          `json:"type"`
	Emitted  time.Time       `json:"emitted_at"`
	Attempts int             `json:"attempts,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// KafkaEventBus writes each event type to its own topic, keyed by the user
// the event belongs to so one user's ledger events keep their order.
// Handlers run in the consumer group configured by GroupID. A message whose
// handlers keep failing after maxDeliveries is parked on a dead letter topic.
type KafkaEventBus struct {
	brokers []string
	prefix  string
	groupID string
	writer  *kafka.Writer
	dialer  *kafka.Dialer
	logger  *slog.Logger

	mu       sync.RWMutex
	handlers map[events.EventType][]eventbus.HandlerFunc
	readers  map[events.EventType]*kafka.Reader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithKafka connects to the brokers listed in cfg.Brokers. It fails fast
// when the first broker cannot be dialed.
func NewWithKafka(cfg *config.Kafka, logger *slog.Logger) (*KafkaEventBus, error) {
	if cfg == nil {
		return nil, errors.New("kafka event bus: config is required")
	}
	brokers := parseBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, errors.New("kafka event bus: brokers are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = "invest"
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &KafkaEventBus{
		brokers: brokers,
		prefix:  strings.TrimSpace(cfg.TopicPrefix),
		groupID: groupID,
		dialer:  &kafka.Dialer{Timeout: 5 * time.Second},
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
		},
		logger:   logger.With("bus", "kafka"),
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		readers:  make(map[events.EventType]*kafka.Reader),
		ctx:      ctx,
		cancel:   cancel,
	}
	if b.prefix == "" {
		b.prefix = defaultTopicPrefix
	}

	conn, err := b.dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("kafka event bus: connection failed: %w", err)
	}
	_ = conn.Close()

	b.logger.Info("Kafka event bus ready", "group_id", groupID, "brokers", brokers, "prefix", b.prefix)
	return b, nil
}

// Register adds a handler and starts the consumer of eventType on first use.
func (b *KafkaEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	if _, ok := b.readers[eventType]; ok {
		return
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.groupID,
		Topic:       b.topic(eventType),
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		Dialer:      b.dialer,
	})
	b.readers[eventType] = r
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(eventType, r)
	}()
}

// Emit publishes event. The call returns once the brokers acknowledged it.
func (b *KafkaEventBus) Emit(ctx context.Context, event events.Event) error {
	value, key, err := encode(event, time.Now().UTC(), 0)
	if err != nil {
		return err
	}
	err = b.writer.WriteMessages(ctx, kafka.Message{
		Topic: b.topic(events.EventType(event.Type())),
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka event bus: publish %s: %w", event.Type(), err)
	}
	return nil
}

// Close stops the consumers and flushes the writer.
func (b *KafkaEventBus) Close() error {
	b.cancel()
	b.mu.Lock()
	for _, r := range b.readers {
		_ = r.Close()
	}
	b.mu.Unlock()
	b.wg.Wait()
	return b.writer.Close()
}

func (b *KafkaEventBus) consume(eventType events.EventType, r *kafka.Reader) {
	log := b.logger.With("event_type", eventType)
	for {
		msg, err := r.FetchMessage(b.ctx)
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			log.Error("fetch failed", "error", err)
			time.Sleep(retryBackoff)
			continue
		}
		b.deliver(eventType, msg)
		if err := r.CommitMessages(b.ctx, msg); err != nil && b.ctx.Err() == nil {
			log.Error("commit failed", "error", err, "offset", msg.Offset)
		}
	}
}

// deliver runs the handlers of one record, retrying in place before the
// record is parked on the dead letter topic.
func (b *KafkaEventBus) deliver(eventType events.EventType, msg kafka.Message) {
	evt, wm, err := decode(msg.Value)
	if err != nil {
		b.logger.Error("dropping undecodable message", "error", err, "topic", msg.Topic, "offset", msg.Offset)
		return
	}
	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.mu.RUnlock()

	for attempt := wm.Attempts + 1; attempt <= maxDeliveries; attempt++ {
		if err = runHandlers(b.ctx, evt, handlers); err == nil {
			return
		}
		b.logger.Warn("event handler failed", "event_type", eventType, "attempt", attempt, "error", err)
		select {
		case <-b.ctx.Done():
			return
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}

	value, _, encErr := encode(evt, wm.Emitted, maxDeliveries)
	if encErr != nil {
		value = msg.Value
	}
	if err := b.writer.WriteMessages(b.ctx, kafka.Message{
		Topic: b.deadLetterTopic(eventType),
		Key:   msg.Key,
		Value: value,
	}); err != nil {
		b.logger.Error("dead letter publish failed", "event_type", eventType, "error", err)
		return
	}
	b.logger.Warn("message parked on dead letter topic", "event_type", eventType, "topic", b.deadLetterTopic(eventType))
}

// runHandlers calls every handler in registration order and joins their
// errors.
func runHandlers(ctx context.Context, evt events.Event, handlers []eventbus.HandlerFunc) error {
	var errs []error
	for _, h := range handlers {
		if err := h(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *KafkaEventBus) topic(eventType events.EventType) string {
	return topicName(b.prefix, eventType)
}

func (b *KafkaEventBus) deadLetterTopic(eventType events.EventType) string {
	return topicName(b.prefix+".dlq", eventType)
}

func encode(event events.Event, emitted time.Time, attempts int) (value, key []byte, err error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka event bus: marshal %s: %w", event.Type(), err)
	}
	value, err = json.Marshal(wireMessage{
		Type:     event.Type(),
		Emitted:  emitted,
		Attempts: attempts,
		Payload:  payload,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("kafka event bus: marshal envelope: %w", err)
	}
	return value, partitionKey(payload, event.Type()), nil
}

func decode(raw []byte) (events.Event, wireMessage, error) {
	var wm wireMessage
	if err := json.Unmarshal(raw, &wm); err != nil {
		return nil, wm, fmt.Errorf("unmarshal envelope: %w", err)
	}
	newEvent, ok := events.EventTypes[events.EventType(wm.Type)]
	if !ok {
		return nil, wm, fmt.Errorf("unknown event type %q", wm.Type)
	}
	evt := newEvent()
	if err := json.Unmarshal(wm.Payload, evt); err != nil {
		return nil, wm, fmt.Errorf("unmarshal %s payload: %w", wm.Type, err)
	}
	return evt, wm, nil
}

// partitionKey is the owning user's ID when the payload carries one.
func partitionKey(payload []byte, fallback string) []byte {
	var owner struct {
		UserID uuid.UUID
	}
	if err := json.Unmarshal(payload, &owner); err == nil && owner.UserID != uuid.Nil {
		return []byte(owner.UserID.String())
	}
	return []byte(fallback)
}

func parseBrokers(brokers string) []string {
	var out []string
	for _, p := range strings.Split(brokers, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func topicName(prefix string, eventType events.EventType) string {
	return prefix + "." + strings.ToLower(eventType.String())
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
