package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implements ports.EventPublisher on a kafka topic.
type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher writes to topic on the comma separated brokers.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(splitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w}
}

// NewKafkaPublisherWithWriter injects the writer, e.g. a fake in tests.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish writes all events in one batch.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...delivery.Event) error {
	if len(events) == 0 {
		return nil
	}

	requestID := logger.RequestIDFrom(ctx)
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := encode(e, requestID)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.Type, err)
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d delivery events: %w", len(msgs), err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher implements ports.EventPublisher by logging each event. It is
// used when no brokers are configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("component", "events"))}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...delivery.Event) error {
	requestID := logger.RequestIDFrom(ctx)
	for _, e := range events {
		p.log.Info("delivery event",
			zap.String("type", string(e.Type)),
			zap.String("delivery_id", e.DeliveryID.String()),
			zap.String("actor_id", e.ActorID.String()),
			zap.Stringer("status", e.Status),
			zap.Stringer("confirmation", e.Confirmation),
			zap.String("request_id", requestID),
		)
	}
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

func splitBrokers(brokers string) []string {
	var list []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			list = append(list, b)
		}
	}
	return list
}
