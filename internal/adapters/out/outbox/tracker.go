// Package outbox collects the aggregates a unit of work touched and hands
// their domain events to a publisher once the transaction is durable.
package outbox

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/core/ports"
	"grameego/internal/pkg/logger"

	"go.uber.org/zap"
)

type eventSource interface {
	PullEvents() []delivery.Event
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// Tracker is not safe for concurrent use; each unit of work owns one.
type Tracker struct {
	tracked []trackedAggregate
}

func NewTracker() *Tracker {
	return &Tracker{tracked: make([]trackedAggregate, 0)}
}

// TrackAggregate registers an aggregate written during the transaction.
func (t *Tracker) TrackAggregate(id kernel.UUID, aggregate any) {
	t.tracked = append(t.tracked, trackedAggregate{ID: id, Aggregate: aggregate})
}

// Len is the number of tracked entries.
func (t *Tracker) Len() int {
	return len(t.tracked)
}

// Reset forgets everything tracked so far.
func (t *Tracker) Reset() {
	t.tracked = t.tracked[:0]
}

// Drain pulls the pending events of every tracked aggregate, in tracking
// order, and resets the tracker.
func (t *Tracker) Drain() []delivery.Event {
	var events []delivery.Event
	for _, tracked := range t.tracked {
		if src, ok := tracked.Aggregate.(eventSource); ok {
			events = append(events, src.PullEvents()...)
		}
	}
	t.Reset()
	return events
}

// Flush drains the tracker into publisher. The change is already committed,
// so a publish failure is logged and swallowed.
func (t *Tracker) Flush(ctx context.Context, publisher ports.EventPublisher) {
	events := t.Drain()
	if len(events) == 0 || publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, events...); err != nil {
		logger.FromCtx(ctx).Error("failed to publish delivery events",
			zap.Int("events", len(events)),
			zap.String("first_delivery_id", events[0].DeliveryID.String()),
			zap.Error(err),
		)
	}
}
