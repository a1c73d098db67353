package ports

import (
	"context"

	"grameego/internal/core/domain/model/delivery"
)

// EventPublisher delivers lifecycle events to the outside world. It is
// called after commit, so a failure can't undo the change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...delivery.Event) error
}
