package delivery

import (
	"time"

	"grameego/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventCreated             EventType = "DeliveryCreated"
	EventAccepted            EventType = "DeliveryAccepted"
	EventStatusAdvanced      EventType = "DeliveryStatusAdvanced"
	EventUnassigned          EventType = "DeliveryUnassigned"
	EventCancelled           EventType = "DeliveryCancelled"
	EventConfirmationChanged EventType = "ShopConfirmationChanged"
)

// Event is a fact about a request, recorded by the aggregate when a mutation
// succeeds.
type Event struct {
	Type         EventType
	DeliveryID   kernel.UUID
	ActorID      kernel.UUID
	Status       Status
	Confirmation ConfirmationStatus
	DriverID     *kernel.UUID
	ShopID       string
	OccurredAt   time.Time
}
