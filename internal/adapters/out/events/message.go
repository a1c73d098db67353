// Package events publishes delivery lifecycle events. KafkaPublisher writes
// them to a topic keyed by delivery id so that every consumer sees the events
// of one request in order; LogPublisher only logs them.
package events

import (
	"encoding/json"
	"time"

	"grameego/internal/core/domain/model/delivery"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Message is the JSON payload of one event.
type Message struct {
	EventID                string    `json:"eventId"`
	Type                   string    `json:"type"`
	DeliveryID             string    `json:"deliveryId"`
	ActorID                string    `json:"actorId"`
	DeliveryStatus         string    `json:"deliveryStatus"`
	ShopConfirmationStatus string    `json:"shopConfirmationStatus"`
	AssignedDriver         *string   `json:"assignedDriver"`
	ShopID                 string    `json:"shopId,omitempty"`
	OccurredAt             time.Time `json:"occurredAt"`
}

func newMessage(e delivery.Event) Message {
	var driver *string
	if e.DriverID != nil {
		id := e.DriverID.String()
		driver = &id
	}

	return Message{
		EventID:                uuid.NewString(),
		Type:                   string(e.Type),
		DeliveryID:             e.DeliveryID.String(),
		ActorID:                e.ActorID.String(),
		DeliveryStatus:         e.Status.String(),
		ShopConfirmationStatus: e.Confirmation.String(),
		AssignedDriver:         driver,
		ShopID:                 e.ShopID,
		OccurredAt:             e.OccurredAt.UTC(),
	}
}

func encode(e delivery.Event, requestID string) (kafka.Message, error) {
	value, err := json.Marshal(newMessage(e))
	if err != nil {
		return kafka.Message{}, err
	}

	headers := []kafka.Header{{Key: "event-type", Value: []byte(e.Type)}}
	if requestID != "" {
		headers = append(headers, kafka.Header{Key: "request-id", Value: []byte(requestID)})
	}

	return kafka.Message{
		Key:     []byte(e.DeliveryID.String()),
		Value:   value,
		Headers: headers,
		Time:    e.OccurredAt,
	}, nil
}
