package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entities and actions carried by activity messages.
const (
	EntityCategory    = "category"
	EntityTransaction = "transaction"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

var ErrMalformedMessage = errors.New("malformed activity message")

// ActivityMessage describes one change a user made to their data.
// The event id makes redelivery idempotent on the consumer side.
type ActivityMessage struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	Action    string    `json:"action"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
}

func NewActivityMessage(userID, entity string, entityID int64, action, summary string) *ActivityMessage {
	return &ActivityMessage{
		EventID:   uuid.NewString(),
		UserID:    userID,
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Validate rejects messages the worker cannot store.
func (m *ActivityMessage) Validate() error {
	if m.EventID == "" || m.UserID == "" || m.EntityID <= 0 {
		return ErrMalformedMessage
	}
	switch m.Entity {
	case EntityCategory, EntityTransaction:
	default:
		return ErrMalformedMessage
	}
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
	default:
		return ErrMalformedMessage
	}
	return nil
}

// ActivityMessageFromJSON decodes and validates a message body.
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Join(ErrMalformedMessage, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
