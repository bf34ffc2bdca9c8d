// Package eventstore persists token change notifications as append-only
// event streams, one stream per contract instance. It is the storage
// collaborator the host runtime provides: state survives across calls by
// replaying a stream into a fresh token instance.
package eventstore

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common store errors.
var (
	ErrConcurrencyConflict = errors.New("eventstore: expected version does not match stream")
	ErrStreamNotFound      = errors.New("eventstore: stream not found")
)

// Event is one persisted record in a stream. Data holds the JSON-encoded
// payload; Version is the zero-based position within the stream.
type Event struct {
	ID        string    `json:"id"`
	StreamID  string    `json:"stream_id"`
	Type      string    `json:"type"`
	Version   int       `json:"version"`
	Data      []byte    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an event with a fresh ID and JSON-encoded payload.
// Version is assigned on append.
func NewEvent(streamID, eventType string, data any) (*Event, error) {
	var payload []byte
	if data != nil {
		var err error
		payload, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}
	return &Event{
		ID:        uuid.NewString(),
		StreamID:  streamID,
		Type:      eventType,
		Data:      payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
