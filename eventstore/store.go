package eventstore

import "context"

// EventFilter narrows a ReadAll query. Zero values match everything.
type EventFilter struct {
	StreamID string
	Types    []string
}

func (f EventFilter) matches(e *Event) bool {
	if f.StreamID != "" && e.StreamID != f.StreamID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is an append-only event stream store with optimistic concurrency.
// expectedVersion is the version of the last event already in the stream,
// -1 for a stream that must not yet exist; Append returns the version of
// the last event written.
type Store interface {
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)
	ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error)
	StreamVersion(ctx context.Context, streamID string) (int, error)
	DeleteStream(ctx context.Context, streamID string) error
	Close() error
}
