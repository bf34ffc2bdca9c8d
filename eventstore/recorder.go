package eventstore

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-token/token"
)

// Recorder adapts a Store to the facade's Emitter interface, appending
// every change notification to one stream. Emission carries no error
// channel, so append failures are latched and reported by Err.
type Recorder struct {
	store    Store
	streamID string
	version  int
	err      error
}

// NewRecorder creates a recorder for the given stream, positioned after
// the stream's current tail.
func NewRecorder(ctx context.Context, store Store, streamID string) (*Recorder, error) {
	version, err := store.StreamVersion(ctx, streamID)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, streamID: streamID, version: version}, nil
}

// Emit implements token.Emitter.
func (r *Recorder) Emit(e token.Event) {
	if r.err != nil {
		return
	}
	stored, err := NewEvent(r.streamID, string(e.Kind), e)
	if err != nil {
		r.err = err
		return
	}
	stored.ID = e.ID // keep the facade-assigned event identity
	version, err := r.store.Append(context.Background(), r.streamID, r.version, []*Event{stored})
	if err != nil {
		r.err = err
		return
	}
	r.version = version
}

// Err returns the first append failure, if any.
func (r *Recorder) Err() error { return r.err }

// Replay rebuilds a token instance from a recorded stream. The returned
// token has no emitter installed; attach a Recorder to continue the
// stream.
func Replay(ctx context.Context, store Store, streamID string, cfg token.Config) (*token.Token, error) {
	events, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return nil, err
	}

	t, err := token.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, stored := range events {
		var e token.Event
		if err := stored.Decode(&e); err != nil {
			return nil, fmt.Errorf("eventstore: decode event %s: %w", stored.ID, err)
		}
		if err := t.Apply(e); err != nil {
			return nil, fmt.Errorf("eventstore: replay event %s (version %d): %w", stored.ID, stored.Version, err)
		}
	}
	return t, nil
}
