package eventstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pflow-xyz/go-token/eventstore"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() eventstore.Store {
		return eventstore.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() eventstore.Store {
		store, err := eventstore.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() eventstore.Store) {
	t.Run("AppendAndRead", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstore.NewEvent("token-1", "Transfer", map[string]string{"from": "alice"})
		event2, _ := eventstore.NewEvent("token-1", "Approval", map[string]string{"owner": "alice"})

		version, err := store.Append(ctx, "token-1", -1, []*eventstore.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		version, err = store.Append(ctx, "token-1", 0, []*eventstore.Event{event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		events, err := store.Read(ctx, "token-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Type != "Transfer" {
			t.Errorf("expected type Transfer, got %s", events[0].Type)
		}
		if events[1].Type != "Approval" {
			t.Errorf("expected type Approval, got %s", events[1].Type)
		}

		var payload map[string]string
		if err := events[0].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["from"] != "alice" {
			t.Errorf("payload = %v", payload)
		}
	})

	t.Run("ConcurrencyConflict", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstore.NewEvent("token-1", "Transfer", nil)
		event2, _ := eventstore.NewEvent("token-1", "Transfer", nil)

		if _, err := store.Append(ctx, "token-1", -1, []*eventstore.Event{event1}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		_, err := store.Append(ctx, "token-1", 5, []*eventstore.Event{event2})
		if !errors.Is(err, eventstore.ErrConcurrencyConflict) {
			t.Errorf("expected concurrency conflict, got: %v", err)
		}

		if _, err := store.Append(ctx, "token-1", 0, []*eventstore.Event{event2}); err != nil {
			t.Errorf("append with correct version failed: %v", err)
		}
	})

	t.Run("StreamVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		version, err := store.StreamVersion(ctx, "token-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != -1 {
			t.Errorf("expected version -1 for non-existent stream, got %d", version)
		}

		event, _ := eventstore.NewEvent("token-1", "Transfer", nil)
		if _, err := store.Append(ctx, "token-1", -1, []*eventstore.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		version, err = store.StreamVersion(ctx, "token-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}
	})

	t.Run("ReadFromVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			event, _ := eventstore.NewEvent("token-1", "Transfer", i)
			if _, err := store.Append(ctx, "token-1", i-1, []*eventstore.Event{event}); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		events, err := store.Read(ctx, "token-1", 1)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Version != 1 {
			t.Errorf("expected first event version 1, got %d", events[0].Version)
		}
	})

	t.Run("ReadAllWithFilter", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstore.NewEvent("token-1", "Transfer", nil)
		event2, _ := eventstore.NewEvent("token-1", "Approval", nil)
		event3, _ := eventstore.NewEvent("token-2", "Transfer", nil)

		store.Append(ctx, "token-1", -1, []*eventstore.Event{event1, event2})
		store.Append(ctx, "token-2", -1, []*eventstore.Event{event3})

		events, err := store.ReadAll(ctx, eventstore.EventFilter{Types: []string{"Transfer"}})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 Transfer events, got %d", len(events))
		}

		events, err = store.ReadAll(ctx, eventstore.EventFilter{StreamID: "token-1"})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 events in token-1, got %d", len(events))
		}
	})

	t.Run("DeleteStream", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event, _ := eventstore.NewEvent("token-1", "Transfer", nil)
		if _, err := store.Append(ctx, "token-1", -1, []*eventstore.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		if err := store.DeleteStream(ctx, "token-1"); err != nil {
			t.Fatalf("delete stream failed: %v", err)
		}

		version, _ := store.StreamVersion(ctx, "token-1")
		if version != -1 {
			t.Errorf("expected version -1 after delete, got %d", version)
		}
	})
}
