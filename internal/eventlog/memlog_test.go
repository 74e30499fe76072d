package eventlog

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLogAppendAndReadAll(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	events := []EventData{
		{EventID: "e1", Type: "ImageCreatedEvent", Data: []byte(`{"id":"1"}`)},
		{EventID: "e2", Type: "ImageClassifiedEvent", Data: []byte(`{"id":"2"}`)},
	}
	if err := log.Append(ctx, "image-events", events...); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}

	var got []RecordedEvent
	if err := log.ReadAll(ctx, func(_ context.Context, ev RecordedEvent) {
		got = append(got, ev)
	}); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].EventID != "e1" || got[1].EventID != "e2" {
		t.Errorf("events out of order: %v", got)
	}
	if got[0].Stream != "image-events" {
		t.Errorf("expected stream image-events, got %q", got[0].Stream)
	}
}

func TestMemoryLogSkipsSystemEvents(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	if err := log.Append(ctx, "s",
		EventData{EventID: "e1", Type: "$metadata", Data: []byte(`{}`)},
		EventData{EventID: "e2", Type: "ImageCreatedEvent", Data: []byte(`{}`)},
	); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}

	var got []string
	if err := log.ReadAll(ctx, func(_ context.Context, ev RecordedEvent) {
		got = append(got, ev.EventID)
	}); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if len(got) != 1 || got[0] != "e2" {
		t.Errorf("expected only e2 delivered, got %v", got)
	}
}

func TestMemoryLogSubscribeDeliversLiveAppends(t *testing.T) {
	log := NewMemoryLog()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One event exists before the subscription starts.
	if err := log.Append(ctx, "s", EventData{EventID: "e1", Type: "T", Data: []byte(`{}`)}); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}

	delivered := make(chan string, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := log.SubscribeAll(ctx, func(_ context.Context, ev RecordedEvent) {
			delivered <- ev.EventID
		}); err != nil {
			t.Errorf("unexpected subscribe error: %v", err)
		}
	}()

	waitFor := func(want string) {
		t.Helper()
		select {
		case id := <-delivered:
			if id != want {
				t.Fatalf("expected %s, got %s", want, id)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	// Replay of the backlog, then a live append.
	waitFor("e1")
	if err := log.Append(ctx, "s", EventData{EventID: "e2", Type: "T", Data: []byte(`{}`)}); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}
	waitFor("e2")

	// Cancellation stops the subscription with a nil error.
	cancel()
	wg.Wait()
}
