package eventlog

import (
	"context"
	"sync"
)

// MemoryLog is an in-process log driver used in tests and local runs.
// Subscribers replay the whole log from the start and then block for
// new appends, matching the durable drivers' at-least-once delivery.
type MemoryLog struct {
	mu      sync.Mutex
	entries []RecordedEvent
	wake    chan struct{}
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{wake: make(chan struct{})}
}

func (l *MemoryLog) Append(ctx context.Context, stream string, events ...EventData) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ev := range events {
		l.entries = append(l.entries, RecordedEvent{
			EventID: ev.EventID,
			Stream:  stream,
			Type:    ev.Type,
			Data:    ev.Data,
		})
	}
	// Wake blocked subscribers.
	close(l.wake)
	l.wake = make(chan struct{})
	return nil
}

func (l *MemoryLog) SubscribeAll(ctx context.Context, onEvent EventHandler) error {
	next := 0
	for {
		l.mu.Lock()
		pending := l.entries[next:]
		wake := l.wake
		l.mu.Unlock()

		for _, ev := range pending {
			if ctx.Err() != nil {
				return nil
			}
			if !systemEvent(ev.Type) {
				onEvent(ctx, ev)
			}
			next++
		}

		select {
		case <-ctx.Done():
			return nil
		case <-wake:
		}
	}
}

func (l *MemoryLog) ReadAll(ctx context.Context, onEvent EventHandler) error {
	l.mu.Lock()
	snapshot := make([]RecordedEvent, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, ev := range snapshot {
		if ctx.Err() != nil {
			return nil
		}
		if !systemEvent(ev.Type) {
			onEvent(ctx, ev)
		}
	}
	return nil
}

// Entries returns a copy of everything appended so far.
func (l *MemoryLog) Entries() []RecordedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RecordedEvent, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *MemoryLog) Close() error { return nil }
