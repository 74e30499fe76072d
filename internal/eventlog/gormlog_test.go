package eventlog

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormLog(t *testing.T) *GormLog {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	log, err := NewGormLog(db, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
	return log
}

func TestGormLogReadAllPreservesOrder(t *testing.T) {
	log := newGormLog(t)
	ctx := context.Background()

	for _, id := range []string{"e1", "e2", "e3"} {
		if err := log.Append(ctx, "image-events", EventData{EventID: id, Type: "T", Data: []byte(`{}`)}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	var got []string
	if err := log.ReadAll(ctx, func(_ context.Context, ev RecordedEvent) {
		got = append(got, ev.EventID)
	}); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	want := []string{"e1", "e2", "e3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestGormLogSubscribeTailsNewRows(t *testing.T) {
	log := newGormLog(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := log.Append(ctx, "s", EventData{EventID: "e1", Type: "T", Data: []byte(`{}`)}); err != nil {
		t.Fatalf("append failed: %v", err)
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

	waitFor("e1")
	if err := log.Append(ctx, "s", EventData{EventID: "e2", Type: "T", Data: []byte(`{}`)}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	waitFor("e2")

	cancel()
	wg.Wait()
}

func TestGormLogDuplicateEventIDRejected(t *testing.T) {
	log := newGormLog(t)
	ctx := context.Background()

	if err := log.Append(ctx, "s", EventData{EventID: "e1", Type: "T", Data: []byte(`{}`)}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := log.Append(ctx, "s", EventData{EventID: "e1", Type: "T", Data: []byte(`{}`)}); err == nil {
		t.Error("expected unique index violation for duplicate event ID")
	}
}
