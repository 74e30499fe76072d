// Package eventlog abstracts the append-only event log: an ordered,
// subscribable sequence of named JSON payloads. The log is the system's
// durable source of truth; read models are derived from it and can be
// rebuilt by replaying from the start.
package eventlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// EventData is an event to append.
type EventData struct {
	EventID string
	Type    string
	Data    []byte
}

// RecordedEvent is a log entry delivered to a subscriber.
type RecordedEvent struct {
	EventID string
	Stream  string
	Type    string
	Data    []byte
}

// EventHandler processes one delivered entry. Handlers are invoked
// sequentially in log order within a subscription.
type EventHandler func(ctx context.Context, ev RecordedEvent)

// Log is the append-only event log contract.
type Log interface {
	// Append writes events to the stream. Each successful command appends
	// exactly one event; Append itself makes no retry.
	Append(ctx context.Context, stream string, events ...EventData) error
	// SubscribeAll tails the whole log from its earliest position, skipping
	// system events, and blocks until ctx is canceled (returns nil) or the
	// subscription drops (returns the drop cause).
	SubscribeAll(ctx context.Context, onEvent EventHandler) error
	// ReadAll delivers every event currently in the log and returns.
	ReadAll(ctx context.Context, onEvent EventHandler) error
	Close() error
}

// Config selects and configures a log driver.
type Config struct {
	Driver       string // esdb, gorm, memory
	DSN          string // esdb connection string
	PollInterval time.Duration
}

// New creates a Log for the configured driver. The gorm driver persists
// events in the given database handle.
// Parameters:
//   - cfg: event log configuration.
//   - db: database handle, required by the gorm driver.
// Returns:
//   - Log: initialized log client.
//   - error: non-nil on unknown driver or connection failure.
func New(cfg *Config, db *gorm.DB) (Log, error) {
	switch strings.ToLower(cfg.Driver) {
	case "esdb":
		return NewESDBLog(cfg.DSN)
	case "gorm", "sql":
		if db == nil {
			return nil, fmt.Errorf("gorm event log requires a database handle")
		}
		return NewGormLog(db, cfg.PollInterval)
	case "memory", "":
		return NewMemoryLog(), nil
	default:
		return nil, fmt.Errorf("unknown event log driver: %q", cfg.Driver)
	}
}

// systemEvent reports whether a type name is reserved for the log itself.
func systemEvent(typeName string) bool {
	return strings.HasPrefix(typeName, "$")
}
