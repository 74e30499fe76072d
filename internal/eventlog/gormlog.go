package eventlog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// logEntry is a persisted log row. Ordering always uses the seq column,
// never timestamps, so replay is deterministic.
type logEntry struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	EventID   string `gorm:"type:text;uniqueIndex"`
	Stream    string `gorm:"type:text;index;not null"`
	Type      string `gorm:"type:text;not null"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
}

func (logEntry) TableName() string {
	return "event_log"
}

const defaultPollInterval = 200 * time.Millisecond

// GormLog is a relational log driver. Subscriptions tail the table by
// polling for rows past the last delivered sequence number.
type GormLog struct {
	db   *gorm.DB
	poll time.Duration
}

// NewGormLog creates a GormLog and migrates its table.
func NewGormLog(db *gorm.DB, pollInterval time.Duration) (*GormLog, error) {
	if err := db.AutoMigrate(&logEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate event log table: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &GormLog{db: db, poll: pollInterval}, nil
}

func (l *GormLog) Append(ctx context.Context, stream string, events ...EventData) error {
	rows := make([]logEntry, 0, len(events))
	for _, ev := range events {
		rows = append(rows, logEntry{
			EventID: ev.EventID,
			Stream:  stream,
			Type:    ev.Type,
			Data:    ev.Data,
		})
	}
	if err := l.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append to stream %q: %w", stream, err)
	}
	return nil
}

func (l *GormLog) SubscribeAll(ctx context.Context, onEvent EventHandler) error {
	var lastSeq int64
	for {
		delivered, err := l.deliverAfter(ctx, lastSeq, onEvent)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		lastSeq = delivered

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.poll):
		}
	}
}

func (l *GormLog) ReadAll(ctx context.Context, onEvent EventHandler) error {
	_, err := l.deliverAfter(ctx, 0, onEvent)
	return err
}

// deliverAfter sends every entry with seq > after in sequence order and
// returns the last delivered seq.
func (l *GormLog) deliverAfter(ctx context.Context, after int64, onEvent EventHandler) (int64, error) {
	var rows []logEntry
	if err := l.db.WithContext(ctx).
		Where("seq > ?", after).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return after, fmt.Errorf("failed to read event log: %w", err)
	}

	last := after
	for _, row := range rows {
		if ctx.Err() != nil {
			return last, nil
		}
		if !systemEvent(row.Type) {
			onEvent(ctx, RecordedEvent{
				EventID: row.EventID,
				Stream:  row.Stream,
				Type:    row.Type,
				Data:    row.Data,
			})
		}
		last = row.Seq
	}
	return last, nil
}

func (l *GormLog) Close() error { return nil }
