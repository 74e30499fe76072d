package eventlog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/google/uuid"
)

// ESDBLog is the EventStoreDB-backed log driver.
type ESDBLog struct {
	client *esdb.Client
}

// NewESDBLog connects to EventStoreDB using a connection string such as
// "esdb://localhost:2113?tls=false".
func NewESDBLog(dsn string) (*ESDBLog, error) {
	settings, err := esdb.ParseConnectionString(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EventStoreDB connection string: %w", err)
	}
	client, err := esdb.NewClient(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create EventStoreDB client: %w", err)
	}
	return &ESDBLog{client: client}, nil
}

func (l *ESDBLog) Append(ctx context.Context, stream string, events ...EventData) error {
	data := make([]esdb.EventData, 0, len(events))
	for _, ev := range events {
		id, err := uuid.Parse(ev.EventID)
		if err != nil {
			id = uuid.New()
		}
		data = append(data, esdb.EventData{
			EventID:     id,
			EventType:   ev.Type,
			ContentType: esdb.ContentTypeJson,
			Data:        ev.Data,
		})
	}

	opts := esdb.AppendToStreamOptions{ExpectedRevision: esdb.Any{}}
	if _, err := l.client.AppendToStream(ctx, stream, opts, data...); err != nil {
		return fmt.Errorf("failed to append to stream %q: %w", stream, err)
	}
	return nil
}

func (l *ESDBLog) SubscribeAll(ctx context.Context, onEvent EventHandler) error {
	sub, err := l.client.SubscribeToAll(ctx, esdb.SubscribeToAllOptions{
		From:   esdb.Start{},
		Filter: esdb.ExcludeSystemEventsFilter(),
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to $all: %w", err)
	}
	defer sub.Close()

	for {
		delivery := sub.Recv()
		if delivery.SubscriptionDropped != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("subscription dropped: %w", delivery.SubscriptionDropped.Error)
		}
		if delivery.EventAppeared == nil || delivery.EventAppeared.Event == nil {
			continue
		}
		recorded := delivery.EventAppeared.Event
		if systemEvent(recorded.EventType) {
			continue
		}
		onEvent(ctx, RecordedEvent{
			EventID: recorded.EventID.String(),
			Stream:  recorded.StreamID,
			Type:    recorded.EventType,
			Data:    recorded.Data,
		})
	}
}

func (l *ESDBLog) ReadAll(ctx context.Context, onEvent EventHandler) error {
	stream, err := l.client.ReadAll(ctx, esdb.ReadAllOptions{From: esdb.Start{}}, ^uint64(0))
	if err != nil {
		return fmt.Errorf("failed to read $all: %w", err)
	}
	defer stream.Close()

	for {
		resolved, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed reading $all: %w", err)
		}
		if resolved.Event == nil || systemEvent(resolved.Event.EventType) {
			continue
		}
		onEvent(ctx, RecordedEvent{
			EventID: resolved.Event.EventID.String(),
			Stream:  resolved.Event.StreamID,
			Type:    resolved.Event.EventType,
			Data:    resolved.Event.Data,
		})
	}
}

func (l *ESDBLog) Close() error {
	return l.client.Close()
}
