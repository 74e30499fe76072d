package projection

import (
	"context"
	"sync"
	"time"

	"github.com/timmy/imagen/internal/domain"
	"github.com/timmy/imagen/internal/eventlog"
	"github.com/timmy/imagen/internal/logger"
)

const (
	initialRetryDelay = 1 * time.Second
	maxRetryDelay     = 30 * time.Second
)

// Dispatcher tails the event log and routes decoded events to the
// projectors. One dispatcher goroutine owns the subscription; projector
// failures are logged and the offending event skipped, so a single bad
// event never stalls the log. A dropped subscription is resumed with
// exponential backoff.
type Dispatcher struct {
	log        eventlog.Log
	images     *ImageProjector
	classified *ClassifiedImageProjector

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewDispatcher creates a Dispatcher.
// Parameters:
//   - log: event log to tail.
//   - images: projector for creation events.
//   - classified: projector for classification events.
// Returns:
//   - *Dispatcher: initialized dispatcher, not yet started.
func NewDispatcher(log eventlog.Log, images *ImageProjector, classified *ClassifiedImageProjector) *Dispatcher {
	return &Dispatcher{
		log:        log,
		images:     images,
		classified: classified,
		done:       make(chan struct{}),
	}
}

// Start launches the dispatcher goroutine. It subscribes from the start of
// the log, so read models catch up from any state on boot.
// Parameters:
//   - ctx: parent context; canceling it stops the dispatcher.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	go d.run(ctx)
}

// Stop cancels the subscription and waits for the goroutine to exit.
// Stopping a dispatcher that was never started returns immediately.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		if d.cancel == nil {
			return
		}
		d.cancel()
		<-d.done
	})
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	delay := initialRetryDelay
	for {
		started := time.Now()
		err := d.log.SubscribeAll(ctx, d.dispatch)
		if ctx.Err() != nil {
			logger.CtxInfo(ctx, "Projection dispatcher stopped")
			return
		}
		if err != nil {
			logger.CtxError(ctx, "Event log subscription dropped: %v", err)
		}

		// A subscription that survived a while earns a fresh backoff window.
		if time.Since(started) > maxRetryDelay {
			delay = initialRetryDelay
		}
		logger.CtxInfo(ctx, "Resubscribing to event log in %s", delay)
		select {
		case <-ctx.Done():
			logger.CtxInfo(ctx, "Projection dispatcher stopped")
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// dispatch decodes one recorded event and routes it. Unknown types and
// undecodable payloads are logged and skipped; projector errors are logged
// and the event dropped rather than blocking the subscription.
func (d *Dispatcher) dispatch(ctx context.Context, rec eventlog.RecordedEvent) {
	ev, known, err := Decode(rec.Type, rec.Data)
	if !known {
		logger.CtxWarn(ctx, "Skipping event %s with unknown type %q", rec.EventID, rec.Type)
		return
	}
	if err != nil {
		logger.CtxError(ctx, "Skipping undecodable event %s of type %s: %v", rec.EventID, rec.Type, err)
		return
	}

	switch e := ev.(type) {
	case *domain.ImageCreatedEvent:
		if err := d.images.Apply(ctx, e); err != nil {
			logger.CtxError(ctx, "Failed to project %s %s: %v", rec.Type, e.ID, err)
		}
	case *domain.ImageClassifiedEvent:
		if err := d.classified.Apply(ctx, e); err != nil {
			logger.CtxError(ctx, "Failed to project %s %s: %v", rec.Type, e.ID, err)
		}
	}
}

// Replay pushes every event currently in the log through the projectors
// once and returns. Used by the rebuild tool; the upsert discipline makes
// it safe to run against live read models.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - error: non-nil when reading the log fails.
func (d *Dispatcher) Replay(ctx context.Context) error {
	return d.log.ReadAll(ctx, d.dispatch)
}
