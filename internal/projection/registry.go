// Package projection tails the event log and maintains the read models:
// relational rows and cache entries. Delivery is at-least-once, so every
// projector applies events as full-row overwrites.
package projection

import (
	"encoding/json"
	"fmt"

	"github.com/timmy/imagen/internal/domain"
)

// decodeFunc turns a raw payload into one concrete domain event.
type decodeFunc func(data []byte) (domain.Event, error)

// registry maps event type names to decoders. The set is fixed at compile
// time; adding an event means adding an entry here and a case in the
// dispatcher's routing switch.
var registry = map[string]decodeFunc{
	domain.EventTypeImageCreated: func(data []byte) (domain.Event, error) {
		var ev domain.ImageCreatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", domain.EventTypeImageCreated, err)
		}
		return &ev, nil
	},
	domain.EventTypeImageClassified: func(data []byte) (domain.Event, error) {
		var ev domain.ImageClassifiedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", domain.EventTypeImageClassified, err)
		}
		return &ev, nil
	},
}

// Decode resolves a type name against the registry and decodes the payload.
// Parameters:
//   - typeName: event type name as recorded in the log.
//   - data: raw JSON payload.
// Returns:
//   - domain.Event: decoded event when the type is known and valid.
//   - bool: false when the type name is not registered.
//   - error: non-nil when the payload does not decode.
func Decode(typeName string, data []byte) (domain.Event, bool, error) {
	decode, ok := registry[typeName]
	if !ok {
		return nil, false, nil
	}
	ev, err := decode(data)
	if err != nil {
		return nil, true, err
	}
	return ev, true, nil
}
