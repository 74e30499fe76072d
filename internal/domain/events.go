package domain

import "time"

// Event type names as they appear on the wire. The name doubles as the
// log entry's type discriminator.
const (
	EventTypeImageCreated    = "ImageCreatedEvent"
	EventTypeImageClassified = "ImageClassifiedEvent"
)

// Event is the closed set of domain events. Routing code type-switches
// over the concrete pointers, so adding an event type is a compile-time
// visible change here and in every router.
type Event interface {
	EventType() string
	isEvent()
}

// ImageCreatedEvent records that an image was generated. It carries a
// full snapshot of the entity; projectors never need prior state.
type ImageCreatedEvent struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Base64Data   string    `json:"base64Data"`
	PlatformUsed string    `json:"platformUsed"`
	Timestamp    time.Time `json:"timestamp"`
}

func (*ImageCreatedEvent) EventType() string { return EventTypeImageCreated }
func (*ImageCreatedEvent) isEvent()          {}

// ImageClassifiedEvent records that an image at a URL was downloaded and
// classified.
type ImageClassifiedEvent struct {
	ID                    string    `json:"id"`
	OriginalURL           string    `json:"originalUrl"`
	ClassifiedImageBase64 string    `json:"classifiedImageBase64"`
	ClassificationResult  string    `json:"classificationResult"`
	Timestamp             time.Time `json:"timestamp"`
}

func (*ImageClassifiedEvent) EventType() string { return EventTypeImageClassified }
func (*ImageClassifiedEvent) isEvent()          {}
