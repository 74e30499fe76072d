package logger

// Fields is a structured log field map.
type Fields map[string]interface{}

// Standard field names used across the service.
const (
	FieldRequestID  = "request_id"
	FieldComponent  = "component"
	FieldEventType  = "event_type"
	FieldEventID    = "event_id"
	FieldImageID    = "image_id"
	FieldPlatform   = "platform"
	FieldStatus     = "status"
	FieldDurationMs = "duration_ms"
	FieldSize       = "size"
)
