package domain

import "time"

// ImageRecord is a generated image: the write-side fact and the read-model
// row. Rows are immutable after construction; reprocessing the same event
// replaces the row keyed by ID.
type ImageRecord struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Base64Data   string    `gorm:"type:text;not null" json:"base64_data"`
	PlatformUsed string    `gorm:"type:text;not null" json:"platform_used"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for ImageRecord.
func (ImageRecord) TableName() string {
	return "images"
}

// NewImageRecord builds a record from validated value objects. Construction
// through value objects is the only path, so a record's fields always honor
// the domain invariants.
func NewImageRecord(id string, description ImageDescription, data Base64Data, platform Platform, createdAt time.Time) *ImageRecord {
	return &ImageRecord{
		ID:           id,
		Description:  description.String(),
		Base64Data:   data.String(),
		PlatformUsed: platform.String(),
		CreatedAt:    createdAt,
	}
}

// Event returns the domain event describing this record's creation.
func (r *ImageRecord) Event() *ImageCreatedEvent {
	return &ImageCreatedEvent{
		ID:           r.ID,
		Description:  r.Description,
		Base64Data:   r.Base64Data,
		PlatformUsed: r.PlatformUsed,
		Timestamp:    r.CreatedAt,
	}
}
