package domain

import "time"

// ClassifiedImageRecord is a downloaded-and-classified image: the
// write-side fact and the read-model row for classification.
type ClassifiedImageRecord struct {
	ID                    string    `gorm:"type:text;primaryKey" json:"id"`
	OriginalURL           string    `gorm:"type:text;not null" json:"original_url"`
	ClassifiedImageBase64 string    `gorm:"type:text;not null" json:"classified_image_base64"`
	ClassificationResult  string    `gorm:"type:text;not null" json:"classification_result"`
	ClassifiedAt          time.Time `json:"classified_at"`
}

// TableName returns the database table name for ClassifiedImageRecord.
func (ClassifiedImageRecord) TableName() string {
	return "classified_images"
}

// NewClassifiedImageRecord builds a record from validated value objects.
func NewClassifiedImageRecord(id string, originalURL ImageURL, data Base64Data, result ClassificationResult, classifiedAt time.Time) *ClassifiedImageRecord {
	return &ClassifiedImageRecord{
		ID:                    id,
		OriginalURL:           originalURL.String(),
		ClassifiedImageBase64: data.String(),
		ClassificationResult:  result.String(),
		ClassifiedAt:          classifiedAt,
	}
}

// Event returns the domain event describing this record's classification.
func (r *ClassifiedImageRecord) Event() *ImageClassifiedEvent {
	return &ImageClassifiedEvent{
		ID:                    r.ID,
		OriginalURL:           r.OriginalURL,
		ClassifiedImageBase64: r.ClassifiedImageBase64,
		ClassificationResult:  r.ClassificationResult,
		Timestamp:             r.ClassifiedAt,
	}
}
