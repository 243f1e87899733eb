package models

import "time"

// FieldType enumerates the supported question types.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRating   FieldType = "rating"
	// FieldTypeFile is accepted by the builder but has no submission path.
	FieldTypeFile FieldType = "file"
)

// Valid reports whether the field type is one of the supported types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeEmail, FieldTypeNumber,
		FieldTypeDate, FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox,
		FieldTypeRating, FieldTypeFile:
		return true
	}
	return false
}

// Categorical reports whether answers to this field type are charted as a
// frequency histogram rather than sampled as free text.
func (t FieldType) Categorical() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox, FieldTypeRating:
		return true
	}
	return false
}

type FormField struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	FormID      uint64    `gorm:"not null;uniqueIndex:idx_form_fields_form_order,priority:1" json:"form_id"`
	FieldType   FieldType `gorm:"type:varchar(20);not null" json:"field_type"`
	Label       string    `gorm:"type:varchar(500);not null" json:"label"`
	Placeholder string    `gorm:"type:varchar(255)" json:"placeholder"`
	IsRequired  bool      `gorm:"not null;default:false" json:"is_required"`
	// FieldOrder is unique within a form and determines display order.
	FieldOrder int `gorm:"not null;uniqueIndex:idx_form_fields_form_order,priority:2" json:"field_order"`
	// Options is a JSON-encoded string list for select/radio/checkbox fields.
	Options   string `gorm:"type:text" json:"options,omitempty"`
	RatingMax int    `json:"rating_max,omitempty"`
	// File constraints exist in the builder only; the submission flow does
	// not handle file uploads.
	FileAllowedTypes string    `gorm:"type:varchar(255)" json:"file_allowed_types,omitempty"`
	FileMaxSize      int       `json:"file_max_size,omitempty"`
	FileMaxCount     int       `json:"file_max_count,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
