package models

import "time"

// Response is one employee's answer to one form field. A submission writes
// one row per answered field; at most one submission exists per
// (form, employee) pair.
type Response struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	FormID     uint64 `gorm:"not null;uniqueIndex:idx_responses_form_field_emp,priority:1" json:"form_id"`
	FieldID    uint64 `gorm:"not null;uniqueIndex:idx_responses_form_field_emp,priority:2" json:"field_id"`
	EmployeeID uint64 `gorm:"not null;uniqueIndex:idx_responses_form_field_emp,priority:3" json:"employee_id"`
	// AdminID is the operator who entered the response on the employee's
	// behalf, when different from the respondent.
	AdminID uint64 `json:"admin_id"`
	// Value is the answer as stored: scalar string for most types, a
	// JSON-encoded array for checkbox fields, numeric string for rating.
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Field    FormField `gorm:"foreignKey:FieldID" json:"field,omitempty"`
	Employee Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
