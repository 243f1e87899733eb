package models

import "time"

// Remark is an HR remark recorded against a form decision or a tag approval
// batch. Form-level remarks have QuestionID zero.
type Remark struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	FormID     uint64    `gorm:"not null;index" json:"form_id"`
	QuestionID uint64    `gorm:"index" json:"question_id,omitempty"`
	EmployeeID uint64    `gorm:"not null" json:"employee_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	// State is the resulting state code of the decision the remark was
	// recorded against: a FormState for form decisions, a TagState for tag
	// approval batches.
	State     int       `json:"state"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author Employee `gorm:"foreignKey:EmployeeID" json:"author,omitempty"`
}

// ResponsibleRemark is the feedback a tagged employee submits once their tag
// has been approved.
type ResponsibleRemark struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	FormID     uint64    `gorm:"not null;index" json:"form_id"`
	QuestionID uint64    `gorm:"not null;index" json:"question_id"`
	EmployeeID uint64    `gorm:"not null" json:"employee_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Author Employee `gorm:"foreignKey:EmployeeID" json:"author,omitempty"`
}
