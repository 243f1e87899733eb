package models

import (
	"time"

	"gorm.io/gorm"
)

// TagState is the approval state of a responsible-person tag.
type TagState int

const (
	TagStatePending  TagState = 1
	TagStateApproved TagState = 2
)

// Tag delegates follow-up ownership of a question to an employee. Created by
// a Welfare Officer, approved or rejected in bulk by an HR admin.
type Tag struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	FormID     uint64 `gorm:"not null;index" json:"form_id"`
	QuestionID uint64 `gorm:"not null;uniqueIndex:idx_tags_question_emp,priority:1" json:"question_id"`
	// AddedBy is the tagging Welfare Officer, AddedWith the assignee.
	AddedBy   uint64         `gorm:"not null" json:"added_by"`
	AddedWith uint64         `gorm:"not null;uniqueIndex:idx_tags_question_emp,priority:2" json:"added_with"`
	State     TagState       `gorm:"not null;default:1" json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Question FormField `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Tagger   Employee  `gorm:"foreignKey:AddedBy" json:"tagger,omitempty"`
	Assignee Employee  `gorm:"foreignKey:AddedWith" json:"assignee,omitempty"`
}
