package dto

import (
	"time"

	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/services"
)

// TagDTO represents a responsible-person tag in API responses
type TagDTO struct {
	ID         uint64          `json:"id"`
	FormID     uint64          `json:"form_id"`
	QuestionID uint64          `json:"question_id"`
	State      models.TagState `json:"state"`
	CreatedAt  time.Time       `json:"created_at"`
	Tagger     *EmployeeDTO    `json:"tagger,omitempty"`
	Assignee   *EmployeeDTO    `json:"assignee,omitempty"`
}

// AssignedTagDTO is a tag seen from the assignee's side, with the question
// it covers and any remark the assignee already submitted
type AssignedTagDTO struct {
	TagDTO
	Question        *FormFieldDTO `json:"question,omitempty"`
	SubmittedRemark string        `json:"submitted_remark,omitempty"`
}

// TimelineEntryDTO is one event in a question's follow-up history
type TimelineEntryDTO struct {
	Kind       string    `json:"kind"`
	EmployeeID uint64    `json:"employee_id"`
	TargetID   uint64    `json:"target_id,omitempty"`
	Text       string    `json:"text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	dto := TagDTO{
		ID:         tag.ID,
		FormID:     tag.FormID,
		QuestionID: tag.QuestionID,
		State:      tag.State,
		CreatedAt:  tag.CreatedAt,
	}

	if tag.Tagger.ID != 0 {
		tagger := ToEmployeeDTO(tag.Tagger)
		dto.Tagger = &tagger
	}
	if tag.Assignee.ID != 0 {
		assignee := ToEmployeeDTO(tag.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTagDTOs converts a slice of Tag models
func ToTagDTOs(tags []models.Tag) []TagDTO {
	dtos := make([]TagDTO, len(tags))
	for i, tag := range tags {
		dtos[i] = ToTagDTO(tag)
	}
	return dtos
}

// ToAssignedTagDTO converts an AssignedTag to AssignedTagDTO
func ToAssignedTagDTO(assigned services.AssignedTag) AssignedTagDTO {
	dto := AssignedTagDTO{
		TagDTO:          ToTagDTO(assigned.Tag),
		SubmittedRemark: assigned.SubmittedRemark,
	}

	if assigned.Tag.Question.ID != 0 {
		question := ToFormFieldDTO(assigned.Tag.Question)
		dto.Question = &question
	}

	return dto
}

// ToAssignedTagDTOs converts a slice of AssignedTag
func ToAssignedTagDTOs(assigned []services.AssignedTag) []AssignedTagDTO {
	dtos := make([]AssignedTagDTO, len(assigned))
	for i, a := range assigned {
		dtos[i] = ToAssignedTagDTO(a)
	}
	return dtos
}

// ToTimelineEntryDTOs converts service timeline entries
func ToTimelineEntryDTOs(entries []services.TimelineEntry) []TimelineEntryDTO {
	dtos := make([]TimelineEntryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = TimelineEntryDTO{
			Kind:       entry.Kind,
			EmployeeID: entry.EmployeeID,
			TargetID:   entry.TargetID,
			Text:       entry.Text,
			CreatedAt:  entry.CreatedAt,
		}
	}
	return dtos
}
