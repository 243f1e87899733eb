package dto

import (
	"time"

	"github.com/hrworks/employee-voice-api/internal/analytics"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/services"
)

// ResponseDTO represents a single stored answer in API responses
type ResponseDTO struct {
	ID         uint64       `json:"id"`
	FormID     uint64       `json:"form_id"`
	FieldID    uint64       `json:"field_id"`
	EmployeeID uint64       `json:"employee_id"`
	Value      string       `json:"value"`
	CreatedAt  time.Time    `json:"created_at"`
	Employee   *EmployeeDTO `json:"employee,omitempty"`
}

// FormAnalyticsResponse is the per-question aggregation of a form's answers
type FormAnalyticsResponse struct {
	FormID      uint64                   `json:"form_id"`
	Respondents int64                    `json:"respondents"`
	Questions   []analytics.FieldSummary `json:"questions"`
}

// QuestionDetailDTO pairs a question with its respondent count
type QuestionDetailDTO struct {
	Field FormFieldDTO `json:"field"`
	Count int64        `json:"count"`
}

// EmployeeSearchResultDTO is an employee row in a respondent search, with
// the number of questions they answered on the searched form
type EmployeeSearchResultDTO struct {
	EmployeeDTO
	Responsed int64 `json:"responsed"`
}

// ToResponseDTO converts a Response model to ResponseDTO
func ToResponseDTO(response models.Response) ResponseDTO {
	dto := ResponseDTO{
		ID:         response.ID,
		FormID:     response.FormID,
		FieldID:    response.FieldID,
		EmployeeID: response.EmployeeID,
		Value:      response.Value,
		CreatedAt:  response.CreatedAt,
	}

	if response.Employee.ID != 0 {
		employee := ToEmployeeDTO(response.Employee)
		dto.Employee = &employee
	}

	return dto
}

// ToResponseDTOs converts a slice of Response models
func ToResponseDTOs(responses []models.Response) []ResponseDTO {
	dtos := make([]ResponseDTO, len(responses))
	for i, response := range responses {
		dtos[i] = ToResponseDTO(response)
	}
	return dtos
}

// ToQuestionDetailDTOs converts service question details
func ToQuestionDetailDTOs(details []services.QuestionDetail) []QuestionDetailDTO {
	dtos := make([]QuestionDetailDTO, len(details))
	for i, detail := range details {
		dtos[i] = QuestionDetailDTO{
			Field: ToFormFieldDTO(detail.Field),
			Count: detail.Count,
		}
	}
	return dtos
}

// ToEmployeeSearchResultDTOs converts repository search rows
func ToEmployeeSearchResultDTOs(rows []repository.EmployeeSearchRow) []EmployeeSearchResultDTO {
	dtos := make([]EmployeeSearchResultDTO, len(rows))
	for i, row := range rows {
		dtos[i] = EmployeeSearchResultDTO{
			EmployeeDTO: ToEmployeeDTO(row.Employee),
			Responsed:   row.Responsed,
		}
	}
	return dtos
}
