package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hrworks/employee-voice-api/internal/analytics"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"gorm.io/gorm"
)

var (
	ErrFormNotPublished    = errors.New("form is not accepting responses")
	ErrAlreadyResponded    = errors.New("employee has already responded to this form")
	ErrNoAnswers           = errors.New("at least one answer is required")
	ErrUnknownField        = errors.New("answer references a field not on this form")
	ErrRequiredFieldEmpty  = errors.New("required field is missing an answer")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidRating       = errors.New("rating outside the allowed range")
	ErrFileFieldAnswered   = errors.New("file fields cannot be answered")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ResponseService validates and stores form submissions.
type ResponseService struct {
	formRepo     repository.FormRepository
	responseRepo repository.ResponseRepository
	employeeRepo repository.EmployeeRepository
}

// NewResponseService creates a new ResponseService
func NewResponseService(
	formRepo repository.FormRepository,
	responseRepo repository.ResponseRepository,
	employeeRepo repository.EmployeeRepository,
) *ResponseService {
	return &ResponseService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		employeeRepo: employeeRepo,
	}
}

// AnswerInput is one field's answer within a submission. Checkbox fields use
// Values; every other type uses Value.
type AnswerInput struct {
	FieldID uint64
	Value   string
	Values  []string
}

// SubmitResponseInput represents one employee's submission against a form.
type SubmitResponseInput struct {
	FormID     uint64
	EmployeeID uint64
	AdminID    uint64
	Answers    []AnswerInput
}

// SubmitResponse validates and stores a submission. At most one submission
// is accepted per (form, employee) pair; duplicates fail with
// ErrAlreadyResponded so callers can surface it as a soft warning.
func (s *ResponseService) SubmitResponse(input SubmitResponseInput) error {
	form, err := s.findForm(input.FormID)
	if err != nil {
		return err
	}
	if form.State != models.FormStatePublished {
		return ErrFormNotPublished
	}

	if _, err := s.findEmployee(input.EmployeeID); err != nil {
		return err
	}

	responded, err := s.responseRepo.HasResponded(input.FormID, input.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to check existing responses: %w", err)
	}
	if responded {
		return ErrAlreadyResponded
	}

	if len(input.Answers) == 0 {
		return ErrNoAnswers
	}

	fields, err := s.formRepo.ListFields(input.FormID)
	if err != nil {
		return fmt.Errorf("failed to load fields: %w", err)
	}

	fieldsByID := make(map[uint64]models.FormField, len(fields))
	for _, field := range fields {
		fieldsByID[field.ID] = field
	}

	answersByField := make(map[uint64]AnswerInput, len(input.Answers))
	for _, answer := range input.Answers {
		if _, ok := fieldsByID[answer.FieldID]; !ok {
			return ErrUnknownField
		}
		answersByField[answer.FieldID] = answer
	}

	rows := make([]models.Response, 0, len(input.Answers))
	for _, field := range fields {
		answer, answered := answersByField[field.ID]

		value, err := encodeAnswer(field, answer, answered)
		if err != nil {
			return err
		}

		if value == "" {
			if field.IsRequired {
				return fmt.Errorf("%w: %s", ErrRequiredFieldEmpty, field.Label)
			}
			continue
		}

		rows = append(rows, models.Response{
			FormID:     input.FormID,
			FieldID:    field.ID,
			EmployeeID: input.EmployeeID,
			AdminID:    input.AdminID,
			Value:      value,
		})
	}

	if len(rows) == 0 {
		return ErrNoAnswers
	}

	if err := s.responseRepo.CreateBatch(rows); err != nil {
		// A concurrent submission can slip past the HasResponded check and
		// lose to the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyResponded
		}
		return fmt.Errorf("failed to store responses: %w", err)
	}

	return nil
}

// encodeAnswer applies the per-type validation and storage encoding:
// checkbox answers are JSON-array-encoded, everything else is stored as its
// native string representation.
func encodeAnswer(field models.FormField, answer AnswerInput, answered bool) (string, error) {
	if !answered {
		return "", nil
	}

	switch field.FieldType {
	case models.FieldTypeCheckbox:
		if len(answer.Values) == 0 {
			return "", nil
		}
		encoded, err := json.Marshal(answer.Values)
		if err != nil {
			return "", fmt.Errorf("failed to encode checkbox answer: %w", err)
		}
		return string(encoded), nil

	case models.FieldTypeEmail:
		value := strings.TrimSpace(answer.Value)
		if value == "" {
			return "", nil
		}
		if !emailPattern.MatchString(value) {
			return "", fmt.Errorf("%w: %s", ErrInvalidEmail, field.Label)
		}
		return value, nil

	case models.FieldTypeRating:
		value := strings.TrimSpace(answer.Value)
		if value == "" {
			return "", nil
		}
		rating, err := strconv.Atoi(value)
		if err != nil || rating < 1 || (field.RatingMax > 0 && rating > field.RatingMax) {
			return "", fmt.Errorf("%w: %s", ErrInvalidRating, field.Label)
		}
		return value, nil

	case models.FieldTypeFile:
		// Modeled in the builder only; the submission flow has no upload path.
		if answer.Value != "" || len(answer.Values) > 0 {
			return "", ErrFileFieldAnswered
		}
		return "", nil

	default:
		return strings.TrimSpace(answer.Value), nil
	}
}

// ListResponses returns all answer rows for a form.
func (s *ResponseService) ListResponses(formID uint64) ([]models.Response, error) {
	if _, err := s.findForm(formID); err != nil {
		return nil, err
	}
	return s.responseRepo.ListByForm(formID)
}

// GetEmployeeResponse returns one employee's answers for a form.
func (s *ResponseService) GetEmployeeResponse(formID, employeeID uint64) ([]models.Response, error) {
	if _, err := s.findForm(formID); err != nil {
		return nil, err
	}
	return s.responseRepo.ListByFormAndEmployee(formID, employeeID)
}

// Analytics builds the read-only response projection for a form.
func (s *ResponseService) Analytics(formID uint64) ([]analytics.FieldSummary, error) {
	if _, err := s.findForm(formID); err != nil {
		return nil, err
	}

	fields, err := s.formRepo.ListFields(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	responses, err := s.responseRepo.ListByForm(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	rows := make([]analytics.AnswerRow, len(responses))
	for i, response := range responses {
		rows[i] = analytics.AnswerRow{
			QuestionID: response.FieldID,
			Value:      response.Value,
		}
	}

	return analytics.Summarize(fields, rows), nil
}

// QuestionDetail pairs a question with its respondent count, feeding the
// tagging screen.
type QuestionDetail struct {
	Field models.FormField
	Count int64
}

// QuestionDetails returns per-question respondent counts for a form.
func (s *ResponseService) QuestionDetails(formID uint64) ([]QuestionDetail, error) {
	if _, err := s.findForm(formID); err != nil {
		return nil, err
	}

	fields, err := s.formRepo.ListFields(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	counts, err := s.responseRepo.QuestionCounts(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}

	countsByID := make(map[uint64]int64, len(counts))
	for _, count := range counts {
		countsByID[count.QuestionID] = count.Count
	}

	details := make([]QuestionDetail, len(fields))
	for i, field := range fields {
		details[i] = QuestionDetail{Field: field, Count: countsByID[field.ID]}
	}

	return details, nil
}

// SearchEmployees finds candidate respondents. The directory is a
// management surface, gated on the actor's designation. When formID is set,
// each hit carries its response count for that form so the caller can block
// re-selection of someone who already responded.
func (s *ResponseService) SearchEmployees(actorID uint64, query string, formID *uint64, limit int) ([]repository.EmployeeSearchRow, error) {
	actor, err := s.findEmployee(actorID)
	if err != nil {
		return nil, err
	}
	if !roles.CanManage(actor.DesignationID) {
		return nil, ErrNotAuthorized
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []repository.EmployeeSearchRow{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	return s.employeeRepo.Search(query, formID, limit)
}

func (s *ResponseService) findForm(formID uint64) (*models.Form, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to find form: %w", err)
	}
	return form, nil
}

func (s *ResponseService) findEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}
