package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"github.com/hrworks/employee-voice-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFormNotFound        = errors.New("form not found")
	ErrNotAuthorized       = errors.New("designation does not permit this action")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrNoFields            = errors.New("at least one field is required")
	ErrInvalidFieldType    = errors.New("unsupported field type")
	ErrDuplicateFieldOrder = errors.New("field order values must be unique")
	ErrInvalidTransition   = errors.New("transition not allowed from the current state")
	ErrRemarkRequired      = errors.New("a remark is required")
	ErrRemarkTooShort      = errors.New("remark is below the minimum length")
	ErrFormHasResponses    = errors.New("forms with responses cannot be deleted")
)

// FormService drives the survey lifecycle state machine.
type FormService struct {
	formRepo     repository.FormRepository
	responseRepo repository.ResponseRepository
	remarkRepo   repository.RemarkRepository
	employeeRepo repository.EmployeeRepository
}

// NewFormService creates a new FormService
func NewFormService(
	formRepo repository.FormRepository,
	responseRepo repository.ResponseRepository,
	remarkRepo repository.RemarkRepository,
	employeeRepo repository.EmployeeRepository,
) *FormService {
	return &FormService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		remarkRepo:   remarkRepo,
		employeeRepo: employeeRepo,
	}
}

// FieldInput describes one question in a form draft.
type FieldInput struct {
	FieldType        models.FieldType
	Label            string
	Placeholder      string
	IsRequired       bool
	FieldOrder       int
	Options          string
	RatingMax        int
	FileAllowedTypes string
	FileMaxSize      int
	FileMaxCount     int
}

// CreateFormInput represents input for creating a form.
type CreateFormInput struct {
	Title       string
	Description string
	CreatorID   uint64
	CompanyID   uint64
	Fields      []FieldInput
}

// FormWithCount pairs a form with its distinct respondent count.
type FormWithCount struct {
	Form          models.Form
	ResponseCount int64
}

// QuickStats is the dashboard headline summary.
type QuickStats struct {
	TotalForms     int64 `json:"total_forms"`
	PendingForms   int64 `json:"pending_forms"`
	PublishedForms int64 `json:"published_forms"`
	RejectedForms  int64 `json:"rejected_forms"`
	CompletedForms int64 `json:"completed_forms"`
	TotalResponses int64 `json:"total_responses"`
}

// CreateForm validates a draft and stores it in PendingApproval.
func (s *FormService) CreateForm(input CreateFormInput) (*models.Form, error) {
	creator, err := s.findEmployee(input.CreatorID)
	if err != nil {
		return nil, err
	}
	if !roles.CanManage(creator.DesignationID) {
		return nil, ErrNotAuthorized
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if len(input.Fields) == 0 {
		return nil, ErrNoFields
	}

	fields := make([]models.FormField, len(input.Fields))
	seenOrders := make(map[int]struct{}, len(input.Fields))
	for i, in := range input.Fields {
		if !in.FieldType.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldType, in.FieldType)
		}
		if _, dup := seenOrders[in.FieldOrder]; dup {
			return nil, ErrDuplicateFieldOrder
		}
		seenOrders[in.FieldOrder] = struct{}{}

		fields[i] = models.FormField{
			FieldType:        in.FieldType,
			Label:            in.Label,
			Placeholder:      in.Placeholder,
			IsRequired:       in.IsRequired,
			FieldOrder:       in.FieldOrder,
			Options:          in.Options,
			RatingMax:        in.RatingMax,
			FileAllowedTypes: in.FileAllowedTypes,
			FileMaxSize:      in.FileMaxSize,
			FileMaxCount:     in.FileMaxCount,
		}
	}

	form := &models.Form{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		State:       models.FormStatePendingApproval,
		CreatorID:   input.CreatorID,
		CompanyID:   input.CompanyID,
		ShareCode:   utils.GenerateShareCode(),
	}

	if err := s.formRepo.Create(form, fields); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return s.formRepo.FindByID(form.ID, "Creator", "Fields")
}

// ApproveForm publishes a pending form. The remark is persisted with the
// decision.
func (s *FormService) ApproveForm(formID, actorID uint64, remark string) (*models.Form, error) {
	return s.decide(formID, actorID, remark, models.FormStatePublished)
}

// RejectForm rejects a pending form. Rejection is terminal.
func (s *FormService) RejectForm(formID, actorID uint64, remark string) (*models.Form, error) {
	return s.decide(formID, actorID, remark, models.FormStateRejected)
}

func (s *FormService) decide(formID, actorID uint64, remark string, target models.FormState) (*models.Form, error) {
	actor, err := s.findEmployee(actorID)
	if err != nil {
		return nil, err
	}
	if !roles.CanApprove(actor.DesignationID) {
		return nil, ErrNotAuthorized
	}

	trimmed := strings.TrimSpace(remark)
	if trimmed == "" {
		return nil, ErrRemarkRequired
	}
	if len(trimmed) < constants.MinRemarkLength {
		return nil, ErrRemarkTooShort
	}

	form, err := s.findForm(formID)
	if err != nil {
		return nil, err
	}

	if !form.State.CanTransition(target) {
		return nil, ErrInvalidTransition
	}

	if err := s.formRepo.UpdateState(formID, target); err != nil {
		return nil, fmt.Errorf("failed to update form state: %w", err)
	}

	if err := s.remarkRepo.Create(&models.Remark{
		FormID:     formID,
		EmployeeID: actorID,
		Text:       trimmed,
		State:      int(target),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist remark: %w", err)
	}

	return s.formRepo.FindByID(formID, "Creator")
}

// CompleteForm closes a published form. Irreversible; further responses are
// refused and the tagging workflow opens for the existing ones.
func (s *FormService) CompleteForm(formID, actorID uint64) (*models.Form, error) {
	actor, err := s.findEmployee(actorID)
	if err != nil {
		return nil, err
	}
	if !roles.CanApprove(actor.DesignationID) {
		return nil, ErrNotAuthorized
	}

	form, err := s.findForm(formID)
	if err != nil {
		return nil, err
	}

	if !form.State.CanTransition(models.FormStateCompleted) {
		return nil, ErrInvalidTransition
	}

	if err := s.formRepo.UpdateState(formID, models.FormStateCompleted); err != nil {
		return nil, fmt.Errorf("failed to update form state: %w", err)
	}

	return s.formRepo.FindByID(formID, "Creator")
}

// DeleteForm deletes a form. Deletion is refused for any caller, whatever
// their role, once the form has collected responses.
func (s *FormService) DeleteForm(formID, actorID uint64) error {
	actor, err := s.findEmployee(actorID)
	if err != nil {
		return err
	}
	if !roles.CanApprove(actor.DesignationID) {
		return ErrNotAuthorized
	}

	form, err := s.findForm(formID)
	if err != nil {
		return err
	}

	count, err := s.responseRepo.CountRespondents(form.ID)
	if err != nil {
		return fmt.Errorf("failed to count responses: %w", err)
	}
	if count > 0 {
		return ErrFormHasResponses
	}

	if err := s.formRepo.Delete(form.ID); err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	return nil
}

// ListForms returns forms with their respondent counts. The listing is a
// management surface, gated on the actor's designation.
func (s *FormService) ListForms(actorID uint64, filter repository.FormFilter) ([]FormWithCount, int64, error) {
	actor, err := s.findEmployee(actorID)
	if err != nil {
		return nil, 0, err
	}
	if !roles.CanManage(actor.DesignationID) {
		return nil, 0, ErrNotAuthorized
	}

	forms, total, err := s.formRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}

	result := make([]FormWithCount, len(forms))
	for i, form := range forms {
		count, err := s.responseRepo.CountRespondents(form.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count responses: %w", err)
		}
		result[i] = FormWithCount{Form: form, ResponseCount: count}
	}

	return result, total, nil
}

// GetForm returns a form's header info with its respondent count.
func (s *FormService) GetForm(formID uint64) (*FormWithCount, error) {
	form, err := s.formRepo.FindByID(formID, "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to find form: %w", err)
	}

	count, err := s.responseRepo.CountRespondents(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}

	return &FormWithCount{Form: *form, ResponseCount: count}, nil
}

// GetFields returns a form's fields in display order.
func (s *FormService) GetFields(formID uint64) ([]models.FormField, error) {
	if _, err := s.findForm(formID); err != nil {
		return nil, err
	}
	return s.formRepo.ListFields(formID)
}

// GetPublicForm resolves a share code to a published form and its fields.
// Forms in any other state are not served publicly.
func (s *FormService) GetPublicForm(shareCode string) (*models.Form, []models.FormField, error) {
	form, err := s.formRepo.FindByShareCode(shareCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFormNotFound
		}
		return nil, nil, fmt.Errorf("failed to find form: %w", err)
	}

	if form.State != models.FormStatePublished {
		return nil, nil, ErrFormNotFound
	}

	fields, err := s.formRepo.ListFields(form.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fields: %w", err)
	}

	return form, fields, nil
}

// GetQuickStats returns the dashboard headline summary, gated on the
// actor's designation.
func (s *FormService) GetQuickStats(actorID uint64) (*QuickStats, error) {
	actor, err := s.findEmployee(actorID)
	if err != nil {
		return nil, err
	}
	if !roles.CanManage(actor.DesignationID) {
		return nil, ErrNotAuthorized
	}

	counts, err := s.formRepo.CountByState()
	if err != nil {
		return nil, fmt.Errorf("failed to count forms: %w", err)
	}

	totalResponses, err := s.responseRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}

	stats := &QuickStats{
		PendingForms:   counts[models.FormStatePendingApproval],
		PublishedForms: counts[models.FormStatePublished],
		RejectedForms:  counts[models.FormStateRejected],
		CompletedForms: counts[models.FormStateCompleted],
		TotalResponses: totalResponses,
	}
	stats.TotalForms = stats.PendingForms + stats.PublishedForms + stats.RejectedForms + stats.CompletedForms

	return stats, nil
}

// ListRemarks returns form-level decision remarks.
func (s *FormService) ListRemarks(formID uint64) ([]models.Remark, error) {
	if _, err := s.findForm(formID); err != nil {
		return nil, err
	}
	return s.remarkRepo.ListByForm(formID)
}

func (s *FormService) findForm(formID uint64) (*models.Form, error) {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to find form: %w", err)
	}
	return form, nil
}

func (s *FormService) findEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}
