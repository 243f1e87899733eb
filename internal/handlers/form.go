package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/dto"
	apierrors "github.com/hrworks/employee-voice-api/internal/errors"
	"github.com/hrworks/employee-voice-api/internal/middleware"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/services"
	"github.com/hrworks/employee-voice-api/internal/utils"
)

// FormHandler coordinates survey lifecycle HTTP handlers.
type FormHandler struct {
	formService *services.FormService
	aiService   *services.AIService
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(formService *services.FormService, aiService *services.AIService) *FormHandler {
	return &FormHandler{
		formService: formService,
		aiService:   aiService,
	}
}

// contextForm retrieves the form loaded by RequireFormAccess.
func contextForm(c *gin.Context) (models.Form, bool) {
	value, exists := c.Get(constants.ContextKeyForm)
	if !exists {
		return models.Form{}, false
	}
	form, ok := value.(models.Form)
	return form, ok
}

// FieldRequest is one question in a form draft request body.
type FieldRequest struct {
	FieldType        string `json:"field_type" binding:"required"`
	Label            string `json:"label" binding:"required"`
	Placeholder      string `json:"placeholder"`
	IsRequired       bool   `json:"is_required"`
	FieldOrder       int    `json:"field_order"`
	Options          string `json:"options"`
	RatingMax        int    `json:"rating_max"`
	FileAllowedTypes string `json:"file_allowed_types"`
	FileMaxSize      int    `json:"file_max_size"`
	FileMaxCount     int    `json:"file_max_count"`
}

// CreateForm creates a new survey draft in PendingApproval.
func (h *FormHandler) CreateForm(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateFormRequest struct {
		Title       string         `json:"title" binding:"required"`
		Description string         `json:"description" binding:"required"`
		CompanyID   uint64         `json:"company_id"`
		Fields      []FieldRequest `json:"fields" binding:"required"`
	}

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	fields := make([]services.FieldInput, len(req.Fields))
	for i, f := range req.Fields {
		fields[i] = services.FieldInput{
			FieldType:        models.FieldType(f.FieldType),
			Label:            f.Label,
			Placeholder:      f.Placeholder,
			IsRequired:       f.IsRequired,
			FieldOrder:       f.FieldOrder,
			Options:          f.Options,
			RatingMax:        f.RatingMax,
			FileAllowedTypes: f.FileAllowedTypes,
			FileMaxSize:      f.FileMaxSize,
			FileMaxCount:     f.FileMaxCount,
		}
	}

	form, err := h.formService.CreateForm(services.CreateFormInput{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   employeeID,
		CompanyID:   req.CompanyID,
		Fields:      fields,
	})
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFormDTO(*form, 0))
}

// ListForms returns forms with respondent counts, optionally filtered by
// state or creator.
func (h *FormHandler) ListForms(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	filter := repository.FormFilter{
		Pagination: params,
	}

	if stateStr := c.Query("state"); stateStr != "" {
		stateInt, err := strconv.Atoi(stateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid state filter")
			return
		}
		state := models.FormState(stateInt)
		filter.State = &state
	}

	if creatorStr := c.Query("creator_id"); creatorStr != "" {
		creatorID, err := strconv.ParseUint(creatorStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid creator_id filter")
			return
		}
		filter.CreatorID = &creatorID
	}

	forms, total, err := h.formService.ListForms(employeeID, filter)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormListResponse(forms, params, total))
}

// GetForm returns one form's header info with its respondent count.
func (h *FormHandler) GetForm(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	result, err := h.formService.GetForm(form.ID)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormDTO(result.Form, result.ResponseCount))
}

// GetFields returns a form's questions in display order.
func (h *FormHandler) GetFields(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	fields, err := h.formService.GetFields(form.ID)
	if err != nil {
		respondFormError(c, err)
		return
	}

	dtos := make([]dto.FormFieldDTO, len(fields))
	for i, field := range fields {
		dtos[i] = dto.ToFormFieldDTO(field)
	}

	c.JSON(http.StatusOK, dtos)
}

// DecisionRequest carries the HR remark attached to a lifecycle decision.
type DecisionRequest struct {
	Remark string `json:"remark" binding:"required"`
}

// ApproveForm publishes a pending form.
func (h *FormHandler) ApproveForm(c *gin.Context) {
	h.decide(c, h.formService.ApproveForm)
}

// RejectForm rejects a pending form. Rejection is terminal.
func (h *FormHandler) RejectForm(c *gin.Context) {
	h.decide(c, h.formService.RejectForm)
}

func (h *FormHandler) decide(c *gin.Context, op func(formID, actorID uint64, remark string) (*models.Form, error)) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A remark is required")
		return
	}

	updated, err := op(form.ID, employeeID, req.Remark)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormDTO(*updated, 0))
}

// CompleteForm closes a published form to further responses.
func (h *FormHandler) CompleteForm(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	updated, err := h.formService.CompleteForm(form.ID, employeeID)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormDTO(*updated, 0))
}

// DeleteForm deletes a form. Refused once it has collected responses.
func (h *FormHandler) DeleteForm(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.formService.DeleteForm(form.ID, employeeID); err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Form deleted successfully",
	})
}

// ListRemarks returns form-level decision remarks, newest first.
func (h *FormHandler) ListRemarks(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	remarks, err := h.formService.ListRemarks(form.ID)
	if err != nil {
		respondFormError(c, err)
		return
	}

	dtos := make([]dto.RemarkDTO, len(remarks))
	for i, remark := range remarks {
		dtos[i] = dto.ToRemarkDTO(remark)
	}

	c.JSON(http.StatusOK, dtos)
}

// QuickStats returns the dashboard headline summary.
func (h *FormHandler) QuickStats(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.formService.GetQuickStats(employeeID)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPublicForm resolves a share code to a published form and its fields.
// No authentication required.
func (h *FormHandler) GetPublicForm(c *gin.Context) {
	shareCode := c.Param("code")

	form, fields, err := h.formService.GetPublicForm(shareCode)
	if err != nil {
		respondFormError(c, err)
		return
	}

	formDTO := dto.ToFormDTO(*form, 0)
	formDTO.Fields = make([]dto.FormFieldDTO, len(fields))
	for i, field := range fields {
		formDTO.Fields[i] = dto.ToFormFieldDTO(field)
	}

	c.JSON(http.StatusOK, formDTO)
}

// GenerateFields drafts survey questions from a free-text topic using the
// AI service.
func (h *FormHandler) GenerateFields(c *gin.Context) {
	type GenerateRequest struct {
		Description string `json:"description" binding:"required"`
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI suggestions are not configured")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A description is required")
		return
	}

	fields, err := h.aiService.GenerateFormFields(c.Request.Context(), req.Description)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to generate form fields")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fields": fields,
	})
}

func respondFormError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrNoFields),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrDuplicateFieldOrder),
		errors.Is(err, services.ErrRemarkRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRemarkTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Remark must be at least %d characters", constants.MinRemarkLength))
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrFormHasResponses):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
