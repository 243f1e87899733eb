package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hrworks/employee-voice-api/internal/dto"
	apierrors "github.com/hrworks/employee-voice-api/internal/errors"
	"github.com/hrworks/employee-voice-api/internal/middleware"
	"github.com/hrworks/employee-voice-api/internal/services"
	"github.com/hrworks/employee-voice-api/internal/utils"
)

// ResponseHandler coordinates submission and analytics HTTP handlers.
type ResponseHandler struct {
	responseService *services.ResponseService
	formService     *services.FormService
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(responseService *services.ResponseService, formService *services.FormService) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
		formService:     formService,
	}
}

// AnswerRequest is one field's answer in a submission request body.
// Checkbox fields use values; every other type uses value.
type AnswerRequest struct {
	FieldID uint64   `json:"field_id" binding:"required"`
	Value   string   `json:"value"`
	Values  []string `json:"values"`
}

// SubmitResponse stores a submission entered by an operator on an
// employee's behalf.
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	adminID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitRequest struct {
		EmployeeID uint64          `json:"employee_id" binding:"required"`
		Answers    []AnswerRequest `json:"answers" binding:"required"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.responseService.SubmitResponse(services.SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: req.EmployeeID,
		AdminID:    adminID,
		Answers:    toAnswerInputs(req.Answers),
	}); err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Response recorded successfully",
	})
}

// SubmitPublicResponse stores the authenticated employee's own submission
// against a share-code form.
func (h *ResponseHandler) SubmitPublicResponse(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	form, _, err := h.formService.GetPublicForm(c.Param("code"))
	if err != nil {
		respondFormError(c, err)
		return
	}

	type SubmitRequest struct {
		Answers []AnswerRequest `json:"answers" binding:"required"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.responseService.SubmitResponse(services.SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: employeeID,
		Answers:    toAnswerInputs(req.Answers),
	}); err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Response recorded successfully",
	})
}

// ListResponses returns all answer rows for a form.
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	responses, err := h.responseService.ListResponses(form.ID)
	if err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseDTOs(responses))
}

// GetEmployeeResponse returns one employee's answers for a form.
func (h *ResponseHandler) GetEmployeeResponse(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	employeeID, err := strconv.ParseUint(c.Param("employee_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	responses, err := h.responseService.GetEmployeeResponse(form.ID, employeeID)
	if err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseDTOs(responses))
}

// Analytics returns the per-question aggregation of a form's answers.
func (h *ResponseHandler) Analytics(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questions, err := h.responseService.Analytics(form.ID)
	if err != nil {
		respondResponseError(c, err)
		return
	}

	result, err := h.formService.GetForm(form.ID)
	if err != nil {
		respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FormAnalyticsResponse{
		FormID:      form.ID,
		Respondents: result.ResponseCount,
		Questions:   questions,
	})
}

// QuestionDetails returns per-question respondent counts, feeding the
// tagging screen.
func (h *ResponseHandler) QuestionDetails(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	details, err := h.responseService.QuestionDetails(form.ID)
	if err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDetailDTOs(details))
}

// SearchEmployees finds candidate respondents by name or employee number.
// When form_id is set, each hit carries its response count for that form.
func (h *ResponseHandler) SearchEmployees(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	query := c.Query("q")

	var formID *uint64
	if formIDStr := c.Query("form_id"); formIDStr != "" {
		id, err := strconv.ParseUint(formIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid form_id")
			return
		}
		formID = &id
	}

	params := utils.GetPaginationParams(c)

	rows, err := h.responseService.SearchEmployees(employeeID, query, formID, params.Limit)
	if err != nil {
		respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeSearchResultDTOs(rows))
}

func toAnswerInputs(answers []AnswerRequest) []services.AnswerInput {
	inputs := make([]services.AnswerInput, len(answers))
	for i, answer := range answers {
		inputs[i] = services.AnswerInput{
			FieldID: answer.FieldID,
			Value:   answer.Value,
			Values:  answer.Values,
		}
	}
	return inputs
}

func respondResponseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyResponded):
		apierrors.AlreadyResponded(c, err.Error())
	case errors.Is(err, services.ErrFormNotPublished):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrNoAnswers),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrRequiredFieldEmpty),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrFileFieldAnswered):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
