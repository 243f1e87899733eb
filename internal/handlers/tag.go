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
	"github.com/hrworks/employee-voice-api/internal/services"
)

// TagHandler coordinates the responsible-person tagging HTTP handlers.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

func questionParam(c *gin.Context) (uint64, bool) {
	questionID, err := strconv.ParseUint(c.Param("question_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid question ID")
		return 0, false
	}
	return questionID, true
}

// TagEmployees tags employees as responsible for a question. Idempotent:
// already-tagged assignees are reported back, never duplicated.
func (h *TagHandler) TagEmployees(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type TagRequest struct {
		AssigneeIDs []uint64 `json:"assignee_ids" binding:"required"`
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tagService.TagEmployees(services.TagEmployeesInput{
		QuestionID:  questionID,
		FormID:      form.ID,
		ActorID:     actorID,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UntagEmployee removes a pending tag. Approved tags are immutable.
func (h *TagHandler) UntagEmployee(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	assigneeID, err := strconv.ParseUint(c.Param("employee_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.tagService.UntagEmployee(questionID, form.ID, assigneeID, actorID); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag removed successfully",
	})
}

// ListTags returns all tag records for a question with their approval state.
func (h *TagHandler) ListTags(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(questionID, form.ID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTOs(tags))
}

// ApproveTags bulk-approves every pending tag for a question with a batch
// remark.
func (h *TagHandler) ApproveTags(c *gin.Context) {
	if _, ok := contextForm(c); !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A remark is required")
		return
	}

	approved, err := h.tagService.ApproveAllPendingTags(questionID, actorID, req.Remark)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"approved": approved,
	})
}

// RejectTags bulk-removes every pending tag for a question.
func (h *TagHandler) RejectTags(c *gin.Context) {
	if _, ok := contextForm(c); !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	rejected, err := h.tagService.RejectTags(questionID, actorID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rejected": rejected,
	})
}

// Timeline returns the question's follow-up feed: tag events, HR batch
// remarks, and responsible persons' own remarks, in creation order.
func (h *TagHandler) Timeline(c *gin.Context) {
	form, ok := contextForm(c)
	if !ok {
		apierrors.InternalError(c, "Form not loaded")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	entries, err := h.tagService.Timeline(questionID, form.ID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineEntryDTOs(entries))
}

// SubmitResponsibleRemark records the authenticated assignee's own feedback
// on a question they were tagged for.
func (h *TagHandler) SubmitResponsibleRemark(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	formID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid form ID")
		return
	}

	questionID, ok := questionParam(c)
	if !ok {
		return
	}

	type RemarkRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req RemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Remark text is required")
		return
	}

	if err := h.tagService.SubmitResponsibleRemark(questionID, formID, employeeID, req.Text); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Remark recorded successfully",
	})
}

// ListAssignedTags returns the tags where the authenticated employee is the
// responsible person.
func (h *TagHandler) ListAssignedTags(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	assigned, err := h.tagService.ListAssignedToEmployee(employeeID)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignedTagDTOs(assigned))
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNoAssignees),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrRemarkRequired),
		errors.Is(err, services.ErrResponsibleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRemarkTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Remark must be at least %d characters", constants.MinRemarkLength))
	case errors.Is(err, services.ErrTagApproved),
		errors.Is(err, services.ErrTagNotApproved),
		errors.Is(err, services.ErrNoPendingTags),
		errors.Is(err, services.ErrFormNotCompleted):
		apierrors.InvalidState(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
