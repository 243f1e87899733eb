package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound    = errors.New("question not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrNoAssignees         = errors.New("at least one assignee is required")
	ErrInvalidAssignee     = errors.New("one or more assignees do not exist")
	ErrTagApproved         = errors.New("approved tags cannot be removed")
	ErrTagNotApproved      = errors.New("tag has not been approved yet")
	ErrNoPendingTags       = errors.New("no pending tags to decide on")
	ErrFormNotCompleted    = errors.New("tagging opens once the survey is completed")
	ErrResponsibleRequired = errors.New("remark text is required")
)

// TagService drives the responsible-person tagging and HR-approval workflow.
type TagService struct {
	tagRepo      repository.TagRepository
	formRepo     repository.FormRepository
	remarkRepo   repository.RemarkRepository
	employeeRepo repository.EmployeeRepository
}

// NewTagService creates a new TagService
func NewTagService(
	tagRepo repository.TagRepository,
	formRepo repository.FormRepository,
	remarkRepo repository.RemarkRepository,
	employeeRepo repository.EmployeeRepository,
) *TagService {
	return &TagService{
		tagRepo:      tagRepo,
		formRepo:     formRepo,
		remarkRepo:   remarkRepo,
		employeeRepo: employeeRepo,
	}
}

// TagEmployeesInput represents input for tagging responsible persons.
type TagEmployeesInput struct {
	QuestionID  uint64
	FormID      uint64
	ActorID     uint64
	AssigneeIDs []uint64
}

// TagResult reports which assignees were newly tagged and which were
// already tagged (skipped, surfaced to the caller as a notice).
type TagResult struct {
	Tagged        []uint64 `json:"tagged"`
	AlreadyTagged []uint64 `json:"already_tagged"`
}

// TagEmployees tags employees as responsible for a question. The operation
// is idempotent: assignees that already carry a tag are skipped and
// reported, never duplicated.
func (s *TagService) TagEmployees(input TagEmployeesInput) (*TagResult, error) {
	actor, err := s.findActor(input.ActorID)
	if err != nil {
		return nil, err
	}
	if !roles.CanTag(actor.DesignationID) {
		return nil, ErrNotAuthorized
	}

	if len(input.AssigneeIDs) == 0 {
		return nil, ErrNoAssignees
	}

	if _, err := s.findQuestion(input.QuestionID, input.FormID); err != nil {
		return nil, err
	}
	if err := s.ensureFormCompleted(input.FormID); err != nil {
		return nil, err
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)

	result := &TagResult{}
	var newTags []models.Tag
	for _, assigneeID := range assigneeIDs {
		if _, err := s.employeeRepo.FindByID(assigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidAssignee
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}

		_, err := s.tagRepo.Find(input.QuestionID, assigneeID)
		switch {
		case err == nil:
			result.AlreadyTagged = append(result.AlreadyTagged, assigneeID)
		case errors.Is(err, gorm.ErrRecordNotFound):
			newTags = append(newTags, models.Tag{
				FormID:     input.FormID,
				QuestionID: input.QuestionID,
				AddedBy:    input.ActorID,
				AddedWith:  assigneeID,
				State:      models.TagStatePending,
			})
			result.Tagged = append(result.Tagged, assigneeID)
		default:
			return nil, fmt.Errorf("failed to check existing tag: %w", err)
		}
	}

	if err := s.tagRepo.CreateAll(newTags); err != nil {
		return nil, fmt.Errorf("failed to create tags: %w", err)
	}

	return result, nil
}

// UntagEmployee removes a pending tag. Approved tags are immutable.
func (s *TagService) UntagEmployee(questionID, formID, assigneeID, actorID uint64) error {
	actor, err := s.findActor(actorID)
	if err != nil {
		return err
	}
	if !roles.CanTag(actor.DesignationID) {
		return ErrNotAuthorized
	}

	if _, err := s.findQuestion(questionID, formID); err != nil {
		return err
	}

	tag, err := s.tagRepo.Find(questionID, assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}

	if tag.State == models.TagStateApproved {
		return ErrTagApproved
	}

	if err := s.tagRepo.Remove(questionID, assigneeID); err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}

	return nil
}

// ListTags returns all tag records for a question with their approval state.
func (s *TagService) ListTags(questionID, formID uint64) ([]models.Tag, error) {
	if _, err := s.findQuestion(questionID, formID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListByQuestion(questionID)
}

// ApproveAllPendingTags bulk-approves every pending tag for a question and
// records the batch remark. Both the pending-tags gate and the remark
// minimum are enforced here, not just in the UI.
func (s *TagService) ApproveAllPendingTags(questionID, actorID uint64, remark string) (int64, error) {
	actor, err := s.findActor(actorID)
	if err != nil {
		return 0, err
	}
	if !roles.CanApprove(actor.DesignationID) {
		return 0, ErrNotAuthorized
	}

	trimmed := strings.TrimSpace(remark)
	if trimmed == "" {
		return 0, ErrRemarkRequired
	}
	if len(trimmed) < constants.MinRemarkLength {
		return 0, ErrRemarkTooShort
	}

	pending, err := s.tagRepo.CountPending(questionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending tags: %w", err)
	}
	if pending == 0 {
		return 0, ErrNoPendingTags
	}

	question, err := s.formRepo.FindField(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrQuestionNotFound
		}
		return 0, fmt.Errorf("failed to find question: %w", err)
	}

	approved, err := s.tagRepo.ApprovePending(questionID)
	if err != nil {
		return 0, fmt.Errorf("failed to approve tags: %w", err)
	}

	if err := s.remarkRepo.Create(&models.Remark{
		FormID:     question.FormID,
		QuestionID: questionID,
		EmployeeID: actorID,
		Text:       trimmed,
		State:      int(models.TagStateApproved),
	}); err != nil {
		return 0, fmt.Errorf("failed to persist remark: %w", err)
	}

	return approved, nil
}

// RejectTags bulk-removes every pending tag for a question. No remark is
// recorded on rejection.
func (s *TagService) RejectTags(questionID, actorID uint64) (int64, error) {
	actor, err := s.findActor(actorID)
	if err != nil {
		return 0, err
	}
	if !roles.CanApprove(actor.DesignationID) {
		return 0, ErrNotAuthorized
	}

	pending, err := s.tagRepo.CountPending(questionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending tags: %w", err)
	}
	if pending == 0 {
		return 0, ErrNoPendingTags
	}

	rejected, err := s.tagRepo.DeletePending(questionID)
	if err != nil {
		return 0, fmt.Errorf("failed to reject tags: %w", err)
	}

	return rejected, nil
}

// SubmitResponsibleRemark records the tagged person's own feedback. Only
// the assignee of an approved tag may submit.
func (s *TagService) SubmitResponsibleRemark(questionID, formID, employeeID uint64, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrResponsibleRequired
	}

	if _, err := s.findQuestion(questionID, formID); err != nil {
		return err
	}

	tag, err := s.tagRepo.Find(questionID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}

	if tag.State != models.TagStateApproved {
		return ErrTagNotApproved
	}

	if err := s.remarkRepo.CreateResponsible(&models.ResponsibleRemark{
		FormID:     tag.FormID,
		QuestionID: questionID,
		EmployeeID: employeeID,
		Text:       trimmed,
	}); err != nil {
		return fmt.Errorf("failed to persist remark: %w", err)
	}

	return nil
}

// TimelineEntry is one event in the question's two-party feed.
type TimelineEntry struct {
	Kind       string    `json:"kind"`
	EmployeeID uint64    `json:"employee_id"`
	TargetID   uint64    `json:"target_id,omitempty"`
	Text       string    `json:"text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Timeline kinds
const (
	TimelineKindTagged            = "tagged"
	TimelineKindHRRemark          = "hr_remark"
	TimelineKindResponsibleRemark = "responsible_remark"
)

// Timeline joins tag-creation events, HR batch remarks, and responsible
// persons' own remarks into one feed ordered by creation time.
func (s *TagService) Timeline(questionID, formID uint64) ([]TimelineEntry, error) {
	if _, err := s.findQuestion(questionID, formID); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListByQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	hrRemarks, err := s.remarkRepo.ListByQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}

	responsibleRemarks, err := s.remarkRepo.ListResponsibleByQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responsible remarks: %w", err)
	}

	entries := make([]TimelineEntry, 0, len(tags)+len(hrRemarks)+len(responsibleRemarks))
	for _, tag := range tags {
		entries = append(entries, TimelineEntry{
			Kind:       TimelineKindTagged,
			EmployeeID: tag.AddedBy,
			TargetID:   tag.AddedWith,
			CreatedAt:  tag.CreatedAt,
		})
	}
	for _, remark := range hrRemarks {
		entries = append(entries, TimelineEntry{
			Kind:       TimelineKindHRRemark,
			EmployeeID: remark.EmployeeID,
			Text:       remark.Text,
			CreatedAt:  remark.CreatedAt,
		})
	}
	for _, remark := range responsibleRemarks {
		entries = append(entries, TimelineEntry{
			Kind:       TimelineKindResponsibleRemark,
			EmployeeID: remark.EmployeeID,
			Text:       remark.Text,
			CreatedAt:  remark.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	return entries, nil
}

// AssignedTag pairs a tag with the remark the assignee already submitted,
// if any.
type AssignedTag struct {
	Tag             models.Tag
	SubmittedRemark string
}

// ListAssignedToEmployee returns the tags where the employee is the
// responsible person, with any remark they already submitted.
func (s *TagService) ListAssignedToEmployee(employeeID uint64) ([]AssignedTag, error) {
	tags, err := s.tagRepo.ListByAssignee(employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	assigned := make([]AssignedTag, len(tags))
	for i, tag := range tags {
		assigned[i] = AssignedTag{Tag: tag}

		remarks, err := s.remarkRepo.ListResponsibleByQuestion(tag.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to list responsible remarks: %w", err)
		}
		for _, remark := range remarks {
			if remark.EmployeeID == employeeID {
				assigned[i].SubmittedRemark = remark.Text
				break
			}
		}
	}

	return assigned, nil
}

func (s *TagService) findActor(id uint64) (*models.Employee, error) {
	actor, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return actor, nil
}

func (s *TagService) findQuestion(questionID, formID uint64) (*models.FormField, error) {
	question, err := s.formRepo.FindField(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	if question.FormID != formID {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

func (s *TagService) ensureFormCompleted(formID uint64) error {
	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to find form: %w", err)
	}
	if form.State != models.FormStateCompleted {
		return ErrFormNotCompleted
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
