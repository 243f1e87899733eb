package repository

import (
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/utils"
)

// FormRepository defines the interface for form data access
type FormRepository interface {
	// Create creates a form together with its fields in one transaction
	Create(form *models.Form, fields []models.FormField) error

	// FindByID finds a form by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Form, error)

	// FindByShareCode finds a form by its public share code
	FindByShareCode(code string) (*models.Form, error)

	// List retrieves forms with filtering and pagination
	List(filter FormFilter) ([]models.Form, int64, error)

	// UpdateState moves a form to a new lifecycle state
	UpdateState(id uint64, state models.FormState) error

	// Delete marks a form deleted and soft deletes the row
	Delete(id uint64) error

	// ListFields returns a form's fields in display order
	ListFields(formID uint64) ([]models.FormField, error)

	// FindField finds a single field (question) by ID
	FindField(id uint64) (*models.FormField, error)

	// CountByState returns the number of forms per lifecycle state
	CountByState() (map[models.FormState]int64, error)
}

// FormFilter holds filtering options for listing forms
type FormFilter struct {
	State      *models.FormState
	CreatorID  *uint64
	Pagination utils.PaginationParams
}

// ResponseRepository defines the interface for response data access
type ResponseRepository interface {
	// CreateBatch stores one submission's answer rows atomically
	CreateBatch(responses []models.Response) error

	// HasResponded reports whether the employee already responded to the form
	HasResponded(formID, employeeID uint64) (bool, error)

	// ListByForm returns all answer rows for a form
	ListByForm(formID uint64) ([]models.Response, error)

	// ListByFormAndEmployee returns one employee's answer rows for a form
	ListByFormAndEmployee(formID, employeeID uint64) ([]models.Response, error)

	// CountRespondents counts distinct respondents for a form
	CountRespondents(formID uint64) (int64, error)

	// CountAll counts every stored answer row
	CountAll() (int64, error)

	// QuestionCounts returns per-question respondent counts for a form
	QuestionCounts(formID uint64) ([]QuestionCount, error)
}

// QuestionCount is a per-question respondent tally
type QuestionCount struct {
	QuestionID uint64 `json:"question_id"`
	Count      int64  `json:"count"`
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// CreateAll inserts tags, reviving soft-deleted rows on conflict
	CreateAll(tags []models.Tag) error

	// Find finds the tag for a (question, assignee) pair
	Find(questionID, employeeID uint64) (*models.Tag, error)

	// ListByQuestion returns all tags for a question
	ListByQuestion(questionID uint64) ([]models.Tag, error)

	// ListByAssignee returns all tags where the employee is responsible
	ListByAssignee(employeeID uint64) ([]models.Tag, error)

	// Remove soft deletes the tag for a (question, assignee) pair
	Remove(questionID, employeeID uint64) error

	// ApprovePending approves every pending tag for a question
	ApprovePending(questionID uint64) (int64, error)

	// DeletePending removes every pending tag for a question
	DeletePending(questionID uint64) (int64, error)

	// CountPending counts pending tags for a question
	CountPending(questionID uint64) (int64, error)
}

// RemarkRepository defines the interface for remark data access
type RemarkRepository interface {
	// Create stores an HR remark
	Create(remark *models.Remark) error

	// ListByForm returns form-level remarks, newest first
	ListByForm(formID uint64) ([]models.Remark, error)

	// ListByQuestion returns remarks recorded against a question's tag batches
	ListByQuestion(questionID uint64) ([]models.Remark, error)

	// CreateResponsible stores a responsible person's remark
	CreateResponsible(remark *models.ResponsibleRemark) error

	// ListResponsibleByQuestion returns responsible remarks for a question
	ListResponsibleByQuestion(questionID uint64) ([]models.ResponsibleRemark, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByEmpNo finds an employee by employee number
	FindByEmpNo(empNo string) (*models.Employee, error)

	// Search finds employees by name or employee number. When formID is set,
	// each row carries the candidate's response count for that form.
	Search(query string, formID *uint64, limit int) ([]EmployeeSearchRow, error)
}

// EmployeeSearchRow is an employee search hit with the per-form response
// count used to block re-submission.
type EmployeeSearchRow struct {
	models.Employee
	Responsed int64 `json:"responsed"`
}
