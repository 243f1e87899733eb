package repository

import (
	"github.com/hrworks/employee-voice-api/internal/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmpNo finds an employee by employee number
func (r *GormEmployeeRepository) FindByEmpNo(empNo string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("emp_no = ?", empNo).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// Search finds employees by name or employee number. When formID is set,
// each row carries the candidate's response count for that form so callers
// can block re-submission.
func (r *GormEmployeeRepository) Search(query string, formID *uint64, limit int) ([]EmployeeSearchRow, error) {
	var rows []EmployeeSearchRow

	pattern := "%" + query + "%"
	q := r.db.Model(&models.Employee{}).
		Where("full_name LIKE ? OR emp_no LIKE ?", pattern, pattern).
		Order("full_name ASC").
		Limit(limit)

	if formID != nil {
		q = q.Select(
			"employees.*, "+
				"(SELECT COUNT(DISTINCT responses.field_id) FROM responses "+
				"WHERE responses.employee_id = employees.id AND responses.form_id = ?) AS responsed",
			*formID,
		)
	} else {
		q = q.Select("employees.*, 0 AS responsed")
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
