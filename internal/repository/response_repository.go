package repository

import (
	"github.com/hrworks/employee-voice-api/internal/models"
	"gorm.io/gorm"
)

// GormResponseRepository is a GORM implementation of ResponseRepository
type GormResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository creates a new ResponseRepository
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &GormResponseRepository{db: db}
}

// CreateBatch stores one submission's answer rows atomically
func (r *GormResponseRepository) CreateBatch(responses []models.Response) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&responses).Error
	})
}

// HasResponded reports whether the employee already responded to the form
func (r *GormResponseRepository) HasResponded(formID, employeeID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Response{}).
		Where("form_id = ? AND employee_id = ?", formID, employeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByForm returns all answer rows for a form
func (r *GormResponseRepository) ListByForm(formID uint64) ([]models.Response, error) {
	var responses []models.Response
	if err := r.db.Where("form_id = ?", formID).
		Preload("Field").
		Preload("Employee").
		Order("created_at ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// ListByFormAndEmployee returns one employee's answer rows for a form
func (r *GormResponseRepository) ListByFormAndEmployee(formID, employeeID uint64) ([]models.Response, error) {
	var responses []models.Response
	if err := r.db.Where("form_id = ? AND employee_id = ?", formID, employeeID).
		Preload("Field").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// CountRespondents counts distinct respondents for a form
func (r *GormResponseRepository) CountRespondents(formID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Response{}).
		Where("form_id = ?", formID).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}

// CountAll counts every stored answer row
func (r *GormResponseRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Response{}).Count(&count).Error
	return count, err
}

// QuestionCounts returns per-question respondent counts for a form
func (r *GormResponseRepository) QuestionCounts(formID uint64) ([]QuestionCount, error) {
	var counts []QuestionCount
	err := r.db.Model(&models.Response{}).
		Select("field_id AS question_id, COUNT(DISTINCT employee_id) AS count").
		Where("form_id = ?", formID).
		Group("field_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
