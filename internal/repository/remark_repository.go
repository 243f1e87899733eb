package repository

import (
	"github.com/hrworks/employee-voice-api/internal/models"
	"gorm.io/gorm"
)

// GormRemarkRepository is a GORM implementation of RemarkRepository
type GormRemarkRepository struct {
	db *gorm.DB
}

// NewRemarkRepository creates a new RemarkRepository
func NewRemarkRepository(db *gorm.DB) RemarkRepository {
	return &GormRemarkRepository{db: db}
}

// Create stores an HR remark
func (r *GormRemarkRepository) Create(remark *models.Remark) error {
	return r.db.Create(remark).Error
}

// ListByForm returns form-level remarks, newest first
func (r *GormRemarkRepository) ListByForm(formID uint64) ([]models.Remark, error) {
	var remarks []models.Remark
	if err := r.db.Where("form_id = ? AND question_id = 0", formID).
		Preload("Author").
		Order("created_at DESC").
		Find(&remarks).Error; err != nil {
		return nil, err
	}
	return remarks, nil
}

// ListByQuestion returns remarks recorded against a question's tag batches
func (r *GormRemarkRepository) ListByQuestion(questionID uint64) ([]models.Remark, error) {
	var remarks []models.Remark
	if err := r.db.Where("question_id = ?", questionID).
		Preload("Author").
		Order("created_at ASC").
		Find(&remarks).Error; err != nil {
		return nil, err
	}
	return remarks, nil
}

// CreateResponsible stores a responsible person's remark
func (r *GormRemarkRepository) CreateResponsible(remark *models.ResponsibleRemark) error {
	return r.db.Create(remark).Error
}

// ListResponsibleByQuestion returns responsible remarks for a question
func (r *GormRemarkRepository) ListResponsibleByQuestion(questionID uint64) ([]models.ResponsibleRemark, error) {
	var remarks []models.ResponsibleRemark
	if err := r.db.Where("question_id = ?", questionID).
		Preload("Author").
		Order("created_at ASC").
		Find(&remarks).Error; err != nil {
		return nil, err
	}
	return remarks, nil
}
