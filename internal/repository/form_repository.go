package repository

import (
	"github.com/hrworks/employee-voice-api/internal/database"
	"github.com/hrworks/employee-voice-api/internal/models"
	"gorm.io/gorm"
)

// GormFormRepository is a GORM implementation of FormRepository
type GormFormRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a new FormRepository
func NewFormRepository(db *gorm.DB) FormRepository {
	return &GormFormRepository{db: db}
}

// Create creates a form together with its fields in one transaction
func (r *GormFormRepository) Create(form *models.Form, fields []models.FormField) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(form).Error; err != nil {
			return err
		}

		for i := range fields {
			fields[i].FormID = form.ID
		}

		return tx.Create(&fields).Error
	})
}

// FindByID finds a form by ID with optional preloading
func (r *GormFormRepository) FindByID(id uint64, preload ...string) (*models.Form, error) {
	var form models.Form
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&form, id).Error; err != nil {
		return nil, err
	}

	return &form, nil
}

// FindByShareCode finds a form by its public share code
func (r *GormFormRepository) FindByShareCode(code string) (*models.Form, error) {
	var form models.Form
	if err := r.db.Where("share_code = ?", code).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// List retrieves forms with filtering and pagination
func (r *GormFormRepository) List(filter FormFilter) ([]models.Form, int64, error) {
	var forms []models.Form

	query := r.db.Model(&models.Form{})

	if filter.State != nil {
		query = query.Where("forms.state = ?", *filter.State)
	}
	if filter.CreatorID != nil {
		query = query.Where("forms.creator_id = ?", *filter.CreatorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("forms.created_at DESC")

	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	if err := listQuery.Preload("Creator").Find(&forms).Error; err != nil {
		return nil, 0, err
	}

	return forms, total, nil
}

// UpdateState moves a form to a new lifecycle state
func (r *GormFormRepository) UpdateState(id uint64, state models.FormState) error {
	return r.db.Model(&models.Form{}).Where("id = ?", id).
		Update("state", state).Error
}

// Delete marks a form deleted and soft deletes the row
func (r *GormFormRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Form{}).Where("id = ?", id).
			Update("state", models.FormStateDeleted).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Form{}, id).Error
	})
}

// ListFields returns a form's fields in display order
func (r *GormFormRepository) ListFields(formID uint64) ([]models.FormField, error) {
	var fields []models.FormField
	if err := r.db.Where("form_id = ?", formID).
		Order("field_order ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// FindField finds a single field (question) by ID
func (r *GormFormRepository) FindField(id uint64) (*models.FormField, error) {
	var field models.FormField
	if err := r.db.First(&field, id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// CountByState returns the number of forms per lifecycle state
func (r *GormFormRepository) CountByState() (map[models.FormState]int64, error) {
	type stateCount struct {
		State models.FormState
		Count int64
	}

	var rows []stateCount
	if err := r.db.Model(&models.Form{}).
		Select("state, COUNT(*) AS count").
		Group("state").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.FormState]int64, len(rows))
	for _, row := range rows {
		counts[row.State] = row.Count
	}

	return counts, nil
}
