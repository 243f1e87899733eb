package repository

import (
	"github.com/hrworks/employee-voice-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// CreateAll inserts tags, reviving soft-deleted rows on conflict so that
// re-tagging a previously removed assignee never duplicates the record
func (r *GormTagRepository) CreateAll(tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "question_id"}, {Name: "added_with"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&tags).Error
}

// Find finds the tag for a (question, assignee) pair
func (r *GormTagRepository) Find(questionID, employeeID uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("question_id = ? AND added_with = ?", questionID, employeeID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListByQuestion returns all tags for a question
func (r *GormTagRepository) ListByQuestion(questionID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("question_id = ?", questionID).
		Preload("Assignee").
		Preload("Tagger").
		Order("created_at ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListByAssignee returns all tags where the employee is responsible
func (r *GormTagRepository) ListByAssignee(employeeID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("added_with = ?", employeeID).
		Preload("Question").
		Order("created_at DESC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Remove soft deletes the tag for a (question, assignee) pair
func (r *GormTagRepository) Remove(questionID, employeeID uint64) error {
	return r.db.Where("question_id = ? AND added_with = ?", questionID, employeeID).
		Delete(&models.Tag{}).Error
}

// ApprovePending approves every pending tag for a question
func (r *GormTagRepository) ApprovePending(questionID uint64) (int64, error) {
	result := r.db.Model(&models.Tag{}).
		Where("question_id = ? AND state <> ?", questionID, models.TagStateApproved).
		Update("state", models.TagStateApproved)
	return result.RowsAffected, result.Error
}

// DeletePending removes every pending tag for a question
func (r *GormTagRepository) DeletePending(questionID uint64) (int64, error) {
	result := r.db.Where("question_id = ? AND state <> ?", questionID, models.TagStateApproved).
		Delete(&models.Tag{})
	return result.RowsAffected, result.Error
}

// CountPending counts pending tags for a question
func (r *GormTagRepository) CountPending(questionID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).
		Where("question_id = ? AND state <> ?", questionID, models.TagStateApproved).
		Count(&count).Error
	return count, err
}
