package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database. The
// existence check reads pg_indexes, so this runs on Postgres only; MySQL
// deployments rely on the indexes declared in the model tags.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Form indexes for dashboard filtering and sorting
		{"forms", "idx_forms_state", "state"},
		{"forms", "idx_forms_creator_id", "creator_id"},
		{"forms", "idx_forms_created_at", "created_at"},

		// Response lookups by form and respondent
		{"responses", "idx_responses_form_id", "form_id"},
		{"responses", "idx_responses_employee_id", "employee_id"},

		// Tag lookups by question and assignee
		{"tags", "idx_tags_question_id", "question_id"},
		{"tags", "idx_tags_added_with", "added_with"},
		{"tags", "idx_tags_state", "state"},

		// Employee search
		{"employees", "idx_employees_full_name", "full_name"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
