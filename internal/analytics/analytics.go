// Package analytics computes the read-only response projection charted by the
// dashboard. The projection is pure: it derives entirely from the field
// definitions and answer rows passed in.
package analytics

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/models"
)

// Bucket is one histogram entry.
type Bucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// FieldSummary is the projection for a single question.
type FieldSummary struct {
	QuestionID uint64           `json:"question_id"`
	Label      string           `json:"label"`
	FieldType  models.FieldType `json:"field_type"`
	Total      int64            `json:"total"`

	// Buckets is populated for categorical fields (select/radio/checkbox/
	// rating). Checkbox answers collapse into one combined bucket per
	// selection set.
	Buckets []Bucket `json:"buckets,omitempty"`

	// Samples holds the first few raw answers for free-text fields.
	Samples []string `json:"samples,omitempty"`

	// Rating statistics, set for rating fields only.
	MeanRating float64 `json:"mean_rating,omitempty"`
}

// AnswerRow is one (question, respondent) answer as stored.
type AnswerRow struct {
	QuestionID uint64
	Value      string
}

// Summarize groups answer rows by question and builds the per-field
// projection. Fields with no answers yield a summary with Total zero.
func Summarize(fields []models.FormField, rows []AnswerRow) []FieldSummary {
	byQuestion := make(map[uint64][]string, len(fields))
	for _, row := range rows {
		byQuestion[row.QuestionID] = append(byQuestion[row.QuestionID], row.Value)
	}

	summaries := make([]FieldSummary, 0, len(fields))
	for _, field := range fields {
		values := byQuestion[field.ID]
		summary := FieldSummary{
			QuestionID: field.ID,
			Label:      field.Label,
			FieldType:  field.FieldType,
			Total:      int64(len(values)),
		}

		if field.FieldType.Categorical() {
			summary.Buckets = histogram(field.FieldType, values)
			if field.FieldType == models.FieldTypeRating {
				summary.MeanRating = meanRating(values)
			}
		} else {
			summary.Samples = sample(values, constants.FreeTextSampleSize)
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// histogram tallies answers into named buckets. A checkbox answer set counts
// as a single combined category: the selected options are sorted and joined,
// so "user chose exactly these options together" is distinguished from
// per-option tallies, and ["C","A"] lands in the same bucket as ["A","C"].
func histogram(fieldType models.FieldType, values []string) []Bucket {
	counts := make(map[string]int64)

	for _, value := range values {
		if value == "" {
			continue
		}
		counts[bucketKey(fieldType, value)]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, Bucket{Name: name, Value: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Name < buckets[j].Name
	})

	return buckets
}

func bucketKey(fieldType models.FieldType, value string) string {
	if fieldType != models.FieldTypeCheckbox {
		return value
	}

	var selected []string
	if err := json.Unmarshal([]byte(value), &selected); err != nil {
		// Not a JSON array, count the raw value as a single item.
		return value
	}

	sort.Strings(selected)
	key := ""
	for i, option := range selected {
		if i > 0 {
			key += " and "
		}
		key += option
	}
	return key
}

func meanRating(values []string) float64 {
	var sum float64
	var n int
	for _, value := range values {
		rating, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		sum += rating
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func sample(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
