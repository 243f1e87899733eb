package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/hrworks/employee-voice-api/internal/models"
)

func field(id uint64, fieldType models.FieldType, label string) models.FormField {
	return models.FormField{ID: id, FieldType: fieldType, Label: label}
}

func TestSummarize_RadioHistogram(t *testing.T) {
	fields := []models.FormField{field(1, models.FieldTypeRadio, "Satisfied?")}
	rows := []AnswerRow{
		{QuestionID: 1, Value: "Yes"},
		{QuestionID: 1, Value: "Yes"},
		{QuestionID: 1, Value: "No"},
	}

	summaries := Summarize(fields, rows)

	assert.Len(t, summaries, 1)
	assert.Equal(t, int64(3), summaries[0].Total)
	assert.Equal(t, []Bucket{{Name: "Yes", Value: 2}, {Name: "No", Value: 1}}, summaries[0].Buckets)
}

func TestSummarize_CheckboxCombinedBucket(t *testing.T) {
	fields := []models.FormField{field(7, models.FieldTypeCheckbox, "Facilities used")}
	rows := []AnswerRow{
		{QuestionID: 7, Value: `["A","C"]`},
		{QuestionID: 7, Value: `["C","A"]`},
		{QuestionID: 7, Value: `["A"]`},
	}

	summaries := Summarize(fields, rows)

	// ["A","C"] and ["C","A"] must collapse into the same combined bucket.
	assert.Equal(t, []Bucket{
		{Name: "A and C", Value: 2},
		{Name: "A", Value: 1},
	}, summaries[0].Buckets)
}

func TestSummarize_CheckboxMalformedValueCountsAsRaw(t *testing.T) {
	fields := []models.FormField{field(7, models.FieldTypeCheckbox, "Facilities used")}
	rows := []AnswerRow{{QuestionID: 7, Value: "not-json"}}

	summaries := Summarize(fields, rows)

	assert.Equal(t, []Bucket{{Name: "not-json", Value: 1}}, summaries[0].Buckets)
}

func TestSummarize_RatingMeanAndBuckets(t *testing.T) {
	fields := []models.FormField{field(3, models.FieldTypeRating, "Overall rating")}
	rows := []AnswerRow{
		{QuestionID: 3, Value: "5"},
		{QuestionID: 3, Value: "5"},
		{QuestionID: 3, Value: "2"},
	}

	summaries := Summarize(fields, rows)

	assert.InDelta(t, 4.0, summaries[0].MeanRating, 0.0001)
	assert.Equal(t, []Bucket{{Name: "5", Value: 2}, {Name: "2", Value: 1}}, summaries[0].Buckets)
}

func TestSummarize_FreeTextSamples(t *testing.T) {
	fields := []models.FormField{field(9, models.FieldTypeTextarea, "Comments")}
	rows := []AnswerRow{
		{QuestionID: 9, Value: "first"},
		{QuestionID: 9, Value: "second"},
		{QuestionID: 9, Value: "third"},
		{QuestionID: 9, Value: "fourth"},
	}

	summaries := Summarize(fields, rows)

	assert.Equal(t, int64(4), summaries[0].Total)
	assert.Equal(t, []string{"first", "second", "third"}, summaries[0].Samples)
	assert.Empty(t, summaries[0].Buckets)
}

func TestSummarize_FieldWithoutAnswers(t *testing.T) {
	fields := []models.FormField{field(1, models.FieldTypeSelect, "Department")}

	summaries := Summarize(fields, nil)

	assert.Len(t, summaries, 1)
	assert.Equal(t, int64(0), summaries[0].Total)
	assert.Empty(t, summaries[0].Buckets)
}
