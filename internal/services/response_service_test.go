package services

import (
	"fmt"
	"testing"

	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"github.com/stretchr/testify/require"
)

func setupPublishedForm(t *testing.T, env serviceTestEnv, fields ...FieldInput) (*models.Form, *models.Employee) {
	t.Helper()

	creator := createTestEmployee(t, env.db, "C001", roles.DesignationWelfareOfficer)
	approver := createTestEmployee(t, env.db, "C002", roles.DesignationAdmin)
	form := createTestForm(t, env, creator.ID, fields...)
	publishTestForm(t, env, form.ID, approver.ID)
	return form, approver
}

func TestResponseService_SubmitResponse(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "  Fine overall  "}},
	})
	require.NoError(t, err)

	responses, err := env.responseService.GetEmployeeResponse(form.ID, respondent.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, "Fine overall", responses[0].Value)
}

func TestResponseService_DuplicateSubmissionRefused(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env)
	respondent := createTestEmployee(t, env.db, "E010", "")

	submit := func() error {
		return env.responseService.SubmitResponse(SubmitResponseInput{
			FormID:     form.ID,
			EmployeeID: respondent.ID,
			Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "Fine"}},
		})
	}

	require.NoError(t, submit())
	require.ErrorIs(t, submit(), ErrAlreadyResponded)
}

func TestResponseService_SubmitRequiresPublishedForm(t *testing.T) {
	env := setupServiceTestEnv(t)
	creator := createTestEmployee(t, env.db, "C001", roles.DesignationWelfareOfficer)
	respondent := createTestEmployee(t, env.db, "E010", "")
	form := createTestForm(t, env, creator.ID)

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "Fine"}},
	})
	require.ErrorIs(t, err, ErrFormNotPublished)
}

func TestResponseService_RequiredFieldMustBeAnswered(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeText, Label: "Q1", FieldOrder: 1, IsRequired: true},
		FieldInput{FieldType: models.FieldTypeText, Label: "Q2", FieldOrder: 2},
	)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[1].ID, Value: "optional answer"}},
	})
	require.ErrorIs(t, err, ErrRequiredFieldEmpty)
}

func TestResponseService_UnknownFieldRefused(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: 9999, Value: "Fine"}},
	})
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestResponseService_EmailValidation(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeEmail, Label: "Contact", FieldOrder: 1, IsRequired: true},
	)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "not-an-email"}},
	})
	require.ErrorIs(t, err, ErrInvalidEmail)

	err = env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "someone@example.com"}},
	})
	require.NoError(t, err)
}

func TestResponseService_RatingRange(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeRating, Label: "Satisfaction", FieldOrder: 1, IsRequired: true, RatingMax: 5},
	)
	respondent := createTestEmployee(t, env.db, "E010", "")

	for _, bad := range []string{"0", "6", "abc"} {
		err := env.responseService.SubmitResponse(SubmitResponseInput{
			FormID:     form.ID,
			EmployeeID: respondent.ID,
			Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: bad}},
		})
		require.ErrorIs(t, err, ErrInvalidRating, "value %q should be refused", bad)
	}

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "4"}},
	})
	require.NoError(t, err)
}

func TestResponseService_CheckboxStoredAsJSONArray(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeCheckbox, Label: "Concerns", FieldOrder: 1, IsRequired: true, Options: `["Pay","Hours","Safety"]`},
	)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Values: []string{"Pay", "Safety"}}},
	})
	require.NoError(t, err)

	responses, err := env.responseService.GetEmployeeResponse(form.ID, respondent.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.JSONEq(t, `["Pay","Safety"]`, responses[0].Value)
}

func TestResponseService_FileFieldAnswerRefused(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeText, Label: "Q1", FieldOrder: 1},
		FieldInput{FieldType: models.FieldTypeFile, Label: "Evidence", FieldOrder: 2},
	)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers: []AnswerInput{
			{FieldID: form.Fields[0].ID, Value: "Fine"},
			{FieldID: form.Fields[1].ID, Value: "upload.pdf"},
		},
	})
	require.ErrorIs(t, err, ErrFileFieldAnswered)
}

func TestResponseService_Analytics(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeRadio, Label: "Shift", FieldOrder: 1, IsRequired: true, Options: `["Day","Night"]`},
	)

	for i, answer := range []string{"Day", "Day", "Night"} {
		respondent := createTestEmployee(t, env.db, fmt.Sprintf("R%d", i+1), "")
		err := env.responseService.SubmitResponse(SubmitResponseInput{
			FormID:     form.ID,
			EmployeeID: respondent.ID,
			Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: answer}},
		})
		require.NoError(t, err)
	}

	summaries, err := env.responseService.Analytics(form.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, int64(3), summaries[0].Total)
	require.Equal(t, "Day", summaries[0].Buckets[0].Name)
	require.Equal(t, int64(2), summaries[0].Buckets[0].Value)
}

func TestResponseService_QuestionDetails(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env,
		FieldInput{FieldType: models.FieldTypeText, Label: "Q1", FieldOrder: 1, IsRequired: true},
		FieldInput{FieldType: models.FieldTypeText, Label: "Q2", FieldOrder: 2},
	)
	respondent := createTestEmployee(t, env.db, "E010", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "Fine"}},
	})
	require.NoError(t, err)

	details, err := env.responseService.QuestionDetails(form.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, int64(1), details[0].Count)
	require.Equal(t, int64(0), details[1].Count)
}

func TestResponseService_SearchEmployees(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, approver := setupPublishedForm(t, env)
	alice := createTestEmployee(t, env.db, "E010", "")
	alice.FullName = "Alice Perera"
	require.NoError(t, env.db.Save(alice).Error)
	createTestEmployee(t, env.db, "E011", "")

	err := env.responseService.SubmitResponse(SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: alice.ID,
		Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "Fine"}},
	})
	require.NoError(t, err)

	rows, err := env.responseService.SearchEmployees(approver.ID, "Alice", &form.ID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, alice.ID, rows[0].ID)
	require.Equal(t, int64(1), rows[0].Responsed)

	// A blank query returns nothing rather than the whole directory.
	rows, err = env.responseService.SearchEmployees(approver.ID, "   ", nil, 10)
	require.NoError(t, err)
	require.Empty(t, rows)

	// The directory is a management surface; plain employees cannot search it.
	_, err = env.responseService.SearchEmployees(alice.ID, "Alice", nil, 10)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

// blindResponseRepo never sees prior submissions, so a duplicate reaches the
// unique index the way a concurrent submission would.
type blindResponseRepo struct {
	repository.ResponseRepository
}

func (r blindResponseRepo) HasResponded(formID, employeeID uint64) (bool, error) {
	return false, nil
}

func TestResponseService_ConcurrentDuplicateMapsToAlreadyResponded(t *testing.T) {
	env := setupServiceTestEnv(t)
	form, _ := setupPublishedForm(t, env)
	respondent := createTestEmployee(t, env.db, "E010", "")

	formRepo := repository.NewFormRepository(env.db)
	responseRepo := blindResponseRepo{repository.NewResponseRepository(env.db)}
	employeeRepo := repository.NewEmployeeRepository(env.db)
	service := NewResponseService(formRepo, responseRepo, employeeRepo)

	submit := func() error {
		return service.SubmitResponse(SubmitResponseInput{
			FormID:     form.ID,
			EmployeeID: respondent.ID,
			Answers:    []AnswerInput{{FieldID: form.Fields[0].ID, Value: "Fine"}},
		})
	}

	require.NoError(t, submit())
	require.ErrorIs(t, submit(), ErrAlreadyResponded)
}
