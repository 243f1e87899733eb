package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/database"
	"github.com/hrworks/employee-voice-api/internal/dto"
	apierrors "github.com/hrworks/employee-voice-api/internal/errors"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"github.com/hrworks/employee-voice-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type formTestEnv struct {
	db              *gorm.DB
	formHandler     *FormHandler
	responseHandler *ResponseHandler
	formService     *services.FormService
	responseService *services.ResponseService
}

func setupFormTestEnv(t *testing.T) formTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Employee{},
		&models.Form{},
		&models.FormField{},
		&models.Response{},
		&models.Tag{},
		&models.Remark{},
		&models.ResponsibleRemark{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	formRepo := repository.NewFormRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	remarkRepo := repository.NewRemarkRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	formService := services.NewFormService(formRepo, responseRepo, remarkRepo, employeeRepo)
	responseService := services.NewResponseService(formRepo, responseRepo, employeeRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return formTestEnv{
		db:              db,
		formHandler:     NewFormHandler(formService, nil),
		responseHandler: NewResponseHandler(responseService, formService),
		formService:     formService,
		responseService: responseService,
	}
}

func formTestContext(method, url string, body []byte, employeeID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyEmployeeID, employeeID)

	return c, w
}

func createHandlerTestEmployee(t *testing.T, db *gorm.DB, empNo, designationID string) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		EmpNo:         empNo,
		FullName:      "Employee " + empNo,
		PasswordHash:  "hashed",
		DesignationID: designationID,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func createHandlerTestForm(t *testing.T, env formTestEnv, creatorID uint64) *models.Form {
	t.Helper()

	form, err := env.formService.CreateForm(services.CreateFormInput{
		Title:       "Workplace Pulse",
		Description: "Monthly workplace pulse survey",
		CreatorID:   creatorID,
		Fields: []services.FieldInput{
			{FieldType: models.FieldTypeText, Label: "Any concerns?", FieldOrder: 1, IsRequired: true},
		},
	})
	require.NoError(t, err)
	return form
}

func TestFormHandler_CreateForm(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)

	payload := map[string]any{
		"title":       "Workplace Pulse",
		"description": "Monthly survey",
		"fields": []map[string]any{
			{"field_type": "text", "label": "Any concerns?", "field_order": 1, "is_required": true},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := formTestContext(http.MethodPost, "/api/forms", body, creator.ID)
	env.formHandler.CreateForm(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.FormDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.FormStatePendingApproval, response.State)
	require.Len(t, response.Fields, 1)
}

func TestFormHandler_ListForms(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	createHandlerTestForm(t, env, creator.ID)
	createHandlerTestForm(t, env, creator.ID)

	c, w := formTestContext(http.MethodGet, "/api/forms?page=1&limit=1", nil, creator.ID)
	env.formHandler.ListForms(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.FormListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Forms, 1)
	require.Equal(t, 1, response.Pagination.Page)
	require.Equal(t, 1, response.Pagination.Limit)
	require.Equal(t, int64(2), response.Pagination.Total)
}

func TestFormHandler_ListFormsForbiddenWithoutDesignation(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	outsider := createHandlerTestEmployee(t, env.db, "E002", "")
	createHandlerTestForm(t, env, creator.ID)

	c, w := formTestContext(http.MethodGet, "/api/forms", nil, outsider.ID)
	env.formHandler.ListForms(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestFormHandler_QuickStatsForbiddenWithoutDesignation(t *testing.T) {
	env := setupFormTestEnv(t)
	outsider := createHandlerTestEmployee(t, env.db, "E001", "")

	c, w := formTestContext(http.MethodGet, "/api/dashboard/quick-stats", nil, outsider.ID)
	env.formHandler.QuickStats(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestFormHandler_ApproveForm(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	approver := createHandlerTestEmployee(t, env.db, "E002", roles.DesignationAdmin)
	form := createHandlerTestForm(t, env, creator.ID)

	body, err := json.Marshal(map[string]string{"remark": "Approved for this quarter"})
	require.NoError(t, err)

	c, w := formTestContext(http.MethodPost, fmt.Sprintf("/api/forms/%d/approve", form.ID), body, approver.ID)
	c.Set(constants.ContextKeyForm, *form)
	env.formHandler.ApproveForm(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.FormDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.FormStatePublished, response.State)
}

func TestFormHandler_ApproveFormShortRemark(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	approver := createHandlerTestEmployee(t, env.db, "E002", roles.DesignationAdmin)
	form := createHandlerTestForm(t, env, creator.ID)

	body, err := json.Marshal(map[string]string{"remark": "ok"})
	require.NoError(t, err)

	c, w := formTestContext(http.MethodPost, fmt.Sprintf("/api/forms/%d/approve", form.ID), body, approver.ID)
	c.Set(constants.ContextKeyForm, *form)
	env.formHandler.ApproveForm(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFormHandler_DeleteFormWithResponses(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	approver := createHandlerTestEmployee(t, env.db, "E002", roles.DesignationAdmin)
	respondent := createHandlerTestEmployee(t, env.db, "E003", "")
	form := createHandlerTestForm(t, env, creator.ID)

	_, err := env.formService.ApproveForm(form.ID, approver.ID, "Approved for this quarter")
	require.NoError(t, err)

	fields, err := env.formService.GetFields(form.ID)
	require.NoError(t, err)
	require.NoError(t, env.responseService.SubmitResponse(services.SubmitResponseInput{
		FormID:     form.ID,
		EmployeeID: respondent.ID,
		Answers:    []services.AnswerInput{{FieldID: fields[0].ID, Value: "All fine"}},
	}))

	c, w := formTestContext(http.MethodDelete, fmt.Sprintf("/api/forms/%d", form.ID), nil, approver.ID)
	c.Set(constants.ContextKeyForm, *form)
	env.formHandler.DeleteForm(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestResponseHandler_DuplicateSubmissionCode(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	approver := createHandlerTestEmployee(t, env.db, "E002", roles.DesignationAdmin)
	respondent := createHandlerTestEmployee(t, env.db, "E003", "")
	form := createHandlerTestForm(t, env, creator.ID)

	_, err := env.formService.ApproveForm(form.ID, approver.ID, "Approved for this quarter")
	require.NoError(t, err)

	fields, err := env.formService.GetFields(form.ID)
	require.NoError(t, err)

	payload := map[string]any{
		"employee_id": respondent.ID,
		"answers": []map[string]any{
			{"field_id": fields[0].ID, "value": "All fine"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	submit := func() *httptest.ResponseRecorder {
		c, w := formTestContext(http.MethodPost, fmt.Sprintf("/api/forms/%d/responses", form.ID), body, creator.ID)
		c.Set(constants.ContextKeyForm, *form)
		env.responseHandler.SubmitResponse(c)
		return w
	}

	require.Equal(t, http.StatusCreated, submit().Code)

	// The duplicate must surface as the distinct soft-warning code, not a
	// generic conflict.
	w := submit()
	require.Equal(t, http.StatusConflict, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeAlreadyResponded, apiErr.Code)
}

func TestFormHandler_GetPublicForm(t *testing.T) {
	env := setupFormTestEnv(t)
	creator := createHandlerTestEmployee(t, env.db, "E001", roles.DesignationWelfareOfficer)
	approver := createHandlerTestEmployee(t, env.db, "E002", roles.DesignationAdmin)
	form := createHandlerTestForm(t, env, creator.ID)

	// Unpublished forms stay hidden.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/public/forms/"+form.ShareCode, nil)
	c.Params = gin.Params{{Key: "code", Value: form.ShareCode}}
	env.formHandler.GetPublicForm(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, err := env.formService.ApproveForm(form.ID, approver.ID, "Approved for this quarter")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/public/forms/"+form.ShareCode, nil)
	c.Params = gin.Params{{Key: "code", Value: form.ShareCode}}
	env.formHandler.GetPublicForm(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.FormDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, form.ShareCode, response.ShareCode)
	require.Len(t, response.Fields, 1)
}
