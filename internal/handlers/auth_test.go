package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hrworks/employee-voice-api/internal/dto"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"github.com/hrworks/employee-voice-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db      *gorm.DB
	handler *AuthHandler
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Employee{}))

	employeeRepo := repository.NewEmployeeRepository(db)
	authService := services.NewAuthService(employeeRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		handler: NewAuthHandler(authService),
	}
}

func TestAuthHandler_GetCurrentEmployee(t *testing.T) {
	env := setupAuthTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	employee := &models.Employee{
		EmpNo:         "E001",
		FullName:      "Nimal Silva",
		PasswordHash:  string(hash),
		DesignationID: roles.DesignationWelfareOfficer,
	}
	require.NoError(t, env.db.Create(employee).Error)

	c, w := formTestContext(http.MethodGet, "/api/auth/me", nil, employee.ID)
	env.handler.GetCurrentEmployee(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.EmployeeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "E001", response.EmpNo)
	require.Equal(t, "Nimal Silva", response.FullName)
}

func TestAuthHandler_RegisterRequiresManagementDesignation(t *testing.T) {
	env := setupAuthTestEnv(t)

	outsider := &models.Employee{
		EmpNo:         "E001",
		FullName:      "No Access",
		PasswordHash:  "hashed",
		DesignationID: "999",
	}
	require.NoError(t, env.db.Create(outsider).Error)

	payload := map[string]any{
		"emp_no":         "E002",
		"full_name":      "New Hire",
		"password":       "password123",
		"designation_id": roles.DesignationWelfareOfficer,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := formTestContext(http.MethodPost, "/api/auth/register", body, outsider.ID)
	env.handler.Register(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	admin := &models.Employee{
		EmpNo:         "E001",
		FullName:      "Admin",
		PasswordHash:  "hashed",
		DesignationID: roles.DesignationAdmin,
	}
	require.NoError(t, env.db.Create(admin).Error)

	payload := map[string]any{
		"emp_no":         "E002",
		"full_name":      "New Hire",
		"password":       "password123",
		"designation_id": roles.DesignationWelfareOfficer,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := formTestContext(http.MethodPost, "/api/auth/register", body, admin.ID)
	env.handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.EmployeeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "E002", response.EmpNo)

	// Passwords are stored hashed.
	var stored models.Employee
	require.NoError(t, env.db.Where("emp_no = ?", "E002").First(&stored).Error)
	require.NotEqual(t, "password123", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}
