package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/dto"
	apierrors "github.com/hrworks/employee-voice-api/internal/errors"
	"github.com/hrworks/employee-voice-api/internal/middleware"
	"github.com/hrworks/employee-voice-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates an employee and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		EmpNo    string `json:"emp_no" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.Login(services.LoginInput{
		EmpNo:    req.EmpNo,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyEmployeeID, employee.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentEmployee returns the authenticated employee's profile.
func (h *AuthHandler) GetCurrentEmployee(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employee, err := h.authService.GetProfile(employeeID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Register provisions a new employee record. Restricted to management
// designations; the service enforces the check.
func (h *AuthHandler) Register(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RegisterRequest struct {
		EmpNo           string `json:"emp_no" binding:"required"`
		FullName        string `json:"full_name" binding:"required"`
		Password        string `json:"password" binding:"required"`
		DesignationID   string `json:"designation_id" binding:"required"`
		DesignationName string `json:"designation_name"`
		DepartmentName  string `json:"department_name"`
		SectionName     string `json:"section_name"`
		CompanyID       uint64 `json:"company_id"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.RegisterEmployee(services.RegisterEmployeeInput{
		ActorID:         employeeID,
		EmpNo:           req.EmpNo,
		FullName:        req.FullName,
		Password:        req.Password,
		DesignationID:   req.DesignationID,
		DesignationName: req.DesignationName,
		DepartmentName:  req.DepartmentName,
		SectionName:     req.SectionName,
		CompanyID:       req.CompanyID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmpNoRequired),
		errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmpNoTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotManager):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
