package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hrworks/employee-voice-api/internal/constants"
	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/roles"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee number or password")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmpNoTaken         = errors.New("employee number already exists")
	ErrEmpNoRequired      = errors.New("employee number is required")
	ErrNameRequired       = errors.New("full name is required")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrNotManager         = errors.New("designation has no management access")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	employeeRepo repository.EmployeeRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo repository.EmployeeRepository) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	EmpNo    string
	Password string
}

// Login verifies credentials and returns the authenticated employee.
func (s *AuthService) Login(input LoginInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByEmpNo(strings.TrimSpace(input.EmpNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return employee, nil
}

// GetProfile retrieves an employee by ID.
func (s *AuthService) GetProfile(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	return employee, nil
}

// RegisterEmployeeInput holds the fields to provision an employee record.
type RegisterEmployeeInput struct {
	ActorID         uint64
	EmpNo           string
	FullName        string
	Password        string
	DesignationID   string
	DesignationName string
	DepartmentName  string
	SectionName     string
	CompanyID       uint64
}

// RegisterEmployee provisions an employee record. Restricted to actors with
// management access; employee master data normally flows in from HR.
func (s *AuthService) RegisterEmployee(input RegisterEmployeeInput) (*models.Employee, error) {
	actor, err := s.employeeRepo.FindByID(input.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find actor: %w", err)
	}
	if !roles.CanManage(actor.DesignationID) {
		return nil, ErrNotManager
	}

	empNo := strings.TrimSpace(input.EmpNo)
	if empNo == "" {
		return nil, ErrEmpNoRequired
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.employeeRepo.FindByEmpNo(empNo); err == nil {
		return nil, ErrEmpNoTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee number: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &models.Employee{
		EmpNo:           empNo,
		FullName:        strings.TrimSpace(input.FullName),
		PasswordHash:    string(hashedPassword),
		DesignationID:   input.DesignationID,
		DesignationName: input.DesignationName,
		DepartmentName:  input.DepartmentName,
		SectionName:     input.SectionName,
		CompanyID:       input.CompanyID,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}
