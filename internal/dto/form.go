package dto

import (
	"time"

	"github.com/hrworks/employee-voice-api/internal/models"
	"github.com/hrworks/employee-voice-api/internal/services"
	"github.com/hrworks/employee-voice-api/internal/utils"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID              uint64 `json:"id"`
	EmpNo           string `json:"emp_no"`
	FullName        string `json:"full_name"`
	DesignationID   string `json:"designation_id,omitempty"`
	DesignationName string `json:"designation_name,omitempty"`
	DepartmentName  string `json:"department_name,omitempty"`
	SectionName     string `json:"section_name,omitempty"`
	Image           string `json:"image,omitempty"`
}

// FormFieldDTO represents one question in API responses
type FormFieldDTO struct {
	ID               uint64           `json:"id"`
	FieldType        models.FieldType `json:"field_type"`
	Label            string           `json:"label"`
	Placeholder      string           `json:"placeholder,omitempty"`
	IsRequired       bool             `json:"is_required"`
	FieldOrder       int              `json:"field_order"`
	Options          string           `json:"options,omitempty"`
	RatingMax        int              `json:"rating_max,omitempty"`
	FileAllowedTypes string           `json:"file_allowed_types,omitempty"`
	FileMaxSize      int              `json:"file_max_size,omitempty"`
	FileMaxCount     int              `json:"file_max_count,omitempty"`
}

// FormDTO represents a form in API responses
type FormDTO struct {
	ID            uint64           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	State         models.FormState `json:"state"`
	StateName     string           `json:"state_name"`
	CreatorID     uint64           `json:"creator_id"`
	CompanyID     uint64           `json:"company_id,omitempty"`
	ShareCode     string           `json:"share_code,omitempty"`
	ResponseCount int64            `json:"response_count"`
	CreatedAt     time.Time        `json:"created_at"`
	Creator       *EmployeeDTO     `json:"creator,omitempty"`
	Fields        []FormFieldDTO   `json:"fields,omitempty"`
}

// FormListResponse represents a paginated list of forms
type FormListResponse struct {
	Forms      []FormDTO                `json:"forms"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// RemarkDTO represents an HR remark in API responses
type RemarkDTO struct {
	ID         uint64       `json:"id"`
	FormID     uint64       `json:"form_id"`
	QuestionID uint64       `json:"question_id,omitempty"`
	State      int          `json:"state"`
	Text       string       `json:"text"`
	CreatedAt  time.Time    `json:"created_at"`
	Author     *EmployeeDTO `json:"author,omitempty"`
}

// Conversion functions

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:              employee.ID,
		EmpNo:           employee.EmpNo,
		FullName:        employee.FullName,
		DesignationID:   employee.DesignationID,
		DesignationName: employee.DesignationName,
		DepartmentName:  employee.DepartmentName,
		SectionName:     employee.SectionName,
		Image:           employee.Image,
	}
}

// ToFormFieldDTO converts a FormField model to FormFieldDTO
func ToFormFieldDTO(field models.FormField) FormFieldDTO {
	return FormFieldDTO{
		ID:               field.ID,
		FieldType:        field.FieldType,
		Label:            field.Label,
		Placeholder:      field.Placeholder,
		IsRequired:       field.IsRequired,
		FieldOrder:       field.FieldOrder,
		Options:          field.Options,
		RatingMax:        field.RatingMax,
		FileAllowedTypes: field.FileAllowedTypes,
		FileMaxSize:      field.FileMaxSize,
		FileMaxCount:     field.FileMaxCount,
	}
}

// ToFormDTO converts a Form model to FormDTO
func ToFormDTO(form models.Form, responseCount int64) FormDTO {
	dto := FormDTO{
		ID:            form.ID,
		Title:         form.Title,
		Description:   form.Description,
		State:         form.State,
		StateName:     form.State.String(),
		CreatorID:     form.CreatorID,
		CompanyID:     form.CompanyID,
		ShareCode:     form.ShareCode,
		ResponseCount: responseCount,
		CreatedAt:     form.CreatedAt,
	}

	// Include creator if preloaded
	if form.Creator.ID != 0 {
		creator := ToEmployeeDTO(form.Creator)
		dto.Creator = &creator
	}

	// Include fields if preloaded
	if len(form.Fields) > 0 {
		dto.Fields = make([]FormFieldDTO, len(form.Fields))
		for i, field := range form.Fields {
			dto.Fields[i] = ToFormFieldDTO(field)
		}
	}

	return dto
}

// ToFormListResponse converts listed forms to FormListResponse
func ToFormListResponse(forms []services.FormWithCount, params utils.PaginationParams, total int64) FormListResponse {
	items := make([]FormDTO, len(forms))
	for i, form := range forms {
		items[i] = ToFormDTO(form.Form, form.ResponseCount)
	}

	return FormListResponse{
		Forms: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}

// ToRemarkDTO converts a Remark model to RemarkDTO
func ToRemarkDTO(remark models.Remark) RemarkDTO {
	dto := RemarkDTO{
		ID:         remark.ID,
		FormID:     remark.FormID,
		QuestionID: remark.QuestionID,
		State:      remark.State,
		Text:       remark.Text,
		CreatedAt:  remark.CreatedAt,
	}

	if remark.Author.ID != 0 {
		author := ToEmployeeDTO(remark.Author)
		dto.Author = &author
	}

	return dto
}
