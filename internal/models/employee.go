package models

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	EmpNo           string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"emp_no"`
	FullName        string         `gorm:"type:varchar(255);not null" json:"full_name"`
	PasswordHash    string         `gorm:"type:varchar(255);not null" json:"-"`
	DesignationID   string         `gorm:"type:varchar(20);not null" json:"designation_id"`
	DesignationName string         `gorm:"type:varchar(255)" json:"designation_name"`
	DepartmentName  string         `gorm:"type:varchar(255)" json:"department_name"`
	SectionName     string         `gorm:"type:varchar(255)" json:"section_name"`
	CompanyID       uint64         `json:"company_id"`
	// Image holds a base64-encoded JPEG, transmitted inline in JSON payloads.
	Image     string         `gorm:"type:text" json:"image,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedForms []Form `gorm:"foreignKey:CreatorID" json:"-"`
	Tags         []Tag  `gorm:"foreignKey:AddedWith" json:"-"`
}
