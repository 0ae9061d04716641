package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmployeeModel struct {
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;primaryKey" json:"employee_id"`

	EmployeeName        string `gorm:"column:employee_name;type:varchar(120);not null" json:"employee_name"`
	EmployeeEmail       string `gorm:"column:employee_email;type:varchar(120);not null;uniqueIndex" json:"employee_email"`
	EmployeeDesignation string `gorm:"column:employee_designation;type:varchar(80)" json:"employee_designation"`
	EmployeeDepartment  string `gorm:"column:employee_department;type:varchar(80)" json:"employee_department"`

	// Monthly base salary; the payment lifecycle defaults to this when
	// no explicit amount is submitted.
	EmployeeSalary float64 `gorm:"column:employee_salary;type:numeric(14,2);not null;default:0" json:"employee_salary"`

	EmployeeSkills pq.StringArray `gorm:"column:employee_skills;type:text[]" json:"employee_skills,omitempty"`
	EmployeeMeta   datatypes.JSON `gorm:"column:employee_meta;type:jsonb" json:"employee_meta,omitempty"`

	EmployeePhotoURL *string `gorm:"column:employee_photo_url;type:text" json:"employee_photo_url,omitempty"`

	// Portal account acting for this employee, when one exists.
	EmployeeUserID *uuid.UUID `gorm:"column:employee_user_id;type:uuid;index" json:"employee_user_id,omitempty"`

	EmployeeCreatedAt time.Time      `gorm:"column:employee_created_at;autoCreateTime" json:"employee_created_at"`
	EmployeeUpdatedAt time.Time      `gorm:"column:employee_updated_at;autoUpdateTime" json:"employee_updated_at"`
	EmployeeDeletedAt gorm.DeletedAt `gorm:"column:employee_deleted_at;index" json:"-"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.EmployeeID == uuid.Nil {
		m.EmployeeID = uuid.New()
	}
	return nil
}
