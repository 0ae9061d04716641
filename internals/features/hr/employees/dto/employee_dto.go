// internals/features/hr/employees/dto/employee_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	m "workdesk_backend/internals/features/hr/employees/model"
)

/* =============== REQUESTS =============== */

type CreateEmployeeRequest struct {
	EmployeeName        string         `json:"employee_name"        validate:"required,min=2,max=120"`
	EmployeeEmail       string         `json:"employee_email"       validate:"required,email,max=120"`
	EmployeeDesignation string         `json:"employee_designation" validate:"omitempty,max=80"`
	EmployeeDepartment  string         `json:"employee_department"  validate:"omitempty,max=80"`
	EmployeeSalary      float64        `json:"employee_salary"      validate:"omitempty,gte=0"`
	EmployeeSkills      []string       `json:"employee_skills"      validate:"omitempty,dive,max=60"`
	EmployeeMeta        datatypes.JSON `json:"employee_meta"        validate:"omitempty"`
	EmployeeUserID      *uuid.UUID     `json:"employee_user_id"     validate:"omitempty"`
}

func (r CreateEmployeeRequest) ToModel() *m.EmployeeModel {
	return &m.EmployeeModel{
		EmployeeName:        r.EmployeeName,
		EmployeeEmail:       r.EmployeeEmail,
		EmployeeDesignation: r.EmployeeDesignation,
		EmployeeDepartment:  r.EmployeeDepartment,
		EmployeeSalary:      r.EmployeeSalary,
		EmployeeSkills:      pq.StringArray(r.EmployeeSkills),
		EmployeeMeta:        r.EmployeeMeta,
		EmployeeUserID:      r.EmployeeUserID,
	}
}

// Update (partial)
type UpdateEmployeeRequest struct {
	EmployeeName        *string        `json:"employee_name"        validate:"omitempty,min=2,max=120"`
	EmployeeEmail       *string        `json:"employee_email"       validate:"omitempty,email,max=120"`
	EmployeeDesignation *string        `json:"employee_designation" validate:"omitempty,max=80"`
	EmployeeDepartment  *string        `json:"employee_department"  validate:"omitempty,max=80"`
	EmployeeSalary      *float64       `json:"employee_salary"      validate:"omitempty,gte=0"`
	EmployeeSkills      []string       `json:"employee_skills"      validate:"omitempty,dive,max=60"`
	EmployeeMeta        datatypes.JSON `json:"employee_meta"        validate:"omitempty"`
	EmployeeUserID      *uuid.UUID     `json:"employee_user_id"     validate:"omitempty"`
}

// List / query params
type ListEmployeeQuery struct {
	Department *string `query:"department" validate:"omitempty"`
	Q          *string `query:"q"          validate:"omitempty"`
}

/* =============== RESPONSES =============== */

type EmployeeResponse struct {
	EmployeeID          uuid.UUID      `json:"employee_id"`
	EmployeeName        string         `json:"employee_name"`
	EmployeeEmail       string         `json:"employee_email"`
	EmployeeDesignation string         `json:"employee_designation"`
	EmployeeDepartment  string         `json:"employee_department"`
	EmployeeSalary      float64        `json:"employee_salary"`
	EmployeeSkills      []string       `json:"employee_skills,omitempty"`
	EmployeeMeta        datatypes.JSON `json:"employee_meta,omitempty"`
	EmployeePhotoURL    *string        `json:"employee_photo_url,omitempty"`
	EmployeeUserID      *uuid.UUID     `json:"employee_user_id,omitempty"`
	EmployeeCreatedAt   time.Time      `json:"employee_created_at"`
	EmployeeUpdatedAt   time.Time      `json:"employee_updated_at"`
}

func FromModel(mo m.EmployeeModel) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:          mo.EmployeeID,
		EmployeeName:        mo.EmployeeName,
		EmployeeEmail:       mo.EmployeeEmail,
		EmployeeDesignation: mo.EmployeeDesignation,
		EmployeeDepartment:  mo.EmployeeDepartment,
		EmployeeSalary:      mo.EmployeeSalary,
		EmployeeSkills:      []string(mo.EmployeeSkills),
		EmployeeMeta:        mo.EmployeeMeta,
		EmployeePhotoURL:    mo.EmployeePhotoURL,
		EmployeeUserID:      mo.EmployeeUserID,
		EmployeeCreatedAt:   mo.EmployeeCreatedAt,
		EmployeeUpdatedAt:   mo.EmployeeUpdatedAt,
	}
}

func FromModels(list []m.EmployeeModel) []EmployeeResponse {
	out := make([]EmployeeResponse, len(list))
	for i, mo := range list {
		out[i] = FromModel(mo)
	}
	return out
}
