package dto

import (
	"github.com/google/uuid"

	userModel "workdesk_backend/internals/features/users/auth/model"
)

type RegisterRequest struct {
	UserName   string     `json:"user_name" validate:"required,min=3,max=80"`
	Email      string     `json:"email" validate:"required,email,max=120"`
	Password   string     `json:"password" validate:"required,min=8,max=72"`
	EmployeeID *uuid.UUID `json:"employee_id" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UserResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	UserName    string     `json:"user_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	EmployeeID  *uuid.UUID `json:"employee_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	GoogleLogin bool       `json:"google_login"`
}

func UserFromModel(m *userModel.UserModel) UserResponse {
	return UserResponse{
		UserID:      m.UserID,
		UserName:    m.UserName,
		Email:       m.UserEmail,
		Role:        m.UserRole,
		EmployeeID:  m.UserEmployeeID,
		IsActive:    m.UserIsActive,
		GoogleLogin: m.UserGoogleID != nil,
	}
}
