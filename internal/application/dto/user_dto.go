package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=100"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"omitempty,max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Role         string `json:"role" validate:"required,oneof=admin warehouse technical_support"`
	DepartmentID string `json:"department_id" validate:"required,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	DepartmentID string    `json:"department_id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserListResponse lista de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"access_token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// MeResponse identidad resuelta por el middleware.
type MeResponse struct {
	UserID       string `json:"user_id"`
	CompanyID    string `json:"company_id"`
	DepartmentID string `json:"department_id"`
	Role         string `json:"role"`
}
