package dto

import "time"

// CreateAccountRequest registro de un usuario (cuentas cliente).
type CreateAccountRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
	RUT             string `json:"rut"`
	CompanyID       string `json:"company"`
}

// UpdateAccountRequest actualización parcial de un usuario.
// CompanyID solo lo puede cambiar un super_admin.
type UpdateAccountRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Role            *string `json:"role"`
	RUT             *string `json:"rut"`
	CompanyID       *string `json:"company"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"password_confirm"`
	IsActive        *bool   `json:"is_active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	RUT         string    `json:"rut"`
	CompanyID   *string   `json:"company"`
	CompanyName *string   `json:"company_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
