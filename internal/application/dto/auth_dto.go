package dto

import "time"

// TokenRequest credenciales para POST /api/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse par de tokens más los datos básicos del usuario.
type TokenResponse struct {
	Access    string  `json:"access"`
	Refresh   string  `json:"refresh"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CompanyID *string `json:"company_id"`
}

// RefreshRequest body para POST /api/token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse nuevo token de acceso.
type RefreshResponse struct {
	Access string `json:"access"`
}

// ProfileResponse salida de GET /api/profile.
type ProfileResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	RUT       string    `json:"rut"`
	Company   *string   `json:"company"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
