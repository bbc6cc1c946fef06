package entity

import (
	"time"

	"github.com/temucosoft/retail-api/internal/domain/identity"
)

// User representa un usuario del sistema. CompanyID solo puede estar vacío para super_admin.
type User struct {
	ID           string
	CompanyID    string
	Username     string
	Email        string
	PasswordHash string // bcrypt
	RUT          string
	Role         identity.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal construye la identidad autenticada del usuario. provider indica si la empresa
// del usuario es la proveedora.
func (u *User) Principal(provider bool) identity.Principal {
	return identity.NewPrincipal(u.ID, u.Role, u.CompanyID, provider)
}
