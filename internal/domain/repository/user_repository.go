package repository

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain/entity"
)

// UserFilter filtro de listado de usuarios.
type UserFilter struct {
	CompanyID string // vacío = todas las empresas
	// ClientsOnly excluye usuarios de la empresa proveedora y sin empresa.
	ClientsOnly bool
	Page        Page
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByRUT(ctx context.Context, rut string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	// CountClientUsers cuenta usuarios de empresas no proveedoras.
	CountClientUsers(ctx context.Context) (int, error)
}
