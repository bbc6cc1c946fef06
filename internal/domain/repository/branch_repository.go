package repository

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain/entity"
)

// BranchFilter filtro de sucursales; CompanyID vacío = todas.
type BranchFilter struct {
	CompanyID string
	Page      Page
}

// BranchRepository puerto de persistencia para Branch.
type BranchRepository interface {
	Create(ctx context.Context, b *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context, f BranchFilter) ([]*entity.Branch, int, error)
	Update(ctx context.Context, b *entity.Branch) error
	Delete(ctx context.Context, id string) error
}
