package repository

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain/entity"
)

// CompanyFilter filtro de listado de empresas.
type CompanyFilter struct {
	IncludeProvider bool
	Page            Page
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// Los Get devuelven (nil, nil) cuando la fila no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	GetByRUT(ctx context.Context, rut string) (*entity.Company, error)
	GetProvider(ctx context.Context) (*entity.Company, error)
	List(ctx context.Context, f CompanyFilter) ([]*entity.Company, int, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id string) error
	// CountClients cuenta las empresas no proveedoras.
	CountClients(ctx context.Context) (int, error)
}

// SubscriptionRepository puerto de persistencia para Subscription (una por empresa).
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error)
	List(ctx context.Context, p Page) ([]*entity.Subscription, int, error)
	Update(ctx context.Context, s *entity.Subscription) error
	Delete(ctx context.Context, id string) error
}
