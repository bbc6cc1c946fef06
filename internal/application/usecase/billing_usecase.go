package usecase

import (
	"context"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// BillingUseCase resumen de facturación de la plataforma.
type BillingUseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	sales     repository.SaleRepository
}

func NewBillingUseCase(companies repository.CompanyRepository, users repository.UserRepository, sales repository.SaleRepository) *BillingUseCase {
	return &BillingUseCase{companies: companies, users: users, sales: sales}
}

// Overview cuenta empresas cliente, sus usuarios y todas las ventas.
func (uc *BillingUseCase) Overview(ctx context.Context) (*dto.BillingOverviewResponse, error) {
	companies, err := uc.companies.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.users.CountClientUsers(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.BillingOverviewResponse{
		TotalClientCompanies: companies,
		TotalUsers:           users,
		TotalSales:           sales,
		BillingInfo:          dto.BillingInfo{Status: "active", Plan: "enterprise", Currency: "CLP"},
	}, nil
}
