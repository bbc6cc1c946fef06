package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/pkg/rut"
)

// BootstrapConfig datos de la empresa proveedora y de su primer super_admin.
type BootstrapConfig struct {
	ProviderName  string
	ProviderRUT   string
	ProviderPhone string
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	AdminRUT      string
}

// Bootstrap asegura que exista la empresa proveedora y su super_admin. Es idempotente:
// no toca nada que ya exista.
func Bootstrap(
	ctx context.Context,
	cfg BootstrapConfig,
	companies repository.CompanyRepository,
	accounts *AccountUseCase,
	users repository.UserRepository,
	log zerolog.Logger,
) error {
	provider, err := companies.GetProvider(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: buscar proveedora: %w", err)
	}
	if provider == nil {
		if cfg.ProviderName == "" || !rut.Valid(cfg.ProviderRUT) {
			log.Warn().Msg("bootstrap: sin empresa proveedora y sin PROVIDER_NAME/PROVIDER_RUT válidos; se omite")
			return nil
		}
		now := time.Now()
		provider = &entity.Company{
			ID:         uuid.New().String(),
			Name:       cfg.ProviderName,
			RUT:        rut.Format(cfg.ProviderRUT),
			Phone:      cfg.ProviderPhone,
			IsProvider: true,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := companies.Create(ctx, provider); err != nil {
			return fmt.Errorf("bootstrap: crear proveedora: %w", err)
		}
		log.Info().Str("company_id", provider.ID).Str("name", provider.Name).Msg("empresa proveedora creada")
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	existing, err := users.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("bootstrap: buscar admin: %w", err)
	}
	if existing != nil {
		return nil
	}
	u, err := accounts.Register(ctx, dto.CreateAccountRequest{
		Username:        cfg.AdminUsername,
		Email:           cfg.AdminEmail,
		Password:        cfg.AdminPassword,
		PasswordConfirm: cfg.AdminPassword,
		Role:            identity.RoleSuperAdmin.String(),
		RUT:             cfg.AdminRUT,
		CompanyID:       provider.ID,
	})
	if err != nil {
		return fmt.Errorf("bootstrap: crear super_admin: %w", err)
	}
	log.Info().Str("user_id", u.ID).Str("username", u.Username).Msg("super_admin creado")
	return nil
}
