package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/pkg/rut"
)

// CompanyUseCase administración de empresas cliente (solo operador de la plataforma).
// La empresa proveedora no se lista, no se edita ni se elimina por aquí.
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: time.Now}
}

// List lista las empresas cliente.
func (uc *CompanyUseCase) List(ctx context.Context, page repository.Page) (*dto.CompanyListResponse, error) {
	list, total, err := uc.repo.List(ctx, repository.CompanyFilter{Page: page})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

// Create crea una empresa cliente; nunca es proveedora.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	now := uc.now()
	c := &entity.Company{
		ID:         uuid.New().String(),
		Name:       in.Name,
		RUT:        in.RUT,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
		IsProvider: false,
		IsActive:   boolOr(in.IsActive, true),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.check(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, duplicateAs(err, "name")
	}
	out := toCompanyResponse(c)
	return &out, nil
}

// Update edita una empresa cliente. 404 si no existe o es la proveedora.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.client(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.RUT != nil {
		c.RUT = *in.RUT
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = uc.now()
	if err := uc.check(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, duplicateAs(err, "name")
	}
	out := toCompanyResponse(c)
	return &out, nil
}

// Delete elimina una empresa cliente con sus sucursales, usuarios y suscripción.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.client(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CompanyUseCase) client(ctx context.Context, id string) (*entity.Company, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsProvider {
		return nil, domain.NotFound(MsgCompanyNotFound)
	}
	return c, nil
}

func (uc *CompanyUseCase) check(ctx context.Context, c *entity.Company) error {
	c.RUT = rut.Format(c.RUT)
	fe := domain.FieldErrors{}
	if validate.Required(fe, "name", c.Name) {
		other, err := uc.repo.GetByName(ctx, c.Name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != c.ID {
			fe.Add("name", validate.MsgDuplicate)
		}
	}
	validate.RUT(fe, "rut", c.RUT)
	if rut.Valid(c.RUT) {
		other, err := uc.repo.GetByRUT(ctx, c.RUT)
		if err != nil {
			return err
		}
		if other != nil && other.ID != c.ID {
			fe.Add("rut", validate.MsgDuplicate)
		}
	}
	validate.Phone(fe, "phone", c.Phone)
	validate.Email(fe, "email", c.Email, false)
	return fe.OrNil()
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:       c.ID,
		Name:     c.Name,
		RUT:      c.RUT,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		IsActive: c.IsActive,
	}
}
