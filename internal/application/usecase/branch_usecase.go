package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Mensajes de sucursales y empresas.
const (
	MsgBranchNotFound  = "Sucursal no encontrada"
	MsgCompanyNotFound = "Empresa no encontrada"
	MsgCompanyInvalid  = "Empresa no válida"
)

// BranchUseCase casos de uso CRUD para sucursales, restringidos al tenant de quien llama.
type BranchUseCase struct {
	repo      repository.BranchRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, companies repository.CompanyRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo, companies: companies, now: time.Now}
}

// List lista las sucursales visibles.
func (uc *BranchUseCase) List(ctx context.Context, caps identity.Capabilities, page repository.Page) (*dto.BranchListResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.BranchFilter{CompanyID: companyID, Page: page})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBranchResponse(b))
	}
	return &dto.BranchListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

// Get obtiene una sucursal: 404 si no existe, 403 si es de otra empresa.
func (uc *BranchUseCase) Get(ctx context.Context, caps identity.Capabilities, id string) (*dto.BranchResponse, error) {
	b, err := uc.visible(ctx, caps, id)
	if err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Create crea una sucursal. Salvo super_admin, la empresa siempre es la de quien llama.
func (uc *BranchUseCase) Create(ctx context.Context, caps identity.Capabilities, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	companyID, err := uc.ownerFor(ctx, caps, in.CompanyID)
	if err != nil {
		return nil, err
	}
	b := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		IsActive:  boolOr(in.IsActive, true),
		CreatedAt: uc.now(),
	}
	if err := validateBranch(b); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Update actualiza una sucursal visible. Salvo super_admin, la empresa se fuerza a la de quien llama.
func (uc *BranchUseCase) Update(ctx context.Context, caps identity.Capabilities, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	b, err := uc.visible(ctx, caps, id)
	if err != nil {
		return nil, err
	}
	requested := b.CompanyID
	if in.CompanyID != nil {
		requested = *in.CompanyID
	}
	if b.CompanyID, err = uc.ownerFor(ctx, caps, requested); err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	if err := validateBranch(b); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Delete elimina una sucursal visible junto con su inventario y ventas.
// Falla con ErrInUse si tiene compras registradas.
func (uc *BranchUseCase) Delete(ctx context.Context, caps identity.Capabilities, id string) error {
	if _, err := uc.visible(ctx, caps, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BranchUseCase) visible(ctx context.Context, caps identity.Capabilities, id string) (*entity.Branch, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound(MsgBranchNotFound)
	}
	if err := tenant.CheckObject(caps, b.CompanyID); err != nil {
		return nil, err
	}
	return b, nil
}

// ownerFor resuelve la empresa dueña de la sucursal según quien escribe.
func (uc *BranchUseCase) ownerFor(ctx context.Context, caps identity.Capabilities, requested string) (string, error) {
	if !caps.PlatformWide() {
		if caps.CompanyID == "" {
			return "", domain.ErrForbidden
		}
		return caps.CompanyID, nil
	}
	if requested == "" {
		return "", domain.NewFieldError("company", validate.MsgRequired)
	}
	c, err := uc.companies.GetByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.NewFieldError("company", MsgCompanyInvalid)
	}
	return c.ID, nil
}

func validateBranch(b *entity.Branch) error {
	fe := domain.FieldErrors{}
	validate.Required(fe, "name", b.Name)
	validate.Phone(fe, "phone", b.Phone)
	return fe.OrNil()
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}
