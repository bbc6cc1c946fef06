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

// SupplierUseCase casos de uso CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	now  func() time.Time
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, now: time.Now}
}

func (uc *SupplierUseCase) List(ctx context.Context, page repository.Page) (*dto.SupplierListResponse, error) {
	list, total, err := uc.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// Create crea un proveedor; nombre y RUT son únicos.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         in.Name,
		RUT:          in.RUT,
		ContactName:  in.ContactName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
		IsActive:     boolOr(in.IsActive, true),
		CreatedAt:    uc.now(),
	}
	if err := uc.check(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, duplicateAs(err, "rut")
	}
	out := toSupplierResponse(s)
	return &out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.RUT != nil {
		s.RUT = *in.RUT
	}
	if in.ContactName != nil {
		s.ContactName = *in.ContactName
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.PaymentTerms != nil {
		s.PaymentTerms = *in.PaymentTerms
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if err := uc.check(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, duplicateAs(err, "rut")
	}
	out := toSupplierResponse(s)
	return &out, nil
}

// Delete elimina el proveedor; sus productos quedan sin proveedor. ErrInUse si tiene compras.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) get(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound(MsgSupplierNotFound)
	}
	return s, nil
}

// check valida y normaliza el RUT a XX.XXX.XXX-D antes de verificar unicidad.
func (uc *SupplierUseCase) check(ctx context.Context, s *entity.Supplier) error {
	s.RUT = rut.Format(s.RUT)
	fe := domain.FieldErrors{}
	validate.Required(fe, "name", s.Name)
	validate.Required(fe, "contact_name", s.ContactName)
	validate.RUT(fe, "rut", s.RUT)
	validate.Email(fe, "email", s.Email, true)
	validate.Phone(fe, "phone", s.Phone)
	if s.Name != "" {
		other, err := uc.repo.GetByName(ctx, s.Name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != s.ID {
			fe.Add("name", validate.MsgDuplicate)
		}
	}
	if rut.Valid(s.RUT) {
		other, err := uc.repo.GetByRUT(ctx, s.RUT)
		if err != nil {
			return err
		}
		if other != nil && other.ID != s.ID {
			fe.Add("rut", validate.MsgDuplicate)
		}
	}
	return fe.OrNil()
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		RUT:          s.RUT,
		ContactName:  s.ContactName,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}
