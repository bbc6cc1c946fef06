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
)

// Mensajes del catálogo.
const (
	MsgProductNotFound  = "Producto no encontrado"
	MsgSupplierNotFound = "Proveedor no encontrado"
)

// ProductUseCase casos de uso CRUD del catálogo de productos (compartido entre empresas).
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, suppliers: suppliers, now: time.Now}
}

// List lista productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, page repository.Page) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create crea un producto. El SKU es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Cost:        in.Cost,
		SupplierID:  in.SupplierID,
		IsActive:    boolOr(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.check(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, duplicateAs(err, "sku")
	}
	out := toProductResponse(p)
	return &out, nil
}

// Update actualiza parcialmente un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Cost != nil {
		p.Cost = *in.Cost
	}
	if in.SupplierID != nil {
		p.SupplierID = *in.SupplierID
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = uc.now()
	if err := uc.check(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, duplicateAs(err, "sku")
	}
	out := toProductResponse(p)
	return &out, nil
}

// Delete elimina un producto. ErrInUse si tiene compras.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(MsgProductNotFound)
	}
	return p, nil
}

func (uc *ProductUseCase) check(ctx context.Context, p *entity.Product) error {
	fe := domain.FieldErrors{}
	validate.Required(fe, "sku", p.SKU)
	validate.Required(fe, "name", p.Name)
	validate.Required(fe, "category", p.Category)
	validate.Money(fe, "price", p.Price)
	validate.Money(fe, "cost", p.Cost)
	if p.SKU != "" {
		existing, err := uc.repo.GetBySKU(ctx, p.SKU)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != p.ID {
			fe.Add("sku", validate.MsgDuplicate)
		}
	}
	if p.SupplierID != "" {
		s, err := uc.suppliers.GetByID(ctx, p.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			fe.Add("supplier", MsgSupplierNotFound)
		}
	}
	return fe.OrNil()
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		Cost:         p.Cost,
		ProfitMargin: p.ProfitMargin().Round(2),
		SupplierID:   optional(p.SupplierID),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
