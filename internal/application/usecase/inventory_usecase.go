package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/ports"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Mensajes de inventario.
const (
	MsgInventoryNotFound  = "Inventario no encontrado"
	MsgInventoryDuplicate = "Ya existe inventario para esta sucursal y producto."
)

// InventoryUseCase mantención manual de filas de inventario (alta, ajuste, baja).
// Las ventas y compras mueven el stock a través del ledger, no de aquí.
type InventoryUseCase struct {
	txRunner ports.TxRunner
	repo     repository.InventoryRepository
	branches repository.BranchRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner ports.TxRunner,
	repo repository.InventoryRepository,
	branches repository.BranchRepository,
	products repository.ProductRepository,
) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, repo: repo, branches: branches, products: products, now: time.Now}
}

// List lista el inventario visible, opcionalmente de una sola sucursal.
func (uc *InventoryUseCase) List(ctx context.Context, caps identity.Capabilities, branchID string, page repository.Page) (*dto.InventoryListResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.InventoryFilter{CompanyID: companyID, BranchID: branchID, Page: page})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInventoryResponse(inv))
	}
	return &dto.InventoryListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

// Get obtiene una fila: 404 si no existe, 403 si la sucursal es de otra empresa.
func (uc *InventoryUseCase) Get(ctx context.Context, caps identity.Capabilities, id string) (*dto.InventoryResponse, error) {
	inv, err := uc.visible(ctx, caps, id)
	if err != nil {
		return nil, err
	}
	out := toInventoryResponse(inv)
	return &out, nil
}

// Create da de alta una fila (sucursal, producto). La sucursal debe ser de quien llama.
func (uc *InventoryUseCase) Create(ctx context.Context, caps identity.Capabilities, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	inv := &entity.Inventory{
		ID:           uuid.New().String(),
		BranchID:     in.BranchID,
		ProductID:    in.ProductID,
		Stock:        entity.DefaultStock,
		ReorderPoint: entity.DefaultReorderPoint,
		UpdatedAt:    uc.now(),
	}
	if in.Stock != nil {
		inv.Stock = *in.Stock
	}
	if in.ReorderPoint != nil {
		inv.ReorderPoint = *in.ReorderPoint
	}
	if err := uc.check(ctx, caps, inv); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, inventoryDuplicate(err)
	}
	out := toInventoryResponse(inv)
	return &out, nil
}

// Update ajusta una fila visible. El ajuste corre con la fila bloqueada para no pisar
// una venta o compra concurrente; mover la fila a otra sucursal exige que también sea propia.
func (uc *InventoryUseCase) Update(ctx context.Context, caps identity.Capabilities, id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	current, err := uc.visible(ctx, caps, id)
	if err != nil {
		return nil, err
	}
	var out *entity.Inventory
	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		inv, err := tx.Inventory().GetForUpdate(ctx, current.BranchID, current.ProductID)
		if err != nil {
			return err
		}
		if inv == nil || inv.ID != current.ID {
			return domain.NotFound(MsgInventoryNotFound)
		}
		if in.BranchID != nil {
			inv.BranchID = *in.BranchID
		}
		if in.ProductID != nil {
			inv.ProductID = *in.ProductID
		}
		if in.Stock != nil {
			inv.Stock = *in.Stock
		}
		if in.ReorderPoint != nil {
			inv.ReorderPoint = *in.ReorderPoint
		}
		inv.UpdatedAt = uc.now()
		if err := checkInventory(ctx, caps, inv, tx.Branches(), tx.Products()); err != nil {
			return err
		}
		if err := tx.Inventory().Update(ctx, inv); err != nil {
			return inventoryDuplicate(err)
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toInventoryResponse(out)
	return &resp, nil
}

// Delete elimina una fila visible.
func (uc *InventoryUseCase) Delete(ctx context.Context, caps identity.Capabilities, id string) error {
	if _, err := uc.visible(ctx, caps, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *InventoryUseCase) visible(ctx context.Context, caps identity.Capabilities, id string) (*entity.Inventory, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound(MsgInventoryNotFound)
	}
	branch, err := uc.branches.GetByID(ctx, inv.BranchID)
	if err != nil {
		return nil, fmt.Errorf("inventario: obtener sucursal: %w", err)
	}
	owner := ""
	if branch != nil {
		owner = branch.CompanyID
	}
	if err := tenant.CheckObject(caps, owner); err != nil {
		return nil, err
	}
	return inv, nil
}

func (uc *InventoryUseCase) check(ctx context.Context, caps identity.Capabilities, inv *entity.Inventory) error {
	return checkInventory(ctx, caps, inv, uc.branches, uc.products)
}

func checkInventory(
	ctx context.Context,
	caps identity.Capabilities,
	inv *entity.Inventory,
	branches repository.BranchRepository,
	products repository.ProductRepository,
) error {
	fe := domain.FieldErrors{}
	validate.NonNegative(fe, "stock", inv.Stock)
	validate.NonNegative(fe, "reorder_point", inv.ReorderPoint)
	if validate.Required(fe, "branch", inv.BranchID) {
		b, err := branches.GetByID(ctx, inv.BranchID)
		if err != nil {
			return err
		}
		var ownErr domain.FieldErrors
		if errors.As(tenant.RequireOwnBranch(caps, b, "branch", tenant.MsgInventoryOtherCompany), &ownErr) {
			fe.Merge(ownErr)
		}
	}
	if validate.Required(fe, "product", inv.ProductID) {
		p, err := products.GetByID(ctx, inv.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			fe.Add("product", MsgProductNotFound)
		}
	}
	return fe.OrNil()
}

func inventoryDuplicate(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewFieldError("branch", MsgInventoryDuplicate)
	}
	return err
}

func toInventoryResponse(inv *entity.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:           inv.ID,
		BranchID:     inv.BranchID,
		ProductID:    inv.ProductID,
		Stock:        inv.Stock,
		ReorderPoint: inv.ReorderPoint,
		NeedsReorder: inv.NeedsReorder(),
		StockStatus:  inv.StockStatus(),
		UpdatedAt:    inv.UpdatedAt,
	}
}
