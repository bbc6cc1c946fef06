package memory

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sucursales en memoria.
type BranchRepo struct {
	s    *Store
	inTx bool
}

func (r *BranchRepo) Create(_ context.Context, b *entity.Branch) error {
	defer r.s.guard(r.inTx)()
	if b.CompanyID != "" {
		if _, ok := r.s.d.companies[b.CompanyID]; !ok {
			return domain.ErrNotFound
		}
	}
	r.s.d.branches[b.ID] = *b
	return nil
}

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	defer r.s.guard(r.inTx)()
	if b, ok := r.s.d.branches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *BranchRepo) List(_ context.Context, f repository.BranchFilter) ([]*entity.Branch, int, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]entity.Branch, 0)
	for _, b := range r.s.d.branches {
		if f.CompanyID != "" && b.CompanyID != f.CompanyID {
			continue
		}
		rows = append(rows, b)
	}
	list, total := paginate(rows, func(a, b entity.Branch) bool { return a.CreatedAt.After(b.CreatedAt) }, f.Page)
	return list, total, nil
}

func (r *BranchRepo) Update(_ context.Context, b *entity.Branch) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.d.branches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.branches[b.ID] = *b
	return nil
}

// Delete elimina la sucursal con su inventario y ventas; ErrInUse si tiene compras.
func (r *BranchRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	if branchHasPurchases(r.s.d, id) {
		return domain.ErrInUse
	}
	deleteBranch(r.s.d, id)
	return nil
}
