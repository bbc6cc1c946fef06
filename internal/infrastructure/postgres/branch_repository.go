package postgres

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sucursales sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, company_id, name, address, phone, is_active, created_at`

func scanBranch(row scanner) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO branches (`+branchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.CompanyID, b.Name, b.Address, b.Phone, b.IsActive, b.CreatedAt,
	)
	if err != nil {
		return writeErr("insert branch", err)
	}
	return nil
}

func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id), scanBranch, "get branch")
}

func (r *BranchRepo) List(ctx context.Context, f repository.BranchFilter) ([]*entity.Branch, int, error) {
	w := &where{}
	if f.CompanyID != "" {
		w.add("company_id = ?", f.CompanyID)
	}
	return pageOf(ctx, r.q, listQuery{
		op:      "list branches",
		columns: branchColumns,
		from:    "FROM branches" + w.String(),
		orderBy: "created_at DESC",
		args:    w.args,
	}, f.Page, scanBranch)
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE branches SET company_id = $2, name = $3, address = $4, phone = $5, is_active = $6
		WHERE id = $1`,
		b.ID, b.CompanyID, b.Name, b.Address, b.Phone, b.IsActive,
	)
	if err != nil {
		return writeErr("update branch", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la sucursal con su inventario y ventas; ErrInUse si tiene compras.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id); err != nil {
		return deleteErr("delete branch", err)
	}
	return nil
}
