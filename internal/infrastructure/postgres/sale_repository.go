package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
)

// SaleRepo ventas sobre PostgreSQL. Cabecera y líneas se escriben juntas y son inmutables.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `s.id, s.branch_id, s.user_id, s.total, s.payment_method, s.notes, s.created_at`

func scanSale(row scanner) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.BranchID, &s.UserID, &s.Total, &s.PaymentMethod, &s.Notes, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales (id, branch_id, user_id, total, payment_method, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, sale.BranchID, sale.UserID, sale.Total, sale.PaymentMethod, sale.Notes, sale.CreatedAt,
		)
		if err != nil {
			return writeErr("insert sale", err)
		}
		for i, it := range sale.Items {
			_, err := tx.Exec(ctx, `
				INSERT INTO sale_items (id, sale_id, line_no, product_id, quantity, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				it.ID, sale.ID, i, nullable(it.ProductID), it.Quantity, it.Price,
			)
			if err != nil {
				return writeErr("insert sale item", err)
			}
		}
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := one(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.id = $1`, id), scanSale, "get sale")
	if err != nil || s == nil {
		return s, err
	}
	if err := r.loadItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// loadItems carga las líneas de todas las ventas con una sola consulta, en orden de línea.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	items, err := many(ctx, r.q, func(row scanner) (*entity.SaleItem, error) {
		var (
			it        entity.SaleItem
			productID *string
		)
		if err := row.Scan(&it.ID, &it.SaleID, &productID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		it.ProductID = deref(productID)
		return &it, nil
	}, "load sale items", `
		SELECT id, sale_id, product_id, quantity, price
		FROM sale_items WHERE sale_id::text = ANY($1)
		ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		s := byID[it.SaleID]
		s.Items = append(s.Items, *it)
	}
	return nil
}

// filter traduce SaleFilter. Las fechas comparan el día de created_at en la zona del filtro.
func saleFilter(f repository.SaleFilter) *where {
	w := &where{}
	if f.BranchID != "" {
		w.add("s.branch_id = ?", f.BranchID)
	}
	if f.CompanyID != "" {
		w.add("b.company_id = ?", f.CompanyID)
	}
	if f.DateFrom != nil {
		w.add("(s.created_at AT TIME ZONE ?)::date >= ?::date", zoneOf(*f.DateFrom), f.DateFrom.Format(time.DateOnly))
	}
	if f.DateTo != nil {
		w.add("(s.created_at AT TIME ZONE ?)::date <= ?::date", zoneOf(*f.DateTo), f.DateTo.Format(time.DateOnly))
	}
	return w
}

// zoneOf nombre IANA de la zona de t; "Local" no lo entiende Postgres.
func zoneOf(t time.Time) string {
	if name := t.Location().String(); name != "Local" {
		return name
	}
	_, offset := t.Zone()
	return fmt.Sprintf("%+03d:%02d", offset/3600, (offset%3600)/60)
}

const saleFrom = `FROM sales s JOIN branches b ON b.id = s.branch_id`

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	w := saleFilter(f)
	list, total, err := pageOf(ctx, r.q, listQuery{
		op:      "list sales",
		columns: saleColumns,
		from:    saleFrom + w.String(),
		orderBy: "s.created_at DESC, s.id",
		args:    w.args,
	}, f.Page, scanSale)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SaleRepo) Report(ctx context.Context, f repository.SaleFilter, limit int) (decimal.Decimal, []repository.SaleReportRow, error) {
	w := saleFilter(f)
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(s.total), 0) `+saleFrom+w.String(), w.args...).Scan(&total); err != nil {
		return decimal.Zero, nil, fmt.Errorf("sales report total: %w", err)
	}
	args := append(append([]any{}, w.args...), limit)
	rows, err := many(ctx, r.q, func(row scanner) (*repository.SaleReportRow, error) {
		var s repository.SaleReportRow
		if err := row.Scan(&s.Branch, &s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, err
		}
		return &s, nil
	}, "sales report", `SELECT b.name, s.total, s.payment_method, s.created_at `+saleFrom+w.String()+
		fmt.Sprintf(` ORDER BY s.created_at DESC, s.id LIMIT $%d`, len(args)), args...)
	if err != nil {
		return decimal.Zero, nil, err
	}
	out := make([]repository.SaleReportRow, 0, len(rows))
	for _, s := range rows {
		out = append(out, *s)
	}
	return total, out, nil
}

func (r *SaleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// PurchaseRepo compras sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `pu.id, pu.supplier_id, pu.branch_id, pu.product_id, pu.quantity, pu.cost, pu.date, pu.notes, pu.created_at`

func scanPurchase(row scanner) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.SupplierID, &p.BranchID, &p.ProductID, &p.Quantity, &p.Cost, &p.Date, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, supplier_id, branch_id, product_id, quantity, cost, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.SupplierID, p.BranchID, p.ProductID, p.Quantity, p.Cost, p.Date, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return writeErr("insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases pu WHERE pu.id = $1`, id), scanPurchase, "get purchase")
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	w := &where{}
	if f.CompanyID != "" {
		w.add("b.company_id = ?", f.CompanyID)
	}
	return pageOf(ctx, r.q, listQuery{
		op:      "list purchases",
		columns: purchaseColumns,
		from:    "FROM purchases pu JOIN branches b ON b.id = pu.branch_id" + w.String(),
		orderBy: "pu.date DESC, pu.created_at DESC",
		args:    w.args,
	}, f.Page, scanPurchase)
}
