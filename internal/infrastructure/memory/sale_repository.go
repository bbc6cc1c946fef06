package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
)

// SaleRepo ventas en memoria; las líneas se guardan aparte para poder anular su producto.
type SaleRepo struct {
	s    *Store
	inTx bool
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.branches[sale.BranchID]; !ok {
		return domain.ErrNotFound
	}
	head := *sale
	head.Items = nil
	d.sales[sale.ID] = head
	items := make([]entity.SaleItem, len(sale.Items))
	for i, it := range sale.Items {
		it.SaleID = sale.ID
		items[i] = it
	}
	d.saleItems[sale.ID] = items
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.s.guard(r.inTx)()
	s, ok := r.s.d.sales[id]
	if !ok {
		return nil, nil
	}
	s.Items = saleItemsOf(r.s.d, id)
	return &s, nil
}

func saleItemsOf(d *data, saleID string) []entity.SaleItem {
	return append([]entity.SaleItem(nil), d.saleItems[saleID]...)
}

func (r *SaleRepo) filtered(f repository.SaleFilter) []entity.Sale {
	d := r.s.d
	rows := make([]entity.Sale, 0)
	for _, s := range d.sales {
		if f.BranchID != "" && s.BranchID != f.BranchID {
			continue
		}
		if f.CompanyID != "" && d.branches[s.BranchID].CompanyID != f.CompanyID {
			continue
		}
		if f.DateFrom != nil && dayOf(s.CreatedAt, f.DateFrom.Location()).Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && dayOf(s.CreatedAt, f.DateTo.Location()).After(*f.DateTo) {
			continue
		}
		rows = append(rows, s)
	}
	return rows
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, dd := t.In(loc).Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

func newestSaleFirst(a, b entity.Sale) bool { return a.CreatedAt.After(b.CreatedAt) }

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	defer r.s.guard(r.inTx)()
	list, total := paginate(r.filtered(f), newestSaleFirst, f.Page)
	for _, s := range list {
		s.Items = saleItemsOf(r.s.d, s.ID)
	}
	return list, total, nil
}

func (r *SaleRepo) Report(_ context.Context, f repository.SaleFilter, limit int) (decimal.Decimal, []repository.SaleReportRow, error) {
	defer r.s.guard(r.inTx)()
	rows := r.filtered(f)
	total := decimal.Zero
	for _, s := range rows {
		total = total.Add(s.Total)
	}
	list, _ := paginate(rows, newestSaleFirst, repository.Page{Number: 1, Size: limit})
	out := make([]repository.SaleReportRow, 0, len(list))
	for _, s := range list {
		out = append(out, repository.SaleReportRow{
			Branch:        r.s.d.branches[s.BranchID].Name,
			Total:         s.Total,
			PaymentMethod: s.PaymentMethod,
			CreatedAt:     s.CreatedAt,
		})
	}
	return total, out, nil
}

func (r *SaleRepo) Count(_ context.Context) (int, error) {
	defer r.s.guard(r.inTx)()
	return len(r.s.d.sales), nil
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct {
	s    *Store
	inTx bool
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.suppliers[p.SupplierID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := d.branches[p.BranchID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := d.products[p.ProductID]; !ok {
		return domain.ErrNotFound
	}
	d.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	defer r.s.guard(r.inTx)()
	if p, ok := r.s.d.purchases[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *PurchaseRepo) List(_ context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	rows := make([]entity.Purchase, 0)
	for _, p := range d.purchases {
		if f.CompanyID != "" && d.branches[p.BranchID].CompanyID != f.CompanyID {
			continue
		}
		rows = append(rows, p)
	}
	list, total := paginate(rows, func(a, b entity.Purchase) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	}, f.Page)
	return list, total, nil
}
