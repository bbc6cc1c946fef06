package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/domain/entity"
)

// SaleFilter filtro de ventas. Las fechas comparan el día de created_at (inclusive).
type SaleFilter struct {
	CompanyID string
	BranchID  string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      Page
}

// SaleReportRow fila del reporte de ventas.
type SaleReportRow struct {
	Branch        string
	Total         decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
}

// SaleRepository puerto de ventas. Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	// Create inserta la venta y sus líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, int, error)
	// Report devuelve la suma de totales y las últimas limit filas del filtro.
	Report(ctx context.Context, f SaleFilter, limit int) (decimal.Decimal, []SaleReportRow, error)
	Count(ctx context.Context) (int, error)
}

// PurchaseFilter filtro de compras; CompanyID filtra por la empresa de la sucursal.
type PurchaseFilter struct {
	CompanyID string
	Page      Page
}

// PurchaseRepository puerto de compras (inmutables).
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context, f PurchaseFilter) ([]*entity.Purchase, int, error)
}
