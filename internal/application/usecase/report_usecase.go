package usecase

import (
	"context"
	"time"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// SalesReportLimit filas máximas del reporte de ventas (las más recientes).
const SalesReportLimit = 100

// ReportUseCase reportes de stock y ventas sobre el tenant de quien consulta.
type ReportUseCase struct {
	inventory repository.InventoryRepository
	sales     repository.SaleRepository
	loc       *time.Location
}

// NewReportUseCase construye el caso de uso. loc define el día calendario de los filtros de fecha.
func NewReportUseCase(inventory repository.InventoryRepository, sales repository.SaleRepository, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{inventory: inventory, sales: sales, loc: loc}
}

// Stock estado del inventario visible, con su estado derivado.
func (uc *ReportUseCase) Stock(ctx context.Context, caps identity.Capabilities) ([]dto.StockReportRow, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	rows, err := uc.inventory.StockReport(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockReportRow, 0, len(rows))
	for _, r := range rows {
		inv := entity.Inventory{Stock: r.Stock, ReorderPoint: r.ReorderPoint}
		out = append(out, dto.StockReportRow{
			Branch:       r.Branch,
			Product:      r.Product,
			SKU:          r.SKU,
			Stock:        r.Stock,
			ReorderPoint: r.ReorderPoint,
			Status:       inv.StockStatus(),
		})
	}
	return out, nil
}

// Sales total de ventas del filtro y las últimas SalesReportLimit filas.
func (uc *ReportUseCase) Sales(ctx context.Context, caps identity.Capabilities, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	f := repository.SaleFilter{CompanyID: companyID, BranchID: in.BranchID}
	fe := domain.FieldErrors{}
	if in.DateFrom != "" {
		if d, ok := validate.Date(fe, "date_from", in.DateFrom, uc.loc); ok {
			f.DateFrom = &d
		}
	}
	if in.DateTo != "" {
		if d, ok := validate.Date(fe, "date_to", in.DateTo, uc.loc); ok {
			f.DateTo = &d
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	total, rows, err := uc.sales.Report(ctx, f, SalesReportLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesReportResponse{Total: total, Rows: make([]dto.SalesReportRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.SalesReportRow{
			Branch:        r.Branch,
			Total:         r.Total,
			PaymentMethod: r.PaymentMethod,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out, nil
}
