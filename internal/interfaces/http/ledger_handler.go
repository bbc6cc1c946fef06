package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/ledger"
)

// LedgerHandler ventas y compras: ambas mueven stock y son inmutables.
type LedgerHandler struct {
	ledger   *ledger.Ledger
	receipts *ledger.Receipts
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(l *ledger.Ledger, receipts *ledger.Receipts) *LedgerHandler {
	return &LedgerHandler{ledger: l, receipts: receipts}
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "Página"         default(1)
// @Param        page_size  query  int  false  "Tamaño página"  default(10)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	out, err := h.ledger.ListSales(c.UserContext(), GetCapabilities(c), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetSale godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *LedgerHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.ledger.GetSale(c.UserContext(), GetCapabilities(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock de cada línea en una sola transacción; si alguna no alcanza no se modifica nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "branch, payment_method, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *LedgerHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.ledger.CreateSale(c.UserContext(), GetCapabilities(c), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *LedgerHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.receipts.Render(c.UserContext(), GetCapabilities(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+id+`.pdf"`)
	return c.Send(pdf)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "Página"         default(1)
// @Param        page_size  query  int  false  "Tamaño página"  default(10)
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	out, err := h.ledger.ListPurchases(c.UserContext(), GetCapabilities(c), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetPurchase godoc
// @Summary      Obtener compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *LedgerHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.ledger.GetPurchase(c.UserContext(), GetCapabilities(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Description  Suma la cantidad al inventario de la sucursal (lo crea con stock 0 y punto de reposición 10 si no existe).
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier, branch, product, quantity, cost, date"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.ledger.CreatePurchase(c.UserContext(), GetCapabilities(c), in)
	if err != nil {
		return err
	}
	return created(c, out)
}
