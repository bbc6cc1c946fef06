// Package tenant restringe colecciones y objetos a la empresa visible para quien consulta.
// Se aplica por igual a sucursales, inventario, compras, ventas y usuarios.
package tenant

import (
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
)

// Mensajes de rechazo por sucursal de otra empresa.
const (
	MsgPurchaseOtherCompany  = "No puedes registrar compras en otra empresa."
	MsgSaleOtherCompany      = "No puedes registrar ventas en otra empresa."
	MsgInventoryOtherCompany = "No puedes gestionar inventario de otra empresa."
	MsgBranchNotFound        = "Sucursal no encontrada."
)

// CompanyFilter devuelve el id de empresa con el que se deben filtrar las consultas.
// "" significa sin filtro (alcance de plataforma). Una identidad sin empresa ni alcance
// de plataforma no ve datos de tenant: ErrForbidden.
func CompanyFilter(c identity.Capabilities) (string, error) {
	switch c.Scope {
	case identity.ScopePlatformWide:
		return "", nil
	case identity.ScopeSingleCompany:
		return c.CompanyID, nil
	}
	return "", domain.ErrForbidden
}

// Visible informa si una fila de la empresa ownerCompanyID es visible.
func Visible(c identity.Capabilities, ownerCompanyID string) bool {
	if c.PlatformWide() {
		return true
	}
	return c.Scope == identity.ScopeSingleCompany && ownerCompanyID != "" && ownerCompanyID == c.CompanyID
}

// CheckObject para recuperación por id: la fila existe pero está fuera del alcance -> 403.
func CheckObject(c identity.Capabilities, ownerCompanyID string) error {
	if Visible(c, ownerCompanyID) {
		return nil
	}
	return domain.ErrForbidden
}

// RequireOwnBranch valida que la sucursal del payload pertenezca a la empresa de quien escribe.
// El rechazo es un error de campo (400) y no un 403, para que el cliente sepa qué corregir.
func RequireOwnBranch(c identity.Capabilities, branch *entity.Branch, field, message string) error {
	if branch == nil {
		return domain.NewFieldError(field, MsgBranchNotFound)
	}
	if !Visible(c, branch.CompanyID) {
		return domain.NewFieldError(field, message)
	}
	return nil
}
