// Package authz evalúa los permisos por tipo de recurso y clase de método HTTP.
// Las políticas son funciones puras sobre identity.Capabilities: no dependen del framework.
package authz

import (
	"strings"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/identity"
)

// Resource tipo de recurso protegido.
type Resource string

const (
	ResourceProduct   Resource = "product"
	ResourceBranch    Resource = "branch"
	ResourceInventory Resource = "inventory"
	ResourceSupplier  Resource = "supplier"
	ResourcePurchase  Resource = "purchase"
	ResourceUser      Resource = "user"
	ResourceSale      Resource = "sale"
	ResourceOrder     Resource = "order"
	ResourcePlatform  Resource = "platform"
	ResourceCart      Resource = "cart"
	ResourceProfile   Resource = "profile"
)

// IsRead informa si el método es de lectura (GET, HEAD, OPTIONS).
func IsRead(method string) bool {
	switch strings.ToUpper(method) {
	case "GET", "HEAD", "OPTIONS":
		return true
	}
	return false
}

// Policy reglas de un recurso.
type Policy struct {
	PublicRead bool
	Read       []identity.Role
	Write      []identity.Role
	// AnyAuthenticated permite cualquier rol autenticado (carrito, perfil).
	AnyAuthenticated bool
	// PlatformOnly restringe al super_admin de la empresa proveedora.
	PlatformOnly bool
	// SameCompanyObjects exige que el objeto pertenezca a la empresa del usuario
	// salvo para alcance de plataforma.
	SameCompanyObjects bool
}

var (
	allRoles     = []identity.Role{identity.RoleSuperAdmin, identity.RoleAdminCliente, identity.RoleGerente, identity.RoleVendedor}
	managerRoles = []identity.Role{identity.RoleSuperAdmin, identity.RoleAdminCliente, identity.RoleGerente}
	adminRoles   = []identity.Role{identity.RoleSuperAdmin, identity.RoleAdminCliente}
)

// Policies tabla canónica de permisos.
var Policies = map[Resource]Policy{
	ResourceProduct:   {PublicRead: true, Write: managerRoles},
	ResourceBranch:    {Read: allRoles, Write: adminRoles},
	ResourceInventory: {Read: allRoles, Write: managerRoles},
	ResourceSupplier:  {Read: managerRoles, Write: managerRoles},
	ResourcePurchase:  {Read: managerRoles, Write: managerRoles},
	ResourceUser:      {Read: adminRoles, Write: adminRoles, SameCompanyObjects: true},
	ResourceSale:      {Read: allRoles, Write: allRoles},
	ResourceOrder:     {Read: allRoles, Write: managerRoles},
	ResourcePlatform:  {PlatformOnly: true},
	ResourceCart:      {AnyAuthenticated: true},
	ResourceProfile:   {AnyAuthenticated: true},
}

// Authorize decide a nivel de colección. Devuelve domain.ErrForbidden al denegar.
func Authorize(c identity.Capabilities, res Resource, method string) error {
	p, ok := Policies[res]
	if !ok {
		return domain.ErrForbidden
	}
	if allowed(p, c, method) {
		return nil
	}
	return domain.ErrForbidden
}

// AuthorizeObject decide sobre un objeto concreto cuya empresa dueña es ownerCompanyID.
func AuthorizeObject(c identity.Capabilities, res Resource, method, ownerCompanyID string) error {
	if err := Authorize(c, res, method); err != nil {
		return err
	}
	p := Policies[res]
	if p.SameCompanyObjects && !c.PlatformWide() && ownerCompanyID != c.CompanyID {
		return domain.ErrForbidden
	}
	return nil
}

func allowed(p Policy, c identity.Capabilities, method string) bool {
	read := IsRead(method)
	if read && p.PublicRead {
		return true
	}
	if !c.Authenticated {
		return false
	}
	switch {
	case p.PlatformOnly:
		return c.PlatformOperator()
	case p.AnyAuthenticated:
		return true
	case read:
		return c.HasRole(p.Read...)
	default:
		return c.HasRole(p.Write...)
	}
}
