// Package identity define los roles y la identidad autenticada de cada petición.
// Las políticas de autorización y el filtrado por tenant consumen Capabilities,
// que se calculan una sola vez por petición a partir de la identidad.
package identity

// Role rol de un usuario. Orden de privilegio para escritura:
// super_admin > admin_cliente > gerente > vendedor.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAdminCliente Role = "admin_cliente"
	RoleGerente      Role = "gerente"
	RoleVendedor     Role = "vendedor"
)

// Roles todos los roles, del más al menos privilegiado.
var Roles = []Role{RoleSuperAdmin, RoleAdminCliente, RoleGerente, RoleVendedor}

// ParseRole convierte un string en Role; ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid informa si el rol es uno de los cuatro definidos.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Rank privilegio del rol (4 = super_admin, 0 = desconocido).
func (r Role) Rank() int {
	switch r {
	case RoleSuperAdmin:
		return 4
	case RoleAdminCliente:
		return 3
	case RoleGerente:
		return 2
	case RoleVendedor:
		return 1
	}
	return 0
}

// AtLeast informa si r tiene al menos el privilegio de other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.Rank() >= other.Rank()
}

func (r Role) String() string { return string(r) }

// Identity identidad de quien hace la petición.
type Identity interface {
	UserID() string
	Role() Role
	CompanyID() string
	// IsProvider informa si la empresa de la identidad es la proveedora de la plataforma.
	IsProvider() bool
	IsAuthenticated() bool
}

// Principal implementación concreta de Identity (se construye desde los claims del JWT).
type Principal struct {
	userID        string
	role          Role
	companyID     string
	provider      bool
	authenticated bool
}

var _ Identity = Principal{}

// NewPrincipal construye una identidad autenticada.
func NewPrincipal(userID string, role Role, companyID string, provider bool) Principal {
	return Principal{
		userID:        userID,
		role:          role,
		companyID:     companyID,
		provider:      provider,
		authenticated: userID != "",
	}
}

// Anonymous identidad de una petición sin token.
func Anonymous() Principal { return Principal{} }

func (p Principal) UserID() string        { return p.userID }
func (p Principal) Role() Role            { return p.role }
func (p Principal) CompanyID() string     { return p.companyID }
func (p Principal) IsProvider() bool      { return p.provider }
func (p Principal) IsAuthenticated() bool { return p.authenticated }
