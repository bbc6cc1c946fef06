package identity

// Scope alcance de tenant de una identidad.
type Scope int

const (
	// ScopeNone identidad sin acceso a datos de tenant (anónima o sin empresa).
	ScopeNone Scope = iota
	// ScopeSingleCompany restringido a la empresa del usuario.
	ScopeSingleCompany
	// ScopePlatformWide sin restricción de tenant.
	ScopePlatformWide
)

func (s Scope) String() string {
	switch s {
	case ScopeSingleCompany:
		return "single_company"
	case ScopePlatformWide:
		return "platform_wide"
	}
	return "none"
}

// Capabilities conjunto de capacidades calculado una vez por petición:
// {alcance de tenant} × {rol}. Las políticas y el filtrado por tenant solo leen esto.
type Capabilities struct {
	Authenticated bool
	UserID        string
	Role          Role
	Scope         Scope
	CompanyID     string
	Provider      bool
}

// CapabilitiesOf deriva las capacidades de una identidad.
// super_admin siempre tiene alcance de plataforma para el filtrado por tenant.
func CapabilitiesOf(id Identity) Capabilities {
	if id == nil || !id.IsAuthenticated() || !id.Role().Valid() {
		return Capabilities{}
	}
	c := Capabilities{
		Authenticated: true,
		UserID:        id.UserID(),
		Role:          id.Role(),
		CompanyID:     id.CompanyID(),
		Provider:      id.IsProvider(),
	}
	switch {
	case c.Role == RoleSuperAdmin:
		c.Scope = ScopePlatformWide
	case c.CompanyID != "":
		c.Scope = ScopeSingleCompany
	default:
		c.Scope = ScopeNone
	}
	return c
}

// HasRole informa si el rol de las capacidades está entre roles.
func (c Capabilities) HasRole(roles ...Role) bool {
	if !c.Authenticated {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// PlatformWide informa si no aplica filtrado por tenant.
func (c Capabilities) PlatformWide() bool {
	return c.Authenticated && c.Scope == ScopePlatformWide
}

// PlatformOperator super_admin de la empresa proveedora (o sin empresa):
// único habilitado para la administración de la plataforma.
func (c Capabilities) PlatformOperator() bool {
	return c.Authenticated && c.Role == RoleSuperAdmin && (c.CompanyID == "" || c.Provider)
}
