package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temucosoft/retail-api/internal/domain/identity"
)

func TestRole_OrdenDePrivilegio(t *testing.T) {
	assert.True(t, identity.RoleSuperAdmin.AtLeast(identity.RoleAdminCliente))
	assert.True(t, identity.RoleAdminCliente.AtLeast(identity.RoleGerente))
	assert.True(t, identity.RoleGerente.AtLeast(identity.RoleVendedor))
	assert.False(t, identity.RoleVendedor.AtLeast(identity.RoleGerente))
	assert.False(t, identity.Role("root").AtLeast(identity.RoleVendedor))
}

func TestParseRole(t *testing.T) {
	for _, r := range identity.Roles {
		got, ok := identity.ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
	_, ok := identity.ParseRole("admin")
	assert.False(t, ok)
}

func TestCapabilitiesOf(t *testing.T) {
	tests := []struct {
		name     string
		id       identity.Identity
		scope    identity.Scope
		operator bool
	}{
		{"anónimo", identity.Anonymous(), identity.ScopeNone, false},
		{"vendedor con empresa", identity.NewPrincipal("u1", identity.RoleVendedor, "c1", false), identity.ScopeSingleCompany, false},
		{"admin_cliente", identity.NewPrincipal("u1", identity.RoleAdminCliente, "c1", false), identity.ScopeSingleCompany, false},
		{"super_admin proveedor", identity.NewPrincipal("u1", identity.RoleSuperAdmin, "p1", true), identity.ScopePlatformWide, true},
		{"super_admin sin empresa", identity.NewPrincipal("u1", identity.RoleSuperAdmin, "", false), identity.ScopePlatformWide, true},
		{"super_admin de empresa cliente", identity.NewPrincipal("u1", identity.RoleSuperAdmin, "c1", false), identity.ScopePlatformWide, false},
		{"gerente sin empresa", identity.NewPrincipal("u1", identity.RoleGerente, "", false), identity.ScopeNone, false},
		{"rol desconocido", identity.NewPrincipal("u1", identity.Role("x"), "c1", false), identity.ScopeNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := identity.CapabilitiesOf(tt.id)
			assert.Equal(t, tt.scope, caps.Scope)
			assert.Equal(t, tt.operator, caps.PlatformOperator())
		})
	}
}
