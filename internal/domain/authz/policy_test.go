package authz_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/authz"
	"github.com/temucosoft/retail-api/internal/domain/identity"
)

func caps(role identity.Role, company string, provider bool) identity.Capabilities {
	return identity.CapabilitiesOf(identity.NewPrincipal("u-1", role, company, provider))
}

var (
	superAdmin   = caps(identity.RoleSuperAdmin, "prov", true)
	adminCliente = caps(identity.RoleAdminCliente, "c1", false)
	gerente      = caps(identity.RoleGerente, "c1", false)
	vendedor     = caps(identity.RoleVendedor, "c1", false)
	anonimo      = identity.CapabilitiesOf(identity.Anonymous())
)

func TestAuthorize_TablaCanonica(t *testing.T) {
	type row struct {
		res    authz.Resource
		method string
		who    identity.Capabilities
		allow  bool
	}
	tests := []row{
		// Product: lectura pública, escritura super_admin/admin_cliente/gerente
		{authz.ResourceProduct, http.MethodGet, anonimo, true},
		{authz.ResourceProduct, http.MethodHead, anonimo, true},
		{authz.ResourceProduct, http.MethodPost, anonimo, false},
		{authz.ResourceProduct, http.MethodPost, gerente, true},
		{authz.ResourceProduct, http.MethodDelete, vendedor, false},

		// Branch
		{authz.ResourceBranch, http.MethodGet, vendedor, true},
		{authz.ResourceBranch, http.MethodGet, anonimo, false},
		{authz.ResourceBranch, http.MethodPost, gerente, false},
		{authz.ResourceBranch, http.MethodPut, adminCliente, true},

		// Inventory
		{authz.ResourceInventory, http.MethodOptions, vendedor, true},
		{authz.ResourceInventory, http.MethodPatch, vendedor, false},
		{authz.ResourceInventory, http.MethodPatch, gerente, true},

		// Supplier / Purchase: lectura = escritura
		{authz.ResourceSupplier, http.MethodGet, vendedor, false},
		{authz.ResourceSupplier, http.MethodGet, gerente, true},
		{authz.ResourcePurchase, http.MethodGet, vendedor, false},
		{authz.ResourcePurchase, http.MethodPost, adminCliente, true},

		// Users
		{authz.ResourceUser, http.MethodGet, gerente, false},
		{authz.ResourceUser, http.MethodGet, adminCliente, true},

		// Sale
		{authz.ResourceSale, http.MethodPost, vendedor, true},
		{authz.ResourceSale, http.MethodGet, anonimo, false},

		// Order
		{authz.ResourceOrder, http.MethodGet, vendedor, true},
		{authz.ResourceOrder, http.MethodPost, vendedor, false},
		{authz.ResourceOrder, http.MethodPost, gerente, true},

		// Cart
		{authz.ResourceCart, http.MethodPost, vendedor, true},
		{authz.ResourceCart, http.MethodGet, anonimo, false},
	}
	for _, tt := range tests {
		err := authz.Authorize(tt.who, tt.res, tt.method)
		if tt.allow {
			assert.NoError(t, err, "%s %s rol=%s", tt.method, tt.res, tt.who.Role)
		} else {
			assert.ErrorIs(t, err, domain.ErrForbidden, "%s %s rol=%s", tt.method, tt.res, tt.who.Role)
		}
	}
}

func TestAuthorize_Plataforma(t *testing.T) {
	assert.NoError(t, authz.Authorize(superAdmin, authz.ResourcePlatform, http.MethodGet))
	assert.NoError(t, authz.Authorize(caps(identity.RoleSuperAdmin, "", false), authz.ResourcePlatform, http.MethodPost))

	// super_admin de una empresa que no es la proveedora
	assert.ErrorIs(t, authz.Authorize(caps(identity.RoleSuperAdmin, "c1", false), authz.ResourcePlatform, http.MethodGet), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Authorize(adminCliente, authz.ResourcePlatform, http.MethodGet), domain.ErrForbidden)
	assert.ErrorIs(t, authz.Authorize(anonimo, authz.ResourcePlatform, http.MethodGet), domain.ErrForbidden)
}

func TestAuthorizeObject_UsuariosMismaEmpresa(t *testing.T) {
	assert.NoError(t, authz.AuthorizeObject(adminCliente, authz.ResourceUser, http.MethodPatch, "c1"))
	assert.ErrorIs(t, authz.AuthorizeObject(adminCliente, authz.ResourceUser, http.MethodPatch, "c2"), domain.ErrForbidden)
	assert.NoError(t, authz.AuthorizeObject(superAdmin, authz.ResourceUser, http.MethodDelete, "c2"))
}

func TestAuthorizeObject_ProductoIgualAColeccion(t *testing.T) {
	assert.NoError(t, authz.AuthorizeObject(anonimo, authz.ResourceProduct, http.MethodGet, ""))
	assert.ErrorIs(t, authz.AuthorizeObject(vendedor, authz.ResourceProduct, http.MethodPut, ""), domain.ErrForbidden)
	assert.NoError(t, authz.AuthorizeObject(gerente, authz.ResourceProduct, http.MethodPut, ""))
}
