package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/temucosoft/retail-api/internal/application/auth"
	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/infrastructure/memory"
)

var cfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, RefreshExpMinutes: 60 * 24 * 7, Issuer: "retail-api"}

func setup(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c-prov", Name: "TemucoSoft", RUT: "76.086.428-5", IsProvider: true, IsActive: true}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c-acme", Name: "Acme", RUT: "11.111.111-1", IsActive: true}))
	hash, err := bcrypt.GenerateFromPassword([]byte("clave123"), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []*entity.User{
		{ID: "u-root", CompanyID: "c-prov", Username: "root", Email: "root@temucosoft.cl", Role: identity.RoleSuperAdmin, RUT: "7.654.321-6", IsActive: true},
		{ID: "u-ana", CompanyID: "c-acme", Username: "ana", Email: "ana@acme.cl", Role: identity.RoleGerente, RUT: "22.222.222-2", IsActive: true},
		{ID: "u-off", CompanyID: "c-acme", Username: "off", Role: identity.RoleVendedor, RUT: "5.126.663-3"},
	} {
		u.PasswordHash = string(hash)
		require.NoError(t, s.Users().Create(ctx, u))
	}
	return auth.NewAuthUseCase(s.Users(), s.Companies(), cfg), s
}

func TestLogin(t *testing.T) {
	uc, _ := setup(t)

	out, err := uc.Login(context.Background(), dto.TokenRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Access)
	assert.NotEmpty(t, out.Refresh)
	assert.Equal(t, "gerente", out.Role)
	require.NotNil(t, out.CompanyID)
	assert.Equal(t, "c-acme", *out.CompanyID)

	p, err := uc.Authenticate(out.Access)
	require.NoError(t, err)
	assert.Equal(t, "u-ana", p.UserID())
	assert.Equal(t, identity.RoleGerente, p.Role())
	assert.False(t, p.IsProvider())
	assert.True(t, p.IsAuthenticated())

	_, err = uc.Authenticate(out.Refresh)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el refresh no sirve como acceso")
}

func TestLogin_ProveedoraMarcaProvider(t *testing.T) {
	uc, _ := setup(t)

	out, err := uc.Login(context.Background(), dto.TokenRequest{Username: "root", Password: "clave123"})
	require.NoError(t, err)
	p, err := uc.Authenticate(out.Access)
	require.NoError(t, err)
	assert.True(t, p.IsProvider())
	assert.True(t, identity.CapabilitiesOf(p).PlatformWide())
}

func TestLogin_Rechazos(t *testing.T) {
	uc, _ := setup(t)

	for _, in := range []dto.TokenRequest{
		{Username: "ana", Password: "mala"},
		{Username: "nadie", Password: "clave123"},
		{Username: "off", Password: "clave123"},
	} {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Username)
	}
}

func TestRefresh(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.TokenRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)

	ref, err := uc.Refresh(ctx, dto.RefreshRequest{Refresh: out.Refresh})
	require.NoError(t, err)
	_, err = uc.Authenticate(ref.Access)
	require.NoError(t, err)

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: out.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := s.Users().GetByID(ctx, "u-ana")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, s.Users().Update(ctx, u))
	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: out.Refresh})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfile(t *testing.T) {
	uc, _ := setup(t)

	p, err := uc.Profile(context.Background(), "u-ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", p.Username)
	require.NotNil(t, p.Company)
	assert.Equal(t, "Acme", *p.Company)

	_, err = uc.Profile(context.Background(), "u-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
