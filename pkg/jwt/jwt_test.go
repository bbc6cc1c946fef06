package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	sub := jwt.Subject{UserID: "u-1", CompanyID: "c-1", Role: "gerente"}
	token, err := jwt.Generate("s3cret", "retail-api", sub, jwt.TypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := jwt.Parse("s3cret", token, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "c-1", claims.CompanyID)
	assert.Equal(t, "gerente", claims.Role)
	assert.False(t, claims.Provider)
	assert.Equal(t, "retail-api", claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	sub := jwt.Subject{UserID: "u-1", Role: "super_admin", Provider: true}
	refresh, err := jwt.Generate("s3cret", "retail-api", sub, jwt.TypeRefresh, time.Hour)
	require.NoError(t, err)

	_, err = jwt.Parse("s3cret", refresh, jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrWrongType)

	_, err = jwt.Parse("otro", refresh, jwt.TypeRefresh)
	assert.Error(t, err)

	expired, err := jwt.Generate("s3cret", "retail-api", sub, jwt.TypeAccess, -time.Minute)
	require.NoError(t, err)
	_, err = jwt.Parse("s3cret", expired, jwt.TypeAccess)
	assert.Error(t, err)

	_, err = jwt.Generate("", "retail-api", sub, jwt.TypeAccess, time.Minute)
	assert.Error(t, err)
}
