package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 7*24*60, cfg.JWT.RefreshExpiration)
	assert.Equal(t, "America/Santiago", cfg.App.Timezone)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("ADMIN_USERNAME", "root")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 15, cfg.JWT.Expiration)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "root", cfg.Bootstrap.AdminUsername)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword")
}

func TestLoad_Invalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("APP_TIMEZONE", "Marte/Olympus")
	_, err = config.Load()
	assert.Error(t, err)
}
