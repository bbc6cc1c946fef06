package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/pkg/config"
)

func TestTune_LimitesYDialIPv4(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@db.local:5432/retail?sslmode=disable")
	require.NoError(t, err)

	tune(pc, config.DBConfig{MaxConns: 8, MinConns: 20, ForceIPv4: true})

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns, "MinConns mayor que MaxConns se ignora")
	assert.NotNil(t, pc.ConnConfig.DialFunc)
	assert.NotNil(t, pc.AfterConnect)
}

func TestMigrateURL_EsquemaPgx5(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db", migrateURL("postgres://u:p@h:5432/db"))
	assert.Equal(t, "pgx5://u:p@h/db", migrateURL("postgresql://u:p@h/db"))
	assert.Equal(t, "host=h dbname=db", migrateURL("host=h dbname=db"))
}
