package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
)

func TestLockOrInsert_ReintentaTrasBorradoConcurrente(t *testing.T) {
	inserts, locks := 0, 0
	insert := func(context.Context) error { inserts++; return nil }
	lock := func(context.Context) (*entity.Cart, error) {
		locks++
		if locks == 1 {
			return nil, nil
		}
		return &entity.Cart{ID: "cart-2", UserID: "u-1"}, nil
	}

	c, err := lockOrInsert(context.Background(), insert, lock)
	require.NoError(t, err)
	assert.Equal(t, "cart-2", c.ID)
	assert.Equal(t, 2, inserts)
	assert.Equal(t, 2, locks)
}

func TestLockOrInsert_SinFilaTrasDosIntentos(t *testing.T) {
	inserts := 0
	insert := func(context.Context) error { inserts++; return nil }
	lock := func(context.Context) (*entity.Inventory, error) { return nil, nil }

	_, err := lockOrInsert(context.Background(), insert, lock)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, inserts)
}

func TestLockOrInsert_ErrorDeInsercion(t *testing.T) {
	boom := errors.New("conexión cerrada")
	called := false
	lock := func(context.Context) (*entity.Inventory, error) { called = true; return nil, nil }

	_, err := lockOrInsert(context.Background(), func(context.Context) error { return boom }, lock)
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
