package dbstorage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

// Тест требует живой PostgreSQL в TEST_DATABASE_DSN
func TestPostgresDB(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}
	ctx := context.Background()
	pg, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	defer pg.Close()
	require.NoError(t, pg.Ping(ctx))

	before, err := pg.MaxOrderIndex(ctx)
	require.NoError(t, err)

	id := uuid.NewString()
	require.NoError(t, pg.Insert(ctx, storage.Website{ID: id, Description: "Fly", URL: "geo-fs.com", OrderIndex: before + 1}))
	defer pg.Delete(ctx, id)

	after, err := pg.MaxOrderIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	list, err := pg.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, id, list[0].ID)

	require.NoError(t, pg.Update(ctx, id, "Fly a plane", "https://geo-fs.com"))
	assert.ErrorIs(t, pg.Update(ctx, uuid.NewString(), "x", "y"), internalerrors.ErrNotFound)
	assert.ErrorIs(t, pg.Delete(ctx, uuid.NewString()), internalerrors.ErrNotFound)
}
