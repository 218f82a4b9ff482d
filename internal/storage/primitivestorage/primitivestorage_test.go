package primitivestorage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/pkg/utils"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

func TestMapStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorage(nil, utils.ErrNoFile)
	require.NoError(t, err)

	maxIndex, err := s.MaxOrderIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, maxIndex)

	require.NoError(t, s.Insert(ctx, storage.Website{ID: "a", Description: "Fly", URL: "geo-fs.com", OrderIndex: 1}))
	require.NoError(t, s.Insert(ctx, storage.Website{ID: "b", Description: "Draw", URL: "physicssketchpad.com", OrderIndex: 2}))
	assert.Error(t, s.Insert(ctx, storage.Website{ID: "a"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	maxIndex, err = s.MaxOrderIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, maxIndex)

	require.NoError(t, s.Update(ctx, "a", "Fly a plane", "https://geo-fs.com"))
	assert.ErrorIs(t, s.Update(ctx, "zzz", "x", "y"), internalerrors.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "b"))
	assert.ErrorIs(t, s.Delete(ctx, "b"), internalerrors.ErrNotFound)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []storage.Website{{ID: "a", Description: "Fly a plane", URL: "https://geo-fs.com", OrderIndex: 1}}, list)
}

func TestMapStorageFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "websites.json")

	fh, err := utils.NewFileHelper(path)
	require.NoError(t, err)
	s, err := NewStorage(fh, nil)
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, storage.Website{ID: "a", Description: "Fly", URL: "geo-fs.com", OrderIndex: 1}))
	require.NoError(t, s.Insert(ctx, storage.Website{ID: "b", Description: "Draw", URL: "physicssketchpad.com", OrderIndex: 2}))
	require.NoError(t, s.Insert(ctx, storage.Website{ID: "c", Description: "Slime", URL: "slime-simulator.com", OrderIndex: 3}))
	require.NoError(t, s.Delete(ctx, "c"))
	require.NoError(t, s.Update(ctx, "b", "Draw with gravity", "physicssketchpad.com"))
	require.NoError(t, s.Close())

	fh, err = utils.NewFileHelper(path)
	require.NoError(t, err)
	s, err = NewStorage(fh, nil)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []storage.Website{
		{ID: "b", Description: "Draw with gravity", URL: "physicssketchpad.com", OrderIndex: 2},
		{ID: "a", Description: "Fly", URL: "geo-fs.com", OrderIndex: 1},
	}, list)
}

func TestMapStorageFileLongRecord(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "websites.json")
	longURL := "https://example.com/?q=" + strings.Repeat("a", 70*1024)

	fh, err := utils.NewFileHelper(path)
	require.NoError(t, err)
	s, err := NewStorage(fh, nil)
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, storage.Website{ID: "a", Description: "Fly", URL: "geo-fs.com", OrderIndex: 1}))
	require.NoError(t, s.Insert(ctx, storage.Website{ID: "b", Description: "Long", URL: longURL, OrderIndex: 2}))
	require.NoError(t, s.Close())

	fh, err = utils.NewFileHelper(path)
	require.NoError(t, err)
	s, err = NewStorage(fh, nil)
	require.NoError(t, err)
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, longURL, list[0].URL)

	require.NoError(t, s.Update(ctx, "a", "Fly a plane", "geo-fs.com"))
	require.NoError(t, s.Close())

	fh, err = utils.NewFileHelper(path)
	require.NoError(t, err)
	defer fh.Close()
	lines, err := fh.ReadLines()
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestMapStorageReadError(t *testing.T) {
	fh, err := utils.NewFileHelper(filepath.Join(t.TempDir(), "websites.json"))
	require.NoError(t, err)
	require.NoError(t, fh.Close())

	s, err := NewStorage(fh, nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}
