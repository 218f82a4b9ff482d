package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SversusN/bodacious/config"
	"github.com/SversusN/bodacious/internal/clicks"
	"github.com/SversusN/bodacious/internal/storage/primitivestorage"
	"github.com/SversusN/bodacious/internal/storage/sqlitestorage"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

func testConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	cfg, err := config.Parse(append([]string{"-f", "", "-c", "", "-g", ""}, args...))
	require.NoError(t, err)
	return cfg
}

func TestNewWithConfigMemory(t *testing.T) {
	a, err := NewWithConfig(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &primitivestorage.MapStorage{}, a.Storage)
	assert.IsType(t, &clicks.MemoryStore{}, a.Clicks)
	assert.NotNil(t, a.Handlers)
	assert.Nil(t, a.Subnet)
}

func TestNewWithConfigFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t,
		"-f", filepath.Join(dir, "websites.json"),
		"-c", filepath.Join(dir, "clicks.json"),
		"-t", "192.168.0.0/24",
	)
	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Storage.Insert(ctx, storage.Website{ID: "1", Description: "d", URL: "u", OrderIndex: 1}))
	_, err = a.Clicks.Increment(ctx, "geo-fs.com")
	require.NoError(t, err)
	assert.NotNil(t, a.Subnet)
	require.NoError(t, a.Close())

	// после перезапуска данные на месте
	a, err = NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()
	list, err := a.Storage.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	n, err := a.Clicks.Count(ctx, "geo-fs.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewWithConfigHTTPSCookies(t *testing.T) {
	a, err := NewWithConfig(context.Background(), testConfig(t, "-https", "-tls-host", "gallery.example"))
	require.NoError(t, err)
	defer a.Close()

	rec := httptest.NewRecorder()
	_, err = a.Auth.SetSession(rec)
	require.NoError(t, err)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.True(t, rec.Result().Cookies()[0].Secure)
	assert.Equal(t, ":443", a.newHTTPServer(a.CreateRouter(a.Handlers)).Addr)
}

func TestNewWithConfigSQLite(t *testing.T) {
	cfg := testConfig(t, "-l", filepath.Join(t.TempDir(), "bodacious.db"))
	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()
	assert.IsType(t, &sqlitestorage.Store{}, a.Storage)
}

func TestNewWithConfigBadSubnet(t *testing.T) {
	a, err := NewWithConfig(context.Background(), testConfig(t, "-t", "not-a-cidr"))
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Subnet)
}

func TestNewWithConfigLargeClicksFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clicks.json")
	counts := make(map[string]int)
	for i := 0; i < 2000; i++ {
		counts[fmt.Sprintf("https://site-%04d.example.com/a/long/enough/path", i)] = i + 1
	}
	data, err := json.Marshal(counts)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, '\n'), 0666))

	a, err := NewWithConfig(context.Background(), testConfig(t, "-c", path))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &clicks.FileStore{}, a.Clicks)
	loaded, err := a.Clicks.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, counts, loaded)
}
