package migrator

import (
	"database/sql"
	"embed"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

//go:embed testdata/*.sql
var testMigrations embed.FS

func TestApplyMigrationsSQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	m := MustGetNewMigrator(testMigrations, "testdata")
	require.NoError(t, m.ApplyMigrations(db, SQLite))

	_, err = db.Exec(`INSERT INTO sample (id) VALUES ('x')`)
	assert.NoError(t, err)
}

func TestApplyMigrationsUnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	err = MustGetNewMigrator(testMigrations, "testdata").ApplyMigrations(db, Dialect("oracle"))
	assert.ErrorContains(t, err, "unknown dialect")
}

func TestMustGetNewMigratorPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustGetNewMigrator(testMigrations, "missing")
	})
}
