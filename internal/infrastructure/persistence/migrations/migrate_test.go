package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openMenus(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "menus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE daily_menus (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL
	)`)
	require.NoError(t, err)
	return db
}

func insertMenu(db *sql.DB, id, status string) error {
	_, err := db.Exec(`INSERT INTO daily_menus (id, user_id, date, status) VALUES (?, 'u1', '2026-03-10', ?)`, id, status)
	return err
}

func TestUp_EnforcesOneLiveMenuPerDay(t *testing.T) {
	db := openMenus(t)

	require.NoError(t, Up(db, "sqlite", zap.NewNop()))
	require.NoError(t, Up(db, "sqlite", zap.NewNop()), "second run has nothing to apply")

	require.NoError(t, insertMenu(db, "a", "archived"))
	require.NoError(t, insertMenu(db, "b", "archived"))
	require.NoError(t, insertMenu(db, "c", "edited"))
	assert.Error(t, insertMenu(db, "d", "selected"))

	// the database handle survives the migrator
	require.NoError(t, db.Ping())
}

func TestMigrator_VersionAndDown(t *testing.T) {
	db := openMenus(t)
	m, err := New(db, "sqlite", zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	v, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	v, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	require.NoError(t, m.Down())
	require.NoError(t, insertMenu(db, "a", "selected"))
	assert.NoError(t, insertMenu(db, "b", "selected"))
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	db := openMenus(t)

	_, err := New(db, "memory", zap.NewNop())

	assert.Error(t, err)
}
