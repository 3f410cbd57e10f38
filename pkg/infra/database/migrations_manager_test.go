package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrationsManager_ApplyPendingOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrations.db")), &gorm.Config{})
	require.NoError(t, err)

	calls := 0
	RegisterMigration(Migration{
		ID:   "20990101_test_table",
		Name: "create test table",
		Up: func(tx *gorm.DB) error {
			calls++
			return tx.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE widgets").Error
		},
	})

	manager := NewMigrationsManager(db)
	require.NoError(t, manager.ApplyPending())
	require.NoError(t, manager.ApplyPending())
	assert.Equal(t, 1, calls)
	assert.True(t, db.Migrator().HasTable("widgets"))

	require.NoError(t, manager.RollbackLast())
	assert.False(t, db.Migrator().HasTable("widgets"))

	var count int64
	require.NoError(t, db.Model(&appliedMigration{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterMigration_DuplicatePanics(t *testing.T) {
	RegisterMigration(Migration{ID: "20990102_dup", Up: func(*gorm.DB) error { return nil }})
	assert.Panics(t, func() {
		RegisterMigration(Migration{ID: "20990102_dup", Up: func(*gorm.DB) error { return nil }})
	})
}
