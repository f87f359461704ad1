package repository

import (
	"testing"
	"time"

	"cinebox/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an in-memory sqlite database. The pool is capped to a
// single connection so concurrent transactions serialize the way a row
// lock would under mysql.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, r *LedgerRepository, platformID int64) uint {
	t.Helper()
	u, err := r.CreateOrRefresh(platformID, Profile{
		DisplayName: "Test Viewer",
		Handle:      "viewer",
	}, time.Now().UTC())
	require.NoError(t, err)
	return u.ID
}
