package service

import (
	"testing"
	"time"

	"cinebox/internal/database"
	"cinebox/internal/domain"
	"cinebox/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func newRewardFixture(t *testing.T) (*RewardService, *repository.LedgerRepository, uint) {
	t.Helper()
	db := testDB(t)
	ledgers := repository.NewLedgerRepository(db)
	u, err := ledgers.CreateOrRefresh(100, repository.Profile{DisplayName: "Watcher"}, time.Now().UTC())
	require.NoError(t, err)
	svc := NewRewardService(ledgers, nil, zerolog.Nop(), 600)
	return svc, ledgers, u.ID
}

func TestRecordWatchSecondsAccrues(t *testing.T) {
	svc, ledgers, id := newRewardFixture(t)
	at := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	var total int
	for _, s := range []int{60, 60, 60, 45} {
		svc.RecordWatchSeconds(id, s)
		total += s
	}

	got, err := ledgers.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, int64(total), got.LifetimeWatchedSeconds)
	assert.Equal(t, int64(total), got.DailyWatchedSeconds)
	assert.InDelta(t, float64(total)*domain.CreditPerSecond, got.Balance, 1e-9)
	require.NotNil(t, got.LastActive)
	assert.WithinDuration(t, at, *got.LastActive, time.Second)
}

func TestRecordWatchSecondsRollsDailyCounter(t *testing.T) {
	svc, ledgers, id := newRewardFixture(t)

	lateNight := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	svc.now = func() time.Time { return lateNight }
	svc.RecordWatchSeconds(id, 300)

	pastMidnight := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)
	svc.now = func() time.Time { return pastMidnight }
	svc.RecordWatchSeconds(id, 60)

	got, err := ledgers.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", got.DailyDay)
	assert.Equal(t, int64(60), got.DailyWatchedSeconds)
	assert.Equal(t, int64(360), got.LifetimeWatchedSeconds)
}

func TestRecordWatchSecondsDropsBadInput(t *testing.T) {
	svc, ledgers, id := newRewardFixture(t)

	svc.RecordWatchSeconds(id, 0)
	svc.RecordWatchSeconds(id, -5)
	svc.RecordWatchSeconds(id, 100000) // above the flush ceiling
	svc.RecordWatchSeconds(9999, 60)   // unknown identity

	got, err := ledgers.GetByID(id)
	require.NoError(t, err)
	assert.Zero(t, got.LifetimeWatchedSeconds)
	assert.Zero(t, got.Balance)
}

func TestRecordWatchSecondsIgnoresBannedIdentity(t *testing.T) {
	svc, ledgers, id := newRewardFixture(t)
	require.NoError(t, ledgers.SetBanned(id, true))

	svc.RecordWatchSeconds(id, 60)

	got, err := ledgers.GetByID(id)
	require.NoError(t, err)
	assert.Zero(t, got.LifetimeWatchedSeconds)
	assert.Zero(t, got.Balance)
}
