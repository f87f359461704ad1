package repository

import (
	"fmt"
	"testing"
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInbox(t *testing.T, r *NotificationRepository, userID uint, times []time.Time) {
	t.Helper()
	for i, at := range times {
		require.NoError(t, r.Create(&models.Notification{
			UserID:    userID,
			Kind:      domain.NotifKindSystem,
			Title:     fmt.Sprintf("notification %d", i),
			Message:   "body",
			CreatedAt: at,
		}))
	}
}

func TestCleanupTrimsToKeepCount(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewNotificationRepository(db)
	id := seedUser(t, ledgers, 10)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Seven fresh entries with distinct timestamps.
	var times []time.Time
	for i := 0; i < 7; i++ {
		times = append(times, now.Add(-time.Duration(i)*time.Hour))
	}
	seedInbox(t, r, id, times)

	require.NoError(t, r.Cleanup(id, now))
	list, err := r.ListPersonal(id)
	require.NoError(t, err)
	require.Len(t, list, domain.InboxKeepCount)
	// Newest first, and the five survivors are the five most recent.
	for i := 0; i < len(list)-1; i++ {
		assert.True(t, !list[i].CreatedAt.Before(list[i+1].CreatedAt))
	}
	assert.Equal(t, "notification 0", list[0].Title)
	assert.Equal(t, "notification 4", list[4].Title)
}

func TestCleanupEvictsByAgeRegardlessOfCount(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewNotificationRepository(db)
	id := seedUser(t, ledgers, 11)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	seedInbox(t, r, id, []time.Time{
		now.Add(-time.Hour),
		now.Add(-6 * 24 * time.Hour), // stale, must go even though count <= 5
	})

	require.NoError(t, r.Cleanup(id, now))
	list, err := r.ListPersonal(id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "notification 0", list[0].Title)
}

func TestCleanupIsIdempotent(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewNotificationRepository(db)
	id := seedUser(t, ledgers, 12)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	var times []time.Time
	for i := 0; i < 9; i++ {
		times = append(times, now.Add(-time.Duration(i)*time.Minute))
	}
	seedInbox(t, r, id, times)

	require.NoError(t, r.Cleanup(id, now))
	first, err := r.ListPersonal(id)
	require.NoError(t, err)

	require.NoError(t, r.Cleanup(id, now))
	second, err := r.ListPersonal(id)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestMarkRead(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewNotificationRepository(db)
	id := seedUser(t, ledgers, 13)
	now := time.Now().UTC()

	n := models.Notification{UserID: id, Kind: domain.NotifKindAdmin, Title: "hi", CreatedAt: now}
	require.NoError(t, r.Create(&n))

	require.NoError(t, r.MarkRead(n.ID, id, now))
	list, err := r.ListPersonal(id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ReadAt)

	// Wrong owner never flips someone else's entry.
	other := seedUser(t, ledgers, 14)
	n2 := models.Notification{UserID: id, Kind: domain.NotifKindAdmin, Title: "hi2", CreatedAt: now}
	require.NoError(t, r.Create(&n2))
	require.NoError(t, r.MarkRead(n2.ID, other, now))
	list, err = r.ListPersonal(id)
	require.NoError(t, err)
	assert.Nil(t, list[0].ReadAt)
}

func TestDeletePersonalScopedToOwner(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewNotificationRepository(db)
	owner := seedUser(t, ledgers, 15)
	other := seedUser(t, ledgers, 16)
	now := time.Now().UTC()

	n := models.Notification{UserID: owner, Kind: domain.NotifKindAdmin, Title: "keep", CreatedAt: now}
	require.NoError(t, r.Create(&n))

	// A delete aimed at the wrong inbox leaves the entry alone.
	assert.ErrorIs(t, r.DeletePersonal(other, n.ID), ErrNotFound)
	list, err := r.ListPersonal(owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.DeletePersonal(owner, n.ID))
	list, err = r.ListPersonal(owner)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, r.DeletePersonal(owner, n.ID), ErrNotFound)
}

func TestBroadcastFeedCappedAtReadTime(t *testing.T) {
	db := testDB(t)
	r := NewNotificationRepository(db)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		require.NoError(t, r.CreateBroadcast(&models.Broadcast{
			Title:     fmt.Sprintf("broadcast %d", i),
			Message:   "all hands",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := r.ListBroadcasts()
	require.NoError(t, err)
	require.Len(t, list, domain.BroadcastCap)
	assert.Equal(t, "broadcast 7", list[0].Title)

	// The cap is a read-time view; nothing was deleted.
	var count int64
	require.NoError(t, db.Model(&models.Broadcast{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)
}

func TestDeleteBroadcast(t *testing.T) {
	db := testDB(t)
	r := NewNotificationRepository(db)
	b := models.Broadcast{Title: "gone soon", CreatedAt: time.Now().UTC()}
	require.NoError(t, r.CreateBroadcast(&b))
	require.NoError(t, r.DeleteBroadcast(b.ID))
	assert.ErrorIs(t, r.DeleteBroadcast(b.ID), ErrNotFound)
}
