package repository

import (
	"testing"
	"time"

	"cinebox/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSavedConverges(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewLibraryRepository(db)
	id := seedUser(t, ledgers, 20)
	ref := MediaRef{MediaID: 550, MediaType: domain.MediaTypeMovie, Title: "Fight Club"}

	saved, err := r.ToggleSaved(id, ref)
	require.NoError(t, err)
	assert.True(t, saved)

	// A second toggle converges to the opposite of the store's actual
	// state, whatever the caller believed.
	saved, err = r.ToggleSaved(id, ref)
	require.NoError(t, err)
	assert.False(t, saved)

	ok, err := r.IsSaved(id, ref.MediaID, ref.MediaType)
	require.NoError(t, err)
	assert.False(t, ok)

	saved, err = r.ToggleSaved(id, ref)
	require.NoError(t, err)
	assert.True(t, saved)
	list, err := r.ListSaved(id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(550), list[0].MediaID)
}

func TestHistoryDuplicateMovesToFront(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewLibraryRepository(db)
	id := seedUser(t, ledgers, 21)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	first := MediaRef{MediaID: 1, MediaType: domain.MediaTypeMovie, Title: "One"}
	second := MediaRef{MediaID: 2, MediaType: domain.MediaTypeSeries, Title: "Two"}

	require.NoError(t, r.TouchHistory(id, first, base))
	require.NoError(t, r.TouchHistory(id, second, base.Add(time.Minute)))
	// Re-watch the first item: it must appear once, at the front.
	require.NoError(t, r.TouchHistory(id, first, base.Add(2*time.Minute)))

	list, err := r.ListHistory(id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].MediaID)
	assert.Equal(t, int64(2), list[1].MediaID)
}

func TestHistoryBoundedWithOldestEvicted(t *testing.T) {
	db := testDB(t)
	ledgers := NewLedgerRepository(db)
	r := NewLibraryRepository(db)
	id := seedUser(t, ledgers, 22)
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	for i := 0; i < domain.HistoryCap+3; i++ {
		ref := MediaRef{MediaID: int64(i + 1), MediaType: domain.MediaTypeMovie}
		require.NoError(t, r.TouchHistory(id, ref, base.Add(time.Duration(i)*time.Minute)))
	}

	list, err := r.ListHistory(id)
	require.NoError(t, err)
	require.Len(t, list, domain.HistoryCap)
	// Newest first; the three oldest entries fell off.
	assert.Equal(t, int64(domain.HistoryCap+3), list[0].MediaID)
	assert.Equal(t, int64(4), list[len(list)-1].MediaID)
}
