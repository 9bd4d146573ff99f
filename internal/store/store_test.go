package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/scrob/internal/scrobble"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "scrob.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func testRecord(at time.Time) scrobble.Record {
	return scrobble.Record{
		AlbumArtist: "Autechre",
		Album:       "Tri Repetae",
		Title:       "Dael",
		Duration:    200,
		MBTrackID:   "8f3471b5-7e6a-48da-86a9-c1c07a0f47ae",
		At:          at,
	}
}

func TestStore_InsertAndQueryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	at := time.Unix(1_750_000_000, 0)

	id, err := s.Insert(testRecord(at))
	require.NoError(t, err)
	assert.NotZero(t, id)

	// since == at includes the record.
	got, err := s.Since(at)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := testRecord(at)
	want.ID = id
	assert.Equal(t, want, got[0])

	// since > at excludes it.
	got, err = s.Since(at.Add(time.Second))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SinceOrdersByTime(t *testing.T) {
	s := openTestStore(t)
	base := time.Unix(1_750_000_000, 0)

	// Inserted out of order on purpose.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		rec := testRecord(base.Add(offset))
		rec.Title = offset.String()
		_, err := s.Insert(rec)
		require.NoError(t, err)
	}

	got, err := s.Since(base)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].At.Before(got[i-1].At),
			"records out of order: %v before %v", got[i].At, got[i-1].At)
	}
}

func TestStore_EmptyMBTrackIDRoundTrips(t *testing.T) {
	s := openTestStore(t)
	at := time.Unix(1_750_000_000, 0)

	rec := testRecord(at)
	rec.MBTrackID = ""
	_, err := s.Insert(rec)
	require.NoError(t, err)

	got, err := s.Since(at)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].MBTrackID)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrob.db")

	s1, err := Open(path)
	require.NoError(t, err)
	at := time.Unix(1_750_000_000, 0)
	_, err = s1.Insert(testRecord(at))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening must not recreate the table or lose data.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Since(at)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
