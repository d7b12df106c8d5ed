package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/adapters/store"
	"go.trai.ch/railfare/internal/core/domain"
)

func newStore(t *testing.T) *store.FileStore {
	t.Helper()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return s
}

func TestFileStore_Stations(t *testing.T) {
	s := newStore(t)

	got, digest, err := s.Stations()
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, digest)

	roster := []domain.Station{
		{Name: "广州南", Code: "IZQ", Pinyin: "guangzhounan", City: "广州"},
		{Name: "阳江", Code: "YJQ", Pinyin: "yangjiang", City: "阳江"},
	}
	written, err := s.PutStations(roster)
	require.NoError(t, err)
	assert.Equal(t, store.RosterDigest(roster), written)

	reopened, err := store.NewFileStore(s.Root())
	require.NoError(t, err)
	got, digest, err = reopened.Stations()
	require.NoError(t, err)
	assert.Equal(t, roster, got)
	assert.Equal(t, written, digest)
	assert.FileExists(t, s.StationsPath())
}

func TestRosterDigest(t *testing.T) {
	a := []domain.Station{{Name: "广州南", Code: "IZQ"}}
	b := []domain.Station{{Name: "广州南", Code: "IZA"}}
	assert.Equal(t, store.RosterDigest(a), store.RosterDigest([]domain.Station{{Name: "广州南", Code: "IZQ"}}))
	assert.NotEqual(t, store.RosterDigest(a), store.RosterDigest(b))
}

func TestFileStore_RunNumbers(t *testing.T) {
	s := newStore(t)

	added, err := s.PutRunNumbers([]domain.RunNumberRecord{
		{Date: "2026-10-20", RunNumber: "6i000K123400", RunCode: "K1234"},
		{Date: "2026-10-20", RunNumber: "6i000K12000", RunCode: "K12"},
		{Date: "2026-10-20", RunNumber: "6i000K123300", RunCode: "K1233"},
		{Date: "2026-10-21", RunNumber: "6i000K123400", RunCode: "K1234"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, added)

	added, err = s.PutRunNumbers([]domain.RunNumberRecord{
		{Date: "2026-10-20", RunNumber: "other", RunCode: "K1234"},
		{Date: "2026-10-20", RunNumber: "6i000G10000", RunCode: "G100"},
		{Date: "2026-10-20", RunNumber: "6i000G10000", RunCode: "G100"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added, "existing (date, run code) pairs are skipped")

	prefix, err := s.RunNumbers("2026-10-20", "K12", false)
	require.NoError(t, err)
	codes := make([]string, 0, len(prefix))
	for _, r := range prefix {
		codes = append(codes, r.RunCode)
	}
	assert.Equal(t, []string{"K12", "K1233", "K1234"}, codes)

	exact, err := s.RunNumbers("2026-10-20", "K1234", true)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "6i000K123400", exact[0].RunNumber)

	none, err := s.RunNumbers("2026-11-01", "K12", false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileStore_RunNumbersInvalidDate(t *testing.T) {
	s := newStore(t)
	_, err := s.PutRunNumbers([]domain.RunNumberRecord{{Date: "../../etc", RunCode: "K1"}})
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestFileStore_Snapshots(t *testing.T) {
	s := newStore(t)

	snap := domain.Snapshot{
		Date:     "2026-10-20",
		QueryKey: "K1234/广州南-阳江",
		Category: domain.SnapshotFare,
		Payload:  json.RawMessage(`{"total_price":45.00}`),
	}
	require.NoError(t, s.PutSnapshot(snap))

	got, err := s.Snapshot("2026-10-20", snap.QueryKey, domain.SnapshotFare)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"total_price":45.00}`, string(got.Payload))
	assert.False(t, got.CreatedAt.IsZero())

	other, err := s.Snapshot("2026-10-20", snap.QueryKey, domain.SnapshotSchedule)
	require.NoError(t, err)
	assert.Nil(t, other)

	snap.Payload = json.RawMessage(`{"total_price":40.00}`)
	require.NoError(t, s.PutSnapshot(snap))
	got, err = s.Snapshot("2026-10-20", snap.QueryKey, domain.SnapshotFare)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_price":40.00}`, string(got.Payload))

	entries, err := os.ReadDir(filepath.Join(s.Root(), domain.SnapshotsDirName, "2026-10-20"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "replacing leaves no temp files behind")
}

func TestFileStore_CorruptDocument(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.StationsPath(), []byte("{"), 0o600))

	_, _, err := s.Stations()
	require.ErrorIs(t, err, domain.ErrStoreUnmarshalFailed)
}

func TestFileStore_Cleanup(t *testing.T) {
	s := newStore(t)
	now := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

	_, err := s.PutRunNumbers([]domain.RunNumberRecord{
		{Date: "2026-10-01", RunNumber: "a", RunCode: "K1"},
		{Date: "2026-10-12", RunNumber: "b", RunCode: "K1"},
		{Date: "2026-10-14", RunNumber: "c", RunCode: "K1"},
	})
	require.NoError(t, err)

	require.NoError(t, s.PutSnapshot(domain.Snapshot{
		Date: "2026-10-15", QueryKey: "old", Category: domain.SnapshotTickets,
		CreatedAt: now.Add(-4 * 24 * time.Hour),
	}))
	require.NoError(t, s.PutSnapshot(domain.Snapshot{
		Date: "2026-10-20", QueryKey: "fresh", Category: domain.SnapshotTickets,
		CreatedAt: now.Add(-time.Hour),
	}))

	report, err := s.Cleanup(now, domain.RetentionConfig{
		AutoCleanRunNumbers: true,
		RunNumbers:          7 * 24 * time.Hour,
		Snapshots:           3 * 24 * time.Hour,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CleanupReport{RunNumberFiles: 2, Snapshots: 1}, report)

	kept, err := s.RunNumbers("2026-10-14", "K1", true)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	old, err := s.Snapshot("2026-10-15", "old", domain.SnapshotTickets)
	require.NoError(t, err)
	assert.Nil(t, old)
	assert.NoDirExists(t, filepath.Join(s.Root(), domain.SnapshotsDirName, "2026-10-15"))

	fresh, err := s.Snapshot("2026-10-20", "fresh", domain.SnapshotTickets)
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}

func TestFileStore_CleanupKeepsRunNumbersWhenDisabled(t *testing.T) {
	s := newStore(t)
	now := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

	_, err := s.PutRunNumbers([]domain.RunNumberRecord{{Date: "2026-09-01", RunNumber: "a", RunCode: "K1"}})
	require.NoError(t, err)

	report, err := s.Cleanup(now, domain.RetentionConfig{RunNumbers: 24 * time.Hour})
	require.NoError(t, err)
	assert.Zero(t, report.RunNumberFiles)
}
