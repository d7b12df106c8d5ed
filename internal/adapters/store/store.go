// Package store implements file-backed persistence for the station roster,
// run-number records and query snapshots.
package store

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/railfare/internal/core/domain"
)

// MaxRunNumbers caps how many run-number records a single lookup returns.
const MaxRunNumbers = 200

// FileStore implements ports.Store with one JSON document per roster, per
// run-number date and per snapshot. Writes replace documents atomically.
type FileStore struct {
	root string
	mu   sync.RWMutex
}

type rosterDocument struct {
	Digest   uint64           `json:"digest"`
	Stations []domain.Station `json:"stations"`
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	root := filepath.Clean(dir)
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, domain.Annotate(domain.ErrStoreCreateFailed, "path", root, "reason", err.Error())
	}
	return &FileStore{root: root}, nil
}

// Root returns the directory the store writes into.
func (s *FileStore) Root() string {
	return s.root
}

// RosterDigest hashes the identifying fields of every station in order.
func RosterDigest(stations []domain.Station) uint64 {
	d := xxhash.New()
	for i := range stations {
		st := &stations[i]
		_, _ = d.WriteString(st.Name)
		_, _ = d.WriteString("|")
		_, _ = d.WriteString(st.Code)
		_, _ = d.WriteString("|")
		_, _ = d.WriteString(st.Pinyin)
		_, _ = d.WriteString("|")
		_, _ = d.WriteString(st.City)
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

// StationsPath is the file the roster is stored in.
func (s *FileStore) StationsPath() string {
	return filepath.Join(s.root, domain.StationsFileName)
}

// Stations returns the stored roster and its digest. A missing roster yields
// no stations and a zero digest.
func (s *FileStore) Stations() ([]domain.Station, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc rosterDocument
	found, err := readJSON(s.StationsPath(), &doc)
	if err != nil || !found {
		return nil, 0, err
	}
	return doc.Stations, doc.Digest, nil
}

// PutStations replaces the stored roster and returns its digest.
func (s *FileStore) PutStations(stations []domain.Station) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := rosterDocument{Digest: RosterDigest(stations), Stations: stations}
	if err := writeJSON(s.StationsPath(), doc); err != nil {
		return 0, err
	}
	return doc.Digest, nil
}

func (s *FileStore) runsPath(date string) string {
	return filepath.Join(s.root, domain.RunNumbersDirName, date+".json")
}

// RunNumbers returns the stored runs for date whose code equals code, or starts
// with it when exact is false. Results are ordered by code length, then code,
// and capped at MaxRunNumbers.
func (s *FileStore) RunNumbers(date, code string, exact bool) ([]domain.RunNumberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []domain.RunNumberRecord
	if _, err := readJSON(s.runsPath(date), &records); err != nil {
		return nil, err
	}

	out := make([]domain.RunNumberRecord, 0, len(records))
	for _, r := range records {
		if exact && r.RunCode != code {
			continue
		}
		if !exact && !strings.HasPrefix(r.RunCode, code) {
			continue
		}
		out = append(out, r)
	}
	SortRunNumbers(out)
	if len(out) > MaxRunNumbers {
		out = out[:MaxRunNumbers]
	}
	return out, nil
}

// SortRunNumbers orders records by run-code length, then run code.
func SortRunNumbers(records []domain.RunNumberRecord) {
	slices.SortStableFunc(records, func(a, b domain.RunNumberRecord) int {
		return cmp.Or(
			cmp.Compare(len(a.RunCode), len(b.RunCode)),
			cmp.Compare(a.RunCode, b.RunCode),
		)
	})
}

// PutRunNumbers stores records, skipping any whose (date, run code) pair is
// already present. It returns how many records were added.
func (s *FileStore) PutRunNumbers(records []domain.RunNumberRecord) (int, error) {
	byDate := make(map[string][]domain.RunNumberRecord)
	for _, r := range records {
		if _, err := domain.ParseDate(r.Date); err != nil {
			return 0, err
		}
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, date := range slices.Sorted(maps.Keys(byDate)) {
		path := s.runsPath(date)
		var existing []domain.RunNumberRecord
		if _, err := readJSON(path, &existing); err != nil {
			return added, err
		}
		seen := make(map[string]struct{}, len(existing))
		for _, r := range existing {
			seen[r.RunCode] = struct{}{}
		}
		n := 0
		for _, r := range byDate[date] {
			if _, ok := seen[r.RunCode]; ok {
				continue
			}
			seen[r.RunCode] = struct{}{}
			existing = append(existing, r)
			n++
		}
		if n == 0 {
			continue
		}
		if err := writeJSON(path, existing); err != nil {
			return added, err
		}
		added += n
	}
	return added, nil
}

// SnapshotKey derives the file name of a snapshot from its query key and category.
func SnapshotKey(queryKey, category string) string {
	return strconv.FormatUint(xxhash.Sum64String(category+"\x00"+queryKey), 16)
}

func (s *FileStore) snapshotPath(date, queryKey, category string) string {
	return filepath.Join(s.root, domain.SnapshotsDirName, date, SnapshotKey(queryKey, category)+".json")
}

// PutSnapshot stores a snapshot, replacing any with the same date, query key and category.
func (s *FileStore) PutSnapshot(snapshot domain.Snapshot) error {
	if _, err := domain.ParseDate(snapshot.Date); err != nil {
		return err
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.snapshotPath(snapshot.Date, snapshot.QueryKey, snapshot.Category), snapshot)
}

// Snapshot returns the stored snapshot, or nil when there is none.
func (s *FileStore) Snapshot(date, queryKey, category string) (*domain.Snapshot, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var snap domain.Snapshot
	found, err := readJSON(s.snapshotPath(date, queryKey, category), &snap)
	if err != nil || !found {
		return nil, err
	}
	return &snap, nil
}

// Cleanup removes run-number files whose travel date lies before now minus the
// run-number retention, and snapshots created before now minus the snapshot
// retention. Run numbers are only purged when AutoCleanRunNumbers is set.
func (s *FileStore) Cleanup(now time.Time, retention domain.RetentionConfig) (domain.CleanupReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report domain.CleanupReport
	if retention.AutoCleanRunNumbers && retention.RunNumbers > 0 {
		n, err := s.cleanRunNumbers(now.Add(-retention.RunNumbers).Format(domain.DateLayout))
		report.RunNumberFiles = n
		if err != nil {
			return report, err
		}
	}
	if retention.Snapshots > 0 {
		n, err := s.cleanSnapshots(now.Add(-retention.Snapshots))
		report.Snapshots = n
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *FileStore) cleanRunNumbers(cutoff string) (int, error) {
	dir := filepath.Join(s.root, domain.RunNumbersDirName)
	entries, err := readDir(dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		date, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		if _, err := domain.ParseDate(date); err != nil {
			continue
		}
		// DateLayout sorts lexically.
		if date >= cutoff {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, domain.Annotate(domain.ErrStoreCleanupFailed, "path", e.Name(), "reason", err.Error())
		}
		removed++
	}
	return removed, nil
}

func (s *FileStore) cleanSnapshots(cutoff time.Time) (int, error) {
	root := filepath.Join(s.root, domain.SnapshotsDirName)
	dates, err := readDir(root)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, d := range dates {
		if !d.IsDir() {
			continue
		}
		dir := filepath.Join(root, d.Name())
		files, err := readDir(dir)
		if err != nil {
			return removed, err
		}
		kept := 0
		for _, f := range files {
			path := filepath.Join(dir, f.Name())
			var snap domain.Snapshot
			if _, err := readJSON(path, &snap); err != nil {
				// Unreadable snapshots are not worth keeping.
				snap.CreatedAt = time.Time{}
			}
			if !snap.CreatedAt.Before(cutoff) {
				kept++
				continue
			}
			if err := os.Remove(path); err != nil {
				return removed, domain.Annotate(domain.ErrStoreCleanupFailed, "path", path, "reason", err.Error())
			}
			removed++
		}
		if kept == 0 {
			_ = os.Remove(dir)
		}
	}
	return removed, nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Annotate(domain.ErrStoreReadFailed, "path", dir, "reason", err.Error())
	}
	return entries, nil
}

// readJSON decodes the document at path into v. found is false when the file
// does not exist or is empty.
func readJSON(path string, v any) (found bool, err error) {
	//nolint:gosec // Path is built from the store root and validated keys
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, domain.Annotate(domain.ErrStoreReadFailed, "path", path, "reason", err.Error())
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, domain.Annotate(domain.ErrStoreUnmarshalFailed, "path", path, "reason", err.Error())
	}
	return true, nil
}

// writeJSON replaces the document at path by writing a sibling temp file and
// renaming it into place.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return domain.Annotate(domain.ErrStoreMarshalFailed, "path", path, "reason", err.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.Annotate(domain.ErrStoreCreateFailed, "path", dir, "reason", err.Error())
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.Annotate(domain.ErrStoreWriteFailed, "path", path, "reason", err.Error())
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return domain.Annotate(domain.ErrStoreWriteFailed, "path", path, "reason", err.Error())
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return domain.Annotate(domain.ErrStoreWriteFailed, "path", path, "reason", err.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		cleanup()
		return domain.Annotate(domain.ErrStoreWriteFailed, "path", path, "reason", err.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return domain.Annotate(domain.ErrStoreWriteFailed, "path", path, "reason", err.Error())
	}
	return nil
}
