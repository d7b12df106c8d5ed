// Package stations resolves station names and telecodes against the persisted
// station roster.
package stations

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/railfare/internal/adapters/store"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

var _ ports.StationLookup = (*Index)(nil)

// MaxSearchResults caps the number of stations returned by Search.
const MaxSearchResults = 500

// Index is an in-memory view of the station roster. It loads the roster from
// the store on first use and fetches it from the upstream when the store has none.
type Index struct {
	store    ports.Store
	upstream ports.Upstream
	logger   ports.Logger

	mu       sync.RWMutex
	loaded   bool
	digest   uint64
	stations []domain.Station
	byName   map[string]int
	byCode   map[string]int
}

// NewIndex creates an Index backed by st. upstream is used to fill an empty
// roster and by Refresh.
func NewIndex(st ports.Store, upstream ports.Upstream, logger ports.Logger) *Index {
	return &Index{store: st, upstream: upstream, logger: logger}
}

// Load reads the roster from the store, replacing the in-memory view.
func (x *Index) Load() error {
	roster, digest, err := x.store.Stations()
	if err != nil {
		return err
	}
	x.replace(roster, digest)
	return nil
}

func (x *Index) replace(roster []domain.Station, digest uint64) {
	byName := make(map[string]int, len(roster))
	byCode := make(map[string]int, len(roster))
	for i, s := range roster {
		if _, ok := byName[s.Name]; !ok {
			byName[s.Name] = i
		}
		if _, ok := byCode[s.Code]; !ok {
			byCode[s.Code] = i
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.stations = roster
	x.digest = digest
	x.byName = byName
	x.byCode = byCode
	x.loaded = true
}

func (x *Index) ensure(ctx context.Context) error {
	if x.Len() > 0 {
		return nil
	}
	if err := x.Load(); err != nil {
		return err
	}
	if x.Len() > 0 {
		return nil
	}
	_, err := x.Refresh(ctx)
	return err
}

// Len returns the number of stations in the roster.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.stations)
}

// Refresh fetches the roster from the upstream and stores it when its digest
// differs from the stored one. It reports whether the roster changed.
func (x *Index) Refresh(ctx context.Context) (bool, error) {
	if x.upstream == nil {
		return false, domain.Annotate(domain.ErrUpstream,
			"endpoint", string(domain.EndpointStations), "reason", "no upstream configured")
	}
	fetched, err := x.upstream.FetchStations(ctx)
	if err != nil {
		return false, err
	}

	x.mu.RLock()
	loaded, current := x.loaded, x.digest
	x.mu.RUnlock()
	if !loaded {
		if err := x.Load(); err != nil {
			return false, err
		}
		x.mu.RLock()
		current = x.digest
		x.mu.RUnlock()
	}
	if current != 0 && store.RosterDigest(fetched) == current {
		return false, nil
	}

	digest, err := x.store.PutStations(fetched)
	if err != nil {
		return false, err
	}
	x.replace(fetched, digest)
	x.logger.Info("station roster updated, total: " + strconv.Itoa(len(fetched)))
	return true, nil
}

// LookupByName returns the station with exactly this name.
func (x *Index) LookupByName(ctx context.Context, name string) (*domain.Station, error) {
	if err := x.ensure(ctx); err != nil {
		return nil, err
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	i, ok := x.byName[name]
	if !ok {
		return nil, domain.Annotate(domain.ErrUnknownStation, "station", name)
	}
	s := x.stations[i]
	return &s, nil
}

// LookupByNames returns the known stations among names, in the order given.
// Unknown names are omitted.
func (x *Index) LookupByNames(ctx context.Context, names []string) ([]domain.Station, error) {
	if err := x.ensure(ctx); err != nil {
		return nil, err
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]domain.Station, 0, len(names))
	for _, name := range names {
		if i, ok := x.byName[name]; ok {
			out = append(out, x.stations[i])
		}
	}
	return out, nil
}

// LookupByCodeOrName accepts either a telecode or a station name.
func (x *Index) LookupByCodeOrName(ctx context.Context, token string) (*domain.Station, error) {
	if err := x.ensure(ctx); err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	x.mu.RLock()
	defer x.mu.RUnlock()
	i, ok := x.byCode[token]
	if !ok {
		i, ok = x.byName[token]
	}
	if !ok {
		return nil, domain.Annotate(domain.ErrUnknownStation, "station", token)
	}
	s := x.stations[i]
	return &s, nil
}

// Search returns stations matching keyword. Exact matching compares the name
// and telecode. Otherwise a keyword starting with a latin letter matches
// pinyin or its abbreviation, and any other keyword matches a city prefix or a
// name substring. limit is capped at MaxSearchResults; zero means the cap.
func (x *Index) Search(ctx context.Context, keyword string, exact bool, limit int) ([]domain.Station, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}
	if err := x.ensure(ctx); err != nil {
		return nil, err
	}

	match := searchMatcher(keyword, exact)
	x.mu.RLock()
	defer x.mu.RUnlock()
	var out []domain.Station
	for i := range x.stations {
		if !match(&x.stations[i]) {
			continue
		}
		out = append(out, x.stations[i])
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func searchMatcher(keyword string, exact bool) func(*domain.Station) bool {
	switch {
	case exact:
		return func(s *domain.Station) bool {
			return s.Name == keyword || s.Code == keyword
		}
	case isLatin(keyword[0]):
		kw := strings.ToLower(keyword)
		return func(s *domain.Station) bool {
			return strings.Contains(strings.ToLower(s.Pinyin), kw) ||
				strings.Contains(strings.ToLower(s.Abbr), kw) ||
				strings.Contains(strings.ToLower(s.Short), kw)
		}
	default:
		return func(s *domain.Station) bool {
			return strings.HasPrefix(s.City, keyword) || strings.Contains(s.Name, keyword)
		}
	}
}

func isLatin(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Watch reloads the roster whenever the roster file changes on disk, until ctx
// is done. The roster directory must exist.
func (x *Index) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	path := filepath.Clean(x.store.StationsPath())
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}

	go x.watch(ctx, w, path)
	return nil
}

func (x *Index) watch(ctx context.Context, w *fsnotify.Watcher, path string) {
	defer func() {
		_ = w.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := x.Load(); err != nil {
				x.logger.Warn("reloading station roster: " + err.Error())
				continue
			}
			x.logger.Debug("station roster reloaded from " + path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				x.logger.Warn("station roster watcher: " + err.Error())
			}
		}
	}
}
