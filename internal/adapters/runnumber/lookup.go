// Package runnumber resolves public run codes to upstream run numbers.
package runnumber

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/railfare/internal/adapters/store"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

var _ ports.RunNumberLookup = (*Lookup)(nil)

// Lookup answers from the store and falls back to the upstream search, writing
// fetched records back to the store.
type Lookup struct {
	store    ports.Store
	upstream ports.Upstream
	logger   ports.Logger
}

// New creates a Lookup.
func New(st ports.Store, upstream ports.Upstream, logger ports.Logger) *Lookup {
	return &Lookup{store: st, upstream: upstream, logger: logger}
}

// Lookup returns the runs for code on date. exact restricts the result to runs
// whose code equals code, otherwise codes starting with code match. Results are
// ordered by code length then code and capped at store.MaxRunNumbers.
func (l *Lookup) Lookup(ctx context.Context, code, date string, exact bool) ([]domain.RunNumberRecord, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.Annotate(domain.ErrInvalidQuery, "run_code", code)
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	local, err := l.store.RunNumbers(date, code, exact)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}

	fetched, err := l.upstream.SearchRunNumbers(ctx, code, date)
	if err != nil {
		return nil, err
	}
	if added, err := l.store.PutRunNumbers(fetched); err != nil {
		l.logger.Warn("saving run numbers for " + code + " on " + date + ": " + err.Error())
	} else if added > 0 {
		l.logger.Debug("saved " + strconv.Itoa(added) + " run numbers for " + code + " on " + date)
	}

	out := make([]domain.RunNumberRecord, 0, len(fetched))
	for _, r := range fetched {
		if r.Date != date {
			continue
		}
		if exact && r.RunCode != code {
			continue
		}
		if !exact && !strings.HasPrefix(r.RunCode, code) {
			continue
		}
		out = append(out, r)
	}
	store.SortRunNumbers(out)
	if len(out) > store.MaxRunNumbers {
		out = out[:store.MaxRunNumbers]
	}
	return out, nil
}
