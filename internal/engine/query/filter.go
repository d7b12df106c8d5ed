package query

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/railfare/internal/adapters/codec" //nolint:depguard // Clock parsing shared with the codec
	"go.trai.ch/railfare/internal/core/domain"
)

// CompileRunCodePattern turns a run-code pattern into an anchored expression.
// A leading '_' matches any letter or digit, any later '_' matches one digit,
// and '*' matches any trailing digits and ends the pattern. Other characters
// match themselves.
func CompileRunCodePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	for i, r := range strings.ToUpper(strings.TrimSpace(pattern)) {
		if r == '*' {
			b.WriteString("[0-9]*")
			break
		}
		if r == '_' {
			if i == 0 {
				b.WriteString("[A-Za-z0-9]")
			} else {
				b.WriteString("[0-9]")
			}
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteByte('$')
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, domain.Annotate(domain.ErrInvalidQuery, "train_pattern", pattern)
	}
	return re, nil
}

// Filter narrows a ticket query result.
type Filter struct {
	patterns []*regexp.Regexp
	stations []string
	after    int
	before   int
	fromName string
	toName   string
	exact    bool
}

// NewFilter builds the filter for q. fromName and toName are the station
// names the caller asked for; empty names disable the name check.
func NewFilter(q *domain.TicketQuery, fromName, toName string) (*Filter, error) {
	f := &Filter{
		stations: q.Stations,
		after:    -1,
		before:   -1,
		fromName: fromName,
		toName:   toName,
		exact:    q.Exact,
	}
	for _, p := range q.Trains {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := CompileRunCodePattern(p)
		if err != nil {
			return nil, err
		}
		f.patterns = append(f.patterns, re)
	}
	if q.DepartAfter != "" {
		m, err := codec.ClockMinutes(q.DepartAfter)
		if err != nil {
			return nil, domain.Annotate(domain.ErrInvalidQuery, "depart_after", q.DepartAfter)
		}
		f.after = m
	}
	if q.DepartBefore != "" {
		m, err := codec.ClockMinutes(q.DepartBefore)
		if err != nil {
			return nil, domain.Annotate(domain.ErrInvalidQuery, "depart_before", q.DepartBefore)
		}
		f.before = m
	}
	return f, nil
}

// Match reports whether t passes every configured condition.
func (f *Filter) Match(t *domain.TrainInfo) bool {
	if len(f.patterns) > 0 && !slices.ContainsFunc(f.patterns, func(re *regexp.Regexp) bool {
		return re.MatchString(t.RunCode)
	}) {
		return false
	}

	if len(f.stations) > 0 {
		from := slices.Contains(f.stations, t.FromStation)
		to := slices.Contains(f.stations, t.ToStation)
		if len(f.stations) == 1 && !from && !to {
			return false
		}
		if len(f.stations) >= 2 && (!from || !to) {
			return false
		}
	}

	if f.after >= 0 || f.before >= 0 {
		dep, ok := departMinutes(t)
		if !ok {
			return false
		}
		if f.after >= 0 && dep < f.after {
			return false
		}
		if f.before >= 0 && dep > f.before {
			return false
		}
	}

	return f.matchName(f.fromName, t.FromStation) && f.matchName(f.toName, t.ToStation)
}

func (f *Filter) matchName(want, got string) bool {
	if want == "" {
		return true
	}
	if f.exact {
		return got == want
	}
	return strings.Contains(got, want)
}

// Apply returns the matching trains ordered by departure time. Repeated
// offerings of the same run between the same stations are kept once.
func (f *Filter) Apply(trains []domain.TrainInfo) []domain.TrainInfo {
	out := make([]domain.TrainInfo, 0, len(trains))
	seen := make(map[string]struct{}, len(trains))
	for i := range trains {
		if !f.Match(&trains[i]) {
			continue
		}
		key := trains[i].Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trains[i])
	}
	slices.SortStableFunc(out, func(a, b domain.TrainInfo) int {
		return strings.Compare(departClock(&a), departClock(&b))
	})
	return out
}

func departClock(t *domain.TrainInfo) string {
	if t.FromStop != nil && t.FromStop.DepartTime != "" {
		return t.FromStop.DepartTime
	}
	return t.DepartTime
}

func departMinutes(t *domain.TrainInfo) (int, bool) {
	clock := departClock(t)
	if clock == "" || clock == domain.NoTime {
		return 0, false
	}
	m, err := codec.ClockMinutes(clock)
	if err != nil {
		return 0, false
	}
	return m, true
}
