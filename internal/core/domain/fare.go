package domain

// LegStatus is the outcome of matching one leg query against the expected run.
type LegStatus int

const (
	// LegFound means exactly one offering matched.
	LegFound LegStatus = iota
	// LegNotFound means no offering matched.
	LegNotFound
	// LegAmbiguous means more than one offering matched.
	LegAmbiguous
	// LegUnpriced means the offering matched but carried no priced seat class.
	LegUnpriced
)

// String returns the status name.
func (s LegStatus) String() string {
	switch s {
	case LegFound:
		return "found"
	case LegNotFound:
		return "not_found"
	case LegAmbiguous:
		return "ambiguous"
	case LegUnpriced:
		return "unpriced"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status name.
func (s LegStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *LegStatus) UnmarshalText(text []byte) error {
	for _, candidate := range []LegStatus{LegFound, LegNotFound, LegAmbiguous, LegUnpriced} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return Annotate(ErrInvalidQuery, "leg_status", string(text))
}

// LegOutcome is the result of one leg query.
type LegOutcome struct {
	From    string
	To      string
	Date    string
	Status  LegStatus
	Matches int
	Train   *TrainInfo
}

// LegGap records a leg that was dropped from a segmented fare.
type LegGap struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Date    string    `json:"date"`
	Status  LegStatus `json:"status"`
	Matches int       `json:"matches"`
}

// FareResult is the resolved fare of a run between two stops.
type FareResult struct {
	Train      *TrainInfo  `json:"train"`
	Legs       []TrainInfo `json:"legs"`
	Gaps       []LegGap    `json:"gaps,omitempty"`
	TotalPrice Price       `json:"total_price"`
	RawPrice   Price       `json:"raw_price"`
	Complete   bool        `json:"complete"`
}

// Saving returns how much cheaper the segmented total is than the full-span price.
func (r *FareResult) Saving() Price {
	if !r.Complete || len(r.Legs) == 0 {
		return 0
	}
	return r.RawPrice - r.TotalPrice
}
