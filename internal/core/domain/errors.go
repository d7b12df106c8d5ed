package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrEmptyCachePath is returned when a cache operation receives a path with no segments.
	ErrEmptyCachePath = zerr.New("cache path is empty")

	// ErrInvalidQuery is returned when a query fails validation.
	ErrInvalidQuery = zerr.New("invalid query")

	// ErrUnknownStation is returned when a station name or code cannot be resolved.
	ErrUnknownStation = zerr.New("unknown station")

	// ErrStationNotOnRoute is returned when a station is not part of the run's schedule.
	ErrStationNotOnRoute = zerr.New("station is not on the route of this run")

	// ErrStationOrder is returned when the origin does not precede the destination on the schedule.
	ErrStationOrder = zerr.New("origin must precede destination on the route")

	// ErrRunNotFound is returned when no run number matches a run code on the given date.
	ErrRunNotFound = zerr.New("no run found for run code")

	// ErrScheduleNotFound is returned when the upstream has no stop list for a run.
	ErrScheduleNotFound = zerr.New("no schedule found for run")

	// ErrWaypointMismatch is returned when a batch station lookup returns fewer stations than requested.
	ErrWaypointMismatch = zerr.New("waypoint lookup returned an unexpected number of stations")

	// ErrLegMismatch is returned when the full-span leg cannot be matched to exactly one offering.
	ErrLegMismatch = zerr.New("full-span leg did not match exactly one offering")

	// ErrIncompleteFare is returned alongside a partial result when one or more legs were dropped.
	ErrIncompleteFare = zerr.New("fare is incomplete, some legs could not be resolved")

	// ErrUpstream is returned when an upstream request fails or answers with a non-success status.
	ErrUpstream = zerr.New("upstream request failed")

	// ErrUpstreamParse is returned when an upstream response body cannot be parsed.
	ErrUpstreamParse = zerr.New("failed to parse upstream response")

	// ErrSessionRefresh is returned when a fresh session credential cannot be obtained.
	ErrSessionRefresh = zerr.New("failed to refresh session")

	// ErrAdmission is returned when an admission permit cannot be acquired.
	ErrAdmission = zerr.New("failed to acquire admission permit")

	// ErrDecodeRecord is returned when a pipe-delimited record cannot be decoded.
	ErrDecodeRecord = zerr.New("failed to decode record")

	// ErrDecodePrice is returned when a packed price blob is malformed.
	ErrDecodePrice = zerr.New("failed to decode price blob")

	// ErrStoreCreateFailed is returned when a store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreReadFailed is returned when a stored document cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored document")

	// ErrStoreUnmarshalFailed is returned when a stored document cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored document")

	// ErrStoreMarshalFailed is returned when a document cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal document")

	// ErrStoreWriteFailed is returned when a document cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write document")

	// ErrStoreCleanupFailed is returned when expired documents cannot be removed.
	ErrStoreCleanupFailed = zerr.New("failed to clean up store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid config")

	// ErrDaemonUnavailable is returned when the query daemon cannot be reached.
	ErrDaemonUnavailable = zerr.New("query daemon is unavailable")
)

var resolutionErrors = []error{
	ErrInvalidQuery,
	ErrUnknownStation,
	ErrStationNotOnRoute,
	ErrStationOrder,
	ErrRunNotFound,
	ErrScheduleNotFound,
	ErrWaypointMismatch,
	ErrLegMismatch,
	ErrIncompleteFare,
}

// Annotate wraps err so that it stays reachable through errors.Is and attaches
// the given key/value pairs as metadata.
func Annotate(err error, kv ...any) error {
	if err == nil {
		return nil
	}
	out := zerr.Wrap(err, "")
	for i := 0; i+1 < len(kv); i += 2 {
		out = zerr.With(out, fmt.Sprint(kv[i]), kv[i+1])
	}
	return out
}

// Caused returns sentinel with cause as its underlying failure. Both stay
// reachable through errors.Is, and kv is attached as metadata.
func Caused(sentinel, cause error, kv ...any) error {
	if cause == nil {
		return Annotate(sentinel, kv...)
	}
	return Annotate(&causedError{sentinel: sentinel, cause: cause}, kv...)
}

type causedError struct {
	sentinel error
	cause    error
}

func (e *causedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

// Message is the sentinel text alone, the cause follows in the chain.
func (e *causedError) Message() string {
	return e.sentinel.Error()
}

func (e *causedError) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}

// IsResolution reports whether err is a resolution failure, meaning the request
// cannot be answered from the data the upstream provided.
func IsResolution(err error) bool {
	for _, target := range resolutionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsUpstream reports whether err was caused by a failed upstream exchange.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrUpstreamParse) || errors.Is(err, ErrSessionRefresh)
}
