// Package detector picks the output mode from the environment and the
// --output flag.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is the rendering mode of query results.
type OutputMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto OutputMode = iota
	// ModePretty renders coloured text for an interactive terminal.
	ModePretty
	// ModeLinear renders plain text and reports progress on stderr.
	ModeLinear
	// ModeJSON writes results as indented JSON.
	ModeJSON
)

// String returns the flag value of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeLinear:
		return "linear"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModePretty when stdout is a terminal outside CI
// and ModeLinear otherwise.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeLinear
	}
	return ModePretty
}

// ResolveMode applies the --output flag on top of the detected mode.
// Unknown values fall back to the detected mode.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "pretty", "tty":
		return ModePretty
	case "linear", "ci", "plain":
		return ModeLinear
	case "json":
		return ModeJSON
	default:
		return detected
	}
}
