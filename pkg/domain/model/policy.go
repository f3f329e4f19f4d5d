package model

import "github.com/m-mizutani/goerr/v2"

// Policy tunes compromise-candidate generation. Loaded from an optional
// TOML file; zero-value fields fall back to defaults.
type Policy struct {
	// WindowStartHour and WindowEndHour bound daily candidate generation
	// (start inclusive, end exclusive), in the poll's reference zone (UTC)
	WindowStartHour int `toml:"window_start_hour"`
	WindowEndHour   int `toml:"window_end_hour"`
	// TopCandidates is how many ranked candidates the reasoner sees
	TopCandidates int `toml:"top_candidates"`
}

// DefaultPolicy returns the built-in scheduling policy
func DefaultPolicy() Policy {
	return Policy{
		WindowStartHour: 8,
		WindowEndHour:   21,
		TopCandidates:   5,
	}
}

// Normalize fills zero-value fields with defaults and validates the result
func (p Policy) Normalize() (Policy, error) {
	def := DefaultPolicy()
	if p.WindowStartHour == 0 && p.WindowEndHour == 0 {
		p.WindowStartHour = def.WindowStartHour
		p.WindowEndHour = def.WindowEndHour
	}
	if p.TopCandidates == 0 {
		p.TopCandidates = def.TopCandidates
	}

	if p.WindowStartHour < 0 || p.WindowEndHour > 24 || p.WindowEndHour <= p.WindowStartHour {
		return Policy{}, goerr.New("invalid candidate window",
			goerr.V("start_hour", p.WindowStartHour),
			goerr.V("end_hour", p.WindowEndHour),
		)
	}
	if p.TopCandidates < 1 {
		return Policy{}, goerr.New("top_candidates must be positive", goerr.V("top_candidates", p.TopCandidates))
	}
	return p, nil
}
