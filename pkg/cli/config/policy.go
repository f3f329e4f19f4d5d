package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Policy holds the CLI flag for the scheduling policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a TOML scheduling policy file",
			Sources:     cli.EnvVars("TZQUORUM_POLICY"),
			Destination: &p.path,
		},
	}
}

// Configure loads the scheduling policy. Without a file the built-in
// defaults apply.
func (p *Policy) Configure() (model.Policy, error) {
	if p.path == "" {
		return model.DefaultPolicy(), nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return model.Policy{}, goerr.Wrap(err, "failed to read policy file", goerr.V("path", p.path))
	}

	var policy model.Policy
	if err := toml.Unmarshal(data, &policy); err != nil {
		return model.Policy{}, goerr.Wrap(err, "failed to parse policy file", goerr.V("path", p.path))
	}

	normalized, err := policy.Normalize()
	if err != nil {
		return model.Policy{}, goerr.Wrap(err, "invalid policy file", goerr.V("path", p.path))
	}

	logging.Default().Info("Loaded scheduling policy",
		"path", p.path,
		"window_start_hour", normalized.WindowStartHour,
		"window_end_hour", normalized.WindowEndHour,
		"top_candidates", normalized.TopCandidates,
	)
	return normalized, nil
}
