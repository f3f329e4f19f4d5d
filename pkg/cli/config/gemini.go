package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// Gemini configures the LLM client behind the compromise selector. When no
// project is set the selector runs in fallback-only mode and picks the slot
// with the highest availability deterministically.
type Gemini struct {
	projectID string
	location  string
}

func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project for Gemini-assisted compromise selection (empty disables the LLM)",
			Sources:     cli.EnvVars("TZQUORUM_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location of the Gemini endpoint",
			Value:       "us-central1",
			Sources:     cli.EnvVars("TZQUORUM_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// Enabled reports whether a Gemini project is configured
func (g *Gemini) Enabled() bool {
	return g.projectID != ""
}

func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
		slog.Bool("enabled", g.Enabled()),
	}
}

// Configure builds the Gemini client. A nil client with nil error means the
// LLM is not configured and suggestion reasoning falls back to headcount.
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if !g.Enabled() {
		return nil, nil
	}

	client, err := gemini.New(ctx, g.projectID, g.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("project", g.projectID),
			goerr.V("location", g.location),
		)
	}

	return client, nil
}
