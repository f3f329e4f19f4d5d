package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/schedlab/tzquorum/pkg/cli/config"
	httpctrl "github.com/schedlab/tzquorum/pkg/controller/http"
	"github.com/schedlab/tzquorum/pkg/service/reasoning"
	"github.com/schedlab/tzquorum/pkg/usecase"
	"github.com/schedlab/tzquorum/pkg/utils/logging"
	"github.com/schedlab/tzquorum/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var notifyCfg config.Notify
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TZQUORUM_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load scheduling policy")
			}

			ucOpts := []usecase.Option{
				usecase.WithPolicy(policy),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient != nil {
				reasoner, err := reasoning.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize reasoner")
				}
				ucOpts = append(ucOpts, usecase.WithReasoner(reasoner))
				logging.Default().Info("LLM-assisted compromise selection enabled")
			} else {
				logging.Default().Info("Gemini not configured, compromise selection uses deterministic fallback")
			}

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize notifier")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
			} else {
				logging.Default().Info("Notification disabled")
			}

			uc := usecase.New(repo, ucOpts...)
			server := httpctrl.New(uc)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed")
			case <-sigCtx.Done():
				logging.Default().Info("Shutting down HTTP server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown HTTP server")
			}

			return nil
		},
	}
}
