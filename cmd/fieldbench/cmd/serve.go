package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/psantana5/fieldbench/internal/report"
	"github.com/psantana5/fieldbench/internal/server"
	"github.com/psantana5/fieldbench/pkg/logging"
	"github.com/psantana5/fieldbench/pkg/shutdown"
)

// serveCmd runs a group in the background and serves the growing grid
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a battery group and watch the grid grow in a browser",
	Long: `Starts an HTTP server, then runs the battery group in the background. The
page at / shows the grid and refreshes until the last run finishes.

Endpoints:
  /             HTML grid
  /api/matrix   grid as JSON (null = no data)
  /api/status   session progress
  /api/failures recent aborted batteries
  /metrics      Prometheus exposition

Example:
  fieldbench serve --addr :8089 --iterations 100000000 --repetitions 10`,
	PreRunE: bindLocal("iterations", "repetitions"),
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("iterations", 1000000, "calls per workload per run")
	serveCmd.Flags().Int("repetitions", 5, "number of battery runs")
	serveCmd.Flags().String("addr", ":8089", "listen address")
	serveCmd.Flags().Int("refresh", 2, "page refresh interval in seconds while running")
	mustBind("serve.addr", serveCmd.Flags().Lookup("addr"))
	mustBind("serve.refresh", serveCmd.Flags().Lookup("refresh"))
}

func runServe(cmd *cobra.Command, args []string) error {
	h, err := newHarness(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer h.close()

	session := server.NewSession(h.cfg.Iterations, h.cfg.Repetitions)
	log := h.logger.WithField("session", session.ID)

	handler, err := server.NewHandler(session, server.Options{
		Metrics:  h.metrics,
		Failures: h.failures,
		Logger:   h.logger,
		Host:     h.host,
		Caption:  h.host.Summary(),
		Refresh:  h.cfg.Serve.Refresh,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              h.cfg.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sd := shutdown.New(10*time.Second, h.logger)
	sd.Register("http", shutdown.StopHTTPServer(srv))
	sd.Register("measurement", func(context.Context) error {
		cancel()
		return nil
	})

	// waitCtx ends when the command is cancelled or the listener dies
	waitCtx, stopWait := context.WithCancel(cmd.Context())
	defer stopWait()

	serveErr := make(chan error, 1)
	go func() {
		defer stopWait()
		log.Info("Serving live grid", logging.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	go func() {
		session.Begin()
		_, err := h.runner().RunGroup(ctx, h.cfg.Iterations, h.cfg.Repetitions, report.NewMatrix(), session.Record)
		session.Finish(err)
		if err != nil {
			log.Error("Battery group failed", logging.Fields{"error": err.Error()})
			return
		}
		log.Info("Battery group finished, still serving; press Ctrl+C to stop")
	}()

	if _, err := sd.WaitWithContext(waitCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	// Shutdown has stopped the server, so serveErr is closed by now
	if err := <-serveErr; err != nil {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}
