package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/psantana5/fieldbench/internal/render"
	"github.com/psantana5/fieldbench/internal/report"
	"github.com/psantana5/fieldbench/pkg/logging"
)

var liveGrid bool

// runCmd runs a single battery
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the battery once",
	Long: `Runs every selected workload --iterations times, in order, and prints one
column of timings.

Example:
  fieldbench run --iterations 10000000
  fieldbench run --workloads literal,selector,getter-0 -o json`,
	PreRunE: bindLocal("iterations"),
	RunE:    runBattery,
}

// groupCmd runs the battery several times and pivots the results
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Run the battery repeatedly and compare runs side by side",
	Long: `Runs the battery --repetitions times and prints a grid with one row per
workload and one column per run, so warm-up trends show up left to right.

Example:
  fieldbench group --iterations 100000000 --repetitions 5
  fieldbench group --live`,
	PreRunE: bindLocal("iterations", "repetitions"),
	RunE:    runGroup,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(groupCmd)

	runCmd.Flags().Int("iterations", 1000000, "calls per workload")

	groupCmd.Flags().Int("iterations", 1000000, "calls per workload per run")
	groupCmd.Flags().Int("repetitions", 5, "number of battery runs")
	groupCmd.Flags().BoolVar(&liveGrid, "live", false, "reprint the table grid after every run")
}

// bindLocal binds command-local flags to config keys right before the
// command runs, so commands sharing a key do not overwrite each other.
func bindLocal(names ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for _, name := range names {
			if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
		return nil
	}
}

func runBattery(cmd *cobra.Command, args []string) error {
	h, err := newHarness(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer h.close()

	session := uuid.NewString()
	log := h.logger.WithField("session", session)
	log.Info("Running battery", logging.Fields{
		"iterations": h.cfg.Iterations,
		"workloads":  h.registry.Len(),
	})

	result, err := h.runner().Run(cmd.Context(), h.cfg.Iterations)
	if err != nil {
		return fmt.Errorf("battery failed: %w", err)
	}

	return h.present(cmd.OutOrStdout(), session, report.NewMatrix(result))
}

func runGroup(cmd *cobra.Command, args []string) error {
	h, err := newHarness(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer h.close()

	format, err := render.ParseFormat(h.cfg.Output)
	if err != nil {
		return err
	}

	session := uuid.NewString()
	log := h.logger.WithField("session", session)
	log.Info("Running battery group", logging.Fields{
		"iterations":  h.cfg.Iterations,
		"repetitions": h.cfg.Repetitions,
		"workloads":   h.registry.Len(),
	})

	out := cmd.OutOrStdout()
	matrix := report.NewMatrix()
	_, err = h.runner().RunGroup(cmd.Context(), h.cfg.Iterations, h.cfg.Repetitions, matrix,
		func(run int, result report.RunResult, m *report.Matrix) {
			log.Info("Run complete", logging.Fields{
				"run":      fmt.Sprintf("%d/%d", run, h.cfg.Repetitions),
				"total_ms": fmt.Sprintf("%.1f", result.Total()),
			})
			if liveGrid && format == render.FormatTable && run < h.cfg.Repetitions {
				if err := render.Grid(out, m, render.GridOptions{}); err != nil {
					log.Warn("Failed to render progress grid", logging.Fields{"error": err.Error()})
				}
			}
		})
	if err != nil {
		return fmt.Errorf("battery group failed: %w", err)
	}

	return h.present(out, session, matrix)
}

func (h *harness) present(w io.Writer, session string, m *report.Matrix) error {
	format, err := render.ParseFormat(h.cfg.Output)
	if err != nil {
		return err
	}
	doc := report.NewDocument(session, h.cfg.Iterations, h.host, m)
	caption := fmt.Sprintf("%d iterations per workload, ms per run | %s", h.cfg.Iterations, h.host.Summary())
	return render.Write(w, format, doc, m, caption)
}
