package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/psantana5/fieldbench/internal/battery"
	"github.com/psantana5/fieldbench/internal/config"
	"github.com/psantana5/fieldbench/internal/hostinfo"
	"github.com/psantana5/fieldbench/internal/report"
	"github.com/psantana5/fieldbench/internal/workload"
	"github.com/psantana5/fieldbench/pkg/logging"
	"github.com/psantana5/fieldbench/pkg/tracing"
)

// Version is stamped at build time
var Version = "dev"

var (
	cfgFile string
	v       = viper.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fieldbench",
	Short: "Micro-benchmark harness for record field access variants",
	Long: `fieldbench times several equivalent ways of reading one field out of a
small fixed-shape record, repeats the battery to expose warm-up effects and
prints the per-run timings as a grid (milliseconds, one decimal).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fieldbench/config.yaml)")
	flags.StringP("output", "o", "table", "output format: table, json, yaml or prometheus")
	flags.StringSlice("workloads", nil, "workloads to run, in order (default: whole catalog)")
	flags.Int("max-alias-depth", workload.MaxAliasDepth, "deepest getter alias chain in the catalog")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.Bool("tracing", false, "export OpenTelemetry spans over OTLP/HTTP")
	flags.String("tracing-endpoint", "localhost:4318", "OTLP/HTTP collector host:port")

	mustBind("output", flags.Lookup("output"))
	mustBind("workloads", flags.Lookup("workloads"))
	mustBind("max_alias_depth", flags.Lookup("max-alias-depth"))
	mustBind("log.level", flags.Lookup("log-level"))
	mustBind("log.format", flags.Lookup("log-format"))
	mustBind("tracing.enabled", flags.Lookup("tracing"))
	mustBind("tracing.endpoint", flags.Lookup("tracing-endpoint"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	config.SetDefaults(v)
	config.BindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".fieldbench"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}
}

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// harness is everything a measurement command needs, built from config
type harness struct {
	cfg      config.Config
	logger   *logging.Logger
	tracer   *tracing.Provider
	registry *battery.Registry[string]
	metrics  *report.Metrics
	failures *report.FailureLog
	host     hostinfo.Info
}

// newHarness builds the harness from the resolved config. Logs go to logOut.
func newHarness(logOut io.Writer) (*harness, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format == "json")
	logger.SetOutput(logOut)

	tracer, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "fieldbench",
		ServiceVersion: Version,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		return nil, err
	}

	registry, err := workload.Select(cfg.Workloads, cfg.MaxAliasDepth)
	if err != nil {
		return nil, err
	}

	host, err := hostinfo.Detect()
	if err != nil {
		logger.Warn("Host detection incomplete", logging.Fields{"error": err.Error()})
	}

	return &harness{
		cfg:      cfg,
		logger:   logger,
		tracer:   tracer,
		registry: registry,
		metrics:  report.NewMetrics(),
		failures: report.NewFailureLog(16),
		host:     host,
	}, nil
}

func (h *harness) runner() *battery.Runner[string] {
	return battery.NewRunner(h.registry, battery.Config{
		Logger:   h.logger,
		Metrics:  h.metrics,
		Failures: h.failures,
		Tracer:   h.tracer,
	})
}

func (h *harness) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.tracer.Shutdown(ctx); err != nil {
		h.logger.Warn("Tracer shutdown failed", logging.Fields{"error": err.Error()})
	}
}
