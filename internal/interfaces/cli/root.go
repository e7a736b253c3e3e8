// Package cli implements the firecircuit command line: batch device
// analysis, circuit validation, and catalog inspection against a local
// engine instance, no server required.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/FireCircuit-Intelligence/internal/application/capacity"
	"github.com/turtacn/FireCircuit-Intelligence/internal/application/mapping"
	"github.com/turtacn/FireCircuit-Intelligence/internal/config"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/circuit"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/cache"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/catalogstore"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/device_classifier"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/spec_resolver"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	ConfigPath  string
	CatalogPath string
	LogLevel    string
}

// engineContext carries the locally-wired engine for one command run.
type engineContext struct {
	cfg      *config.Config
	log      logging.Logger
	store    *catalogstore.Store
	engine   *mapping.Engine
	capacity *capacity.Service
}

func (ec *engineContext) close() {
	if ec.store != nil {
		_ = ec.store.Close()
	}
}

// buildEngineContext loads configuration and wires a complete local
// engine.  CLI runs log to stderr so stdout stays parseable.
func buildEngineContext(opts *RootOptions) (*engineContext, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if opts.CatalogPath != "" {
		cfg.Catalog.Path = opts.CatalogPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	cfg.Log.OutputPaths = []string{"stderr"}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := catalogstore.New(cfg.Catalog, log, nil)
	if err != nil {
		return nil, err
	}
	notifIdx, initIdx := store.Indexes()

	// One-shot runs never reload the catalog, so fixed indexes suffice;
	// the specification cache still pays off when input rows repeat.
	specCache := cache.New[device.Specification](cache.Options{
		TTL:        cfg.Cache.SpecTTL,
		MaxEntries: cfg.Cache.MaxEntries,
	})
	engine := mapping.NewEngine(mapping.Deps{
		Extractor:    param_extractor.New(log),
		Classifier:   device_classifier.New(log),
		Notification: spec_resolver.New(notifIdx, log).WithCache(specCache),
		Initiating:   spec_resolver.New(initIdx, log).WithCache(specCache),
		Generic:      spec_resolver.NewGenericRepository(log, notifIdx, initIdx),
		Cache: cache.New[mapping.Result](cache.Options{
			TTL:        cfg.Cache.MappingTTL,
			MaxEntries: cfg.Cache.MaxEntries,
		}),
		Logger: log,
	})

	limits := circuit.Limits{
		SpareFraction:  cfg.Engine.SpareFraction,
		SystemVoltage:  cfg.Engine.SystemVoltage,
		MaxDropPercent: cfg.Engine.MaxDropPercent,
	}
	svc, err := capacity.New(limits, nil, nil, log)
	if err != nil {
		return nil, err
	}

	return &engineContext{cfg: cfg, log: log, store: store, engine: engine, capacity: svc}, nil
}

// NewRootCommand builds the firecircuit command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "firecircuit",
		Short: "Fire alarm device classification and circuit capacity engine",
		Long: "firecircuit classifies loosely-named fire alarm devices, resolves their\n" +
			"electrical specifications against a product catalog, and validates circuit\n" +
			"capacity against regulatory limits.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "directory holding catalog JSON files")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
