// API server entry point for FireCircuit-Intelligence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/FireCircuit-Intelligence/internal/application/capacity"
	"github.com/turtacn/FireCircuit-Intelligence/internal/application/mapping"
	"github.com/turtacn/FireCircuit-Intelligence/internal/config"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/catalog"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/circuit"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/cache"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/catalogstore"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/device_classifier"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/param_extractor"
	"github.com/turtacn/FireCircuit-Intelligence/internal/intelligence/spec_resolver"
	httpserver "github.com/turtacn/FireCircuit-Intelligence/internal/interfaces/http"
	"github.com/turtacn/FireCircuit-Intelligence/internal/interfaces/http/handlers"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string, portOverride int) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if portOverride > 0 {
		cfg.Server.Port = portOverride
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	log = log.Named("apiserver")
	log.Info("starting FireCircuit-Intelligence API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port))

	var collector prometheus.MetricsCollector
	var metrics *prometheus.EngineMetrics
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, log)
		if err != nil {
			return err
		}
		metrics = prometheus.NewEngineMetrics(collector)
	}

	store, err := catalogstore.New(cfg.Catalog, log, metrics)
	if err != nil {
		return err
	}
	defer store.Close()
	notifIdx := func() *catalog.Index { return store.Current().Notification }
	initIdx := func() *catalog.Index { return store.Current().Initiating }

	specCache := cache.New[device.Specification](cache.Options{
		TTL:           cfg.Cache.SpecTTL,
		MaxEntries:    cfg.Cache.MaxEntries,
		SweepInterval: cfg.Cache.SweepInterval,
	})
	defer specCache.Close()
	mappingCache := cache.New[mapping.Result](cache.Options{
		TTL:           cfg.Cache.MappingTTL,
		MaxEntries:    cfg.Cache.MaxEntries,
		SweepInterval: cfg.Cache.SweepInterval,
	})
	defer mappingCache.Close()

	// Mapping results embed resolved specifications, so a new catalog
	// generation invalidates them wholesale.
	store.OnReload(func(*catalogstore.Snapshot) {
		mappingCache.Purge()
		specCache.Purge()
	})

	engine := mapping.NewEngine(mapping.Deps{
		Extractor:  param_extractor.New(log),
		Classifier: device_classifier.New(log),
		Notification: spec_resolver.NewDynamic(notifIdx, log).
			WithCache(specCache),
		Initiating: spec_resolver.NewDynamic(initIdx, log).
			WithCache(specCache),
		Generic: spec_resolver.NewDynamicGenericRepository(log, func() []*catalog.Index {
			snap := store.Current()
			return []*catalog.Index{snap.Notification, snap.Initiating}
		}),
		Cache:   mappingCache,
		Metrics: metrics,
		Logger:  log,
	})

	publisher := kafka.NewPublisher(cfg.Kafka, log)
	defer publisher.Close()

	limits := circuit.Limits{
		SpareFraction:  cfg.Engine.SpareFraction,
		SystemVoltage:  cfg.Engine.SystemVoltage,
		MaxDropPercent: cfg.Engine.MaxDropPercent,
	}
	capacitySvc, err := capacity.New(limits, publisher, metrics, log)
	if err != nil {
		return err
	}

	server := httpserver.NewServer(cfg.Server, httpserver.RouterConfig{
		AnalyzeHandler:   handlers.NewAnalyzeHandler(engine, cfg.Engine.Parallelism),
		CircuitHandler:   handlers.NewCircuitHandler(capacitySvc),
		CatalogHandler:   handlers.NewCatalogHandler(store),
		HealthHandler:    handlers.NewHealthHandler(store, version),
		Logger:           log,
		Metrics:          metrics,
		MetricsCollector: collector,
	}, log)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := server.Stop(context.Background()); err != nil {
		log.Error("server shutdown failed", logging.Err(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
