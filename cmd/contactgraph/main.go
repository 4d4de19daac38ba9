package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/contactgraph/internal/config"
	"github.com/agenthands/contactgraph/internal/core"
	"github.com/agenthands/contactgraph/internal/driver"
	"github.com/agenthands/contactgraph/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	configPath := flag.String("config", getEnv("CONTACTGRAPH_CONFIG", config.DefaultPath), "Path to a TOML or YAML config file")
	input := flag.String("input", "", "Path to the users file (.json or .csv)")
	output := flag.String("output", "", "Path of the GEXF file to write")
	threshold := flag.Int("threshold", core.DefaultThreshold, "Phone books an unregistered phone must exceed to be frequent")
	community := flag.String("community", "", "Community detection: components or lpa")
	memgraph := flag.Bool("memgraph", false, "Also export the graph to Memgraph")
	verbose := flag.Bool("verbose", false, "Log at debug level")
	flag.Parse()

	cfg, found, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		switch f.Name {
		case "input":
			cfg.Input.Path = *input
		case "output":
			cfg.Output.Path = *output
		case "threshold":
			cfg.Graph.Threshold = *threshold
		case "community":
			cfg.Community.Algorithm = *community
		case "memgraph":
			cfg.Memgraph.Enabled = *memgraph
		}
	})
	// contactgraph [flags] users.json
	if flag.NArg() > 0 && !set["input"] {
		cfg.Input.Path = flag.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	l, err := logger.Init(cfg.Log.Env, *verbose)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !found {
		l.Debug("No config file, using defaults", zap.String("path", *configPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Error("Conversion failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, l *zap.Logger) error {
	var d driver.GraphDriver
	if cfg.Memgraph.Enabled {
		mg, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, l.Named("memgraph"))
		if err != nil {
			return err
		}
		defer mg.Close(context.Background())
		d = mg
	}

	p, err := core.NewPipeline(cfg, d, l)
	if err != nil {
		return fmt.Errorf("invalid pipeline: %w", err)
	}

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	l.Info("Graph ready",
		zap.String("output", cfg.Output.Path),
		zap.Int("nodes", res.Stats.Nodes),
		zap.Int("edges", res.Stats.Edges),
	)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
