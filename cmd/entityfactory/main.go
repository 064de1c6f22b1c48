package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/config"
	"github.com/suparena/entityfactory/fixtures"
	"github.com/suparena/entityfactory/logging"
	"github.com/suparena/entityfactory/seed"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	configFlag   = flag.String("config", "", "Path to a YAML config file")
	envFlag      = flag.String("env", ".env", "Path to a .env file (ignored when missing)")
	planFlag     = flag.String("plan", "", "Path to the YAML fixture plan to seed")
	logLevelFlag = flag.String("log-level", "", "Log level override (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := entityfactory.GetVersionInfo()
		fmt.Printf("entityfactory version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "entityfactory: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	if *planFlag == "" {
		return fmt.Errorf("-plan is required")
	}

	if err := config.LoadEnvFile(*envFlag); err != nil {
		return err
	}
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	logger := logging.NewConsole(cfg.LogLevel, os.Stderr)

	plan, err := seed.Load(*planFlag)
	if err != nil {
		return err
	}

	session, closeFn, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	set := fixtures.New(fixtures.WithLogger(logger))
	results, err := seed.NewRunner(set.Catalog(), session, logger).Run(ctx, plan)
	for _, r := range results {
		if r.Association != "" {
			fmt.Fprintf(out, "%s\t%s\t%s.%s\n", r.Kind, r.Key, r.Parent, r.Association)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", r.Kind, r.Key)
	}
	if err != nil {
		return err
	}

	logger.Info().Str("backend", cfg.Backend).Int("records", len(results)).Msg("seeding complete")
	return nil
}
