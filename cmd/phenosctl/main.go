package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"phenos/internal/config"
	"phenos/internal/model"
	phenosapi "phenos/pkg/phenos"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "predict":
		return runPredict(ctx, args[1:])
	case "adapt":
		return runAdapt(ctx, args[1:])
	case "interpret":
		return runInterpret(ctx, args[1:])
	case "top":
		return runTop(ctx, args[1:])
	case "observations":
		return runObservations(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: phenosctl <init|predict|adapt|interpret|top|observations> [flags]", msg)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	envCfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	level, err := zap.ParseAtomicLevel(envCfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg.Level = level
	return cfg.Build()
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	store := fs.String("store", "", "store backend (memory|sqlite)")
	dbPath := fs.String("db", "", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := phenosapi.New(phenosapi.Options{StoreKind: *store, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Println("store initialized")
	return nil
}

func runPredict(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	familyPath := fs.String("family", "", "family network JSON file")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *familyPath == "" {
		return usageError("predict requires -family")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	spec, err := loadFamilySpec(*familyPath)
	if err != nil {
		return err
	}

	client, err := phenosapi.New(phenosapi.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer client.Close()

	profile, err := predictFromSpec(ctx, client, spec)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func runAdapt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("adapt", flag.ContinueOnError)
	familyPath := fs.String("family", "", "family network JSON file")
	satisfaction := fs.Float64("satisfaction", 0.9, "simulated user satisfaction")
	passes := fs.Int("passes", 1, "adaptation passes to run")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *familyPath == "" {
		return usageError("adapt requires -family")
	}
	if *passes < 1 {
		*passes = 1
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	spec, err := loadFamilySpec(*familyPath)
	if err != nil {
		return err
	}

	surface := newReportingSurface(*satisfaction)
	client, err := phenosapi.New(phenosapi.Options{Surface: surface, Logger: logger})
	if err != nil {
		return err
	}
	defer client.Close()

	profile, err := predictFromSpec(ctx, client, spec)
	if err != nil {
		return err
	}

	for i := 0; i < *passes; i++ {
		if err := client.Adapt(ctx); err != nil {
			return fmt.Errorf("adaptation pass %d: %w", i+1, err)
		}
	}

	report := adaptReport{
		SessionID:        client.SessionID(),
		Profile:          profile,
		DirectiveCalls:   surface.Calls(),
		AdaptationMemory: client.AdaptationMemory(),
		TopStates:        client.TopStates(),
	}
	return printJSON(report)
}

func runInterpret(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("interpret", flag.ContinueOnError)
	gridPath := fs.String("grid", "", "activation grid JSON file")
	profilePath := fs.String("profile", "", "optional phenotype profile JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *gridPath == "" {
		return usageError("interpret requires -grid")
	}

	grid, err := loadGrid(*gridPath)
	if err != nil {
		return err
	}

	var profile model.NeurodivergenceProfile
	if *profilePath != "" {
		profile, err = loadProfile(*profilePath)
		if err != nil {
			return err
		}
	}

	client, err := phenosapi.New(phenosapi.Options{})
	if err != nil {
		return err
	}
	defer client.Close()

	return printJSON(client.InterpretWithProfile(grid, profile))
}

func runTop(ctx context.Context, args []string) error {
	client, err := resumedClient(ctx, "top", args)
	if err != nil {
		return err
	}
	defer client.Close()
	return printJSON(client.TopStates())
}

func runObservations(ctx context.Context, args []string) error {
	client, err := resumedClient(ctx, "observations", args)
	if err != nil {
		return err
	}
	defer client.Close()
	return printJSON(client.Observations())
}

// resumedClient opens a checkpointed session for the read-only commands.
func resumedClient(ctx context.Context, command string, args []string) (*phenosapi.Client, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	sessionID := fs.String("session", "", "session id to load")
	store := fs.String("store", "", "store backend (memory|sqlite)")
	dbPath := fs.String("db", "", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *sessionID == "" {
		return nil, usageError(command + " requires -session")
	}

	client, err := phenosapi.New(phenosapi.Options{
		StoreKind: *store,
		DBPath:    *dbPath,
		SessionID: *sessionID,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Resume(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type adaptReport struct {
	SessionID        string                       `json:"session_id"`
	Profile          model.NeurodivergenceProfile `json:"profile"`
	DirectiveCalls   []string                     `json:"directive_calls"`
	AdaptationMemory []model.AdaptationRecord     `json:"adaptation_memory"`
	TopStates        []model.UIState              `json:"top_states"`
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
