package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/config"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/store"
)

// runtime holds the pipeline shared by every command
type runtime struct {
	aggregator aggregator.Aggregator
	ingestor   ingestor.Ingestor
	notifier   notifier.Notifier
	json       adapter.JSON
}

func (r *runtime) close() {
	r.ingestor.Close()
	r.notifier.Close()
}

func main() {
	root := &cobra.Command{
		Use:          "syncctl",
		Short:        "Operator commands for the chain sync pipeline",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Path to configuration file")
	root.PersistentFlags().String("env", "config/", "Path to environment files")

	recoverCmd := &cobra.Command{
		Use:   "recover",
		Short: "Retry unprocessed chain events once",
		Args:  cobra.NoArgs,
		RunE:  runRecover,
	}
	root.AddCommand(recoverCmd)

	recomputeCmd := &cobra.Command{
		Use:   "recompute <token-id>...",
		Short: "Recompute token statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRecompute,
	}
	root.AddCommand(recomputeCmd)

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest chain events from a JSONL file",
		Args:  cobra.NoArgs,
		RunE:  runIngest,
	}
	ingestCmd.Flags().String("file", "", "input events JSONL (one event per line)")
	_ = ingestCmd.MarkFlagRequired("file")
	root.AddCommand(ingestCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRecover(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	result, err := rt.ingestor.RecoverFailedEvents(ctx)
	if err != nil {
		return err
	}

	return printJSON(cmd, rt.json, result)
}

func runRecompute(cmd *cobra.Command, args []string) error {
	tokenIDs := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid token id %q: %w", arg, err)
		}
		tokenIDs = append(tokenIDs, id)
	}

	ctx, cancel := signalContext()
	defer cancel()

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	stats := make([]*aggregator.TokenStats, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		s, err := rt.aggregator.Recompute(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to recompute token %s: %w", id, err)
		}
		stats = append(stats, s)
	}

	return printJSON(cmd, rt.json, stats)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	jsonAdapter := adapter.NewJSON()
	events, err := readEvents(f, jsonAdapter)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	logger.InfoCtx(ctx, "Ingesting events", zap.String("file", path), zap.Int("count", len(events)))
	result := rt.ingestor.ProcessBatch(ctx, events)

	return printJSON(cmd, rt.json, result)
}

func setup(cmd *cobra.Command) (*runtime, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envPath, _ := cmd.Flags().GetString("env")

	config.ChdirRepoRoot()
	cfg, err := config.LoadCLIConfig(configFile, envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:       cfg.Debug,
		Service:     "syncctl",
		Environment: cfg.Environment,
		SentryDSN:   cfg.SentryDSN,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	cobra.OnFinalize(func() { logger.Flush(2 * time.Second) })

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	dataStore := store.NewPGStore(db)
	agg := aggregator.NewAggregator(dataStore)

	// Notifications are stored but never published from the CLI
	notif := notifier.NewNotifier(notifier.Config{}, dataStore, nil)
	ing := ingestor.NewIngestor(ingestor.Config{
		WorkerPoolSize:    cfg.Ingestor.WorkerPoolSize,
		RecoveryBatchSize: cfg.Ingestor.RecoveryBatchSize,
		MaxAttempts:       cfg.Ingestor.MaxAttempts,
	}, dataStore, holdings.NewUpdater(dataStore), agg, notif)

	return &runtime{
		aggregator: agg,
		ingestor:   ing,
		notifier:   notif,
		json:       adapter.NewJSON(),
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(cmd *cobra.Command, json adapter.JSON, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
