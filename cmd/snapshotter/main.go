package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/config"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/providers/ethereum"
	"github.com/seedgarden/blessing-engine/internal/providers/jetstream"
	"github.com/seedgarden/blessing-engine/internal/snapshot"
	"github.com/seedgarden/blessing-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	runOnce    = flag.Bool("once", false, "Build one snapshot and exit instead of running on a schedule")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSnapshotterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "snapshotter",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting snapshotter")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer adapterEthClient.Close()
	collectionClient, err := ethereum.NewCollectionClient(ctx, cfg.Ethereum.ChainID, adapterEthClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to verify Ethereum RPC chain", zap.Error(err), zap.String("chain_id", string(cfg.Ethereum.ChainID)))
	}

	// Initialize NATS publisher
	natsPublisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer natsPublisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	builder := snapshot.NewBuilder(snapshot.BuilderConfig{
		ContractAddress: cfg.Ethereum.CollectionContract,
		WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
		HistoryLimit:    cfg.Snapshot.HistoryLimit,
	}, collectionClient, dataStore, natsPublisher, clockAdapter)

	build := func() {
		buildCtx, buildCancel := context.WithTimeout(ctx, 30*time.Minute)
		defer buildCancel()

		snap, err := builder.Build(buildCtx, 0)
		if err != nil {
			logger.ErrorCtx(buildCtx, err, zap.String("component", "snapshot-builder"))
			return
		}
		logger.InfoCtx(buildCtx, "Snapshot promoted",
			zap.String("snapshot_id", snap.ID),
			zap.Uint64("block_number", snap.BlockNumber),
			zap.Uint64("total_supply", snap.TotalSupply),
			zap.Int("holder_count", len(snap.Holders)),
		)
	}

	if *runOnce {
		build()
		logger.Info("Snapshotter finished")
		return
	}

	// Schedule recurring builds
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Snapshot.CronSchedule, build); err != nil {
		logger.FatalCtx(ctx, "Invalid cron schedule", zap.Error(err), zap.String("schedule", cfg.Snapshot.CronSchedule))
	}
	scheduler.Start()
	logger.InfoCtx(ctx, "Snapshot schedule active", zap.String("schedule", cfg.Snapshot.CronSchedule))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	cancel()

	// Let an in-flight build observe cancellation before exiting
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
	}

	logger.Info("Snapshotter stopped")
}
