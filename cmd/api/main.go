package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/seedgarden/blessing-engine/internal/adapter"
	"github.com/seedgarden/blessing-engine/internal/api/middleware"
	"github.com/seedgarden/blessing-engine/internal/api/rest"
	"github.com/seedgarden/blessing-engine/internal/api/server"
	"github.com/seedgarden/blessing-engine/internal/blessing"
	"github.com/seedgarden/blessing-engine/internal/config"
	"github.com/seedgarden/blessing-engine/internal/eligibility"
	"github.com/seedgarden/blessing-engine/internal/leaderboard"
	"github.com/seedgarden/blessing-engine/internal/logger"
	"github.com/seedgarden/blessing-engine/internal/merkle"
	"github.com/seedgarden/blessing-engine/internal/providers/ethereum"
	"github.com/seedgarden/blessing-engine/internal/providers/jetstream"
	"github.com/seedgarden/blessing-engine/internal/snapshot"
	"github.com/seedgarden/blessing-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Blessing Engine API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
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

	// Snapshot cache and builder
	snapshots := snapshot.NewProvider(dataStore, snapshot.ProviderConfig{
		TTL:         cfg.Snapshot.TTL,
		StaleWindow: cfg.Snapshot.StaleWindow,
	}, clockAdapter)
	builder := snapshot.NewBuilder(snapshot.BuilderConfig{
		ContractAddress: cfg.Ethereum.CollectionContract,
		HistoryLimit:    cfg.Snapshot.HistoryLimit,
	}, collectionClient, dataStore, natsPublisher, clockAdapter)

	// Eligibility gate backed by the on-chain usage counter
	counter := ethereum.NewUsageCounter(collectionClient, cfg.Ethereum.BlessingContract)
	gate := eligibility.NewGate(eligibility.GateConfig{
		BlessingsPerNFT: cfg.Scoring.BlessingsPerNFT,
	}, snapshots, counter, dataStore, natsPublisher, clockAdapter)

	// Leaderboard over the chain blessing history
	events := blessing.NewChainEventSource(cfg.Ethereum.SeedContract, adapterEthClient, clockAdapter)
	scoring := leaderboard.NewScoringEngine(leaderboard.ScoringConfig{
		BlessingsPerNFT: cfg.Scoring.BlessingsPerNFT,
		AvgTimeToWinner: cfg.Scoring.AvgTimeToWinner,
	}, clockAdapter)
	lb := leaderboard.NewBuilder(leaderboard.BuilderConfig{
		FromBlock: cfg.Ethereum.SeedStartBlock,
	}, snapshots, events, scoring)

	proofs := merkle.NewProofProvider(snapshots)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	handler := rest.NewHandler(gate, lb, proofs, snapshots, builder)
	srv := server.New(serverConfig, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
