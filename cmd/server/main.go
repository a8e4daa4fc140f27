package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/legionhq/legion-server/internal/config"
	"github.com/legionhq/legion-server/internal/deck"
	"github.com/legionhq/legion-server/internal/game"
	"github.com/legionhq/legion-server/internal/room"
	"github.com/legionhq/legion-server/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting legion server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Deck store: postgres when configured, otherwise the built-in
	// static store for local play.
	var decks deck.Store
	if cfg.Database.URL != "" {
		repo, err := deck.NewRepository(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect to deck store", zap.Error(err))
		}
		defer repo.Close()
		decks = repo
		logger.Info("deck repository initialized")
	} else {
		decks = deck.NewStaticStore(deck.DemoDeck("demo-1"), deck.DemoDeck("demo-2"))
		logger.Warn("no database configured; serving built-in demo decks")
	}

	rules := game.Rules{
		MultiZoneWidth: cfg.Game.MultiZoneWidth,
		OpeningHand:    cfg.Game.OpeningHand,
		StartingHealth: cfg.Game.StartingHealth,
		StartingAP:     cfg.Game.StartingAP,
	}

	roomMgr := room.NewManager(logger)
	logger.Info("room manager initialized")

	gameMgr := game.NewManager(decks, rules, logger)
	logger.Info("game manager initialized",
		zap.Int("multi_zone_width", rules.MultiZoneWidth),
		zap.Int("opening_hand", rules.OpeningHand),
	)

	hub := server.NewHub(logger)
	router := server.NewRouter(roomMgr, gameMgr, hub, logger)
	srv := server.NewServer(cfg.Server, roomMgr, gameMgr, decks, hub, router, logger)

	go func() {
		if serveErr := srv.Run(); serveErr != nil {
			logger.Error("http server error", zap.Error(serveErr))
		}
	}()

	logger.Info("legion server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("legion server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
