package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/migillett/TranscodeTycoonGame/internal/api"
	"github.com/migillett/TranscodeTycoonGame/internal/api/handlers"
	"github.com/migillett/TranscodeTycoonGame/internal/clock"
	"github.com/migillett/TranscodeTycoonGame/internal/config"
	"github.com/migillett/TranscodeTycoonGame/internal/services"
	"github.com/migillett/TranscodeTycoonGame/internal/storage"
	"github.com/migillett/TranscodeTycoonGame/pkg/logger"
)

const version = "1.0.0"

// RunServer boots the game engine and serves the HTTP API until a shutdown
// signal arrives.
func RunServer(configPath string) {
	log := logger.Get()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("Config load failed, using defaults")
		cfg = config.Default()
	}

	var store services.SnapshotStore
	if !cfg.Snapshot.Disabled {
		store = storage.NewFileStore(cfg.Snapshot.Path)
	}

	game := services.NewGameService(cfg.Game, clock.RealClock{}, store)
	game.FillBoard()

	router := api.NewRouter(
		handlers.NewUserHandler(game),
		handlers.NewJobHandler(game),
		handlers.NewUpgradeHandler(game),
		game,
		cfg.Server.Endpoint,
		version,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info().Str("address", server.Addr).Str("version", version).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-stopChan
	log.Info().Msg("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	game.Flush()
	log.Info().Msg("Shutdown complete")
}
