package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"mockupgen/internal/domain/jsoncfg"
	"mockupgen/internal/http/handlers"
	"mockupgen/internal/http/httpapi"
	"mockupgen/internal/infra"
	"mockupgen/internal/pipeline"
	"mockupgen/internal/progress"
	"mockupgen/internal/providers/replicate"
	"mockupgen/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	specs, err := jsoncfg.LoadMockups(cfg.MockupConfigPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load mockup configuration")
	}
	logger.Info().Int("mockups", len(specs)).Str("path", cfg.MockupConfigPath).Msg("mockup configuration loaded")

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	client := replicate.NewClient(replicate.Options{
		BaseURL:      cfg.ReplicateBaseURL,
		APIToken:     cfg.ReplicateAPIToken,
		ModelVersion: cfg.ReplicateModelVersion,
	})
	poller := replicate.NewPoller(client, cfg.PollInterval)

	// Burst 2 lets the first predictions start together; the rest pace out
	// at the configured submit interval.
	limiter := rate.NewLimiter(rate.Every(cfg.SubmitInterval), 2)
	httpClient := &http.Client{Timeout: 60 * time.Second}
	runner := pipeline.NewRunner(client, poller, httpClient, limiter, cfg.PollTimeout, logger)

	broker := progress.NewBroker()
	orchestrator := pipeline.NewOrchestrator(runner, broker, specs, pipeline.Policy{FailOnEmptyBatch: cfg.FailOnEmptyBatch}, logger)

	app := handlers.NewApp(cfg, logger, orchestrator, broker, store)
	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("mockup generator listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
