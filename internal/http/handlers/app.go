package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"mockupgen/internal/infra"
	"mockupgen/internal/pipeline"
	"mockupgen/internal/progress"
	"mockupgen/internal/storage"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Config       *infra.Config
	Logger       zerolog.Logger
	Orchestrator *pipeline.Orchestrator
	Broker       *progress.Broker
	Store        *storage.FileStore
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, orch *pipeline.Orchestrator, broker *progress.Broker, store *storage.FileStore) *App {
	return &App{
		Config:       cfg,
		Logger:       logger,
		Orchestrator: orch,
		Broker:       broker,
		Store:        store,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
