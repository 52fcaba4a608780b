package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"mediavault/internal/config"
	"mediavault/internal/delivery"
	ws "mediavault/internal/delivery/ws"
	"mediavault/internal/domain"
	"mediavault/internal/infra"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// CONFIG
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("postgres: " + err.Error())
	}
	defer pool.Close()

	if err := infra.Migrate(cfg.DatabaseURL); err != nil {
		panic("migrations: " + err.Error())
	}

	// SERVICES
	mediaRepo := infra.NewPostgresMediaRepo(pool)
	mediaService := domain.NewMediaService(mediaRepo)

	// HANDLERS
	hMedia := delivery.NewMediaHandler(mediaService, zl, cfg.BasePath)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range mediaService.Events() {

			type wsEvent struct {
				Action    string `json:"action"`
				ID        string `json:"id"`
				Title     string `json:"title"`
				MediaKind string `json:"mediaKind"`
			}

			payload, err := json.Marshal(wsEvent{
				Action:    ev.Action,
				ID:        ev.Record.ID,
				Title:     ev.Record.Title,
				MediaKind: string(ev.Record.Kind),
			})
			if err != nil {
				log.Printf("[SEND][ERR] json marshal failed: %v", err)
				continue
			}

			hub.Broadcast(payload)
		}
	}()

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestSize(cfg.MaxUploadBytes))

	r.Route(cfg.BasePath, func(r chi.Router) {
		delivery.RegisterRoutes(r, hMedia)
	})

	r.Get("/ws", ws.Handler(hub))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
