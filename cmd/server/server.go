// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/chromapick/internal/api"
	"github.com/codr1/chromapick/internal/api/picker"
)

func newServer(cfg *ServerConfig, app *app) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithSession(cfg.App.App.Environment != "development"),
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	picker.InitHandlers(picker.Deps{
		Palettes:       app.palettes,
		Store:          app.store,
		Limiter:        app.limiter,
		Metrics:        app.metrics,
		TrustProxy:     cfg.TrustProxy,
		Title:          cfg.App.App.Name,
		IntervalMillis: cfg.App.Sampling.IntervalMillis,
	})

	// Register routes
	registerRoutes(router, cfg, app)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *ServerConfig, app *app) {
	// Main page handler
	mux.HandleFunc("GET /{$}", picker.HandlePickerPage)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Color routes
	mux.HandleFunc("POST /api/v1/samples", picker.HandleRecordSample)
	mux.HandleFunc("GET /api/v1/convert", picker.HandleConvert)
	mux.HandleFunc("GET /api/v1/palettes", picker.HandleListPalettes)
	mux.HandleFunc("GET /api/v1/palettes/{name}/nearest", picker.HandleNearest)

	// History routes
	mux.HandleFunc("GET /api/v1/history", picker.HandleHistory)
	mux.HandleFunc("GET /api/v1/history/export", picker.HandleHistoryExport)

	if app.metrics != nil {
		mux.Handle("GET /metrics", app.metrics.Handler())
	}

	// Static file handling with logging and environment awareness
	fs := http.FileServer(http.Dir(cfg.StaticDir))

	// Add logging middleware for static files
	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", cfg.StaticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
