package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"music-vault/internal/handlers"
	"music-vault/internal/library"
	"music-vault/internal/logging"
	"music-vault/internal/media"
	"music-vault/internal/middleware"
	"music-vault/internal/playlist"
	"music-vault/internal/settings"
	"music-vault/internal/startup"
	"music-vault/internal/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// libvips is optional; cover processing falls back to pure Go.
	if err := media.InitVips(); err != nil {
		logging.Warn("libvips unavailable, using pure-Go image pipeline: %v", err)
	}

	cfg := settings.New(store.Open(config.SettingsStorePath))
	lib := library.New(store.Open(config.LibraryStorePath), cfg)
	pls := playlist.New(store.Open(config.PlaylistStorePath), cfg)

	h := handlers.New(cfg, lib, pls)
	router := setupRouter(h)

	loggedHandler := middleware.Logger(middleware.LoggingConfig{
		LogHealthChecks: config.LogHealthChecks,
	})(router)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      loggedHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    ":" + config.MetricsPort,
			Handler: metricsMux,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv)

	startup.LogServerStarted(config, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Metrics())

	api.HandleFunc("/settings/music-folder", h.GetMusicFolder).Methods("GET")
	api.HandleFunc("/settings/music-folder", h.SetMusicFolder).Methods("PUT")
	api.HandleFunc("/settings/music-folder/size", h.GetMusicFolderSize).Methods("GET")

	api.HandleFunc("/library/tracks", h.ListTracks).Methods("GET")
	api.HandleFunc("/library/tracks", h.IngestTrack).Methods("POST")

	api.HandleFunc("/playlists", h.ListPlaylists).Methods("GET")
	api.HandleFunc("/playlists", h.CreatePlaylist).Methods("POST")
	api.HandleFunc("/playlists/{id}", h.GetPlaylist).Methods("GET")
	api.HandleFunc("/playlists/{id}", h.DeletePlaylist).Methods("DELETE")
	api.HandleFunc("/playlists/{id}/tracks", h.ReplacePlaylistTracks).Methods("PUT")
	api.HandleFunc("/playlists/{id}/tracks", h.AppendPlaylistTracks).Methods("POST")

	return r
}

func handleShutdown(srv, metricsSrv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		}
	}

	media.ShutdownVips()
	logging.Info("Shutdown complete")
}
