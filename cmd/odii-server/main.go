package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odii/audio-guide/internal/api"
	"github.com/odii/audio-guide/internal/config"
)

func main() {
	logger := log.New(os.Stdout, "[odii] ", log.LstdFlags)

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	store := api.NewListingStore(api.DefaultListings())
	if cfg.ListingsFile != "" {
		if err := store.LoadFile(cfg.ListingsFile); err != nil {
			logger.Fatalf("Failed to load listings: %v", err)
		}
		watcher, err := api.WatchListings(store, cfg.ListingsFile, cfg.ReloadDebounce, logger)
		if err != nil {
			logger.Fatalf("Error creating listings watcher: %v", err)
		}
		defer watcher.Close()
		logger.Printf("Watching %s for listing changes", cfg.ListingsFile)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewServer(store, cfg.ServiceVersion, logger).Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("Odii backend running on http://localhost%s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("Shutdown error: %v", err)
	}
	logger.Println("Server stopped")
}
