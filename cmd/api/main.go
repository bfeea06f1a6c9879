// backend/cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheRipper284/backend/internal/platform/config"
	"github.com/TheRipper284/backend/internal/platform/di"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	cont, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("[boot] init failed: %v", err)
	}
	defer func() {
		if cerr := cont.Close(); cerr != nil {
			log.Printf("[boot] close error: %v", cerr)
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      cont.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] bye")
}
