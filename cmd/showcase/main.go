// Command showcase serves the form and data grid widgets over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-showcase/internal/config"
	"github.com/goliatone/go-showcase/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("SHOWCASE_CONFIG"), "path to an HCL config file")
	addr := flag.String("addr", "", "listen address (overrides the config file)")
	grace := flag.Duration("grace", 0, "graceful shutdown timeout (overrides the config file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *grace > 0 {
		cfg.Server.ShutdownGrace = *grace
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init server: %v", err)
	}
	logger := srv.Logger()

	go srv.Sessions().Run(ctx, 0)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (theme %s/%s, default form %q)",
			cfg.Server.Addr, cfg.Theme.Name, cfg.Theme.Variant, cfg.Form.Default)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
		return
	case <-ctx.Done():
	}

	logger.Printf("shutting down (grace %s)", cfg.Server.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
