package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trip-planner-go/internal/app"
	"trip-planner-go/pkg/logger"
)

const shutdownGrace = 5 * time.Second

func main() {
	log := logger.NewFromEnv()
	if err := run(log); err != nil {
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	log.Info("trip-planner: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("trip-planner: init failed", "err", err)
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("trip-planner: close failed", "err", err)
		}
	}()

	srv := application.HTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		log.Info("http: listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("trip-planner: shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		return err
	}

	log.Info("trip-planner: stopped")
	return nil
}
