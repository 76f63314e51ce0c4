// Package server boots every subsystem and runs the HTTP server until a
// shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/stockly/app/routes"
	"github.com/shashiranjanraj/stockly/config"
	"github.com/shashiranjanraj/stockly/pkg/cache"
	"github.com/shashiranjanraj/stockly/pkg/database"
	"github.com/shashiranjanraj/stockly/pkg/grpcserver"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/metrics"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
	"github.com/shashiranjanraj/stockly/pkg/reqid"
	"github.com/shashiranjanraj/stockly/pkg/router"
	"github.com/shashiranjanraj/stockly/pkg/storage"
	"github.com/shashiranjanraj/stockly/pkg/ws"
)

const shutdownGrace = 15 * time.Second

// Start boots config, Mongo, Redis, storage, the log fan-out, the ws hub,
// and the gRPC health server, then serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if _, err := config.MustJWTSecret(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx); err != nil {
			logger.Warn("server: mongo disconnect", "error", err)
		}
	}()

	if err := cache.Connect(); err != nil {
		// Redis only backs the token denylist; the app degrades without it.
		logger.Warn("server: redis unavailable", "error", err)
	}

	storage.Connect()

	// Fan application logs out to the Mongo sink alongside stdout.
	mongoSink := logger.NewMongoHandler(database.Collection(config.MongoLogCollection()))
	logger.SetHandler(logger.NewMultiHandler(currentHandler(), mongoSink))
	defer mongoSink.Close()

	go ws.InventoryHub.Run()

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort(), database.Ping)
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))
	r.Use(middleware.RateLimit(300, time.Minute))
	routes.RegisterAPI(r)

	srv := &http.Server{
		Addr:         ":" + config.AppPort(),
		Handler:      r.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

// currentHandler extracts the handler backing the package logger so it can
// be wrapped in a MultiHandler.
func currentHandler() slog.Handler {
	return logger.L.Handler()
}
