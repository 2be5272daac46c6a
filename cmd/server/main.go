package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/studyhall/internal/admission"
	"github.com/mmynk/studyhall/internal/api/studyhallconnect"
	"github.com/mmynk/studyhall/internal/apperr"
	"github.com/mmynk/studyhall/internal/auth"
	"github.com/mmynk/studyhall/internal/config"
	"github.com/mmynk/studyhall/internal/events"
	"github.com/mmynk/studyhall/internal/metrics"
	"github.com/mmynk/studyhall/internal/middleware"
	"github.com/mmynk/studyhall/internal/service"
	"github.com/mmynk/studyhall/internal/storage/sqlite"
	"github.com/mmynk/studyhall/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	engine := admission.New(store,
		admission.WithMetrics(m),
		admission.WithInviteAutoConfirm(cfg.InviteAutoConfirm),
	)
	dispatcher := events.NewDispatcher(events.NewStoreNotifier(store), engine, m)

	if cfg.SweepInterval > 0 {
		go engine.RunSweeper(ctx, cfg.SweepInterval)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	mux := http.NewServeMux()
	path, handler := studyhallconnect.NewStudyGroupServiceHandler(
		service.NewStudyGroupService(engine, dispatcher),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor()),
	)
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: 10 * time.Second,
		// h2c serves HTTP/2 without TLS for Connect clients.
		Handler: h2c.NewHandler(newCORS(cfg.AllowedOrigins).Handler(mux), &http2.Server{}),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
			apperr.ReasonHeader,
		},
		MaxAge: int((10 * time.Minute).Seconds()),
	})
}
