package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/consultdesk/erp-ui/config"
	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	"github.com/consultdesk/erp-ui/internal/domain/access"
	httpx "github.com/consultdesk/erp-ui/internal/http"
	"github.com/consultdesk/erp-ui/internal/observability/metrics"
	"github.com/consultdesk/erp-ui/internal/service"
)

// ServiceDeps contains dependencies for creating services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // optional; nil keeps login profiles in memory
	HTTPClient  *http.Client          // optional; backend calls use a default client when nil
	Logger      *slog.Logger
}

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	Auth           *service.AuthService
	Modules        *service.ModuleService
	Gate           *access.Gate
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	HealthChecks   []httpx.HealthCheck
}

// NewServices wires the application services from configuration.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sc ServiceContainer

	if cfg.Observability.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sc.Metrics = metrics.New(metrics.Config{Namespace: cfg.Observability.Metrics.Namespace, Registerer: reg})
		sc.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	api, err := NewAPIClient(cfg.API, deps.HTTPClient, logger)
	if err != nil {
		return ServiceContainer{}, err
	}
	exchanger, err := BuildCredentialExchanger(cfg.Auth, api, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	sc.Auth = service.NewAuthService(service.AuthServiceOptions{
		Exchanger: exchanger,
		Decoder:   tokenclaims.NewDecoder(),
		Profiles:  BuildProfileStore(cfg.Redis, deps.RedisClient, logger),
		Metrics:   sc.Metrics,
		Logger:    logger,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	sc.Modules = service.NewModuleService(service.ModuleServiceOptions{
		Reader:      api,
		Metrics:     sc.Metrics,
		Logger:      logger,
		Concurrency: cfg.API.DashboardConcurrency,
	})
	sc.Gate = access.NewGate(GateConfig(cfg.Gate), logger)

	if deps.RedisClient != nil {
		client := deps.RedisClient
		sc.HealthChecks = append(sc.HealthChecks, httpx.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	return sc, nil
}

// GateConfig converts the env configuration into gate rules.
func GateConfig(cfg config.GateConfig) access.Config {
	out := access.Config{ConsultantDenylist: append([]string(nil), cfg.ConsultantDenylist...)}
	for _, rule := range cfg.Bypass {
		out.Bypass = append(out.Bypass, access.BypassRule{Path: rule.Path, Query: append([]string(nil), rule.Query...)})
	}
	return out
}

// RunConfig contains the dependencies of Run.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run serves HTTP until SIGINT/SIGTERM or a server failure, then shuts down gracefully.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config with app config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		ErrCh:    errCh,
	})
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down")
	case runErr = <-errCh:
		logger.Error("HTTP server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Config.HTTP.ShutdownTimeout)
	defer cancel()
	if err := ShutdownHTTPServer(ShutdownConfig{Context: shutdownCtx, Server: server, Logger: logger}); err != nil {
		return errors.Join(runErr, fmt.Errorf("shutdown http server: %w", err))
	}
	return runErr
}
