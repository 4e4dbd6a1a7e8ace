package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"octav_mcp/internal/app/tools"
	"octav_mcp/internal/client"
	"octav_mcp/internal/config"
	"octav_mcp/internal/pkg/logger"
	"octav_mcp/internal/pkg/metrics"
	"octav_mcp/internal/pkg/tracing"
)

// app is everything a command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *tools.Registry
	api      *client.OctavClient
	promReg  *prometheus.Registry
	shutdown tracing.ShutdownFunc
}

// loadConfig resolves --config, falling back to OCTAV_CONFIG.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	return config.LoadConfig(path)
}

func newApp(cmd *cobra.Command, version string) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	promReg, collector, err := metrics.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	tracer, shutdown, err := tracing.Setup(cmd.Context(), cfg.Tracing)
	if err != nil {
		return nil, err
	}

	api, err := client.NewOctavClient(client.ClientConfig{
		APIKey:    cfg.Octav.APIKey,
		BaseURL:   cfg.Octav.BaseURL,
		UserAgent: "octav-mcp/" + version,
		Timeout:   time.Duration(cfg.Octav.RequestTimeoutMillis) * time.Millisecond,
	}, zapLogger, collector)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}

	zapLogger.Debug("Application initialized",
		zap.String("baseURL", cfg.Octav.BaseURL),
		zap.Bool("tracing", cfg.Tracing.Enabled))

	return &app{
		cfg:      cfg,
		logger:   zapLogger,
		registry: tools.NewRegistry(logger.NewSlogAdapter("component", "tools"), collector, tracer),
		api:      api,
		promReg:  promReg,
		shutdown: shutdown,
	}, nil
}

func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("Failed to flush traces", zap.Error(err))
	}
	logger.Sync()
}
