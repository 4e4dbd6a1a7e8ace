package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"octav_mcp/internal/infrastructure/mcpserver"
	"octav_mcp/internal/infrastructure/restapi"
	"octav_mcp/internal/pkg/metrics"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP stdio or HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			if transport != transportStdio && transport != transportHTTP {
				return fmt.Errorf("unknown transport %q (want %s or %s)", transport, transportStdio, transportHTTP)
			}

			a, err := newApp(cmd, version)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if transport == transportHTTP {
				port, _ := cmd.Flags().GetString("port")
				if port != "" {
					a.cfg.Server.Port = port
				}
				return serveHTTP(ctx, a)
			}
			return mcpserver.NewServer(a.registry, a.api, version, a.logger).Run(ctx)
		},
	}
	cmd.Flags().String("transport", transportStdio, "Transport to serve on: stdio or http")
	cmd.Flags().String("port", "", "HTTP listen port (overrides server.port)")
	return cmd
}

func serveHTTP(ctx context.Context, a *app) error {
	gin.SetMode(gin.ReleaseMode)
	handler := restapi.NewToolHandler(a.registry, a.api, a.logger)
	router := restapi.SetupRouter(handler, a.cfg.Server, metrics.Handler(a.promReg), a.logger)

	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		a.logger.Info("Server exiting")
		return nil
	})
	return g.Wait()
}
