// Package serve provides the serve command, which exposes batch runs over
// HTTP with live progress streams.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fioriscope/fioriscope/cmd/application"
	"github.com/fioriscope/fioriscope/internal/cmd/emoji"
	"github.com/fioriscope/fioriscope/internal/server"
	"github.com/fioriscope/fioriscope/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the HTTP API with WebSocket and SSE progress",
		Long: `Start an HTTP API for running batches from a browser or script.

Endpoints (under --prefix, default /api/v1):
  POST /runs             run a batch: {"fioriIds": "F0842 F1234", "releaseId": "S28OP"}
  GET  /runs/current     the run in flight, or the last finished run
  GET  /export           download the last workbook (?refresh=true runs again)
  GET  /updates/ws       WebSocket progress events
  GET  /updates/stream   Server-Sent Events progress events
  GET  /health, /ready   liveness and readiness

Only one batch runs at a time; a second POST /runs answers 409.`,
		Example: `  # Start on default port 8080
  fioriscope serve

  # Allow a browser frontend on another origin
  fioriscope serve --cors-origins "https://tools.example.com"

  # Expose on all interfaces without rate limiting
  fioriscope serve --host 0.0.0.0 --rate-limit 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("artifact-ttl", defaults.ArtifactTTL, "How long a generated workbook stays downloadable")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout (must cover a whole batch)")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

func runServer(cmd *cobra.Command, app application.Application) error {
	cfg := parseConfig(cmd)
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("artifact_ttl", cfg.ArtifactTTL).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		// a shutdown signal also cancels the batch in flight
		BaseContext: func(net.Listener) context.Context { return cmd.Context() },
	}

	return startWithGracefulShutdown(cmd, httpServer, srv, logger)
}

// parseConfig reads the flags, then HTTP_HOST and HTTP_PORT.
func parseConfig(cmd *cobra.Command) server.Config {
	flags := cmd.Flags()
	cfg := server.DefaultConfig()

	cfg.Port, _ = flags.GetInt("port")
	cfg.Host, _ = flags.GetString("host")
	cfg.PathPrefix, _ = flags.GetString("prefix")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	cfg.RateLimit, _ = flags.GetInt("rate-limit")
	cfg.ArtifactTTL, _ = flags.GetDuration("artifact-ttl")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")

	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		if p, err := parsePort(envPort); err == nil {
			cfg.Port = p
		}
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}
	return cfg
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// startWithGracefulShutdown serves until the command context is cancelled,
// then drains connections and stops the background services.
func startWithGracefulShutdown(cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	out := cmd.OutOrStdout()
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		_, _ = fmt.Fprintf(out, "%s API server listening on %s\n", emoji.Info, httpServer.Addr)
		_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-cmd.Context().Done():
		logger.Info().Msg("Shutdown signal received")
		_, _ = fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Stop)

		// the parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		_, _ = fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}
