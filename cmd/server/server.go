package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/draftforge/draftforge/internal/catalog"
	"github.com/draftforge/draftforge/internal/config"
	creationhttp "github.com/draftforge/draftforge/internal/handlers/creation"
	creationsvc "github.com/draftforge/draftforge/internal/orchestrators/creation"
	"github.com/draftforge/draftforge/internal/pkg/clock"
	"github.com/draftforge/draftforge/internal/pkg/idgen"
	redisclient "github.com/draftforge/draftforge/internal/redis"
	"github.com/draftforge/draftforge/internal/repositories/session"
)

var (
	httpPort string
	dataDir  string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the draftforge HTTP server with the content catalog loaded from the data directory.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&httpPort, "port", "", "HTTP server port (overrides HTTP_PORT)")
	serverCmd.Flags().StringVar(&dataDir, "data", "", "rule content directory (overrides DATA_DIR)")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if httpPort != "" {
		cfg.HTTPPort = httpPort
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	store, err := catalog.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load content catalog: %w", err)
	}

	redisConn, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize: cfg.RedisPoolSize,
		UseTLS:   cfg.RedisUseTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if closeErr := redisConn.Close(); closeErr != nil {
			slog.Warn("closing redis client", "error", closeErr)
		}
	}()

	repo, err := session.NewRedisRepository(&session.RedisConfig{
		Client: redisConn,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	orchestrator, err := creationsvc.New(&creationsvc.Config{
		Repository: repo,
		Catalog:    store,
		IDGen:      idgen.NewUUID("session"),
		Clock:      clock.New(),
		SessionTTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	router := creationhttp.NewRouter(creationhttp.NewHandler(orchestrator))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort, "data_dir", cfg.DataDir)
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", serveErr)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
