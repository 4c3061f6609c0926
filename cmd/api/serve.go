package main

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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/justsurfingit/job-agent/internal/config"
	"github.com/justsurfingit/job-agent/internal/database"
	"github.com/justsurfingit/job-agent/internal/handlers"
	"github.com/justsurfingit/job-agent/internal/logger"
	"github.com/justsurfingit/job-agent/internal/server"
	"github.com/justsurfingit/job-agent/internal/services"
)

const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Configuration and logging
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// 2. Journal (optional)
	var journal services.Journal = services.NopJournal{}
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		journal = services.NewJournalService(db)
	} else {
		slog.Warn("DATABASE_URL not set, run journal disabled")
	}

	// 3. Core services
	pipeline := services.NewPipelineService(
		services.NewMockJobSource(),
		services.NewApplicationSimulator(),
		journal,
		cfg.SearchDelay,
		cfg.ApplyDelay,
	)
	sessions := services.NewSessionService(pipeline)
	sweeper := services.NewSweeperService(sessions, cfg.SessionTTL, cfg.SweepInterval)

	// 4. Router
	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(cfg.CORSAllowOrigins, handlers.NewSessionHandler(sessions, pipeline, journal))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Run until interrupted
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sweeper.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		sessions.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
