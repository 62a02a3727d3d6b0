package main

import (
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	databaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the optimization endpoints under /api.

When DATABASE_URL (or --db-url) is set, the server also migrates the database and
serves the authenticated routes for stored jobs, résumés, analyses and profiles.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (defaults to PORT env var, then 8080)")
	serveCmd.Flags().StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	port := servePort
	if !cmd.Flags().Changed("port") {
		if port, err = config.GetEnvInt(config.EnvPort, servePort); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	logger := logging.Logger()
	s := newStrategy(ctx, cfg)
	defer closeStrategy(s)

	srvCfg := server.Config{
		Port:        port,
		Strategy:    s,
		Ingestion:   urlOptions(cfg),
		CORSOrigins: server.CORSOriginsFromEnv(),
		Logger:      logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		srvCfg.Store = database
	} else {
		logger.Warn("DATABASE_URL not set, serving stateless routes only")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
