package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-parser/internal/config"
	"github.com/jonathan/cv-parser/internal/extract"
	"github.com/jonathan/cv-parser/internal/hints"
	"github.com/jonathan/cv-parser/internal/llm"
	"github.com/jonathan/cv-parser/internal/logger"
	"github.com/jonathan/cv-parser/internal/pipeline"
	"github.com/jonathan/cv-parser/internal/resolve"
	"github.com/jonathan/cv-parser/internal/server"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that accepts resume uploads on /api/parse-cv and serves the front-end.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// The NER model loads once here; if it is unavailable the hinter degrades
	// to empty hints and requests still succeed.
	hinter := hints.NewHinter(log)
	if !hinter.Available() {
		log.Warn().Msg("running without entity hints")
	}

	extractor := extract.New(log)
	resolver := resolve.NewResolver(llm.NewGeminiFactory(cfg.Model), cfg.ResolveTimeout(), log)
	pipe := pipeline.New(extractor, hinter, resolver, log)

	srv := server.New(server.Config{
		Port:           cfg.Port,
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, pipe, log)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
