package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luillyfe/resume-insights/internal/config"
	"github.com/luillyfe/resume-insights/internal/logger"
	"github.com/luillyfe/resume-insights/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts resume uploads, serves extracted candidate profiles, and rates skills against job positions.`,
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides SERVER_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ServerAddr = serveAddr
	}

	log, err := logger.New(flagJSONLogs, flagVerbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	return server.New(cfg, log).Start()
}
