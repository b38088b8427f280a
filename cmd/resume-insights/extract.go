package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luillyfe/resume-insights/internal/config"
	"github.com/luillyfe/resume-insights/internal/insights"
	"github.com/luillyfe/resume-insights/internal/logger"
	"github.com/luillyfe/resume-insights/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured candidate profile from a resume PDF",
	Long:  `Loads the resume into a retrieval engine, extracts the candidate's basic information and work history, and runs the skill enrichment pipeline.`,
	RunE:  runExtract,
}

var (
	extractFile   string
	extractOutput string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to the resume PDF (required)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the extracted profile as JSON to this path")
	_ = extractCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(extractCmd)
}

// buildInsights loads configuration and indexes the resume. Callers own the
// returned instance and must Close it.
func buildInsights(ctx context.Context, filePath string) (*insights.ResumeInsights, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(flagJSONLogs, flagVerbose)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	ri, err := insights.NewFromFile(ctx, cfg, filePath, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return ri, cfg, log, nil
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	ri, _, log, err := buildInsights(ctx, extractFile)
	if err != nil {
		return err
	}
	defer ri.Close()

	candidate, err := ri.ExtractCandidateData(ctx)
	if err != nil {
		return err
	}
	log.Info("extraction complete", zap.Int("skills", len(candidate.Skills)))

	observability.NewPrinter(os.Stdout).PrintCandidate(candidate)

	if extractOutput != "" {
		data, err := json.MarshalIndent(candidate, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding profile: %w", err)
		}
		if err := os.WriteFile(extractOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}
		fmt.Printf("Profile written to %s\n", extractOutput)
	}

	return nil
}
