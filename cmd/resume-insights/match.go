package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luillyfe/resume-insights/internal/jobpostings"
	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rate a resume's skills against a job position",
	Long:  `Extracts the candidate profile from the resume, then asks the model how relevant each extracted skill is to the given position. An optional posting URL is fetched and folded into the assessment.`,
	RunE:  runMatch,
}

var (
	matchFile       string
	matchPosition   string
	matchCompany    string
	matchURL        string
	matchOutput     string
	matchUseBrowser bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchFile, "file", "f", "", "Path to the resume PDF (required)")
	matchCmd.Flags().StringVarP(&matchPosition, "position", "p", "", "Job position title (required)")
	matchCmd.Flags().StringVarP(&matchCompany, "company", "c", "", "Company offering the position (required)")
	matchCmd.Flags().StringVar(&matchURL, "url", "", "Job posting URL to fetch for additional context")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "Write the match result as JSON to this path")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Use headless browser for SPA postings (requires Chrome)")
	_ = matchCmd.MarkFlagRequired("file")
	_ = matchCmd.MarkFlagRequired("position")
	_ = matchCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	ri, cfg, log, err := buildInsights(ctx, matchFile)
	if err != nil {
		return err
	}
	defer ri.Close()

	candidate, err := ri.ExtractCandidateData(ctx)
	if err != nil {
		return err
	}
	if len(candidate.Skills) == 0 {
		return fmt.Errorf("no skills extracted from %s, nothing to match", matchFile)
	}

	skillNames := make([]string, 0, len(candidate.Skills))
	for name := range candidate.Skills {
		skillNames = append(skillNames, name)
	}
	sort.Strings(skillNames)

	postingText := ""
	if matchURL != "" {
		fetcher := jobpostings.NewFetcher(cfg.FetchTimeout, matchUseBrowser, log)
		posting, err := fetcher.Fetch(ctx, matchURL)
		if err != nil {
			return fmt.Errorf("fetching job posting: %w", err)
		}
		postingText = posting.Text
		log.Info("fetched job posting", zap.String("title", posting.Title), zap.Int("chars", len(posting.Text)))
	}

	match, err := ri.MatchJobToSkillsWithPosting(ctx, skillNames, matchPosition, matchCompany, postingText)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCandidate(candidate)
	printer.PrintJobMatch(match)

	if matchOutput != "" {
		result := struct {
			Candidate *types.Candidate `json:"candidate"`
			Match     *types.JobSkill  `json:"match"`
		}{Candidate: candidate, Match: match}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding match result: %w", err)
		}
		if err := os.WriteFile(matchOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing match result: %w", err)
		}
		fmt.Printf("Match result written to %s\n", matchOutput)
	}

	return nil
}
