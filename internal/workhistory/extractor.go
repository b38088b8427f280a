// Package workhistory extracts employment entries and the raw resume
// text from an indexed resume.
package workhistory

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/luillyfe/resume-insights/internal/prompts"
	"github.com/luillyfe/resume-insights/internal/queryengine"
	"github.com/luillyfe/resume-insights/internal/types"
)

// Extractor pulls structured work history out of a resume through the
// query engine.
type Extractor struct {
	engine queryengine.Engine
}

// NewExtractor creates an Extractor backed by the given engine.
func NewExtractor(engine queryengine.Engine) *Extractor {
	return &Extractor{engine: engine}
}

// ExtractWorkHistory asks the model for every position on the resume as
// a JSON list. Replies that do not parse as one are run through a
// line-oriented fallback parser, so the result may be empty but the
// call itself only fails when the underlying query does.
func (e *Extractor) ExtractWorkHistory(ctx context.Context) ([]types.WorkHistoryEntry, error) {
	response, err := e.engine.Query(ctx, prompts.MustGet("extract_work_history"))
	if err != nil {
		return nil, err
	}

	var entries []types.WorkHistoryEntry
	if err := json.Unmarshal([]byte(response), &entries); err == nil && entries != nil {
		return entries, nil
	}
	return parseWorkHistoryLines(response), nil
}

// ExtractResumeText returns the resume's full text as the model sees it.
func (e *Extractor) ExtractResumeText(ctx context.Context) (string, error) {
	return e.engine.Query(ctx, prompts.MustGet("extract_resume_text"))
}

// parseWorkHistoryLines recovers entries from replies formatted as
// labeled lines instead of JSON. A "Title:" line opens a new entry,
// flushing the previous one if it had a title of its own; unrecognized
// lines build up the running description.
func parseWorkHistoryLines(response string) []types.WorkHistoryEntry {
	history := make([]types.WorkHistoryEntry, 0)
	var current types.WorkHistoryEntry
	hasTitle := false

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Title:") || strings.HasPrefix(line, "Job Title:"):
			if hasTitle {
				history = append(history, current)
				current = types.WorkHistoryEntry{}
			}
			current.Title = valueAfterLabel(line)
			hasTitle = true
		case strings.HasPrefix(line, "Company:"):
			current.Company = valueAfterLabel(line)
		case strings.HasPrefix(line, "Start Date:") || strings.HasPrefix(line, "From:"):
			current.StartDate = valueAfterLabel(line)
		case strings.HasPrefix(line, "End Date:") || strings.HasPrefix(line, "To:"):
			current.EndDate = valueAfterLabel(line)
		case current.Description != "":
			current.Description += " " + line
		case hasTitle:
			current.Description = line
		}
	}

	if hasTitle {
		history = append(history, current)
	}
	return history
}

func valueAfterLabel(line string) string {
	parts := strings.SplitN(line, ":", 2)
	return strings.TrimSpace(parts[1])
}
