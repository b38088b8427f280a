package skills

import (
	"context"
	"strings"
	"time"

	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/prompts"
)

// rawSkillLabels are the only line prefixes the raw extraction stage
// accepts; everything else in the reply is ignored.
var rawSkillLabels = []string{"Technical Skills:", "Soft Skills:", "Domain Knowledge:"}

// extractRawSkills asks the model for a three line skill listing and
// flattens it into a single list. Duplicates and original order are
// kept.
func (a *Analyzer) extractRawSkills(ctx context.Context) ([]string, error) {
	defer observability.ObserveStage("extract_raw_skills", time.Now())

	response, err := a.engine.Query(ctx, prompts.MustGet("extract_raw_skills"))
	if err != nil {
		return nil, &StageError{Stage: "extract_raw_skills", Cause: err}
	}

	skills := []string{}
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		if !hasAnyPrefix(line, rawSkillLabels) {
			continue
		}
		skills = append(skills, splitSkillList(valueAfterLabel(line))...)
	}
	return skills, nil
}

// categorizeSkills sorts raw skills into the fixed taxonomy with one
// oracle call. Skills the model fails to place are lost here, and
// categories left empty are dropped from the result.
func (a *Analyzer) categorizeSkills(ctx context.Context, skills []string) ([]skillCategory, error) {
	defer observability.ObserveStage("categorize_skills", time.Now())

	prompt := prompts.Format(prompts.MustGet("categorize_skills"), map[string]string{
		"Skills": strings.Join(skills, ", "),
	})
	response, err := a.engine.Query(ctx, prompt)
	if err != nil {
		return nil, &StageError{Stage: "categorize_skills", Cause: err}
	}

	byCategory := make(map[string][]string, len(skillTaxonomy))
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		for _, category := range skillTaxonomy {
			if strings.HasPrefix(line, category+":") {
				byCategory[category] = append(byCategory[category], splitSkillList(valueAfterLabel(line))...)
			}
		}
	}

	categorized := make([]skillCategory, 0, len(byCategory))
	for _, category := range skillTaxonomy {
		if list := byCategory[category]; len(list) > 0 {
			categorized = append(categorized, skillCategory{Category: category, Skills: list})
		}
	}
	return categorized, nil
}

// splitSkillList splits a comma separated listing, trimming entries and
// dropping empties while keeping duplicates.
func splitSkillList(list string) []string {
	var skills []string
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			skills = append(skills, entry)
		}
	}
	return skills
}

func valueAfterLabel(line string) string {
	parts := strings.SplitN(line, ":", 2)
	return strings.TrimSpace(parts[len(parts)-1])
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
