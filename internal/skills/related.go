package skills

import (
	"context"
	"strings"
	"time"

	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/prompts"
	"github.com/luillyfe/resume-insights/internal/types"
)

// relatedSkillsChunkSize bounds how many skills one oracle call covers.
const relatedSkillsChunkSize = 5

// findRelatedSkills asks the model, chunk by chunk, which other
// extracted skills relate to each one, and flattens the categorized
// records into the final map keyed by skill name.
func (a *Analyzer) findRelatedSkills(ctx context.Context, withProficiency []categoryGroup) (map[string]types.SkillDetail, error) {
	defer observability.ObserveStage("find_related_skills", time.Now())

	details := make(map[string]*types.SkillDetail)
	names := make([]string, 0)
	for _, group := range withProficiency {
		for _, record := range group.Skills {
			if _, seen := details[record.SkillName]; !seen {
				names = append(names, record.SkillName)
			}
			details[record.SkillName] = &types.SkillDetail{
				SkillName:       record.SkillName,
				Category:        group.Category,
				Proficiency:     record.Proficiency,
				YearsExperience: record.YearsExperience,
				Mentions:        record.Mentions,
			}
		}
	}

	universe := make(map[string]bool, len(names))
	for _, name := range names {
		universe[name] = true
	}

	for start := 0; start < len(names); start += relatedSkillsChunkSize {
		chunk := names[start:min(start+relatedSkillsChunkSize, len(names))]

		prompt := prompts.Format(prompts.MustGet("find_related_skills"), map[string]string{
			"AllSkills": strings.Join(names, ", "),
			"Chunk":     strings.Join(chunk, ", "),
		})
		response, err := a.engine.Query(ctx, prompt)
		if err != nil {
			return nil, &StageError{Stage: "find_related_skills", Cause: err}
		}

		applyRelatedSkills(details, response, chunk, universe)
	}

	result := make(map[string]types.SkillDetail, len(details))
	for name, detail := range details {
		result[name] = *detail
	}
	return result, nil
}

// applyRelatedSkills parses "skill: related, related" reply lines. Only
// skills from the current chunk are accepted on the left, and only
// names from the extracted set, minus the skill itself, on the right.
func applyRelatedSkills(details map[string]*types.SkillDetail, response string, chunk []string, universe map[string]bool) {
	for _, line := range strings.Split(response, "\n") {
		name, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if !containsName(chunk, name) {
			continue
		}

		var related []string
		for _, candidate := range strings.Split(rest, ",") {
			candidate = strings.TrimSpace(candidate)
			if universe[candidate] && candidate != name {
				related = append(related, candidate)
			}
		}
		details[name].RelatedSkills = related
	}
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
