// Package skills enriches the skills named on a resume through a five
// stage pipeline: raw extraction, categorization, experience
// attribution, proficiency scoring, and related-skill discovery.
package skills

import (
	"context"
	"time"

	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/queryengine"
	"github.com/luillyfe/resume-insights/internal/types"
)

// skillTaxonomy lists the fixed categories in presentation order. The
// order is load-bearing: a skill claimed by two categories resolves to
// the last one.
var skillTaxonomy = []string{
	"Programming Languages",
	"Frameworks & Libraries",
	"Tools & Technologies",
	"Soft Skills",
	"Domain Knowledge",
}

// skillCategory is one taxonomy bucket of the categorization stage.
type skillCategory struct {
	Category string
	Skills   []string
}

// categoryGroup keeps enriched records attached to their category.
type categoryGroup struct {
	Category string
	Skills   []skillRecord
}

// skillRecord carries one skill through the enrichment stages.
type skillRecord struct {
	SkillName       string
	YearsExperience *float64
	Mentions        []string
	Proficiency     *float64
}

// Analyzer runs the skill enrichment pipeline against a query engine.
type Analyzer struct {
	engine queryengine.Engine
}

// NewAnalyzer creates an Analyzer backed by the given engine.
func NewAnalyzer(engine queryengine.Engine) *Analyzer {
	return &Analyzer{engine: engine}
}

// ExtractSkillsWithDetails runs all five stages in sequence and returns
// the enriched records keyed by skill name. An oracle failure in any
// stage aborts the run; parse shortfalls never do.
func (a *Analyzer) ExtractSkillsWithDetails(ctx context.Context, resumeText string, workHistory []types.WorkHistoryEntry) (map[string]types.SkillDetail, error) {
	defer observability.ObserveStage("extract_skills_with_details", time.Now())

	rawSkills, err := a.extractRawSkills(ctx)
	if err != nil {
		return nil, err
	}

	categorized, err := a.categorizeSkills(ctx, rawSkills)
	if err != nil {
		return nil, err
	}

	withExperience := calculateExperienceDuration(categorized, workHistory)
	withProficiency := estimateProficiency(withExperience, resumeText)

	return a.findRelatedSkills(ctx, withProficiency)
}
