package jobmatch

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/luillyfe/resume-insights/internal/llm"
	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/prompts"
	"github.com/luillyfe/resume-insights/internal/queryengine"
	"github.com/luillyfe/resume-insights/internal/schemas"
	"github.com/luillyfe/resume-insights/internal/types"
)

// Matcher asks the model to assess skill relevance for a job posting.
type Matcher struct {
	engine queryengine.Engine
}

// NewMatcher creates a Matcher backed by the given engine.
func NewMatcher(engine queryengine.Engine) *Matcher {
	return &Matcher{engine: engine}
}

// MatchJobToSkills rates every skill against the position in a single
// oracle call and parses the reply against the JobSkill schema. A reply
// that does not conform fails outright; there is no fallback parse.
func (m *Matcher) MatchJobToSkills(ctx context.Context, skillNames []string, jobPosition, company string) (*types.JobSkill, error) {
	return m.match(ctx, skillNames, jobPosition, company, "")
}

// MatchJobToSkillsWithPosting behaves like MatchJobToSkills but folds the
// fetched posting text into the prompt so the assessment can cite concrete
// requirements instead of guessing from the title alone.
func (m *Matcher) MatchJobToSkillsWithPosting(ctx context.Context, skillNames []string, jobPosition, company, postingText string) (*types.JobSkill, error) {
	return m.match(ctx, skillNames, jobPosition, company, postingText)
}

func (m *Matcher) match(ctx context.Context, skillNames []string, jobPosition, company, postingText string) (*types.JobSkill, error) {
	defer observability.ObserveStage("match_job_to_skills", time.Now())

	reasoningPrompts := make([]string, 0, len(skillNames))
	for _, skill := range skillNames {
		reasoningPrompts = append(reasoningPrompts, prompts.Format(prompts.MustGet("job_skill_reasoning"), map[string]string{
			"Skill":       skill,
			"JobPosition": jobPosition,
			"Company":     company,
		}))
	}

	prompt := prompts.Format(prompts.MustGet("match_job_skills"), map[string]string{
		"SkillPrompts": strings.Join(reasoningPrompts, ", "),
		"Schema":       schemas.JobSkill(),
	})
	if postingText != "" {
		prompt = prompts.Format(prompts.MustGet("job_posting_context"), map[string]string{
			"JobPosition": jobPosition,
			"Company":     company,
			"Posting":     postingText,
		}) + "\n" + prompt
	}

	response, err := m.engine.Query(ctx, prompt)
	if err != nil {
		return nil, &MatchError{Message: "querying job relevance", Cause: err}
	}

	cleaned := llm.CleanResponse(response)
	if err := schemas.ValidateJSONString(schemas.JobSkill(), cleaned); err != nil {
		return nil, &MatchError{Message: "validating job relevance reply", Cause: err}
	}

	var jobSkill types.JobSkill
	if err := json.Unmarshal([]byte(cleaned), &jobSkill); err != nil {
		return nil, &MatchError{Message: "parsing job relevance reply", Cause: err}
	}
	return &jobSkill, nil
}
