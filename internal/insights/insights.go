package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/luillyfe/resume-insights/internal/config"
	"github.com/luillyfe/resume-insights/internal/jobmatch"
	"github.com/luillyfe/resume-insights/internal/llm"
	"github.com/luillyfe/resume-insights/internal/prompts"
	"github.com/luillyfe/resume-insights/internal/queryengine"
	"github.com/luillyfe/resume-insights/internal/schemas"
	"github.com/luillyfe/resume-insights/internal/skills"
	"github.com/luillyfe/resume-insights/internal/types"
	"github.com/luillyfe/resume-insights/internal/vectorstore"
	"github.com/luillyfe/resume-insights/internal/workhistory"
)

// ResumeInsights ties the analyzers together over one indexed resume.
type ResumeInsights struct {
	engine   queryengine.Engine
	history  *workhistory.Extractor
	analyzer *skills.Analyzer
	matcher  *jobmatch.Matcher
	logger   *zap.Logger

	// owned is set when this instance built its own engine and must
	// release it on Close.
	owned *queryengine.RetrievalEngine
}

// New creates a ResumeInsights over an engine the caller owns.
func New(engine queryengine.Engine, logger *zap.Logger) *ResumeInsights {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeInsights{
		engine:   engine,
		history:  workhistory.NewExtractor(engine),
		analyzer: skills.NewAnalyzer(engine),
		matcher:  jobmatch.NewMatcher(engine),
		logger:   logger,
	}
}

// NewFromFile indexes the resume at filePath and returns a
// ResumeInsights over it. The instance owns the underlying model client
// and vector store; release them with Close.
func NewFromFile(ctx context.Context, cfg *config.Config, filePath string, logger *zap.Logger) (*ResumeInsights, error) {
	client, err := llm.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GenerativeModel, cfg.EmbeddingModel)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to create query engine", Cause: err}
	}

	store, err := openStore(cfg)
	if err != nil {
		_ = client.Close()
		return nil, &ExtractionError{Message: "failed to create query engine", Cause: err}
	}

	engine, err := queryengine.BuildFromFile(ctx, client, store, filePath, queryengine.BuildOptions{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		TopK:         cfg.SimilarityTopK,
	})
	if err != nil {
		_ = store.Close()
		_ = client.Close()
		return nil, &ExtractionError{Message: "failed to create query engine", Cause: err}
	}

	instance := New(engine, logger)
	instance.owned = engine
	return instance, nil
}

// openStore selects the vector store backend: Qdrant when configured,
// otherwise an in-process index scoped to this instance.
func openStore(cfg *config.Config) (vectorstore.Store, error) {
	if cfg.QdrantURL == "" {
		return vectorstore.NewMemoryStore(), nil
	}
	collection := fmt.Sprintf("resume_%s", uuid.NewString())
	return vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey, collection)
}

// Close releases the engine when this instance owns it.
func (r *ResumeInsights) Close() error {
	if r.owned == nil {
		return nil
	}
	return r.owned.Close()
}

// ExtractCandidateData runs the full pipeline: work history, raw resume
// text, skill enrichment, then one schema-driven query for the
// remaining candidate fields. The enriched skills always replace
// whatever the schema-driven query guessed for the skills field.
func (r *ResumeInsights) ExtractCandidateData(ctx context.Context) (*types.Candidate, error) {
	r.logger.Info("extracting candidate data")

	workHistory, err := r.history.ExtractWorkHistory(ctx)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to extract candidate data", Cause: err}
	}
	r.logger.Debug("work history extracted", zap.Int("entries", len(workHistory)))

	resumeText, err := r.history.ExtractResumeText(ctx)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to extract candidate data", Cause: err}
	}

	skillDetails, err := r.analyzer.ExtractSkillsWithDetails(ctx, resumeText, workHistory)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to extract candidate data", Cause: err}
	}
	r.logger.Debug("skills enriched", zap.Int("skills", len(skillDetails)))

	candidate, err := r.parseCandidateData(ctx)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to extract candidate data", Cause: err}
	}

	candidate.Skills = skillDetails
	return candidate, nil
}

// MatchJobToSkills rates the given skills against a job position.
func (r *ResumeInsights) MatchJobToSkills(ctx context.Context, skillNames []string, jobPosition, company string) (*types.JobSkill, error) {
	jobSkill, err := r.matcher.MatchJobToSkills(ctx, skillNames, jobPosition, company)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to match job to skills", Cause: err}
	}
	return jobSkill, nil
}

// MatchJobToSkillsWithPosting rates the given skills against a job position
// using the fetched posting text as additional prompt context.
func (r *ResumeInsights) MatchJobToSkillsWithPosting(ctx context.Context, skillNames []string, jobPosition, company, postingText string) (*types.JobSkill, error) {
	jobSkill, err := r.matcher.MatchJobToSkillsWithPosting(ctx, skillNames, jobPosition, company, postingText)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to match job to skills", Cause: err}
	}
	return jobSkill, nil
}

// parseCandidateData issues the schema-driven query for the candidate's
// basic fields and validates the reply against the Candidate schema.
func (r *ResumeInsights) parseCandidateData(ctx context.Context) (*types.Candidate, error) {
	prompt := prompts.Format(prompts.MustGet("extract_candidate"), map[string]string{
		"Schema": schemas.Candidate(),
	})

	response, err := r.engine.Query(ctx, prompt)
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse candidate data", Cause: err}
	}

	cleaned := llm.CleanResponse(response)
	if err := schemas.ValidateJSONString(schemas.Candidate(), cleaned); err != nil {
		return nil, &ExtractionError{Message: "failed to parse candidate data", Cause: err}
	}

	var candidate types.Candidate
	if err := json.Unmarshal([]byte(cleaned), &candidate); err != nil {
		return nil, &ExtractionError{Message: "failed to parse candidate data", Cause: err}
	}
	return &candidate, nil
}
