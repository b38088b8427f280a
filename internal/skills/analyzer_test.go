package skills

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luillyfe/resume-insights/internal/types"
)

// mockEngine implements queryengine.Engine for testing
type mockEngine struct {
	QueryFunc func(ctx context.Context, prompt string) (string, error)
	calls     int
}

func (m *mockEngine) Query(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.QueryFunc(ctx, prompt)
}

func fixedReply(reply string) *mockEngine {
	return &mockEngine{
		QueryFunc: func(_ context.Context, _ string) (string, error) {
			return reply, nil
		},
	}
}

func failingEngine(message string) *mockEngine {
	return &mockEngine{
		QueryFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New(message)
		},
	}
}

func TestExtractSkillsWithDetails(t *testing.T) {
	engine := &mockEngine{
		QueryFunc: func(_ context.Context, prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "List skills in EXACTLY"):
				return "Technical Skills: Python\nSoft Skills: Communication", nil
			case strings.Contains(prompt, "Categorize these skills"):
				return "Programming Languages: Python\nSoft Skills: Communication", nil
			case strings.Contains(prompt, "closely related skills"):
				return "Python: Communication\nCommunication: Python", nil
			default:
				return "", fmt.Errorf("unexpected prompt: %s", prompt)
			}
		},
	}

	workHistory := []types.WorkHistoryEntry{
		{Title: "Data Engineer", Company: "Acme", StartDate: "01/2020", EndDate: "01/2022", Description: "Built Python pipelines"},
		{Title: "Senior Engineer", Company: "Acme", StartDate: "01/2022", EndDate: "01/2023", Description: "Led Python platform work"},
	}
	resumeText := "Expert in Python development since 2020."

	analyzer := NewAnalyzer(engine)
	details, err := analyzer.ExtractSkillsWithDetails(context.Background(), resumeText, workHistory)

	require.NoError(t, err)
	require.Len(t, details, 2)

	python := details["Python"]
	assert.Equal(t, "Programming Languages", python.Category)
	require.NotNil(t, python.YearsExperience)
	assert.InDelta(t, 3.0, *python.YearsExperience, 1e-9)
	require.Len(t, python.Mentions, 2)
	assert.Equal(t, "Data Engineer at Acme (01/2020 to 01/2022)", python.Mentions[0])
	// base 66.67 for 3 years + 2 mention bonus + 10 for the expert cue
	require.NotNil(t, python.Proficiency)
	assert.InDelta(t, 78.7, *python.Proficiency, 1e-9)
	assert.Equal(t, []string{"Communication"}, python.RelatedSkills)

	communication := details["Communication"]
	assert.Equal(t, "Soft Skills", communication.Category)
	assert.Nil(t, communication.YearsExperience)
	assert.Nil(t, communication.Mentions)
	require.NotNil(t, communication.Proficiency)
	assert.Zero(t, *communication.Proficiency)
	assert.Equal(t, []string{"Python"}, communication.RelatedSkills)

	// raw extraction + categorization + one related-skills chunk
	assert.Equal(t, 3, engine.calls)
}

func TestExtractSkillsWithDetails_OracleFailureAborts(t *testing.T) {
	analyzer := NewAnalyzer(failingEngine("oracle down"))

	_, err := analyzer.ExtractSkillsWithDetails(context.Background(), "", nil)

	require.Error(t, err)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "extract_raw_skills", stageErr.Stage)
	assert.ErrorContains(t, err, "oracle down")
}
