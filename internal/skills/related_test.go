package skills

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proficiencyGroups(categories map[string][]string, order ...string) []categoryGroup {
	groups := make([]categoryGroup, 0, len(order))
	for _, category := range order {
		records := make([]skillRecord, 0)
		for _, name := range categories[category] {
			records = append(records, skillRecord{SkillName: name, Proficiency: floatPtr(50)})
		}
		groups = append(groups, categoryGroup{Category: category, Skills: records})
	}
	return groups
}

func TestFindRelatedSkills_SingleChunk(t *testing.T) {
	groups := proficiencyGroups(map[string][]string{
		"Programming Languages": {"Python", "Go", "SQL"},
	}, "Programming Languages")

	reply := `Here are the results:
Python: Go, SQL
Go: Python
SQL: Python, Rust`

	engine := fixedReply(reply)
	analyzer := NewAnalyzer(engine)
	details, err := analyzer.findRelatedSkills(context.Background(), groups)

	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, []string{"Go", "SQL"}, details["Python"].RelatedSkills)
	assert.Equal(t, []string{"Python"}, details["Go"].RelatedSkills)
	// Rust is not an extracted skill, so it is filtered out
	assert.Equal(t, []string{"Python"}, details["SQL"].RelatedSkills)
	assert.Equal(t, 1, engine.calls)
}

func TestFindRelatedSkills_SelfReferenceExcluded(t *testing.T) {
	groups := proficiencyGroups(map[string][]string{
		"Programming Languages": {"Python", "Go"},
	}, "Programming Languages")

	analyzer := NewAnalyzer(fixedReply("Python: Python, Go"))
	details, err := analyzer.findRelatedSkills(context.Background(), groups)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, details["Python"].RelatedSkills)
}

func TestFindRelatedSkills_ChunksOfFive(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	groups := proficiencyGroups(map[string][]string{"Tools & Technologies": names}, "Tools & Technologies")

	var prompts []string
	engine := &mockEngine{
		QueryFunc: func(_ context.Context, prompt string) (string, error) {
			prompts = append(prompts, prompt)
			return "", nil
		},
	}

	analyzer := NewAnalyzer(engine)
	details, err := analyzer.findRelatedSkills(context.Background(), groups)

	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "Skills to analyze: A, B, C, D, E")
	assert.Contains(t, prompts[1], "Skills to analyze: F, G")
	// Every call carries the full universe of names
	assert.Contains(t, prompts[1], "from this list: A, B, C, D, E, F, G")
	assert.Len(t, details, 7)
}

func TestFindRelatedSkills_SkillOutsideChunkIgnored(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F"}
	groups := proficiencyGroups(map[string][]string{"Tools & Technologies": names}, "Tools & Technologies")

	engine := &mockEngine{
		QueryFunc: func(_ context.Context, prompt string) (string, error) {
			// The second chunk's reply names a skill from the first chunk
			if strings.Contains(prompt, "Skills to analyze: F") {
				return "A: B\nF: A", nil
			}
			return "", nil
		},
	}

	analyzer := NewAnalyzer(engine)
	details, err := analyzer.findRelatedSkills(context.Background(), groups)

	require.NoError(t, err)
	assert.Nil(t, details["A"].RelatedSkills)
	assert.Equal(t, []string{"A"}, details["F"].RelatedSkills)
}

func TestFindRelatedSkills_LastCategoryWinsForDuplicates(t *testing.T) {
	groups := []categoryGroup{
		{Category: "Tools & Technologies", Skills: []skillRecord{{SkillName: "Docker", Proficiency: floatPtr(40)}}},
		{Category: "Domain Knowledge", Skills: []skillRecord{{SkillName: "Docker", Proficiency: floatPtr(70)}}},
	}

	analyzer := NewAnalyzer(fixedReply(""))
	details, err := analyzer.findRelatedSkills(context.Background(), groups)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Domain Knowledge", details["Docker"].Category)
	assert.InDelta(t, 70.0, *details["Docker"].Proficiency, 1e-9)
}

func TestFindRelatedSkills_NoSkillsMakesNoCalls(t *testing.T) {
	engine := fixedReply("")
	analyzer := NewAnalyzer(engine)

	details, err := analyzer.findRelatedSkills(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, details)
	assert.Zero(t, engine.calls)
}

func TestFindRelatedSkills_QueryError(t *testing.T) {
	groups := proficiencyGroups(map[string][]string{
		"Programming Languages": {"Python"},
	}, "Programming Languages")

	analyzer := NewAnalyzer(failingEngine("oracle down"))
	_, err := analyzer.findRelatedSkills(context.Background(), groups)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "find_related_skills", stageErr.Stage)
}
