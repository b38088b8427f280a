package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllPipelinePromptsExist(t *testing.T) {
	keys := []string{
		"extract_work_history",
		"extract_resume_text",
		"extract_raw_skills",
		"categorize_skills",
		"find_related_skills",
		"extract_candidate",
		"job_skill_reasoning",
		"match_job_skills",
		"synthesize_answer",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			prompt, err := Get(key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("no_such_prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_RawSkillsPromptRequestsParseableLabels(t *testing.T) {
	prompt := MustGet("extract_raw_skills")

	// The raw-skills parser only recognizes these three literal prefixes, so
	// the prompt has to request them verbatim.
	assert.Contains(t, prompt, "Technical Skills:")
	assert.Contains(t, prompt, "Soft Skills:")
	assert.Contains(t, prompt, "Domain Knowledge:")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("no_such_prompt")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			template: "Skills to categorize: {{.Skills}}",
			data:     map[string]string{"Skills": "Go, Python"},
			expected: "Skills to categorize: Go, Python",
		},
		{
			name:     "repeated placeholder",
			template: "{{.Name}} and {{.Name}}",
			data:     map[string]string{"Name": "Go"},
			expected: "Go and Go",
		},
		{
			name:     "missing key leaves placeholder",
			template: "Hello {{.Name}}",
			data:     map[string]string{},
			expected: "Hello {{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}
