package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateSchema_IsValidJSON(t *testing.T) {
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(Candidate()), &v))
}

func TestJobSkillSchema_IsValidJSON(t *testing.T) {
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(JobSkill()), &v))
}

func TestValidateJSONString_CandidateConformant(t *testing.T) {
	doc := `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"age": 36,
		"skills": {
			"Mathematics": {"skill_name": "Mathematics", "category": "Domain Knowledge"}
		}
	}`

	assert.NoError(t, ValidateJSONString(Candidate(), doc))
}

func TestValidateJSONString_CandidateAllFieldsNull(t *testing.T) {
	// Every top-level field is optional; an empty profile still conforms.
	assert.NoError(t, ValidateJSONString(Candidate(), `{}`))
}

func TestValidateJSONString_CandidateWrongTypes(t *testing.T) {
	doc := `{"name": "Ada", "age": "thirty-six"}`

	err := ValidateJSONString(Candidate(), doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSONString_SkillDetailNeedsName(t *testing.T) {
	doc := `{"skills": {"Go": {"category": "Programming Languages"}}}`

	err := ValidateJSONString(Candidate(), doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSONString_JobSkillConformant(t *testing.T) {
	doc := `{
		"jobName": "Data Engineer",
		"skills": {
			"Python": {"relevance": "high", "reasoning": "core language for pipelines", "proficiency": 8}
		}
	}`

	assert.NoError(t, ValidateJSONString(JobSkill(), doc))
}

func TestValidateJSONString_JobSkillWrongShape(t *testing.T) {
	doc := `{"jobName": "Data Engineer", "skills": {"Python": {"proficiency": "expert"}}}`

	err := ValidateJSONString(JobSkill(), doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSONString_NotJSONAtAll(t *testing.T) {
	err := ValidateJSONString(JobSkill(), "I could not find any skills, sorry!")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
