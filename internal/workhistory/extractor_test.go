package workhistory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEngine implements queryengine.Engine for testing
type mockEngine struct {
	QueryFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockEngine) Query(ctx context.Context, prompt string) (string, error) {
	return m.QueryFunc(ctx, prompt)
}

func fixedReply(reply string) *mockEngine {
	return &mockEngine{
		QueryFunc: func(_ context.Context, _ string) (string, error) {
			return reply, nil
		},
	}
}

func TestExtractWorkHistory_JSONList(t *testing.T) {
	reply := `[
		{"title": "Software Engineer", "company": "Acme Corp", "start_date": "01/2020", "end_date": "present", "description": "Built data pipelines."},
		{"title": "Intern", "company": "Globex", "start_date": "06/2019", "end_date": "12/2019"}
	]`

	extractor := NewExtractor(fixedReply(reply))
	history, err := extractor.ExtractWorkHistory(context.Background())

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Software Engineer", history[0].Title)
	assert.Equal(t, "Acme Corp", history[0].Company)
	assert.Equal(t, "present", history[0].EndDate)
	assert.Equal(t, "Intern", history[1].Title)
	assert.Empty(t, history[1].Description)
}

func TestExtractWorkHistory_LineFallback(t *testing.T) {
	reply := `Here is the work history:

Company: Acme Corp
Title: Software Engineer
Start Date: 01/2020
End Date: present
Built data pipelines.
Maintained CI systems.

Job Title: Intern
Company: Globex
From: 06/2019
To: 12/2019
Assisted the platform team.`

	extractor := NewExtractor(fixedReply(reply))
	history, err := extractor.ExtractWorkHistory(context.Background())

	require.NoError(t, err)
	require.Len(t, history, 2)

	first := history[0]
	assert.Equal(t, "Software Engineer", first.Title)
	// Company announced before the first title still lands on that entry
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "01/2020", first.StartDate)
	assert.Equal(t, "present", first.EndDate)
	assert.Equal(t, "Built data pipelines. Maintained CI systems.", first.Description)

	second := history[1]
	assert.Equal(t, "Intern", second.Title)
	assert.Equal(t, "Globex", second.Company)
	assert.Equal(t, "06/2019", second.StartDate)
	assert.Equal(t, "12/2019", second.EndDate)
	assert.Equal(t, "Assisted the platform team.", second.Description)
}

func TestExtractWorkHistory_NonListJSONFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "json null", reply: "null"},
		{name: "json object", reply: `{"title": "Engineer"}`},
		{name: "json string", reply: `"no work history found"`},
		{name: "fenced json", reply: "```json\n[{\"title\": \"Engineer\"}]\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(fixedReply(tt.reply))
			history, err := extractor.ExtractWorkHistory(context.Background())

			require.NoError(t, err)
			assert.Empty(t, history)
			assert.NotNil(t, history)
		})
	}
}

func TestExtractWorkHistory_EmptyTitleStillFlushes(t *testing.T) {
	reply := `Title:
Company: Initech
Title: Analyst`

	extractor := NewExtractor(fixedReply(reply))
	history, err := extractor.ExtractWorkHistory(context.Background())

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "", history[0].Title)
	assert.Equal(t, "Initech", history[0].Company)
	assert.Equal(t, "Analyst", history[1].Title)
}

func TestExtractWorkHistory_ProseWithoutLabels(t *testing.T) {
	extractor := NewExtractor(fixedReply("The candidate has worked in several roles over the years."))
	history, err := extractor.ExtractWorkHistory(context.Background())

	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestExtractWorkHistory_QueryError(t *testing.T) {
	engine := &mockEngine{
		QueryFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("index unavailable")
		},
	}

	extractor := NewExtractor(engine)
	_, err := extractor.ExtractWorkHistory(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "index unavailable")
}

func TestExtractResumeText(t *testing.T) {
	var prompt string
	engine := &mockEngine{
		QueryFunc: func(_ context.Context, p string) (string, error) {
			prompt = p
			return "  Jane Doe\nSoftware Engineer  ", nil
		},
	}

	extractor := NewExtractor(engine)
	text, err := extractor.ExtractResumeText(context.Background())

	require.NoError(t, err)
	// Returned verbatim, no trimming or cleanup
	assert.Equal(t, "  Jane Doe\nSoftware Engineer  ", text)
	assert.Contains(t, prompt, "full text of the resume")
}

func TestParseWorkHistoryLines_DescriptionBeforeTitleIsDropped(t *testing.T) {
	history := parseWorkHistoryLines("Stray description line\nTitle: Engineer\nReal description")

	require.Len(t, history, 1)
	assert.Equal(t, "Real description", history[0].Description)
}
