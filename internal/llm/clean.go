package llm

import (
	"regexp"
	"strings"
)

// fencedBlock matches a markdown code fence with an optional language tag and
// captures the body with surrounding whitespace trimmed.
var fencedBlock = regexp.MustCompile("```(?:[a-zA-Z0-9_+-]+)?\\s*([\\s\\S]*?)\\s*```")

// CleanResponse strips markdown code fences from a model reply. When the reply
// contains one or more fenced blocks, their bodies are joined with a blank
// line and everything outside the fences is discarded. Replies without fences
// pass through unchanged, so this is safe to apply to any response.
func CleanResponse(response string) string {
	matches := fencedBlock.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return response
	}

	bodies := make([]string, 0, len(matches))
	for _, m := range matches {
		bodies = append(bodies, m[1])
	}
	return strings.Join(bodies, "\n\n")
}
