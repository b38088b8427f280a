package ingestion

import (
	"strings"
	"unicode/utf8"
)

// Chunking defaults match the sentence-window settings the retrieval engine
// was tuned against.
const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 20
)

// Chunk splits text into pieces of at most size characters for embedding.
// Paragraphs are kept together when they fit; oversized paragraphs are split
// at sentence boundaries. Each chunk after the first starts with the last
// overlap characters of its predecessor so that retrieval does not lose
// context at the seams.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		if overlap > 0 {
			current.WriteString(lastRunes(chunks[len(chunks)-1], overlap))
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		pieces := []string{para}
		if utf8.RuneCountInString(para) > size {
			pieces = splitSentences(para)
		}

		for _, piece := range pieces {
			if current.Len() > 0 && current.Len()+len(piece)+1 > size {
				flush()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(piece)
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// splitSentences breaks text on terminal punctuation. It is deliberately
// simple; resumes rarely contain prose where abbreviation handling matters.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
