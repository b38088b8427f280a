package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_ShortTextIsOneChunk(t *testing.T) {
	chunks := Chunk("Experienced Go developer.", 1024, 20)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Experienced Go developer.", chunks[0])
}

func TestChunk_EmptyText(t *testing.T) {
	assert.Empty(t, Chunk("", 1024, 20))
	assert.Empty(t, Chunk("\n\n  \n\n", 1024, 20))
}

func TestChunk_SplitsWithOverlap(t *testing.T) {
	a := strings.Repeat("a", 20)
	b := strings.Repeat("b", 20)
	c := strings.Repeat("c", 20)
	text := a + "\n\n" + b + "\n\n" + c

	chunks := Chunk(text, 30, 5)

	require.Len(t, chunks, 3)
	assert.Equal(t, a, chunks[0])
	assert.Equal(t, "aaaaa "+b, chunks[1], "second chunk carries the tail of the first")
	assert.Equal(t, "bbbbb "+c, chunks[2])
}

func TestChunk_OversizedParagraphSplitsOnSentences(t *testing.T) {
	text := "First sentence about Go. Second sentence about Python. Third sentence about SQL."

	chunks := Chunk(text, 40, 0)

	require.GreaterOrEqual(t, len(chunks), 2)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 60, "chunks stay near the requested size")
	}
	joined := strings.Join(chunks, " ")
	assert.Contains(t, joined, "First sentence about Go")
	assert.Contains(t, joined, "Third sentence about SQL")
}

func TestChunk_DefaultsApplied(t *testing.T) {
	// Nonsense size and overlap fall back to usable values instead of panicking.
	chunks := Chunk("some text", -1, -1)
	require.Len(t, chunks, 1)

	chunks = Chunk("some text", 10, 50)
	require.NotEmpty(t, chunks)
}

func TestCleanText(t *testing.T) {
	input := "Line  one\r\nLine\ttwo\r\n\r\n\r\n\r\nLine three  "

	assert.Equal(t, "Line one\nLine two\n\nLine three", CleanText(input))
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
}

func TestExtractPDFText_MissingFile(t *testing.T) {
	_, err := ExtractPDFText("testdata/does-not-exist.pdf")
	assert.Error(t, err)
}
