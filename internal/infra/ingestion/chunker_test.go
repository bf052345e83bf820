package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph.\n\n\n\nThird paragraph."
	chunks := ChunkText(text, 500, 50)
	require.Len(t, chunks, 3)
	assert.Equal(t, "First paragraph.", chunks[0])
	assert.Equal(t, "Third paragraph.", chunks[2])
}

func TestChunkTextDropsBlankParagraphs(t *testing.T) {
	chunks := ChunkText("\n\n   \n\nonly one\n\n", 500, 0)
	require.Len(t, chunks, 1)
	assert.Equal(t, "only one", chunks[0])
}

func TestChunkTextResplitsLongParagraphs(t *testing.T) {
	long := strings.Repeat("a", 120)
	chunks := ChunkText(long, 50, 10)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 50)
	}

	// adjacent chunks share the overlap window
	assert.Equal(t, chunks[0][40:], chunks[1][:10])
}

func TestChunkTextClampsBadParameters(t *testing.T) {
	// zero size falls back to the default, overlap >= size is ignored
	chunks := ChunkText("short text", 0, 9999)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}
