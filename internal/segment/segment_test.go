package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorehaven/fablemap/internal/config"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic boundary",
			text: "The horn sounded. Everyone ran.",
			want: []string{"The horn sounded.", "Everyone ran."},
		},
		{
			name: "no split before lowercase",
			text: "It was Mr. smith who spoke.",
			want: []string{"It was Mr. smith who spoke."},
		},
		{
			name: "question and exclamation",
			text: "Who goes there? Halt! Stand down.",
			want: []string{"Who goes there?", "Halt!", "Stand down."},
		},
		{
			name: "trailing fragment kept",
			text: "He left. And then nothing",
			want: []string{"He left.", "And then nothing"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestSentenceGroupingBySize(t *testing.T) {
	s := New(config.SegmenterConfig{Strategy: StrategySentences, SentencesPerChunk: 2, MinChunkLen: 1})

	chunks := s.SegmentBook("book", "A. B. C. D.")
	require.Len(t, chunks, 2)
	assert.Equal(t, "A. B.", chunks[0].Text)
	assert.Equal(t, "C. D.", chunks[1].Text)
	assert.Equal(t, 0, chunks[0].ChunkID)
	assert.Equal(t, 1, chunks[1].ChunkID)
}

func TestSegmentBookReconstruction(t *testing.T) {
	raw := "The wind rose in the mountains. It was not a beginning. There are neither " +
		"beginnings nor endings to the turning of the wheel. But it was a beginning. " +
		"Rand walked on. Mat followed him. The village lay quiet. Smoke curled above it."

	s := New(config.SegmenterConfig{Strategy: StrategySentences, SentencesPerChunk: 3, MinChunkLen: 1})
	chunks := s.SegmentBook("book", raw)
	require.NotEmpty(t, chunks)

	// With no minimum length, joining the chunks back together gives the
	// whitespace-normalized text: nothing is lost or duplicated.
	var parts []string
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	assert.Equal(t, raw, strings.Join(parts, " "))
}

func TestSegmentBookMinLengthFilter(t *testing.T) {
	s := New(config.SegmenterConfig{Strategy: StrategySentences, SentencesPerChunk: 1, MinChunkLen: 10})

	chunks := s.SegmentBook("book", "Go. This sentence is long enough to keep. No.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "This sentence is long enough to keep.", chunks[0].Text)
	// Discarded fragments leave ID gaps; order is still document order.
	assert.Equal(t, 1, chunks[0].ChunkID)
}

func TestSegmentBookMinLengthPerStrategy(t *testing.T) {
	// 16 characters: above the window-mode floor, below the sentence-mode one.
	text := "Short line here."

	win := New(config.SegmenterConfig{Strategy: StrategyWindows})
	require.Len(t, win.SegmentBook("book", text), 1)

	sent := New(config.SegmenterConfig{Strategy: StrategySentences})
	assert.Empty(t, sent.SegmentBook("book", text))
}

func TestIsHardWrapped(t *testing.T) {
	// One newline per printed line, no paragraph breaks.
	hard := strings.Repeat("a line of prose\n", 200)
	assert.True(t, IsHardWrapped(hard))

	// Every line followed by a blank line: doubles dominate.
	soft := strings.Repeat("a paragraph of prose\n\n", 200)
	assert.False(t, IsHardWrapped(soft))

	// Too short to call either way.
	assert.False(t, IsHardWrapped("one\ntwo\nthree"))
}

func TestReflow(t *testing.T) {
	text := "first line\nsecond line\n\nnext paragraph\ncontinues here"
	assert.Equal(t, "first line second line\n\nnext paragraph continues here", Reflow(text))
}

func TestWindowsCoverAndOverlap(t *testing.T) {
	var b strings.Builder
	for b.Len() < 5000 {
		b.WriteString("Some prose goes here and keeps going. ")
	}
	text := strings.TrimSpace(b.String())

	s := New(config.SegmenterConfig{Strategy: StrategyWindows, WindowSize: 1000, WindowOverlap: 100, MinChunkLen: 1})
	parts := s.windows(text)
	require.Greater(t, len(parts), 1)

	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 1000)
	}
	// The last window reaches the end of the text.
	assert.True(t, strings.HasSuffix(text, parts[len(parts)-1]))
}

func TestWindowsSnapToPeriod(t *testing.T) {
	text := strings.Repeat("x", 700) + ". " + strings.Repeat("y", 600)
	s := New(config.SegmenterConfig{WindowSize: 1000, WindowOverlap: 0})

	parts := s.windows(text)
	require.Greater(t, len(parts), 1)
	// The period sits past the window midpoint, so the first window ends there.
	assert.Equal(t, strings.Repeat("x", 700)+".", parts[0])
}

func TestWindowsForwardProgressGuard(t *testing.T) {
	text := strings.Repeat("z", 500)
	// Overlap larger than the window would stall the cursor without the guard.
	s := New(config.SegmenterConfig{WindowSize: 100, WindowOverlap: 200})

	parts := s.windows(text)
	require.NotEmpty(t, parts)
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestWindowsKeepRunesIntact(t *testing.T) {
	// Every character is two bytes, so any byte-indexed boundary would land
	// mid-rune and mangle the window edges.
	text := strings.Repeat("é", 600)
	s := New(config.SegmenterConfig{Strategy: StrategyWindows, WindowSize: 250, WindowOverlap: 50})

	parts := s.windows(text)
	require.Greater(t, len(parts), 1)
	for i, p := range parts {
		assert.True(t, utf8.ValidString(p), "window %d has a split rune at its edge", i)
	}
	// Windows are sized in characters, not bytes.
	assert.Equal(t, 250, utf8.RuneCountInString(parts[0]))
}

func TestWindowsKeepRunesIntactWithSnapAndOverlap(t *testing.T) {
	text := strings.Repeat("King’s Landing fell. Daenerys’ army crossed the Château’s moat. ", 40)
	s := New(config.SegmenterConfig{Strategy: StrategyWindows, WindowSize: 300, WindowOverlap: 60})

	parts := s.windows(text)
	require.Greater(t, len(parts), 1)
	for i, p := range parts {
		assert.True(t, utf8.ValidString(p), "window %d has a split rune at its edge", i)
	}
}

func TestWindowsShortTextIsOneChunk(t *testing.T) {
	s := New(config.SegmenterConfig{WindowSize: 2000, WindowOverlap: 200})
	parts := s.windows("short text")
	assert.Equal(t, []string{"short text"}, parts)
}
