package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorehaven/fablemap/internal/corpus"
)

func TestPrepareExamplesAlignsSpans(t *testing.T) {
	gold := []corpus.GoldExample{
		{
			Text: "Dalinar's army crossed the Shattered Plains.",
			Entities: []corpus.GoldEntity{
				{Text: "Dalinar's", Label: corpus.LabelCharacter},
				{Text: "Shattered Plains", Label: corpus.LabelLocation},
			},
		},
	}

	examples := PrepareExamples(gold)
	require.Len(t, examples, 1)
	ex := examples[0]
	require.Len(t, ex.Spans, 2)

	// Possessive is stripped before alignment, so the span covers the base name.
	assert.Equal(t, "Dalinar", ex.Spans[0].Text)
	assert.Equal(t, "Dalinar", ex.Text[ex.Spans[0].Start:ex.Spans[0].End])
	assert.Equal(t, "Shattered Plains", ex.Text[ex.Spans[1].Start:ex.Spans[1].End])
}

func TestPrepareExamplesDeduplicates(t *testing.T) {
	gold := []corpus.GoldExample{
		{
			Text: "Rand raised the horn.",
			Entities: []corpus.GoldEntity{
				{Text: "Rand", Label: corpus.LabelCharacter},
				{Text: "Rand's", Label: corpus.LabelCharacter},
				{Text: "\"Rand\"", Label: corpus.LabelCharacter},
			},
		},
	}

	examples := PrepareExamples(gold)
	require.Len(t, examples, 1)
	// All three clean to the same located span.
	assert.Len(t, examples[0].Spans, 1)
}

func TestPrepareExamplesDropsOverlaps(t *testing.T) {
	gold := []corpus.GoldExample{
		{
			Text: "King's Landing burned.",
			Entities: []corpus.GoldEntity{
				{Text: "King's Landing", Label: corpus.LabelLocation},
				{Text: "Landing", Label: corpus.LabelLocation},
			},
		},
	}

	examples := PrepareExamples(gold)
	require.Len(t, examples, 1)
	require.Len(t, examples[0].Spans, 1)
	// The earlier span wins.
	assert.Equal(t, "King's Landing", examples[0].Spans[0].Text)
}

func TestPrepareExamplesKeepsUnlocatable(t *testing.T) {
	gold := []corpus.GoldExample{
		{
			Text:     "Nothing matches here.",
			Entities: []corpus.GoldEntity{{Text: "Elsewhere", Label: corpus.LabelLocation}},
		},
	}

	examples := PrepareExamples(gold)
	require.Len(t, examples, 1)
	assert.Empty(t, examples[0].Spans)
	assert.Equal(t, "Nothing matches here.", examples[0].Text)
}
