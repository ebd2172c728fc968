package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorehaven/fablemap/internal/corpus"
)

func TestLexiconModelPredict(t *testing.T) {
	m := NewLexiconModel(map[string]string{
		"Perrin": corpus.LabelCharacter,
		"Caemlyn": corpus.LabelLocation,
	})

	spans, err := m.Predict(context.Background(), "PERRIN rode toward Caemlyn. Perrin was tired.")
	require.NoError(t, err)
	require.Len(t, spans, 3)

	// Spans come back in text order, carrying the lexicon's proper-case name
	// regardless of the matched surface form.
	assert.Equal(t, Span{Start: 0, End: 6, Text: "Perrin", Label: corpus.LabelCharacter}, spans[0])
	assert.Equal(t, "Caemlyn", spans[1].Text)
	assert.Equal(t, corpus.LabelLocation, spans[1].Label)
	assert.Equal(t, "Perrin", spans[2].Text)
}

func TestLexiconModelWholeWordOnly(t *testing.T) {
	m := NewLexiconModel(map[string]string{"Rand": corpus.LabelCharacter})

	spans, err := m.Predict(context.Background(), "Randall strands the errand.")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestLexiconModelNoMatches(t *testing.T) {
	m := NewLexiconModel(map[string]string{"Moiraine": corpus.LabelCharacter})

	spans, err := m.Predict(context.Background(), "Nothing of note here.")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestCharacterLexicon(t *testing.T) {
	lex := CharacterLexicon([]string{"Teft", "Rock"})
	assert.Equal(t, map[string]string{
		"Teft": corpus.LabelCharacter,
		"Rock": corpus.LabelCharacter,
	}, lex)
}
