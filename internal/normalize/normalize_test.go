package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorehaven/fablemap/internal/config"
	"github.com/lorehaven/fablemap/internal/corpus"
)

func testNormalizer() *Normalizer {
	return New(config.Default().Normalizer)
}

func TestClean(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		raw  string
		want string
		keep bool
	}{
		{"plain name", "Winterfell", "Winterfell", true},
		{"edge punctuation", `  "Kaladin,"  `, "Kaladin", true},
		{"possessive", "Illyrio's", "Illyrio", true},
		{"curly possessive", "Illyrio’s", "Illyrio", true},
		{"article then possessive", "The King's Landing's", "King's Landing", true},
		{"short article remainder kept", "The Wall", "The Wall", true},
		{"dialogue artifact before possessive", "Rand?!'s", "Rand", true},
		{"too short", "Jo", "", false},
		{"noise word", "wolf", "", false},
		{"noise after article kept short", "The King", "", false},
		{"empty", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Clean(tt.raw)
			assert.Equal(t, tt.keep, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	n := testNormalizer()

	for _, raw := range []string{
		"The King's Landing's", "Rand?!'s", `"Moiraine Sedai"`, "  Dalinar's  ", "The Wall",
	} {
		once, ok := n.Clean(raw)
		require.True(t, ok, raw)
		twice, ok := n.Clean(once)
		require.True(t, ok, raw)
		assert.Equal(t, once, twice, raw)
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name  string
		label string
		keep  bool
	}{
		{"House Lannister", corpus.LabelFaction, true},
		{"Night's Watch", corpus.LabelFaction, true},
		{"Winterfell", corpus.LabelLocation, true},
		{"The Wall", corpus.LabelLocation, true},
		{"Dragonport", corpus.LabelLocation, true},
		{"Lord Denethor", corpus.LabelCharacter, true},
		{"Kaladin", corpus.LabelCharacter, true},
		{"Szeth", corpus.LabelCharacter, true},
		{"whisper", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := n.Classify(tt.name)
			assert.Equal(t, tt.keep, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestClassifyFactionBeatsLocation(t *testing.T) {
	n := testNormalizer()

	// Contains both a faction keyword and a geographic suffix; the faction
	// rule sits first in the chain.
	label, ok := n.Classify("House of the Undying Tower")
	require.True(t, ok)
	assert.Equal(t, corpus.LabelFaction, label)
}

func TestReconcile(t *testing.T) {
	n := testNormalizer()

	// Rules beat the model label.
	label, ok := n.Reconcile("Winterfell", corpus.LabelCharacter)
	require.True(t, ok)
	assert.Equal(t, corpus.LabelLocation, label)

	// A valid model label stands when no rule matches.
	label, ok = n.Reconcile("Oathbringer", corpus.LabelArtifact)
	require.True(t, ok)
	assert.Equal(t, corpus.LabelArtifact, label)

	// Unknown model label falls through to the default.
	label, ok = n.Reconcile("Szeth", "GIBBERISH")
	require.True(t, ok)
	assert.Equal(t, corpus.LabelCharacter, label)

	// Lowercase names with no rule and no usable label are noise.
	_, ok = n.Reconcile("whisper", "GIBBERISH")
	assert.False(t, ok)
}

func TestAlias(t *testing.T) {
	n := testNormalizer()
	assert.Equal(t, "Gandalf", n.Alias("Mithrandir"))
	assert.Equal(t, "Kaladin", n.Alias("Kal"))
	assert.Equal(t, "Szeth", n.Alias("Szeth"))
}

func TestScrubEntityList(t *testing.T) {
	n := testNormalizer()

	got := n.ScrubEntityList([]string{
		"Kaladin's",    // possessive stripped
		"  Dalinar,  ", // edge punctuation stripped
		"whisper",      // lowercase, dropped
		"The Room",     // generic "The Noun", dropped
		"Kaladin",      // duplicate after cleaning, dropped
		"wolf",         // noise, dropped
		"Adolin",
	})
	assert.Equal(t, []string{"Kaladin", "Dalinar", "Adolin"}, got)
}
