package extract

import (
	"context"
	"regexp"
	"sort"

	"github.com/lorehaven/fablemap/internal/corpus"
)

// Span is one detected entity occurrence inside a text.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Model is the trained sequence-labeling capability. The pipeline only
// depends on this contract; the actual model (spaCy-style NER, an LLM, a
// lexicon) lives behind it.
type Model interface {
	Predict(ctx context.Context, text string) ([]Span, error)
}

// Trainer produces a Model from gold examples. Training is opaque to the
// pipeline and no in-process implementation ships here: the traindata
// command writes training_examples.json as the hand-off point, and an
// external NLP stack consumes that file to train the model it serves back
// through Predict.
type Trainer interface {
	Train(ctx context.Context, examples []TrainingExample) (Model, error)
}

// LexiconModel matches a fixed name→label dictionary with whole-word,
// case-insensitive search. It is the fallback extractor and the engine
// behind the targeted label fixer.
type LexiconModel struct {
	entries []lexiconEntry
}

type lexiconEntry struct {
	name  string
	label string
	re    *regexp.Regexp
}

// NewLexiconModel compiles a name→label map. Names that fail to compile as
// a word-bounded pattern are skipped.
func NewLexiconModel(lexicon map[string]string) *LexiconModel {
	names := make([]string, 0, len(lexicon))
	for name := range lexicon {
		names = append(names, name)
	}
	sort.Strings(names)

	m := &LexiconModel{}
	for _, name := range names {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			continue
		}
		m.entries = append(m.entries, lexiconEntry{name: name, label: lexicon[name], re: re})
	}
	return m
}

// Predict returns one span per dictionary hit, using the proper-case name
// from the lexicon rather than the matched surface form.
func (m *LexiconModel) Predict(_ context.Context, text string) ([]Span, error) {
	var spans []Span
	for _, e := range m.entries {
		for _, loc := range e.re.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: loc[0], End: loc[1], Text: e.name, Label: e.label})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}

// CharacterLexicon builds a lexicon labeling every name as CHARACTER, the
// shape the per-book target lists use.
func CharacterLexicon(names []string) map[string]string {
	lex := make(map[string]string, len(names))
	for _, n := range names {
		lex[n] = corpus.LabelCharacter
	}
	return lex
}
