package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lorehaven/fablemap/internal/corpus"
)

// TrainingExample is one text with its resolved, non-overlapping gold spans,
// ready to hand to a Trainer.
type TrainingExample struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans"`
}

var (
	spanPossessive = regexp.MustCompile(`['’]s$`)
	spanEdgePunct  = regexp.MustCompile(`^\W+|\W+$`)
)

// cleanSpanText strips possessives and edge punctuation so the model learns
// the base name rather than its inflections.
func cleanSpanText(text string) string {
	text = spanPossessive.ReplaceAllString(text, "")
	text = spanEdgePunct.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// PrepareExamples aligns gold annotations back onto their source texts:
// each entity string is cleaned, located in the text, deduplicated, and
// overlapping spans are dropped keeping the earliest. Examples whose
// entities cannot be located at all still come through, with no spans, so
// the trainer sees negative material too.
func PrepareExamples(gold []corpus.GoldExample) []TrainingExample {
	examples := make([]TrainingExample, 0, len(gold))

	for _, entry := range gold {
		ex := TrainingExample{Text: entry.Text}
		seen := make(map[[2]int]struct{})

		for _, ent := range entry.Entities {
			name := cleanSpanText(ent.Text)
			if name == "" {
				continue
			}
			start := strings.Index(entry.Text, name)
			if start == -1 {
				continue
			}
			end := start + len(name)
			key := [2]int{start, end}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ex.Spans = append(ex.Spans, Span{Start: start, End: end, Text: name, Label: ent.Label})
		}

		sort.Slice(ex.Spans, func(i, j int) bool {
			if ex.Spans[i].Start != ex.Spans[j].Start {
				return ex.Spans[i].Start < ex.Spans[j].Start
			}
			return ex.Spans[i].End < ex.Spans[j].End
		})

		ex.Spans = dropOverlaps(ex.Spans)
		examples = append(examples, ex)
	}

	return examples
}

// dropOverlaps keeps the earliest span of each overlapping run. Input must
// be sorted by start.
func dropOverlaps(spans []Span) []Span {
	var kept []Span
	lastEnd := -1
	for _, s := range spans {
		if s.Start < lastEnd {
			continue
		}
		kept = append(kept, s)
		lastEnd = s.End
	}
	return kept
}
