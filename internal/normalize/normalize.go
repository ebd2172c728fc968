// Package normalize turns raw extracted spans into canonical entity names
// and reconciles heuristic type rules with model output. The rules are
// deliberately a priority table, not a classifier: false positives are
// expected and the whitelists exist to be hand-tuned.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lorehaven/fablemap/internal/config"
	"github.com/lorehaven/fablemap/internal/corpus"
)

var (
	edgePunct  = regexp.MustCompile(`^\W+|\W+$`)
	possessive = regexp.MustCompile(`['’]s$`)
)

// Rule is one entry of the classification chain, evaluated first-match-wins.
type Rule struct {
	Name  string
	Match func(name string) bool
	Label string
}

type Normalizer struct {
	cfg        config.NormalizerConfig
	noise      map[string]struct{}
	knownLocs  map[string]struct{}
	knownChars map[string]struct{}
	rules      []Rule
}

func New(cfg config.NormalizerConfig) *Normalizer {
	n := &Normalizer{
		cfg:        cfg,
		noise:      lowerSet(cfg.NoiseWords),
		knownLocs:  exactSet(cfg.KnownLocs),
		knownChars: exactSet(cfg.KnownPeople),
	}
	n.rules = []Rule{
		{Name: "faction-keyword", Match: n.matchFaction, Label: corpus.LabelFaction},
		{Name: "location-whitelist-or-suffix", Match: n.matchLocation, Label: corpus.LabelLocation},
		{Name: "title-or-known-person", Match: n.matchTitled, Label: corpus.LabelCharacter},
	}
	return n
}

// Clean maps a raw span to its canonical form. Order matters: edge
// punctuation first, then the leading article, then the trailing possessive,
// then the noise filter. Returns false when the span should be discarded.
// Clean is idempotent: Clean(Clean(x)) == Clean(x).
func (n *Normalizer) Clean(raw string) (string, bool) {
	name := strings.TrimSpace(edgePunct.ReplaceAllString(strings.TrimSpace(raw), ""))

	// "The Wall" keeps its article: only strip when more than a short word
	// remains, so whitelisted "The X" locations survive.
	if rest, ok := strings.CutPrefix(name, "The "); ok && len(rest) > 4 {
		name = rest
	}

	name = possessive.ReplaceAllString(name, "")
	// The possessive strip can expose punctuation that was sitting before
	// the "'s" (dialogue artifacts like `Rand?!'s`), so trim edges again to
	// keep Clean idempotent.
	name = strings.TrimSpace(edgePunct.ReplaceAllString(name, ""))

	minLen := n.cfg.MinNameLen
	if minLen <= 0 {
		minLen = 3
	}
	if len(name) < minLen {
		return "", false
	}
	if _, bad := n.noise[strings.ToLower(name)]; bad {
		return "", false
	}
	return name, true
}

// Classify runs the rule chain over a cleaned name. A name that matches no
// rule and does not start with an uppercase letter is noise; everything else
// defaults to CHARACTER.
func (n *Normalizer) Classify(name string) (string, bool) {
	for _, rule := range n.rules {
		if rule.Match(name) {
			return rule.Label, true
		}
	}
	if !startsUpper(name) {
		return "", false
	}
	return corpus.LabelCharacter, true
}

// Reconcile merges a model-assigned label with the heuristic rules. The
// rule chain wins outright when it matches; otherwise a valid model label
// stands; otherwise the name falls through the same default/noise logic as
// Classify.
func (n *Normalizer) Reconcile(name, modelLabel string) (string, bool) {
	for _, rule := range n.rules {
		if rule.Match(name) {
			return rule.Label, true
		}
	}
	switch modelLabel {
	case corpus.LabelCharacter, corpus.LabelLocation, corpus.LabelFaction, corpus.LabelArtifact:
		return modelLabel, true
	}
	if !startsUpper(name) {
		return "", false
	}
	return corpus.LabelCharacter, true
}

// Alias resolves a surface name through the manual alias map.
func (n *Normalizer) Alias(name string) string {
	if canonical, ok := n.cfg.AliasMap[name]; ok {
		return canonical
	}
	return name
}

// ScrubEntityList cleans a model-produced entity list: canonicalize each
// name, drop lowercase misidentifications and generic "The Noun" spans, and
// dedupe preserving first occurrence.
func (n *Normalizer) ScrubEntityList(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, raw := range names {
		name, ok := n.Clean(raw)
		if !ok {
			continue
		}
		if !startsUpper(name) {
			continue
		}
		if isGenericThe(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (n *Normalizer) matchFaction(name string) bool {
	low := strings.ToLower(name)
	for _, f := range n.cfg.Factions {
		if strings.Contains(low, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

func (n *Normalizer) matchLocation(name string) bool {
	if _, ok := n.knownLocs[name]; ok {
		return true
	}
	low := strings.ToLower(name)
	for _, suffix := range n.cfg.GeoSuffixes {
		if strings.HasSuffix(low, suffix) || strings.Contains(low, " "+suffix) {
			return true
		}
	}
	return false
}

func (n *Normalizer) matchTitled(name string) bool {
	if _, ok := n.knownChars[name]; ok {
		return true
	}
	for _, title := range n.cfg.Titles {
		if strings.Contains(name, title) {
			return true
		}
	}
	return false
}

// isGenericThe catches spans like "The Room": an article plus one word.
func isGenericThe(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "the ") && len(strings.Fields(name)) == 2
}

func startsUpper(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

func lowerSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func exactSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
