package corpus

import (
	"strings"
)

// Chunk is the unit of entity extraction: a bounded slice of one book's text.
// Chunks are ordered by ChunkID within a book and immutable once written.
type Chunk struct {
	BookID  string
	ChunkID int
	Text    string
}

// Mention is one labeled entity surface form, serialized as "Name|LABEL" in
// the labeled_entities column.
type Mention struct {
	Name  string
	Label string
}

// LabeledChunk is a chunk row joined with whatever label columns the source
// file carries. KeyEntities comes from model output, ManualEntities from the
// targeted dictionary pass, Labeled from the gold extraction run.
type LabeledChunk struct {
	BookID         string
	ChunkID        int
	Text           string
	KeyEntities    []string
	Labeled        []Mention
	EntityCount    int
	ManualEntities []string
	ManualCount    int
}

// The closed entity label set.
const (
	LabelCharacter = "CHARACTER"
	LabelLocation  = "LOCATION"
	LabelFaction   = "FACTION"
	LabelArtifact  = "ARTIFACT"
)

// JoinEntities renders a comma-joined entity list column.
func JoinEntities(names []string) string {
	return strings.Join(names, ",")
}

// SplitEntities parses a comma-joined entity list column, dropping empties.
func SplitEntities(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinMentions renders the labeled_entities column: "Name|LABEL,Name|LABEL".
func JoinMentions(mentions []Mention) string {
	parts := make([]string, 0, len(mentions))
	for _, m := range mentions {
		parts = append(parts, m.Name+"|"+m.Label)
	}
	return strings.Join(parts, ",")
}

// SplitMentions parses the labeled_entities column. Tokens without a label
// separator are skipped rather than failing the row.
func SplitMentions(s string) []Mention {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []Mention
	for _, p := range strings.Split(s, ",") {
		name, label, ok := strings.Cut(p, "|")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		label = strings.TrimSpace(label)
		if name == "" || label == "" {
			continue
		}
		out = append(out, Mention{Name: name, Label: label})
	}
	return out
}
