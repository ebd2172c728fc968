package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lorehaven/fablemap/internal/config"
	"github.com/lorehaven/fablemap/internal/corpus"
)

// Strategy names accepted in config.
const (
	StrategySentences = "sentences"
	StrategyWindows   = "windows"
)

// A book counts as hard-wrapped only past this many newlines; short files
// don't carry enough signal for the ratio test.
const hardWrapMinNewlines = 100

const paragraphMarker = "||PARAGRAPH||"

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

var (
	multiNewline = regexp.MustCompile(`\n\n+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Segmenter splits raw book text into ordered chunks.
type Segmenter struct {
	cfg config.SegmenterConfig
}

func New(cfg config.SegmenterConfig) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// SegmentBook turns one book's raw text into its chunk rows. Chunk IDs are
// assigned before the minimum-length filter, so discarded fragments leave
// gaps but surviving IDs still reflect document order.
func (s *Segmenter) SegmentBook(bookID, raw string) []corpus.Chunk {
	text := normalizeNewlines(raw)
	if IsHardWrapped(text) {
		text = Reflow(text)
	}

	var parts []string
	if s.cfg.Strategy == StrategyWindows {
		parts = s.windows(text)
	} else {
		parts = s.sentenceGroups(text)
	}

	minLen := s.minChunkLen()
	var chunks []corpus.Chunk
	for i, part := range parts {
		clean := strings.TrimSpace(whitespace.ReplaceAllString(part, " "))
		if len(clean) < minLen {
			continue
		}
		chunks = append(chunks, corpus.Chunk{BookID: bookID, ChunkID: i, Text: clean})
	}
	return chunks
}

// minChunkLen resolves the discard threshold. Window mode tolerates shorter
// fragments than sentence mode, since a snapped window tail is still useful
// context.
func (s *Segmenter) minChunkLen() int {
	if s.cfg.MinChunkLen > 0 {
		return s.cfg.MinChunkLen
	}
	if s.cfg.Strategy == StrategyWindows {
		return 10
	}
	return 30
}

// IsHardWrapped reports whether the text uses a newline per printed line
// rather than per paragraph: many newlines overall but double newlines
// making up less than a quarter of them.
func IsHardWrapped(text string) bool {
	total := strings.Count(text, "\n")
	double := strings.Count(text, "\n\n")
	return total > hardWrapMinNewlines && double < total/4
}

// Reflow collapses single newlines into spaces while keeping paragraph
// breaks (double newlines) intact.
func Reflow(text string) string {
	text = multiNewline.ReplaceAllString(text, paragraphMarker)
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, paragraphMarker, "\n\n")
}

// sentenceGroups flattens the text, splits it into sentences and groups them
// into fixed-size batches.
func (s *Segmenter) sentenceGroups(text string) []string {
	clean := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	sentences := SplitSentences(clean)

	size := s.cfg.SentencesPerChunk
	if size <= 0 {
		size = 7
	}

	var groups []string
	for i := 0; i < len(sentences); i += size {
		end := min(i+size, len(sentences))
		groups = append(groups, strings.Join(sentences[i:end], " "))
	}
	return groups
}

// SplitSentences splits on sentence-ending punctuation followed by whitespace
// and a capital letter. The trailing fragment, if any, is kept as its own
// sentence.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); {
		c := runes[i]
		if c == '.' || c == '!' || c == '?' {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j > i+1 && j < len(runes) && unicode.IsUpper(runes[j]) {
				sentences = append(sentences, string(runes[start:i+1]))
				start = j
				i = j
				continue
			}
		}
		i++
	}

	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			sentences = append(sentences, tail)
		}
	}
	return sentences
}

// windows cuts fixed-size character windows with overlap, snapping each
// window's end back to the last period past its midpoint so sentences are
// not cut mid-flight. Boundaries are measured in runes, never bytes, so a
// multi-byte character on a window edge stays intact.
func (s *Segmenter) windows(text string) []string {
	size := s.cfg.WindowSize
	if size <= 0 {
		size = 2000
	}
	overlap := s.cfg.WindowOverlap

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var out []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}

		if period := lastPeriod(runes[start:end]); period != -1 && period > size/2 {
			end = start + period + 1
		}

		out = append(out, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			// Forward progress guard: a window shorter than the overlap
			// would otherwise stall the cursor.
			next = end
		}
		start = next
	}
	return out
}

func lastPeriod(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '.' {
			return i
		}
	}
	return -1
}
