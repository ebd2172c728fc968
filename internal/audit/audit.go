// Package audit sanity-checks the converted corpus before it enters the
// pipeline: encoding trouble, truncated reads and missing narrative
// markers all show up here first.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Encoder used for token counts.
const encoding = "cl100k_base"

// Markers whose presence suggests the file actually starts at the story
// rather than front matter or a bad conversion.
var startMarkers = []string{"PROLOGUE", "PRELUDE", "BOOK ONE", "Chapter 1", "Chapter One"}

// A file bigger than this that reads fewer than minCharsRead characters
// probably has an encoding problem.
const (
	suspiciousSizeBytes = 100 * 1024
	minCharsRead        = 10000
)

type Report struct {
	File        string
	SizeBytes   int64
	CharsRead   int
	Tokens      int
	HasNulls    bool
	StartMarker string
	Suspicious  bool
}

// Run audits every .txt file in dir, sorted by name.
func Run(dir string) ([]Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(paths)

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", encoding, err)
	}

	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		r, err := auditFile(path, enc)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func auditFile(path string, enc *tiktoken.Tiktoken) (Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	r := Report{
		File:      filepath.Base(path),
		SizeBytes: info.Size(),
		CharsRead: len(content),
		Tokens:    len(enc.Encode(content, nil, nil)),
		HasNulls:  strings.ContainsRune(content, 0),
	}

	lower := strings.ToLower(content)
	for _, m := range startMarkers {
		if strings.Contains(lower, strings.ToLower(m)) {
			r.StartMarker = m
			break
		}
	}

	r.Suspicious = r.CharsRead < minCharsRead && r.SizeBytes > suspiciousSizeBytes
	return r, nil
}
