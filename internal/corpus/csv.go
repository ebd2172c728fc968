package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// header maps column names to their index in a CSV file.
type header map[string]int

func readHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[name] = i
	}
	return h
}

func (h header) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			return fmt.Errorf("expected column '%s' is missing", c)
		}
	}
	return nil
}

func (h header) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// ReadChunks loads a master corpus file (book_id, chunk_id, text).
func ReadChunks(path string) ([]Chunk, error) {
	records, h, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := h.require("book_id", "chunk_id", "text"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	chunks := make([]Chunk, 0, len(records))
	for _, rec := range records {
		id, err := strconv.Atoi(h.get(rec, "chunk_id"))
		if err != nil {
			return nil, fmt.Errorf("%s: bad chunk_id %q: %w", path, h.get(rec, "chunk_id"), err)
		}
		chunks = append(chunks, Chunk{
			BookID:  h.get(rec, "book_id"),
			ChunkID: id,
			Text:    h.get(rec, "text"),
		})
	}
	return chunks, nil
}

// WriteChunks writes a master corpus file.
func WriteChunks(path string, chunks []Chunk) error {
	rows := make([][]string, 0, len(chunks)+1)
	rows = append(rows, []string{"book_id", "chunk_id", "text"})
	for _, c := range chunks {
		rows = append(rows, []string{c.BookID, strconv.Itoa(c.ChunkID), c.Text})
	}
	return writeCSV(path, rows)
}

// ReadLabels loads a label file. Only book_id and chunk_id are mandatory;
// every recognized label column that is present gets parsed, so the same
// reader serves automated, cleaned, gold and manual files.
func ReadLabels(path string) ([]LabeledChunk, error) {
	records, h, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := h.require("book_id", "chunk_id"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows := make([]LabeledChunk, 0, len(records))
	for _, rec := range records {
		id, err := strconv.Atoi(h.get(rec, "chunk_id"))
		if err != nil {
			return nil, fmt.Errorf("%s: bad chunk_id %q: %w", path, h.get(rec, "chunk_id"), err)
		}
		row := LabeledChunk{
			BookID:         h.get(rec, "book_id"),
			ChunkID:        id,
			Text:           h.get(rec, "text"),
			KeyEntities:    SplitEntities(h.get(rec, "key_entities")),
			Labeled:        SplitMentions(h.get(rec, "labeled_entities")),
			ManualEntities: SplitEntities(h.get(rec, "manual_entities")),
		}
		row.EntityCount, _ = strconv.Atoi(h.get(rec, "entity_count"))
		row.ManualCount, _ = strconv.Atoi(h.get(rec, "manual_count"))
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteAutoLabels writes book_id, chunk_id, key_entities, entity_count.
func WriteAutoLabels(path string, rows []LabeledChunk) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, []string{"book_id", "chunk_id", "key_entities", "entity_count"})
	for _, r := range rows {
		out = append(out, []string{
			r.BookID, strconv.Itoa(r.ChunkID),
			JoinEntities(r.KeyEntities), strconv.Itoa(len(r.KeyEntities)),
		})
	}
	return writeCSV(path, out)
}

// WriteGoldLabels adds the labeled_entities column with Name|LABEL tokens.
func WriteGoldLabels(path string, rows []LabeledChunk) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, []string{"book_id", "chunk_id", "key_entities", "labeled_entities", "entity_count"})
	for _, r := range rows {
		out = append(out, []string{
			r.BookID, strconv.Itoa(r.ChunkID),
			JoinEntities(r.KeyEntities), JoinMentions(r.Labeled),
			strconv.Itoa(len(r.Labeled)),
		})
	}
	return writeCSV(path, out)
}

// WriteManualLabels keeps the corpus columns and appends the manual columns,
// so downstream merges can join on (book_id, chunk_id) or reuse the text.
func WriteManualLabels(path string, rows []LabeledChunk) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, []string{"book_id", "chunk_id", "text", "manual_entities", "manual_count"})
	for _, r := range rows {
		out = append(out, []string{
			r.BookID, strconv.Itoa(r.ChunkID), r.Text,
			JoinEntities(r.ManualEntities), strconv.Itoa(len(r.ManualEntities)),
		})
	}
	return writeCSV(path, out)
}

func readCSV(path string) ([][]string, header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s: file is empty", path)
	}
	return all[1:], readHeader(all[0]), nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
