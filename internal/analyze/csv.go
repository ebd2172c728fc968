package analyze

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteFrequenciesCSV writes the per-book frequency tables as
// book,name,count rows, books in the order they were computed.
func WriteFrequenciesCSV(path string, freqs []BookFrequencies) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"book", "name", "count"}); err != nil {
		return err
	}
	for _, bf := range freqs {
		for _, nc := range bf.Top {
			if err := w.Write([]string{bf.Book, nc.Name, strconv.Itoa(nc.Count)}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
