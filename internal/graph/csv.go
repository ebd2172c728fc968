package graph

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteNodesCSV writes the Neo4j node import file (id, name, label).
func WriteNodesCSV(path string, nodes []Node) error {
	rows := make([][]string, 0, len(nodes)+1)
	rows = append(rows, []string{"id", "name", "label"})
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, n.Name, n.Label})
	}
	return writeCSV(path, rows)
}

// WriteEdgesCSV writes the Neo4j relationship import file
// (source, target, book, weight).
func WriteEdgesCSV(path string, edges []Edge) error {
	rows := make([][]string, 0, len(edges)+1)
	rows = append(rows, []string{"source", "target", "book", "weight"})
	for _, e := range edges {
		rows = append(rows, []string{e.Source, e.Target, e.Book, strconv.Itoa(e.Weight)})
	}
	return writeCSV(path, rows)
}

// WriteCommunitiesCSV writes one row per member (community, id, name, label),
// communities numbered in output order.
func WriteCommunitiesCSV(path string, communities []Community) error {
	rows := [][]string{{"community", "id", "name", "label"}}
	for i, c := range communities {
		for _, n := range c.Members {
			rows = append(rows, []string{strconv.Itoa(i), n.ID, n.Name, n.Label})
		}
	}
	return writeCSV(path, rows)
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
