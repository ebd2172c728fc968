// Package graph derives the co-occurrence graph from normalized entity
// mentions: one node per canonical name, one weighted undirected edge per
// (pair, book).
package graph

import (
	"sort"

	"github.com/lorehaven/fablemap/internal/corpus"
)

// Node is a deduplicated entity identity across the corpus.
type Node struct {
	ID    string
	Name  string
	Label string
	Books []string
}

// Edge is an undirected, per-book co-occurrence. Source < Target always
// holds, so reversed sightings aggregate into the same edge.
type Edge struct {
	Source string
	Target string
	Book   string
	Weight int
}

type edgeKey struct {
	source, target, book string
}

// Builder accumulates chunk observations and materializes the graph.
// Aggregation is a commutative count, so the result does not depend on the
// order chunks are fed in. Node labels are resolved by majority vote over
// all mentions, with ties broken by the lexicographically smallest label —
// a deterministic replacement for first-seen-wins.
type Builder struct {
	votes   map[string]map[string]int
	books   map[string]map[string]struct{}
	weights map[edgeKey]int
}

func NewBuilder() *Builder {
	return &Builder{
		votes:   make(map[string]map[string]int),
		books:   make(map[string]map[string]struct{}),
		weights: make(map[edgeKey]int),
	}
}

// AddChunk records one chunk's mentions. Duplicate names within the chunk
// collapse to one sighting; a chunk with fewer than two distinct names
// contributes nodes but no edges.
func (b *Builder) AddChunk(book string, mentions []corpus.Mention) {
	unique := make(map[string]struct{}, len(mentions))

	for _, m := range mentions {
		if m.Name == "" {
			continue
		}
		unique[m.Name] = struct{}{}

		if b.votes[m.Name] == nil {
			b.votes[m.Name] = make(map[string]int)
		}
		b.votes[m.Name][m.Label]++

		if b.books[m.Name] == nil {
			b.books[m.Name] = make(map[string]struct{})
		}
		b.books[m.Name][book] = struct{}{}
	}

	if len(unique) < 2 {
		return
	}

	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			b.weights[edgeKey{source: names[i], target: names[j], book: book}]++
		}
	}
}

// Nodes returns the deduplicated node table sorted by ID.
func (b *Builder) Nodes() []Node {
	nodes := make([]Node, 0, len(b.votes))
	for name, votes := range b.votes {
		books := make([]string, 0, len(b.books[name]))
		for book := range b.books[name] {
			books = append(books, book)
		}
		sort.Strings(books)

		nodes = append(nodes, Node{
			ID:    name,
			Name:  name,
			Label: majorityLabel(votes),
			Books: books,
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// Edges returns the aggregated edge table sorted by (source, target, book).
func (b *Builder) Edges() []Edge {
	edges := make([]Edge, 0, len(b.weights))
	for key, weight := range b.weights {
		edges = append(edges, Edge{
			Source: key.source,
			Target: key.target,
			Book:   key.book,
			Weight: weight,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Target != edges[j].Target {
			return edges[i].Target < edges[j].Target
		}
		return edges[i].Book < edges[j].Book
	})
	return edges
}

func majorityLabel(votes map[string]int) string {
	best := ""
	bestCount := -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}
