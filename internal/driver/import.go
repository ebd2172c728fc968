package driver

import (
	"context"
	"fmt"

	"github.com/lorehaven/fablemap/internal/graph"
	"github.com/lorehaven/fablemap/internal/logging"
)

const importBatchSize = 500

const importNodesQuery = `
	UNWIND $nodes AS row
	MERGE (n:Entity {id: row.id})
	SET n.name = row.name,
		n.label = row.label,
		n.books = row.books
`

const importEdgesQuery = `
	UNWIND $edges AS row
	MATCH (s:Entity {id: row.source})
	MATCH (t:Entity {id: row.target})
	MERGE (s)-[r:MENTIONED_WITH {book: row.book}]->(t)
	SET r.weight = row.weight
`

// ImportGraph pushes the whole node and edge set in UNWIND batches. The
// graph is rebuilt wholesale: MERGE keys on node id and (pair, book), so
// re-running an export overwrites weights rather than duplicating.
func ImportGraph(ctx context.Context, d GraphDriver, nodes []graph.Node, edges []graph.Edge) error {
	for start := 0; start < len(nodes); start += importBatchSize {
		end := min(start+importBatchSize, len(nodes))

		batch := make([]map[string]any, 0, end-start)
		for _, n := range nodes[start:end] {
			batch = append(batch, map[string]any{
				"id":    n.ID,
				"name":  n.Name,
				"label": n.Label,
				"books": n.Books,
			})
		}
		if _, err := d.ExecuteQuery(ctx, importNodesQuery, map[string]any{"nodes": batch}); err != nil {
			return fmt.Errorf("failed to import node batch at %d: %w", start, err)
		}
	}
	logging.Info("imported nodes", "count", len(nodes))

	for start := 0; start < len(edges); start += importBatchSize {
		end := min(start+importBatchSize, len(edges))

		batch := make([]map[string]any, 0, end-start)
		for _, e := range edges[start:end] {
			batch = append(batch, map[string]any{
				"source": e.Source,
				"target": e.Target,
				"book":   e.Book,
				"weight": e.Weight,
			})
		}
		if _, err := d.ExecuteQuery(ctx, importEdgesQuery, map[string]any{"edges": batch}); err != nil {
			return fmt.Errorf("failed to import edge batch at %d: %w", start, err)
		}
	}
	logging.Info("imported relationships", "count", len(edges))

	return nil
}
