package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/driver"
	"github.com/lorehaven/fablemap/internal/graph"
)

// Requires a running bolt endpoint; set NEO4J_URI (and optionally
// NEO4J_USER / NEO4J_PASSWORD) to enable.
func newTestDriver(t *testing.T) *driver.Neo4jDriver {
	t.Helper()

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d, err := driver.NewNeo4jDriver(ctx, uri, os.Getenv("NEO4J_USER"), os.Getenv("NEO4J_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close(context.Background()) })
	return d
}

func TestImportGraphRoundTrip(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()

	// Unique names so the test does not collide with real data.
	run := uuid.NewString()[:8]
	hero := fmt.Sprintf("it-hero-%s", run)
	city := fmt.Sprintf("it-city-%s", run)

	b := graph.NewBuilder()
	b.AddChunk("book_01", []corpus.Mention{
		{Name: hero, Label: corpus.LabelCharacter},
		{Name: city, Label: corpus.LabelLocation},
	})
	b.AddChunk("book_01", []corpus.Mention{
		{Name: hero, Label: corpus.LabelCharacter},
		{Name: city, Label: corpus.LabelLocation},
	})
	nodes, edges := b.Nodes(), b.Edges()

	require.NoError(t, d.BuildIndices(ctx))
	require.NoError(t, driver.ImportGraph(ctx, d, nodes, edges))

	defer func() {
		_, err := d.ExecuteQuery(ctx,
			"MATCH (n:Entity) WHERE n.id IN $ids DETACH DELETE n",
			map[string]any{"ids": []any{hero, city}})
		assert.NoError(t, err)
	}()

	result, err := d.ExecuteQuery(ctx,
		"MATCH (s:Entity {id: $source})-[r:MENTIONED_WITH]->(t:Entity {id: $target}) RETURN r.weight AS weight",
		map[string]any{"source": city, "target": hero})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	weight, ok := result.Records[0].Get("weight")
	require.True(t, ok)
	assert.EqualValues(t, 2, weight)
}

func TestImportGraphIdempotent(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()

	run := uuid.NewString()[:8]
	a := fmt.Sprintf("it-a-%s", run)
	z := fmt.Sprintf("it-z-%s", run)

	b := graph.NewBuilder()
	b.AddChunk("book_02", []corpus.Mention{
		{Name: a, Label: corpus.LabelCharacter},
		{Name: z, Label: corpus.LabelCharacter},
	})
	nodes, edges := b.Nodes(), b.Edges()

	require.NoError(t, driver.ImportGraph(ctx, d, nodes, edges))
	require.NoError(t, driver.ImportGraph(ctx, d, nodes, edges))

	defer func() {
		_, err := d.ExecuteQuery(ctx,
			"MATCH (n:Entity) WHERE n.id IN $ids DETACH DELETE n",
			map[string]any{"ids": []any{a, z}})
		assert.NoError(t, err)
	}()

	result, err := d.ExecuteQuery(ctx,
		"MATCH (:Entity {id: $a})-[r:MENTIONED_WITH]-(:Entity {id: $z}) RETURN count(r) AS edges",
		map[string]any{"a": a, "z": z})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	count, ok := result.Records[0].Get("edges")
	require.True(t, ok)
	assert.EqualValues(t, 1, count)
}
