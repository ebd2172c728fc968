package graph

import "sort"

const defaultMaxIterations = 20

// Community is a connected cluster of nodes discovered by label
// propagation. Over a co-occurrence graph these tend to line up with the
// social circles of the narrative.
type Community struct {
	Members []Node
}

// Communities runs weighted label propagation over the graph. Every node
// starts in its own community; each sweep a node adopts the community
// carrying the most edge weight among its neighbors, ties broken by the
// largest community id so runs are repeatable. Singleton clusters are
// dropped. Nodes are visited in ID order, so the result is deterministic
// for a given graph.
func Communities(nodes []Node, edges []Edge) []Community {
	if len(nodes) == 0 {
		return nil
	}

	byID := make(map[string]Node, len(nodes))
	adj := make(map[string]map[string]int, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
		adj[n.ID] = make(map[string]int)
	}
	for _, e := range edges {
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		adj[e.Source][e.Target] += e.Weight
		adj[e.Target][e.Source] += e.Weight
	}

	ids := make([]string, 0, len(nodes))
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
		labels[n.ID] = n.ID
	}
	sort.Strings(ids)

	for iter := 0; iter < defaultMaxIterations; iter++ {
		changed := 0
		for _, id := range ids {
			neighbors := adj[id]
			if len(neighbors) == 0 {
				continue
			}

			weightFor := make(map[string]int, len(neighbors))
			for other, w := range neighbors {
				weightFor[labels[other]] += w
			}

			best, bestWeight := labels[id], -1
			for label, w := range weightFor {
				if w > bestWeight || (w == bestWeight && label > best) {
					best, bestWeight = label, w
				}
			}

			if labels[id] != best {
				labels[id] = best
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	clusters := make(map[string][]Node)
	for id, label := range labels {
		clusters[label] = append(clusters[label], byID[id])
	}

	keys := make([]string, 0, len(clusters))
	for label, members := range clusters {
		if len(members) < 2 {
			continue
		}
		keys = append(keys, label)
	}
	sort.Strings(keys)

	out := make([]Community, 0, len(keys))
	for _, label := range keys {
		members := clusters[label]
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		out = append(out, Community{Members: members})
	}
	return out
}
