package graph

import (
	"context"
	"slices"

	"github.com/siherrmann/wsdgraph/model"
)

// NeighborLister lists the synsets adjacent to a synset.
type NeighborLister interface {
	NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error)
}

// TraversalResult contains a synset and its distance from the source
type TraversalResult struct {
	SynsetID int64
	Distance int
	Path     []int64 // Path from source to this synset
}

// BFS performs breadth-first search from a source synset.
// Results are in level order; within a level neighbors are visited by ascending id.
func BFS(ctx context.Context, db NeighborLister, sourceID int64, maxHops int) ([]*TraversalResult, error) {
	visited := model.NewSet(sourceID)
	queue := []TraversalResult{{
		SynsetID: sourceID,
		Distance: 0,
		Path:     []int64{sourceID},
	}}

	var results []*TraversalResult

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		// Stop if we've reached max hops
		if current.Distance >= maxHops {
			continue
		}

		neighbors, err := db.NeighborIDs(ctx, current.SynsetID)
		if err != nil {
			return nil, err
		}

		targets := neighbors.Difference(visited).Slice()
		slices.Sort(targets)

		for _, targetID := range targets {
			visited.Add(targetID)

			newPath := make([]int64, len(current.Path), len(current.Path)+1)
			copy(newPath, current.Path)
			newPath = append(newPath, targetID)

			queue = append(queue, TraversalResult{
				SynsetID: targetID,
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}

// GetNeighbors retrieves immediate neighbors (1-hop) of a synset in ascending order
func GetNeighbors(ctx context.Context, db NeighborLister, synsetID int64) ([]int64, error) {
	results, err := BFS(ctx, db, synsetID, 1)
	if err != nil {
		return nil, err
	}

	// Skip the source synset itself (first result)
	neighbors := make([]int64, 0, len(results)-1)
	for i := 1; i < len(results); i++ {
		neighbors = append(neighbors, results[i].SynsetID)
	}

	return neighbors, nil
}
