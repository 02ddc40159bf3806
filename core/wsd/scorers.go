package wsd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// DefaultMaxDistance caps distances when a scorer gets no ScorerArgs.
const DefaultMaxDistance = 12

// ScorerArgs parameterizes the distance scorers.
type ScorerArgs struct {
	MaxDistance int
}

func maxDistance(args any) int {
	switch a := args.(type) {
	case ScorerArgs:
		if a.MaxDistance > 0 {
			return a.MaxDistance
		}
	case *ScorerArgs:
		if a != nil && a.MaxDistance > 0 {
			return a.MaxDistance
		}
	}
	return DefaultMaxDistance
}

var scorers = map[string]ScoreFunc{
	"random":          RandomBaseline,
	"distance_sum":    DistanceSum,
	"nearest_context": NearestContext,
}

// LookupScorer returns a registered scorer by name.
func LookupScorer(name string) (ScoreFunc, error) {
	scorer, ok := scorers[name]
	if !ok {
		return nil, helper.NewError("lookup scorer", fmt.Errorf("unknown scorer %q, must be one of %v", name, ScorerNames()))
	}
	return scorer, nil
}

// ScorerNames lists the registered scorers in alphabetical order.
func ScorerNames() []string {
	names := make([]string, 0, len(scorers))
	for name := range scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RandomBaseline assigns independent uniform scores, giving chance accuracy.
func RandomBaseline(ctx context.Context, contextWords []string, target string, options []string, g Graph, args any) ([]float64, error) {
	scores := make([]float64, len(options))
	for i := range scores {
		scores[i] = rand.Float64()
	}
	return scores, nil
}

// contextSenses resolves every context word and the union of their synsets.
func contextSenses(ctx context.Context, contextWords []string, g Graph) ([]model.Set[int64], model.Set[int64], error) {
	sets := make([]model.Set[int64], 0, len(contextWords))
	for _, word := range contextWords {
		ids, err := g.ResolveSenses(ctx, word)
		if err != nil {
			return nil, nil, helper.NewError("resolve senses", err)
		}
		sets = append(sets, ids)
	}
	return sets, model.UnionAll(sets...), nil
}

// DistanceSum scores an option by summing, over the context words, the capped
// distance from the option's synset to the nearest synset of that word.
func DistanceSum(ctx context.Context, contextWords []string, target string, options []string, g Graph, args any) ([]float64, error) {
	maxDist := maxDistance(args)

	sets, all, err := contextSenses(ctx, contextWords, g)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, 0, len(options))
	for _, option := range options {
		id, err := g.SenseKeyToID(ctx, option)
		if err != nil {
			return nil, helper.NewError("sense key to id", err)
		}

		dists, err := g.Distances(ctx, id, all, maxDist)
		if err != nil {
			return nil, err
		}

		sum := 0
		for _, set := range sets {
			nearest := maxDist
			for sid := range set {
				if d, ok := dists[sid]; ok {
					nearest = min(nearest, d)
				}
			}
			sum += nearest
		}
		scores = append(scores, float64(sum))
	}

	return scores, nil
}

// NearestContext scores an option by its capped distance to the nearest synset of any context word.
func NearestContext(ctx context.Context, contextWords []string, target string, options []string, g Graph, args any) ([]float64, error) {
	maxDist := maxDistance(args)

	_, all, err := contextSenses(ctx, contextWords, g)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, 0, len(options))
	for _, option := range options {
		id, err := g.SenseKeyToID(ctx, option)
		if err != nil {
			return nil, helper.NewError("sense key to id", err)
		}

		d, err := g.MinDistanceToSet(ctx, id, all, maxDist)
		if err != nil {
			return nil, err
		}
		scores = append(scores, float64(d))
	}

	return scores, nil
}

// Negate wraps a scorer so that lower scores win.
// The distance scorers return distances, where closer means smaller.
func Negate(scorer ScoreFunc) ScoreFunc {
	return func(ctx context.Context, contextWords []string, target string, options []string, g Graph, args any) ([]float64, error) {
		scores, err := scorer(ctx, contextWords, target, options, g, args)
		if err != nil {
			return nil, err
		}
		negated := slices.Clone(scores)
		for i := range negated {
			negated[i] = -negated[i]
		}
		return negated, nil
	}
}
