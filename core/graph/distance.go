package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// Unreachable is returned by Distance when dst is outside the component of src.
const Unreachable = -1

const (
	outcomeFound     = "found"
	outcomeCapped    = "capped"
	outcomeExhausted = "exhausted"
)

// ErrUnknownLinkType is returned when an engine is built for a link type
// that does not exist or is not semantic.
var ErrUnknownLinkType = errors.New("unknown or lexical link type")

// NeighborStore is the part of the lexical database the engine reads.
type NeighborStore interface {
	NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error)
	LinkTypeID(ctx context.Context, name string) (int64, error)
	ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error)
	SenseKeyToID(ctx context.Context, senseKey string) (int64, error)
}

// Engine computes shortest link distances between synsets.
// The relation graph is treated as undirected and read-only.
type Engine struct {
	store      NeighborStore
	linkType   string
	linkTypeID int64
	cache      *lru.Cache[int64, model.Set[int64]]
	cacheSize  int
	metrics    *Metrics
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithNeighborCache memoizes up to size neighbor sets per engine. Zero disables the cache.
func WithNeighborCache(size int) Option {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// WithMetrics records traversal metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine for linkType.
// It fails with ErrUnknownLinkType if the store does not know linkType as a semantic link.
func NewEngine(ctx context.Context, store NeighborStore, linkType string, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, helper.NewError("engine validation", fmt.Errorf("store is nil"))
	}

	e := &Engine{
		store:    store,
		linkType: linkType,
		logger:   helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(e)
	}

	id, err := store.LinkTypeID(ctx, linkType)
	if err != nil {
		return nil, helper.NewError("link type", fmt.Errorf("%w: %s: %v", ErrUnknownLinkType, linkType, err))
	}
	e.linkTypeID = id

	if e.cacheSize > 0 {
		e.cache, err = lru.New[int64, model.Set[int64]](e.cacheSize)
		if err != nil {
			return nil, helper.NewError("neighbor cache", err)
		}
	}

	e.logger.Info("Initialized Engine", slog.String("link_type", linkType), slog.Int("cache_size", e.cacheSize))

	return e, nil
}

// LinkType returns the link type the engine was built for.
func (e *Engine) LinkType() string {
	return e.linkType
}

// ResolveSenses returns the synsets of a word form.
func (e *Engine) ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error) {
	return e.store.ResolveSenses(ctx, lemma)
}

// SenseKeyToID returns the synset of a sense key.
func (e *Engine) SenseKeyToID(ctx context.Context, senseKey string) (int64, error) {
	return e.store.SenseKeyToID(ctx, senseKey)
}

// NeighborIDs returns the neighbor set of id, served from the cache when enabled.
// The returned set must not be modified. Neighbors are not filtered by link type.
func (e *Engine) NeighborIDs(ctx context.Context, id int64) (model.Set[int64], error) {
	if e.cache != nil {
		if ids, ok := e.cache.Get(id); ok {
			e.metrics.cacheHit()
			return ids, nil
		}
	}

	ids, err := e.store.NeighborIDs(ctx, id)
	if err != nil {
		return nil, helper.NewError("neighbor ids", err)
	}
	e.metrics.expanded()

	if e.cache != nil {
		e.cache.Add(id, ids)
	}

	return ids, nil
}

type queued struct {
	id    int64
	depth int
}

// Distance returns the number of links on a shortest path between src and dst,
// or Unreachable if dst is not connected to src. The search is not capped.
func (e *Engine) Distance(ctx context.Context, src int64, dst int64) (int, error) {
	if src == dst {
		return 0, nil
	}

	seen := model.NewSet[int64]()
	queue := []queued{{id: src}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, helper.NewError("distance", err)
		}

		current := queue[0]
		queue = queue[1:]

		neighbors, err := e.NeighborIDs(ctx, current.id)
		if err != nil {
			return 0, err
		}

		discovered := neighbors.Difference(seen)
		seen.Add(discovered.Slice()...)

		if discovered.Has(dst) {
			e.metrics.traversal("distance", outcomeFound, current.depth+1)
			return current.depth + 1, nil
		}

		for id := range discovered {
			queue = append(queue, queued{id: id, depth: current.depth + 1})
		}
	}

	e.metrics.traversal("distance", outcomeExhausted, 0)
	return Unreachable, nil
}

// MinDistanceToSet returns the distance from src to the nearest member of dsts.
// If no member lies within maxDist links, it returns maxDist.
func (e *Engine) MinDistanceToSet(ctx context.Context, src int64, dsts model.Set[int64], maxDist int) (int, error) {
	if dsts.Has(src) {
		e.metrics.traversal("min_distance", outcomeFound, 0)
		return 0, nil
	}

	seen := model.NewSet[int64]()
	queue := []queued{{id: src}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, helper.NewError("min distance to set", err)
		}

		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDist {
			e.metrics.traversal("min_distance", outcomeCapped, maxDist)
			return maxDist, nil
		}

		neighbors, err := e.NeighborIDs(ctx, current.id)
		if err != nil {
			return 0, err
		}

		discovered := neighbors.Difference(seen)
		seen.Add(discovered.Slice()...)

		if discovered.Overlaps(dsts) {
			e.metrics.traversal("min_distance", outcomeFound, current.depth+1)
			return current.depth + 1, nil
		}

		for id := range discovered {
			queue = append(queue, queued{id: id, depth: current.depth + 1})
		}
	}

	e.metrics.traversal("min_distance", outcomeExhausted, maxDist)
	return maxDist, nil
}

// Distances returns the distance from src to every member of dsts.
// Members not found within maxDist links, including those outside the
// component of src, get maxDist. dsts is not modified.
func (e *Engine) Distances(ctx context.Context, src int64, dsts model.Set[int64], maxDist int) (map[int64]int, error) {
	result := make(map[int64]int, dsts.Len())
	remaining := dsts.Clone()

	if remaining.Has(src) {
		result[src] = 0
		remaining.Remove(src)
	}

	seen := model.NewSet[int64]()
	queue := []queued{{id: src}}

	for len(queue) > 0 && remaining.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, helper.NewError("distances", err)
		}

		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDist {
			break
		}

		neighbors, err := e.NeighborIDs(ctx, current.id)
		if err != nil {
			return nil, err
		}

		discovered := neighbors.Difference(seen)
		seen.Add(discovered.Slice()...)

		for id := range discovered.Intersect(remaining) {
			result[id] = current.depth + 1
			remaining.Remove(id)
			e.metrics.traversal("distances", outcomeFound, current.depth+1)
		}

		for id := range discovered {
			queue = append(queue, queued{id: id, depth: current.depth + 1})
		}
	}

	for id := range remaining {
		result[id] = maxDist
		e.metrics.traversal("distances", outcomeCapped, maxDist)
	}

	return result, nil
}
