package wsd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/siherrmann/wsdgraph/core/graph"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	"github.com/stretchr/testify/require"
)

const (
	bankMoney = "bank%1:14:00::"
	bankRiver = "bank%1:17:01::"
	bankVerb  = "bank%2:40:00::"
	plantKey  = "plant%1:03:00::"
)

// MockLexicon is a safe for concurrent use in-memory lexicon.
// Synsets 1-2-3-4-5 form a chain, 10-11 a separate pair.
type MockLexicon struct {
	mu        sync.Mutex
	senseKeys map[string][]string
	keyIDs    map[string]int64
	lemmas    map[string]model.Set[int64]
	adjacency map[int64]model.Set[int64]
	err       error
}

func NewMockLexicon() *MockLexicon {
	m := &MockLexicon{
		senseKeys: map[string][]string{
			"bank":  {bankMoney, bankRiver, bankVerb},
			"plant": {plantKey},
		},
		keyIDs: map[string]int64{
			bankMoney: 1,
			bankRiver: 5,
			bankVerb:  11,
			plantKey:  10,
		},
		lemmas: map[string]model.Set[int64]{
			"money": model.NewSet[int64](2),
			"cash":  model.NewSet[int64](3),
			"river": model.NewSet[int64](5),
		},
		adjacency: make(map[int64]model.Set[int64]),
	}
	for i := int64(1); i < 5; i++ {
		m.link(i, i+1)
	}
	m.link(10, 11)
	return m
}

func (m *MockLexicon) link(a int64, b int64) {
	for _, id := range []int64{a, b} {
		if m.adjacency[id] == nil {
			m.adjacency[id] = model.NewSet[int64]()
		}
	}
	m.adjacency[a].Add(b)
	m.adjacency[b].Add(a)
}

func (m *MockLexicon) SenseKeys(ctx context.Context, lemma string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]string(nil), m.senseKeys[lemma]...), nil
}

func (m *MockLexicon) ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lemmas[lemma].Clone(), nil
}

func (m *MockLexicon) SenseKeyToID(ctx context.Context, senseKey string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keyIDs[senseKey]
	if !ok {
		return 0, fmt.Errorf("sense key %s not found", senseKey)
	}
	return id, nil
}

func (m *MockLexicon) NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjacency[synsetID].Clone(), nil
}

func (m *MockLexicon) LinkTypeID(ctx context.Context, name string) (int64, error) {
	if name != "r" {
		return 0, fmt.Errorf("link type %s not found", name)
	}
	return 1, nil
}

func quietLogger() *slog.Logger {
	return helper.NewLogger(io.Discard, slog.LevelWarn)
}

func newTestEngine(t *testing.T, store graph.NeighborStore) *graph.Engine {
	engine, err := graph.NewEngine(context.Background(), store, "r", graph.WithLogger(quietLogger()), graph.WithNeighborCache(32))
	require.NoError(t, err, "Expected NewEngine to not return an error")
	return engine
}
