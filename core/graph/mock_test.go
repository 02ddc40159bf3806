package graph

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// MockLexicon is an in-memory undirected graph implementing NeighborStore
type MockLexicon struct {
	adjacency map[int64]model.Set[int64]
	linkTypes map[string]int64
	lemmas    map[string]model.Set[int64]
	keys      map[string]int64
	calls     int
	err       error
}

func NewMockLexicon() *MockLexicon {
	return &MockLexicon{
		adjacency: make(map[int64]model.Set[int64]),
		linkTypes: map[string]int64{"r": 1, model.LinkHypernym: 2},
		lemmas:    make(map[string]model.Set[int64]),
		keys:      make(map[string]int64),
	}
}

// NewChainLexicon links 1-2-3-4-5.
func NewChainLexicon() *MockLexicon {
	m := NewMockLexicon()
	for i := int64(1); i < 5; i++ {
		m.link(i, i+1)
	}
	return m
}

func (m *MockLexicon) link(a int64, b int64) {
	if m.adjacency[a] == nil {
		m.adjacency[a] = model.NewSet[int64]()
	}
	if m.adjacency[b] == nil {
		m.adjacency[b] = model.NewSet[int64]()
	}
	m.adjacency[a].Add(b)
	m.adjacency[b].Add(a)
}

func (m *MockLexicon) NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.adjacency[synsetID].Clone(), nil
}

func (m *MockLexicon) LinkTypeID(ctx context.Context, name string) (int64, error) {
	id, ok := m.linkTypes[name]
	if !ok {
		return 0, fmt.Errorf("link type %s not found", name)
	}
	return id, nil
}

func (m *MockLexicon) ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error) {
	return m.lemmas[lemma].Clone(), nil
}

func (m *MockLexicon) SenseKeyToID(ctx context.Context, senseKey string) (int64, error) {
	id, ok := m.keys[senseKey]
	if !ok {
		return 0, fmt.Errorf("sense key %s not found", senseKey)
	}
	return id, nil
}

func quietLogger() *slog.Logger {
	return helper.NewLogger(io.Discard, slog.LevelWarn)
}
