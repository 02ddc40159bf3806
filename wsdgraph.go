package wsdgraph

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siherrmann/wsdgraph/core/graph"
	"github.com/siherrmann/wsdgraph/core/wsd"
	"github.com/siherrmann/wsdgraph/database"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	loadSql "github.com/siherrmann/wsdgraph/sql"
)

// WSDGraph wires a lexical database to the distance engine and the evaluation harness
type WSDGraph struct {
	DB       *helper.Database
	Lexicon  database.Lexicon
	Engine   *graph.Engine
	Metrics  *graph.Metrics
	Registry *prometheus.Registry
	Config   model.EvalConfig
	// Logging
	log *slog.Logger
}

// Option configures a WSDGraph.
type Option func(*options)

type options struct {
	logOutput io.Writer
	logLevel  slog.Level
}

// WithLogOutput sets where logs are written and the minimum level.
func WithLogOutput(w io.Writer, level slog.Level) Option {
	return func(o *options) {
		o.logOutput = w
		o.logLevel = level
	}
}

func newOptions(opts []Option) *options {
	o := &options{logOutput: os.Stdout, logLevel: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewWSDGraph connects to a Postgres lexical database, creating the schema if needed.
func NewWSDGraph(ctx context.Context, config *helper.DatabaseConfiguration, evalConfig model.EvalConfig, opts ...Option) (*WSDGraph, error) {
	o := newOptions(opts)
	logger := helper.NewLogger(o.logOutput, o.logLevel)

	// Initialize database
	db := helper.NewDatabase("wsdgraph", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		db.Close()
		return nil, helper.NewError("initialize database", err)
	}

	// force=false to not reload if functions already exist
	lexicon, err := database.NewPostgresLexicon(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create lexicon", err)
	}

	return newWSDGraph(ctx, db, lexicon, evalConfig, logger)
}

// OpenWordNet opens a native WordNet sqlite file read-only.
func OpenWordNet(ctx context.Context, path string, evalConfig model.EvalConfig, opts ...Option) (*WSDGraph, error) {
	o := newOptions(opts)
	logger := helper.NewLogger(o.logOutput, o.logLevel)

	db, err := helper.NewSqliteDatabase("wordnet", path, logger)
	if err != nil {
		return nil, helper.NewError("open wordnet", err)
	}

	lexicon, err := database.NewWordNetFileHandler(db)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create wordnet handler", err)
	}

	return newWSDGraph(ctx, db, lexicon, evalConfig, logger)
}

func newWSDGraph(ctx context.Context, db *helper.Database, lexicon database.Lexicon, evalConfig model.EvalConfig, logger *slog.Logger) (*WSDGraph, error) {
	err := helper.ValidateEvalConfig(&evalConfig)
	if err != nil {
		db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics := graph.NewMetrics(registry)

	engine, err := graph.NewEngine(ctx, lexicon, evalConfig.LinkType,
		graph.WithNeighborCache(evalConfig.NeighborCacheSize),
		graph.WithMetrics(metrics),
		graph.WithLogger(logger),
	)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create engine", err)
	}

	return &WSDGraph{
		DB:       db,
		Lexicon:  lexicon,
		Engine:   engine,
		Metrics:  metrics,
		Registry: registry,
		Config:   evalConfig,
		log:      logger,
	}, nil
}

// Close closes the database connection
func (g *WSDGraph) Close() error {
	return g.DB.Close()
}

// Distance returns the link distance between the synsets of two sense keys,
// or graph.Unreachable if they are not connected.
func (g *WSDGraph) Distance(ctx context.Context, srcKey string, dstKey string) (int, error) {
	src, err := g.Lexicon.SenseKeyToID(ctx, srcKey)
	if err != nil {
		return 0, err
	}
	dst, err := g.Lexicon.SenseKeyToID(ctx, dstKey)
	if err != nil {
		return 0, err
	}
	return g.Engine.Distance(ctx, src, dst)
}

// Sense loads a synset with its gloss.
func (g *WSDGraph) Sense(ctx context.Context, id int64) (*model.Sense, error) {
	return g.Lexicon.SelectSense(ctx, id, true)
}

// Neighbors returns the synsets linked to id in ascending order.
func (g *WSDGraph) Neighbors(ctx context.Context, id int64) ([]int64, error) {
	return graph.GetNeighbors(ctx, g.Engine, id)
}

// Neighborhood lists the synsets within maxHops links of id in level order.
func (g *WSDGraph) Neighborhood(ctx context.Context, id int64, maxHops int) ([]*graph.TraversalResult, error) {
	return graph.BFS(ctx, g.Engine, id, maxHops)
}

// Synsets returns the synsets of any of lemmas in ascending id order.
func (g *WSDGraph) Synsets(ctx context.Context, lemmas []string) ([]int64, error) {
	ids, err := g.Lexicon.FindSynsets(ctx, lemmas)
	if err != nil {
		return nil, err
	}
	result := ids.Slice()
	slices.Sort(result)
	return result, nil
}

// SynsetsByPOS loads every synset of a part of speech with its gloss.
func (g *WSDGraph) SynsetsByPOS(ctx context.Context, pos model.POS) ([]*model.Sense, error) {
	return g.Lexicon.SelectSynsetsByPOS(ctx, pos)
}

// Links lists every link of a semantic link type.
func (g *WSDGraph) Links(ctx context.Context, linkType string) ([]*model.SemanticLink, error) {
	return g.Lexicon.SelectLinks(ctx, linkType)
}

// Tester builds the evaluation harness for cases with the graph's configuration.
func (g *WSDGraph) Tester(ctx context.Context, cases []*model.TestCase) (*wsd.Tester, error) {
	return wsd.NewTester(ctx, g.Lexicon, cases, g.Config, wsd.WithTesterLogger(g.log))
}

// Evaluate filters cases and scores them with scorer.
// Distance scorers get the configured maximum distance.
func (g *WSDGraph) Evaluate(ctx context.Context, cases []*model.TestCase, scorer wsd.ScoreFunc) (*wsd.Results, error) {
	tester, err := g.Tester(ctx, cases)
	if err != nil {
		return nil, err
	}
	return tester.Test(ctx, g.Engine, scorer, wsd.ScorerArgs{MaxDistance: g.Config.MaxDistance})
}
