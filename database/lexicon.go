package database

import (
	"context"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// Lexicon is the read surface of the lexical database used by the
// distance engine and the evaluation harness.
type Lexicon interface {
	ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error)
	SenseKeys(ctx context.Context, lemma string) ([]string, error)
	SenseKeyToID(ctx context.Context, senseKey string) (int64, error)
	NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error)
	Gloss(ctx context.Context, synsetID int64) (string, error)
	LinkTypeID(ctx context.Context, name string) (int64, error)
	SelectSense(ctx context.Context, id int64, withGloss bool) (*model.Sense, error)
	SelectLinks(ctx context.Context, name string) ([]*model.SemanticLink, error)
	SelectSynsetsByPOS(ctx context.Context, pos model.POS) ([]*model.Sense, error)
	FindSynsets(ctx context.Context, lemmas []string) (model.Set[int64], error)
}

// PostgresLexicon serves the Lexicon contract from the Postgres handlers.
type PostgresLexicon struct {
	*SensesDBHandler
	*LinksDBHandler
}

// NewPostgresLexicon creates both handlers on db.
// If force is true, the SQL functions are reloaded.
func NewPostgresLexicon(db *helper.Database, force bool) (*PostgresLexicon, error) {
	senses, err := NewSensesDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create senses handler", err)
	}

	links, err := NewLinksDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create links handler", err)
	}

	return &PostgresLexicon{
		SensesDBHandler: senses,
		LinksDBHandler:  links,
	}, nil
}

var (
	_ Lexicon = (*PostgresLexicon)(nil)
	_ Lexicon = (*WordNetFileHandler)(nil)
)
