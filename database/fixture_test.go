package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	"github.com/stretchr/testify/require"
)

// A small noun hierarchy: dog -> animal -> organism -> entity, cat -> animal.
// Verb 200 is isolated and "dogs" inflects "dog".
type fixtureSynset struct {
	id         int64
	pos        model.POS
	definition string
}

type fixtureSense struct {
	wordID   int64
	lemma    string
	synsetID int64
	key      string
}

var fixtureSynsets = []fixtureSynset{
	{100, model.POSNoun, "that which is perceived to have its own distinct existence"},
	{101, model.POSNoun, "a living thing"},
	{102, model.POSNoun, "a living organism that can move voluntarily"},
	{103, model.POSNoun, "a domesticated canid"},
	{104, model.POSNoun, "a small domesticated feline"},
	{200, model.POSVerb, "move fast by using one's feet"},
}

var fixtureSenses = []fixtureSense{
	{1, "entity", 100, "entity%1:03:00::"},
	{2, "organism", 101, "organism%1:03:00::"},
	{3, "animal", 102, "animal%1:03:00::"},
	{4, "dog", 103, "dog%1:05:00::"},
	{5, "cat", 104, "cat%1:05:00::"},
	{6, "run", 200, "run%2:38:00::"},
}

var fixtureHypernyms = [][2]int64{
	{101, 100},
	{102, 101},
	{103, 102},
	{104, 102},
}

const (
	fixtureHypernymID   int64 = 1
	fixtureDerivationID int64 = 81
	fixtureMorphID      int64 = 1
	fixtureMorph              = "dogs"
	fixtureMorphWordID  int64 = 4
)

func seedPostgresLexicon(t *testing.T, database *helper.Database) *PostgresLexicon {
	ctx := context.Background()

	lexicon, err := NewPostgresLexicon(database, true)
	require.NoError(t, err, "Expected NewPostgresLexicon to not return an error")

	for _, s := range fixtureSynsets {
		require.NoError(t, lexicon.InsertSynset(ctx, s.id, s.pos, s.definition))
	}
	for _, s := range fixtureSenses {
		require.NoError(t, lexicon.InsertWord(ctx, s.wordID, s.lemma))
		require.NoError(t, lexicon.InsertSense(ctx, s.wordID, s.synsetID, s.key))
	}
	require.NoError(t, lexicon.InsertMorph(ctx, fixtureMorphID, fixtureMorph, fixtureMorphWordID))

	require.NoError(t, lexicon.InsertLinkType(ctx, &model.LinkType{ID: fixtureHypernymID, Name: model.LinkHypernym, Category: model.LinkCategorySemantic}))
	require.NoError(t, lexicon.InsertLinkType(ctx, &model.LinkType{ID: fixtureDerivationID, Name: "derivation", Category: model.LinkCategoryLexical}))
	for _, l := range fixtureHypernyms {
		require.NoError(t, lexicon.InsertSemLink(ctx, l[0], l[1], fixtureHypernymID))
	}

	return lexicon
}

// writeWordNetFile creates a sqlite file in the native WordNet layout and returns its path.
func writeWordNetFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "wordnet.db")

	db, err := sql.Open(helper.DriverSqlite, path)
	require.NoError(t, err)
	defer db.Close()

	statements := []string{
		`CREATE TABLE synsets (synsetid INTEGER PRIMARY KEY, pos TEXT NOT NULL, lexdomainid INTEGER, definition TEXT)`,
		`CREATE TABLE words (wordid INTEGER PRIMARY KEY, lemma TEXT NOT NULL)`,
		`CREATE TABLE senses (wordid INTEGER NOT NULL, synsetid INTEGER NOT NULL, old_sensekey TEXT, sensekey TEXT, PRIMARY KEY (wordid, synsetid))`,
		`CREATE TABLE morphs (morphid INTEGER PRIMARY KEY, morph TEXT NOT NULL)`,
		`CREATE TABLE morphmaps (wordid INTEGER NOT NULL, pos TEXT, morphid INTEGER NOT NULL)`,
		`CREATE TABLE linktypes (linkid INTEGER PRIMARY KEY, link TEXT NOT NULL, recurses INTEGER, linktype TEXT)`,
		`CREATE TABLE semlinks (synset1id INTEGER NOT NULL, synset2id INTEGER NOT NULL, linkid INTEGER NOT NULL)`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "failed to create wordnet table")
	}

	for _, s := range fixtureSynsets {
		_, err := db.Exec(`INSERT INTO synsets (synsetid, pos, definition) VALUES (?, ?, ?)`, s.id, string(s.pos), s.definition)
		require.NoError(t, err)
	}
	for _, s := range fixtureSenses {
		_, err := db.Exec(`INSERT INTO words (wordid, lemma) VALUES (?, ?)`, s.wordID, s.lemma)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO senses (wordid, synsetid, old_sensekey) VALUES (?, ?, ?)`, s.wordID, s.synsetID, s.key)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO morphs (morphid, morph) VALUES (?, ?)`, fixtureMorphID, fixtureMorph)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO morphmaps (wordid, pos, morphid) VALUES (?, ?, ?)`, fixtureMorphWordID, "n", fixtureMorphID)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO linktypes (linkid, link, recurses, linktype) VALUES (?, ?, 1, ?)`, fixtureHypernymID, model.LinkHypernym, "sem")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO linktypes (linkid, link, recurses, linktype) VALUES (?, ?, 0, ?)`, fixtureDerivationID, "derivation", "lex")
	require.NoError(t, err)
	for _, l := range fixtureHypernyms {
		_, err := db.Exec(`INSERT INTO semlinks (synset1id, synset2id, linkid) VALUES (?, ?, ?)`, l[0], l[1], fixtureHypernymID)
		require.NoError(t, err)
	}

	return path
}
