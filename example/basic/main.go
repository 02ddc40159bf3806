package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/siherrmann/wsdgraph"
	"github.com/siherrmann/wsdgraph/core/wsd"
	"github.com/siherrmann/wsdgraph/database"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	loadSql "github.com/siherrmann/wsdgraph/sql"
)

// A tiny hypernym chain: bank (money) - money - cash - water - bank (river).
var senses = []struct {
	wordID   int64
	lemma    string
	synsetID int64
	key      string
	gloss    string
}{
	{1, "bank", 1, "bank%1:14:00::", "a financial institution"},
	{2, "money", 2, "money%1:21:00::", "a medium of exchange"},
	{3, "cash", 3, "cash%1:21:00::", "money in the form of coins or notes"},
	{4, "water", 4, "water%1:27:00::", "a clear liquid"},
	{1, "bank", 5, "bank%1:17:01::", "sloping land beside a body of water"},
	{5, "river", 5, "river%1:17:00::", "sloping land beside a body of water"},
}

const testCases = `money bank cash,bank%1:14:00::,NOUN
river bank water,bank%1:17:01::,NOUN`

func seed(ctx context.Context, db *helper.Database) error {
	if err := loadSql.Init(db.Instance); err != nil {
		return err
	}

	lexicon, err := database.NewPostgresLexicon(db, false)
	if err != nil {
		return err
	}

	for _, s := range senses {
		if err := lexicon.InsertSynset(ctx, s.synsetID, model.POSNoun, s.gloss); err != nil {
			return err
		}
		if err := lexicon.InsertWord(ctx, s.wordID, s.lemma); err != nil {
			return err
		}
		if err := lexicon.InsertSense(ctx, s.wordID, s.synsetID, s.key); err != nil {
			return err
		}
	}

	if err := lexicon.InsertLinkType(ctx, &model.LinkType{ID: 1, Name: model.LinkHypernym}); err != nil {
		return err
	}
	for i := int64(1); i < 5; i++ {
		if err := lexicon.InsertSemLink(ctx, i, i+1, 1); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	ctx := context.Background()

	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(ctx)

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	// The link type has to exist before the engine is bound to it
	seedDB := helper.NewTestDatabase(dbConfig)
	if err := seed(ctx, seedDB); err != nil {
		log.Fatalf("Failed to seed lexicon: %v", err)
	}
	seedDB.Close()

	config := model.DefaultEvalConfig()
	config.NeighborCacheSize = 128

	g, err := wsdgraph.NewWSDGraph(ctx, dbConfig, config)
	if err != nil {
		log.Fatalf("Failed to create wsdgraph: %v", err)
	}
	defer g.Close()

	d, err := g.Distance(ctx, "bank%1:14:00::", "bank%1:17:01::")
	if err != nil {
		log.Fatalf("Failed to compute distance: %v", err)
	}
	fmt.Printf("Distance between the two senses of bank: %d\n", d)

	cases, err := wsd.ReadTestCases(strings.NewReader(testCases))
	if err != nil {
		log.Fatalf("Failed to read test cases: %v", err)
	}

	for _, name := range wsd.ScorerNames() {
		scorer, err := wsd.LookupScorer(name)
		if err != nil {
			log.Fatalf("Failed to look up scorer: %v", err)
		}

		results, err := g.Evaluate(ctx, cases, wsd.Negate(scorer))
		if err != nil {
			log.Fatalf("Failed to evaluate %s: %v", name, err)
		}
		fmt.Printf("%s (closest) accuracy: %.1f%%\n", name, results.Accuracy()*100)
	}

	fmt.Println("\nBasic example completed successfully!")
}
