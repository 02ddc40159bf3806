package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed senses.sql
var sensesSQL string

//go:embed links.sql
var linksSQL string

// Function lists for verification
var SensesFunctions = []string{
	"init_senses",
	"insert_synset",
	"insert_word",
	"insert_sense",
	"insert_morph",
	"select_synset",
	"select_sense_keys_by_synset",
	"select_word_ids_by_form",
	"select_synsets_by_lemma",
	"select_sense_keys_by_lemma",
	"select_synsets_by_lemmas",
	"select_synset_by_sense_key",
	"select_synsets_by_pos",
}

var LinksFunctions = []string{
	"init_links",
	"insert_link_type",
	"insert_semlink",
	"select_link_type",
	"select_neighbor_ids",
	"select_links_by_type",
}

// Init creates the synsets table shared by all handlers
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}

// LoadSensesSql loads synset, word and sense SQL functions
func LoadSensesSql(db *sql.DB, force bool) error {
	return loadFunctions(db, "senses", sensesSQL, SensesFunctions, force)
}

// LoadLinksSql loads link type and semantic link SQL functions
func LoadLinksSql(db *sql.DB, force bool) error {
	return loadFunctions(db, "links", linksSQL, LinksFunctions, force)
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadSensesSql(db, force); err != nil {
		return err
	}

	if err := LoadLinksSql(db, force); err != nil {
		return err
	}

	return nil
}

func loadFunctions(db *sql.DB, name string, source string, functions []string, force bool) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(source)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
