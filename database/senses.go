package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	loadSql "github.com/siherrmann/wsdgraph/sql"
)

// SensesDBHandlerFunctions defines the interface for synset and sense database operations.
type SensesDBHandlerFunctions interface {
	InsertSynset(ctx context.Context, id int64, pos model.POS, definition string) error
	InsertWord(ctx context.Context, wordID int64, lemma string) error
	InsertSense(ctx context.Context, wordID int64, synsetID int64, senseKey string) error
	InsertMorph(ctx context.Context, morphID int64, morph string, wordID int64) error
	SelectSense(ctx context.Context, id int64, withGloss bool) (*model.Sense, error)
	ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error)
	SenseKeys(ctx context.Context, lemma string) ([]string, error)
	SenseKeyToID(ctx context.Context, senseKey string) (int64, error)
	Gloss(ctx context.Context, id int64) (string, error)
	FindSynsets(ctx context.Context, lemmas []string) (model.Set[int64], error)
	SelectSynsetsByPOS(ctx context.Context, pos model.POS) ([]*model.Sense, error)
}

// SensesDBHandler handles synset, word, sense and morph database operations
type SensesDBHandler struct {
	db *helper.Database
}

// NewSensesDBHandler creates a new senses database handler.
// It loads the senses SQL functions and creates the tables.
// If force is true, it will reload the SQL functions even if they already exist.
func NewSensesDBHandler(db *helper.Database, force bool) (*SensesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	sensesDbHandler := &SensesDBHandler{
		db: db,
	}

	err := loadSql.LoadSensesSql(sensesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load senses sql", err)
	}

	err = sensesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized SensesDBHandler")

	return sensesDbHandler, nil
}

// CreateTable creates the words, senses, morphs and morphmaps tables.
// Existing tables are left untouched.
func (h *SensesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_senses();`)
	if err != nil {
		log.Panicf("error initializing senses tables: %#v", err)
	}

	h.db.Logger.Info("Checked/created tables words, senses, morphs, morphmaps")

	return nil
}

// InsertSynset inserts or updates a synset
func (h *SensesDBHandler) InsertSynset(ctx context.Context, id int64, pos model.POS, definition string) error {
	var gotID int64
	var gotPOS string
	var gotDefinition sql.NullString
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM insert_synset($1, $2, $3)`,
		id,
		string(pos),
		definition,
	).Scan(&gotID, &gotPOS, &gotDefinition)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// InsertWord inserts or updates a lemma
func (h *SensesDBHandler) InsertWord(ctx context.Context, wordID int64, lemma string) error {
	var gotID int64
	var gotLemma string
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM insert_word($1, $2)`,
		wordID,
		lemma,
	).Scan(&gotID, &gotLemma)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// InsertSense links a word to a synset under a sense key
func (h *SensesDBHandler) InsertSense(ctx context.Context, wordID int64, synsetID int64, senseKey string) error {
	var gotWordID, gotSynsetID int64
	var gotKey string
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM insert_sense($1, $2, $3)`,
		wordID,
		synsetID,
		senseKey,
	).Scan(&gotWordID, &gotSynsetID, &gotKey)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// InsertMorph registers an inflected form of a word
func (h *SensesDBHandler) InsertMorph(ctx context.Context, morphID int64, morph string, wordID int64) error {
	var gotID int64
	var gotMorph string
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM insert_morph($1, $2, $3)`,
		morphID,
		morph,
		wordID,
	).Scan(&gotID, &gotMorph)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectSense loads a synset with its sense keys.
// The gloss is only filled if withGloss is set.
func (h *SensesDBHandler) SelectSense(ctx context.Context, id int64, withGloss bool) (*model.Sense, error) {
	keys, err := h.selectStrings(ctx, `SELECT * FROM select_sense_keys_by_synset($1)`, id)
	if err != nil {
		return nil, err
	}

	gloss := ""
	if withGloss {
		gloss, err = h.Gloss(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return model.NewSense(id, keys, gloss), nil
}

// ResolveSenses returns the synsets of a word form, including its morphological variants
func (h *SensesDBHandler) ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error) {
	return h.selectIDs(ctx, `SELECT * FROM select_synsets_by_lemma($1)`, lemma)
}

// SenseKeys returns every sense key of a word form, including its morphological variants
func (h *SensesDBHandler) SenseKeys(ctx context.Context, lemma string) ([]string, error) {
	return h.selectStrings(ctx, `SELECT * FROM select_sense_keys_by_lemma($1)`, lemma)
}

// SenseKeyToID returns the synset a sense key belongs to
func (h *SensesDBHandler) SenseKeyToID(ctx context.Context, senseKey string) (int64, error) {
	var id int64
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM select_synset_by_sense_key($1)`,
		senseKey,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, helper.NewError("select synset by sense key", fmt.Errorf("%w: sense key %s", ErrNotFound, senseKey))
	}
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return id, nil
}

// Gloss returns the definition of a synset
func (h *SensesDBHandler) Gloss(ctx context.Context, id int64) (string, error) {
	var gotID int64
	var pos string
	var definition sql.NullString
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM select_synset($1)`,
		id,
	).Scan(&gotID, &pos, &definition)
	if errors.Is(err, sql.ErrNoRows) {
		return "", helper.NewError("select synset", fmt.Errorf("%w: synset %d", ErrNotFound, id))
	}
	if err != nil {
		return "", helper.NewError("scan", err)
	}

	return definition.String, nil
}

// FindSynsets returns the synsets of any of the given lemmas, without morphological expansion
func (h *SensesDBHandler) FindSynsets(ctx context.Context, lemmas []string) (model.Set[int64], error) {
	if len(lemmas) == 0 {
		return model.NewSet[int64](), nil
	}
	return h.selectIDs(ctx, `SELECT * FROM select_synsets_by_lemmas($1)`, pq.Array(lemmas))
}

// SelectSynsetsByPOS returns every synset of a part of speech with its gloss
func (h *SensesDBHandler) SelectSynsetsByPOS(ctx context.Context, pos model.POS) ([]*model.Sense, error) {
	if _, ok := model.ParsePOS(string(pos)); !ok {
		return nil, helper.NewError("select synsets by pos", fmt.Errorf("no such pos: %s, must be in {n, v, a, s}", pos))
	}

	rows, err := h.db.Instance.QueryContext(ctx,
		`SELECT * FROM select_synsets_by_pos($1)`,
		string(pos),
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}

	type synsetRow struct {
		id         int64
		definition string
	}
	var synsetRows []synsetRow
	for rows.Next() {
		var r synsetRow
		var gotPOS string
		var definition sql.NullString
		err := rows.Scan(&r.id, &gotPOS, &definition)
		if err != nil {
			rows.Close()
			return nil, helper.NewError("scan", err)
		}
		r.definition = definition.String
		synsetRows = append(synsetRows, r)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	senses := make([]*model.Sense, 0, len(synsetRows))
	for _, r := range synsetRows {
		keys, err := h.selectStrings(ctx, `SELECT * FROM select_sense_keys_by_synset($1)`, r.id)
		if err != nil {
			return nil, err
		}
		senses = append(senses, model.NewSense(r.id, keys, r.definition))
	}

	return senses, nil
}

func (h *SensesDBHandler) selectIDs(ctx context.Context, query string, arg interface{}) (model.Set[int64], error) {
	rows, err := h.db.Instance.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	ids := model.NewSet[int64]()
	for rows.Next() {
		var id int64
		err := rows.Scan(&id)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		ids.Add(id)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return ids, nil
}

func (h *SensesDBHandler) selectStrings(ctx context.Context, query string, arg interface{}) ([]string, error) {
	rows, err := h.db.Instance.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		err := rows.Scan(&value)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		values = append(values, value)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return values, nil
}
