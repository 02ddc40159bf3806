package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// Word ids of a form: inflection mappings plus the lemma entry itself.
const wordIDsByForm = `SELECT wordid FROM morphmaps WHERE morphid IN (SELECT morphid FROM morphs WHERE morph = ?)
UNION ALL SELECT wordid FROM words WHERE lemma = ?`

// WordNetFileHandler reads a native WordNet sqlite database (wordnet_3.1+.db layout).
// The file is opened read-only and never modified.
type WordNetFileHandler struct {
	db      *helper.Database
	builder sq.StatementBuilderType
}

// NewWordNetFileHandler wraps an opened sqlite database.
func NewWordNetFileHandler(db *helper.Database) (*WordNetFileHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	h := &WordNetFileHandler{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}

	for _, table := range []string{"synsets", "words", "senses", "morphs", "morphmaps", "semlinks", "linktypes"} {
		if err := h.checkTable(table); err != nil {
			return nil, err
		}
	}

	db.Logger.Info("Initialized WordNetFileHandler")

	return h, nil
}

func (h *WordNetFileHandler) checkTable(table string) error {
	query, args, err := h.builder.
		Select("COUNT(1)").
		From("sqlite_master").
		Where(sq.Eq{"type": "table", "name": table}).
		ToSql()
	if err != nil {
		return helper.NewError("build query", err)
	}

	var n int
	err = h.db.Instance.QueryRow(query, args...).Scan(&n)
	if err != nil {
		return helper.NewError("check table", err)
	}
	if n == 0 {
		return helper.NewError("check table", fmt.Errorf("wordnet file has no %s table", table))
	}
	return nil
}

// ResolveSenses returns the synsets of a word form, including its morphological variants
func (h *WordNetFileHandler) ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error) {
	return h.selectIDs(ctx, h.builder.
		Select("synsetid").
		From("senses").
		Where("wordid IN ("+wordIDsByForm+")", lemma, lemma))
}

// SenseKeys returns every sense key of a word form, including its morphological variants
func (h *WordNetFileHandler) SenseKeys(ctx context.Context, lemma string) ([]string, error) {
	return h.selectStrings(ctx, h.builder.
		Select("old_sensekey").
		From("senses").
		Where("wordid IN ("+wordIDsByForm+")", lemma, lemma))
}

// SenseKeyToID returns the synset a sense key belongs to
func (h *WordNetFileHandler) SenseKeyToID(ctx context.Context, senseKey string) (int64, error) {
	query, args, err := h.builder.
		Select("synsetid").
		From("senses").
		Where(sq.Eq{"old_sensekey": senseKey}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, helper.NewError("build query", err)
	}

	var id int64
	err = h.db.Instance.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, helper.NewError("select synset by sense key", fmt.Errorf("%w: sense key %s", ErrNotFound, senseKey))
	}
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return id, nil
}

// NeighborIDs returns every synset linked to synsetID, following links in both directions
func (h *WordNetFileHandler) NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error) {
	outgoing, err := h.selectIDs(ctx, h.builder.
		Select("synset2id").
		From("semlinks").
		Where(sq.Eq{"synset1id": synsetID}))
	if err != nil {
		return nil, err
	}

	incoming, err := h.selectIDs(ctx, h.builder.
		Select("synset1id").
		From("semlinks").
		Where(sq.Eq{"synset2id": synsetID}))
	if err != nil {
		return nil, err
	}

	outgoing.Add(incoming.Slice()...)
	return outgoing, nil
}

// Gloss returns the definition of a synset
func (h *WordNetFileHandler) Gloss(ctx context.Context, synsetID int64) (string, error) {
	query, args, err := h.builder.
		Select("definition").
		From("synsets").
		Where(sq.Eq{"synsetid": synsetID}).
		ToSql()
	if err != nil {
		return "", helper.NewError("build query", err)
	}

	var definition sql.NullString
	err = h.db.Instance.QueryRowContext(ctx, query, args...).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return "", helper.NewError("select synset", fmt.Errorf("%w: synset %d", ErrNotFound, synsetID))
	}
	if err != nil {
		return "", helper.NewError("scan", err)
	}

	return definition.String, nil
}

// SelectLinkType retrieves a link type by name
func (h *WordNetFileHandler) SelectLinkType(ctx context.Context, name string) (*model.LinkType, error) {
	query, args, err := h.builder.
		Select("linkid", "link", "linktype").
		From("linktypes").
		Where(sq.Eq{"link": name}).
		ToSql()
	if err != nil {
		return nil, helper.NewError("build query", err)
	}

	linkType := &model.LinkType{}
	var category sql.NullString
	err = h.db.Instance.QueryRowContext(ctx, query, args...).Scan(&linkType.ID, &linkType.Name, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select link type", fmt.Errorf("%w: link type %s", ErrNotFound, name))
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}
	linkType.Category = model.LinkCategory(category.String)

	return linkType, nil
}

// LinkTypeID returns the id of a semantic link type.
// Unknown and lexical link types are rejected.
func (h *WordNetFileHandler) LinkTypeID(ctx context.Context, name string) (int64, error) {
	linkType, err := h.SelectLinkType(ctx, name)
	if err != nil {
		return 0, err
	}
	if !linkType.IsSemantic() {
		return 0, helper.NewError("link type id", fmt.Errorf("cannot search for %s links: lexical link type", name))
	}

	return linkType.ID, nil
}

// SelectSense loads a synset with its sense keys.
// The gloss is only filled if withGloss is set.
func (h *WordNetFileHandler) SelectSense(ctx context.Context, id int64, withGloss bool) (*model.Sense, error) {
	keys, err := h.selectStrings(ctx, h.builder.
		Select("old_sensekey").
		From("senses").
		Where(sq.Eq{"synsetid": id}).
		OrderBy("wordid"))
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

// SelectLinks retrieves every semantic link of a type
func (h *WordNetFileHandler) SelectLinks(ctx context.Context, name string) ([]*model.SemanticLink, error) {
	linkID, err := h.LinkTypeID(ctx, name)
	if err != nil {
		return nil, err
	}

	query, args, err := h.builder.
		Select("synset1id", "synset2id").
		From("semlinks").
		Where(sq.Eq{"linkid": linkID}).
		OrderBy("synset1id", "synset2id").
		ToSql()
	if err != nil {
		return nil, helper.NewError("build query", err)
	}

	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var links []*model.SemanticLink
	for rows.Next() {
		link := &model.SemanticLink{LinkType: name}
		err := rows.Scan(&link.Synset1ID, &link.Synset2ID)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		links = append(links, link)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return links, nil
}

// SelectSynsetsByPOS returns every synset of a part of speech with its gloss
func (h *WordNetFileHandler) SelectSynsetsByPOS(ctx context.Context, pos model.POS) ([]*model.Sense, error) {
	if _, ok := model.ParsePOS(string(pos)); !ok {
		return nil, helper.NewError("select synsets by pos", fmt.Errorf("no such pos: %s, must be in {n, v, a, s}", pos))
	}

	query, args, err := h.builder.
		Select("synsetid", "definition").
		From("synsets").
		Where(sq.Eq{"pos": string(pos)}).
		OrderBy("synsetid").
		ToSql()
	if err != nil {
		return nil, helper.NewError("build query", err)
	}

	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}

	ids := []int64{}
	glosses := map[int64]string{}
	for rows.Next() {
		var id int64
		var definition sql.NullString
		err := rows.Scan(&id, &definition)
		if err != nil {
			rows.Close()
			return nil, helper.NewError("scan", err)
		}
		ids = append(ids, id)
		glosses[id] = definition.String
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	// The handle holds a single connection, so sense keys are read after the rows are closed.
	senses := make([]*model.Sense, 0, len(ids))
	for _, id := range ids {
		sense, err := h.SelectSense(ctx, id, false)
		if err != nil {
			return nil, err
		}
		sense.Gloss = glosses[id]
		senses = append(senses, sense)
	}

	return senses, nil
}

// FindSynsets returns the synsets of any of the given lemmas, without morphological expansion
func (h *WordNetFileHandler) FindSynsets(ctx context.Context, lemmas []string) (model.Set[int64], error) {
	if len(lemmas) == 0 {
		return model.NewSet[int64](), nil
	}

	return h.selectIDs(ctx, h.builder.
		Select("DISTINCT senses.synsetid").
		From("senses").
		Join("words ON words.wordid = senses.wordid").
		Where(sq.Eq{"words.lemma": lemmas}))
}

func (h *WordNetFileHandler) selectIDs(ctx context.Context, builder sq.SelectBuilder) (model.Set[int64], error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, helper.NewError("build query", err)
	}

	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
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

func (h *WordNetFileHandler) selectStrings(ctx context.Context, builder sq.SelectBuilder) ([]string, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, helper.NewError("build query", err)
	}

	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
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
