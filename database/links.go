package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	loadSql "github.com/siherrmann/wsdgraph/sql"
)

// LinksDBHandlerFunctions defines the interface for link database operations.
type LinksDBHandlerFunctions interface {
	InsertLinkType(ctx context.Context, linkType *model.LinkType) error
	InsertSemLink(ctx context.Context, synset1ID int64, synset2ID int64, linkID int64) error
	SelectLinkType(ctx context.Context, name string) (*model.LinkType, error)
	LinkTypeID(ctx context.Context, name string) (int64, error)
	NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error)
	SelectLinks(ctx context.Context, name string) ([]*model.SemanticLink, error)
}

// LinksDBHandler handles link type and semantic link database operations
type LinksDBHandler struct {
	db *helper.Database
}

// NewLinksDBHandler creates a new links database handler.
// It loads the links SQL functions and creates the tables.
// If force is true, it will reload the SQL functions even if they already exist.
func NewLinksDBHandler(db *helper.Database, force bool) (*LinksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	linksDbHandler := &LinksDBHandler{
		db: db,
	}

	err := loadSql.LoadLinksSql(linksDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load links sql", err)
	}

	err = linksDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized LinksDBHandler")

	return linksDbHandler, nil
}

// CreateTable creates the linktypes and semlinks tables with their indexes.
// Existing tables are left untouched.
func (h *LinksDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_links();`)
	if err != nil {
		log.Panicf("error initializing links tables: %#v", err)
	}

	h.db.Logger.Info("Checked/created tables linktypes, semlinks")

	return nil
}

// InsertLinkType inserts or updates a link type
func (h *LinksDBHandler) InsertLinkType(ctx context.Context, linkType *model.LinkType) error {
	category := linkType.Category
	if category == "" {
		category = model.LinkCategorySemantic
	}

	var gotCategory string
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM insert_link_type($1, $2, $3)`,
		linkType.ID,
		linkType.Name,
		string(category),
	).Scan(&linkType.ID, &linkType.Name, &gotCategory)
	if err != nil {
		return helper.NewError("scan", err)
	}
	linkType.Category = model.LinkCategory(gotCategory)

	return nil
}

// InsertSemLink inserts a link between two synsets
func (h *LinksDBHandler) InsertSemLink(ctx context.Context, synset1ID int64, synset2ID int64, linkID int64) error {
	var got1, got2, gotLink int64
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM insert_semlink($1, $2, $3)`,
		synset1ID,
		synset2ID,
		linkID,
	).Scan(&got1, &got2, &gotLink)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectLinkType retrieves a link type by name
func (h *LinksDBHandler) SelectLinkType(ctx context.Context, name string) (*model.LinkType, error) {
	linkType := &model.LinkType{}
	var category string
	err := h.db.Instance.QueryRowContext(ctx,
		`SELECT * FROM select_link_type($1)`,
		name,
	).Scan(&linkType.ID, &linkType.Name, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select link type", fmt.Errorf("%w: link type %s", ErrNotFound, name))
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}
	linkType.Category = model.LinkCategory(category)

	return linkType, nil
}

// LinkTypeID returns the id of a semantic link type.
// Unknown and lexical link types are rejected.
func (h *LinksDBHandler) LinkTypeID(ctx context.Context, name string) (int64, error) {
	linkType, err := h.SelectLinkType(ctx, name)
	if err != nil {
		return 0, err
	}
	if !linkType.IsSemantic() {
		return 0, helper.NewError("link type id", fmt.Errorf("cannot search for %s links: lexical link type", name))
	}

	return linkType.ID, nil
}

// NeighborIDs returns every synset linked to synsetID, following links in both directions
func (h *LinksDBHandler) NeighborIDs(ctx context.Context, synsetID int64) (model.Set[int64], error) {
	rows, err := h.db.Instance.QueryContext(ctx,
		`SELECT * FROM select_neighbor_ids($1)`,
		synsetID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	neighbors := model.NewSet[int64]()
	for rows.Next() {
		var id int64
		err := rows.Scan(&id)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		neighbors.Add(id)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return neighbors, nil
}

// SelectLinks retrieves every semantic link of a type
func (h *LinksDBHandler) SelectLinks(ctx context.Context, name string) ([]*model.SemanticLink, error) {
	if _, err := h.LinkTypeID(ctx, name); err != nil {
		return nil, err
	}

	rows, err := h.db.Instance.QueryContext(ctx,
		`SELECT * FROM select_links_by_type($1)`,
		name,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var links []*model.SemanticLink
	for rows.Next() {
		link := &model.SemanticLink{}
		err := rows.Scan(&link.Synset1ID, &link.Synset2ID, &link.LinkType)
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
