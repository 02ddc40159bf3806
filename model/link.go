package model

import "fmt"

// LinkCategory separates synset level links from word level links.
type LinkCategory string

const (
	LinkCategorySemantic LinkCategory = "sem"
	LinkCategoryLexical  LinkCategory = "lex"
)

// Common WordNet link type names.
const (
	LinkHypernym = "hypernym"
	LinkHyponym  = "hyponym"
	LinkAction   = "action"
)

// LinkType is a named relation kind.
type LinkType struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Category LinkCategory `json:"category"`
}

// IsSemantic reports whether links of this type connect synsets.
func (l *LinkType) IsSemantic() bool {
	return l.Category != LinkCategoryLexical
}

// SemanticLink is an edge between two synsets.
// Traversal treats it as undirected.
type SemanticLink struct {
	Synset1ID int64  `json:"synset1_id"`
	Synset2ID int64  `json:"synset2_id"`
	LinkType  string `json:"link_type"`
}

// Other returns the endpoint opposite to id, and false if id is not an endpoint.
func (l *SemanticLink) Other(id int64) (int64, bool) {
	switch id {
	case l.Synset1ID:
		return l.Synset2ID, true
	case l.Synset2ID:
		return l.Synset1ID, true
	}
	return 0, false
}

func (l *SemanticLink) String() string {
	return fmt.Sprintf("%d-->%d", l.Synset1ID, l.Synset2ID)
}
