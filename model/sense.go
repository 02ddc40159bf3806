package model

import (
	"strconv"
	"strings"
)

// POS is the part-of-speech tag of a synset.
type POS string

const (
	POSNoun               POS = "n"
	POSVerb               POS = "v"
	POSAdjective          POS = "a"
	POSAdjectiveSatellite POS = "s"
	POSUnknown            POS = "?"
)

// ParsePOS validates a synset part-of-speech tag.
func ParsePOS(tag string) (POS, bool) {
	switch POS(tag) {
	case POSNoun, POSVerb, POSAdjective, POSAdjectiveSatellite:
		return POS(tag), true
	}
	return POSUnknown, false
}

// POSFromSenseKey derives the part of speech from the ss_type digit after '%'.
func POSFromSenseKey(senseKey string) POS {
	_, rest, ok := strings.Cut(senseKey, "%")
	if !ok || rest == "" {
		return POSUnknown
	}
	n, err := strconv.Atoi(rest[:1])
	if err != nil {
		return POSUnknown
	}
	switch n {
	case 1:
		return POSNoun
	case 2:
		return POSVerb
	case 3:
		return POSAdjective
	case 5:
		return POSAdjectiveSatellite
	}
	return POSUnknown
}

// LemmaFromSenseKey returns the lemma part of a sense key.
func LemmaFromSenseKey(senseKey string) string {
	lemma, _, _ := strings.Cut(senseKey, "%")
	return lemma
}

// Sense is a synset, a node of the relation graph.
type Sense struct {
	ID        int64    `json:"id"`
	POS       POS      `json:"pos"`
	Lemmas    []string `json:"lemmas"`
	Gloss     string   `json:"gloss,omitempty"`
	SenseKeys []string `json:"sense_keys"`
}

// NewSense builds a sense from its sense keys, deriving lemmas and part of speech.
func NewSense(id int64, senseKeys []string, gloss string) *Sense {
	lemmas := make([]string, len(senseKeys))
	for i, key := range senseKeys {
		lemmas[i] = LemmaFromSenseKey(key)
	}

	pos := POSUnknown
	if len(senseKeys) > 0 {
		pos = POSFromSenseKey(senseKeys[0])
	}

	return &Sense{
		ID:        id,
		POS:       pos,
		Lemmas:    lemmas,
		Gloss:     gloss,
		SenseKeys: senseKeys,
	}
}

// IsIn reports whether any lemma of the sense is held by words.
func (s *Sense) IsIn(words WordContainer) bool {
	for _, lemma := range s.Lemmas {
		if words.Has(lemma) {
			return true
		}
	}
	return false
}

// WordsIn returns the lemmas of the sense that words holds.
func (s *Sense) WordsIn(words WordContainer) []string {
	var in []string
	for _, lemma := range s.Lemmas {
		if words.Has(lemma) {
			in = append(in, lemma)
		}
	}
	return in
}

func (s *Sense) String() string {
	return strings.Join(s.SenseKeys, ",")
}
