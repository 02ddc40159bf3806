package model

import "strings"

// SenseFilterNone matches no sense key, used for unknown coarse POS labels.
const SenseFilterNone = "NONE"

var coarsePOSFilters = map[string]string{
	"NOUN": "%1:",
	"VERB": "%2:",
	"ADJ":  "%3:",
	"ADV":  "%4:",
}

// SenseFilterForPOS maps a coarse POS label to the sense key fragment it selects.
func SenseFilterForPOS(label string) string {
	if filter, ok := coarsePOSFilters[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return filter
	}
	return SenseFilterNone
}

// TestCase is one disambiguation problem.
type TestCase struct {
	Context     []string `json:"context"`
	Target      string   `json:"target"`
	Correct     []string `json:"correct"`
	Options     []string `json:"options,omitempty"`
	SenseFilter string   `json:"sense_filter"`
}

// CorrectSet returns the ground truth sense keys as a set.
func (c *TestCase) CorrectSet() Set[string] {
	return NewSet(c.Correct...)
}

// MatchesFilter reports whether a sense key belongs to the case's part of speech.
func (c *TestCase) MatchesFilter(senseKey string) bool {
	return strings.Contains(senseKey, c.SenseFilter)
}

// Evaluable reports whether the options share a key with the correct set
// and contain at least one distractor.
func (c *TestCase) Evaluable() bool {
	correct := c.CorrectSet()
	options := NewSet(c.Options...)
	return correct.Overlaps(options) && options.Difference(correct).Len() > 0
}
