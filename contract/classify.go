package contract

import (
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// Classifier assigns a topic category to a piece of contract text. The
// merge heuristics are pluggable through this interface so they stay
// deterministic and testable.
type Classifier interface {
	Classify(text string) string
}

// KeywordClassifier maps heading text to a category by keyword lookup.
// Unmatched headings default to commercial, the most common group in a
// charter party.
type KeywordClassifier struct {
	legal       []string
	operational []string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		legal: []string{
			"law", "jurisdiction", "arbitration", "dispute",
			"force majeure", "liability", "indemnity", "insurance",
			"termination", "cancellation", "cancelling", "warranty",
			"exception", "exemption", "general average", "lien",
			"bill of lading", "clause paramount",
		},
		operational: []string{
			"notice of readiness", "nor", "bunkering", "bunker",
			"deviation", "sub-charter", "subletting", "sublet", "agency",
			"agent", "port operation", "documentation", "environmental",
			"safety", "ism", "isps", "stowage", "loading equipment",
			"readiness", "stevedore", "towage", "pilotage",
		},
	}
}

func (c *KeywordClassifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range c.legal {
		if containsWord(lower, kw) {
			return model.CategoryLegal
		}
	}
	for _, kw := range c.operational {
		if containsWord(lower, kw) {
			return model.CategoryOperational
		}
	}
	return model.CategoryCommercial
}

// containsWord matches a keyword on word boundaries, so "nor" does not
// match inside "normal".
func containsWord(text, keyword string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
