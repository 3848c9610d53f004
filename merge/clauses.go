package merge

import (
	"regexp"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// NegotiatedClause is one section-tagged override parsed from the
// negotiated clauses input.
type NegotiatedClause struct {
	Number  string // section number from the tag, if present
	Heading string // heading text from the tag, if present
	Text    string
}

var clauseTagRe = regexp.MustCompile(`(?i)^(?:clause|section|article|rider clause)?\s*(\d+(?:\.\d+)*)?\s*[.):\-]?\s*(.*)$`)

// ParseNegotiated splits the negotiated clauses input into tagged
// blocks. Blocks are separated by blank lines; a block's first line is
// its section tag when it names a clause number or a short heading.
func ParseNegotiated(text string) []NegotiatedClause {
	var clauses []NegotiatedClause

	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.SplitN(block, "\n", 2)
		first := strings.TrimSpace(lines[0])
		rest := ""
		if len(lines) > 1 {
			rest = strings.TrimSpace(lines[1])
		}

		number, heading := parseTag(first)
		if number == "" && heading == "" {
			// Untagged block: the whole block is clause text.
			clauses = append(clauses, NegotiatedClause{Text: block})
			continue
		}
		if rest == "" {
			// Tag and text share one line ("Clause 4: NOR valid by email").
			rest = heading
			heading = ""
		}
		clauses = append(clauses, NegotiatedClause{Number: number, Heading: heading, Text: rest})
	}

	return clauses
}

// parseTag interprets a block's first line as a section tag. Returns
// empty values when the line reads like clause text instead.
func parseTag(line string) (number, heading string) {
	m := clauseTagRe.FindStringSubmatch(line)
	if m == nil {
		return "", ""
	}
	number = m[1]
	heading = strings.TrimSpace(m[2])
	if number == "" {
		// No number: only a short title line counts as a tag.
		if len(heading) > 60 || strings.Contains(heading, ".") {
			return "", ""
		}
		lower := strings.ToLower(line)
		if !strings.HasPrefix(lower, "clause") && !strings.HasPrefix(lower, "section") &&
			!strings.HasPrefix(lower, "article") && !strings.HasPrefix(lower, "rider") {
			return "", ""
		}
	}
	return number, heading
}

// stopwords excluded from keyword overlap matching.
var stopwords = map[string]bool{
	"the": true, "and": true, "of": true, "to": true, "in": true,
	"for": true, "a": true, "an": true, "or": true, "on": true,
	"at": true, "by": true, "with": true, "shall": true, "be": true,
}

// CarryForwardIDs preserves section identity across re-merges: a
// freshly parsed section that matches a previous revision's section by
// number, else by normalized heading, keeps that section's ID. Each
// previous section is consumed at most once. Returns the renames applied
// (fresh ID to carried ID) so callers can fix references.
func CarryForwardIDs(prev, next []model.Section) map[string]string {
	renames := make(map[string]string)
	used := make(map[string]bool)
	for i := range next {
		id := matchPrevSection(prev, next[i], used)
		if id == "" || id == next[i].SectionID {
			continue
		}
		renames[next[i].SectionID] = id
		next[i].SectionID = id
		used[id] = true
	}
	return renames
}

func matchPrevSection(prev []model.Section, sec model.Section, used map[string]bool) string {
	if sec.Number != "" {
		for _, p := range prev {
			if !used[p.SectionID] && p.Number == sec.Number {
				return p.SectionID
			}
		}
	}
	want := normalizeHeading(sec.Heading)
	if want == "" {
		return ""
	}
	for _, p := range prev {
		if !used[p.SectionID] && normalizeHeading(p.Heading) == want {
			return p.SectionID
		}
	}
	return ""
}

// MatchSection locates the base section a negotiated clause overrides.
// The rule is deterministic: (1) section number equality, then (2)
// normalized heading equality, then (3) significant-keyword overlap with
// a heading. Returns -1 when nothing matches.
func MatchSection(sections []model.Section, clause NegotiatedClause) int {
	if clause.Number != "" {
		for i, s := range sections {
			if s.Number == clause.Number {
				return i
			}
		}
	}

	if clause.Heading != "" {
		want := normalizeHeading(clause.Heading)
		for i, s := range sections {
			if normalizeHeading(s.Heading) == want {
				return i
			}
		}

		wantTokens := significantTokens(clause.Heading)
		for i, s := range sections {
			if overlaps(significantTokens(s.Heading), wantTokens) {
				return i
			}
		}
	}

	return -1
}

func normalizeHeading(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func significantTokens(h string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(normalizeHeading(h)) {
		if !stopwords[tok] && len(tok) > 2 {
			tokens[tok] = true
		}
	}
	return tokens
}

func overlaps(a, b map[string]bool) bool {
	for tok := range a {
		if b[tok] {
			return true
		}
	}
	return false
}
