package contract

import (
	"regexp"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// acronymRe matches "CP" as a standalone token. The formatting contract
// forbids the acronym in output; it is always spelled out.
var acronymRe = regexp.MustCompile(`\bCP\b`)

// ExpandAcronyms rewrites the forbidden "CP" abbreviation to its full
// form everywhere in the text.
func ExpandAcronyms(text string) string {
	return acronymRe.ReplaceAllString(text, "Charter Party Contract")
}

// Terms holds the canonical defined terms resolved from the fixture
// recap. After merge, every section must refer to these by one spelling.
type Terms struct {
	Vessel    string
	Charterer string
	Owner     string
}

// Apply rewrites alternate references to the canonical terms across all
// sections of the document.
func (t Terms) Apply(doc *model.Document) {
	for i := range doc.Sections {
		doc.Sections[i].Body = t.applyText(doc.Sections[i].Body)
	}
}

func (t Terms) applyText(text string) string {
	if t.Vessel != "" {
		for _, alt := range vesselVariants(t.Vessel) {
			text = replaceInsensitive(text, alt, t.Vessel)
		}
	}
	if t.Charterer != "" {
		text = replaceInsensitive(text, t.Charterer, t.Charterer)
	}
	if t.Owner != "" {
		text = replaceInsensitive(text, t.Owner, t.Owner)
	}
	return text
}

// vesselVariants lists the prefixed spellings a vessel name commonly
// appears under: "MV NAME", "M/V NAME", "M.V. NAME", "MT NAME",
// "M/T NAME". Bare names are left alone since rewriting them would
// also touch prose that merely mentions the word.
func vesselVariants(canonical string) []string {
	bare := canonical
	for _, prefix := range []string{"MV ", "M/V ", "M.V. ", "MT ", "M/T "} {
		bare = strings.TrimPrefix(bare, prefix)
	}
	variants := []string{
		"M/V " + bare,
		"M.V. " + bare,
		"MV " + bare,
		"M/T " + bare,
		"MT " + bare,
	}
	out := variants[:0]
	for _, v := range variants {
		if v != canonical {
			out = append(out, v)
		}
	}
	return out
}

// replaceInsensitive replaces case-insensitive occurrences of old with
// the canonical spelling.
func replaceInsensitive(text, old, canonical string) string {
	if old == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerOld := strings.ToLower(old)

	var b strings.Builder
	for {
		i := strings.Index(lowerText, lowerOld)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(canonical)
		text = text[i+len(old):]
		lowerText = lowerText[i+len(lowerOld):]
	}
}
