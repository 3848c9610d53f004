// Package normalize converts heterogeneous contract input (plain text,
// HTML fragments, extracted document text) into a canonical text form
// safe for structural parsing. Purely syntactic; no semantic judgment.
package normalize

import (
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	xhtml "golang.org/x/net/html"
)

// Pre-compiled regexes; runtime compilation in the hot path invites ReDoS.
var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe            = regexp.MustCompile(`<[^>]*>`)
	excessiveLinesRe = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe  = regexp.MustCompile(`[ \t]+\n`)
	multiSpaceRe     = regexp.MustCompile(`[ \t]{2,}`)
	entitySpaceRe    = regexp.MustCompile(`(&nbsp;|&ensp;|&emsp;|&thinsp;)`)
	mdHeadingRe      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEscapeRe       = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!>~|])")
	mdEmphasisRe     = regexp.MustCompile(`(\*\*|__)([^*_]+)(\*\*|__)|\*([^*\n]+)\*`)
	looksLikeHTMLRe  = regexp.MustCompile(`(?i)<\s*(p|div|h[1-6]|br|span|table|ul|ol|li|section|article|body|html|script|style)\b`)
)

// Normalizer canonicalizes input text for the merge pipeline.
type Normalizer struct {
	converter *md.Converter
}

func New() *Normalizer {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Normalizer{converter: converter}
}

// Normalize returns the canonical text form of the input. HTML fragments
// are converted through markdown; plain and extracted text get whitespace
// and entity cleanup. Malformed HTML never fails the pipeline: the
// fallback strips tags and keeps the visible text.
func (n *Normalizer) Normalize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if looksLikeHTMLRe.MatchString(input) {
		return n.normalizeHTML(input)
	}
	return normalizeText(input)
}

func (n *Normalizer) normalizeHTML(input string) string {
	cleaned := scriptRe.ReplaceAllString(input, "")
	cleaned = styleRe.ReplaceAllString(cleaned, "")

	converted, err := n.converter.ConvertString(cleaned)
	if err != nil || strings.TrimSpace(converted) == "" {
		// Tolerate malformed markup: walk whatever DOM the parser can
		// recover and keep the visible text.
		converted = domText(cleaned)
	}

	// Markdown heading markers become plain heading lines so downstream
	// parsing sees one consistent style.
	converted = mdHeadingRe.ReplaceAllString(converted, "")
	// The converter escapes punctuation that means something in markdown
	// ("1." becomes "1\."); structural parsing needs the literal text
	// back. Emphasis markers around headings are noise here too.
	converted = mdEscapeRe.ReplaceAllString(converted, "$1")
	converted = mdEmphasisRe.ReplaceAllString(converted, "$2$4")
	return normalizeText(converted)
}

// domText extracts text nodes from markup too broken for conversion.
// html.Parse repairs what it can; anything unparseable falls back to a
// plain tag strip.
func domText(input string) string {
	root, err := xhtml.Parse(strings.NewReader(input))
	if err != nil {
		return tagRe.ReplaceAllString(input, " ")
	}

	var b strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == xhtml.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == xhtml.ElementNode {
			switch n.Data {
			case "p", "div", "section", "article", "br", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr":
				b.WriteString("\n")
			}
		}
	}
	walk(root)
	return b.String()
}

func normalizeText(input string) string {
	out := strings.ReplaceAll(input, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = entitySpaceRe.ReplaceAllString(out, " ")
	out = html.UnescapeString(out)
	out = trailingSpaceRe.ReplaceAllString(out, "\n")
	out = multiSpaceRe.ReplaceAllString(out, " ")
	out = excessiveLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
