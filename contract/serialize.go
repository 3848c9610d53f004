package contract

import (
	"html"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// ToHTML serializes a document's sections to the structured HTML form
// used for preview, export, and redlining. Section IDs ride along as
// data attributes so client surfaces can address sections.
func ToHTML(doc *model.Document) string {
	var b strings.Builder
	b.WriteString("<article class=\"charter-party\">\n")
	for _, s := range doc.Sections {
		b.WriteString("<section data-section-id=\"")
		b.WriteString(s.SectionID)
		b.WriteString("\">\n<h2>")
		if s.Number != "" {
			b.WriteString(html.EscapeString(s.Number))
			b.WriteString(". ")
		}
		b.WriteString(html.EscapeString(s.Heading))
		b.WriteString("</h2>\n")
		for _, para := range strings.Split(s.Body, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			b.WriteString("<p>")
			b.WriteString(html.EscapeString(para))
			b.WriteString("</p>\n")
		}
		b.WriteString("</section>\n")
	}
	b.WriteString("</article>")
	return b.String()
}
