// Package render exports contract HTML to print-ready artifacts through
// an external rendering service.
package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// Supported export formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// ContentType returns the media type for an export format, or "" if the
// format is unknown.
func ContentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return ""
}

const maxArtifactSize = 50 << 20

type Renderer struct {
	cfg        *config.RenderConfig
	httpClient *http.Client
}

func NewRenderer(cfg *config.RenderConfig) *Renderer {
	return &Renderer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Render converts contract HTML to the requested format and returns the
// artifact bytes. The HTML is wrapped in the canonical print document
// before being sent.
func (r *Renderer) Render(ctx context.Context, contractHTML, format string) ([]byte, error) {
	if ContentType(format) == "" {
		return nil, &model.RenderError{Format: format, Err: fmt.Errorf("unknown format")}
	}

	printable := BuildPrintableHTML(contractHTML)
	url := fmt.Sprintf("%s/render/%s", r.cfg.APIURL, format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(printable))
	if err != nil {
		return nil, &model.RenderError{Format: format, Err: err}
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.Header.Set("Accept", ContentType(format))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &model.RenderError{Format: format, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactSize))
	if err != nil {
		return nil, &model.RenderError{Format: format, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.RenderError{
			Format: format,
			Err:    fmt.Errorf("render service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}
	if len(body) == 0 {
		return nil, &model.RenderError{Format: format, Err: fmt.Errorf("render service returned empty artifact")}
	}
	return body, nil
}

// printStyles is the canonical print stylesheet: A4 with 25mm margins,
// serif 12pt body, plus the redline change treatments.
const printStyles = `@page { size: A4; margin: 25mm; }
body {
  font-family: "Times New Roman", Georgia, serif;
  font-size: 12pt;
  line-height: 1.6;
  color: #1f2937;
}
h1, h2, h3, h4, h5, h6 { color: #0f172a; margin: 0 0 8pt 0; }
h1 { font-size: 20pt; }
h2 { font-size: 16pt; }
h3 { font-size: 14pt; }
p { margin: 0 0 10pt 0; }
ul, ol { margin: 0 0 10pt 24pt; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #cbd5e1; padding: 6pt; }
.rl-added { background: #dcfce7; text-decoration: underline; }
.rl-removed { background: #fee2e2; text-decoration: line-through; }
.rl-modified { background: #fef9c3; }`

// BuildPrintableHTML wraps contract HTML in a standalone print document.
func BuildPrintableHTML(contractHTML string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n<style>\n")
	b.WriteString(printStyles)
	b.WriteString("\n</style>\n</head>\n<body>")
	b.WriteString(contractHTML)
	b.WriteString("</body>\n</html>")
	return b.String()
}
