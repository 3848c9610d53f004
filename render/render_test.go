package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

func newTestRenderer(url string) *Renderer {
	return NewRenderer(&config.RenderConfig{APIURL: url, TimeoutSeconds: 5})
}

func TestBuildPrintableHTML(t *testing.T) {
	html := BuildPrintableHTML(`<article class="charter-party"><h2>1. Vessel</h2></article>`)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"@page { size: A4; margin: 25mm; }",
		`font-family: "Times New Roman", Georgia, serif;`,
		"font-size: 12pt;",
		".rl-removed { background: #fee2e2; text-decoration: line-through; }",
		"<h2>1. Vessel</h2>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("printable HTML missing %q", want)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	artifact := []byte("%PDF-1.7 fake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/render/pdf" {
			t.Errorf("path = %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, "charter-party") {
			t.Errorf("render request body missing printable wrapper")
		}
		w.Write(artifact)
	}))
	defer srv.Close()

	rd := newTestRenderer(srv.URL)
	got, err := rd.Render(context.Background(), `<article class="charter-party"></article>`, FormatPDF)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(got, artifact) {
		t.Fatalf("artifact = %q", got)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	rd := newTestRenderer("http://unused.invalid")
	_, err := rd.Render(context.Background(), "<article></article>", "odt")
	var re *model.RenderError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RenderError", err)
	}
	if re.Format != "odt" {
		t.Fatalf("format = %q", re.Format)
	}
}

func TestRenderServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "renderer crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	rd := newTestRenderer(srv.URL)
	_, err := rd.Render(context.Background(), "<article></article>", FormatDOCX)
	var re *model.RenderError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RenderError", err)
	}
}

func TestContentType(t *testing.T) {
	if ContentType(FormatPDF) != "application/pdf" {
		t.Error("pdf content type")
	}
	if ContentType(FormatDOCX) == "" || ContentType("csv") != "" {
		t.Error("docx/unknown content type")
	}
}
