package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

func newTestExtractor(url string) *Extractor {
	return NewExtractor(&config.ExtractorConfig{APIURL: url, APIToken: "test-token", TimeoutSeconds: 5})
}

func TestExtractPlainTextPassthrough(t *testing.T) {
	ex := newTestExtractor("http://unused.invalid")
	got, err := ex.Extract(context.Background(), []byte("1. VESSEL\nThe vessel MV PACIFIC."), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "1. VESSEL\nThe vessel MV PACIFIC." {
		t.Fatalf("got %q", got)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	ex := newTestExtractor("http://unused.invalid")
	_, err := ex.Extract(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	var xe *model.ExtractionError
	if !errors.As(err, &xe) || !xe.Unsupported {
		t.Fatalf("err = %v, want unsupported ExtractionError", err)
	}
	if xe.MediaType != "image/jpeg" {
		t.Fatalf("media type = %q", xe.MediaType)
	}
}

func TestExtractPDFViaService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract/text" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/pdf" {
			t.Errorf("content type = %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %s", got)
		}
		w.Write([]byte(`{"code":0,"data":{"text":"CHARTER PARTY CONTRACT\n1. Vessel","pages":2}}`))
	}))
	defer srv.Close()

	ex := newTestExtractor(srv.URL)
	got, err := ex.Extract(context.Background(), []byte("%PDF-1.7"), "application/pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "CHARTER PARTY CONTRACT\n1. Vessel" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":1,"msg":"corrupt file"}`))
	}))
	defer srv.Close()

	ex := newTestExtractor(srv.URL)
	_, err := ex.Extract(context.Background(), []byte("%PDF-1.7"), "application/pdf")
	var xe *model.ExtractionError
	if !errors.As(err, &xe) || xe.Unsupported {
		t.Fatalf("err = %v, want non-unsupported ExtractionError", err)
	}
}

func TestExtractServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ex := newTestExtractor(srv.URL)
	if _, err := ex.Extract(context.Background(), []byte("%PDF-1.7"), "application/pdf"); err == nil {
		t.Fatal("want error on 502")
	}
}

func TestExtractEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"text":"  "}}`))
	}))
	defer srv.Close()

	ex := newTestExtractor(srv.URL)
	if _, err := ex.Extract(context.Background(), []byte("%PDF-1.7"), "application/pdf"); err == nil {
		t.Fatal("want error when service returns no text")
	}
}
