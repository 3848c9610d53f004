package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/service"
	"github.com/gin-gonic/gin"
)

func postUpload(router *gin.Engine, path string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "recap.txt")
	part.Write([]byte("Vessel: MV PACIFIC"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Uploads land under the session's object prefix, so a caller must not
// be able to write into a session it does not own.
func TestUploadExtractRequiresOwnSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := service.NewSessionStore(&config.StoreConfig{MaxSessions: 10})
	pipeline := service.NewPipeline(store, &genai.Stub{})
	h := NewExportHandler(pipeline, store, nil, nil, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant", "test-tenant")
		c.Next()
	})
	router.POST("/sessions/:id/upload", h.UploadExtract)

	if w := postUpload(router, "/sessions/no-such-session/upload"); w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want 404", w.Code)
	}

	foreign := store.Create("other-tenant")
	if w := postUpload(router, "/sessions/"+foreign.ID+"/upload"); w.Code != http.StatusNotFound {
		t.Errorf("foreign session: status = %d, want 404", w.Code)
	}
}

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		filename string
		data     []byte
		want     string
	}{
		{"recap.pdf", []byte("%PDF-1.7"), "application/pdf"},
		{"contract.docx", []byte{0x50, 0x4b}, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"recap.txt", []byte("Vessel: MV PACIFIC"), "text/plain"},
		{"base.html", []byte("<html>"), "text/html"},
		{"noext", []byte("Plain text fixture recap here"), "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		if got := detectMediaType(tt.filename, tt.data); got != tt.want {
			t.Errorf("detectMediaType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
