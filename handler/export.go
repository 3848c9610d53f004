package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/Ayush-Rawat-9/Charter-Party/extract"
	"github.com/Ayush-Rawat-9/Charter-Party/middleware"
	"github.com/Ayush-Rawat-9/Charter-Party/normalize"
	"github.com/Ayush-Rawat-9/Charter-Party/render"
	"github.com/Ayush-Rawat-9/Charter-Party/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 32 << 20

// ExportHandler renders contract documents to downloadable artifacts and
// turns uploaded files into merge-ready text.
type ExportHandler struct {
	pipeline   *service.Pipeline
	store      *service.SessionStore
	artifacts  *service.ArtifactStore
	renderer   *render.Renderer
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
}

func NewExportHandler(pipeline *service.Pipeline, store *service.SessionStore, artifacts *service.ArtifactStore, renderer *render.Renderer, extractor *extract.Extractor) *ExportHandler {
	return &ExportHandler{
		pipeline:   pipeline,
		store:      store,
		artifacts:  artifacts,
		renderer:   renderer,
		extractor:  extractor,
		normalizer: normalize.New(),
	}
}

// Export renders the current document (or its redline view) to PDF or
// DOCX, stores the artifact, and returns a presigned download URL.
func (h *ExportHandler) Export(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	sessionID := c.Param("id")

	format := c.DefaultQuery("format", render.FormatPDF)
	if render.ContentType(format) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format must be pdf or docx"})
		return
	}
	redlined := c.Query("view") == "redline"

	var contractHTML string
	var revision int
	if redlined {
		report, err := h.pipeline.Redline(tenant, sessionID)
		if err != nil {
			respondError(c, err)
			return
		}
		contractHTML = report.RedlinedContract
		revision = report.Revision
	} else {
		doc, _, err := h.pipeline.Document(tenant, sessionID)
		if err != nil {
			respondError(c, err)
			return
		}
		contractHTML = doc.HTML
		revision = doc.Revision
	}

	artifact, err := h.renderer.Render(c.Request.Context(), contractHTML, format)
	if err != nil {
		respondError(c, err)
		return
	}

	objectName := service.ExportObjectName(sessionID, revision, format, redlined)
	contentType := render.ContentType(format)
	if err := h.artifacts.Upload(c.Request.Context(), objectName, bytes.NewReader(artifact), int64(len(artifact)), contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store artifact"})
		return
	}

	url, err := h.artifacts.PresignedURL(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"format":   format,
		"revision": revision,
		"redline":  redlined,
	})
}

// UploadExtract accepts a contract file upload, stores the source, and
// returns normalized text usable as any merge input.
func (h *ExportHandler) UploadExtract(c *gin.Context) {
	sessionID := c.Param("id")

	// The upload is stored under the session's prefix, so the session
	// must exist and belong to the caller's tenant.
	if h.store.Get(middleware.GetTenant(c), sessionID) == nil {
		respondError(c, service.ErrSessionNotFound)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = detectMediaType(header.Filename, data)
	}

	fileID := uuid.New().String()
	objectName := service.UploadObjectName(sessionID, fileID, header.Filename)
	if err := h.artifacts.Upload(c.Request.Context(), objectName, bytes.NewReader(data), int64(len(data)), mediaType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	text, err := h.extractor.Extract(c.Request.Context(), data, mediaType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_id":    fileID,
		"media_type": mediaType,
		"text":       h.normalizer.Normalize(text),
	})
}

// detectMediaType resolves a usable media type from the filename
// extension, falling back to content sniffing.
func detectMediaType(filename string, data []byte) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(lower, ".txt"), strings.HasSuffix(lower, ".md"):
		return "text/plain"
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return "text/html"
	}
	return http.DetectContentType(data)
}
