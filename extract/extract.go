// Package extract turns uploaded contract files into plain text. Text
// formats pass through locally; binary document formats go to an
// external extraction service.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// Media types handled locally without a service round trip.
var textTypes = map[string]bool{
	"text/plain":    true,
	"text/html":     true,
	"text/markdown": true,
}

// Media types forwarded to the extraction service.
var documentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword": true,
}

const maxResultSize = 20 << 20

type Extractor struct {
	cfg        *config.ExtractorConfig
	httpClient *http.Client
}

func NewExtractor(cfg *config.ExtractorConfig) *Extractor {
	return &Extractor{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type extractResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		Text  string `json:"text"`
		Pages int    `json:"pages"`
	} `json:"data"`
}

// Extract converts file bytes to text. The media type may carry
// parameters (charset etc.); only the base type is considered.
func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	base := mediaType
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		base = parsed
	}
	base = strings.ToLower(base)

	switch {
	case textTypes[base]:
		return string(data), nil
	case documentTypes[base]:
		return e.extractRemote(ctx, data, base)
	default:
		return "", &model.ExtractionError{MediaType: base, Unsupported: true}
	}
}

func (e *Extractor) extractRemote(ctx context.Context, data []byte, mediaType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.APIURL+"/extract/text", bytes.NewReader(data))
	if err != nil {
		return "", &model.ExtractionError{MediaType: mediaType, Err: err}
	}
	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("Accept", "application/json")
	if e.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIToken)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", &model.ExtractionError{MediaType: mediaType, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResultSize))
	if err != nil {
		return "", &model.ExtractionError{MediaType: mediaType, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &model.ExtractionError{
			MediaType: mediaType,
			Err:       fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &model.ExtractionError{MediaType: mediaType, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if result.Code != 0 {
		return "", &model.ExtractionError{MediaType: mediaType, Err: fmt.Errorf("extraction service error: %s", result.Message)}
	}
	if strings.TrimSpace(result.Data.Text) == "" {
		return "", &model.ExtractionError{MediaType: mediaType, Err: fmt.Errorf("extraction service returned no text")}
	}
	return result.Data.Text, nil
}
