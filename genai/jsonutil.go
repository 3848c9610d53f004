package genai

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/Ayush-Rawat-9/Charter-Party/model"
)

// Pre-compiled patterns for pulling JSON out of model responses, which
// commonly arrive wrapped in markdown fences or with trailing commas.
var (
	jsonBlockPattern     = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	jsonObjectPattern    = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON extracts a JSON object from a model response string.
func ExtractJSON(content string) string {
	raw := ""
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else if match := jsonObjectPattern.FindString(content); match != "" {
		raw = match
	}
	if raw == "" {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}

// GenerateJSON runs one generation request and unmarshals the JSON object
// in the response into out. Empty or schema-invalid output is a
// GenerationError naming the operation, identical to a hard failure.
func GenerateJSON(ctx context.Context, gen Generator, req Request, out any) error {
	content, err := gen.Generate(ctx, req)
	if err != nil {
		return &model.GenerationError{Operation: req.Operation, Err: err}
	}

	raw := ExtractJSON(content)
	if raw == "" {
		return &model.GenerationError{
			Operation: req.Operation,
			Err:       errNoJSON,
		}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &model.GenerationError{Operation: req.Operation, Err: err}
	}
	return nil
}

var errNoJSON = jsonError("no JSON object in generation output")

type jsonError string

func (e jsonError) Error() string { return string(e) }
