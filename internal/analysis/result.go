// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Result is the structured literary analysis cached on a book.
type Result struct {
	KeyCharacters      []string `json:"keyCharacters"`
	DetectedLanguage   string   `json:"detectedLanguage"`
	Sentiment          string   `json:"sentiment"`
	SentimentReasoning string   `json:"sentimentReasoning"`
	PlotSummary        string   `json:"plotSummary"`
}

// ErrMissingField is returned by [Parse] when a required key is absent or null.
var ErrMissingField = errors.New("analysis: missing required field")

// wireResult distinguishes absent keys from zero values.
type wireResult struct {
	KeyCharacters      *[]*string `json:"keyCharacters"`
	DetectedLanguage   *string    `json:"detectedLanguage"`
	Sentiment          *string    `json:"sentiment"`
	SentimentReasoning *string    `json:"sentimentReasoning"`
	PlotSummary        *string    `json:"plotSummary"`
}

/*
Parse turns raw model output into a [Result].

Code fences and any prose around the outermost JSON object are ignored. All five
fields must be present with the right JSON types, and keyCharacters may not
contain null entries.
*/
func Parse(output string) (Result, error) {
	body := extractObject(output)
	if body == "" {
		return Result{}, fmt.Errorf("analysis: no JSON object in model output")
	}

	var wire wireResult
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return Result{}, fmt.Errorf("analysis: decode model output: %w", err)
	}

	missing := make([]string, 0, 5)
	if wire.KeyCharacters == nil || slices.Contains(*wire.KeyCharacters, nil) {
		missing = append(missing, "keyCharacters")
	}
	if wire.DetectedLanguage == nil {
		missing = append(missing, "detectedLanguage")
	}
	if wire.Sentiment == nil {
		missing = append(missing, "sentiment")
	}
	if wire.SentimentReasoning == nil {
		missing = append(missing, "sentimentReasoning")
	}
	if wire.PlotSummary == nil {
		missing = append(missing, "plotSummary")
	}
	if len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	characters := make([]string, 0, len(*wire.KeyCharacters))
	for _, name := range *wire.KeyCharacters {
		characters = append(characters, *name)
	}

	return Result{
		KeyCharacters:      characters,
		DetectedLanguage:   *wire.DetectedLanguage,
		Sentiment:          *wire.Sentiment,
		SentimentReasoning: *wire.SentimentReasoning,
		PlotSummary:        *wire.PlotSummary,
	}, nil
}

func extractObject(output string) string {
	text := strings.TrimSpace(output)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
