// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package analysis produces a structured literary analysis of a book.

A fixed-size sample from the start of the text is rendered into an embedded
prompt, sent to a language model in one shot, and the reply is validated
against [Result]. Nothing here touches storage.
*/
package analysis

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
	"github.com/taibuivan/gutenshelf/internal/platform/ctxutil"
	"github.com/taibuivan/gutenshelf/pkg/ai"
)

// DefaultSampleChars is how many characters of a book the model sees.
const DefaultSampleChars = 10000

//go:embed prompt.yaml
var promptFile []byte

// promptDefinition is the shape of prompt.yaml.
type promptDefinition struct {
	Name    string `yaml:"name"`
	Version int    `yaml:"version"`
	System  string `yaml:"system"`
	User    string `yaml:"user"`
}

type promptData struct {
	Sample string
}

// Generator runs the analysis prompt against a [ai.TextGenerator].
type Generator struct {
	model       ai.TextGenerator
	system      string
	user        *template.Template
	sampleChars int
}

// NewGenerator parses the embedded prompt. sampleChars <= 0 selects [DefaultSampleChars].
func NewGenerator(model ai.TextGenerator, sampleChars int) (*Generator, error) {
	var definition promptDefinition
	if err := yaml.Unmarshal(promptFile, &definition); err != nil {
		return nil, fmt.Errorf("analysis: parse prompt: %w", err)
	}
	if definition.User == "" {
		return nil, fmt.Errorf("analysis: prompt %q has no user template", definition.Name)
	}

	userTemplate, err := template.New(definition.Name).Option("missingkey=error").Parse(definition.User)
	if err != nil {
		return nil, fmt.Errorf("analysis: compile prompt: %w", err)
	}

	if sampleChars <= 0 {
		sampleChars = DefaultSampleChars
	}

	return &Generator{
		model:       model,
		system:      definition.System,
		user:        userTemplate,
		sampleChars: sampleChars,
	}, nil
}

// Prompt renders the user prompt for a book's content.
func (generator *Generator) Prompt(content string) (string, error) {
	var buffer bytes.Buffer
	if err := generator.user.Execute(&buffer, promptData{Sample: Sample(content, generator.sampleChars)}); err != nil {
		return "", fmt.Errorf("analysis: render prompt: %w", err)
	}
	return buffer.String(), nil
}

/*
Analyze asks the model for an analysis of content.

Errors:
  - [apperr.CodeUpstreamFetch] when the model cannot be reached or fails.
  - [apperr.CodeAnalysisFormat] when the reply does not match [Result].
*/
func (generator *Generator) Analyze(ctx context.Context, content string) (Result, error) {
	logger := ctxutil.GetLogger(ctx)

	prompt, err := generator.Prompt(content)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}

	startTime := time.Now()
	output, err := generator.model.GenerateText(ctx, generator.system, prompt)
	if err != nil {
		return Result{}, apperr.UpstreamFetch("Failed to analyze book", err)
	}

	result, err := Parse(output)
	if err != nil {
		logger.WarnContext(ctx, "analysis_output_rejected",
			slog.String("error", err.Error()),
			slog.Int("output_len", len(output)),
		)
		return Result{}, apperr.AnalysisFormat(err)
	}

	logger.InfoContext(ctx, "analysis_generated",
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		slog.Int("key_characters", len(result.KeyCharacters)),
	)

	return result, nil
}

// Sample returns the first n characters (runes) of content.
func Sample(content string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for index := range content {
		if count == n {
			return content[:index]
		}
		count++
	}
	return content
}
