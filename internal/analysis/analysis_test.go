// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gutenshelf/internal/analysis"
	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
)

const validOutput = `{
  "keyCharacters": ["Victor Frankenstein", "The Creature", "Robert Walton"],
  "detectedLanguage": "English",
  "sentiment": "Negative",
  "sentimentReasoning": "Isolation and revenge dominate.",
  "plotSummary": "A scientist creates life and is destroyed by it."
}`

type fakeModel struct {
	output string
	err    error
	calls  int
	system string
	prompt string
}

func (model *fakeModel) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	model.calls++
	model.system = systemPrompt
	model.prompt = userPrompt
	return model.output, model.err
}

/*
TestParse covers fences, surrounding prose, missing fields and wrong types.
*/
func TestParse(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		result, err := analysis.Parse(validOutput)
		require.NoError(t, err)
		assert.Equal(t, "English", result.DetectedLanguage)
		assert.Len(t, result.KeyCharacters, 3)
	})

	t.Run("fenced", func(t *testing.T) {
		result, err := analysis.Parse("```json\n" + validOutput + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Negative", result.Sentiment)
	})

	t.Run("empty_values_are_allowed", func(t *testing.T) {
		result, err := analysis.Parse(`{"keyCharacters":[],"detectedLanguage":"","sentiment":"","sentimentReasoning":"","plotSummary":""}`)
		require.NoError(t, err)
		assert.Empty(t, result.KeyCharacters)
	})

	t.Run("missing_field", func(t *testing.T) {
		_, err := analysis.Parse(`{"keyCharacters":["A"],"detectedLanguage":"English","sentiment":"Neutral","sentimentReasoning":"-"}`)
		require.Error(t, err)
		assert.ErrorIs(t, err, analysis.ErrMissingField)
		assert.Contains(t, err.Error(), "plotSummary")
	})

	t.Run("null_field", func(t *testing.T) {
		_, err := analysis.Parse(`{"keyCharacters":null,"detectedLanguage":"English","sentiment":"Neutral","sentimentReasoning":"-","plotSummary":"-"}`)
		assert.ErrorIs(t, err, analysis.ErrMissingField)
	})

	t.Run("null_character", func(t *testing.T) {
		_, err := analysis.Parse(`{"keyCharacters":["Victor",null],"detectedLanguage":"English","sentiment":"Neutral","sentimentReasoning":"-","plotSummary":"-"}`)
		assert.ErrorIs(t, err, analysis.ErrMissingField)
		assert.Contains(t, err.Error(), "keyCharacters")
	})

	t.Run("non_string_character", func(t *testing.T) {
		_, err := analysis.Parse(`{"keyCharacters":["Victor",7],"detectedLanguage":"English","sentiment":"Neutral","sentimentReasoning":"-","plotSummary":"-"}`)
		assert.Error(t, err)
	})

	t.Run("wrong_type", func(t *testing.T) {
		_, err := analysis.Parse(`{"keyCharacters":"Victor","detectedLanguage":"English","sentiment":"Neutral","sentimentReasoning":"-","plotSummary":"-"}`)
		assert.Error(t, err)
	})

	t.Run("not_json", func(t *testing.T) {
		_, err := analysis.Parse("I cannot analyze this book.")
		assert.Error(t, err)
	})
}

/*
TestSample verifies rune-based truncation.
*/
func TestSample(t *testing.T) {
	assert.Equal(t, "abc", analysis.Sample("abcdef", 3))
	assert.Equal(t, "Æsó", analysis.Sample("Æsóp", 3))
	assert.Equal(t, "short", analysis.Sample("short", 10))
	assert.Equal(t, "", analysis.Sample("anything", 0))
}

/*
TestGenerator_Analyze verifies prompt rendering and result mapping.
*/
func TestGenerator_Analyze(t *testing.T) {
	model := &fakeModel{output: validOutput}
	generator, err := analysis.NewGenerator(model, 5)
	require.NoError(t, err)

	result, err := generator.Analyze(context.Background(), "Hello world, this is long")
	require.NoError(t, err)

	assert.Equal(t, 1, model.calls)
	assert.Contains(t, model.prompt, "Book Text Sample:\nHello\n")
	assert.NotContains(t, model.prompt, "world")
	assert.NotEmpty(t, model.system)
	assert.Equal(t, "Victor Frankenstein", result.KeyCharacters[0])
}

/*
TestGenerator_DefaultSample verifies the default sample size.
*/
func TestGenerator_DefaultSample(t *testing.T) {
	generator, err := analysis.NewGenerator(&fakeModel{}, 0)
	require.NoError(t, err)

	prompt, err := generator.Prompt(strings.Repeat("§", 12000))
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultSampleChars, strings.Count(prompt, "§"))
}

/*
TestGenerator_Analyze_Errors verifies error classification.
*/
func TestGenerator_Analyze_Errors(t *testing.T) {
	t.Run("model_unreachable", func(t *testing.T) {
		generator, err := analysis.NewGenerator(&fakeModel{err: errors.New("dial tcp: refused")}, 100)
		require.NoError(t, err)

		_, err = generator.Analyze(context.Background(), "text")
		assert.True(t, apperr.HasCode(err, apperr.CodeUpstreamFetch))
	})

	t.Run("bad_output", func(t *testing.T) {
		generator, err := analysis.NewGenerator(&fakeModel{output: `{"sentiment":"Positive"}`}, 100)
		require.NoError(t, err)

		_, err = generator.Analyze(context.Background(), "text")
		assert.True(t, apperr.HasCode(err, apperr.CodeAnalysisFormat))
	})
}
