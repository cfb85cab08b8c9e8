// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gutenberg_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gutenshelf/internal/gutenberg"
	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
)

const frankensteinText = "\ufeff  The Project Gutenberg eBook of Frankenstein\r\n" +
	"*** START OF THE PROJECT GUTENBERG EBOOK FRANKENSTEIN ***\n" +
	"Letter 1\nYou will rejoice to hear\n" +
	"*** END OF THE PROJECT GUTENBERG EBOOK FRANKENSTEIN ***\n" +
	"license text\n"

const frankensteinCatalog = `{
  "count": 1,
  "results": [{
    "id": 84,
    "title": "Frankenstein; Or, The Modern Prometheus",
    "authors": [{"name": "Shelley, Mary Wollstonecraft", "birth_year": 1797, "death_year": 1851}],
    "languages": ["en"],
    "download_count": 104413
  }]
}`

func newUpstream(t *testing.T, mux *http.ServeMux) *gutenberg.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return gutenberg.NewClient(server.URL+"/", server.URL, 5*time.Second)
}

/*
TestClient_URLs verifies the upstream URL shapes.
*/
func TestClient_URLs(t *testing.T) {
	client := gutenberg.NewClient("https://www.gutenberg.org", "https://gutendex.com/", time.Second)

	assert.Equal(t, "https://www.gutenberg.org/files/84/84-0.txt", client.ContentURL(84))
	assert.Equal(t, "https://gutendex.com/books?ids=84", client.MetadataURL(84))
}

/*
TestClient_FetchContent verifies BOM removal, trimming and cleaning.
*/
func TestClient_FetchContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/84/84-0.txt", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(frankensteinText))
	})
	client := newUpstream(t, mux)

	text, err := client.FetchContent(context.Background(), 84)
	require.NoError(t, err)
	assert.Equal(t, "Letter 1\nYou will rejoice to hear", text)
}

/*
TestClient_FetchContent_NotFound verifies that non-2xx responses are upstream errors.
*/
func TestClient_FetchContent_NotFound(t *testing.T) {
	client := newUpstream(t, http.NewServeMux())

	_, err := client.FetchContent(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstreamFetch))
}

/*
TestClient_FetchMetadata covers the first-result mapping and empty catalogs.
*/
func TestClient_FetchMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/books", func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Query().Get("ids") {
		case "84":
			_, _ = writer.Write([]byte(frankensteinCatalog))
		case "85":
			_, _ = writer.Write([]byte(`{"count":1,"results":[{"id":85,"authors":[{"birth_year":1800},{"name":"Anon"}]}]}`))
		case "500":
			writer.WriteHeader(http.StatusBadGateway)
		case "501":
			_, _ = writer.Write([]byte(`<html>`))
		default:
			_, _ = writer.Write([]byte(`{"count":0,"results":[]}`))
		}
	})
	client := newUpstream(t, mux)

	t.Run("first_result", func(t *testing.T) {
		metadata, err := client.FetchMetadata(context.Background(), 84)
		require.NoError(t, err)
		assert.Equal(t, "Frankenstein; Or, The Modern Prometheus", metadata.Title)
		assert.Equal(t, []string{"Shelley, Mary Wollstonecraft"}, metadata.Authors)
		assert.EqualValues(t, 84, metadata.Raw["id"])
		assert.Equal(t, []any{"en"}, metadata.Raw["languages"])
	})

	t.Run("missing_fields", func(t *testing.T) {
		metadata, err := client.FetchMetadata(context.Background(), 85)
		require.NoError(t, err)
		assert.Equal(t, "", metadata.Title)
		assert.Equal(t, []string{"Anon"}, metadata.Authors)
	})

	t.Run("no_results", func(t *testing.T) {
		metadata, err := client.FetchMetadata(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "", metadata.Title)
		assert.Empty(t, metadata.Authors)
		assert.NotNil(t, metadata.Authors)
		assert.Empty(t, metadata.Raw)
		assert.NotNil(t, metadata.Raw)
	})

	t.Run("bad_status", func(t *testing.T) {
		_, err := client.FetchMetadata(context.Background(), 500)
		assert.True(t, apperr.HasCode(err, apperr.CodeUpstreamFetch))
	})

	t.Run("bad_json", func(t *testing.T) {
		_, err := client.FetchMetadata(context.Background(), 501)
		assert.True(t, apperr.HasCode(err, apperr.CodeUpstreamFetch))
	})
}

/*
TestClient_FetchMetadata_UnexpectedShapes checks that any valid JSON body
without a usable first result yields empty metadata instead of an error.
*/
func TestClient_FetchMetadata_UnexpectedShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "results_object", body: `{"results":{"count":0}}`},
		{name: "results_scalar_entry", body: `{"results":[1]}`},
		{name: "results_null_entry", body: `{"results":[null]}`},
		{name: "top_level_array", body: `[]`},
		{name: "top_level_string", body: `"nothing"`},
		{name: "results_null", body: `{"results":null}`},
		{name: "results_missing", body: `{"count":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/books", func(writer http.ResponseWriter, _ *http.Request) {
				_, _ = writer.Write([]byte(tt.body))
			})
			client := newUpstream(t, mux)

			metadata, err := client.FetchMetadata(context.Background(), 84)
			require.NoError(t, err)
			assert.Equal(t, "", metadata.Title)
			assert.Equal(t, []string{}, metadata.Authors)
			assert.Equal(t, map[string]any{}, metadata.Raw)
		})
	}
}
