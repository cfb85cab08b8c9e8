// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gutenberg fetches public-domain books from Project Gutenberg.

Two upstreams are involved:

  - Content host: serves the plain text at /files/{id}/{id}-0.txt.
  - Catalog (Gutendex): serves bibliographic metadata at /books?ids={id}.

Both are plain HTTP GETs with no retries. Failures surface as
[apperr.CodeUpstreamFetch] errors so the caller can abort before writing.
*/
package gutenberg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
	"github.com/taibuivan/gutenshelf/internal/platform/ctxutil"
	"github.com/taibuivan/gutenshelf/pkg/slice"
)

const (
	// maxContentBytes bounds a single book download.
	maxContentBytes = 64 << 20
	// maxCatalogBytes bounds a catalog response.
	maxCatalogBytes = 4 << 20
)

// # Types

// Metadata is what the catalog knows about a book.
type Metadata struct {
	Title   string
	Authors []string
	// Raw is the catalog entry stored verbatim; empty when the catalog has no entry.
	Raw map[string]any
}

// Client talks to the content host and the catalog.
type Client struct {
	httpClient     *http.Client
	contentBaseURL string
	catalogBaseURL string
}

// NewClient builds a Client. Base URLs carry no trailing slash.
func NewClient(contentBaseURL, catalogBaseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(contentBaseURL, catalogBaseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP builds a Client on top of an existing [http.Client].
func NewClientWithHTTP(contentBaseURL, catalogBaseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient:     httpClient,
		contentBaseURL: strings.TrimRight(contentBaseURL, "/"),
		catalogBaseURL: strings.TrimRight(catalogBaseURL, "/"),
	}
}

// # URLs

// ContentURL returns the plain-text location of a book.
func (client *Client) ContentURL(bookID int) string {
	id := strconv.Itoa(bookID)
	return client.contentBaseURL + "/files/" + id + "/" + id + "-0.txt"
}

// MetadataURL returns the catalog lookup for a book.
func (client *Client) MetadataURL(bookID int) string {
	return client.catalogBaseURL + "/books?ids=" + strconv.Itoa(bookID)
}

// # Fetchers

/*
FetchContent downloads and cleans a book's text.

The body is decoded as UTF-8 (a leading byte order mark is dropped), trimmed,
and passed through [CleanContent].
*/
func (client *Client) FetchContent(ctx context.Context, bookID int) (string, error) {
	url := client.ContentURL(bookID)

	body, err := client.get(ctx, url, "text/plain")
	if err != nil {
		return "", apperr.UpstreamFetch("Failed to fetch book content", err)
	}
	defer body.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	raw, err := io.ReadAll(transform.NewReader(io.LimitReader(body, maxContentBytes), decoder))
	if err != nil {
		return "", apperr.UpstreamFetch("Failed to fetch book content", fmt.Errorf("read %s: %w", url, err))
	}

	text := CleanContent(strings.TrimSpace(string(raw)))

	ctxutil.GetLogger(ctx).DebugContext(ctx, "gutenberg_content_fetched",
		slog.Int("book_id", bookID),
		slog.Int("raw_bytes", len(raw)),
		slog.Int("clean_bytes", len(text)),
	)

	return text, nil
}

/*
FetchMetadata looks a book up in the catalog.

Only the first result is used. Any valid JSON is accepted: when the body has
no results array whose first element is an object, the metadata is empty.
Title defaults to "" and authors to an empty list when the entry lacks them.
*/
func (client *Client) FetchMetadata(ctx context.Context, bookID int) (Metadata, error) {
	url := client.MetadataURL(bookID)

	body, err := client.get(ctx, url, "application/json")
	if err != nil {
		return Metadata{}, apperr.UpstreamFetch("Failed to fetch book metadata", err)
	}
	defer body.Close()

	var payload any
	if err := json.NewDecoder(io.LimitReader(body, maxCatalogBytes)).Decode(&payload); err != nil {
		return Metadata{}, apperr.UpstreamFetch("Failed to fetch book metadata", fmt.Errorf("decode %s: %w", url, err))
	}

	return metadataFromPayload(payload), nil
}

func metadataFromPayload(payload any) Metadata {
	metadata := Metadata{Authors: []string{}, Raw: map[string]any{}}

	document, _ := payload.(map[string]any)
	results, _ := document["results"].([]any)
	if len(results) == 0 {
		return metadata
	}

	entry, ok := results[0].(map[string]any)
	if !ok {
		return metadata
	}
	metadata.Raw = entry

	if title, ok := entry["title"].(string); ok {
		metadata.Title = title
	}

	authors, _ := entry["authors"].([]any)
	metadata.Authors = slice.Collect(authors, func(item any) (string, bool) {
		person, ok := item.(map[string]any)
		if !ok {
			return "", false
		}
		name, ok := person["name"].(string)
		return name, ok
	})

	return metadata
}

// get performs a GET and returns the body of a 2xx response.
func (client *Client) get(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	request.Header.Set("Accept", accept)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 4096))
		response.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, response.Status)
	}

	return response.Body, nil
}
