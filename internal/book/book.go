// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements fetch-or-create ingestion of Project Gutenberg books
and the cached literary analysis attached to them.

# Lifecycle

  - A book row is created the first time anyone opens it and its content never
    changes afterwards.
  - The analysis is the only mutable field: it is filled on first request and
    overwritten when a rerun is requested.
*/
package book

import (
	"time"

	"github.com/taibuivan/gutenshelf/internal/analysis"
)

// # Domain Entities

// Book is a cached Project Gutenberg title.
type Book struct {
	ID       int              `json:"id"`
	Content  string           `json:"content"`
	Title    string           `json:"title"`
	Author   []string         `json:"author"`
	Metadata map[string]any   `json:"metadata"`
	Analysis *analysis.Result `json:"analysis"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HasAnalysis reports whether an analysis is cached.
func (book *Book) HasAnalysis() bool {
	return book.Analysis != nil
}
