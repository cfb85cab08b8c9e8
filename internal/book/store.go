// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"time"

	"github.com/taibuivan/gutenshelf/internal/analysis"
)

// Repository defines the data access contract for cached books.
type Repository interface {

	/*
		FindByID returns the book with the given catalog id.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Book: Hydrated entity
		  - error: dberr.ErrNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int) (*Book, error)

	/*
		Create inserts a new book unless one with the same id already exists.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: dberr.ErrDuplicate when another writer created the row first
	*/
	Create(context context.Context, book *Book) error

	/*
		UpdateAnalysis overwrites the cached analysis of a book.

		Parameters:
		  - context: context.Context
		  - id: int
		  - result: analysis.Result
		  - updatedAt: time.Time

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdateAnalysis(context context.Context, id int, result analysis.Result, updatedAt time.Time) error
}
