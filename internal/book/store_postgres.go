// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/taibuivan/gutenshelf/internal/analysis"
	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
	"github.com/taibuivan/gutenshelf/internal/platform/database/schema"
	"github.com/taibuivan/gutenshelf/internal/platform/dberr"
	"github.com/taibuivan/gutenshelf/internal/platform/postgres"
)

var (
	bookColumns = strings.Join(schema.Book.Columns(), ", ")

	querySelectBook = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.Book.Table, schema.Book.ID)

	// The row is write-once: a concurrent first view loses the race silently
	// and re-reads the winner's row.
	queryInsertBook = fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, NULL, $6, $6)
		ON CONFLICT (%s) DO NOTHING`,
		schema.Book.Table, bookColumns, schema.Book.ID)

	queryUpdateAnalysis = fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Book.Table, schema.Book.Analysis, schema.Book.UpdatedAt, schema.Book.ID)
)

// PostgresRepository implements [Repository] over a pgx pool.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewRepository creates a PostgreSQL backed book store.
func NewRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
FindByID loads one book including its content.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Book: Hydrated entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Book, error) {
	var (
		book     Book
		author   datatypes.JSONSlice[string]
		metadata datatypes.JSONMap
		analyzed []byte
	)

	err := repository.db.QueryRow(context, querySelectBook, id).Scan(
		&book.ID,
		&book.Content,
		&book.Title,
		&author,
		&metadata,
		&analyzed,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_book_repo_find_failed")
	}

	book.Author = []string(author)
	if book.Author == nil {
		book.Author = []string{}
	}

	book.Metadata = map[string]any(metadata)
	if book.Metadata == nil {
		book.Metadata = map[string]any{}
	}

	if len(analyzed) > 0 && string(analyzed) != "null" {
		var result analysis.Result
		if err := json.Unmarshal(analyzed, &result); err != nil {
			return nil, apperr.Internal(fmt.Errorf("postgres_book_repo_decode_analysis_failed: %w", err))
		}
		book.Analysis = &result
	}

	return &book, nil
}

/*
Create inserts the book with ON CONFLICT DO NOTHING.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: dberr.ErrDuplicate when no row was inserted
*/
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	author := book.Author
	if author == nil {
		author = []string{}
	}
	metadata := book.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	result, err := repository.db.Exec(context, queryInsertBook,
		book.ID,
		book.Content,
		book.Title,
		datatypes.NewJSONSlice(author),
		datatypes.JSONMap(metadata),
		book.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_book_repo_create_failed")
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("postgres_book_repo_create_conflict: %w", dberr.ErrDuplicate)
	}

	return nil
}

/*
UpdateAnalysis replaces the analysis column and bumps updatedat.

Parameters:
  - context: context.Context
  - id: int
  - result: analysis.Result
  - updatedAt: time.Time

Returns:
  - error: dberr.ErrNotFound if the row vanished, or database errors
*/
func (repository *PostgresRepository) UpdateAnalysis(context context.Context, id int, result analysis.Result, updatedAt time.Time) error {
	if result.KeyCharacters == nil {
		result.KeyCharacters = []string{}
	}

	outcome, err := repository.db.Exec(context, queryUpdateAnalysis, id, datatypes.NewJSONType(result), updatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_book_repo_update_analysis_failed")
	}

	if outcome.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
