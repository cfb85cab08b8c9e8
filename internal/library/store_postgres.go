// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/taibuivan/gutenshelf/internal/platform/database/schema"
	"github.com/taibuivan/gutenshelf/internal/platform/dberr"
	"github.com/taibuivan/gutenshelf/internal/platform/postgres"
)

var (
	queryUpsertEntry = fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%[2]s, %[3]s) DO UPDATE SET %[4]s = EXCLUDED.%[4]s`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.BookID, schema.LibraryEntry.AccessedAt)

	querySelectRecent = fmt.Sprintf(`
		SELECT b.%[1]s, b.%[2]s, b.%[3]s, e.%[4]s
		FROM %[5]s e
		JOIN %[6]s b ON b.%[1]s = e.%[7]s
		WHERE e.%[8]s = $1
		ORDER BY e.%[4]s DESC`,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.LibraryEntry.AccessedAt,
		schema.LibraryEntry.Table, schema.Book.Table, schema.LibraryEntry.BookID, schema.LibraryEntry.UserID)
)

// PostgresRepository implements [Repository] over a pgx pool.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewRepository creates a PostgreSQL backed access ledger.
func NewRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Touch upserts the access record, overwriting accessedat on conflict.

Parameters:
  - context: context.Context
  - record: AccessRecord

Returns:
  - error: Database execution errors
*/
func (repository *PostgresRepository) Touch(context context.Context, record AccessRecord) error {
	_, err := repository.db.Exec(context, queryUpsertEntry, record.UserID, record.BookID, record.AccessedAt)
	return dberr.Wrap(err, "postgres_library_repo_touch_failed")
}

/*
ListRecent joins the ledger with books, newest access first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Entry: Shelf entries
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListRecent(context context.Context, userID string) ([]Entry, error) {
	rows, err := repository.db.Query(context, querySelectRecent, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_library_repo_list_failed")
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		var author datatypes.JSONSlice[string]

		if err := rows.Scan(&entry.BookID, &entry.Title, &author, &entry.AccessedAt); err != nil {
			return nil, dberr.Wrap(err, "postgres_library_repo_scan_failed")
		}

		entry.Author = []string(author)
		if entry.Author == nil {
			entry.Author = []string{}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_library_repo_list_failed")
	}

	return entries, nil
}
