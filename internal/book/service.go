// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/gutenshelf/internal/analysis"
	"github.com/taibuivan/gutenshelf/internal/gutenberg"
	"github.com/taibuivan/gutenshelf/internal/library"
	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
	"github.com/taibuivan/gutenshelf/internal/platform/ctxutil"
	"github.com/taibuivan/gutenshelf/internal/platform/dberr"
	"github.com/taibuivan/gutenshelf/internal/platform/validate"
	"github.com/taibuivan/gutenshelf/internal/users/auth"
)

// # Contracts & Types

// Source downloads book text and catalog metadata.
type Source interface {
	FetchContent(ctx context.Context, bookID int) (string, error)
	FetchMetadata(ctx context.Context, bookID int) (gutenberg.Metadata, error)
}

// Analyzer produces an analysis from book content.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (analysis.Result, error)
}

// UserResolver maps token claims to a stored account.
type UserResolver interface {
	CurrentUser(ctx context.Context, userID string) (*auth.User, error)
}

// Service implements the book use cases.
type Service struct {
	books    Repository
	ledger   library.Repository
	source   Source
	analyzer Analyzer
	users    UserResolver
	now      func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(books Repository, ledger library.Repository, source Source, analyzer Analyzer, users UserResolver) *Service {
	return &Service{
		books:    books,
		ledger:   ledger,
		source:   source,
		analyzer: analyzer,
		users:    users,
		now:      time.Now,
	}
}

// ParseID validates a book id taken from a URL.
func ParseID(raw string) (int, error) {
	id, ok := validate.PositiveInt(raw)
	if !ok {
		return 0, apperr.ValidationError("Invalid book id")
	}
	return id, nil
}

// # Ingestion

/*
GetBook returns a book for a reader, ingesting it on first view, and records
the view in the reader's library.

Parameters:
  - ctx: context.Context
  - userID: string (from token claims)
  - id: int

Returns:
  - *Book: The cached book
  - error: NotFound("User"), upstream or storage errors
*/
func (service *Service) GetBook(ctx context.Context, userID string, id int) (*Book, error) {
	user, err := service.users.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	book, err := service.Ingest(ctx, id)
	if err != nil {
		return nil, err
	}

	record := library.AccessRecord{UserID: user.ID, BookID: book.ID, AccessedAt: service.now().UTC()}
	if err := service.ledger.Touch(ctx, record); err != nil {
		return nil, err
	}

	return book, nil
}

/*
Ingest returns the cached book or fetches and stores it.

Content and metadata are fetched concurrently; if either fails nothing is
written. A concurrent ingestion of the same id is resolved by re-reading the
row that won.
*/
func (service *Service) Ingest(ctx context.Context, id int) (*Book, error) {
	book, err := service.books.FindByID(ctx, id)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	logger := ctxutil.GetLogger(ctx)
	startTime := time.Now()

	var (
		content  string
		metadata gutenberg.Metadata
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var fetchErr error
		content, fetchErr = service.source.FetchContent(groupCtx, id)
		return fetchErr
	})
	group.Go(func() error {
		var fetchErr error
		metadata, fetchErr = service.source.FetchMetadata(groupCtx, id)
		return fetchErr
	})
	if err := group.Wait(); err != nil {
		logger.WarnContext(ctx, "book_ingest_fetch_failed", slog.Int("book_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	now := service.now().UTC()
	book = &Book{
		ID:        id,
		Content:   content,
		Title:     metadata.Title,
		Author:    metadata.Authors,
		Metadata:  metadata.Raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if book.Author == nil {
		book.Author = []string{}
	}
	if book.Metadata == nil {
		book.Metadata = map[string]any{}
	}

	if err := service.books.Create(ctx, book); err != nil {
		if !errors.Is(err, dberr.ErrDuplicate) {
			return nil, err
		}
		logger.InfoContext(ctx, "book_ingest_lost_race", slog.Int("book_id", id))
		return service.books.FindByID(ctx, id)
	}

	logger.InfoContext(ctx, "book_ingested",
		slog.Int("book_id", id),
		slog.String("title", book.Title),
		slog.Int("content_bytes", len(book.Content)),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	return book, nil
}

// # Analysis

/*
Analyze returns the cached analysis of a book, generating it when absent or
when rerun is set.

A failed generation leaves any previously stored analysis untouched.

Returns:
  - analysis.Result: The analysis
  - error: NotFound("Book"), upstream, format or storage errors
*/
func (service *Service) Analyze(ctx context.Context, id int, rerun bool) (analysis.Result, error) {
	book, err := service.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return analysis.Result{}, apperr.NotFound("Book")
		}
		return analysis.Result{}, err
	}

	if book.HasAnalysis() && !rerun {
		return *book.Analysis, nil
	}

	result, err := service.analyzer.Analyze(ctx, book.Content)
	if err != nil {
		return analysis.Result{}, err
	}

	if err := service.books.UpdateAnalysis(ctx, id, result, service.now().UTC()); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return analysis.Result{}, apperr.NotFound("Book")
		}
		return analysis.Result{}, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "book_analysis_stored",
		slog.Int("book_id", id),
		slog.Bool("rerun", rerun),
	)

	return result, nil
}

// # Library

/*
ListForUser returns the reader's books, most recently viewed first.

Returns:
  - []library.Entry: Possibly empty
  - error: NotFound("User") or storage errors
*/
func (service *Service) ListForUser(ctx context.Context, userID string) ([]library.Entry, error) {
	user, err := service.users.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return service.ledger.ListRecent(ctx, user.ID)
}
