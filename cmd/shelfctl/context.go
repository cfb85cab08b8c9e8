// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/taibuivan/gutenshelf/internal/analysis"
	"github.com/taibuivan/gutenshelf/internal/book"
	"github.com/taibuivan/gutenshelf/internal/gutenberg"
	"github.com/taibuivan/gutenshelf/internal/library"
	"github.com/taibuivan/gutenshelf/internal/platform/config"
	"github.com/taibuivan/gutenshelf/internal/platform/ctxutil"
	pgstore "github.com/taibuivan/gutenshelf/internal/platform/postgres"
	"github.com/taibuivan/gutenshelf/internal/users/auth"
	"github.com/taibuivan/gutenshelf/pkg/ai"
)

// commandContext lazily loads configuration so that argument errors are
// reported without touching the environment.
type commandContext struct {
	verbose *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

// services bundles what the book and history commands need.
type services struct {
	users *auth.Service
	books *book.Service
}

func newCommandContext(verbose *bool) *commandContext {
	return &commandContext{verbose: verbose}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load()
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	if c.verbose != nil && *c.verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withServices opens the database, builds the services and runs fn.
func (c *commandContext) withServices(ctx context.Context, fn func(context.Context, *services) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger := c.logger()
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc, err := buildServices(cfg, pool)
	if err != nil {
		return err
	}

	return fn(ctxutil.WithLogger(ctx, logger), svc)
}

func buildServices(cfg *config.Config, db pgstore.DBTX) (*services, error) {
	// Tokens are never issued or verified from the CLI.
	users := auth.NewService(auth.NewUserRepository(db), nil, nil, cfg.AccessTokenTTL)

	model := ai.NewOpenAICompatGenerator(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel,
		ai.WithTemperature(cfg.LLMTemperature),
		ai.WithJSONResponse(),
		ai.WithHTTPClient(&http.Client{Timeout: cfg.LLMTimeout}),
	)

	analyzer, err := analysis.NewGenerator(model, cfg.AnalysisSampleChars)
	if err != nil {
		return nil, err
	}

	books := book.NewService(
		book.NewRepository(db),
		library.NewRepository(db),
		gutenberg.NewClient(cfg.GutenbergBaseURL, cfg.CatalogBaseURL, cfg.UpstreamTimeout),
		analyzer,
		users,
	)

	return &services{users: users, books: books}, nil
}
