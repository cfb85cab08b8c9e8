// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/shelf", "pgx5://u:p@db:5432/shelf"},
		{"postgresql_scheme", "postgresql://u:p@db/shelf?sslmode=disable", "pgx5://u:p@db/shelf?sslmode=disable"},
		{"already_pgx5", "pgx5://db/shelf", "pgx5://db/shelf"},
		{"keyword_dsn", "host=db dbname=shelf", "host=db dbname=shelf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
		})
	}
}

func TestRunDown_RejectsNonPositiveSteps(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Error(t, RunDown("postgres://db/shelf", "./data/migrations", 0, logger))
}
