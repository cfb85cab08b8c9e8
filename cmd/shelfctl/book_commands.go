// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/gutenshelf/internal/analysis"
	"github.com/taibuivan/gutenshelf/internal/book"
)

func newBookCommand(ctx *commandContext) *cobra.Command {
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Fetch and analyze books",
	}

	bookCmd.AddCommand(&cobra.Command{
		Use:   "fetch <id>",
		Short: "Ingest a Project Gutenberg book into the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := book.ParseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(runCtx context.Context, svc *services) error {
				entity, err := svc.books.Ingest(runCtx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderBook(entity))
				return nil
			})
		},
	})

	var rerun bool
	analyzeCmd := &cobra.Command{
		Use:   "analyze <id>",
		Short: "Show the cached analysis of a book, generating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := book.ParseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withServices(cmd.Context(), func(runCtx context.Context, svc *services) error {
				result, err := svc.books.Analyze(runCtx, id, rerun)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderAnalysis(result))
				return nil
			})
		},
	}
	analyzeCmd.Flags().BoolVar(&rerun, "rerun", false, "Regenerate even when a cached analysis exists")
	bookCmd.AddCommand(analyzeCmd)

	return bookCmd
}

func renderBook(entity *book.Book) string {
	return renderFields([][2]string{
		{"ID", strconv.Itoa(entity.ID)},
		{"Title", entity.Title},
		{"Author", strings.Join(entity.Author, "; ")},
		{"Characters", strconv.Itoa(len([]rune(entity.Content)))},
		{"Analyzed", yesNo(entity.HasAnalysis())},
	})
}

func renderAnalysis(result analysis.Result) string {
	return renderFields([][2]string{
		{"Language", result.DetectedLanguage},
		{"Sentiment", result.Sentiment},
		{"Reasoning", result.SentimentReasoning},
		{"Characters", strings.Join(result.KeyCharacters, ", ")},
		{"Summary", result.PlotSummary},
	})
}
