// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/gutenshelf/internal/library"
	"github.com/taibuivan/gutenshelf/pkg/slice"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history <email>",
		Short: "List the books a reader has opened, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			if email == "" {
				return fmt.Errorf("email is required")
			}
			return ctx.withServices(cmd.Context(), func(runCtx context.Context, svc *services) error {
				user, err := svc.users.FindByEmail(runCtx, email)
				if err != nil {
					return err
				}
				entries, err := svc.books.ListForUser(runCtx, user.ID)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s has not opened any books\n", user.Email)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderHistory(entries))
				return nil
			})
		},
	}
}

func renderHistory(entries []library.Entry) string {
	rows := slice.Map(entries, func(entry library.Entry) []string {
		return []string{
			strconv.Itoa(entry.BookID),
			entry.Title,
			strings.Join(entry.Author, "; "),
			entry.AccessedAt.Local().Format(time.DateTime),
		}
	})
	return renderTable(
		[]string{"ID", "Title", "Author", "Last Opened"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}
