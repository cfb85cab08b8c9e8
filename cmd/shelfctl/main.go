// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command shelfctl is the operator CLI for Gutenshelf.
//
// It talks to the same PostgreSQL database as the API server and reuses its
// services, so a book fetched here is exactly what a reader would get.
//
//	shelfctl migrate up
//	shelfctl book fetch 84
//	shelfctl book analyze 84 --rerun
//	shelfctl history mary@example.com
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
