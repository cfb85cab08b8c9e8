// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library records which books each reader has opened.

Every successful book view upserts one (user, book) row with the time of the
view, so a reader's shelf is simply their rows ordered by most recent access.
*/
package library

import "time"

// # Domain Entities

// AccessRecord is the last time a user viewed a book.
type AccessRecord struct {
	UserID     string
	BookID     int
	AccessedAt time.Time
}

// Entry is a book on a reader's shelf.
type Entry struct {
	BookID     int       `json:"id"`
	Title      string    `json:"title"`
	Author     []string  `json:"author"`
	AccessedAt time.Time `json:"-"`
}
