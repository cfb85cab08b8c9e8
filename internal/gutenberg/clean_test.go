// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gutenberg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gutenshelf/internal/gutenberg"
)

/*
TestCleanContent covers the license marker heuristic.
*/
func TestCleanContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "two_markers",
			in:   "header\n*** START OF THE PROJECT GUTENBERG EBOOK X ***\nBody line 1\nBody line 2\n*** END OF THE PROJECT GUTENBERG EBOOK X ***\nlicense",
			want: "Body line 1\nBody line 2",
		},
		{
			name: "no_marker",
			in:   "Just some text\nwith lines",
			want: "Just some text\nwith lines",
		},
		{
			name: "single_marker_line",
			in:   "intro\n*** START OF THE PROJECT GUTENBERG EBOOK X ***\nrest of the book",
			want: "",
		},
		{
			name: "marker_on_last_line_without_newline_after",
			in:   "intro\n*** END OF THE PROJECT GUTENBERG EBOOK",
			want: "intro\n*** END OF THE PROJECT GUTENBERG EBOOK",
		},
		{
			name: "first_marker_on_first_line",
			in:   "*** PROJECT GUTENBERG EBOOK ***\nThe text\n*** PROJECT GUTENBERG EBOOK END",
			want: "The text",
		},
		{
			name: "adjacent_markers",
			in:   "a\nPROJECT GUTENBERG EBOOK\nPROJECT GUTENBERG EBOOK\nb",
			want: "",
		},
		{
			name: "non_ascii_body",
			in:   "x\nPROJECT GUTENBERG EBOOK\nÆsop — fábulas\nPROJECT GUTENBERG EBOOK\n",
			want: "Æsop — fábulas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gutenberg.CleanContent(tt.in))
		})
	}
}
