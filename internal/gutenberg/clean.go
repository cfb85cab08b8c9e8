// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gutenberg

import "strings"

// licenseMarker appears on the "*** START OF THE PROJECT GUTENBERG EBOOK ..."
// and "*** END OF THE PROJECT GUTENBERG EBOOK ..." lines around the body.
const licenseMarker = "PROJECT GUTENBERG EBOOK"

/*
CleanContent strips the Project Gutenberg license header and footer.

It keeps the text strictly between the line break that follows the first
marker and the line break that precedes the last marker.

Returns:
  - text unchanged when the marker is absent or either line break is missing
  - "" when both markers sit on the same line (only one marker present)
*/
func CleanContent(text string) string {
	firstIdx := strings.Index(text, licenseMarker)
	lastIdx := strings.LastIndex(text, licenseMarker)
	if firstIdx < 0 || lastIdx < 0 {
		return text
	}

	newlineAfter := strings.IndexByte(text[firstIdx:], '\n')
	newlineBefore := strings.LastIndexByte(text[:lastIdx], '\n')
	if newlineAfter < 0 || newlineBefore < 0 {
		return text
	}

	start := firstIdx + newlineAfter + 1
	end := newlineBefore
	if start > end {
		return ""
	}

	return text[start:end]
}
