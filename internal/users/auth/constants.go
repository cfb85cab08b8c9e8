// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// DefaultAccessTokenTTL applies when the configured TTL is zero.
	DefaultAccessTokenTTL = 24 * time.Hour

	// PasswordMinLength is the shortest accepted password.
	PasswordMinLength = 8

	// PasswordMaxBytes is bcrypt's input limit.
	PasswordMaxBytes = 72

	// EmailMaxLength follows the RFC 5321 path limit.
	EmailMaxLength = 254
)
