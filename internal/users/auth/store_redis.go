// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/gutenshelf/internal/platform/constants"
)

// RedisTokenRevoker implements TokenRevoker using Redis keys with a TTL.
type RedisTokenRevoker struct {
	client redis.Cmdable
}

// NewTokenRevoker creates a new Redis-backed TokenRevoker.
func NewTokenRevoker(client redis.Cmdable) *RedisTokenRevoker {
	return &RedisTokenRevoker{client: client}
}

/*
Revoke stores the token id until the token would have expired.

Parameters:
  - context: context.Context
  - tokenID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRevoker) Revoke(context context.Context, tokenID string, ttl time.Duration) error {

	// Already expired tokens are rejected by signature checks anyway
	if ttl <= 0 {
		return nil
	}

	key := constants.RedisPrefixRevokedToken + tokenID

	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoked_token_set_failed: %w", err)
	}

	return nil
}

/*
IsRevoked checks for the revocation key.

Parameters:
  - context: context.Context
  - tokenID: string

Returns:
  - bool: Whether the key exists
  - error: Connectivity errors
*/
func (repository *RedisTokenRevoker) IsRevoked(context context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + tokenID

	count, err := repository.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revoked_token_get_failed: %w", err)
	}

	return count > 0, nil
}
