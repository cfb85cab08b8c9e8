// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
	"github.com/taibuivan/gutenshelf/internal/platform/dberr"
	"github.com/taibuivan/gutenshelf/internal/platform/sec"
	"github.com/taibuivan/gutenshelf/internal/users/auth"
)

// # Fakes

type memoryUsers struct {
	mu        sync.Mutex
	byID      map[string]*auth.User
	createErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}}
}

func (store *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if user, ok := store.byID[id]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, user := range store.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (store *memoryUsers) Create(_ context.Context, user *auth.User) error {
	if store.createErr != nil {
		return store.createErr
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.byID[user.ID] = user
	return nil
}

type memoryRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (revoker *memoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	revoker.revoked[tokenID] = ttl
	return nil
}

func (revoker *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if revoker.err != nil {
		return false, revoker.err
	}
	_, ok := revoker.revoked[tokenID]
	return ok, nil
}

func newService(t *testing.T) (*auth.Service, *memoryUsers, *memoryRevoker) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	users := newMemoryUsers()
	revoker := &memoryRevoker{revoked: map[string]time.Duration{}}
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "gutenshelf.test")

	return auth.NewService(users, revoker, tokens, time.Hour), users, revoker
}

// # Tests

/*
TestService_Signup covers account creation and its validation rules.
*/
func TestService_Signup(t *testing.T) {
	service, users, _ := newService(t)
	ctx := context.Background()

	user, err := service.Signup(ctx, auth.SignupInput{Email: "  Mary@Example.com ", Password: "frankenstein"})
	require.NoError(t, err)
	assert.Equal(t, "mary@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "frankenstein", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.Signup(ctx, auth.SignupInput{Email: "mary@example.com", Password: "another-pass"})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 400, ae.HTTPStatus)
		assert.Equal(t, "User with this email already exists", ae.Message)
	})

	t.Run("duplicate_race", func(t *testing.T) {
		users.createErr = errors.Join(errors.New("insert"), dberr.ErrDuplicate)
		defer func() { users.createErr = nil }()

		_, err := service.Signup(ctx, auth.SignupInput{Email: "percy@example.com", Password: "ozymandias"})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := service.Signup(ctx, auth.SignupInput{})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeValidation, ae.Code)
		assert.Len(t, ae.Details, 3)
	})

	t.Run("malformed_email", func(t *testing.T) {
		_, err := service.Signup(ctx, auth.SignupInput{Email: "not-an-email", Password: "frankenstein"})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})
}

/*
TestService_LoginAndVerify covers the token lifecycle including logout.
*/
func TestService_LoginAndVerify(t *testing.T) {
	service, _, revoker := newService(t)
	ctx := context.Background()

	created, err := service.Signup(ctx, auth.SignupInput{Email: "mary@example.com", Password: "frankenstein"})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Email: "mary@example.com", Password: "wrong-password"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = service.Login(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "frankenstein"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	session, err := service.Login(ctx, auth.LoginInput{Email: "MARY@example.com", Password: "frankenstein"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, session.User.ID)
	assert.Equal(t, time.Hour, session.ExpiresIn)

	claims, err := service.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)

	require.NoError(t, service.Logout(ctx, claims))
	assert.Contains(t, revoker.revoked, claims.ID)

	_, err = service.VerifyToken(ctx, session.AccessToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = service.VerifyToken(ctx, "garbage")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestService_VerifyToken_RevokerDown verifies that a store outage is not reported as 401.
*/
func TestService_VerifyToken_RevokerDown(t *testing.T) {
	service, _, revoker := newService(t)
	ctx := context.Background()

	_, err := service.Signup(ctx, auth.SignupInput{Email: "mary@example.com", Password: "frankenstein"})
	require.NoError(t, err)
	session, err := service.Login(ctx, auth.LoginInput{Email: "mary@example.com", Password: "frankenstein"})
	require.NoError(t, err)

	revoker.err = errors.New("connection refused")
	_, err = service.VerifyToken(ctx, session.AccessToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

/*
TestService_CurrentUser covers lookups of existing, deleted and malformed ids.
*/
func TestService_CurrentUser(t *testing.T) {
	service, users, _ := newService(t)
	ctx := context.Background()

	created, err := service.Signup(ctx, auth.SignupInput{Email: "mary@example.com", Password: "frankenstein"})
	require.NoError(t, err)

	found, err := service.CurrentUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)

	delete(users.byID, created.ID)
	_, err = service.CurrentUser(ctx, created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "User not found", ae.Message)

	_, err = service.CurrentUser(ctx, "not-a-uuid")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
