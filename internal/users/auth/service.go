// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/gutenshelf/internal/platform/apperr"
	"github.com/taibuivan/gutenshelf/internal/platform/ctxutil"
	"github.com/taibuivan/gutenshelf/internal/platform/dberr"
	"github.com/taibuivan/gutenshelf/internal/platform/sec"
	"github.com/taibuivan/gutenshelf/internal/platform/validate"
	"github.com/taibuivan/gutenshelf/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and checking access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error)

	// VerifyToken checks signature, issuer and expiry.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	revoker        TokenRevoker
	tokenProvider  TokenProvider
	accessTTL      time.Duration
	now            func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, revoker TokenRevoker, tokenProv TokenProvider, accessTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	return &Service{
		userRepository: userRepo,
		revoker:        revoker,
		tokenProvider:  tokenProv,
		accessTTL:      accessTTL,
		now:            time.Now,
	}
}

// AccessTokenTTL is the lifetime of tokens issued by [Service.Login].
func (service *Service) AccessTokenTTL() time.Duration {
	return service.accessTTL
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// SignupInput holds the data required to create an account.
type SignupInput struct {
	Email    string
	Password string
}

/*
Signup validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created entity
  - err: Validation error (including a taken email) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		MaxLen(FieldEmail, email, EmailMaxLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		Custom(FieldPassword, len(input.Password) > PasswordMaxBytes, fmt.Sprintf("Maximum %d bytes", PasswordMaxBytes))
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness up front for a friendly message; the unique index
	// still decides when two signups race.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, errEmailTaken()
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    service.now().UTC(),
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, errEmailTaken()
		}
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_signed_up", slog.String("user_id", user.ID))

	return user, nil
}

func errEmailTaken() error {
	return apperr.ValidationError("User with this email already exists")
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
Login validates user credentials and issues an access token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			// Generic message to prevent enumeration.
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, service.accessTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   service.accessTTL,
		User:        user,
	}, nil
}

/*
Logout revokes the presented access token until it expires.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (of the token being revoked)

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if claims == nil || claims.ID == "" {
		return apperr.Unauthorized("Authentication required")
	}

	remaining := time.Duration(0)
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Sub(service.now())
	}

	if err := service.revoker.Revoke(context, claims.ID, remaining); err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_logout_failed: %w", err))
	}

	return nil
}

/*
VerifyToken checks an access token and its revocation state.

It implements middleware.TokenVerifier.
*/
func (service *Service) VerifyToken(context context.Context, tokenString string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.VerifyToken(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	if claims.ID != "" {
		revoked, err := service.revoker.IsRevoked(context, claims.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if revoked {
			return nil, apperr.Unauthorized("Token has been revoked")
		}
	}

	return claims, nil
}

/*
CurrentUser resolves the account behind a user id taken from token claims.

Returns apperr.NotFound("User") when the account no longer exists.
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	if !uuid.IsValid(userID) {
		return nil, apperr.NotFound("User")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	return user, nil
}

// FindByEmail looks an account up by email (used by the admin CLI).
func (service *Service) FindByEmail(context context.Context, email string) (*User, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}
