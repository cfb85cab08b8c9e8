// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gutenshelf/internal/users/auth"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _, _ := newService(t)

	router := chi.NewRouter()
	router.Mount("/api/auth", auth.NewHandler(service).Routes())
	return router
}

func do(t *testing.T, handler http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Flow walks signup, login, session and logout over HTTP.
*/
func TestHandler_Flow(t *testing.T) {
	router := newRouter(t)
	credentials := `{"email":"mary@example.com","password":"frankenstein"}`

	recorder := do(t, router, http.MethodPost, "/api/auth/signup", credentials, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "password")

	var created map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "mary@example.com", created["email"])
	assert.Contains(t, created, "createdAt")

	recorder = do(t, router, http.MethodPost, "/api/auth/signup", credentials, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, router, http.MethodPost, "/api/auth/login", credentials, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var login struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		ExpiresIn   int64  `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))
	assert.Equal(t, "Bearer", login.TokenType)
	assert.Equal(t, int64(3600), login.ExpiresIn)

	recorder = do(t, router, http.MethodGet, "/api/auth/session", "", login.AccessToken)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "mary@example.com")

	recorder = do(t, router, http.MethodPost, "/api/auth/logout", "", login.AccessToken)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = do(t, router, http.MethodGet, "/api/auth/session", "", login.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_Rejections covers bad payloads and anonymous access.
*/
func TestHandler_Rejections(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/auth/signup", `{"email":`, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/auth/signup", `{"email":"mary@example.com"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/api/auth/login", `{"email":"x@example.com","password":"whatever1"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, "/api/auth/session", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/api/auth/logout", "", "").Code)
}

/*
TestHandler_PublicRoutesIgnoreStaleToken verifies that signup and login do not
reject a leftover Authorization header, while the protected routes still do.
*/
func TestHandler_PublicRoutesIgnoreStaleToken(t *testing.T) {
	router := newRouter(t)
	credentials := `{"email":"percy@example.com","password":"prometheus"}`

	recorder := do(t, router, http.MethodPost, "/api/auth/signup", credentials, "expired.or.forged")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = do(t, router, http.MethodPost, "/api/auth/login", credentials, "expired.or.forged")
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, "/api/auth/session", "", "expired.or.forged").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/api/auth/logout", "", "expired.or.forged").Code)
}
