package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"microblog/internal/db"
	"microblog/internal/db/repository"
	"microblog/internal/middleware"
	"microblog/internal/service/blog"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// newTestServer wires the full API stack against a fresh SQLite database,
// exactly as cmd/server does minus rate limiting and CORS.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	writeDB, _ := db.OpenTestSQLite(t)
	accountRepo := repository.NewAccountRepo(writeDB)
	postRepo := repository.NewPostRepo(writeDB)
	commentRepo := repository.NewCommentRepo(writeDB)
	sessionRepo := repository.NewSessionRepo(writeDB)
	auditRepo := repository.NewAuditRepo(writeDB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	policy := security.NewPolicy()
	audit := governance.NewAuditService(auditRepo, logger)
	tokens, err := security.NewTokenService("test-secret", 0)
	require.NoError(t, err)
	sessions := security.NewSessionService(sessionRepo, 0)
	resolver := security.NewResolver(tokens, sessions, accountRepo)
	authenticator := security.NewAuthenticator(accountRepo)

	handler := NewHandler(
		blog.NewAccountService(accountRepo, postRepo, commentRepo, policy, audit),
		blog.NewPostService(postRepo, policy, audit),
		blog.NewCommentService(commentRepo, postRepo, policy, audit),
		audit, policy, authenticator, tokens, logger,
	)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(resolver))
		handler.Routes(r)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// do issues a JSON request and decodes the response body into out (when
// non-nil), returning the status code.
func do(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// registerAndLogin creates an account through the API and returns its token
// and id. The first call on a server yields the admin.
func registerAndLogin(t *testing.T, srv *httptest.Server, username string) (token string, id int64) {
	t.Helper()

	var created accountResponse
	status := do(t, srv, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password1",
	}, &created)
	require.Equal(t, http.StatusCreated, status)

	var login loginResponse
	status = do(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "password1",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	return login.Token, created.ID
}

func createPost(t *testing.T, srv *httptest.Server, token, title string) postResponse {
	t.Helper()
	var post postResponse
	status := do(t, srv, http.MethodPost, "/api/v1/posts/", token, map[string]string{
		"title":   title,
		"content": "some content",
	}, &post)
	require.Equal(t, http.StatusCreated, status)
	return post
}

func postPath(id int64) string { return fmt.Sprintf("/api/v1/posts/%d", id) }
