package ui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"microblog/internal/db"
	"microblog/internal/db/repository"
	"microblog/internal/domain"
	"microblog/internal/middleware"
	"microblog/internal/service/blog"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

type uiFixture struct {
	srv      *httptest.Server
	accounts *blog.AccountService
	posts    *blog.PostService
}

func newUIFixture(t *testing.T) *uiFixture {
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

	accounts := blog.NewAccountService(accountRepo, postRepo, commentRepo, policy, audit)
	posts := blog.NewPostService(postRepo, policy, audit)
	comments := blog.NewCommentService(commentRepo, postRepo, policy, audit)

	handler := NewHandler(accounts, posts, comments, authenticator, sessions, logger, false)

	r := chi.NewRouter()
	r.Route("/ui", func(r chi.Router) {
		MountRoutes(r, handler, middleware.SessionAuthenticate(resolver, SessionCookieName))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &uiFixture{srv: srv, accounts: accounts, posts: posts}
}

// newBrowser returns a cookie-jar client that does not follow redirects, so
// tests can assert on them. Each call builds a fresh client with its own jar;
// two browsers in one test never share a session.
func newBrowser(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Transport: srv.Client().Transport,
		Jar:       jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// csrfToken primes the CSRF cookie via a GET and returns the token value.
func csrfToken(t *testing.T, client *http.Client, srv *httptest.Server) string {
	t.Helper()
	resp, err := client.Get(srv.URL + "/ui/login")
	require.NoError(t, err)
	resp.Body.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == csrfCookieName {
			return c.Value
		}
	}
	t.Fatal("csrf cookie not set")
	return ""
}

func postForm(t *testing.T, client *http.Client, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(srv.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func registerViaUI(t *testing.T, client *http.Client, srv *httptest.Server, username string) {
	t.Helper()
	token := csrfToken(t, client, srv)
	resp := postForm(t, client, srv, "/ui/register", url.Values{
		"csrf_token": {token},
		"username":   {username},
		"email":      {username + "@example.com"},
		"password":   {"password1"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func seedPost(t *testing.T, f *uiFixture, username, title string) *domain.Post {
	t.Helper()
	account, err := f.accounts.Register(context.Background(), domain.CreateAccountRequest{
		Username: username, Email: username + "@example.com", Password: "password1",
	})
	require.NoError(t, err)
	principal := domain.PrincipalFromAccount(account)
	post, err := f.posts.Create(context.Background(), &principal, domain.CreatePostRequest{
		Title: title, Content: "content",
	})
	require.NoError(t, err)
	return post
}

func hasText(body, s string) bool { return strings.Contains(body, s) }
