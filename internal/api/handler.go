// Package api implements the JSON HTTP API under /api/v1.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"microblog/internal/domain"
	"microblog/internal/service/blog"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// Handler holds the services the API routes dispatch to.
type Handler struct {
	accounts      *blog.AccountService
	posts         *blog.PostService
	comments      *blog.CommentService
	audit         *governance.AuditService
	policy        *security.Policy
	authenticator *security.Authenticator
	tokens        *security.TokenService
	logger        *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	accounts *blog.AccountService,
	posts *blog.PostService,
	comments *blog.CommentService,
	audit *governance.AuditService,
	policy *security.Policy,
	authenticator *security.Authenticator,
	tokens *security.TokenService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:      accounts,
		posts:         posts,
		comments:      comments,
		audit:         audit,
		policy:        policy,
		authenticator: authenticator,
		tokens:        tokens,
		logger:        logger,
	}
}

// Routes mounts all API routes on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.healthz)

	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.listAccounts)
		r.Post("/", h.createAccount)
		r.Get("/me", h.me)
		r.Get("/{id}", h.getAccount)
		r.Put("/{id}", h.updateAccount)
		r.Delete("/{id}", h.deleteAccount)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.listPosts)
		r.Post("/", h.createPost)
		r.Get("/{id}", h.getPost)
		r.Put("/{id}", h.updatePost)
		r.Delete("/{id}", h.deletePost)
		r.Get("/{id}/comments", h.listComments)
		r.Post("/{id}/comments", h.createComment)
	})

	r.Delete("/comments/{id}", h.deleteComment)

	r.Get("/audit", h.listAudit)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// principal returns the request principal, or nil for anonymous requests.
func principal(r *http.Request) *domain.Principal {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		return nil
	}
	return &p
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid id %q", raw)
	}
	return id, nil
}

// pageRequest parses max_results and page_token query parameters.
func pageRequest(r *http.Request) domain.PageRequest {
	page := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if v := r.URL.Query().Get("max_results"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.MaxResults = n
		}
	}
	return page
}
