// Package ui implements the server-rendered web interface.
package ui

import (
	"errors"
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"microblog/internal/domain"
	"microblog/internal/service/blog"
	"microblog/internal/service/security"
)

// SessionCookieName is the cookie that carries the web UI session id.
const SessionCookieName = "mb_session"

type Handler struct {
	Accounts      *blog.AccountService
	Posts         *blog.PostService
	Comments      *blog.CommentService
	Authenticator *security.Authenticator
	Sessions      *security.SessionService
	Logger        *slog.Logger
	Production    bool
}

func NewHandler(
	accounts *blog.AccountService,
	posts *blog.PostService,
	comments *blog.CommentService,
	authenticator *security.Authenticator,
	sessions *security.SessionService,
	logger *slog.Logger,
	production bool,
) *Handler {
	return &Handler{
		Accounts:      accounts,
		Posts:         posts,
		Comments:      comments,
		Authenticator: authenticator,
		Sessions:      sessions,
		Logger:        logger,
		Production:    production,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// viewer returns the logged-in principal, or nil for anonymous visitors.
func viewer(r *http.Request) *domain.Principal {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		return nil
	}
	return &p
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
	})
}

// renderError maps a domain error to an HTML error page. Unauthenticated
// errors redirect to the login page instead.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unauthenticated *domain.UnauthenticatedError
		accessDenied    *domain.AccessDeniedError
		notFound        *domain.NotFoundError
		validation      *domain.ValidationError
		conflict        *domain.ConflictError
	)
	switch {
	case errors.As(err, &unauthenticated):
		http.Redirect(w, r, "/ui/login", http.StatusSeeOther)
	case errors.As(err, &accessDenied):
		renderHTML(w, http.StatusForbidden, errorPage(viewer(r), "Access Denied", err.Error()))
	case errors.As(err, &notFound):
		renderHTML(w, http.StatusNotFound, errorPage(viewer(r), "Not Found", err.Error()))
	case errors.As(err, &validation):
		renderHTML(w, http.StatusBadRequest, errorPage(viewer(r), "Invalid Input", err.Error()))
	case errors.As(err, &conflict):
		renderHTML(w, http.StatusConflict, errorPage(viewer(r), "Conflict", err.Error()))
	default:
		h.Logger.Error("ui internal error", "error", err)
		renderHTML(w, http.StatusInternalServerError, errorPage(viewer(r), "Server Error", "something went wrong"))
	}
}
