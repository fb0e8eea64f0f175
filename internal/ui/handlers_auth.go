package ui

import (
	"errors"
	"net/http"

	"microblog/internal/domain"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if viewer(r) != nil {
		http.Redirect(w, r, "/ui", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(r, ""))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, loginPage(r, "malformed form submission"))
		return
	}

	principal, err := h.Authenticator.Authenticate(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		// Login failures always render the same message.
		renderHTML(w, http.StatusUnauthorized, loginPage(r, "invalid email or password"))
		return
	}

	sess, err := h.Sessions.Create(r.Context(), principal.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/ui", http.StatusSeeOther)
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if viewer(r) != nil {
		http.Redirect(w, r, "/ui", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, registerPage(r, ""))
}

func (h *Handler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, registerPage(r, "malformed form submission"))
		return
	}

	account, err := h.Accounts.Register(r.Context(), domain.CreateAccountRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		status := http.StatusBadRequest
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			status = http.StatusConflict
		}
		renderHTML(w, status, registerPage(r, err.Error()))
		return
	}

	// Log the new account straight in.
	sess, err := h.Sessions.Create(r.Context(), account.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/ui", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		_ = h.Sessions.Delete(r.Context(), cookie.Value)
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/ui", http.StatusSeeOther)
}
