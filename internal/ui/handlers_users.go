package ui

import (
	"errors"
	"net/http"

	"microblog/internal/domain"
)

func (h *Handler) UsersList(w http.ResponseWriter, r *http.Request) {
	p := viewer(r)
	accounts, _, err := h.Accounts.List(r.Context(), p, domain.PageRequest{MaxResults: 200})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, usersPage(r, p, accounts))
}

func (h *Handler) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := h.Accounts.Delete(r.Context(), viewer(r), id); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/ui/users", http.StatusSeeOther)
}

func (h *Handler) UserCreatePage(w http.ResponseWriter, r *http.Request) {
	p := viewer(r)
	if p == nil {
		http.Redirect(w, r, "/ui/login", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, userFormPage(r, p, nil, ""))
}

func (h *Handler) UserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.ErrValidation("malformed form submission"))
		return
	}

	_, err := h.Accounts.Create(r.Context(), viewer(r), domain.CreateAccountRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		IsAdmin:  r.FormValue("is_admin") != "",
	})
	if err != nil {
		if status := formErrorStatus(err); status != 0 {
			renderHTML(w, status, userFormPage(r, viewer(r), nil, err.Error()))
			return
		}
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/ui/users", http.StatusSeeOther)
}

func (h *Handler) UserEditPage(w http.ResponseWriter, r *http.Request) {
	p := viewer(r)
	if p == nil {
		http.Redirect(w, r, "/ui/login", http.StatusSeeOther)
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	account, err := h.Accounts.Get(r.Context(), p, id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, userFormPage(r, p, account, ""))
}

func (h *Handler) UserUpdate(w http.ResponseWriter, r *http.Request) {
	p := viewer(r)
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.ErrValidation("malformed form submission"))
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	req := domain.UpdateAccountRequest{Username: &username, Email: &email}
	if pw := r.FormValue("password"); pw != "" {
		req.Password = &pw
	}
	// Admin viewers always submit the checkbox state; for anyone else the
	// field is only present when forged, and the policy rejects it.
	if v := r.FormValue("is_admin"); v != "" || (p != nil && p.IsAdmin) {
		isAdmin := v != ""
		req.IsAdmin = &isAdmin
	}

	if _, err := h.Accounts.Update(r.Context(), p, id, req); err != nil {
		if status := formErrorStatus(err); status != 0 {
			stale := &domain.Account{ID: id, Username: username, Email: email}
			renderHTML(w, status, userFormPage(r, p, stale, err.Error()))
			return
		}
		h.renderError(w, r, err)
		return
	}

	if p != nil && p.IsAdmin {
		http.Redirect(w, r, "/ui/users", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/ui/profile", http.StatusSeeOther)
}

// formErrorStatus returns the re-render status for errors the user can fix
// by editing the form, or 0 for everything else.
func formErrorStatus(err error) int {
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	}
	return 0
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p := viewer(r)
	account, posts, stats, err := h.Accounts.Profile(r.Context(), p)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, profilePage(p, account, posts, stats.PostCount, stats.CommentCount))
}
