package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the web UI under the router's current prefix. The
// sessionAuth middleware resolves the session cookie into a principal; pages
// that need one redirect to the login page when it is absent.
func MountRoutes(r chi.Router, h *Handler, sessionAuth func(http.Handler) http.Handler) {
	r.Use(h.EnsureCSRFToken)
	r.Use(sessionAuth)
	r.Use(h.RequireCSRF)

	r.Get("/", h.Home)

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.RegisterSubmit)
	r.Post("/logout", h.Logout)

	r.Get("/posts/new", h.PostNewPage)
	r.Post("/posts", h.PostCreate)
	r.Get("/posts/{id}", h.PostDetail)
	r.Get("/posts/{id}/edit", h.PostEditPage)
	r.Post("/posts/{id}/edit", h.PostUpdate)
	r.Post("/posts/{id}/delete", h.PostDelete)
	r.Post("/posts/{id}/comments", h.CommentCreate)
	r.Post("/comments/{id}/delete", h.CommentDelete)

	r.Get("/users", h.UsersList)
	r.Get("/users/create", h.UserCreatePage)
	r.Post("/users/create", h.UserCreate)
	r.Get("/users/{id}/edit", h.UserEditPage)
	r.Post("/users/{id}/edit", h.UserUpdate)
	r.Post("/users/{id}/delete", h.UserDelete)
	r.Get("/profile", h.Profile)
}
