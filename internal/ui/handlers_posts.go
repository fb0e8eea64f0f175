package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"microblog/internal/domain"
)

func urlID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid id %q", raw)
	}
	return id, nil
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	posts, _, err := h.Posts.List(r.Context(), domain.PageRequest{MaxResults: 25})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, postsPage(viewer(r), posts))
}

func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	comments, _, err := h.Comments.ListForPost(r.Context(), id, domain.PageRequest{MaxResults: 100})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, postDetailPage(r, viewer(r), post, comments))
}

func (h *Handler) PostNewPage(w http.ResponseWriter, r *http.Request) {
	p := viewer(r)
	if p == nil {
		http.Redirect(w, r, "/ui/login", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, postFormPage(r, p, nil, ""))
}

func (h *Handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.ErrValidation("malformed form submission"))
		return
	}

	post, err := h.Posts.Create(r.Context(), viewer(r), domain.CreatePostRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	})
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			renderHTML(w, http.StatusBadRequest, postFormPage(r, viewer(r), nil, err.Error()))
			return
		}
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/ui/posts/%d", post.ID), http.StatusSeeOther)
}

func (h *Handler) PostEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, postFormPage(r, viewer(r), post, ""))
}

func (h *Handler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.ErrValidation("malformed form submission"))
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	post, err := h.Posts.Update(r.Context(), viewer(r), id, domain.UpdatePostRequest{
		Title:   &title,
		Content: &content,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/ui/posts/%d", post.ID), http.StatusSeeOther)
}

func (h *Handler) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := h.Posts.Delete(r.Context(), viewer(r), id); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/ui", http.StatusSeeOther)
}

func (h *Handler) CommentCreate(w http.ResponseWriter, r *http.Request) {
	postID, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.ErrValidation("malformed form submission"))
		return
	}

	_, err = h.Comments.Create(r.Context(), viewer(r), domain.CreateCommentRequest{
		PostID:  postID,
		Content: r.FormValue("content"),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/ui/posts/%d", postID), http.StatusSeeOther)
}

func (h *Handler) CommentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	postID, err := h.Comments.Delete(r.Context(), viewer(r), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/ui/posts/%d", postID), http.StatusSeeOther)
}
