package api

import (
	"net/http"

	"microblog/internal/domain"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	page := pageRequest(r)
	comments, total, err := h.comments.ListForPost(r.Context(), postID, page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]commentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentResponse(&comments[i]))
	}
	writeJSON(w, http.StatusOK, toListResponse(items, total, page))
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), principal(r), domain.CreateCommentRequest{
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.comments.Delete(r.Context(), principal(r), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
