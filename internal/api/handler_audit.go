package api

import (
	"net/http"

	"microblog/internal/domain"
)

// listAudit returns the audit trail. Admin only.
func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	if err := h.policy.Authorize(principal(r), domain.ActionList, domain.Resource{Kind: domain.ResourceAudit}); err != nil {
		writeError(w, h.logger, err)
		return
	}

	page := pageRequest(r)
	entries, total, err := h.audit.List(r.Context(), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditEntryResponse{
			ID:        e.ID,
			Principal: e.Principal,
			Action:    e.Action,
			Resource:  e.Resource,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, toListResponse(items, total, page))
}
