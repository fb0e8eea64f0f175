package security

import (
	"microblog/internal/domain"
)

// Policy decides whether a principal may perform an action on a resource.
// It is a pure function of its inputs: no I/O, no locks, safe to call from
// any number of request goroutines. The caller loads the target's ownership
// fields before asking for a decision, so NotFound is never a policy outcome.
type Policy struct{}

// NewPolicy creates the authorization policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// Authorize returns nil to allow the action. It returns UnauthenticatedError
// when the action needs a principal and none is present, and
// AccessDeniedError with the deny reason otherwise. principal may be nil for
// anonymous requests.
func (p *Policy) Authorize(principal *domain.Principal, action domain.Action, resource domain.Resource) error {
	switch resource.Kind {
	case domain.ResourcePost, domain.ResourceComment:
		return p.authorizeContent(principal, action, resource)
	case domain.ResourceAccount:
		return p.authorizeAccount(principal, action, resource)
	case domain.ResourceAudit:
		return requireAdmin(principal)
	default:
		return domain.ErrAccessDenied("unknown resource kind %q", resource.Kind)
	}
}

// authorizeContent covers posts and comments: public reads, authenticated
// creates, owner-or-admin mutations.
func (p *Policy) authorizeContent(principal *domain.Principal, action domain.Action, resource domain.Resource) error {
	switch action {
	case domain.ActionRead, domain.ActionList:
		return nil
	case domain.ActionCreate:
		if principal == nil {
			return domain.ErrUnauthenticated("authentication required")
		}
		return nil
	case domain.ActionUpdate, domain.ActionDelete:
		if principal == nil {
			return domain.ErrUnauthenticated("authentication required")
		}
		if principal.ID == resource.OwnerID || principal.IsAdmin {
			return nil
		}
		return domain.ErrAccessDenied("not owner")
	default:
		return domain.ErrAccessDenied("unknown action %q", action)
	}
}

// authorizeAccount covers accounts: admin-only management with two carve-outs
// (any authenticated principal may view an account; a principal may update
// their own account) and one absolute rule (nobody deletes themselves, not
// even an admin — checked before the admin bypass).
func (p *Policy) authorizeAccount(principal *domain.Principal, action domain.Action, resource domain.Resource) error {
	if principal == nil {
		return domain.ErrUnauthenticated("authentication required")
	}
	switch action {
	case domain.ActionRead:
		return nil
	case domain.ActionUpdate:
		if principal.ID == resource.ID || principal.IsAdmin {
			return nil
		}
		return domain.ErrAccessDenied("admin required")
	case domain.ActionDelete:
		if principal.ID == resource.ID {
			return domain.ErrAccessDenied("cannot delete self")
		}
		return requireAdmin(principal)
	case domain.ActionCreate, domain.ActionList:
		return requireAdmin(principal)
	default:
		return domain.ErrAccessDenied("unknown action %q", action)
	}
}

// AuthorizeSetAdmin decides whether the principal may change the admin flag
// on the target account. Only admins grant or revoke admin; a non-admin can
// never escalate themselves.
func (p *Policy) AuthorizeSetAdmin(principal *domain.Principal) error {
	return requireAdmin(principal)
}

func requireAdmin(principal *domain.Principal) error {
	if principal == nil {
		return domain.ErrUnauthenticated("authentication required")
	}
	if !principal.IsAdmin {
		return domain.ErrAccessDenied("admin required")
	}
	return nil
}
