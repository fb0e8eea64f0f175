package domain

// Action is an operation a principal attempts against a resource.
type Action string

// Actions checked by the authorization policy.
const (
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceKind identifies the type of resource an action targets.
type ResourceKind string

// Resource kinds known to the authorization policy.
const (
	ResourceAccount ResourceKind = "account"
	ResourcePost    ResourceKind = "post"
	ResourceComment ResourceKind = "comment"
	ResourceAudit   ResourceKind = "audit"
)

// Resource carries the ownership fields the policy needs to decide. For
// accounts, OwnerID equals ID (an account owns itself). The caller loads these
// fields from the store before asking for a decision, so the policy itself
// never performs I/O.
type Resource struct {
	Kind    ResourceKind
	ID      int64
	OwnerID int64
}

// AccountResource builds a policy resource for an account.
func AccountResource(id int64) Resource {
	return Resource{Kind: ResourceAccount, ID: id, OwnerID: id}
}

// PostResource builds a policy resource for a post.
func PostResource(id, authorID int64) Resource {
	return Resource{Kind: ResourcePost, ID: id, OwnerID: authorID}
}

// CommentResource builds a policy resource for a comment.
func CommentResource(id, authorID int64) Resource {
	return Resource{Kind: ResourceComment, ID: id, OwnerID: authorID}
}
