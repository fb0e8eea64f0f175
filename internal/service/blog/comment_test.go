package blog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
)

func TestCommentService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	post, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	comment, err := env.comments.Create(ctx, &user, domain.CreateCommentRequest{
		PostID: post.ID, Content: "nice post",
	})
	require.NoError(t, err)
	assert.Equal(t, "nice post", comment.Content)
	assert.Equal(t, "alice", comment.AuthorUsername)

	// Comment count is reflected on the post.
	got, err := env.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CommentCount)
}

func TestCommentService_Create_Denied(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	post, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = env.comments.Create(ctx, nil, domain.CreateCommentRequest{PostID: post.ID, Content: "hi"})
	var unauth *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
}

func TestCommentService_Create_MissingPost(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")

	_, err := env.comments.Create(context.Background(), &user, domain.CreateCommentRequest{
		PostID: 9999, Content: "hi",
	})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCommentService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	post, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	for _, content := range []string{"", "   ", strings.Repeat("x", 501)} {
		_, err := env.comments.Create(ctx, &user, domain.CreateCommentRequest{
			PostID: post.ID, Content: content,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "content %q", content)
	}
}

func TestCommentService_ListForPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	post, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	for _, content := range []string{"one", "two"} {
		_, err := env.comments.Create(ctx, &user, domain.CreateCommentRequest{PostID: post.ID, Content: content})
		require.NoError(t, err)
	}

	comments, total, err := env.comments.ListForPost(ctx, post.ID, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, comments, 2)

	_, _, err = env.comments.ListForPost(ctx, 9999, domain.PageRequest{})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCommentService_Delete_OwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.register(t, "alice")
	owner := env.register(t, "bobby")
	other := env.register(t, "carol")

	post, err := env.posts.Create(ctx, &owner, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	c1, err := env.comments.Create(ctx, &owner, domain.CreateCommentRequest{PostID: post.ID, Content: "mine"})
	require.NoError(t, err)
	c2, err := env.comments.Create(ctx, &owner, domain.CreateCommentRequest{PostID: post.ID, Content: "also mine"})
	require.NoError(t, err)

	_, err = env.comments.Delete(ctx, &other, c1.ID)
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Contains(t, denied.Error(), "not owner")

	postID, err := env.comments.Delete(ctx, &owner, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, postID)

	_, err = env.comments.Delete(ctx, &admin, c2.ID)
	require.NoError(t, err)
}
