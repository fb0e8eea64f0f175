package blog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
)

func TestPostService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	post, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{
		Title: "Hello", Content: "First post",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, user.ID, post.AuthorID)
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Equal(t, int64(0), post.CommentCount)

	_, err = env.posts.Create(ctx, nil, domain.CreatePostRequest{Title: "x", Content: "y"})
	var unauth *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
}

func TestPostService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	tests := []struct {
		name string
		req  domain.CreatePostRequest
	}{
		{"empty title", domain.CreatePostRequest{Title: "", Content: "c"}},
		{"blank title", domain.CreatePostRequest{Title: "   ", Content: "c"}},
		{"long title", domain.CreatePostRequest{Title: strings.Repeat("x", 101), Content: "c"}},
		{"empty content", domain.CreatePostRequest{Title: "t", Content: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.posts.Create(ctx, &user, tt.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestPostService_List_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	for _, title := range []string{"first", "second", "third"} {
		_, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{Title: title, Content: "c"})
		require.NoError(t, err)
	}

	posts, total, err := env.posts.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "first", posts[2].Title)
}

func TestPostService_Update_OwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.register(t, "alice")
	owner := env.register(t, "bobby")
	other := env.register(t, "carol")

	post, err := env.posts.Create(ctx, &owner, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	newTitle := "edited"
	updated, err := env.posts.Update(ctx, &owner, post.ID, domain.UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, "c", updated.Content)

	_, err = env.posts.Update(ctx, &other, post.ID, domain.UpdatePostRequest{Title: &newTitle})
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Contains(t, denied.Error(), "not owner")

	adminTitle := "admin edit"
	_, err = env.posts.Update(ctx, &admin, post.ID, domain.UpdatePostRequest{Title: &adminTitle})
	require.NoError(t, err)
}

func TestPostService_Update_NotFoundBeforeAuthz(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")

	title := "x"
	_, err := env.posts.Update(context.Background(), &user, 9999, domain.UpdatePostRequest{Title: &title})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPostService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")
	owner := env.register(t, "bobby")
	other := env.register(t, "carol")

	post, err := env.posts.Create(ctx, &owner, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = env.posts.Delete(ctx, &other, post.ID)
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)

	require.NoError(t, env.posts.Delete(ctx, &owner, post.ID))

	_, err = env.posts.Get(ctx, post.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPostService_Delete_CascadesComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	post, err := env.posts.Create(ctx, &user, domain.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := env.comments.Create(ctx, &user, domain.CreateCommentRequest{PostID: post.ID, Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, env.posts.Delete(ctx, &user, post.ID))

	_, err = env.comments.Delete(ctx, &user, comment.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
