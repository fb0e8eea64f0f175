package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/db"
	"microblog/internal/domain"
)

func TestPostRepo_CreateJoinsAuthor(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	accounts := NewAccountRepo(writeDB)
	posts := NewPostRepo(writeDB)
	ctx := context.Background()

	author := mustCreateAccount(t, accounts, "alice", false)

	post, err := posts.Create(ctx, &domain.Post{
		Title: "hello", Content: "world", AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Equal(t, int64(0), post.CommentCount)
}

func TestPostRepo_CommentCount(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	accounts := NewAccountRepo(writeDB)
	posts := NewPostRepo(writeDB)
	comments := NewCommentRepo(writeDB)
	ctx := context.Background()

	author := mustCreateAccount(t, accounts, "alice", false)
	post, err := posts.Create(ctx, &domain.Post{Title: "t", Content: "c", AuthorID: author.ID})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := comments.Create(ctx, &domain.Comment{
			Content: "hi", PostID: post.ID, AuthorID: author.ID,
		})
		require.NoError(t, err)
	}

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.CommentCount)
}

func TestPostRepo_ListByAuthor(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	accounts := NewAccountRepo(writeDB)
	posts := NewPostRepo(writeDB)
	ctx := context.Background()

	alice := mustCreateAccount(t, accounts, "alice", false)
	bob := mustCreateAccount(t, accounts, "bobby", false)

	for i := 0; i < 2; i++ {
		_, err := posts.Create(ctx, &domain.Post{Title: "a", Content: "c", AuthorID: alice.ID})
		require.NoError(t, err)
	}
	_, err := posts.Create(ctx, &domain.Post{Title: "b", Content: "c", AuthorID: bob.ID})
	require.NoError(t, err)

	got, total, err := posts.ListByAuthor(ctx, alice.ID, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
}

func TestPostRepo_DeleteCascadesFromAccount(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	accounts := NewAccountRepo(writeDB)
	posts := NewPostRepo(writeDB)
	comments := NewCommentRepo(writeDB)
	ctx := context.Background()

	author := mustCreateAccount(t, accounts, "alice", false)
	commenter := mustCreateAccount(t, accounts, "bobby", false)

	post, err := posts.Create(ctx, &domain.Post{Title: "t", Content: "c", AuthorID: author.ID})
	require.NoError(t, err)
	comment, err := comments.Create(ctx, &domain.Comment{
		Content: "hi", PostID: post.ID, AuthorID: commenter.ID,
	})
	require.NoError(t, err)

	// Deleting the author removes the post and, through the post, bob's comment.
	require.NoError(t, accounts.Delete(ctx, author.ID))

	var notFound *domain.NotFoundError
	_, err = posts.GetByID(ctx, post.ID)
	require.ErrorAs(t, err, &notFound)
	_, err = comments.GetByID(ctx, comment.ID)
	require.ErrorAs(t, err, &notFound)
}
