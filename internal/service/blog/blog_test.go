package blog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"microblog/internal/db"
	"microblog/internal/db/repository"
	"microblog/internal/domain"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// testEnv wires the services against a fresh SQLite database.
type testEnv struct {
	accounts *AccountService
	posts    *PostService
	comments *CommentService
	audit    *governance.AuditService
	repo     struct {
		accounts *repository.AccountRepo
		audit    *repository.AuditRepo
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	writeDB, _ := db.OpenTestSQLite(t)
	accountRepo := repository.NewAccountRepo(writeDB)
	postRepo := repository.NewPostRepo(writeDB)
	commentRepo := repository.NewCommentRepo(writeDB)
	auditRepo := repository.NewAuditRepo(writeDB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	policy := security.NewPolicy()
	audit := governance.NewAuditService(auditRepo, logger)

	env := &testEnv{
		accounts: NewAccountService(accountRepo, postRepo, commentRepo, policy, audit),
		posts:    NewPostService(postRepo, policy, audit),
		comments: NewCommentService(commentRepo, postRepo, policy, audit),
		audit:    audit,
	}
	env.repo.accounts = accountRepo
	env.repo.audit = auditRepo
	return env
}

// register creates an account through the public path and returns its
// principal. The first call in a test therefore yields the admin.
func (env *testEnv) register(t *testing.T, username string) domain.Principal {
	t.Helper()
	account, err := env.accounts.Register(context.Background(), domain.CreateAccountRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return domain.PrincipalFromAccount(account)
}
