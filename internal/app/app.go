// Package app wires the database, repositories, and services into one
// application object shared by the server and the CLI.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"microblog/internal/config"
	"microblog/internal/db"
	"microblog/internal/db/repository"
	"microblog/internal/domain"
	"microblog/internal/service/blog"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// Repos bundles the repositories.
type Repos struct {
	Accounts domain.AccountRepository
	Posts    domain.PostRepository
	Comments domain.CommentRepository
	Sessions domain.SessionRepository
	Audit    domain.AuditRepository
}

// App holds the wired application.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	WriteDB *sql.DB
	ReadDB  *sql.DB
	Repos   Repos

	Policy        *security.Policy
	Tokens        *security.TokenService
	Sessions      *security.SessionService
	Resolver      *security.Resolver
	Authenticator *security.Authenticator

	Audit    *governance.AuditService
	Accounts *blog.AccountService
	Posts    *blog.PostService
	Comments *blog.CommentService
}

// New opens the database, runs migrations, and wires all services.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	writeDB, readDB, err := db.OpenSQLitePair(cfg.DBPath, 4)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.RunMigrations(writeDB); err != nil {
		writeDB.Close()
		readDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Repos that mutate use the write pool; the session repo also deletes on
	// read (expiry), so it stays on the write pool.
	repos := Repos{
		Accounts: repository.NewAccountRepo(writeDB),
		Posts:    repository.NewPostRepo(writeDB),
		Comments: repository.NewCommentRepo(writeDB),
		Sessions: repository.NewSessionRepo(writeDB),
		Audit:    repository.NewAuditRepo(writeDB),
	}

	tokens, err := security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		writeDB.Close()
		readDB.Close()
		return nil, err
	}

	policy := security.NewPolicy()
	sessions := security.NewSessionService(repos.Sessions, cfg.SessionTTL)
	// The resolver looks up the account on every request; that read-only
	// traffic goes to the read pool.
	resolver := security.NewResolver(tokens, sessions, repository.NewAccountRepo(readDB))
	authenticator := security.NewAuthenticator(repos.Accounts)
	audit := governance.NewAuditService(repos.Audit, logger)

	return &App{
		Config:        cfg,
		Logger:        logger,
		WriteDB:       writeDB,
		ReadDB:        readDB,
		Repos:         repos,
		Policy:        policy,
		Tokens:        tokens,
		Sessions:      sessions,
		Resolver:      resolver,
		Authenticator: authenticator,
		Audit:         audit,
		Accounts:      blog.NewAccountService(repos.Accounts, repos.Posts, repos.Comments, policy, audit),
		Posts:         blog.NewPostService(repos.Posts, policy, audit),
		Comments:      blog.NewCommentService(repos.Comments, repos.Posts, policy, audit),
	}, nil
}

// Close releases the database pools.
func (a *App) Close() {
	_ = a.ReadDB.Close()
	_ = a.WriteDB.Close()
}
