// Package main is the admin CLI for the blog platform. It operates directly
// on the database, bypassing the HTTP surface, for bootstrap and maintenance
// tasks that must work before any account can log in.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"microblog/internal/app"
	"microblog/internal/config"
	"microblog/internal/domain"
	"microblog/internal/service/security"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openApp loads config and wires the application with a quiet logger.
func openApp() (*app.App, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.New(cfg, logger)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "microblog",
		Short:         "Blog platform admin CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newCreateAdminCmd())
	rootCmd.AddCommand(newIssueTokenCmd())
	rootCmd.AddCommand(newPurgeSessionsCmd())
	return rootCmd
}

// newCreateAdminCmd creates an admin account directly in the store. This is
// the recovery path when no admin can log in.
func newCreateAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			req := domain.CreateAccountRequest{
				Username: username,
				Email:    email,
				Password: password,
				IsAdmin:  true,
			}
			account, err := createAccountDirect(cmd.Context(), a, req)
			if err != nil {
				return err
			}
			fmt.Printf("created admin account %q (id %d)\n", account.Username, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (4-20 characters)")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (min 6 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// createAccountDirect validates and inserts an account without going through
// the authorization policy — the CLI runs with operator privileges.
func createAccountDirect(ctx context.Context, a *app.App, req domain.CreateAccountRequest) (*domain.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	return a.Repos.Accounts.Create(ctx, &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
	})
}

func newIssueTokenCmd() *cobra.Command {
	var accountID int64

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Issue a bearer token for an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			account, err := a.Repos.Accounts.GetByID(cmd.Context(), accountID)
			if err != nil {
				return err
			}
			token, err := a.Tokens.Issue(account.ID)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account-id", 0, "account id to issue the token for")
	_ = cmd.MarkFlagRequired("account-id")
	return cmd
}

func newPurgeSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Remove expired web sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Sessions.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("purged %d expired sessions\n", n)
			return nil
		},
	}
}
