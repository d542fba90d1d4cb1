// Package cli implements the administrative commands that run outside
// the HTTP server.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/selahapp/selah/internal/auth"
	"github.com/selahapp/selah/internal/config"
	"github.com/selahapp/selah/internal/database"
)

// CreateUserCommand creates a user account from the command line,
// bypassing the registration endpoint. Useful for bootstrapping a
// deployment before the API is reachable.
type CreateUserCommand struct {
	Name         string
	Email        string
	Password     string
	DatabasePath string
	WithToken    bool
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Name, "name", "", "Display name for the new user (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address for the new user (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new user (required, min 8 characters)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.WithToken, "with-token", false, "Also generate an API token and print it")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account directly in the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -name Anna -email anna@example.com -password secret123\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -name Anna -email anna@example.com -password secret123 -with-token\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("name, email and password are required")
	}

	return nil
}

// Run executes the create-user command
func (cmd *CreateUserCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := auth.NewService(db.DB, cfg.Auth)

	user, err := svc.Register(cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %q (id %d, email %s)\n", user.Name, user.ID, user.Email)

	if cmd.WithToken {
		token, err := svc.GenerateToken(user.ID)
		if err != nil {
			return fmt.Errorf("failed to generate API token: %w", err)
		}
		fmt.Printf("API token: %s\n", token)
		fmt.Println("Store this token securely - it will not be shown again.")
	}

	return nil
}
