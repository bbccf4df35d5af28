package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/forkline-dev/forkline/internal/client/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Forkline backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set FORKLINE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set FORKLINE_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(email, password string) error {
	// Check for environment variables (useful for scripting)
	if email == "" {
		email = os.Getenv("FORKLINE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("FORKLINE_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or FORKLINE_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or FORKLINE_PASSWORD env var)")
		}
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s...\n", resolveBase())

	// The session is recorded by the SDK as a side effect of a successful
	// login response
	res, err := client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if res.User == nil {
		return fmt.Errorf("login response carried no user")
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", res.User.Name, res.User.Email)
	if res.User.Role == session.RoleAdmin {
		fmt.Println("  Role: Admin")
	}

	return nil
}
