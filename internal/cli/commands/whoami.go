package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newSessionStore()
			if err != nil {
				return err
			}

			if !store.IsAuthenticated() {
				fmt.Println("Not logged in.")
				return nil
			}

			user := store.CurrentUser()
			if user == nil {
				// Token without a readable profile still counts as a session
				fmt.Println("Logged in (profile unavailable).")
				return nil
			}

			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			fmt.Printf("Role: %s\n", user.Role)
			return nil
		},
	}
}
