package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkline-dev/forkline/internal/client/api"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			profile, err := client.Profile(context.Background())
			if err != nil {
				return err
			}

			printProfile(profile)
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func printProfile(p *api.Profile) {
	fmt.Printf("%s <%s>\n", p.Name, p.Email)
	fmt.Printf("Role: %s\n", p.Role)
	if p.Phone != "" {
		fmt.Printf("Phone: %s\n", p.Phone)
	}
	if p.Address != "" {
		fmt.Printf("Address: %s\n", p.Address)
	}
	fmt.Printf("Member since: %s\n", p.CreatedAt.Local().Format("2006-01-02"))
}

func newProfileUpdateCmd() *cobra.Command {
	var input api.ProfileInput

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Name == "" && input.Phone == "" && input.Address == "" {
				return fmt.Errorf("nothing to update (use --name, --phone or --address)")
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			profile, err := client.UpdateProfile(context.Background(), input)
			if err != nil {
				return err
			}

			fmt.Println("✓ Profile updated")
			printProfile(profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&input.Address, "address", "", "Default delivery address")

	return cmd
}
