package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkline-dev/forkline/internal/cli/userconfig"
	"github.com/forkline-dev/forkline/internal/client/gateway"
)

// NewUseHostCmd creates the use-host command
func NewUseHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-host <host>",
		Short: "Select the backend host (localhost for development)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]

			if err := userconfig.SetSelectedHost(host); err != nil {
				return fmt.Errorf("failed to save selected host: %w", err)
			}

			fmt.Printf("✓ Using %s (%s)\n", host, gateway.ResolveBase(host))
			return nil
		},
	}
}
