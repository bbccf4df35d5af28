package cli

import (
	"fmt"
	"os"

	"github.com/forkline-dev/forkline/internal/cli/commands"
	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "forkline",
	Short: "Forkline - Order food from the terminal",
	Long: `Forkline CLI - Browse restaurants, manage menus and place orders.

Customers can browse the catalog, place orders and track them; admins can
manage restaurants and menus. Run 'forkline login' first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("forkline version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewUseHostCmd())
	rootCmd.AddCommand(commands.NewRestaurantsCmd())
	rootCmd.AddCommand(commands.NewMenuCmd())
	rootCmd.AddCommand(commands.NewOrderCmd())
	rootCmd.AddCommand(commands.NewOrdersCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
