package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forkline-dev/forkline/internal/client/api"
)

// NewMenuCmd creates the menu command group
func NewMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu <restaurant-id>",
		Short: "Show a restaurant's menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			items, err := client.Menu(context.Background(), args[0])
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("No menu items found.")
				return nil
			}

			printMenuTable(items)
			return nil
		},
	}

	cmd.AddCommand(newMenuAddCmd())
	cmd.AddCommand(newMenuRemoveCmd())

	return cmd
}

func printMenuTable(items []api.MenuItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE")
	fmt.Fprintln(w, "──\t────\t────────\t─────\t─────────")

	for _, item := range items {
		available := "yes"
		if !item.Available {
			available = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
			item.ID, item.Name, item.Category, item.Price, available)
	}

	w.Flush()
}

func newMenuAddCmd() *cobra.Command {
	var input api.MenuItemInput

	cmd := &cobra.Command{
		Use:   "add <restaurant-id> <name>",
		Short: "Add a dish to a menu (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			input.RestaurantID = args[0]
			input.Name = args[1]
			item, err := client.CreateMenuItem(context.Background(), input)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Added '%s' ($%.2f) to the menu (%s)\n", item.Name, item.Price, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Description, "description", "", "Dish description")
	cmd.Flags().StringVar(&input.Category, "category", "", "Menu category")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Price (required)")
	cmd.MarkFlagRequired("price")

	return cmd
}

func newMenuRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <menu-item-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a dish from a menu (admin only)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			if err := client.DeleteMenuItem(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Println("✓ Menu item removed")
			return nil
		},
	}
}
