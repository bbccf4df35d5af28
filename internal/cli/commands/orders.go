package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewOrdersCmd creates the orders command
func NewOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			orders, err := client.MyOrders(context.Background())
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Println("No orders yet.")
				fmt.Println("\nPlace one with: forkline order")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRESTAURANT\tSTATUS\tTOTAL\tPLACED AT")
			fmt.Fprintln(w, "──\t──────────\t──────\t─────\t─────────")

			for _, order := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
					order.ID,
					order.RestaurantName,
					order.Status,
					order.Total,
					order.CreatedAt.Local().Format("2006-01-02 15:04"),
				)
			}

			w.Flush()

			return nil
		},
	}
}
