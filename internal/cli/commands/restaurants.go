package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forkline-dev/forkline/internal/client/api"
)

// NewRestaurantsCmd creates the restaurants command group
func NewRestaurantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "restaurants",
		Aliases: []string{"restaurant"},
		Short:   "Browse and manage restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestaurantsList()
		},
	}

	cmd.AddCommand(newRestaurantsShowCmd())
	cmd.AddCommand(newRestaurantsAddCmd())
	cmd.AddCommand(newRestaurantsRemoveCmd())

	return cmd
}

func runRestaurantsList() error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	restaurants, err := client.Restaurants(context.Background())
	if err != nil {
		return err
	}

	if len(restaurants) == 0 {
		fmt.Println("No restaurants found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCUISINE\tRATING")
	fmt.Fprintln(w, "──\t────\t───────\t──────")

	for _, r := range restaurants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", r.ID, r.Name, r.Cuisine, r.Rating)
	}

	w.Flush()

	return nil
}

func newRestaurantsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <restaurant-id>",
		Short: "Show one restaurant and its menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			restaurant, err := client.Restaurant(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s)\n", restaurant.Name, restaurant.Cuisine)
			if restaurant.Description != "" {
				fmt.Println(restaurant.Description)
			}
			if restaurant.Address != "" {
				fmt.Printf("Address: %s\n", restaurant.Address)
			}
			fmt.Printf("Rating: %.1f\n", restaurant.Rating)

			items, err := client.Menu(ctx, restaurant.ID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("\nNo menu items yet.")
				return nil
			}

			fmt.Println()
			printMenuTable(items)
			return nil
		},
	}
}

func newRestaurantsAddCmd() *cobra.Command {
	var input api.RestaurantInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a restaurant (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			input.Name = args[0]
			restaurant, err := client.CreateRestaurant(context.Background(), input)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created restaurant '%s' (%s)\n", restaurant.Name, restaurant.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Description, "description", "", "Restaurant description")
	cmd.Flags().StringVar(&input.Cuisine, "cuisine", "", "Cuisine type")
	cmd.Flags().StringVar(&input.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&input.ImageURL, "image-url", "", "Image URL")
	cmd.Flags().Float64Var(&input.Rating, "rating", 0, "Rating (0-5)")

	return cmd
}

func newRestaurantsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <restaurant-id>",
		Aliases: []string{"remove"},
		Short:   "Delete a restaurant and its menu (admin only)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireAuth(client); err != nil {
				return err
			}

			if err := client.DeleteRestaurant(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Println("✓ Restaurant deleted")
			return nil
		},
	}
}
