package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/forkline-dev/forkline/internal/client/api"
)

// NewOrderCmd creates the interactive order command
func NewOrderCmd() *cobra.Command {
	var deliveryAddress string

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(deliveryAddress)
		},
	}

	cmd.Flags().StringVar(&deliveryAddress, "address", "", "Delivery address (prompted if not provided)")

	return cmd
}

func runOrder(deliveryAddress string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireAuth(client); err != nil {
		return err
	}

	ctx := context.Background()

	restaurant, err := promptRestaurantSelection(ctx, client)
	if err != nil {
		return err
	}

	items, err := client.Menu(ctx, restaurant.ID)
	if err != nil {
		return err
	}
	available := items[:0]
	for _, item := range items {
		if item.Available {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		return fmt.Errorf("'%s' has no available menu items", restaurant.Name)
	}

	var cart []api.OrderItemInput
	var estimated float64
	for {
		item, done, err := promptMenuItemSelection(available, len(cart) > 0)
		if err != nil {
			return err
		}
		if done {
			break
		}

		quantity, err := promptQuantity()
		if err != nil {
			return err
		}

		cart = append(cart, api.OrderItemInput{MenuItemID: item.ID, Quantity: quantity})
		estimated += item.Price * float64(quantity)
		fmt.Printf("  %d × %s added ($%.2f so far)\n", quantity, item.Name, estimated)
	}

	if len(cart) == 0 {
		return fmt.Errorf("order is empty")
	}

	if deliveryAddress == "" {
		prompt := promptui.Prompt{
			Label: "Delivery address",
			Validate: func(input string) error {
				if input == "" {
					return fmt.Errorf("delivery address is required")
				}
				return nil
			},
		}
		deliveryAddress, err = prompt.Run()
		if err != nil {
			return fmt.Errorf("order cancelled: %w", err)
		}
	}

	order, err := client.PlaceOrder(ctx, api.OrderInput{
		RestaurantID:    restaurant.ID,
		Items:           cart,
		DeliveryAddress: deliveryAddress,
	})
	if err != nil {
		return err
	}

	// The server prices the order from its own menu records
	fmt.Printf("\n✓ Order placed at %s\n", restaurant.Name)
	fmt.Printf("  Order ID: %s\n", order.ID)
	fmt.Printf("  Total: $%.2f\n", order.Total)
	fmt.Printf("  Status: %s\n", order.Status)
	fmt.Println("\nTrack it with: forkline orders")
	return nil
}

// promptRestaurantSelection shows an interactive prompt for the user to pick
// a restaurant
func promptRestaurantSelection(ctx context.Context, client *api.Client) (*api.Restaurant, error) {
	restaurants, err := client.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, fmt.Errorf("no restaurants available")
	}

	type restaurantOption struct {
		Label      string
		Restaurant *api.Restaurant
	}

	options := make([]restaurantOption, len(restaurants))
	for i := range restaurants {
		r := &restaurants[i]
		options[i] = restaurantOption{
			Label:      fmt.Sprintf("%s (%s, %.1f★)", r.Name, r.Cuisine, r.Rating),
			Restaurant: r,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a restaurant",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("restaurant selection cancelled: %w", err)
	}

	return options[index].Restaurant, nil
}

// promptMenuItemSelection picks one dish, or reports done=true when the user
// chooses the checkout entry shown after the first item
func promptMenuItemSelection(items []api.MenuItem, allowDone bool) (*api.MenuItem, bool, error) {
	type itemOption struct {
		Label string
		Item  *api.MenuItem
	}

	var options []itemOption
	if allowDone {
		options = append(options, itemOption{Label: "Done, place the order"})
	}
	for i := range items {
		item := &items[i]
		options = append(options, itemOption{
			Label: fmt.Sprintf("%s ($%.2f)", item.Name, item.Price),
			Item:  item,
		})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Add to order",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, false, fmt.Errorf("order cancelled: %w", err)
	}

	if options[index].Item == nil {
		return nil, true, nil
	}
	return options[index].Item, false, nil
}

func promptQuantity() (int, error) {
	prompt := promptui.Prompt{
		Label:   "Quantity",
		Default: "1",
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 {
				return fmt.Errorf("quantity must be a positive number")
			}
			return nil
		},
	}

	raw, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("order cancelled: %w", err)
	}

	return strconv.Atoi(raw)
}
