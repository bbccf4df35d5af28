package api

import (
	"time"

	"github.com/forkline-dev/forkline/internal/client/session"
)

// AuthResult is the login/register response. The session side effect fires
// only when both Token and User are present.
type AuthResult struct {
	Token string               `json:"token"`
	User  *session.UserSummary `json:"user"`
}

// RegisterInput holds the user registration fields.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Restaurant is a restaurant as returned by the backend.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cuisine     string    `json:"cuisine"`
	Address     string    `json:"address"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// RestaurantInput holds the fields for creating a restaurant.
type RestaurantInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Address     string  `json:"address,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// MenuItem is a dish on a restaurant's menu.
type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Available    bool    `json:"available"`
}

// MenuItemInput holds the fields for creating a menu item.
type MenuItemInput struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category,omitempty"`
	Price        float64 `json:"price"`
}

// OrderItemInput selects one menu item and a quantity.
type OrderItemInput struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// OrderInput holds the fields for placing an order.
type OrderInput struct {
	RestaurantID    string           `json:"restaurant_id"`
	Items           []OrderItemInput `json:"items"`
	DeliveryAddress string           `json:"delivery_address"`
}

// OrderItem is a line of a placed order with the name and price captured at
// order time.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Order is a placed order.
type Order struct {
	ID              string      `json:"id"`
	RestaurantID    string      `json:"restaurant_id"`
	RestaurantName  string      `json:"restaurant_name,omitempty"`
	Status          string      `json:"status"`
	Total           float64     `json:"total"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Profile is the authenticated user's own record.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileInput holds the updatable profile fields.
type ProfileInput struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
