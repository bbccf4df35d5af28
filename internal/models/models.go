package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// User roles. Role comparisons are exact and case-sensitive.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Order statuses, in lifecycle order. Cancelled is terminal and reachable
// from pending only.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents an account. Passwords are stored as bcrypt hashes only.
type User struct {
	BaseModel
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	Role         string    `json:"role" gorm:"not null;default:customer"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Restaurant represents a restaurant customers can order from
type Restaurant struct {
	BaseModel
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Cuisine     string  `json:"cuisine"`
	Address     string  `json:"address"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating" gorm:"not null;default:0"`

	// Relationships
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// MenuItem represents one dish on a restaurant's menu
type MenuItem struct {
	BaseModel
	RestaurantID string  `json:"restaurant_id" gorm:"not null;index"`
	Name         string  `json:"name" gorm:"not null"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" gorm:"not null"`
	Available    bool    `json:"available" gorm:"not null;default:true"`

	// Relationships
	Restaurant Restaurant `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// Order represents a placed order. Total and item prices are captured at
// order time so later menu edits never change past orders.
type Order struct {
	BaseModel
	UserID          string  `json:"user_id" gorm:"not null;index"`
	RestaurantID    string  `json:"restaurant_id" gorm:"not null"`
	Status          string  `json:"status" gorm:"not null;default:pending"`
	Total           float64 `json:"total" gorm:"not null"`
	DeliveryAddress string  `json:"delivery_address"`

	// Relationships
	User       *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Restaurant *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL"`
	Items      []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// NextStatus returns the next lifecycle step for an order status and whether
// a step exists. Delivered and cancelled are terminal.
func NextStatus(status string) (string, bool) {
	switch status {
	case OrderPending:
		return OrderConfirmed, true
	case OrderConfirmed:
		return OrderPreparing, true
	case OrderPreparing:
		return OrderDelivered, true
	default:
		return "", false
	}
}

// OrderItem is one line of an order
type OrderItem struct {
	BaseModel
	OrderID    string  `json:"-" gorm:"not null;index"`
	MenuItemID string  `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Restaurant{}, &MenuItem{}, &Order{}, &OrderItem{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
