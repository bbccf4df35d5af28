package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/forkline-dev/forkline/internal/models"
	"github.com/forkline-dev/forkline/internal/tasks"
)

// orderAdvanceDelay is how long an order sits in each status before the
// worker moves it along.
const orderAdvanceDelay = 30 * time.Second

// OrderItemRequest selects one menu item and a quantity
type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	RestaurantID    string             `json:"restaurant_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" binding:"required"`
}

// OrderItemDetail is one line of an order as returned in responses
type OrderItemDetail struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// OrderDetail represents an order returned in responses
type OrderDetail struct {
	ID              string            `json:"id"`
	RestaurantID    string            `json:"restaurant_id"`
	RestaurantName  string            `json:"restaurant_name,omitempty"`
	Status          string            `json:"status"`
	Total           float64           `json:"total"`
	DeliveryAddress string            `json:"delivery_address"`
	Items           []OrderItemDetail `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

func orderDetail(order *models.Order) OrderDetail {
	detail := OrderDetail{
		ID:              order.ID,
		RestaurantID:    order.RestaurantID,
		Status:          order.Status,
		Total:           order.Total,
		DeliveryAddress: order.DeliveryAddress,
		Items:           make([]OrderItemDetail, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	if order.Restaurant != nil {
		detail.RestaurantName = order.Restaurant.Name
	}
	for i, item := range order.Items {
		detail.Items[i] = OrderItemDetail{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}
	return detail
}

// @Summary Create order
// @Description Place an order for the authenticated user. The total and the
// @Description line prices are computed server-side from the current menu.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Create order request"
// @Success 201 {object} OrderDetail
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/orders [post]
func (s *Server) createOrder(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := models.FindByID(s.db, req.RestaurantID, &restaurant); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Prices are read from the menu, never trusted from the request
	order := &models.Order{
		UserID:          sessionData.UserID,
		RestaurantID:    restaurant.ID,
		Status:          models.OrderPending,
		DeliveryAddress: req.DeliveryAddress,
	}

	for _, line := range req.Items {
		var item models.MenuItem
		err := s.db.Where("id = ? AND restaurant_id = ?", line.MenuItemID, restaurant.ID).First(&item).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to find menu item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !item.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item is not available: " + item.Name})
			return
		}

		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
		})
		order.Total += item.Price * float64(line.Quantity)
	}

	if err := s.db.Create(order).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// Kick off the lifecycle chain. A queue outage must not fail the order;
	// the worker's sweeper picks up stuck pending orders later.
	task, err := tasks.NewOrderAdvanceTask(order.ID)
	if err == nil {
		_, err = s.asynqClient.Enqueue(task, asynq.ProcessIn(orderAdvanceDelay), asynq.Queue(tasks.QueueDefault))
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("Failed to enqueue order advance task")
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", sessionData.UserID).
		Str("restaurant_id", restaurant.ID).
		Float64("total", order.Total).
		Msg("Order placed")

	order.Restaurant = &restaurant
	c.JSON(http.StatusCreated, orderDetail(order))
}

// @Summary List my orders
// @Description List the authenticated user's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderDetail
// @Router /api/orders/my-orders [get]
func (s *Server) listMyOrders(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var orders []models.Order
	err := s.db.Preload("Items").Preload("Restaurant").
		Where("user_id = ?", sessionData.UserID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	details := make([]OrderDetail, len(orders))
	for i := range orders {
		details[i] = orderDetail(&orders[i])
	}

	c.JSON(http.StatusOK, details)
}
