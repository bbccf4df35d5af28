package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkline-dev/forkline/internal/models"
)

// CreateMenuItemRequest represents a request to add a dish to a menu
type CreateMenuItemRequest struct {
	RestaurantID string  `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" binding:"required,gt=0"`
}

// @Summary Get menu
// @Description List a restaurant's menu items
// @Tags menu
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Success 200 {array} models.MenuItem
// @Failure 404 {object} map[string]interface{}
// @Router /api/menu/{restaurantId} [get]
func (s *Server) getMenu(c *gin.Context) {
	restaurantID := c.Param("restaurantId")

	var restaurant models.Restaurant
	if err := models.FindByID(s.db, restaurantID, &restaurant); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var items []models.MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("category ASC, name ASC").Find(&items).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Create menu item
// @Description Add a dish to a restaurant's menu (admin only)
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMenuItemRequest true "Create menu item request"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/menu [post]
func (s *Server) createMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
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

	item := &models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Available:    true,
	}

	if err := s.db.Create(item).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create menu item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// @Summary Delete menu item
// @Description Remove a dish from a menu (admin only)
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/menu/{id} [delete]
func (s *Server) deleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := models.FindByID(s.db, c.Param("id"), &item); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find menu item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&item).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete menu item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
