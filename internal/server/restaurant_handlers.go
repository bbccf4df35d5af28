package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkline-dev/forkline/internal/models"
)

// CreateRestaurantRequest represents a request to create a restaurant
type CreateRestaurantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Cuisine     string  `json:"cuisine"`
	Address     string  `json:"address"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} models.Restaurant
// @Router /api/restaurants [get]
func (s *Server) listRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := s.db.Order("name ASC").Find(&restaurants).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list restaurants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// @Summary Get restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} models.Restaurant
// @Failure 404 {object} map[string]interface{}
// @Router /api/restaurants/{id} [get]
func (s *Server) getRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := s.db.Preload("MenuItems").Where("id = ?", c.Param("id")).First(&restaurant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// @Summary Create restaurant
// @Description Create a restaurant (admin only)
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRestaurantRequest true "Create restaurant request"
// @Success 201 {object} models.Restaurant
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/restaurants [post]
func (s *Server) createRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := &models.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
	}

	if err := s.db.Create(restaurant).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}

	sessionData, _ := GetSessionData(c)
	s.logger.Info().
		Str("restaurant_id", restaurant.ID).
		Str("created_by", sessionData.UserID).
		Msg("Restaurant created")

	c.JSON(http.StatusCreated, restaurant)
}

// @Summary Delete restaurant
// @Description Delete a restaurant and its menu (admin only)
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/restaurants/{id} [delete]
func (s *Server) deleteRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := models.FindByID(s.db, c.Param("id"), &restaurant); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// The menu goes with the restaurant
	if err := s.db.Where("restaurant_id = ?", restaurant.ID).Delete(&models.MenuItem{}).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}
	if err := s.db.Delete(&restaurant).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}

	sessionData, _ := GetSessionData(c)
	s.logger.Info().
		Str("restaurant_id", restaurant.ID).
		Str("deleted_by", sessionData.UserID).
		Msg("Restaurant deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}
