package server

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forkline-dev/forkline/internal/auth"
	"github.com/forkline-dev/forkline/internal/models"
)

// seedAdmin creates the admin account on first start. Existing deployments
// are left alone even when the configured admin email changes.
func (s *Server) seedAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(s.config.Auth.AdminEmail)

	passwordHash, err := auth.HashPassword(s.config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("Admin user created")
	return nil
}

type seedMenuItem struct {
	Name        string  `yaml:"name" validate:"required"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Price       float64 `yaml:"price" validate:"required,gt=0"`
}

type seedRestaurant struct {
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description"`
	Cuisine     string         `yaml:"cuisine"`
	Address     string         `yaml:"address"`
	ImageURL    string         `yaml:"image_url"`
	Rating      float64        `yaml:"rating" validate:"gte=0,lte=5"`
	Menu        []seedMenuItem `yaml:"menu" validate:"dive"`
}

type seedCatalog struct {
	Restaurants []seedRestaurant `yaml:"restaurants" validate:"dive"`
}

// seedCatalog loads a demo catalog from a YAML file into an empty database.
// A non-empty catalog is never touched.
func (s *Server) seedCatalog(path string) error {
	var count int64
	if err := s.db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Msg("Catalog not empty - skipping seed file")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var catalog seedCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := s.validator.Struct(&catalog); err != nil {
		return fmt.Errorf("invalid seed file: %w", err)
	}

	for _, entry := range catalog.Restaurants {
		restaurant := &models.Restaurant{
			Name:        entry.Name,
			Description: entry.Description,
			Cuisine:     entry.Cuisine,
			Address:     entry.Address,
			ImageURL:    entry.ImageURL,
			Rating:      entry.Rating,
		}
		for _, dish := range entry.Menu {
			restaurant.MenuItems = append(restaurant.MenuItems, models.MenuItem{
				Name:        dish.Name,
				Description: dish.Description,
				Category:    dish.Category,
				Price:       dish.Price,
				Available:   true,
			})
		}
		if err := s.db.Create(restaurant).Error; err != nil {
			return fmt.Errorf("failed to seed restaurant %q: %w", entry.Name, err)
		}
	}

	s.logger.Info().Int("restaurants", len(catalog.Restaurants)).Str("file", path).Msg("Catalog seeded")
	return nil
}
