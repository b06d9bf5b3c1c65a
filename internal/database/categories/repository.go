// Package categories provides database operations for category management.
package categories

import (
	"gorm.io/gorm"

	"github.com/toolm8/toolm8/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every category ordered by display order.
func (r *Repository) GetAll() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("display_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

// GetFeatured returns categories highlighted on the landing page.
func (r *Repository) GetFeatured() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Where("is_featured = ?", true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

// GetBySlug retrieves a single category by its slug.
func (r *Repository) GetBySlug(slug string) (*entities.Category, error) {
	var category entities.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindIDBySlug resolves a category slug to its ID, returning 0 when the slug
// is unknown so callers can treat the category as unassigned.
func (r *Repository) FindIDBySlug(slug string) uint {
	var category entities.Category
	if err := r.db.Select("id").Where("slug = ?", slug).First(&category).Error; err != nil {
		return 0
	}
	return category.ID
}
