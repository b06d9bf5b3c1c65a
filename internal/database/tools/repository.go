// Package tools provides database operations for tool catalog management.
//
// This package implements the ToolStore interface defined in
// internal/services/interfaces.go.
//
// # Usage
//
//	repo := tools.NewRepository(db)
//	inserted, failures, err := repo.BulkUpsert(parsed)
package tools

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toolm8/toolm8/internal/entities"
)

// Repository handles all tool database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tools repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ExistingSlugs returns the set of slugs already present in the catalog.
func (r *Repository) ExistingSlugs() (map[string]bool, error) {
	var slugs []string
	err := r.db.Model(&entities.Tool{}).Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		existing[slug] = true
	}
	return existing, nil
}

// CheckDuplicate reports whether a tool matching the candidate already exists.
// A match on case-insensitive name, website URL or slug counts as a duplicate.
func (r *Repository) CheckDuplicate(tool *entities.Tool) (bool, error) {
	query := r.db.Model(&entities.Tool{}).
		Where("LOWER(name) = ?", strings.ToLower(tool.Name)).
		Or("slug = ?", tool.Slug)
	if tool.WebsiteURL != "" {
		query = query.Or("website_url = ?", tool.WebsiteURL)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// BulkInsert creates tools one at a time so a single bad record cannot fail
// the whole batch. It returns the inserted count and per-record failures.
func (r *Repository) BulkInsert(tools []entities.Tool) (int, []string, error) {
	inserted := 0
	var failures []string

	for i := range tools {
		if err := r.db.Create(&tools[i]).Error; err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", tools[i].Slug, err))
			continue
		}
		inserted++
	}

	if len(failures) > 0 {
		log.Printf("Bulk insert: %d inserted, %d failed", inserted, len(failures))
	}
	return inserted, failures, nil
}

// BulkUpsert writes tools with ON CONFLICT (slug) DO UPDATE semantics: new
// slugs are inserted, existing slugs get their mutable fields refreshed.
// Like BulkInsert it degrades per record rather than per batch.
func (r *Repository) BulkUpsert(tools []entities.Tool) (int, []string, error) {
	written := 0
	var failures []string

	upsert := clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"description",
			"website_url",
			"logo_url",
			"pricing_type",
			"price_range",
			"has_free_trial",
			"tags",
			"features",
			"quality_score",
			"popularity_score",
			"source",
			"updated_at",
		}),
	}

	for i := range tools {
		if err := r.db.Clauses(upsert).Create(&tools[i]).Error; err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", tools[i].Slug, err))
			continue
		}
		written++
	}

	if len(failures) > 0 {
		log.Printf("Bulk upsert: %d written, %d failed", written, len(failures))
	}
	return written, failures, nil
}

// List returns tools ordered by popularity then quality, with optional
// filtering by category and pricing type.
func (r *Repository) List(filter ListFilter) ([]entities.Tool, int64, error) {
	query := r.db.Model(&entities.Tool{})

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.PricingType != "" {
		query = query.Where("pricing_type = ?", filter.PricingType)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Category").
		Order("popularity_score DESC, quality_score DESC, name ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tools []entities.Tool
	err := query.Find(&tools).Error
	return tools, total, err
}

// ListFilter narrows and paginates List results. Zero values mean "no filter".
type ListFilter struct {
	CategoryID  uint
	PricingType entities.PricingType
	Source      string
	Search      string
	Limit       int
	Offset      int
}

// GetBySlug retrieves a single tool by its slug.
func (r *Repository) GetBySlug(slug string) (*entities.Tool, error) {
	var tool entities.Tool
	err := r.db.Preload("Category").Where("slug = ?", slug).First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// CountBySource returns how many tools each ingestion source contributed.
func (r *Repository) CountBySource() (map[string]int64, error) {
	type row struct {
		Source string
		Total  int64
	}

	var rows []row
	err := r.db.Model(&entities.Tool{}).
		Select("source, COUNT(*) as total").
		Group("source").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Source] = r.Total
	}
	return counts, nil
}

// Count returns the total number of tools in the catalog.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Tool{}).Count(&count).Error
	return count, err
}

// DeleteBySource removes every tool imported from the given source and
// returns how many rows were deleted.
func (r *Repository) DeleteBySource(source string) (int64, error) {
	result := r.db.Where("source = ?", source).Delete(&entities.Tool{})
	return result.RowsAffected, result.Error
}

// DeleteAll clears the whole catalog. Used by the admin reset endpoint.
func (r *Repository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entities.Tool{})
	return result.RowsAffected, result.Error
}

// RecordClick registers an outbound click, bumping both the click counter
// and the popularity score so clicked tools rise in the default ordering.
func (r *Repository) RecordClick(toolID uint, ipAddress string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entities.ToolClick{ToolID: toolID, IPAddress: ipAddress}).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Tool{}).
			Where("id = ?", toolID).
			UpdateColumns(map[string]interface{}{
				"click_count":      gorm.Expr("click_count + 1"),
				"popularity_score": gorm.Expr("popularity_score + 1"),
			}).Error
	})
}
