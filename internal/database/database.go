package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/normalize"
)

var defaultCategories = []entities.Category{
	{Name: "Writing", Description: "Writing assistants, copywriting and editing tools", DisplayOrder: 1, IsFeatured: true},
	{Name: "Image Generation", Description: "Text-to-image and image editing tools", DisplayOrder: 2, IsFeatured: true},
	{Name: "Video", Description: "Video generation, editing and avatar tools", DisplayOrder: 3, IsFeatured: true},
	{Name: "Development", Description: "Coding assistants and developer tooling", DisplayOrder: 4, IsFeatured: true},
	{Name: "Audio", Description: "Voice synthesis, music and transcription tools", DisplayOrder: 5},
	{Name: "Marketing", Description: "SEO, advertising and social media tools", DisplayOrder: 6},
	{Name: "Design", Description: "UI, logo and brand design tools", DisplayOrder: 7},
	{Name: "Productivity", Description: "Workflow, meeting and organization tools", DisplayOrder: 8},
	{Name: "Data", Description: "Analytics, dashboards and data processing tools", DisplayOrder: 9},
	{Name: "Research", Description: "Search, summarization and knowledge tools", DisplayOrder: 10},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Tool{},
		&entities.ToolClick{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.SeedCategories(); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedCategories creates any default categories missing from the database.
// Called at startup and exposed to the admin API for re-seeding.
func (d *Database) SeedCategories() error {
	for _, category := range defaultCategories {
		category.Slug = normalize.Slug(category.Name)

		var existing entities.Category
		result := d.DB.Where("slug = ?", category.Slug).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", category.Name, err)
			}
			log.Printf("Created category: %s", category.Name)
		}
	}
	return nil
}
