// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, category seeding
//	├── tools/           # Tool catalog CRUD, dedup checks and bulk writes
//	└── categories/      # Category lookups used for tag-based assignment
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./toolm8.db")
//
//	// Create domain-specific repositories
//	toolsRepo := tools.NewRepository(db.DB)
//	categoriesRepo := categories.NewRepository(db.DB)
//
//	// Use repositories
//	tool, err := toolsRepo.GetBySlug("chatgpt")
//	featured, err := categoriesRepo.GetFeatured()
//
// # Interface Implementations
//
// Each sub-package implements specific interfaces:
//
//   - tools.Repository: implements services.ToolStore, http.ToolLister,
//     http.ClickRecorder, http.CatalogAdmin and scraper.ToolSink
//   - categories.Repository: implements services.CategoryResolver and
//     http.CategoryLister
//
// # Adding a New Domain
//
// To add a new domain (e.g., reviews):
//
//  1. Create a new sub-package: internal/database/reviews/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
