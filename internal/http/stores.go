package http

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller declares only the operations it needs; the
// GORM repositories in internal/database satisfy them.

import (
	"github.com/toolm8/toolm8/internal/database/tools"
	"github.com/toolm8/toolm8/internal/entities"
)

// ToolLister provides read access to the tool catalog.
type ToolLister interface {
	List(filter tools.ListFilter) ([]entities.Tool, int64, error)
	GetBySlug(slug string) (*entities.Tool, error)
}

// ClickRecorder registers outbound clicks on tools.
type ClickRecorder interface {
	RecordClick(toolID uint, ipAddress string) error
}

// CatalogAdmin provides the destructive and aggregate operations behind the
// admin endpoints.
type CatalogAdmin interface {
	Count() (int64, error)
	CountBySource() (map[string]int64, error)
	DeleteBySource(source string) (int64, error)
	DeleteAll() (int64, error)
}

// CategoryLister provides read access to categories.
type CategoryLister interface {
	GetAll() ([]entities.Category, error)
	GetFeatured() ([]entities.Category, error)
}
