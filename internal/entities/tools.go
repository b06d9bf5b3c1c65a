package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type PricingType string

const (
	PricingTypeFree     PricingType = "free"
	PricingTypeFreemium PricingType = "freemium"
	PricingTypePaid     PricingType = "paid"
	PricingTypeOneTime  PricingType = "one-time"
	PricingTypeNone     PricingType = "no-pricing"
)

// StringList is a []string stored as a JSON text column so that tags and
// features survive round-trips through SQLite without a join table.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:100" json:"name"`
	Slug         string    `gorm:"uniqueIndex;size:100" json:"slug"`
	Description  string    `gorm:"size:500" json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Tool is the canonical directory record. Slug is the natural key used for
// conflict resolution on import; every ingestion path produces Tools in this
// shape before they reach storage.
type Tool struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Name            string      `gorm:"index;size:200" json:"name"`
	Slug            string      `gorm:"uniqueIndex;size:200" json:"slug"`
	Description     string      `gorm:"size:1000" json:"description,omitempty"`
	WebsiteURL      string      `gorm:"size:500" json:"website_url,omitempty"`
	LogoURL         string      `gorm:"size:500" json:"logo_url,omitempty"`
	PricingType     PricingType `gorm:"size:20" json:"pricing_type"`
	PriceRange      string      `gorm:"size:100" json:"price_range,omitempty"`
	HasFreeTrial    bool        `json:"has_free_trial"`
	CategoryID      uint        `gorm:"index" json:"category_id,omitempty"`
	Category        *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags            StringList  `gorm:"type:text" json:"tags,omitempty"`
	Features        StringList  `gorm:"type:text" json:"features,omitempty"`
	QualityScore    int         `json:"quality_score"`
	PopularityScore int         `json:"popularity_score"`
	IsFeatured      bool        `json:"is_featured"`
	ClickCount      int         `json:"click_count"`
	Source          string      `gorm:"index;size:100" json:"source,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type ToolClick struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ToolID    uint      `gorm:"index" json:"tool_id"`
	IPAddress string    `gorm:"size:64" json:"ip_address,omitempty"`
	ClickedAt time.Time `gorm:"autoCreateTime" json:"clicked_at"`
}
