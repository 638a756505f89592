package models

import (
	"time"

	"github.com/roboreach/site-api/internal/resource"
)

// Enumerated field allow-lists. Writes carrying values outside these sets are
// rejected before any store call.
const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"

	PartnerTypeUniversity = "university"
	PartnerTypeCorporate  = "corporate"
	PartnerTypeNGO        = "ngo"

	ToolCategoryProgramming = "programming"
	ToolCategoryHardware    = "hardware"
	ToolCategorySoftware    = "software"
	ToolCategoryPlatform    = "platform"

	ResourceTypeGuide   = "guide"
	ResourceTypeVideo   = "video"
	ResourceTypeArticle = "article"
	ResourceTypeDataset = "dataset"
)

// Project is a robotics-education programme shown on the public site.
type Project struct {
	resource.Meta
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Status      string  `db:"status" json:"status"`
	ImageURL    *string `db:"image_url" json:"image_url,omitempty"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsVisible   bool    `db:"is_visible" json:"is_visible"`
}

// Partner is a supporting organisation.
type Partner struct {
	resource.Meta
	Name       string  `db:"name" json:"name"`
	Type       string  `db:"type" json:"type"`
	LogoURL    *string `db:"logo_url" json:"logo_url,omitempty"`
	WebsiteURL *string `db:"website_url" json:"website_url,omitempty"`
	SortOrder  int     `db:"sort_order" json:"sort_order"`
	IsVisible  bool    `db:"is_visible" json:"is_visible"`
}

// TeamMember is a staff or volunteer profile.
type TeamMember struct {
	resource.Meta
	Name      string  `db:"name" json:"name"`
	Role      string  `db:"role" json:"role"`
	Bio       *string `db:"bio" json:"bio,omitempty"`
	PhotoURL  *string `db:"photo_url" json:"photo_url,omitempty"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}

// Milestone is an organisational achievement target.
type Milestone struct {
	resource.Meta
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	TargetDate  *time.Time `db:"target_date" json:"target_date,omitempty"`
	Achieved    bool       `db:"achieved" json:"achieved"`
	SortOrder   int        `db:"sort_order" json:"sort_order"`
	IsVisible   bool       `db:"is_visible" json:"is_visible"`
}

// TimelineItem is an entry on the public launch timeline.
type TimelineItem struct {
	resource.Meta
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	Phase       *string    `db:"phase" json:"phase,omitempty"`
	HappensAt   *time.Time `db:"happens_at" json:"happens_at,omitempty"`
	SortOrder   int        `db:"sort_order" json:"sort_order"`
	IsVisible   bool       `db:"is_visible" json:"is_visible"`
}

// ImpactMetric is a headline figure (students reached, kits shipped, ...).
type ImpactMetric struct {
	resource.Meta
	Label     string  `db:"label" json:"label"`
	Value     string  `db:"value" json:"value"`
	Unit      *string `db:"unit" json:"unit,omitempty"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
	IsVisible bool    `db:"is_visible" json:"is_visible"`
}

// Tool is a recommended piece of robotics tooling.
type Tool struct {
	resource.Meta
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Category    string  `db:"category" json:"category"`
	LinkURL     *string `db:"link_url" json:"link_url,omitempty"`
	IsPopular   bool    `db:"is_popular" json:"is_popular"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsVisible   bool    `db:"is_visible" json:"is_visible"`
}

// Resource is a learning resource linked from the public site.
type Resource struct {
	resource.Meta
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description,omitempty"`
	Type        string  `db:"type" json:"type"`
	URL         string  `db:"url" json:"url"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsVisible   bool    `db:"is_visible" json:"is_visible"`
}

// University is a partner institution. Name is unique.
type University struct {
	resource.Meta
	Name     string  `db:"name" json:"name"`
	Location *string `db:"location" json:"location,omitempty"`
	IsActive bool    `db:"is_active" json:"is_active"`
}

// UniversityPublic is the minimal-disclosure projection served to the
// unauthenticated surface: id and name only.
type UniversityPublic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
