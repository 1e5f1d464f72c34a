package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a single bookable offering within a category.
type Service struct {
	Timestamped
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug       string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id" gorm:"type:uuid;not null;index"`

	ShortDescription string `json:"short_description" db:"short_description" gorm:"type:text;not null"`
	FullDescription  string `json:"full_description" db:"full_description" gorm:"type:text"`
	Benefits         string `json:"benefits,omitempty" db:"benefits" gorm:"type:text"`
	Process          string `json:"process,omitempty" db:"process" gorm:"type:text"`

	HasFixedPrice    bool             `json:"has_fixed_price" db:"has_fixed_price" gorm:"not null;default:false"`
	FixedPrice       *decimal.Decimal `json:"fixed_price,omitempty" db:"fixed_price" gorm:"type:decimal(10,2)"`
	PriceDescription string           `json:"price_description,omitempty" db:"price_description" gorm:"type:text"`
	EstimatedTime    string           `json:"estimated_time,omitempty" db:"estimated_time" gorm:"type:text"`

	IsPopular  bool `json:"is_popular" db:"is_popular" gorm:"not null;default:false"`
	IsFeatured bool `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	IsActive   bool `json:"is_active" db:"is_active" gorm:"not null;default:true;index"`

	Requirements string `json:"requirements,omitempty" db:"requirements" gorm:"type:text"`

	RequiresQuote       bool `json:"requires_quote" db:"requires_quote" gorm:"not null;default:true"`
	CanBookOnline       bool `json:"can_book_online" db:"can_book_online" gorm:"not null;default:false"`
	HasEmergencyService bool `json:"has_emergency_service" db:"has_emergency_service" gorm:"not null;default:false"`

	MetaTitle       string `json:"meta_title,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription string `json:"meta_description,omitempty" db:"meta_description" gorm:"type:text"`
	MetaKeywords    string `json:"meta_keywords,omitempty" db:"meta_keywords" gorm:"type:text"`

	ViewsCount         int `json:"views_count" db:"views_count" gorm:"not null;default:0"`
	QuoteRequestsCount int `json:"quote_requests_count" db:"quote_requests_count" gorm:"not null;default:0"`

	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`

	Category ServiceCategory  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Images   []ServiceImage   `json:"images,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
	FAQs     []FAQ            `json:"faqs,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
	Features []ServiceFeature `json:"features,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
	Packages []ServicePackage `json:"packages,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
	Areas    []ServiceArea    `json:"areas,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// ServiceImage is a portfolio or before/after image for a service.
type ServiceImage struct {
	Timestamped
	ServiceID     uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index"`
	URL           string    `json:"url" db:"url" gorm:"type:text;not null"`
	Caption       string    `json:"caption,omitempty" db:"caption" gorm:"type:text"`
	AltText       string    `json:"alt_text,omitempty" db:"alt_text" gorm:"type:text"`
	IsBeforeImage bool      `json:"is_before_image" db:"is_before_image" gorm:"not null;default:false"`
	IsAfterImage  bool      `json:"is_after_image" db:"is_after_image" gorm:"not null;default:false"`
	DisplayOrder  int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	IsPrimary     bool      `json:"is_primary" db:"is_primary" gorm:"not null;default:false"`
}

// FAQ is a frequently asked question attached to a service.
type FAQ struct {
	Timestamped
	ServiceID    uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index"`
	Question     string    `json:"question" db:"question" gorm:"type:text;not null"`
	Answer       string    `json:"answer" db:"answer" gorm:"type:text;not null"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	IsActive     bool      `json:"is_active" db:"is_active" gorm:"not null;default:true"`
}

// ServiceFeature is a displayed selling point of a service.
type ServiceFeature struct {
	Timestamped
	ServiceID    uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Icon         string    `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
}

// ServicePackage is a priced bundle variant of a service.
type ServicePackage struct {
	Timestamped
	ServiceID    uuid.UUID       `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index"`
	Name         string          `json:"name" db:"name" gorm:"type:text;not null"`
	Description  string          `json:"description" db:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" db:"price" gorm:"type:decimal(10,2);not null"`
	Duration     string          `json:"duration,omitempty" db:"duration" gorm:"type:text"`
	Includes     string          `json:"includes,omitempty" db:"includes" gorm:"type:text"`
	Excludes     string          `json:"excludes,omitempty" db:"excludes" gorm:"type:text"`
	IsPopular    bool            `json:"is_popular" db:"is_popular" gorm:"not null;default:false"`
	DisplayOrder int             `json:"display_order" db:"display_order" gorm:"not null;default:0"`
}

// ServiceArea is a city/region where a service is offered.
type ServiceArea struct {
	Timestamped
	ServiceID  uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_service_area_unique"`
	City       string    `json:"city" db:"city" gorm:"type:text;not null;uniqueIndex:idx_service_area_unique"`
	PostalCode string    `json:"postal_code,omitempty" db:"postal_code" gorm:"type:text;uniqueIndex:idx_service_area_unique"`
	Region     string    `json:"region,omitempty" db:"region" gorm:"type:text"`
	IsActive   bool      `json:"is_active" db:"is_active" gorm:"not null;default:true"`
}

// ServiceView is an analytics log row written on every service detail hit.
type ServiceView struct {
	Timestamped
	ServiceID  uuid.UUID  `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index:idx_service_view_service_created,priority:1"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id" gorm:"type:uuid"`
	SessionKey string     `json:"session_key,omitempty" db:"session_key" gorm:"type:text"`
	IPAddress  string     `json:"ip_address" db:"ip_address" gorm:"type:text;not null"`
	UserAgent  string     `json:"user_agent,omitempty" db:"user_agent" gorm:"type:text"`
	Referrer   string     `json:"referrer,omitempty" db:"referrer" gorm:"type:text"`
}
