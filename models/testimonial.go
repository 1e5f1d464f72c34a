package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Testimonial is a client statement about a delivered service.
type Testimonial struct {
	Timestamped
	ServiceID uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index"`

	ClientName     string `json:"client_name" db:"client_name" gorm:"type:text;not null"`
	ClientLocation string `json:"client_location,omitempty" db:"client_location" gorm:"type:text"`
	ClientCompany  string `json:"client_company,omitempty" db:"client_company" gorm:"type:text"`

	Content string `json:"content" db:"content" gorm:"type:text;not null"`
	Rating  int    `json:"rating" db:"rating" gorm:"not null"`

	IsApproved   bool `json:"is_approved" db:"is_approved" gorm:"not null;default:false"`
	IsFeatured   bool `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	DisplayOrder int  `json:"display_order" db:"display_order" gorm:"not null;default:0"`

	ProjectDate        *time.Time `json:"project_date,omitempty" db:"project_date"`
	ProjectDescription string     `json:"project_description,omitempty" db:"project_description" gorm:"type:text"`

	Service Service `json:"-" gorm:"foreignKey:ServiceID;references:ID"`
}

// RatingStars renders the rating as unicode stars.
func (t Testimonial) RatingStars() string {
	return strings.Repeat("★", t.Rating) + strings.Repeat("☆", 5-t.Rating)
}
