package models

import "github.com/google/uuid"

// ProductImage is a stored image reference for a product. The object itself
// lives in the media store; URL points at it.
type ProductImage struct {
	Timestamped
	ProductID    uuid.UUID `json:"product_id" db:"product_id" gorm:"type:uuid;not null;index"`
	URL          string    `json:"url" db:"url" gorm:"type:text;not null"`
	AltText      string    `json:"alt_text,omitempty" db:"alt_text" gorm:"type:text"`
	Caption      string    `json:"caption,omitempty" db:"caption" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	IsPrimary    bool      `json:"is_primary" db:"is_primary" gorm:"not null;default:false"`
}

// ProductFeature is a single displayed specification of a product.
type ProductFeature struct {
	Timestamped
	ProductID    uuid.UUID `json:"product_id" db:"product_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Value        string    `json:"value" db:"value" gorm:"type:text;not null"`
	Icon         string    `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
}
