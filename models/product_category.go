package models

import "github.com/google/uuid"

// ProductCategory groups products (e.g. furniture, electronics, antiques).
// Categories form a hierarchy through the optional parent reference.
type ProductCategory struct {
	Timestamped
	Name         string     `json:"name" db:"name" gorm:"type:text;not null"`
	Slug         string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description  string     `json:"description" db:"description" gorm:"type:text"`
	ImageURL     string     `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty" db:"parent_id" gorm:"type:uuid;index"`
	IsActive     bool       `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	DisplayOrder int        `json:"display_order" db:"display_order" gorm:"not null;default:0"`

	MetaTitle       string `json:"meta_title,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription string `json:"meta_description,omitempty" db:"meta_description" gorm:"type:text"`
	MetaKeywords    string `json:"meta_keywords,omitempty" db:"meta_keywords" gorm:"type:text"`

	Parent        *ProductCategory  `json:"-" gorm:"foreignKey:ParentID;references:ID"`
	Subcategories []ProductCategory `json:"subcategories,omitempty" gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
}
