package models

// ProjectCategory classifies projects for reporting.
type ProjectCategory struct {
	Timestamped
	Name        string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description string `json:"description,omitempty" db:"description" gorm:"type:text"`
	Icon        string `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	Color       string `json:"color" db:"color" gorm:"type:text;not null;default:#3498db"`
	IsActive    bool   `json:"is_active" db:"is_active" gorm:"not null;default:true"`
}
