package models

// ProjectTag is a free-form label attached to projects.
type ProjectTag struct {
	Timestamped
	Name        string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Color       string `json:"color" db:"color" gorm:"type:text;not null;default:#3498db"`
	Description string `json:"description,omitempty" db:"description" gorm:"type:text"`
	IsActive    bool   `json:"is_active" db:"is_active" gorm:"not null;default:true"`
}
