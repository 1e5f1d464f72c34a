package models

import "github.com/google/uuid"

// ProductView is an analytics log row written on every product detail hit.
type ProductView struct {
	Timestamped
	ProductID  uuid.UUID  `json:"product_id" db:"product_id" gorm:"type:uuid;not null;index:idx_product_view_product_created,priority:1"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id" gorm:"type:uuid"`
	SessionKey string     `json:"session_key,omitempty" db:"session_key" gorm:"type:text"`
	IPAddress  string     `json:"ip_address" db:"ip_address" gorm:"type:text;not null"`
	UserAgent  string     `json:"user_agent,omitempty" db:"user_agent" gorm:"type:text"`
	Referrer   string     `json:"referrer,omitempty" db:"referrer" gorm:"type:text"`
}
