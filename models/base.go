package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Timestamped is the embedded base for all catalog entities: UUID primary
// key plus created/updated timestamps managed by GORM.
type Timestamped struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// BeforeCreate assigns the UUID client-side so the same models work on
// postgres and the sqlite driver used in tests.
func (t *Timestamped) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Slugify derives a URL-safe identifier from a display name.
func Slugify(name string) string {
	return slug.Make(name)
}
