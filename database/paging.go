package database

import (
	"fmt"

	"github.com/akdeniz-handel/catalog-backend/models"
	"gorm.io/gorm"
)

// Page is limit/offset pagination. A zero or negative limit falls back to
// the default; the limit is capped to keep responses bounded.
type Page struct {
	Limit  int
	Offset int
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func (p Page) apply(tx *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return tx.Limit(limit).Offset(offset)
}

// uniqueSlug derives a slug from name and probes the table for collisions,
// appending -2, -3, ... until the slug is free.
func uniqueSlug(tx *gorm.DB, table, name string) (string, error) {
	base := models.Slugify(name)
	if base == "" {
		base = "item"
	}

	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Table(table).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
