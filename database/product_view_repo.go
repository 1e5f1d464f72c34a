package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"gorm.io/gorm"
)

type ProductViewRepo struct {
	db *gorm.DB
}

func NewProductViewRepo(db *gorm.DB) *ProductViewRepo {
	return &ProductViewRepo{db}
}

// Add logs a single product detail hit.
func (r *ProductViewRepo) Add(view *models.ProductView) error {
	return r.db.Create(view).Error
}
