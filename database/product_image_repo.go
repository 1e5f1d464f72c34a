package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductImageRepo struct {
	db *gorm.DB
}

func NewProductImageRepo(db *gorm.DB) *ProductImageRepo {
	return &ProductImageRepo{db}
}

func (r *ProductImageRepo) Add(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

func (r *ProductImageRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProductImage{}, "id = ?", id).Error
}
