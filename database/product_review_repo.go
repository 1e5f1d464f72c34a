package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductReviewRepo struct {
	db *gorm.DB
}

func NewProductReviewRepo(db *gorm.DB) *ProductReviewRepo {
	return &ProductReviewRepo{db}
}

// ProductReviewFilter narrows the review listing. ApprovedOnly is forced on
// for non-staff callers.
type ProductReviewFilter struct {
	ProductSlug  string
	ApprovedOnly bool
}

func (r *ProductReviewRepo) FindAll(filter ProductReviewFilter, page Page) ([]*models.ProductReview, int64, error) {
	tx := r.db.Model(&models.ProductReview{})

	if filter.ProductSlug != "" {
		tx = tx.Joins("JOIN products ON products.id = product_reviews.product_id").
			Where("products.slug = ?", filter.ProductSlug)
	}
	if filter.ApprovedOnly {
		tx = tx.Where("product_reviews.is_approved = ?", true)
	}

	var count int64
	if err := tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*models.ProductReview
	err := page.apply(tx.Session(&gorm.Session{}).Order("product_reviews.created_at DESC")).
		Find(&reviews).Error
	return reviews, count, err
}

func (r *ProductReviewRepo) FindByID(id uuid.UUID) (*models.ProductReview, error) {
	var review models.ProductReview
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ProductReviewRepo) Add(review *models.ProductReview) error {
	return r.db.Create(review).Error
}

func (r *ProductReviewRepo) Update(review *models.ProductReview) error {
	return r.db.Omit("Product").Save(review).Error
}

func (r *ProductReviewRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProductReview{}, "id = ?", id).Error
}

// RecordHelpfulVote bumps the yes or no counter on a review.
func (r *ProductReviewRepo) RecordHelpfulVote(id uuid.UUID, helpful bool) error {
	column := "helpful_no"
	if helpful {
		column = "helpful_yes"
	}
	return r.db.Model(&models.ProductReview{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}
