package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// TestimonialFilter narrows the testimonial listing. ApprovedOnly is forced
// on for non-staff callers.
type TestimonialFilter struct {
	ServiceSlug  string
	Featured     bool
	ApprovedOnly bool
}

func (r *TestimonialRepo) FindAll(filter TestimonialFilter, page Page) ([]*models.Testimonial, int64, error) {
	tx := r.db.Model(&models.Testimonial{})

	if filter.ServiceSlug != "" {
		tx = tx.Joins("JOIN services ON services.id = testimonials.service_id").
			Where("services.slug = ?", filter.ServiceSlug)
	}
	if filter.Featured {
		tx = tx.Where("testimonials.is_featured = ?", true)
	}
	if filter.ApprovedOnly {
		tx = tx.Where("testimonials.is_approved = ?", true)
	}

	var count int64
	if err := tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var testimonials []*models.Testimonial
	err := page.apply(tx.Session(&gorm.Session{}).
		Order("testimonials.is_featured DESC, testimonials.display_order ASC, testimonials.created_at DESC")).
		Find(&testimonials).Error
	return testimonials, count, err
}

func (r *TestimonialRepo) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := r.db.First(&testimonial, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepo) Add(testimonial *models.Testimonial) error {
	return r.db.Create(testimonial).Error
}

func (r *TestimonialRepo) Update(testimonial *models.Testimonial) error {
	return r.db.Omit("Service").Save(testimonial).Error
}

func (r *TestimonialRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Testimonial{}, "id = ?", id).Error
}
