package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCategoryRepo struct {
	db *gorm.DB
}

func NewServiceCategoryRepo(db *gorm.DB) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{db}
}

// ServiceCategoryFilter narrows the category listing.
type ServiceCategoryFilter struct {
	HomepageOnly bool
	CategoryType models.ServiceCategoryType
}

func (r *ServiceCategoryRepo) FindAll(filter ServiceCategoryFilter) ([]*models.ServiceCategory, error) {
	tx := r.db.Where("is_active = ?", true).
		Order("display_order ASC, name ASC")

	if filter.HomepageOnly {
		tx = tx.Where("show_on_homepage = ?", true)
	}
	if filter.CategoryType != "" {
		tx = tx.Where("category_type = ?", filter.CategoryType)
	}

	var categories []*models.ServiceCategory
	err := tx.Find(&categories).Error
	return categories, err
}

func (r *ServiceCategoryRepo) FindBySlug(slug string) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// HomepageCategoryIDs returns the ids of active categories flagged for the
// homepage.
func (r *ServiceCategoryRepo) HomepageCategoryIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.ServiceCategory{}).
		Where("show_on_homepage = ? AND is_active = ?", true, true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ServiceCategoryRepo) Add(category *models.ServiceCategory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if category.Slug == "" {
			slug, err := uniqueSlug(tx, "service_categories", category.Name)
			if err != nil {
				return err
			}
			category.Slug = slug
		}
		return tx.Create(category).Error
	})
}

func (r *ServiceCategoryRepo) Update(category *models.ServiceCategory) error {
	return r.db.Omit("Services").Save(category).Error
}

func (r *ServiceCategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Select("Services").Delete(&models.ServiceCategory{Timestamped: models.Timestamped{ID: id}}).Error
}
