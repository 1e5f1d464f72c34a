package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategoryRepo struct {
	db *gorm.DB
}

func NewProductCategoryRepo(db *gorm.DB) *ProductCategoryRepo {
	return &ProductCategoryRepo{db}
}

// ProductCategoryFilter narrows the category listing.
type ProductCategoryFilter struct {
	ParentSlug string
	RootOnly   bool
}

// FindAll returns active categories ordered for display.
func (r *ProductCategoryRepo) FindAll(filter ProductCategoryFilter) ([]*models.ProductCategory, error) {
	tx := r.db.Model(&models.ProductCategory{}).
		Where("product_categories.is_active = ?", true).
		Order("product_categories.display_order ASC, product_categories.name ASC")

	if filter.ParentSlug != "" {
		tx = tx.Joins("JOIN product_categories parent ON parent.id = product_categories.parent_id").
			Where("parent.slug = ?", filter.ParentSlug)
	}
	if filter.RootOnly {
		tx = tx.Where("product_categories.parent_id IS NULL")
	}

	var categories []*models.ProductCategory
	err := tx.Preload("Subcategories").Find(&categories).Error
	return categories, err
}

func (r *ProductCategoryRepo) FindBySlug(slug string) (*models.ProductCategory, error) {
	var category models.ProductCategory
	err := r.db.Preload("Subcategories").Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DescendantIDs walks the category tree below (and including) the given
// category. The hierarchy is shallow in practice so recursion per level is
// acceptable.
func (r *ProductCategoryRepo) DescendantIDs(id uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{id}
	frontier := []uuid.UUID{id}

	for len(frontier) > 0 {
		var children []uuid.UUID
		err := r.db.Model(&models.ProductCategory{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}

	return ids, nil
}

func (r *ProductCategoryRepo) Add(category *models.ProductCategory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if category.Slug == "" {
			slug, err := uniqueSlug(tx, "product_categories", category.Name)
			if err != nil {
				return err
			}
			category.Slug = slug
		}
		return tx.Create(category).Error
	})
}

func (r *ProductCategoryRepo) Update(category *models.ProductCategory) error {
	return r.db.Omit("Subcategories", "Parent").Save(category).Error
}

func (r *ProductCategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProductCategory{Timestamped: models.Timestamped{ID: id}}).Error
}
