package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectCategoryRepo struct {
	db *gorm.DB
}

func NewProjectCategoryRepo(db *gorm.DB) *ProjectCategoryRepo {
	return &ProjectCategoryRepo{db}
}

func (r *ProjectCategoryRepo) FindAll() ([]*models.ProjectCategory, error) {
	var categories []*models.ProjectCategory
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *ProjectCategoryRepo) FindBySlug(slug string) (*models.ProjectCategory, error) {
	var category models.ProjectCategory
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *ProjectCategoryRepo) Add(category *models.ProjectCategory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if category.Slug == "" {
			slug, err := uniqueSlug(tx, "project_categories", category.Name)
			if err != nil {
				return err
			}
			category.Slug = slug
		}
		return tx.Create(category).Error
	})
}

func (r *ProjectCategoryRepo) Update(category *models.ProjectCategory) error {
	return r.db.Save(category).Error
}

func (r *ProjectCategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectCategory{}, "id = ?", id).Error
}
