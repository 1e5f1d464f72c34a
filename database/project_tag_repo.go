package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

func (r *ProjectTagRepo) FindAll() ([]*models.ProjectTag, error) {
	var tags []*models.ProjectTag
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *ProjectTagRepo) FindBySlug(slug string) (*models.ProjectTag, error) {
	var tag models.ProjectTag
	if err := r.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindOrCreateByNames resolves tag names to rows, creating missing tags
// with generated slugs. Used when projects are created/updated with a tag
// name list.
func (r *ProjectTagRepo) FindOrCreateByNames(names []string) ([]models.ProjectTag, error) {
	tags := make([]models.ProjectTag, 0, len(names))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var tag models.ProjectTag
			err := tx.Where("name = ?", name).First(&tag).Error
			if err == gorm.ErrRecordNotFound {
				slug, slugErr := uniqueSlug(tx, "project_tags", name)
				if slugErr != nil {
					return slugErr
				}
				tag = models.ProjectTag{Name: name, Slug: slug, Color: "#3498db", IsActive: true}
				err = tx.Create(&tag).Error
			}
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return nil
	})
	return tags, err
}

func (r *ProjectTagRepo) Add(tag *models.ProjectTag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if tag.Slug == "" {
			slug, err := uniqueSlug(tx, "project_tags", tag.Name)
			if err != nil {
				return err
			}
			tag.Slug = slug
		}
		return tx.Create(tag).Error
	})
}

func (r *ProjectTagRepo) Update(tag *models.ProjectTag) error {
	return r.db.Save(tag).Error
}

func (r *ProjectTagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectTag{}, "id = ?", id).Error
}
