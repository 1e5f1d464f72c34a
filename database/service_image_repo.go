package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceImageRepo struct {
	db *gorm.DB
}

func NewServiceImageRepo(db *gorm.DB) *ServiceImageRepo {
	return &ServiceImageRepo{db}
}

func (r *ServiceImageRepo) Add(image *models.ServiceImage) error {
	return r.db.Create(image).Error
}

// FindBeforeAfter returns before and after images for a service, ordered
// for display.
func (r *ServiceImageRepo) FindBeforeAfter(serviceID uuid.UUID) (before, after []*models.ServiceImage, err error) {
	err = r.db.Where("service_id = ? AND is_before_image = ?", serviceID, true).
		Order("display_order ASC").Find(&before).Error
	if err != nil {
		return nil, nil, err
	}
	err = r.db.Where("service_id = ? AND is_after_image = ?", serviceID, true).
		Order("display_order ASC").Find(&after).Error
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func (r *ServiceImageRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ServiceImage{}, "id = ?", id).Error
}
