package database

import (
	"time"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) FindAll(page Page) ([]*models.User, int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := page.apply(r.db.Order("date_joined DESC")).Find(&users).Error
	return users, count, err
}

func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// TouchLastLogin records a successful login.
func (r *UserRepo) TouchLastLogin(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}

// UserStatistics is the per-account aggregate served to staff.
type UserStatistics struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	StaffUsers  int64 `json:"staff_users"`
}

func (r *UserRepo) Statistics() (*UserStatistics, error) {
	var stats UserStatistics
	if err := r.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("is_active = ?", true).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("is_staff = ?", true).
		Count(&stats.StaffUsers).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
