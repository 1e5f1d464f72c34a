package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

// ServiceFilter collects the query-string filters of the service list and
// search endpoints.
type ServiceFilter struct {
	Search       string
	CategorySlug string
	City         string

	Popular       bool
	Featured      bool
	Bookable      bool
	Emergency     bool
	HasFixedPrice *bool

	MinFixedPrice *decimal.Decimal
	MaxFixedPrice *decimal.Decimal

	// IncludeInactive lifts the default active-only gate for staff.
	IncludeInactive bool

	SortBy string
}

func (f ServiceFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.Search != "" {
		// LOWER on both sides keeps matching case-insensitive on postgres,
		// where LIKE is case-sensitive.
		like := "%" + f.Search + "%"
		tx = tx.Where(
			"LOWER(services.name) LIKE LOWER(?) OR LOWER(services.short_description) LIKE LOWER(?) OR LOWER(services.full_description) LIKE LOWER(?) OR LOWER(services.benefits) LIKE LOWER(?) OR LOWER(services.process) LIKE LOWER(?)",
			like, like, like, like, like)
	}
	if f.CategorySlug != "" {
		tx = tx.Joins("JOIN service_categories sc ON sc.id = services.category_id").
			Where("sc.slug = ?", f.CategorySlug)
	}
	if f.City != "" {
		tx = tx.Joins("JOIN service_areas sa ON sa.service_id = services.id").
			Where("LOWER(sa.city) = LOWER(?) AND sa.is_active = ?", f.City, true).
			Distinct("services.*")
	}
	if f.Popular {
		tx = tx.Where("services.is_popular = ?", true)
	}
	if f.Featured {
		tx = tx.Where("services.is_featured = ?", true)
	}
	if f.Bookable {
		tx = tx.Where("services.can_book_online = ?", true)
	}
	if f.Emergency {
		tx = tx.Where("services.has_emergency_service = ?", true)
	}
	if f.HasFixedPrice != nil {
		tx = tx.Where("services.has_fixed_price = ?", *f.HasFixedPrice)
	}
	if f.MinFixedPrice != nil {
		tx = tx.Where("services.fixed_price >= ?", f.MinFixedPrice)
	}
	if f.MaxFixedPrice != nil {
		tx = tx.Where("services.fixed_price <= ?", f.MaxFixedPrice)
	}
	if !f.IncludeInactive {
		tx = tx.Where("services.is_active = ?", true)
	}

	switch f.SortBy {
	case "name":
		return tx.Order("services.name ASC")
	case "views_count":
		return tx.Order("services.views_count ASC")
	case "-views_count", "popular":
		return tx.Order("services.views_count DESC")
	case "quote_requests_count":
		return tx.Order("services.quote_requests_count ASC")
	case "-quote_requests_count":
		return tx.Order("services.quote_requests_count DESC")
	case "price_low":
		return tx.Order("services.fixed_price ASC")
	case "price_high":
		return tx.Order("services.fixed_price DESC")
	default:
		// Default mirrors category display order then name.
		return tx.Joins("JOIN service_categories order_sc ON order_sc.id = services.category_id").
			Order("order_sc.display_order ASC, services.name ASC")
	}
}

func (r *ServiceRepo) FindAll(filter ServiceFilter, page Page) ([]*models.Service, int64, error) {
	base := filter.apply(r.db.Model(&models.Service{}))

	var count int64
	if err := base.Session(&gorm.Session{}).Distinct("services.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var services []*models.Service
	err := page.apply(base.Session(&gorm.Session{}).Preload("Category")).
		Find(&services).Error
	return services, count, err
}

// FindBySlug returns a service with all display relations preloaded.
func (r *ServiceRepo) FindBySlug(slug string) (*models.Service, error) {
	var service models.Service
	err := r.db.
		Preload("Category").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC, is_primary DESC")
		}).
		Preload("FAQs", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("display_order ASC")
		}).
		Preload("Features", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Preload("Packages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Preload("Areas", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true)
		}).
		Where("slug = ?", slug).
		First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// FindByCategoryID returns active services of one category.
func (r *ServiceRepo) FindByCategoryID(categoryID uuid.UUID, page Page) ([]*models.Service, int64, error) {
	base := r.db.Model(&models.Service{}).
		Where("category_id = ? AND is_active = ?", categoryID, true)

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var services []*models.Service
	err := page.apply(base.Session(&gorm.Session{}).Order("name ASC")).
		Find(&services).Error
	return services, count, err
}

// FindByCategoryIDs returns active services of the given categories, used
// for the homepage strip.
func (r *ServiceRepo) FindByCategoryIDs(categoryIDs []uuid.UUID, limit int) ([]*models.Service, error) {
	var services []*models.Service
	err := r.db.
		Where("category_id IN ? AND is_active = ?", categoryIDs, true).
		Order("name ASC").
		Limit(limit).
		Preload("Category").
		Find(&services).Error
	return services, err
}

func (r *ServiceRepo) Add(service *models.Service) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if service.Slug == "" {
			slug, err := uniqueSlug(tx, "services", service.Name)
			if err != nil {
				return err
			}
			service.Slug = slug
		}
		return tx.Omit("Category").Create(service).Error
	})
}

func (r *ServiceRepo) Update(service *models.Service) error {
	return r.db.Omit("Category", "Images", "FAQs", "Features", "Packages", "Areas").Save(service).Error
}

func (r *ServiceRepo) Delete(id uuid.UUID) error {
	return r.db.Select("Images", "FAQs", "Features", "Packages", "Areas").
		Delete(&models.Service{Timestamped: models.Timestamped{ID: id}}).Error
}

func (r *ServiceRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Service{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *ServiceRepo) IncrementQuoteRequests(id uuid.UUID) error {
	return r.db.Model(&models.Service{}).Where("id = ?", id).
		UpdateColumn("quote_requests_count", gorm.Expr("quote_requests_count + 1")).Error
}

// CategoryServiceCount is a per-category service total for statistics.
type CategoryServiceCount struct {
	Name               string `json:"name"`
	ServiceCount       int64  `json:"service_count"`
	ActiveServiceCount int64  `json:"active_service_count"`
}

// PopularService is a views leaderboard row.
type PopularService struct {
	Name               string `json:"name"`
	ViewsCount         int    `json:"views_count"`
	QuoteRequestsCount int    `json:"quote_requests_count"`
}

// CategoryStats aggregates service counts per category.
func (r *ServiceRepo) CategoryStats() ([]CategoryServiceCount, error) {
	var stats []CategoryServiceCount
	err := r.db.Model(&models.ServiceCategory{}).
		Select("service_categories.name AS name, " +
			"COUNT(services.id) AS service_count, " +
			"SUM(CASE WHEN services.is_active THEN 1 ELSE 0 END) AS active_service_count").
		Joins("LEFT JOIN services ON services.category_id = service_categories.id").
		Group("service_categories.id, service_categories.name").
		Order("service_categories.name").
		Scan(&stats).Error
	return stats, err
}

// MostViewed returns the views leaderboard of active services.
func (r *ServiceRepo) MostViewed(limit int) ([]PopularService, error) {
	var popular []PopularService
	err := r.db.Model(&models.Service{}).
		Select("name, views_count, quote_requests_count").
		Where("is_active = ?", true).
		Order("views_count DESC").
		Limit(limit).
		Scan(&popular).Error
	return popular, err
}

// Counts returns total and active service counts.
func (r *ServiceRepo) Counts() (total, active int64, err error) {
	if err = r.db.Model(&models.Service{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Model(&models.Service{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
