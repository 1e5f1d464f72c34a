package database

import (
	"sort"
	"time"

	"github.com/akdeniz-handel/catalog-backend/models"
	"gorm.io/gorm"
)

type ServiceViewRepo struct {
	db *gorm.DB
}

func NewServiceViewRepo(db *gorm.DB) *ServiceViewRepo {
	return &ServiceViewRepo{db}
}

// Add logs a single service detail hit.
func (r *ServiceViewRepo) Add(view *models.ServiceView) error {
	return r.db.Create(view).Error
}

// MonthlyViewCount is one month bucket of the views report.
type MonthlyViewCount struct {
	Month      string `json:"month"` // YYYY-MM
	ViewsCount int64  `json:"views_count"`
}

// MonthlyCounts buckets view log rows since the given time by calendar
// month. Bucketing happens Go-side so the query stays portable across
// postgres and the sqlite test driver.
func (r *ServiceViewRepo) MonthlyCounts(since time.Time) ([]MonthlyViewCount, error) {
	var timestamps []time.Time
	err := r.db.Model(&models.ServiceView{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &timestamps).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, ts := range timestamps {
		buckets[ts.Format("2006-01")]++
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	counts := make([]MonthlyViewCount, 0, len(months))
	for _, month := range months {
		counts = append(counts, MonthlyViewCount{Month: month, ViewsCount: buckets[month]})
	}
	return counts, nil
}
