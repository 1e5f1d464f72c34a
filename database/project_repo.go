package database

import (
	"errors"
	"strings"
	"time"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectFilter collects the query-string filters of the project listing.
// Soft-deleted rows are always excluded (GORM DeletedAt).
type ProjectFilter struct {
	Search       string
	Status       models.ProjectStatus
	Priority     models.ProjectPriority
	CategorySlug string
	TagSlug      string
	ManagerID    *uuid.UUID
	Client       string

	StartDateAfter  *time.Time
	StartDateBefore *time.Time

	SortBy string
}

func (f ProjectFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.Search != "" {
		// LOWER on both sides keeps matching case-insensitive on postgres,
		// where LIKE is case-sensitive.
		like := "%" + f.Search + "%"
		tx = tx.Where("LOWER(projects.project_number) LIKE LOWER(?) OR LOWER(projects.name) LIKE LOWER(?) OR LOWER(projects.description) LIKE LOWER(?)",
			like, like, like)
	}
	if f.Status != "" {
		tx = tx.Where("projects.status = ?", f.Status)
	}
	if f.Priority != "" {
		tx = tx.Where("projects.priority = ?", f.Priority)
	}
	if f.CategorySlug != "" {
		tx = tx.Joins("JOIN project_categories pc ON pc.id = projects.category_id").
			Where("pc.slug = ?", f.CategorySlug)
	}
	if f.TagSlug != "" {
		tx = tx.Joins("JOIN project_tag_assignments pta ON pta.project_id = projects.id").
			Joins("JOIN project_tags pt ON pt.id = pta.project_tag_id").
			Where("pt.slug = ?", f.TagSlug).
			Distinct("projects.*")
	}
	if f.ManagerID != nil {
		tx = tx.Where("projects.manager_id = ?", *f.ManagerID)
	}
	if f.Client != "" {
		tx = tx.Where("LOWER(projects.client) LIKE LOWER(?)", "%"+f.Client+"%")
	}
	if f.StartDateAfter != nil {
		tx = tx.Where("projects.start_date >= ?", *f.StartDateAfter)
	}
	if f.StartDateBefore != nil {
		tx = tx.Where("projects.start_date <= ?", *f.StartDateBefore)
	}

	switch f.SortBy {
	case "created_at":
		return tx.Order("projects.created_at ASC")
	case "start_date":
		return tx.Order("projects.start_date ASC")
	case "-start_date":
		return tx.Order("projects.start_date DESC")
	case "budget":
		return tx.Order("projects.budget ASC")
	case "-budget":
		return tx.Order("projects.budget DESC")
	case "name":
		return tx.Order("projects.name ASC")
	default:
		return tx.Order("projects.created_at DESC")
	}
}

func (r *ProjectRepo) FindAll(filter ProjectFilter, page Page) ([]*models.Project, int64, error) {
	base := filter.apply(r.db.Model(&models.Project{}))

	var count int64
	if err := base.Session(&gorm.Session{}).Distinct("projects.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := page.apply(base.Session(&gorm.Session{}).
		Preload("Category").Preload("Tags")).
		Find(&projects).Error
	return projects, count, err
}

// FindByNumber returns a project by its generated number, with tasks, tags,
// category, manager and team preloaded.
func (r *ProjectRepo) FindByNumber(number string) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Category").
		Preload("Tags").
		Preload("Manager").
		Preload("TeamMembers").
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Where("project_number = ?", number).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a project, generating the project number when absent. The
// per-year sequence comes from counting rows with this year's prefix; the
// random suffix avoids collisions between concurrent inserts, and the
// unique index backstops the rest (one retry with a fresh suffix).
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if project.ProjectNumber == "" {
			number, err := r.nextProjectNumber(tx)
			if err != nil {
				return err
			}
			project.ProjectNumber = number
		}

		err := tx.Omit("Manager", "Category").Create(project).Error
		if err != nil && isDuplicateErr(err) {
			number, genErr := r.nextProjectNumber(tx)
			if genErr != nil {
				return genErr
			}
			project.ProjectNumber = number
			err = tx.Omit("Manager", "Category").Create(project).Error
		}
		return err
	})
}

func (r *ProjectRepo) nextProjectNumber(tx *gorm.DB) (string, error) {
	now := time.Now()

	var count int64
	err := tx.Model(&models.Project{}).Unscoped().
		Where("project_number LIKE ?", models.ProjectNumberPrefix(now)+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}

	return models.FormatProjectNumber(now, int(count)+1), nil
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

// Update saves the project and replaces tag and team assignments.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		project.Version++
		if err := tx.Omit("Manager", "Category", "Tags", "TeamMembers", "Tasks").
			Save(project).Error; err != nil {
			return err
		}
		if project.Tags != nil {
			if err := tx.Model(project).Association("Tags").Replace(project.Tags); err != nil {
				return err
			}
		}
		if project.TeamMembers != nil {
			if err := tx.Model(project).Association("TeamMembers").Replace(project.TeamMembers); err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDelete marks the project deleted; the row stays for auditing.
func (r *ProjectRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// Restore clears the soft-delete marker.
func (r *ProjectRepo) Restore(number string) (*models.Project, error) {
	err := r.db.Unscoped().Model(&models.Project{}).
		Where("project_number = ?", number).
		Update("deleted_at", nil).Error
	if err != nil {
		return nil, err
	}
	return r.FindByNumber(number)
}

// FindByNumberUnscoped looks a project up ignoring the soft-delete marker.
func (r *ProjectRepo) FindByNumberUnscoped(number string) (*models.Project, error) {
	var project models.Project
	err := r.db.Unscoped().Where("project_number = ?", number).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// StatusCount / PriorityCount are grouped totals for statistics.
type StatusCount struct {
	Status models.ProjectStatus `json:"status"`
	Count  int64                `json:"count"`
}

type PriorityCount struct {
	Priority models.ProjectPriority `json:"priority"`
	Count    int64                  `json:"count"`
}

// ProjectStatistics is the aggregate report served to staff.
type ProjectStatistics struct {
	TotalProjects int64           `json:"total_projects"`
	ByStatus      []StatusCount   `json:"by_status"`
	ByPriority    []PriorityCount `json:"by_priority"`
	TotalBudget   decimal.Decimal `json:"total_budget"`
	AverageBudget decimal.Decimal `json:"average_budget"`
	OverdueCount  int64           `json:"overdue_count"`
}

// Statistics aggregates project counts and budget totals.
func (r *ProjectRepo) Statistics(now time.Time) (*ProjectStatistics, error) {
	var stats ProjectStatistics

	if err := r.db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").Order("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Project{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").Order("priority").
		Scan(&stats.ByPriority).Error; err != nil {
		return nil, err
	}

	var totalBudget *decimal.Decimal
	if err := r.db.Model(&models.Project{}).
		Select("SUM(budget)").Scan(&totalBudget).Error; err != nil {
		return nil, err
	}
	if totalBudget != nil {
		stats.TotalBudget = *totalBudget
	}
	if stats.TotalProjects > 0 {
		stats.AverageBudget = stats.TotalBudget.
			Div(decimal.NewFromInt(stats.TotalProjects)).Round(2)
	}

	if err := r.db.Model(&models.Project{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.StatusActive, now).
		Count(&stats.OverdueCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
