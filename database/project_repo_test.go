package database

import (
	"strings"
	"testing"
	"time"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustAddProject(t *testing.T, db Database, project *models.Project) *models.Project {
	t.Helper()
	if project.Status == "" {
		project.Status = models.StatusDraft
	}
	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}
	if project.Client == "" {
		project.Client = "Musterfirma GmbH"
	}
	require.NoError(t, db.ProjectRepo().Add(project))
	return project
}

func TestProjectAddGeneratesNumber(t *testing.T) {
	db := newTestDB(t)

	prefix := models.ProjectNumberPrefix(time.Now())

	first := mustAddProject(t, db, &models.Project{Name: "Büroumzug"})
	second := mustAddProject(t, db, &models.Project{Name: "Lagerentsorgung"})

	assert.True(t, strings.HasPrefix(first.ProjectNumber, prefix))
	assert.True(t, strings.HasPrefix(second.ProjectNumber, prefix))
	assert.Len(t, first.ProjectNumber, 11)
	assert.NotEqual(t, first.ProjectNumber, second.ProjectNumber)

	// The per-year sequence advances.
	assert.Equal(t, "0001", first.ProjectNumber[5:9])
	assert.Equal(t, "0002", second.ProjectNumber[5:9])
}

func TestProjectAddKeepsSuppliedNumber(t *testing.T) {
	db := newTestDB(t)

	project := mustAddProject(t, db, &models.Project{
		Name:          "Altbestand",
		ProjectNumber: "PRJ190001XX",
	})
	assert.Equal(t, "PRJ190001XX", project.ProjectNumber)
}

func TestProjectUpdateBumpsVersion(t *testing.T) {
	db := newTestDB(t)

	project := mustAddProject(t, db, &models.Project{Name: "Renovierung Altbau", Version: 1})

	project.Name = "Renovierung Altbau EG"
	require.NoError(t, db.ProjectRepo().Update(project))
	assert.Equal(t, 2, project.Version)

	reloaded, err := db.ProjectRepo().FindByNumber(project.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, "Renovierung Altbau EG", reloaded.Name)
	assert.Equal(t, 2, reloaded.Version)
}

func TestProjectSoftDeleteAndRestore(t *testing.T) {
	db := newTestDB(t)

	project := mustAddProject(t, db, &models.Project{Name: "Fahrzeugankauf Flotte"})

	require.NoError(t, db.ProjectRepo().SoftDelete(project.ID))

	// Gone from the scoped lookups.
	_, err := db.ProjectRepo().FindByNumber(project.ProjectNumber)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, count, err := db.ProjectRepo().FindAll(ProjectFilter{}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Still visible unscoped, and restorable.
	unscoped, err := db.ProjectRepo().FindByNumberUnscoped(project.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, project.ID, unscoped.ID)

	restored, err := db.ProjectRepo().Restore(project.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, project.ID, restored.ID)

	_, count, err = db.ProjectRepo().FindAll(ProjectFilter{}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProjectSearchFoldsCase(t *testing.T) {
	db := newTestDB(t)

	mustAddProject(t, db, &models.Project{
		Name:   "Lagerhalle Raeumung",
		Client: "Nordsee Logistik",
	})

	for _, term := range []string{"lagerhalle", "LAGERHALLE"} {
		_, count, err := db.ProjectRepo().FindAll(ProjectFilter{Search: term}, Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count, "search term %q", term)
	}

	_, count, err := db.ProjectRepo().FindAll(ProjectFilter{Client: "nordsee"}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// sqlite's LIKE ignores ASCII case on its own, so also assert the
	// statement folds case explicitly for postgres.
	tx := ProjectFilter{Search: "halle", Client: "nordsee"}.
		apply(db.db.Session(&gorm.Session{DryRun: true}).Model(&models.Project{}))
	var projects []*models.Project
	sql := tx.Find(&projects).Statement.SQL.String()
	assert.Contains(t, sql, "LOWER(projects.name) LIKE LOWER(?)")
	assert.Contains(t, sql, "LOWER(projects.client) LIKE LOWER(?)")
}

func TestProjectFilterByStatusAndPriority(t *testing.T) {
	db := newTestDB(t)

	mustAddProject(t, db, &models.Project{Name: "A", Status: models.StatusActive, Priority: models.PriorityHigh})
	mustAddProject(t, db, &models.Project{Name: "B", Status: models.StatusActive, Priority: models.PriorityLow})
	mustAddProject(t, db, &models.Project{Name: "C", Status: models.StatusDraft, Priority: models.PriorityHigh})

	_, count, err := db.ProjectRepo().FindAll(ProjectFilter{Status: models.StatusActive}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, count, err = db.ProjectRepo().FindAll(ProjectFilter{
		Status:   models.StatusActive,
		Priority: models.PriorityHigh,
	}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProjectTagsFindOrCreate(t *testing.T) {
	db := newTestDB(t)

	tags, err := db.ProjectTagRepo().FindOrCreateByNames([]string{"Umzug", "Express"})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "umzug", tags[0].Slug)

	// Resolving the same names again reuses the rows.
	again, err := db.ProjectTagRepo().FindOrCreateByNames([]string{"Umzug"})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, tags[0].ID, again[0].ID)
}

func TestProjectStatistics(t *testing.T) {
	db := newTestDB(t)

	past := time.Now().AddDate(0, 0, -3)
	mustAddProject(t, db, &models.Project{
		Name:    "Überfällig",
		Status:  models.StatusActive,
		EndDate: &past,
		Budget:  decimal.NewFromInt(1000),
	})
	mustAddProject(t, db, &models.Project{
		Name:   "Geplant",
		Status: models.StatusPlanning,
		Budget: decimal.NewFromInt(3000),
	})

	stats, err := db.ProjectRepo().Statistics(time.Now())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalProjects)
	assert.EqualValues(t, 1, stats.OverdueCount)
	assert.True(t, stats.TotalBudget.Equal(decimal.NewFromInt(4000)))
	assert.True(t, stats.AverageBudget.Equal(decimal.NewFromInt(2000)))
}
