package database

import (
	"testing"
	"time"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustAddServiceCategory(t *testing.T, db Database, name string, categoryType models.ServiceCategoryType) *models.ServiceCategory {
	t.Helper()
	category := &models.ServiceCategory{
		Name:         name,
		CategoryType: categoryType,
		Description:  name,
		IsActive:     true,
	}
	require.NoError(t, db.ServiceCategoryRepo().Add(category))
	return category
}

func mustAddService(t *testing.T, db Database, service *models.Service) *models.Service {
	t.Helper()
	if service.ShortDescription == "" {
		service.ShortDescription = service.Name
	}
	service.IsActive = true
	require.NoError(t, db.ServiceRepo().Add(service))
	return service
}

func TestServiceFindAllCityFilter(t *testing.T) {
	db := newTestDB(t)

	category := mustAddServiceCategory(t, db, "Transport", models.CategoryTransport)

	local := mustAddService(t, db, &models.Service{
		Name:       "Möbeltransport",
		CategoryID: category.ID,
		Areas: []models.ServiceArea{
			{City: "Bremen", IsActive: true},
		},
	})
	mustAddService(t, db, &models.Service{
		Name:       "Fernumzug",
		CategoryID: category.ID,
		Areas: []models.ServiceArea{
			{City: "Hamburg", IsActive: true},
		},
	})

	services, count, err := db.ServiceRepo().FindAll(ServiceFilter{City: "bremen"}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, services, 1)
	assert.Equal(t, local.ID, services[0].ID)
}

func TestServiceSearchFoldsCase(t *testing.T) {
	db := newTestDB(t)

	category := mustAddServiceCategory(t, db, "Transport", models.CategoryTransport)
	mustAddService(t, db, &models.Service{
		Name:       "Klaviertransport",
		CategoryID: category.ID,
	})

	for _, term := range []string{"klavier", "KLAVIER", "Klavier"} {
		_, count, err := db.ServiceRepo().FindAll(ServiceFilter{Search: term}, Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count, "search term %q", term)
	}

	// sqlite's LIKE ignores ASCII case on its own, so also assert the
	// statement folds case explicitly for postgres.
	tx := ServiceFilter{Search: "klavier"}.
		apply(db.db.Session(&gorm.Session{DryRun: true}).Model(&models.Service{}))
	var services []*models.Service
	sql := tx.Find(&services).Statement.SQL.String()
	assert.Contains(t, sql, "LOWER(services.name) LIKE LOWER(?)")
}

func TestServiceCategoryTypeIsUnique(t *testing.T) {
	db := newTestDB(t)

	mustAddServiceCategory(t, db, "Entsorgung", models.CategoryEntsorgung)

	err := db.ServiceCategoryRepo().Add(&models.ServiceCategory{
		Name:         "Entsorgung Zweigstelle",
		CategoryType: models.CategoryEntsorgung,
		Description:  "Duplikat",
		IsActive:     true,
	})
	assert.Error(t, err)
}

func TestServiceViewMonthlyCounts(t *testing.T) {
	db := newTestDB(t)

	category := mustAddServiceCategory(t, db, "Renovierung", models.CategoryRenovierung)
	service := mustAddService(t, db, &models.Service{
		Name:       "Malerarbeiten",
		CategoryID: category.ID,
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, db.ServiceViewRepo().Add(&models.ServiceView{
			ServiceID: service.ID,
			IPAddress: "127.0.0.1",
		}))
	}

	counts, err := db.ServiceViewRepo().MonthlyCounts(time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, time.Now().Format("2006-01"), counts[0].Month)
	assert.EqualValues(t, 3, counts[0].ViewsCount)
}

func TestServiceCategoryStats(t *testing.T) {
	db := newTestDB(t)

	transport := mustAddServiceCategory(t, db, "Transport", models.CategoryTransport)
	werkstatt := mustAddServiceCategory(t, db, "Autowerkstatt", models.CategoryAutowerkstatt)

	mustAddService(t, db, &models.Service{Name: "Kleintransport", CategoryID: transport.ID})
	mustAddService(t, db, &models.Service{Name: "Sperrgut", CategoryID: transport.ID})
	mustAddService(t, db, &models.Service{Name: "Inspektion", CategoryID: werkstatt.ID})

	stats, err := db.ServiceRepo().CategoryStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := make(map[string]CategoryServiceCount)
	for _, s := range stats {
		byName[s.Name] = s
	}
	assert.EqualValues(t, 2, byName["Transport"].ServiceCount)
	assert.EqualValues(t, 1, byName["Autowerkstatt"].ServiceCount)
}

func TestServiceIncrementCounters(t *testing.T) {
	db := newTestDB(t)

	category := mustAddServiceCategory(t, db, "Demontage", models.CategoryDemontageMontage)
	service := mustAddService(t, db, &models.Service{
		Name:       "Küchendemontage",
		CategoryID: category.ID,
	})

	require.NoError(t, db.ServiceRepo().IncrementViews(service.ID))
	require.NoError(t, db.ServiceRepo().IncrementQuoteRequests(service.ID))
	require.NoError(t, db.ServiceRepo().IncrementQuoteRequests(service.ID))

	reloaded, err := db.ServiceRepo().FindBySlug(service.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ViewsCount)
	assert.Equal(t, 2, reloaded.QuoteRequestsCount)
}
