package api

import (
	"net/http"
	"testing"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedService(t *testing.T, db database.Database, name string) *models.Service {
	t.Helper()

	category := &models.ServiceCategory{
		Name:         "Transport",
		CategoryType: models.CategoryTransport,
		Description:  "Transporte aller Art",
		IsActive:     true,
	}
	require.NoError(t, db.ServiceCategoryRepo().Add(category))

	service := &models.Service{
		Name:             name,
		CategoryID:       category.ID,
		ShortDescription: "Kurzbeschreibung",
		IsActive:         true,
	}
	require.NoError(t, db.ServiceRepo().Add(service))
	return service
}

func TestCreateServiceRequiresCategory(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := postJSON(t, server.URL+"/api/v1/services", staffToken, map[string]any{
		"name":              "Möbeltransport",
		"short_description": "Von Tür zu Tür",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "category_id", body["field"])
}

func TestServiceDetailAndQuoteRequest(t *testing.T) {
	server, db := newTestServer(t)
	service := seedService(t, db, "Möbeltransport")

	resp := getJSON(t, server.URL+"/api/v1/services/"+service.Slug, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Service
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Möbeltransport", fetched.Name)

	resp = postJSON(t, server.URL+"/api/v1/services/"+service.Slug+"/increment-quote-request", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	reloaded, err := db.ServiceRepo().FindBySlug(service.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.QuoteRequestsCount)
	// The detail fetch above was counted too.
	assert.Equal(t, 1, reloaded.ViewsCount)
}

func TestTestimonialStartsUnapproved(t *testing.T) {
	server, db := newTestServer(t)
	service := seedService(t, db, "Entrümpelung")

	resp := postJSON(t, server.URL+"/api/v1/services/testimonials", "", map[string]any{
		"client_name": "Familie Weber",
		"content":     "Schnell und zuverlässig.",
		"rating":      5,
		"service_id":  service.ID,
		"is_approved": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Testimonial
	decodeBody(t, resp, &created)
	assert.False(t, created.IsApproved, "approval cannot be self-granted")
	assert.False(t, created.IsFeatured)

	// Hidden from the public listing until staff approves it.
	resp = getJSON(t, server.URL+"/api/v1/services/testimonials", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var paged PagedResponse
	decodeBody(t, resp, &paged)
	assert.EqualValues(t, 0, paged.Count)
}

func TestApprovedTestimonialIsListed(t *testing.T) {
	server, db := newTestServer(t)
	service := seedService(t, db, "Gartenpflege")
	_, staffToken := createUser(t, db, "chef@example.com", true)

	testimonial := &models.Testimonial{
		ClientName: "Herr Schulz",
		Content:    "Gerne wieder.",
		Rating:     4,
		ServiceID:  service.ID,
	}
	require.NoError(t, db.TestimonialRepo().Add(testimonial))

	resp := putJSON(t, server.URL+"/api/v1/services/testimonials/"+testimonial.ID.String(), staffToken, map[string]any{
		"client_name": testimonial.ClientName,
		"content":     testimonial.Content,
		"rating":      testimonial.Rating,
		"is_approved": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, server.URL+"/api/v1/services/testimonials", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var paged PagedResponse
	decodeBody(t, resp, &paged)
	assert.EqualValues(t, 1, paged.Count)
}

func TestServiceStatisticsEndpoint(t *testing.T) {
	server, db := newTestServer(t)
	seedService(t, db, "Winterdienst")
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := getJSON(t, server.URL+"/api/v1/services/statistics", staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats serviceStatistics
	decodeBody(t, resp, &stats)
	assert.EqualValues(t, 1, stats.TotalServices)
	assert.EqualValues(t, 1, stats.ActiveServices)
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthResponse
	decodeBody(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
}
