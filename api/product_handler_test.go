package api

import (
	"net/http"
	"testing"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateProductGeneratesSlug(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := postJSON(t, server.URL+"/api/v1/products", staffToken, map[string]any{
		"title":             "Eichenschrank mit Spiegel",
		"short_description": "Massivholz, guter Zustand",
		"price":             "250.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	assert.Equal(t, "eichenschrank-mit-spiegel", created.Slug)
	assert.Equal(t, models.ProductAvailable, created.Status)
	assert.Equal(t, models.ConditionGood, created.Condition)
}

func TestCreateProductRequiresStaff(t *testing.T) {
	server, db := newTestServer(t)
	_, userToken := createUser(t, db, "kunde@example.com", false)

	payload := map[string]any{
		"title":             "Stuhl",
		"short_description": "Einzelstück",
		"price":             "20.00",
	}

	resp := postJSON(t, server.URL+"/api/v1/products", "", payload)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/v1/products", userToken, payload)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateProductValidation(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := postJSON(t, server.URL+"/api/v1/products", staffToken, map[string]any{
		"title":             "Defekter Artikel",
		"short_description": "Negativer Preis",
		"price":             "-1.00",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "price", body["field"])
}

func TestCreateFreeProduct(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	// Giveaways are listed with a zero price.
	resp := postJSON(t, server.URL+"/api/v1/products", staffToken, map[string]any{
		"title":             "Gratis Karton",
		"short_description": "Umzugskartons zum Mitnehmen",
		"price":             "0",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	assert.True(t, created.Price.IsZero())
}

func TestProductListAndDetail(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := postJSON(t, server.URL+"/api/v1/products", staffToken, map[string]any{
		"title":             "Ledersofa",
		"short_description": "Drei Sitzplätze",
		"price":             "400.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Public listing needs no token.
	resp = getJSON(t, server.URL+"/api/v1/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var paged PagedResponse
	decodeBody(t, resp, &paged)
	assert.EqualValues(t, 1, paged.Count)

	resp = getJSON(t, server.URL+"/api/v1/products/ledersofa", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var product models.Product
	decodeBody(t, resp, &product)
	assert.Equal(t, "Ledersofa", product.Title)

	// The detail hit was logged on the counter.
	reloaded, err := db.ProductRepo().FindBySlug("ledersofa")
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ViewsCount)
}

func TestProductDetailNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/v1/products/gibt-es-nicht", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProductSearchRequiresTerms(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/v1/products/search", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteProduct(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	product := &models.Product{
		Title:            "Kommode",
		ShortDescription: "Drei Schubladen",
		Price:            decimal.NewFromInt(90),
		Condition:        models.ConditionGood,
		Status:           models.ProductAvailable,
	}
	require.NoError(t, db.ProductRepo().Add(product))

	resp := deleteJSON(t, server.URL+"/api/v1/products/"+product.Slug, staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, server.URL+"/api/v1/products/"+product.Slug, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateAnonymousReview(t *testing.T) {
	server, db := newTestServer(t)

	product := &models.Product{
		Title:            "Esstisch",
		ShortDescription: "Ausziehbar",
		Price:            decimal.NewFromInt(220),
		Condition:        models.ConditionGood,
		Status:           models.ProductAvailable,
	}
	require.NoError(t, db.ProductRepo().Add(product))

	// Missing name is rejected with the offending field.
	resp := postJSON(t, server.URL+"/api/v1/products/"+product.Slug+"/reviews", "", map[string]any{
		"rating":  4,
		"comment": "Sehr stabil",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "reviewer_name", body["field"])

	resp = postJSON(t, server.URL+"/api/v1/products/"+product.Slug+"/reviews", "", map[string]any{
		"rating":         4,
		"comment":        "Sehr stabil",
		"reviewer_name":  "T. Muster",
		"reviewer_email": "t@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var review models.ProductReview
	decodeBody(t, resp, &review)
	assert.False(t, review.IsApproved)

	// Unapproved reviews stay hidden from the public listing.
	resp = getJSON(t, server.URL+"/api/v1/products/"+product.Slug+"/reviews", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var paged PagedResponse
	decodeBody(t, resp, &paged)
	assert.EqualValues(t, 0, paged.Count)
}

func TestMarkReviewHelpful(t *testing.T) {
	server, db := newTestServer(t)

	product := &models.Product{
		Title:            "Bücherregal",
		ShortDescription: "Fünf Böden",
		Price:            decimal.NewFromInt(60),
		Condition:        models.ConditionGood,
		Status:           models.ProductAvailable,
	}
	require.NoError(t, db.ProductRepo().Add(product))

	review := &models.ProductReview{
		ProductID:     product.ID,
		Rating:        5,
		Comment:       "Stabil und schön",
		ReviewerName:  "T. Muster",
		ReviewerEmail: "t@example.com",
		IsApproved:    true,
	}
	require.NoError(t, db.ProductReviewRepo().Add(review))

	resp := postJSON(t, server.URL+"/api/v1/products/reviews/"+review.ID.String()+"/helpful",
		"", map[string]string{"type": "yes"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var voted models.ProductReview
	decodeBody(t, resp, &voted)
	assert.Equal(t, 1, voted.HelpfulYes)
	assert.Equal(t, 0, voted.HelpfulNo)

	resp = postJSON(t, server.URL+"/api/v1/products/reviews/"+review.ID.String()+"/helpful",
		"", map[string]string{"type": "maybe"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReportReviewRequiresLogin(t *testing.T) {
	server, db := newTestServer(t)
	_, token := createUser(t, db, "kunde@example.com", false)

	product := &models.Product{
		Title:            "Lampe",
		ShortDescription: "Messing",
		Price:            decimal.NewFromInt(30),
		Condition:        models.ConditionGood,
		Status:           models.ProductAvailable,
	}
	require.NoError(t, db.ProductRepo().Add(product))

	review := &models.ProductReview{
		ProductID:     product.ID,
		Rating:        1,
		Comment:       "Unsinn",
		ReviewerName:  "Anonym",
		ReviewerEmail: "a@example.com",
	}
	require.NoError(t, db.ProductReviewRepo().Add(review))

	url := server.URL + "/api/v1/products/reviews/" + review.ID.String() + "/report"

	resp := postJSON(t, url, "", map[string]string{"reason": "spam"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, url, token, map[string]string{"reason": "spam"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProductStatisticsEndpointIsStaffOnly(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := getJSON(t, server.URL+"/api/v1/products/statistics", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, server.URL+"/api/v1/products/statistics", staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
