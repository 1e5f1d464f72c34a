package database

import (
	"testing"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustAddProduct(t *testing.T, db Database, product *models.Product) *models.Product {
	t.Helper()
	if product.Condition == "" {
		product.Condition = models.ConditionGood
	}
	if product.Status == "" {
		product.Status = models.ProductAvailable
	}
	if product.StockQuantity == 0 {
		product.StockQuantity = 1
	}
	if product.LowStockThreshold == 0 {
		product.LowStockThreshold = 5
	}
	require.NoError(t, db.ProductRepo().Add(product))
	return product
}

func TestProductAddGeneratesUniqueSlug(t *testing.T) {
	db := newTestDB(t)

	first := mustAddProduct(t, db, &models.Product{
		Title:            "Eichenschrank mit Spiegel",
		ShortDescription: "Massivholz",
		Price:            decimal.NewFromInt(250),
	})
	second := mustAddProduct(t, db, &models.Product{
		Title:            "Eichenschrank mit Spiegel",
		ShortDescription: "Massivholz, zweite Anlieferung",
		Price:            decimal.NewFromInt(230),
	})

	assert.Equal(t, "eichenschrank-mit-spiegel", first.Slug)
	assert.Equal(t, "eichenschrank-mit-spiegel-2", second.Slug)
}

func TestProductFindAllFilters(t *testing.T) {
	db := newTestDB(t)

	category := &models.ProductCategory{Name: "Möbel", IsActive: true}
	require.NoError(t, db.ProductCategoryRepo().Add(category))

	sofa := mustAddProduct(t, db, &models.Product{
		Title:            "Ledersofa",
		ShortDescription: "Drei Sitzplätze",
		Price:            decimal.NewFromInt(400),
		Brand:            "Rolf Benz",
		Condition:        models.ConditionLikeNew,
		Categories:       []models.ProductCategory{*category},
	})
	mustAddProduct(t, db, &models.Product{
		Title:            "Kühlschrank",
		ShortDescription: "Energieklasse A",
		Price:            decimal.NewFromInt(150),
		Condition:        models.ConditionGood,
	})
	mustAddProduct(t, db, &models.Product{
		Title:            "Verkaufter Tisch",
		ShortDescription: "Bereits weg",
		Price:            decimal.NewFromInt(80),
		Status:           models.ProductSold,
	})

	// Default listing hides non-available products.
	products, count, err := db.ProductRepo().FindAll(ProductFilter{}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Len(t, products, 2)

	// Search matches title.
	_, count, err = db.ProductRepo().FindAll(ProductFilter{Search: "Leder"}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Price range.
	min := decimal.NewFromInt(300)
	_, count, err = db.ProductRepo().FindAll(ProductFilter{MinPrice: &min}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Category slug.
	byCategory, count, err := db.ProductRepo().FindAll(ProductFilter{CategorySlug: category.Slug}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, byCategory, 1)
	assert.Equal(t, sofa.ID, byCategory[0].ID)

	// Condition.
	_, count, err = db.ProductRepo().FindAll(ProductFilter{Condition: models.ConditionLikeNew}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Staff view includes everything.
	_, count, err = db.ProductRepo().FindAll(ProductFilter{IncludeAllStatuses: true}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestProductSearchFoldsCase(t *testing.T) {
	db := newTestDB(t)

	mustAddProduct(t, db, &models.Product{
		Title:            "Ledersofa",
		ShortDescription: "Drei Sitzplaetze",
		Price:            decimal.NewFromInt(400),
	})

	for _, term := range []string{"ledersofa", "LEDERSOFA", "LederSofa"} {
		_, count, err := db.ProductRepo().FindAll(ProductFilter{Search: term}, Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count, "search term %q", term)
	}

	// sqlite's LIKE ignores ASCII case on its own, so also assert the
	// statement folds case explicitly for postgres.
	tx := ProductFilter{Search: "sofa", Material: "Leder", Color: "Braun"}.
		apply(db.db.Session(&gorm.Session{DryRun: true}).Model(&models.Product{}))
	var products []*models.Product
	sql := tx.Find(&products).Statement.SQL.String()
	assert.Contains(t, sql, "LOWER(products.title) LIKE LOWER(?)")
	assert.Contains(t, sql, "LOWER(products.material) LIKE LOWER(?)")
	assert.Contains(t, sql, "LOWER(products.color) LIKE LOWER(?)")
}

func TestProductFindAllPagination(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		mustAddProduct(t, db, &models.Product{
			Title:            "Stuhl",
			ShortDescription: "Einzelstück",
			Price:            decimal.NewFromInt(int64(20 + i)),
		})
	}

	products, count, err := db.ProductRepo().FindAll(ProductFilter{}, Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
	assert.Len(t, products, 2)
}

func TestProductCategoryDescendants(t *testing.T) {
	db := newTestDB(t)

	root := &models.ProductCategory{Name: "Möbel", IsActive: true}
	require.NoError(t, db.ProductCategoryRepo().Add(root))
	child := &models.ProductCategory{Name: "Schränke", ParentID: &root.ID, IsActive: true}
	require.NoError(t, db.ProductCategoryRepo().Add(child))
	grandchild := &models.ProductCategory{Name: "Kleiderschränke", ParentID: &child.ID, IsActive: true}
	require.NoError(t, db.ProductCategoryRepo().Add(grandchild))

	ids, err := db.ProductCategoryRepo().DescendantIDs(root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{root.ID, child.ID, grandchild.ID}, ids)

	// Products in the leaf category surface when browsing the root.
	mustAddProduct(t, db, &models.Product{
		Title:            "Kleiderschrank Pinie",
		ShortDescription: "Zwei Türen",
		Price:            decimal.NewFromInt(180),
		Categories:       []models.ProductCategory{*grandchild},
	})

	products, count, err := db.ProductRepo().FindByCategoryIDs(ids, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, products, 1)
}

func TestProductStatistics(t *testing.T) {
	db := newTestDB(t)

	mustAddProduct(t, db, &models.Product{
		Title:            "Sessel",
		ShortDescription: "Gut erhalten",
		Price:            decimal.NewFromInt(100),
		StockQuantity:    2,
		LowStockThreshold: 5,
	})
	mustAddProduct(t, db, &models.Product{
		Title:            "Vitrine",
		ShortDescription: "Antik",
		Price:            decimal.NewFromInt(300),
		StockQuantity:    10,
	})
	mustAddProduct(t, db, &models.Product{
		Title:            "Kommode",
		ShortDescription: "Verkauft",
		Price:            decimal.NewFromInt(50),
		Status:           models.ProductSold,
	})

	stats, err := db.ProductRepo().Statistics()
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.AvailableProducts)
	assert.EqualValues(t, 1, stats.SoldProducts)
	assert.EqualValues(t, 1, stats.LowStockProducts)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(450)))
}

func TestProductReviewHelpfulVotes(t *testing.T) {
	db := newTestDB(t)

	product := mustAddProduct(t, db, &models.Product{
		Title:            "Esstisch",
		ShortDescription: "Ausziehbar",
		Price:            decimal.NewFromInt(220),
	})

	review := &models.ProductReview{
		ProductID:    product.ID,
		Rating:       4,
		Comment:      "Sehr stabil",
		ReviewerName: "T. Muster",
	}
	require.NoError(t, db.ProductReviewRepo().Add(review))

	require.NoError(t, db.ProductReviewRepo().RecordHelpfulVote(review.ID, true))
	require.NoError(t, db.ProductReviewRepo().RecordHelpfulVote(review.ID, true))
	require.NoError(t, db.ProductReviewRepo().RecordHelpfulVote(review.ID, false))

	reloaded, err := db.ProductReviewRepo().FindByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.HelpfulYes)
	assert.Equal(t, 1, reloaded.HelpfulNo)

	// Unapproved reviews are hidden from the public listing.
	_, count, err := db.ProductReviewRepo().FindAll(ProductReviewFilter{
		ProductSlug:  product.Slug,
		ApprovedOnly: true,
	}, Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
