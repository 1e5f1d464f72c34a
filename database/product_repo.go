package database

import (
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db}
}

// ProductFilter collects every query-string filter the product list and
// search endpoints accept. Zero values mean "not filtered".
type ProductFilter struct {
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	CategorySlug string
	Condition    models.ProductCondition
	Brand        string
	Material     string
	Color        string

	RequiresAssembly         *bool
	DeliveryAvailable        *bool
	AssemblyServiceAvailable *bool

	Featured   bool
	Bestseller bool
	OnSale     bool

	// Status narrows to one sales state; IncludeAllStatuses lifts the
	// default available-only gate for staff callers.
	Status             models.ProductStatus
	IncludeAllStatuses bool

	SortBy string
}

func (f ProductFilter) apply(tx *gorm.DB) *gorm.DB {
	if f.Search != "" {
		// LOWER on both sides keeps matching case-insensitive on postgres,
		// where LIKE is case-sensitive.
		like := "%" + f.Search + "%"
		tx = tx.Where(
			"LOWER(products.title) LIKE LOWER(?) OR LOWER(products.short_description) LIKE LOWER(?) OR LOWER(products.full_description) LIKE LOWER(?) OR LOWER(products.brand) LIKE LOWER(?) OR LOWER(products.model) LIKE LOWER(?)",
			like, like, like, like, like)
	}
	if f.MinPrice != nil {
		tx = tx.Where("products.price >= ?", f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("products.price <= ?", f.MaxPrice)
	}
	if f.CategorySlug != "" {
		tx = tx.Joins("JOIN product_category_assignments pca ON pca.product_id = products.id").
			Joins("JOIN product_categories pc ON pc.id = pca.product_category_id").
			Where("pc.slug = ?", f.CategorySlug).
			Distinct("products.*")
	}
	if f.Condition != "" {
		tx = tx.Where("products.condition = ?", f.Condition)
	}
	if f.Brand != "" {
		tx = tx.Where("LOWER(products.brand) = LOWER(?)", f.Brand)
	}
	if f.Material != "" {
		tx = tx.Where("LOWER(products.material) LIKE LOWER(?)", "%"+f.Material+"%")
	}
	if f.Color != "" {
		tx = tx.Where("LOWER(products.color) LIKE LOWER(?)", "%"+f.Color+"%")
	}
	if f.RequiresAssembly != nil {
		tx = tx.Where("products.requires_assembly = ?", *f.RequiresAssembly)
	}
	if f.DeliveryAvailable != nil {
		tx = tx.Where("products.delivery_available = ?", *f.DeliveryAvailable)
	}
	if f.AssemblyServiceAvailable != nil {
		tx = tx.Where("products.assembly_service_available = ?", *f.AssemblyServiceAvailable)
	}
	if f.Featured {
		tx = tx.Where("products.is_featured = ?", true)
	}
	if f.Bestseller {
		tx = tx.Where("products.is_bestseller = ?", true)
	}
	if f.OnSale {
		tx = tx.Where("products.is_on_sale = ?", true)
	}

	switch {
	case f.Status != "":
		tx = tx.Where("products.status = ?", f.Status)
	case !f.IncludeAllStatuses:
		tx = tx.Where("products.status = ?", models.ProductAvailable)
	}

	return f.order(tx)
}

func (f ProductFilter) order(tx *gorm.DB) *gorm.DB {
	switch f.SortBy {
	case "price", "price_low":
		return tx.Order("products.price ASC")
	case "-price", "price_high":
		return tx.Order("products.price DESC")
	case "created_at":
		return tx.Order("products.created_at ASC")
	case "views_count":
		return tx.Order("products.views_count ASC")
	case "-views_count", "popular":
		return tx.Order("products.views_count DESC")
	case "rating":
		return tx.Select("products.*, (SELECT AVG(rating) FROM product_reviews pr WHERE pr.product_id = products.id AND pr.is_approved = ?) AS avg_rating", true).
			Order("avg_rating DESC")
	default:
		return tx.Order("products.created_at DESC")
	}
}

// FindAll returns one page of products matching the filter plus the total
// match count.
func (r *ProductRepo) FindAll(filter ProductFilter, page Page) ([]*models.Product, int64, error) {
	base := filter.apply(r.db.Model(&models.Product{}))

	var count int64
	if err := base.Session(&gorm.Session{}).Distinct("products.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var products []*models.Product
	err := page.apply(base.Session(&gorm.Session{}).Preload("Categories").Preload("Images")).
		Find(&products).Error
	return products, count, err
}

// FindBySlug returns a product with all display relations preloaded.
func (r *ProductRepo) FindBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Categories").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC, is_primary DESC")
		}).
		Preload("Features", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCategoryIDs returns available products assigned to any of the given
// categories (used for category browsing including descendants).
func (r *ProductRepo) FindByCategoryIDs(categoryIDs []uuid.UUID, page Page) ([]*models.Product, int64, error) {
	base := r.db.Model(&models.Product{}).
		Joins("JOIN product_category_assignments pca ON pca.product_id = products.id").
		Where("pca.product_category_id IN ?", categoryIDs).
		Where("products.status = ?", models.ProductAvailable).
		Distinct("products.*")

	var count int64
	if err := base.Session(&gorm.Session{}).Distinct("products.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var products []*models.Product
	err := page.apply(base.Session(&gorm.Session{}).Order("products.created_at DESC")).
		Preload("Categories").Preload("Images").
		Find(&products).Error
	return products, count, err
}

// FindSimilar returns available products sharing a category with the given
// product, excluding the product itself.
func (r *ProductRepo) FindSimilar(product *models.Product, limit int) ([]*models.Product, error) {
	if len(product.Categories) == 0 {
		return nil, nil
	}

	categoryIDs := make([]uuid.UUID, 0, len(product.Categories))
	for _, c := range product.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	var products []*models.Product
	err := r.db.Model(&models.Product{}).
		Joins("JOIN product_category_assignments pca ON pca.product_id = products.id").
		Where("pca.product_category_id IN ?", categoryIDs).
		Where("products.status = ?", models.ProductAvailable).
		Where("products.id <> ?", product.ID).
		Distinct("products.*").
		Limit(limit).
		Preload("Images").
		Find(&products).Error
	return products, err
}

// Add inserts a new product, generating a unique slug from the title when
// none was supplied. Associated images and features ride along.
func (r *ProductRepo) Add(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if product.Slug == "" {
			slug, err := uniqueSlug(tx, "products", product.Title)
			if err != nil {
				return err
			}
			product.Slug = slug
		}
		return tx.Create(product).Error
	})
}

// Update saves an existing product and replaces its category assignment.
func (r *ProductRepo) Update(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Images", "Features", "Reviews").Save(product).Error; err != nil {
			return err
		}
		if product.Categories != nil {
			return tx.Model(product).Association("Categories").Replace(product.Categories)
		}
		return nil
	})
}

// Delete removes a product; child rows cascade.
func (r *ProductRepo) Delete(id uuid.UUID) error {
	return r.db.Select("Images", "Features", "Reviews").Delete(&models.Product{Timestamped: models.Timestamped{ID: id}}).Error
}

// IncrementViews bumps the denormalized view counter.
func (r *ProductRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// CategoryProductCount is a per-category product total for statistics.
type CategoryProductCount struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

// ProductStatistics is the aggregate report served to staff.
type ProductStatistics struct {
	TotalProducts     int64                  `json:"total_products"`
	AvailableProducts int64                  `json:"available_products"`
	SoldProducts      int64                  `json:"sold_products"`
	LowStockProducts  int64                  `json:"low_stock_products"`
	CategoryStats     []CategoryProductCount `json:"category_stats"`
	TotalRevenue      decimal.Decimal        `json:"total_revenue"`
}

// Statistics aggregates product counts and a naive revenue sum.
func (r *ProductRepo) Statistics() (*ProductStatistics, error) {
	var stats ProductStatistics

	if err := r.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Product{}).Where("status = ?", models.ProductAvailable).
		Count(&stats.AvailableProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Product{}).Where("status = ?", models.ProductSold).
		Count(&stats.SoldProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("status = ?", models.ProductAvailable).
		Where("stock_quantity <= low_stock_threshold").
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, err
	}

	err := r.db.Model(&models.ProductCategory{}).
		Select("product_categories.name AS name, COUNT(pca.product_id) AS product_count").
		Joins("LEFT JOIN product_category_assignments pca ON pca.product_category_id = product_categories.id").
		Group("product_categories.id, product_categories.name").
		Order("product_categories.name").
		Scan(&stats.CategoryStats).Error
	if err != nil {
		return nil, err
	}

	var revenue *decimal.Decimal
	if err := r.db.Model(&models.Product{}).
		Select("SUM(price)").Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	return &stats, nil
}
