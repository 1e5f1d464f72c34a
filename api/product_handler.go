package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/media"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type productHandler struct {
	responder   Responder
	logger      zerolog.Logger
	productRepo *database.ProductRepo
	viewRepo    *database.ProductViewRepo
	imageRepo   *database.ProductImageRepo
	mediaStore  media.Store
}

func newProductHandler(productRepo *database.ProductRepo, viewRepo *database.ProductViewRepo, imageRepo *database.ProductImageRepo, mediaStore media.Store) productHandler {
	logger := log.With().Str("handlerName", "productHandler").Logger()

	return productHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		productRepo: productRepo,
		viewRepo:    viewRepo,
		imageRepo:   imageRepo,
		mediaStore:  mediaStore,
	}
}

// productFilterFromRequest maps the supported query parameters onto a
// repository filter. Staff callers may look past the available-only gate.
func productFilterFromRequest(r *http.Request) database.ProductFilter {
	q := r.URL.Query()

	filter := database.ProductFilter{
		Search:       q.Get("search"),
		MinPrice:     queryDecimal(r, "min_price"),
		MaxPrice:     queryDecimal(r, "max_price"),
		CategorySlug: q.Get("category"),
		Condition:    models.ProductCondition(q.Get("condition")),
		Brand:        q.Get("brand"),
		Material:     q.Get("material"),
		Color:        q.Get("color"),

		RequiresAssembly:         queryBool(r, "requires_assembly"),
		DeliveryAvailable:        queryBool(r, "delivery_available"),
		AssemblyServiceAvailable: queryBool(r, "assembly_service_available"),

		Featured:   queryFlag(r, "featured"),
		Bestseller: queryFlag(r, "bestseller"),
		OnSale:     queryFlag(r, "on_sale"),

		SortBy: q.Get("ordering"),
	}

	if user := ctxUserOrNil(r.Context()); user != nil && user.IsStaff {
		filter.IncludeAllStatuses = true
		filter.Status = models.ProductStatus(q.Get("status"))
	}

	return filter
}

// getAllProducts lists products with filtering, ordering, and pagination
// @Summary List products
// @Tags Products
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /products [get]
func (h productHandler) getAllProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, count, err := h.productRepo.FindAll(productFilterFromRequest(r), parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find products", "products", err))
			return
		}

		h.responder.WritePaged(w, count, products)
	}
}

// searchProducts is a search-first alias of the list endpoint. The response
// echoes the query parameters next to the results.
// @Summary Search products
// @Tags Products
// @Produce json
// @Param q query string true "Search terms"
// @Param sort_by query string false "price_low, price_high, popular or rating"
// @Success 200 {object} SearchResponse
// @Router /products/search [get]
func (h productHandler) searchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := productFilterFromRequest(r)
		if q := r.URL.Query().Get("q"); q != "" {
			filter.Search = q
		}
		if filter.Search == "" {
			h.responder.WriteError(w, errs.NewValidationError("q", "search terms are required"))
			return
		}
		if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
			filter.SortBy = sortBy
		}

		products, count, err := h.productRepo.FindAll(filter, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search products", "products", err))
			return
		}

		h.responder.WriteJSON(w, SearchResponse{
			Count:        count,
			Results:      products,
			SearchParams: searchParams(r),
		})
	}
}

// getProduct returns a product by slug and records the view
// @Summary Get product
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Router /products/{slug} [get]
func (h productHandler) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing product slug"))
			return
		}

		product, err := h.productRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		h.recordView(r, product)

		h.responder.WriteJSON(w, product)
	}
}

// recordView logs the detail hit and bumps the counter. Failures are logged
// and never surface to the caller.
func (h productHandler) recordView(r *http.Request, product *models.Product) {
	view := models.ProductView{
		ProductID: product.ID,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
	if user := ctxUserOrNil(r.Context()); user != nil {
		view.UserID = &user.ID
	}

	if err := h.viewRepo.Add(&view); err != nil {
		h.logger.Warn().Err(err).Str("slug", product.Slug).Msg("failed to log product view")
		return
	}
	if err := h.productRepo.IncrementViews(product.ID); err != nil {
		h.logger.Warn().Err(err).Str("slug", product.Slug).Msg("failed to increment product views")
	}
}

// incrementView bumps the view counter without returning the product
// @Summary Record a product view
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /products/{slug}/increment-view [post]
func (h productHandler) incrementView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.productRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		h.recordView(r, product)

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "view recorded",
		})
	}
}

// getSimilarProducts returns products sharing a category
// @Summary Similar products
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} PagedResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{slug}/similar [get]
func (h productHandler) getSimilarProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.productRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		limit := queryInt(r, "limit", 8)
		similar, err := h.productRepo.FindSimilar(product, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find similar products", "products", err))
			return
		}

		h.responder.WritePaged(w, int64(len(similar)), similar)
	}
}

// curated listings: featured, bestsellers, on sale

func (h productHandler) listCurated(flag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ProductFilter{SortBy: r.URL.Query().Get("ordering")}
		switch flag {
		case "featured":
			filter.Featured = true
		case "bestsellers":
			filter.Bestseller = true
		case "on_sale":
			filter.OnSale = true
		}

		page := parsePage(r)
		if page.Limit == 0 {
			page.Limit = 12
		}

		products, count, err := h.productRepo.FindAll(filter, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find "+flag+" products", "products", err))
			return
		}

		h.responder.WritePaged(w, count, products)
	}
}

// getFeaturedProducts lists featured products
// @Summary Featured products
// @Tags Products
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /products/featured [get]
func (h productHandler) getFeaturedProducts() http.HandlerFunc {
	return h.listCurated("featured")
}

// getBestsellerProducts lists bestseller products
// @Summary Bestseller products
// @Tags Products
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /products/bestsellers [get]
func (h productHandler) getBestsellerProducts() http.HandlerFunc {
	return h.listCurated("bestsellers")
}

// getOnSaleProducts lists products with an active sale
// @Summary On-sale products
// @Tags Products
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /products/on-sale [get]
func (h productHandler) getOnSaleProducts() http.HandlerFunc {
	return h.listCurated("on_sale")
}

// validateProduct applies the field rules shared by create and update.
func validateProduct(p *models.Product) error {
	if p.Title == "" {
		return errs.NewValidationError("title", "title is required")
	}
	if p.ShortDescription == "" {
		return errs.NewValidationError("short_description", "short description is required")
	}
	if p.Price.IsNegative() {
		return errs.NewValidationError("price", "price cannot be negative")
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		return errs.NewValidationError("original_price", "original price cannot be negative")
	}
	if p.Condition != "" && !p.Condition.Valid() {
		return errs.NewValidationError("condition", "unknown condition")
	}
	if p.Status != "" && !p.Status.Valid() {
		return errs.NewValidationError("status", "unknown status")
	}
	if p.IsOnSale {
		if p.SalePrice == nil {
			return errs.NewValidationError("sale_price", "sale price is required when on sale")
		}
		if p.SalePrice.IsNegative() {
			return errs.NewValidationError("sale_price", "sale price cannot be negative")
		}
		if p.SalePrice.GreaterThanOrEqual(p.Price) {
			return errs.NewValidationError("sale_price", "sale price must be below the regular price")
		}
	}
	if p.StockQuantity < 0 {
		return errs.NewValidationError("stock_quantity", "stock quantity cannot be negative")
	}
	return nil
}

// createProduct creates a product (staff only)
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Router /products [post]
func (h productHandler) createProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product models.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			h.responder.WriteError(w, errs.Malformed("product"))
			return
		}

		if product.Condition == "" {
			product.Condition = models.ConditionGood
		}
		if product.Status == "" {
			product.Status = models.ProductAvailable
		}
		if err := validateProduct(&product); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if product.PublishedAt == nil && product.Status == models.ProductAvailable {
			now := time.Now()
			product.PublishedAt = &now
		}

		if err := h.productRepo.Add(&product); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create product", "product", err))
			return
		}

		created, err := h.productRepo.FindBySlug(product.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created product", "product", err))
			return
		}

		h.responder.WriteCreated(w, created)
	}
}

// updateProduct updates a product (staff only)
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Param slug path string true "Product slug"
// @Param product body models.Product true "Updated product data"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Router /products/{slug} [put]
func (h productHandler) updateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.productRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		var product models.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			h.responder.WriteError(w, errs.Malformed("product"))
			return
		}

		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		if product.Slug == "" {
			product.Slug = existing.Slug
		}
		if product.Condition == "" {
			product.Condition = existing.Condition
		}
		if product.Status == "" {
			product.Status = existing.Status
		}
		if err := validateProduct(&product); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.productRepo.Update(&product); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update product", "product", err))
			return
		}

		updated, err := h.productRepo.FindBySlug(product.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated product", "product", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProduct removes a product (staff only)
// @Summary Delete product
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /products/{slug} [delete]
func (h productHandler) deleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.productRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		if err := h.productRepo.Delete(product.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete product", "product", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "product deleted successfully",
		})
	}
}

const maxUploadSize = 10 << 20 // 10MB

// uploadProductImage stores an image in the media store and attaches it to
// the product (staff only)
// @Summary Upload product image
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Product slug"
// @Param image formData file true "Image file"
// @Success 201 {object} models.ProductImage
// @Failure 400 {object} ErrorResponse
// @Router /products/{slug}/images [post]
func (h productHandler) uploadProductImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.productRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		if h.mediaStore == nil {
			h.responder.WriteError(w, errs.NewInternalError("media storage is not configured"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("image", "could not parse upload"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("image", "image file is required"))
			return
		}
		defer file.Close()

		key := media.ObjectKey("products", header.Filename, time.Now())
		url, err := h.mediaStore.Put(r.Context(), key, header.Header.Get("Content-Type"), file)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("storing image failed", err))
			return
		}

		image := models.ProductImage{
			ProductID:    product.ID,
			URL:          url,
			AltText:      r.FormValue("alt_text"),
			Caption:      r.FormValue("caption"),
			DisplayOrder: queryInt(r, "display_order", len(product.Images)),
			IsPrimary:    len(product.Images) == 0,
		}
		if err := h.imageRepo.Add(&image); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create product image", "product_image", err))
			return
		}

		h.responder.WriteCreated(w, image)
	}
}

// getProductStatistics returns the staff aggregate report
// @Summary Product statistics
// @Tags Products
// @Produce json
// @Success 200 {object} database.ProductStatistics
// @Router /products/statistics [get]
func (h productHandler) getProductStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.productRepo.Statistics()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate product statistics", "products", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}
