package api

import (
	"encoding/json"
	"net/http"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type productCategoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.ProductCategoryRepo
	productRepo  *database.ProductRepo
}

func newProductCategoryHandler(categoryRepo *database.ProductCategoryRepo, productRepo *database.ProductRepo) productCategoryHandler {
	logger := log.With().Str("handlerName", "productCategoryHandler").Logger()

	return productCategoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// getAllCategories lists active product categories
// @Summary List product categories
// @Tags Product Categories
// @Produce json
// @Param parent query string false "Limit to children of this category slug"
// @Param root query bool false "Limit to root categories"
// @Success 200 {object} PagedResponse
// @Router /products/categories [get]
func (h productCategoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ProductCategoryFilter{
			ParentSlug: r.URL.Query().Get("parent"),
			RootOnly:   queryFlag(r, "root_only"),
		}

		categories, err := h.categoryRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product categories", "product_categories", err))
			return
		}

		h.responder.WritePaged(w, int64(len(categories)), categories)
	}
}

// getCategory returns one category by slug
// @Summary Get product category
// @Tags Product Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.ProductCategory
// @Failure 404 {object} ErrorResponse
// @Router /products/categories/{slug} [get]
func (h productCategoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing category slug"))
			return
		}

		category, err := h.categoryRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product category", "product_category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// getCategoryProducts lists available products in a category and all of its
// descendants
// @Summary List products of a category
// @Tags Product Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} PagedResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/categories/{slug}/products [get]
func (h productCategoryHandler) getCategoryProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing category slug"))
			return
		}

		category, err := h.categoryRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product category", "product_category", err))
			return
		}

		categoryIDs, err := h.categoryRepo.DescendantIDs(category.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("walk category tree", "product_categories", err))
			return
		}

		products, count, err := h.productRepo.FindByCategoryIDs(categoryIDs, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category products", "products", err))
			return
		}

		h.responder.WritePaged(w, count, products)
	}
}

// createCategory creates a product category (staff only)
// @Summary Create product category
// @Tags Product Categories
// @Accept json
// @Produce json
// @Param category body models.ProductCategory true "Category data"
// @Success 201 {object} models.ProductCategory
// @Failure 400 {object} ErrorResponse
// @Router /products/categories [post]
func (h productCategoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category models.ProductCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.responder.WriteError(w, errs.Malformed("category"))
			return
		}

		if category.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create product category", "product_category", err))
			return
		}

		h.responder.WriteCreated(w, category)
	}
}

// updateCategory updates a product category (staff only)
// @Summary Update product category
// @Tags Product Categories
// @Accept json
// @Produce json
// @Param slug path string true "Category slug"
// @Param category body models.ProductCategory true "Updated category data"
// @Success 200 {object} models.ProductCategory
// @Failure 404 {object} ErrorResponse
// @Router /products/categories/{slug} [put]
func (h productCategoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		existing, err := h.categoryRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product category", "product_category", err))
			return
		}

		var category models.ProductCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.responder.WriteError(w, errs.Malformed("category"))
			return
		}

		category.ID = existing.ID
		category.CreatedAt = existing.CreatedAt
		if category.Slug == "" {
			category.Slug = existing.Slug
		}

		if err := h.categoryRepo.Update(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update product category", "product_category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a product category (staff only)
// @Summary Delete product category
// @Tags Product Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /products/categories/{slug} [delete]
func (h productCategoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		category, err := h.categoryRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product category", "product_category", err))
			return
		}

		if err := h.categoryRepo.Delete(category.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete product category", "product_category", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "category deleted successfully",
		})
	}
}
