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

type serviceCategoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.ServiceCategoryRepo
	serviceRepo  *database.ServiceRepo
}

func newServiceCategoryHandler(categoryRepo *database.ServiceCategoryRepo, serviceRepo *database.ServiceRepo) serviceCategoryHandler {
	logger := log.With().Str("handlerName", "serviceCategoryHandler").Logger()

	return serviceCategoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
	}
}

// getAllCategories lists active service categories
// @Summary List service categories
// @Tags Service Categories
// @Produce json
// @Param homepage query bool false "Limit to homepage categories"
// @Param category_type query string false "Limit to one category type"
// @Success 200 {object} PagedResponse
// @Router /services/categories [get]
func (h serviceCategoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryType := models.ServiceCategoryType(r.URL.Query().Get("category_type"))
		if categoryType != "" && !categoryType.Valid() {
			h.responder.WriteError(w, errs.NewValidationError("category_type", "unknown category type"))
			return
		}

		filter := database.ServiceCategoryFilter{
			HomepageOnly: queryFlag(r, "homepage"),
			CategoryType: categoryType,
		}

		categories, err := h.categoryRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service categories", "service_categories", err))
			return
		}

		h.responder.WritePaged(w, int64(len(categories)), categories)
	}
}

// getCategory returns one service category by slug
// @Summary Get service category
// @Tags Service Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.ServiceCategory
// @Failure 404 {object} ErrorResponse
// @Router /services/categories/{slug} [get]
func (h serviceCategoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categoryRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service category", "service_category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// getCategoryServices lists active services of one category
// @Summary List services of a category
// @Tags Service Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} PagedResponse
// @Failure 404 {object} ErrorResponse
// @Router /services/categories/{slug}/services [get]
func (h serviceCategoryHandler) getCategoryServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categoryRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service category", "service_category", err))
			return
		}

		services, count, err := h.serviceRepo.FindByCategoryID(category.ID, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category services", "services", err))
			return
		}

		h.responder.WritePaged(w, count, services)
	}
}

// createCategory creates a service category (staff only). category_type is
// unique per category, so each of the fixed business lines exists once.
// @Summary Create service category
// @Tags Service Categories
// @Accept json
// @Produce json
// @Param category body models.ServiceCategory true "Category data"
// @Success 201 {object} models.ServiceCategory
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /services/categories [post]
func (h serviceCategoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category models.ServiceCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.responder.WriteError(w, errs.Malformed("category"))
			return
		}

		if category.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}
		if !category.CategoryType.Valid() {
			h.responder.WriteError(w, errs.NewValidationError("category_type", "unknown category type"))
			return
		}
		if category.Description == "" {
			h.responder.WriteError(w, errs.NewValidationError("description", "description is required"))
			return
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create service category", "service_category", err))
			return
		}

		h.responder.WriteCreated(w, category)
	}
}

// updateCategory updates a service category (staff only)
// @Summary Update service category
// @Tags Service Categories
// @Accept json
// @Produce json
// @Param slug path string true "Category slug"
// @Param category body models.ServiceCategory true "Updated category data"
// @Success 200 {object} models.ServiceCategory
// @Failure 404 {object} ErrorResponse
// @Router /services/categories/{slug} [put]
func (h serviceCategoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.categoryRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service category", "service_category", err))
			return
		}

		var category models.ServiceCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.responder.WriteError(w, errs.Malformed("category"))
			return
		}

		category.ID = existing.ID
		category.CreatedAt = existing.CreatedAt
		if category.Slug == "" {
			category.Slug = existing.Slug
		}
		if category.CategoryType == "" {
			category.CategoryType = existing.CategoryType
		}
		if !category.CategoryType.Valid() {
			h.responder.WriteError(w, errs.NewValidationError("category_type", "unknown category type"))
			return
		}

		if err := h.categoryRepo.Update(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update service category", "service_category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a service category and its services (staff only)
// @Summary Delete service category
// @Tags Service Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /services/categories/{slug} [delete]
func (h serviceCategoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categoryRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service category", "service_category", err))
			return
		}

		if err := h.categoryRepo.Delete(category.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete service category", "service_category", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "category deleted successfully",
		})
	}
}
