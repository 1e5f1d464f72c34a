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

// projectTaxonomyHandler serves project categories and tags.
type projectTaxonomyHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.ProjectCategoryRepo
	tagRepo      *database.ProjectTagRepo
}

func newProjectTaxonomyHandler(categoryRepo *database.ProjectCategoryRepo, tagRepo *database.ProjectTagRepo) projectTaxonomyHandler {
	logger := log.With().Str("handlerName", "projectTaxonomyHandler").Logger()

	return projectTaxonomyHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// getAllCategories lists active project categories
// @Summary List project categories
// @Tags Projects
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /projects/categories [get]
func (h projectTaxonomyHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project categories", "project_categories", err))
			return
		}

		h.responder.WritePaged(w, int64(len(categories)), categories)
	}
}

// createCategory creates a project category
// @Summary Create project category
// @Tags Projects
// @Accept json
// @Produce json
// @Param category body models.ProjectCategory true "Category data"
// @Success 201 {object} models.ProjectCategory
// @Failure 400 {object} ErrorResponse
// @Router /projects/categories [post]
func (h projectTaxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category models.ProjectCategory
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			h.responder.WriteError(w, errs.Malformed("category"))
			return
		}

		if category.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project category", "project_category", err))
			return
		}

		h.responder.WriteCreated(w, category)
	}
}

// deleteCategory removes a project category
// @Summary Delete project category
// @Tags Projects
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /projects/categories/{slug} [delete]
func (h projectTaxonomyHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categoryRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project category", "project_category", err))
			return
		}

		if err := h.categoryRepo.Delete(category.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project category", "project_category", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "category deleted successfully",
		})
	}
}

// getAllTags lists active project tags
// @Summary List project tags
// @Tags Projects
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /projects/tags [get]
func (h projectTaxonomyHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project tags", "project_tags", err))
			return
		}

		h.responder.WritePaged(w, int64(len(tags)), tags)
	}
}

// createTag creates a project tag
// @Summary Create project tag
// @Tags Projects
// @Accept json
// @Produce json
// @Param tag body models.ProjectTag true "Tag data"
// @Success 201 {object} models.ProjectTag
// @Failure 400 {object} ErrorResponse
// @Router /projects/tags [post]
func (h projectTaxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tag models.ProjectTag
		if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
			h.responder.WriteError(w, errs.Malformed("tag"))
			return
		}

		if tag.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}
		if tag.Color == "" {
			tag.Color = "#3498db"
		}

		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project tag", "project_tag", err))
			return
		}

		h.responder.WriteCreated(w, tag)
	}
}

// deleteTag removes a project tag
// @Summary Delete project tag
// @Tags Projects
// @Produce json
// @Param slug path string true "Tag slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /projects/tags/{slug} [delete]
func (h projectTaxonomyHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := h.tagRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project tag", "project_tag", err))
			return
		}

		if err := h.tagRepo.Delete(tag.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project tag", "project_tag", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "tag deleted successfully",
		})
	}
}
