package api

import (
	"encoding/json"
	"net/http"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type testimonialHandler struct {
	responder       Responder
	logger          zerolog.Logger
	testimonialRepo *database.TestimonialRepo
	serviceRepo     *database.ServiceRepo
}

func newTestimonialHandler(testimonialRepo *database.TestimonialRepo, serviceRepo *database.ServiceRepo) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		testimonialRepo: testimonialRepo,
		serviceRepo:     serviceRepo,
	}
}

// getAllTestimonials lists testimonials, approved only for non-staff
// @Summary List testimonials
// @Tags Testimonials
// @Produce json
// @Param service query string false "Limit to one service slug"
// @Param featured query bool false "Limit to featured testimonials"
// @Success 200 {object} PagedResponse
// @Router /services/testimonials [get]
func (h testimonialHandler) getAllTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.TestimonialFilter{
			ServiceSlug:  r.URL.Query().Get("service"),
			Featured:     queryFlag(r, "featured"),
			ApprovedOnly: true,
		}
		if user := ctxUserOrNil(r.Context()); user != nil && user.IsStaff {
			filter.ApprovedOnly = !queryFlag(r, "include_unapproved")
		}

		testimonials, count, err := h.testimonialRepo.FindAll(filter, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find testimonials", "testimonials", err))
			return
		}

		h.responder.WritePaged(w, count, testimonials)
	}
}

// getFeaturedTestimonials returns the approved, featured testimonials used
// on the homepage.
// @Summary Featured testimonials
// @Tags Testimonials
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /services/testimonials/featured [get]
func (h testimonialHandler) getFeaturedTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.TestimonialFilter{
			Featured:     true,
			ApprovedOnly: true,
		}

		testimonials, count, err := h.testimonialRepo.FindAll(filter, database.Page{Limit: 6})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find featured testimonials", "testimonials", err))
			return
		}

		h.responder.WritePaged(w, count, testimonials)
	}
}

// createTestimonial submits a testimonial. It starts unapproved.
// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonial body models.Testimonial true "Testimonial data"
// @Success 201 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse
// @Router /services/testimonials [post]
func (h testimonialHandler) createTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var testimonial models.Testimonial
		if err := json.NewDecoder(r.Body).Decode(&testimonial); err != nil {
			h.responder.WriteError(w, errs.Malformed("testimonial"))
			return
		}

		if testimonial.ClientName == "" {
			h.responder.WriteError(w, errs.NewValidationError("client_name", "client name is required"))
			return
		}
		if testimonial.Content == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}
		if !models.ValidRating(testimonial.Rating) {
			h.responder.WriteError(w, errs.NewValidationError("rating", "rating must be between 1 and 5"))
			return
		}
		if testimonial.ServiceID == uuid.Nil {
			h.responder.WriteError(w, errs.NewValidationError("service_id", "service is required"))
			return
		}

		testimonial.ID = uuid.Nil
		testimonial.IsApproved = false
		testimonial.IsFeatured = false

		if err := h.testimonialRepo.Add(&testimonial); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create testimonial", "testimonial", err))
			return
		}

		h.responder.WriteCreated(w, testimonial)
	}
}

// updateTestimonial updates a testimonial, including approval and featuring
// (staff only)
// @Summary Update testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Param testimonial body models.Testimonial true "Updated testimonial data"
// @Success 200 {object} models.Testimonial
// @Failure 404 {object} ErrorResponse
// @Router /services/testimonials/{testimonialID} [put]
func (h testimonialHandler) updateTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := uuid.Parse(chi.URLParam(r, "testimonialID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid testimonialID"))
			return
		}

		existing, err := h.testimonialRepo.FindByID(testimonialID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find testimonial", "testimonial", err))
			return
		}

		var testimonial models.Testimonial
		if err := json.NewDecoder(r.Body).Decode(&testimonial); err != nil {
			h.responder.WriteError(w, errs.Malformed("testimonial"))
			return
		}

		if !models.ValidRating(testimonial.Rating) {
			h.responder.WriteError(w, errs.NewValidationError("rating", "rating must be between 1 and 5"))
			return
		}

		testimonial.ID = existing.ID
		testimonial.CreatedAt = existing.CreatedAt
		if testimonial.ServiceID == uuid.Nil {
			testimonial.ServiceID = existing.ServiceID
		}

		if err := h.testimonialRepo.Update(&testimonial); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update testimonial", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, testimonial)
	}
}

// deleteTestimonial removes a testimonial (staff only)
// @Summary Delete testimonial
// @Tags Testimonials
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /services/testimonials/{testimonialID} [delete]
func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := uuid.Parse(chi.URLParam(r, "testimonialID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid testimonialID"))
			return
		}

		if _, err := h.testimonialRepo.FindByID(testimonialID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find testimonial", "testimonial", err))
			return
		}

		if err := h.testimonialRepo.Delete(testimonialID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete testimonial", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "testimonial deleted successfully",
		})
	}
}
