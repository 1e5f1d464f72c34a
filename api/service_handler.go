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
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type serviceHandler struct {
	responder    Responder
	logger       zerolog.Logger
	serviceRepo  *database.ServiceRepo
	categoryRepo *database.ServiceCategoryRepo
	imageRepo    *database.ServiceImageRepo
	viewRepo     *database.ServiceViewRepo
	mediaStore   media.Store
}

func newServiceHandler(serviceRepo *database.ServiceRepo, categoryRepo *database.ServiceCategoryRepo, imageRepo *database.ServiceImageRepo, viewRepo *database.ServiceViewRepo, mediaStore media.Store) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		viewRepo:     viewRepo,
		mediaStore:   mediaStore,
	}
}

func serviceFilterFromRequest(r *http.Request) database.ServiceFilter {
	q := r.URL.Query()

	filter := database.ServiceFilter{
		Search:       q.Get("search"),
		CategorySlug: q.Get("category"),
		City:         q.Get("city"),

		Popular:       queryFlag(r, "popular"),
		Featured:      queryFlag(r, "featured"),
		Bookable:      queryFlag(r, "bookable"),
		Emergency:     queryFlag(r, "emergency"),
		HasFixedPrice: queryBool(r, "has_fixed_price"),

		MinFixedPrice: queryDecimal(r, "min_price"),
		MaxFixedPrice: queryDecimal(r, "max_price"),

		SortBy: q.Get("ordering"),
	}

	if user := ctxUserOrNil(r.Context()); user != nil && user.IsStaff {
		filter.IncludeInactive = queryFlag(r, "include_inactive")
	}

	return filter
}

// getAllServices lists services with filtering and pagination
// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /services [get]
func (h serviceHandler) getAllServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, count, err := h.serviceRepo.FindAll(serviceFilterFromRequest(r), parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find services", "services", err))
			return
		}

		h.responder.WritePaged(w, count, services)
	}
}

// searchServices is a search-first alias of the list endpoint. The response
// echoes the query parameters next to the results.
// @Summary Search services
// @Tags Services
// @Produce json
// @Param q query string true "Search terms"
// @Param sort_by query string false "popular, name, price_low or price_high"
// @Success 200 {object} SearchResponse
// @Router /services/search [get]
func (h serviceHandler) searchServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := serviceFilterFromRequest(r)
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

		services, count, err := h.serviceRepo.FindAll(filter, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search services", "services", err))
			return
		}

		h.responder.WriteJSON(w, SearchResponse{
			Count:        count,
			Results:      services,
			SearchParams: searchParams(r),
		})
	}
}

// getService returns a service by slug and records the view
// @Summary Get service
// @Tags Services
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} models.Service
// @Failure 404 {object} ErrorResponse
// @Router /services/{slug} [get]
func (h serviceHandler) getService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.serviceRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service", "service", err))
			return
		}

		h.recordView(r, service)

		h.responder.WriteJSON(w, service)
	}
}

func (h serviceHandler) recordView(r *http.Request, service *models.Service) {
	view := models.ServiceView{
		ServiceID: service.ID,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
	if user := ctxUserOrNil(r.Context()); user != nil {
		view.UserID = &user.ID
	}

	if err := h.viewRepo.Add(&view); err != nil {
		h.logger.Warn().Err(err).Str("slug", service.Slug).Msg("failed to log service view")
		return
	}
	if err := h.serviceRepo.IncrementViews(service.ID); err != nil {
		h.logger.Warn().Err(err).Str("slug", service.Slug).Msg("failed to increment service views")
	}
}

// incrementQuoteRequest counts a quote request click
// @Summary Record a quote request
// @Tags Services
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /services/{slug}/increment-quote-request [post]
func (h serviceHandler) incrementQuoteRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.serviceRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service", "service", err))
			return
		}

		if err := h.serviceRepo.IncrementQuoteRequests(service.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment quote requests", "service", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "quote request recorded",
		})
	}
}

// getBeforeAfterImages returns the before/after gallery of a service
// @Summary Before/after images
// @Tags Services
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} map[string]any
// @Failure 404 {object} ErrorResponse
// @Router /services/{slug}/before-after-images [get]
func (h serviceHandler) getBeforeAfterImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.serviceRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service", "service", err))
			return
		}

		before, after, err := h.imageRepo.FindBeforeAfter(service.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find before/after images", "service_images", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"before": before,
			"after":  after,
		})
	}
}

// getHomepageServices returns services of categories flagged for the homepage
// @Summary Homepage services
// @Tags Services
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /services/homepage [get]
func (h serviceHandler) getHomepageServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryIDs, err := h.categoryRepo.HomepageCategoryIDs()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find homepage categories", "service_categories", err))
			return
		}
		if len(categoryIDs) == 0 {
			h.responder.WritePaged(w, 0, []*models.Service{})
			return
		}

		limit := queryInt(r, "limit", 12)
		services, err := h.serviceRepo.FindByCategoryIDs(categoryIDs, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find homepage services", "services", err))
			return
		}

		h.responder.WritePaged(w, int64(len(services)), services)
	}
}

// getPopularServices lists popular services
// @Summary Popular services
// @Tags Services
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /services/popular [get]
func (h serviceHandler) getPopularServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ServiceFilter{Popular: true, SortBy: "popular"}

		page := parsePage(r)
		if page.Limit == 0 {
			page.Limit = 8
		}

		services, count, err := h.serviceRepo.FindAll(filter, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find popular services", "services", err))
			return
		}

		h.responder.WritePaged(w, count, services)
	}
}

func validateService(s *models.Service) error {
	if s.Name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	if s.CategoryID == uuid.Nil {
		return errs.NewValidationError("category_id", "category is required")
	}
	if s.ShortDescription == "" {
		return errs.NewValidationError("short_description", "short description is required")
	}
	if s.HasFixedPrice && s.FixedPrice == nil {
		return errs.NewValidationError("fixed_price", "fixed price is required when has_fixed_price is set")
	}
	if s.FixedPrice != nil && s.FixedPrice.IsNegative() {
		return errs.NewValidationError("fixed_price", "fixed price cannot be negative")
	}
	return nil
}

// createService creates a service (staff only)
// @Summary Create service
// @Tags Services
// @Accept json
// @Produce json
// @Param service body models.Service true "Service data"
// @Success 201 {object} models.Service
// @Failure 400 {object} ErrorResponse
// @Router /services [post]
func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var service models.Service
		if err := json.NewDecoder(r.Body).Decode(&service); err != nil {
			h.responder.WriteError(w, errs.Malformed("service"))
			return
		}

		if err := validateService(&service); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if service.PublishedAt == nil && service.IsActive {
			now := time.Now()
			service.PublishedAt = &now
		}

		if err := h.serviceRepo.Add(&service); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create service", "service", err))
			return
		}

		created, err := h.serviceRepo.FindBySlug(service.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created service", "service", err))
			return
		}

		h.responder.WriteCreated(w, created)
	}
}

// updateService updates a service (staff only)
// @Summary Update service
// @Tags Services
// @Accept json
// @Produce json
// @Param slug path string true "Service slug"
// @Param service body models.Service true "Updated service data"
// @Success 200 {object} models.Service
// @Failure 404 {object} ErrorResponse
// @Router /services/{slug} [put]
func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.serviceRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service", "service", err))
			return
		}

		var service models.Service
		if err := json.NewDecoder(r.Body).Decode(&service); err != nil {
			h.responder.WriteError(w, errs.Malformed("service"))
			return
		}

		service.ID = existing.ID
		service.CreatedAt = existing.CreatedAt
		if service.Slug == "" {
			service.Slug = existing.Slug
		}
		if service.CategoryID == uuid.Nil {
			service.CategoryID = existing.CategoryID
		}
		if err := validateService(&service); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.serviceRepo.Update(&service); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update service", "service", err))
			return
		}

		updated, err := h.serviceRepo.FindBySlug(service.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated service", "service", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteService removes a service (staff only)
// @Summary Delete service
// @Tags Services
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /services/{slug} [delete]
func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.serviceRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service", "service", err))
			return
		}

		if err := h.serviceRepo.Delete(service.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete service", "service", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "service deleted successfully",
		})
	}
}

// uploadServiceImage stores an image in the media store and attaches it to
// the service (staff only)
// @Summary Upload service image
// @Tags Services
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Service slug"
// @Param image formData file true "Image file"
// @Success 201 {object} models.ServiceImage
// @Failure 400 {object} ErrorResponse
// @Router /services/{slug}/images [post]
func (h serviceHandler) uploadServiceImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.serviceRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service", "service", err))
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

		key := media.ObjectKey("services", header.Filename, time.Now())
		url, err := h.mediaStore.Put(r.Context(), key, header.Header.Get("Content-Type"), file)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("storing image failed", err))
			return
		}

		image := models.ServiceImage{
			ServiceID:     service.ID,
			URL:           url,
			Caption:       r.FormValue("caption"),
			AltText:       r.FormValue("alt_text"),
			IsBeforeImage: r.FormValue("kind") == "before",
			IsAfterImage:  r.FormValue("kind") == "after",
			DisplayOrder:  queryInt(r, "display_order", len(service.Images)),
			IsPrimary:     len(service.Images) == 0,
		}
		if err := h.imageRepo.Add(&image); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create service image", "service_image", err))
			return
		}

		h.responder.WriteCreated(w, image)
	}
}

// serviceStatistics is the staff aggregate report of the services catalog.
type serviceStatistics struct {
	TotalServices   int64                           `json:"total_services"`
	ActiveServices  int64                           `json:"active_services"`
	CategoryStats   []database.CategoryServiceCount `json:"category_stats"`
	PopularServices []database.PopularService       `json:"popular_services"`
	MonthlyViews    []database.MonthlyViewCount     `json:"monthly_views"`
}

// getServiceStatistics returns the staff aggregate report
// @Summary Service statistics
// @Tags Services
// @Produce json
// @Success 200 {object} serviceStatistics
// @Router /services/statistics [get]
func (h serviceHandler) getServiceStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, active, err := h.serviceRepo.Counts()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count services", "services", err))
			return
		}

		categoryStats, err := h.serviceRepo.CategoryStats()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate category stats", "services", err))
			return
		}

		popular, err := h.serviceRepo.MostViewed(10)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find most viewed services", "services", err))
			return
		}

		monthly, err := h.viewRepo.MonthlyCounts(time.Now().AddDate(0, 0, -180))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate monthly views", "service_views", err))
			return
		}

		h.responder.WriteJSON(w, serviceStatistics{
			TotalServices:   total,
			ActiveServices:  active,
			CategoryStats:   categoryStats,
			PopularServices: popular,
			MonthlyViews:    monthly,
		})
	}
}
