package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the full /api/v1 tree. Public catalog reads go through
// the response cache with optional authentication; catalog writes are
// staff-gated; the projects module requires a login with staff-only
// mutations; the credential-taking auth endpoints are rate limited.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, cache responseCache, authLimiter rateLimiter) {
	r.Get("/healthz", handlers.healthHandler.healthz())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.throttle)
				r.Post("/register", handlers.authHandler.register())
				r.Post("/login", handlers.authHandler.login())
				r.Post("/refresh", handlers.authHandler.refresh())
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Get("/me", handlers.authHandler.me())
				r.Put("/me", handlers.authHandler.updateMe())
				r.Post("/change-password", handlers.authHandler.changePassword())

				r.Group(func(r chi.Router) {
					r.Use(auth.requireStaff)
					r.Get("/users", handlers.authHandler.getAllUsers())
					r.Get("/users/statistics", handlers.authHandler.getUserStatistics())
				})
			})
		})

		r.Route("/products", func(r chi.Router) {
			// Hot listings, served from the response cache for anonymous
			// visitors.
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticateOptional)
				r.Use(cache.cache)

				r.Get("/", handlers.productHandler.getAllProducts())
				r.Get("/featured", handlers.productHandler.getFeaturedProducts())
				r.Get("/bestsellers", handlers.productHandler.getBestsellerProducts())
				r.Get("/on-sale", handlers.productHandler.getOnSaleProducts())
			})

			// Uncached public reads. Detail pages stay out of the cache so
			// every anonymous visit lands on the view counter.
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticateOptional)

				r.Get("/search", handlers.productHandler.searchProducts())

				r.Get("/categories", handlers.productCategoryHandler.getAllCategories())
				r.Get("/categories/{slug}", handlers.productCategoryHandler.getCategory())
				r.Get("/categories/{slug}/products", handlers.productCategoryHandler.getCategoryProducts())

				r.Get("/reviews", handlers.productReviewHandler.getAllReviews())

				r.Get("/{slug}", handlers.productHandler.getProduct())
				r.Get("/{slug}/similar", handlers.productHandler.getSimilarProducts())
				r.Get("/{slug}/reviews", handlers.productReviewHandler.getProductReviews())
			})

			// Public writes
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticateOptional)

				r.Post("/{slug}/increment-view", handlers.productHandler.incrementView())
				r.Post("/{slug}/reviews", handlers.productReviewHandler.createProductReview())
				r.Post("/reviews/{reviewID}/helpful", handlers.productReviewHandler.markReviewHelpful())
			})

			// Review moderation by owners; the handlers check ownership.
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)

				r.Put("/reviews/{reviewID}", handlers.productReviewHandler.updateReview())
				r.Delete("/reviews/{reviewID}", handlers.productReviewHandler.deleteReview())
				r.Post("/reviews/{reviewID}/report", handlers.productReviewHandler.reportReview())
			})

			// Staff
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Use(auth.requireStaff)

				r.Get("/statistics", handlers.productHandler.getProductStatistics())

				r.Post("/", handlers.productHandler.createProduct())
				r.Put("/{slug}", handlers.productHandler.updateProduct())
				r.Delete("/{slug}", handlers.productHandler.deleteProduct())
				r.Post("/{slug}/images", handlers.productHandler.uploadProductImage())

				r.Post("/categories", handlers.productCategoryHandler.createCategory())
				r.Put("/categories/{slug}", handlers.productCategoryHandler.updateCategory())
				r.Delete("/categories/{slug}", handlers.productCategoryHandler.deleteCategory())

				r.Post("/reviews/{reviewID}/approve", handlers.productReviewHandler.approveReview())
			})
		})

		r.Route("/services", func(r chi.Router) {
			// Hot listings, served from the response cache for anonymous
			// visitors.
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticateOptional)
				r.Use(cache.cache)

				r.Get("/", handlers.serviceHandler.getAllServices())
				r.Get("/homepage", handlers.serviceHandler.getHomepageServices())
				r.Get("/popular", handlers.serviceHandler.getPopularServices())
			})

			// Uncached public reads; service detail counts views on every hit.
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticateOptional)

				r.Get("/search", handlers.serviceHandler.searchServices())

				r.Get("/categories", handlers.serviceCategoryHandler.getAllCategories())
				r.Get("/categories/{slug}", handlers.serviceCategoryHandler.getCategory())
				r.Get("/categories/{slug}/services", handlers.serviceCategoryHandler.getCategoryServices())

				r.Get("/testimonials", handlers.testimonialHandler.getAllTestimonials())
				r.Get("/testimonials/featured", handlers.testimonialHandler.getFeaturedTestimonials())

				r.Get("/{slug}", handlers.serviceHandler.getService())
				r.Get("/{slug}/before-after-images", handlers.serviceHandler.getBeforeAfterImages())
			})

			// Public writes
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticateOptional)

				r.Post("/{slug}/increment-quote-request", handlers.serviceHandler.incrementQuoteRequest())
				r.Post("/testimonials", handlers.testimonialHandler.createTestimonial())
			})

			// Staff
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Use(auth.requireStaff)

				r.Get("/statistics", handlers.serviceHandler.getServiceStatistics())

				r.Post("/", handlers.serviceHandler.createService())
				r.Put("/{slug}", handlers.serviceHandler.updateService())
				r.Delete("/{slug}", handlers.serviceHandler.deleteService())
				r.Post("/{slug}/images", handlers.serviceHandler.uploadServiceImage())

				r.Post("/categories", handlers.serviceCategoryHandler.createCategory())
				r.Put("/categories/{slug}", handlers.serviceCategoryHandler.updateCategory())
				r.Delete("/categories/{slug}", handlers.serviceCategoryHandler.deleteCategory())

				r.Put("/testimonials/{testimonialID}", handlers.testimonialHandler.updateTestimonial())
				r.Delete("/testimonials/{testimonialID}", handlers.testimonialHandler.deleteTestimonial())
			})
		})

		// Projects are internal tooling: every route needs a login, and
		// anything that mutates needs staff.
		r.Route("/projects", func(r chi.Router) {
			r.Use(auth.authenticate)

			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Get("/categories", handlers.projectTaxonomyHandler.getAllCategories())
			r.Get("/tags", handlers.projectTaxonomyHandler.getAllTags())
			r.Get("/{projectNumber}", handlers.projectHandler.getProject())

			r.Group(func(r chi.Router) {
				r.Use(auth.requireStaff)

				r.Post("/", handlers.projectHandler.createProject())
				r.Get("/statistics", handlers.projectHandler.getProjectStatistics())

				r.Post("/categories", handlers.projectTaxonomyHandler.createCategory())
				r.Delete("/categories/{slug}", handlers.projectTaxonomyHandler.deleteCategory())

				r.Post("/tags", handlers.projectTaxonomyHandler.createTag())
				r.Delete("/tags/{slug}", handlers.projectTaxonomyHandler.deleteTag())

				r.Put("/tasks/{taskID}", handlers.projectHandler.updateTask())
				r.Delete("/tasks/{taskID}", handlers.projectHandler.deleteTask())

				r.Put("/{projectNumber}", handlers.projectHandler.updateProject())
				r.Delete("/{projectNumber}", handlers.projectHandler.deleteProject())
				r.Post("/{projectNumber}/restore", handlers.projectHandler.restoreProject())
				r.Post("/{projectNumber}/tasks", handlers.projectHandler.createTask())
			})
		})
	})
}
