package api

import (
	"time"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/media"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, issuer tokenIssuer, mediaStore media.Store, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler: newAuthHandler(database.UserRepo(), issuer),
		productCategoryHandler: newProductCategoryHandler(
			database.ProductCategoryRepo(), database.ProductRepo()),
		productHandler: newProductHandler(
			database.ProductRepo(), database.ProductViewRepo(), database.ProductImageRepo(), mediaStore),
		productReviewHandler: newProductReviewHandler(
			database.ProductReviewRepo(), database.ProductRepo()),
		serviceCategoryHandler: newServiceCategoryHandler(
			database.ServiceCategoryRepo(), database.ServiceRepo()),
		serviceHandler: newServiceHandler(
			database.ServiceRepo(), database.ServiceCategoryRepo(), database.ServiceImageRepo(),
			database.ServiceViewRepo(), mediaStore),
		testimonialHandler: newTestimonialHandler(
			database.TestimonialRepo(), database.ServiceRepo()),
		projectHandler: newProjectHandler(
			database.ProjectRepo(), database.ProjectTagRepo(), database.TaskRepo()),
		projectTaxonomyHandler: newProjectTaxonomyHandler(
			database.ProjectCategoryRepo(), database.ProjectTagRepo()),
		healthHandler: newHealthHandler(database, startupTime),
	}
}
