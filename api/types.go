package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler            authHandler
	productCategoryHandler productCategoryHandler
	productHandler         productHandler
	productReviewHandler   productReviewHandler
	serviceCategoryHandler serviceCategoryHandler
	serviceHandler         serviceHandler
	testimonialHandler     testimonialHandler
	projectHandler         projectHandler
	projectTaxonomyHandler projectTaxonomyHandler
	healthHandler          healthHandler
}

// PagedResponse is the standard list envelope: total match count plus one
// page of results.
type PagedResponse struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

// SearchResponse is the search envelope: the paged fields plus an echo of
// the query parameters the results were computed from.
type SearchResponse struct {
	Count        int64             `json:"count"`
	Results      any               `json:"results"`
	SearchParams map[string]string `json:"search_params"`
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

type statusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
