package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type productReviewHandler struct {
	responder   Responder
	logger      zerolog.Logger
	reviewRepo  *database.ProductReviewRepo
	productRepo *database.ProductRepo
}

func newProductReviewHandler(reviewRepo *database.ProductReviewRepo, productRepo *database.ProductRepo) productReviewHandler {
	logger := log.With().Str("handlerName", "productReviewHandler").Logger()

	return productReviewHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// getProductReviews lists reviews of a product. Non-staff callers only see
// approved reviews.
// @Summary List product reviews
// @Tags Product Reviews
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} PagedResponse
// @Router /products/{slug}/reviews [get]
func (h productReviewHandler) getProductReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ProductReviewFilter{
			ProductSlug:  chi.URLParam(r, "slug"),
			ApprovedOnly: true,
		}
		if user := ctxUserOrNil(r.Context()); user != nil && user.IsStaff {
			filter.ApprovedOnly = !queryFlag(r, "include_unapproved")
		}

		reviews, count, err := h.reviewRepo.FindAll(filter, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product reviews", "product_reviews", err))
			return
		}

		h.responder.WritePaged(w, count, reviews)
	}
}

// getAllReviews lists reviews across products, optionally narrowed to one
// product slug. Non-staff callers only see approved reviews.
// @Summary List reviews
// @Tags Product Reviews
// @Produce json
// @Param product query string false "Limit to one product slug"
// @Success 200 {object} PagedResponse
// @Router /products/reviews [get]
func (h productReviewHandler) getAllReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ProductReviewFilter{
			ProductSlug:  r.URL.Query().Get("product"),
			ApprovedOnly: true,
		}
		if user := ctxUserOrNil(r.Context()); user != nil && user.IsStaff {
			filter.ApprovedOnly = !queryFlag(r, "include_unapproved")
		}

		reviews, count, err := h.reviewRepo.FindAll(filter, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product reviews", "product_reviews", err))
			return
		}

		h.responder.WritePaged(w, count, reviews)
	}
}

// createProductReview submits a review. Logged-in users are limited to one
// review per product; anonymous reviewers must leave a name and email.
// Reviews start unapproved.
// @Summary Create product review
// @Tags Product Reviews
// @Accept json
// @Produce json
// @Param slug path string true "Product slug"
// @Param review body models.ProductReview true "Review data"
// @Success 201 {object} models.ProductReview
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /products/{slug}/reviews [post]
func (h productReviewHandler) createProductReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.productRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}

		var review models.ProductReview
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			h.responder.WriteError(w, errs.Malformed("review"))
			return
		}

		if !models.ValidRating(review.Rating) {
			h.responder.WriteError(w, errs.NewValidationError("rating", "rating must be between 1 and 5"))
			return
		}
		if review.Comment == "" {
			h.responder.WriteError(w, errs.NewValidationError("comment", "comment is required"))
			return
		}

		review.ID = uuid.Nil
		review.ProductID = product.ID
		review.IsApproved = false
		review.HelpfulYes = 0
		review.HelpfulNo = 0

		if user := ctxUserOrNil(r.Context()); user != nil {
			review.UserID = &user.ID
			review.ReviewerName = user.FullName()
			review.ReviewerEmail = user.Email
		} else {
			review.UserID = nil
			if review.ReviewerName == "" {
				h.responder.WriteError(w, errs.NewValidationError("reviewer_name", "name is required for anonymous reviews"))
				return
			}
			if review.ReviewerEmail == "" {
				h.responder.WriteError(w, errs.NewValidationError("reviewer_email", "email is required for anonymous reviews"))
				return
			}
		}

		if err := h.reviewRepo.Add(&review); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create product review", "product_review", err))
			return
		}

		h.responder.WriteCreated(w, review)
	}
}

// markReviewHelpful records a helpful yes/no vote. A missing type counts
// as a yes.
// @Summary Vote on review helpfulness
// @Tags Product Reviews
// @Accept json
// @Produce json
// @Param reviewID path string true "Review ID" format(uuid)
// @Success 200 {object} models.ProductReview
// @Failure 404 {object} ErrorResponse
// @Router /products/reviews/{reviewID}/helpful [post]
func (h productReviewHandler) markReviewHelpful() http.HandlerFunc {
	type helpfulVote struct {
		Type string `json:"type"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		// An empty body counts as a plain yes vote.
		vote := helpfulVote{Type: "yes"}
		if err := json.NewDecoder(r.Body).Decode(&vote); err != nil && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.Malformed("vote"))
			return
		}
		if vote.Type != "yes" && vote.Type != "no" {
			h.responder.WriteError(w, errs.NewValidationError("type", "type must be yes or no"))
			return
		}

		if _, err := h.reviewRepo.FindByID(reviewID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product review", "product_review", err))
			return
		}

		if err := h.reviewRepo.RecordHelpfulVote(reviewID, vote.Type == "yes"); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("record helpful vote", "product_review", err))
			return
		}

		review, err := h.reviewRepo.FindByID(reviewID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product review", "product_review", err))
			return
		}

		h.responder.WriteJSON(w, review)
	}
}

// updateReview edits a review. Owners may edit their own; staff may edit
// any. Approval status and helpful counts are untouched.
// @Summary Update product review
// @Tags Product Reviews
// @Accept json
// @Produce json
// @Param reviewID path string true "Review ID" format(uuid)
// @Param review body models.ProductReview true "Updated review data"
// @Success 200 {object} models.ProductReview
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/reviews/{reviewID} [put]
func (h productReviewHandler) updateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		existing, err := h.reviewRepo.FindByID(reviewID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product review", "product_review", err))
			return
		}

		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		if !user.IsStaff && (existing.UserID == nil || *existing.UserID != user.ID) {
			h.responder.WriteError(w, errs.NewForbiddenError("you may only edit your own reviews"))
			return
		}

		var review models.ProductReview
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			h.responder.WriteError(w, errs.Malformed("review"))
			return
		}

		if !models.ValidRating(review.Rating) {
			h.responder.WriteError(w, errs.NewValidationError("rating", "rating must be between 1 and 5"))
			return
		}
		if review.Comment == "" {
			h.responder.WriteError(w, errs.NewValidationError("comment", "comment is required"))
			return
		}

		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
		review.ProductID = existing.ProductID
		review.UserID = existing.UserID
		review.ReviewerName = existing.ReviewerName
		review.ReviewerEmail = existing.ReviewerEmail
		review.IsApproved = existing.IsApproved
		review.IsVerifiedPurchase = existing.IsVerifiedPurchase
		review.HelpfulYes = existing.HelpfulYes
		review.HelpfulNo = existing.HelpfulNo

		if err := h.reviewRepo.Update(&review); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update product review", "product_review", err))
			return
		}

		h.responder.WriteJSON(w, review)
	}
}

// reportReview flags a review for moderation. The report lands in the log
// for staff to follow up on.
// @Summary Report product review
// @Tags Product Reviews
// @Accept json
// @Produce json
// @Param reviewID path string true "Review ID" format(uuid)
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /products/reviews/{reviewID}/report [post]
func (h productReviewHandler) reportReview() http.HandlerFunc {
	type reviewReport struct {
		Reason string `json:"reason"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var report reviewReport
		if err := json.NewDecoder(r.Body).Decode(&report); err != nil && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.Malformed("report"))
			return
		}

		if _, err := h.reviewRepo.FindByID(reviewID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product review", "product_review", err))
			return
		}

		h.logger.Info().
			Str("reviewID", reviewID.String()).
			Str("reportedBy", user.Email).
			Str("reason", report.Reason).
			Msg("review reported")

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "review reported",
		})
	}
}

// approveReview flips a review to approved (staff only)
// @Summary Approve product review
// @Tags Product Reviews
// @Produce json
// @Param reviewID path string true "Review ID" format(uuid)
// @Success 200 {object} models.ProductReview
// @Failure 404 {object} ErrorResponse
// @Router /products/reviews/{reviewID}/approve [post]
func (h productReviewHandler) approveReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		review, err := h.reviewRepo.FindByID(reviewID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product review", "product_review", err))
			return
		}

		review.IsApproved = true
		if err := h.reviewRepo.Update(review); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("approve product review", "product_review", err))
			return
		}

		h.responder.WriteJSON(w, review)
	}
}

// deleteReview removes a review. Owners may delete their own; staff may
// delete any.
// @Summary Delete product review
// @Tags Product Reviews
// @Produce json
// @Param reviewID path string true "Review ID" format(uuid)
// @Success 200 {object} statusMessage
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/reviews/{reviewID} [delete]
func (h productReviewHandler) deleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		review, err := h.reviewRepo.FindByID(reviewID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product review", "product_review", err))
			return
		}

		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		if !user.IsStaff && (review.UserID == nil || *review.UserID != user.ID) {
			h.responder.WriteError(w, errs.NewForbiddenError("you may only delete your own reviews"))
			return
		}

		if err := h.reviewRepo.Delete(reviewID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete product review", "product_review", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "review deleted successfully",
		})
	}
}
