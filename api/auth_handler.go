package api

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	issuer    tokenIssuer
}

func newAuthHandler(userRepo *database.UserRepo, issuer tokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		issuer:    issuer,
	}
}

type tokenPairResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

const minPasswordLength = 8

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// register creates an account and returns a token pair
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} tokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	type registerRequest struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("registration"))
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if !validEmail(req.Email) {
			h.responder.WriteError(w, errs.NewValidationError("email", "a valid email address is required"))
			return
		}
		if len(req.Password) < minPasswordLength {
			h.responder.WriteError(w, errs.NewValidationError("password", "password must be at least 8 characters"))
			return
		}

		user := models.User{
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			IsActive:   true,
			DateJoined: time.Now(),
		}
		if err := user.SetPassword(req.Password); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password failed", err))
			return
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		access, refresh, err := h.issuer.IssuePair(&user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issuing tokens failed", err))
			return
		}

		h.responder.WriteCreated(w, tokenPairResponse{Access: access, Refresh: refresh, User: user})
	}
}

// login verifies credentials and returns a token pair. Failed logins get
// the same error regardless of whether the account exists.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenPairResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("login"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil || !user.IsActive || !user.CheckPassword(req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
			return
		}

		if err := h.userRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
			h.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to record last login")
		}

		access, refresh, err := h.issuer.IssuePair(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issuing tokens failed", err))
			return
		}

		h.responder.WriteJSON(w, tokenPairResponse{Access: access, Refresh: refresh, User: *user})
	}
}

// refresh exchanges a refresh token for a fresh pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenPairResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h authHandler) refresh() http.HandlerFunc {
	type refreshRequest struct {
		Refresh string `json:"refresh"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			h.responder.WriteError(w, errs.Malformed("refresh"))
			return
		}

		claims, err := h.issuer.Parse(req.Refresh, tokenTypeRefresh)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		access, refresh, err := h.issuer.IssuePair(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issuing tokens failed", err))
			return
		}

		h.responder.WriteJSON(w, tokenPairResponse{Access: access, Refresh: refresh, User: *user})
	}
}

// me returns the authenticated account
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// updateMe edits the authenticated account's profile. Email, staff flag
// and password are not touched here.
// @Summary Update current user
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [put]
func (h authHandler) updateMe() http.HandlerFunc {
	type profileRequest struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("profile"))
			return
		}

		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Phone = req.Phone

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// changePassword sets a new password after checking the current one
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} statusMessage
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/change-password [post]
func (h authHandler) changePassword() http.HandlerFunc {
	type changePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("password change"))
			return
		}

		if !user.CheckPassword(req.CurrentPassword) {
			h.responder.WriteError(w, errs.NewValidationError("current_password", "current password is incorrect"))
			return
		}
		if len(req.NewPassword) < minPasswordLength {
			h.responder.WriteError(w, errs.NewValidationError("new_password", "password must be at least 8 characters"))
			return
		}

		if err := user.SetPassword(req.NewPassword); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password failed", err))
			return
		}
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "password changed successfully",
		})
	}
}

// getAllUsers lists accounts (staff only)
// @Summary List users
// @Tags Auth
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /auth/users [get]
func (h authHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, count, err := h.userRepo.FindAll(parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find users", "users", err))
			return
		}

		h.responder.WritePaged(w, count, users)
	}
}

// getUserStatistics returns account totals (staff only)
// @Summary User statistics
// @Tags Auth
// @Produce json
// @Success 200 {object} database.UserStatistics
// @Router /auth/users/statistics [get]
func (h authHandler) getUserStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.userRepo.Statistics()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate user statistics", "users", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}
