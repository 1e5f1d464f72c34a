package api

import (
	"errors"
	"time"

	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenClaims are the claims carried by both access and refresh tokens.
// Type distinguishes the two so a refresh token cannot be presented as
// an access token.
type tokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsStaff bool      `json:"is_staff"`
	Type    string    `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and verifies the JWT pair used by the auth endpoints.
type tokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func newTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) tokenIssuer {
	return tokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (t tokenIssuer) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// IssuePair returns a fresh access/refresh token pair for the user.
func (t tokenIssuer) IssuePair(user *models.User) (access string, refresh string, err error) {
	if access, err = t.sign(user, tokenTypeAccess, t.accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = t.sign(user, tokenTypeRefresh, t.refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Parse verifies the signature and expiry of a token and checks that it
// is of the expected type.
func (t tokenIssuer) Parse(tokenString, expectedType string) (*tokenClaims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewExpiredTokenError()
		}
		return nil, errs.NewInvalidTokenError()
	}
	if !token.Valid || claims.Type != expectedType {
		return nil, errs.NewInvalidTokenError()
	}
	return &claims, nil
}
