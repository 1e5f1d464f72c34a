package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenParseClassifiesFailures(t *testing.T) {
	user := &models.User{Email: "kunde@example.com"}
	issuer := newTokenIssuer(testJWTSecret, 15*time.Minute, time.Hour)

	// Expired token.
	backdated := newTokenIssuer(testJWTSecret, -time.Minute, time.Hour)
	access, _, err := backdated.IssuePair(user)
	require.NoError(t, err)
	_, err = issuer.Parse(access, tokenTypeAccess)
	assert.True(t, errs.IsExpiredTokenError(err))

	// A refresh token is not accepted where an access token is expected.
	_, refresh, err := issuer.IssuePair(user)
	require.NoError(t, err)
	_, err = issuer.Parse(refresh, tokenTypeAccess)
	assert.True(t, errs.IsInvalidTokenError(err))

	// Token signed with a different secret.
	foreign := newTokenIssuer("anderes-geheimnis", 15*time.Minute, time.Hour)
	forged, _, err := foreign.IssuePair(user)
	require.NoError(t, err)
	_, err = issuer.Parse(forged, tokenTypeAccess)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestUserFromRequestWithoutBearerHeader(t *testing.T) {
	m := newAuthMiddleware(newTokenIssuer(testJWTSecret, 15*time.Minute, time.Hour), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	_, err := m.userFromRequest(req)
	assert.True(t, errs.IsMissingTokenError(err))
}
