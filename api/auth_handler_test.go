package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target), "body: %s", data)
}

func TestRegisterLoginAndMe(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/auth/register", "", map[string]string{
		"email":      "kunde@example.com",
		"password":   "sicher-genug",
		"first_name": "Ayse",
		"last_name":  "Demir",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered tokenPairResponse
	decodeBody(t, resp, &registered)
	assert.NotEmpty(t, registered.Access)
	assert.NotEmpty(t, registered.Refresh)
	assert.Equal(t, "kunde@example.com", registered.User.Email)

	resp = postJSON(t, server.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "kunde@example.com",
		"password": "sicher-genug",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loggedIn tokenPairResponse
	decodeBody(t, resp, &loggedIn)

	resp = getJSON(t, server.URL+"/api/v1/auth/me", loggedIn.Access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/auth/register", "", map[string]string{
		"email":    "kunde@example.com",
		"password": "kurz",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "password", body["field"])
}

func TestLoginWithWrongPassword(t *testing.T) {
	server, db := newTestServer(t)
	createUser(t, db, "kunde@example.com", false)

	resp := postJSON(t, server.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "kunde@example.com",
		"password": "falsch-falsch",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMeRequiresToken(t *testing.T) {
	server, _ := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/v1/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRefreshTokenFlow(t *testing.T) {
	server, db := newTestServer(t)
	user, _ := createUser(t, db, "kunde@example.com", false)

	issuer := newTokenIssuer(testJWTSecret, 15*time.Minute, time.Hour)
	_, refresh, err := issuer.IssuePair(user)
	require.NoError(t, err)

	resp := postJSON(t, server.URL+"/api/v1/auth/refresh", "", map[string]string{
		"refresh": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair tokenPairResponse
	decodeBody(t, resp, &pair)
	assert.NotEmpty(t, pair.Access)

	// An access token is not accepted as a refresh token.
	resp = postJSON(t, server.URL+"/api/v1/auth/refresh", "", map[string]string{
		"refresh": pair.Access,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateProfile(t *testing.T) {
	server, db := newTestServer(t)
	user, token := createUser(t, db, "kunde@example.com", false)

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/auth/me",
		bytes.NewReader([]byte(`{"first_name":"Mehmet","last_name":"Akdeniz","phone":"+49 421 000000"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	reloaded, err := db.UserRepo().FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mehmet", reloaded.FirstName)
	assert.Equal(t, "kunde@example.com", reloaded.Email)
}

func TestUserListIsStaffOnly(t *testing.T) {
	server, db := newTestServer(t)
	_, userToken := createUser(t, db, "kunde@example.com", false)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := getJSON(t, server.URL+"/api/v1/auth/users", userToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, server.URL+"/api/v1/auth/users", staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var paged PagedResponse
	decodeBody(t, resp, &paged)
	assert.EqualValues(t, 2, paged.Count)
}
