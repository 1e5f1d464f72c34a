package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateProjectGeneratesNumber(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := postJSON(t, server.URL+"/api/v1/projects", staffToken, map[string]any{
		"name":      "Büroumzug Innenstadt",
		"client":    "Musterfirma GmbH",
		"tag_names": []string{"Umzug", "Express"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	assert.True(t, strings.HasPrefix(created.ProjectNumber, "PRJ"))
	assert.Len(t, created.ProjectNumber, 11)
	assert.Equal(t, models.StatusDraft, created.Status)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.Equal(t, 1, created.Version)
	assert.Len(t, created.Tags, 2)
}

func TestCreateProjectIgnoresSuppliedNumber(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	resp := postJSON(t, server.URL+"/api/v1/projects", staffToken, map[string]any{
		"name":           "Lagerentsorgung",
		"client":         "Musterfirma GmbH",
		"project_number": "PRJ990001XX",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	assert.NotEqual(t, "PRJ990001XX", created.ProjectNumber)
}

func TestProjectAccessControl(t *testing.T) {
	server, db := newTestServer(t)
	_, userToken := createUser(t, db, "kunde@example.com", false)

	resp := getJSON(t, server.URL+"/api/v1/projects", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Any logged-in user may read.
	resp = getJSON(t, server.URL+"/api/v1/projects", userToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Writing needs staff.
	resp = postJSON(t, server.URL+"/api/v1/projects", userToken, map[string]any{
		"name":   "Unerlaubt",
		"client": "Musterfirma GmbH",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateProjectRejectsInvalidTransition(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	project := &models.Project{
		Name:     "Renovierung Altbau",
		Client:   "Musterfirma GmbH",
		Status:   models.StatusDraft,
		Priority: models.PriorityMedium,
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	// A draft cannot jump straight to completed.
	resp := putJSON(t, server.URL+"/api/v1/projects/"+project.ProjectNumber, staffToken, map[string]any{
		"name":   project.Name,
		"client": project.Client,
		"status": "completed",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "status", body["field"])
}

func TestUpdateProjectStampsCompletion(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	project := &models.Project{
		Name:     "Fahrzeugaufbereitung",
		Client:   "Musterfirma GmbH",
		Status:   models.StatusActive,
		Priority: models.PriorityMedium,
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	resp := putJSON(t, server.URL+"/api/v1/projects/"+project.ProjectNumber, staffToken, map[string]any{
		"name":   project.Name,
		"client": project.Client,
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Project
	decodeBody(t, resp, &updated)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.ActualEndDate)
	assert.Equal(t, 2, updated.Version)
}

func TestDeleteAndRestoreProject(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	project := &models.Project{
		Name:     "Haushaltsauflösung",
		Client:   "Privat",
		Status:   models.StatusDraft,
		Priority: models.PriorityLow,
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	url := server.URL + "/api/v1/projects/" + project.ProjectNumber

	resp := deleteJSON(t, url, staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, url, staffToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, url+"/restore", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var restored models.Project
	decodeBody(t, resp, &restored)
	assert.Equal(t, project.ID, restored.ID)

	resp = getJSON(t, url, staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProjectTaskLifecycle(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	project := &models.Project{
		Name:     "Werkstattumbau",
		Client:   "Musterfirma GmbH",
		Status:   models.StatusActive,
		Priority: models.PriorityHigh,
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	resp := postJSON(t, server.URL+"/api/v1/projects/"+project.ProjectNumber+"/tasks", staffToken, map[string]any{
		"name": "Hebebühne abbauen",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task models.Task
	decodeBody(t, resp, &task)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, project.ID, task.ProjectID)

	resp = putJSON(t, server.URL+"/api/v1/projects/tasks/"+task.ID.String(), staffToken, map[string]any{
		"name":   task.Name,
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Task
	decodeBody(t, resp, &updated)
	assert.Equal(t, models.TaskCompleted, updated.Status)

	resp = deleteJSON(t, server.URL+"/api/v1/projects/tasks/"+task.ID.String(), staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProjectStatisticsEndpoint(t *testing.T) {
	server, db := newTestServer(t)
	_, staffToken := createUser(t, db, "chef@example.com", true)

	require.NoError(t, db.ProjectRepo().Add(&models.Project{
		Name:     "Aktiv",
		Client:   "Musterfirma GmbH",
		Status:   models.StatusActive,
		Priority: models.PriorityMedium,
	}))

	resp := getJSON(t, server.URL+"/api/v1/projects/statistics", staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]any
	decodeBody(t, resp, &stats)
	assert.EqualValues(t, 1, stats["total_projects"])
}
