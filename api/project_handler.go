package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/akdeniz-handel/catalog-backend/database"
	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	tagRepo     *database.ProjectTagRepo
	taskRepo    *database.TaskRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, tagRepo *database.ProjectTagRepo, taskRepo *database.TaskRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
		taskRepo:    taskRepo,
	}
}

// projectRequest is the write payload. Tags arrive as names and are
// resolved or created server-side.
type projectRequest struct {
	models.Project
	TagNames []string `json:"tag_names"`
}

func projectFilterFromRequest(r *http.Request) (database.ProjectFilter, error) {
	q := r.URL.Query()

	filter := database.ProjectFilter{
		Search:       q.Get("search"),
		Status:       models.ProjectStatus(q.Get("status")),
		Priority:     models.ProjectPriority(q.Get("priority")),
		CategorySlug: q.Get("category"),
		TagSlug:      q.Get("tag"),
		Client:       q.Get("client"),
		SortBy:       q.Get("ordering"),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return filter, errs.NewValidationError("status", "unknown status")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return filter, errs.NewValidationError("priority", "unknown priority")
	}

	if v := q.Get("manager"); v != "" {
		managerID, err := uuid.Parse(v)
		if err != nil {
			return filter, errs.NewValidationError("manager", "invalid manager id")
		}
		filter.ManagerID = &managerID
	}
	if v := q.Get("start_after"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errs.NewValidationError("start_after", "expected YYYY-MM-DD")
		}
		filter.StartDateAfter = &t
	}
	if v := q.Get("start_before"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errs.NewValidationError("start_before", "expected YYYY-MM-DD")
		}
		filter.StartDateBefore = &t
	}

	return filter, nil
}

// getAllProjects lists projects with filtering and pagination (staff only)
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {object} PagedResponse
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := projectFilterFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, count, err := h.projectRepo.FindAll(filter, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WritePaged(w, count, projects)
	}
}

// getProject returns a project by its number (staff only)
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectNumber path string true "Project number"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectNumber} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindByNumber(chi.URLParam(r, "projectNumber"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func validateProject(p *models.Project) error {
	if p.Name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	if p.Client == "" {
		return errs.NewValidationError("client", "client is required")
	}
	if p.Status != "" && !p.Status.Valid() {
		return errs.NewValidationError("status", "unknown status")
	}
	if p.Priority != "" && !p.Priority.Valid() {
		return errs.NewValidationError("priority", "unknown priority")
	}
	if p.Budget.IsNegative() {
		return errs.NewValidationError("budget", "budget cannot be negative")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return errs.NewValidationError("end_date", "end date must not be before start date")
	}
	return nil
}

// resolveTags turns tag names into tag rows when the payload carries names.
func (h projectHandler) resolveTags(req *projectRequest) error {
	if len(req.TagNames) == 0 {
		return nil
	}
	tags, err := h.tagRepo.FindOrCreateByNames(req.TagNames)
	if err != nil {
		return wrapDatabaseError("resolve project tags", "project_tags", err)
	}
	req.Tags = tags
	return nil
}

// createProject creates a project; the project number is generated
// server-side (staff only)
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("project"))
			return
		}

		if req.Status == "" {
			req.Status = models.StatusDraft
		}
		if req.Priority == "" {
			req.Priority = models.PriorityMedium
		}
		if err := validateProject(&req.Project); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.resolveTags(&req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The number is always generated, never client-supplied.
		req.ProjectNumber = ""
		req.Version = 1

		if err := h.projectRepo.Add(&req.Project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		created, err := h.projectRepo.FindByNumber(req.ProjectNumber)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		h.responder.WriteCreated(w, created)
	}
}

// updateProject updates a project, enforcing the status transition table
// (staff only)
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectNumber path string true "Project number"
// @Param project body projectRequest true "Updated project data"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectNumber} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.projectRepo.FindByNumber(chi.URLParam(r, "projectNumber"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("project"))
			return
		}

		req.ID = existing.ID
		req.CreatedAt = existing.CreatedAt
		req.ProjectNumber = existing.ProjectNumber
		req.Version = existing.Version
		if req.Status == "" {
			req.Status = existing.Status
		}
		if req.Priority == "" {
			req.Priority = existing.Priority
		}
		if err := validateProject(&req.Project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !existing.Status.CanTransition(req.Status) {
			h.responder.WriteError(w, errs.NewValidationError("status",
				string(existing.Status)+" cannot transition to "+string(req.Status)))
			return
		}

		now := time.Now()
		if req.Status == models.StatusCompleted && existing.Status != models.StatusCompleted {
			req.CompletedAt = &now
			if req.ActualEndDate == nil {
				req.ActualEndDate = &now
			}
		}
		if req.Status == models.StatusCancelled && existing.Status != models.StatusCancelled {
			req.CancelledAt = &now
		}
		if req.Status == models.StatusActive && existing.Status != models.StatusActive && req.ActualStartDate == nil {
			req.ActualStartDate = &now
		}

		if err := h.resolveTags(&req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Update(&req.Project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByNumber(req.ProjectNumber)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject soft-deletes a project (staff only)
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectNumber path string true "Project number"
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectNumber} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindByNumber(chi.URLParam(r, "projectNumber"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projectRepo.SoftDelete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}

// restoreProject clears the soft-delete marker (staff only)
// @Summary Restore project
// @Tags Projects
// @Produce json
// @Param projectNumber path string true "Project number"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectNumber}/restore [post]
func (h projectHandler) restoreProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "projectNumber")

		if _, err := h.projectRepo.FindByNumberUnscoped(number); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		project, err := h.projectRepo.Restore(number)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("restore project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createTask adds a task to a project (staff only)
// @Summary Create project task
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectNumber path string true "Project number"
// @Param task body models.Task true "Task data"
// @Success 201 {object} models.Task
// @Failure 400 {object} ErrorResponse
// @Router /projects/{projectNumber}/tasks [post]
func (h projectHandler) createTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindByNumber(chi.URLParam(r, "projectNumber"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var task models.Task
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			h.responder.WriteError(w, errs.Malformed("task"))
			return
		}

		if task.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}
		if task.Status == "" {
			task.Status = models.TaskPending
		}
		if !task.Status.Valid() {
			h.responder.WriteError(w, errs.NewValidationError("status", "unknown status"))
			return
		}

		task.ID = uuid.Nil
		task.ProjectID = project.ID

		if err := h.taskRepo.Add(&task); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create task", "task", err))
			return
		}

		h.responder.WriteCreated(w, task)
	}
}

// updateTask updates a task (staff only)
// @Summary Update project task
// @Tags Projects
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID" format(uuid)
// @Param task body models.Task true "Updated task data"
// @Success 200 {object} models.Task
// @Failure 404 {object} ErrorResponse
// @Router /projects/tasks/{taskID} [put]
func (h projectHandler) updateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid taskID"))
			return
		}

		existing, err := h.taskRepo.FindByID(taskID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task", err))
			return
		}

		var task models.Task
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			h.responder.WriteError(w, errs.Malformed("task"))
			return
		}

		task.ID = existing.ID
		task.CreatedAt = existing.CreatedAt
		task.ProjectID = existing.ProjectID
		if task.Status == "" {
			task.Status = existing.Status
		}
		if !task.Status.Valid() {
			h.responder.WriteError(w, errs.NewValidationError("status", "unknown status"))
			return
		}

		if err := h.taskRepo.Update(&task); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update task", "task", err))
			return
		}

		h.responder.WriteJSON(w, task)
	}
}

// deleteTask removes a task (staff only)
// @Summary Delete project task
// @Tags Projects
// @Produce json
// @Param taskID path string true "Task ID" format(uuid)
// @Success 200 {object} statusMessage
// @Failure 404 {object} ErrorResponse
// @Router /projects/tasks/{taskID} [delete]
func (h projectHandler) deleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid taskID"))
			return
		}

		if _, err := h.taskRepo.FindByID(taskID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task", err))
			return
		}

		if err := h.taskRepo.Delete(taskID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete task", "task", err))
			return
		}

		h.responder.WriteJSON(w, statusMessage{
			Status:  "success",
			Message: "task deleted successfully",
		})
	}
}

// getProjectStatistics returns the staff aggregate report
// @Summary Project statistics
// @Tags Projects
// @Produce json
// @Success 200 {object} database.ProjectStatistics
// @Router /projects/statistics [get]
func (h projectHandler) getProjectStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.projectRepo.Statistics(time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate project statistics", "projects", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}
