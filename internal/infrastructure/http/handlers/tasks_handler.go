package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/application/task"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/middleware"
)

var allowedTaskUpdates = map[string]bool{
	"description": true,
	"completed":   true,
}

// TasksHandler handles owner-scoped task CRUD. All routes require the
// authenticator.
type TasksHandler struct {
	tasks    *task.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTasksHandler(tasks *task.Service, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{tasks: tasks, validate: validator.New(), log: log}
}

// Create handles POST /tasks.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	var body struct {
		Description string `json:"description" validate:"required,max=1024"`
		Completed   bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	t, err := h.tasks.Create(r.Context(), u.ID, body.Description, body.Completed)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(t))
}

// List handles GET /tasks?completed=true&limit=10&skip=0&sortBy=createdAt:desc.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	filter := ports.TaskFilter{}
	q := r.URL.Query()
	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "completed must be true or false")
			return
		}
		filter.Completed = &completed
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("skip"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			filter.Skip = n
		}
	}
	switch q.Get("sortBy") {
	case "createdAt:asc", "createdAt":
		filter.SortCreatedAt = 1
	case "createdAt:desc":
		filter.SortCreatedAt = -1
	}

	list, err := h.tasks.List(r.Context(), u.ID, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("task listing failed")
		respondError(w, err)
		return
	}
	items := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /tasks/{id}.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domerrors.ErrNotFound)
		return
	}
	t, err := h.tasks.Get(r.Context(), id, u.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

// Update handles PATCH /tasks/{id} with the same wholesale allow-list
// rejection as profile updates.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domerrors.ErrNotFound)
		return
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	for key := range raw {
		if !allowedTaskUpdates[key] {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid updates")
			return
		}
	}
	var input task.UpdateInput
	if v, ok := raw["description"]; ok {
		if err := json.Unmarshal(v, &input.Description); err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
			return
		}
	}
	if v, ok := raw["completed"]; ok {
		if err := json.Unmarshal(v, &input.Completed); err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
			return
		}
	}
	t, err := h.tasks.Update(r.Context(), id, u.ID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

// Delete handles DELETE /tasks/{id}.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domerrors.ErrNotFound)
		return
	}
	if err := h.tasks.Delete(r.Context(), id, u.ID); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
