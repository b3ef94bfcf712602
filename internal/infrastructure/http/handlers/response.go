package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// UserResponse is the only externally visible shape of a User. The
// password hash, session tokens and avatar bytes are never part of it.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// TaskResponse is the externally visible shape of a Task.
type TaskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Owner       string `json:"owner"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.Owner.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr sends JSON { "error": message, "code": errCode }.
func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(w, code, map[string]string{"error": message, "code": errCode})
}

// respondError maps domain errors to HTTP responses with minimal
// detail.
func respondError(w http.ResponseWriter, err error) {
	if ve, ok := domerrors.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    ve.Error(),
			"code":     ErrCodeInvalidRequest,
			"problems": ve.Problems,
		})
		return
	}
	if le, ok := domerrors.AsLocked(err); ok {
		w.Header().Set("Retry-After", strconv.Itoa(le.RetryAfterSeconds))
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, "too many failed attempts, try again later")
		return
	}
	switch {
	case errors.Is(err, domerrors.ErrAuthenticationFailed):
		// Deliberately opaque: no hint whether email or password was wrong.
		writeErr(w, http.StatusBadRequest, ErrCodeAuthFailed, domerrors.ErrAuthenticationFailed.Error())
	case errors.Is(err, domerrors.ErrUnauthorized), errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "please authenticate")
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
