package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/user"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/middleware"
)

// AvatarHandler handles avatar upload, removal and the public read.
type AvatarHandler struct {
	setAvatar   *user.SetAvatar
	clearAvatar *user.ClearAvatar
	getAvatar   *user.GetAvatar
	maxBytes    int64
	log         zerolog.Logger
}

func NewAvatarHandler(setAvatar *user.SetAvatar, clearAvatar *user.ClearAvatar, getAvatar *user.GetAvatar, maxBytes int64, log zerolog.Logger) *AvatarHandler {
	return &AvatarHandler{
		setAvatar:   setAvatar,
		clearAvatar: clearAvatar,
		getAvatar:   getAvatar,
		maxBytes:    maxBytes,
		log:         log,
	}
}

// Upload handles POST /users/me/avatar. The multipart field is named
// "avatar"; the size cap applies to the whole request body and is
// enforced before any image decoding happens.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "file too large or malformed upload")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "avatar file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "could not read upload")
		return
	}
	if err := h.setAvatar.Execute(r.Context(), u.ID, header.Filename, data); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// Remove handles DELETE /users/me/avatar.
func (h *AvatarHandler) Remove(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	if err := h.clearAvatar.Execute(r.Context(), u.ID); err != nil {
		h.log.Error().Err(err).Msg("avatar removal failed")
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// GetByUserID handles GET /users/{id}/avatar. Public: no session
// required. A nonexistent user and an unset avatar are the same 404.
func (h *AvatarHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domerrors.ErrNotFound)
		return
	}
	avatar, err := h.getAvatar.Execute(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(avatar)
}
