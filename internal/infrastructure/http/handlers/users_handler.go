package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/juliezimmer/task-manager-api/internal/application/user"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/http/middleware"
)

// allowedProfileUpdates is the PATCH /users/me allow-list. A body with
// any other key is rejected wholesale, with no partial application.
var allowedProfileUpdates = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

// UsersHandler handles account lifecycle and profile routes.
type UsersHandler struct {
	signUp        *user.SignUp
	login         *user.Login
	logout        *user.Logout
	logoutAll     *user.LogoutAll
	updateProfile *user.UpdateProfile
	deleteAccount *user.DeleteAccount
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewUsersHandler(signUp *user.SignUp, login *user.Login, logout *user.Logout, logoutAll *user.LogoutAll, updateProfile *user.UpdateProfile, deleteAccount *user.DeleteAccount, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		signUp:        signUp,
		login:         login,
		logout:        logout,
		logoutAll:     logoutAll,
		updateProfile: updateProfile,
		deleteAccount: deleteAccount,
		validate:      validator.New(),
		log:           log,
	}
}

// Signup handles POST /users.
func (h *UsersHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=254"`
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
		Age      int    `json:"age"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	result, err := h.signUp.Execute(r.Context(), user.SignUpInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Age:      body.Age,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		if _, ok := domerrors.AsValidation(err); !ok {
			h.log.Error().Err(err).Msg("signup failed")
		}
		respondError(w, err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		// Same opaque failure as bad credentials, to avoid hinting
		// which part of the input was malformed.
		respondError(w, domerrors.ErrAuthenticationFailed)
		return
	}
	result, err := h.login.Execute(r.Context(), user.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		respondError(w, err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

// Logout handles POST /users/logout: closes only the presented session.
func (h *UsersHandler) Logout(w http.ResponseWriter, r *http.Request) {
	u, token := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	if err := h.logout.Execute(r.Context(), u.ID, token); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		respondError(w, err)
		return
	}
	AuditLog(h.log, r, "user.logout", u.ID.String(), true, "")
	writeJSON(w, http.StatusOK, struct{}{})
}

// LogoutAll handles POST /users/logoutAll: closes every session.
func (h *UsersHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	if err := h.logoutAll.Execute(r.Context(), u.ID); err != nil {
		h.log.Error().Err(err).Msg("logout all failed")
		respondError(w, err)
		return
	}
	AuditLog(h.log, r, "user.logout_all", u.ID.String(), true, "")
	writeJSON(w, http.StatusOK, struct{}{})
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Update handles PATCH /users/me.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	for key := range raw {
		if !allowedProfileUpdates[key] {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid updates")
			return
		}
	}
	input, err := decodeProfileUpdate(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	updated, err := h.updateProfile.Execute(r.Context(), u, input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func decodeProfileUpdate(raw map[string]json.RawMessage) (user.UpdateProfileInput, error) {
	var input user.UpdateProfileInput
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &input.Name); err != nil {
			return input, err
		}
	}
	if v, ok := raw["email"]; ok {
		if err := json.Unmarshal(v, &input.Email); err != nil {
			return input, err
		}
	}
	if v, ok := raw["password"]; ok {
		if err := json.Unmarshal(v, &input.Password); err != nil {
			return input, err
		}
	}
	if v, ok := raw["age"]; ok {
		if err := json.Unmarshal(v, &input.Age); err != nil {
			return input, err
		}
	}
	return input, nil
}

// Delete handles DELETE /users/me, returning the pre-deletion snapshot.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.AuthFromContext(r.Context())
	if u == nil {
		respondError(w, domerrors.ErrUnauthorized)
		return
	}
	if err := h.deleteAccount.Execute(r.Context(), u); err != nil {
		h.log.Error().Err(err).Msg("account deletion failed")
		respondError(w, err)
		return
	}
	AuditLog(h.log, r, "user.delete", u.ID.String(), true, "")
	writeJSON(w, http.StatusOK, toUserResponse(u))
}
