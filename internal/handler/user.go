package handler

import (
	"net/http"

	"github.com/tripforge/backend/internal/domain"
)

// authResponse pairs an account with a freshly minted access token.
type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Signup implements POST /api/users/signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, token, err := s.users.Signup(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login implements POST /api/users/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Me implements GET /api/users/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Me(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile implements PATCH /api/users/me.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), principal(r), in.Name, in.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdatePassword implements PATCH /api/users/me/password.
func (s *Server) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := s.users.UpdatePassword(r.Context(), principal(r), in.CurrentPassword, in.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount implements DELETE /api/users/me.
func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.users.DeleteAccount(r.Context(), principal(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPreferences implements GET /api/users/me/preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.users.GetPreferences(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences implements PUT /api/users/me/preferences.
func (s *Server) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var in domain.Preferences
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	prefs, err := s.users.UpdatePreferences(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// ListTravelHistory implements GET /api/users/me/travel-history.
func (s *Server) ListTravelHistory(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Me(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(user.TravelHistory))
}

// AddTravelHistory implements POST /api/users/me/travel-history.
func (s *Server) AddTravelHistory(w http.ResponseWriter, r *http.Request) {
	var in domain.TravelHistoryEntry
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := s.users.AddTravelHistory(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// RemoveTravelHistory implements DELETE /api/users/me/travel-history/{entryID}.
func (s *Server) RemoveTravelHistory(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "entryID")
	if !ok {
		return
	}

	user, err := s.users.RemoveTravelHistory(r.Context(), principal(r), entryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ListUsers implements GET /api/users. Admin-only.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := pagination(r)

	users, total, err := s.users.ListUsers(r.Context(), principal(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPagedResponse(users, page, total))
}

// GetUser implements GET /api/users/{userID}. Admin-only.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	user, err := s.users.GetUser(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SetUserRole implements PATCH /api/users/{userID}/role. Admin-only.
func (s *Server) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	var in struct {
		Role domain.Role `json:"role"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := s.users.SetUserRole(r.Context(), principal(r), id, in.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser implements DELETE /api/users/{userID}. Admin-only.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	if err := s.users.DeleteUser(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
