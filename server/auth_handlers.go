package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

// sessionResponse is the common auth reply payload
type sessionResponse struct {
	LoggedIn bool         `json:"logged_in"`
	User     *domain.User `json:"user,omitempty"`
}

// loginHandler authenticates against the registered-user directory
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		renderError(w, r, fmt.Errorf("email and password are required"), http.StatusBadRequest)
		return
	}

	if !s.sessions.Login(r.Context(), req.Email, req.Password) {
		renderError(w, r, fmt.Errorf("invalid credentials"), http.StatusUnauthorized)
		return
	}

	renderJSON(w, r, http.StatusOK, sessionResponse{LoggedIn: true, User: s.sessions.User()})
}

// signupHandler registers a new user and logs it in
func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string            `json:"name"`
		Email      string            `json:"email"`
		Password   string            `json:"password"`
		Language   domain.Language   `json:"language"`
		Categories []domain.Category `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	prefs := domain.Preferences{Language: req.Language, Categories: req.Categories}
	if req.Name == "" || req.Email == "" || req.Password == "" || !prefs.Valid() {
		renderError(w, r, fmt.Errorf("name, email, password, language and categories are required"), http.StatusBadRequest)
		return
	}

	if !s.sessions.Signup(r.Context(), req.Name, req.Email, req.Password, req.Language, req.Categories) {
		renderError(w, r, fmt.Errorf("email already registered"), http.StatusConflict)
		return
	}

	renderJSON(w, r, http.StatusCreated, sessionResponse{LoggedIn: true, User: s.sessions.User()})
}

// logoutHandler destroys the active session
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(r.Context())
	renderJSON(w, r, http.StatusOK, sessionResponse{LoggedIn: false})
}

// preferencesHandler updates the current user's language and categories
func (s *Server) preferencesHandler(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.IsLoggedIn() {
		renderError(w, r, fmt.Errorf("not logged in"), http.StatusUnauthorized)
		return
	}

	var req struct {
		Language   domain.Language   `json:"language"`
		Categories []domain.Category `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if !s.sessions.UpdatePreferences(r.Context(), req.Language, req.Categories) {
		renderError(w, r, fmt.Errorf("failed to update preferences"), http.StatusBadRequest)
		return
	}

	renderJSON(w, r, http.StatusOK, sessionResponse{LoggedIn: true, User: s.sessions.User()})
}

// sessionHandler reports who is logged in now
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, sessionResponse{LoggedIn: s.sessions.IsLoggedIn(), User: s.sessions.User()})
}
