package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/store"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken),
			errors.Is(err, core.ErrEmptyName),
			errors.Is(err, core.ErrInvalidEmail),
			errors.Is(err, core.ErrShortPassword):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Registration failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, store.ErrBadCredentials.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}
