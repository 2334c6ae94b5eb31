package handlers

import (
	"net/http"

	"github.com/AnshRaj112/serenify-wellness/internal/middleware"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers an account and opens a session for it.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decode(w, r, &req) {
		return
	}
	h.authenticate(w, r, http.StatusCreated, "User created successfully", func(ws *services.Workspace) (models.User, error) {
		return ws.Identity.Signup(r.Context(), req.Name, req.Email, req.Password)
	})
}

// Login signs in and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	h.authenticate(w, r, http.StatusOK, "Login successful", func(ws *services.Workspace) (models.User, error) {
		return ws.Identity.Login(r.Context(), req.Email, req.Password)
	})
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, status int, message string, signIn func(*services.Workspace) (models.User, error)) {
	ws, err := h.sessions.NewWorkspace(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	user, err := signIn(ws)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	token, err := h.sessions.Create(ws)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, status, map[string]interface{}{
		"message": message,
		"token":   token,
		"user":    user,
	})
}

// Logout ends the caller's session. Other sessions of the same user stay
// signed in.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.workspace(w, r); !ok {
		return
	}
	h.sessions.Invalidate(middleware.SessionIDFromContext(r.Context()))
	writeMessage(w, http.StatusOK, "Logged out")
}

// Me returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	user, ok := ws.Identity.CurrentUser()
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
