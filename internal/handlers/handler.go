package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/middleware"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

const maxBodyBytes = 1 << 20

// Options wires a Handler. Exporter may be nil when Cloudinary is not configured.
// AllowedOrigins restricts browser origins on /ws/chat; empty allows any.
type Options struct {
	Sessions        *services.SessionManager
	Exporter        *services.ExportService
	Chatbot         *services.Chatbot
	Picker          *services.AffirmationPicker
	Logger          *zap.Logger
	ChatTypingDelay time.Duration
	AllowedOrigins  []string
	Now             func() time.Time
}

// Handler serves the HTTP API.
type Handler struct {
	sessions    *services.SessionManager
	exporter    *services.ExportService
	bot         *services.Chatbot
	picker      *services.AffirmationPicker
	log         *zap.Logger
	typingDelay time.Duration
	upgrader    websocket.Upgrader
	now         func() time.Time
}

func New(opts Options) *Handler {
	h := &Handler{
		sessions:    opts.Sessions,
		exporter:    opts.Exporter,
		bot:         opts.Chatbot,
		picker:      opts.Picker,
		log:         opts.Logger,
		typingDelay: opts.ChatTypingDelay,
		upgrader:    newChatUpgrader(opts.AllowedOrigins),
		now:         opts.Now,
	}
	if h.bot == nil {
		h.bot = services.NewChatbot()
	}
	if h.picker == nil {
		h.picker = services.NewAffirmationPicker(uint64(time.Now().UnixNano()))
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Health answers liveness checks.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	if _, ok := body["success"]; !ok {
		body["success"] = status < http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"message": message})
}

// decode reads a JSON request body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// fail maps a service error to its status code.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var validation *utils.ValidationError
	var auth *services.AuthError
	var persistence *services.PersistenceError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": validation.Message, "field": validation.Field})
	case errors.As(err, &auth):
		writeMessage(w, http.StatusUnauthorized, auth.Message)
	case errors.As(err, &persistence):
		h.log.Error("storage failure",
			zap.String("path", r.URL.Path), zap.String("op", persistence.Op), zap.String("key", persistence.Key), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Storage is temporarily unavailable")
	default:
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// workspace returns the caller's workspace set by middleware.RequireSession.
func (h *Handler) workspace(w http.ResponseWriter, r *http.Request) (*services.Workspace, bool) {
	ws, ok := middleware.WorkspaceFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return ws, true
}
