package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

type ctxKey string

const (
	workspaceKey ctxKey = "workspace"
	sessionIDKey ctxKey = "session_id"
)

// BearerToken reads "Authorization: Bearer <token>", falling back to the
// token query parameter for browser websocket clients.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

func WorkspaceFromContext(ctx context.Context) (*services.Workspace, bool) {
	ws, ok := ctx.Value(workspaceKey).(*services.Workspace)
	return ws, ok && ws != nil
}

func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}

// WithSession stores a resolved session on ctx.
func WithSession(ctx context.Context, ws *services.Workspace, sid string) context.Context {
	ctx = context.WithValue(ctx, workspaceKey, ws)
	return context.WithValue(ctx, sessionIDKey, sid)
}

// RequireSession resolves the bearer token to the caller's workspace.
func RequireSession(sessions *services.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ws, sid, err := sessions.Resolve(r.Context(), BearerToken(r))
			switch {
			case err == nil:
			case services.IsPersistence(err):
				reject(w, http.StatusServiceUnavailable, "Storage is temporarily unavailable")
				return
			default:
				reject(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), ws, sid)))
		})
	}
}
