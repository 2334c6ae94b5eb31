package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// Chatbot rate limit: per-IP, looser for signed-in callers.
// Auth: 30 req/min, burst 20. Anonymous: 10 req/min, burst 5.
const (
	chatAuthRPS   = 0.5  // 30/min
	chatAuthBurst = 20
	chatAnonRPS   = 0.17 // ~10/min
	chatAnonBurst = 5
)

func hasBearer(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && len(strings.TrimPrefix(auth, "Bearer ")) > 0
}

func isChatPath(path string) bool {
	return path == "/api/chat" || path == "/ws/chat"
}

// ChatRateLimit limits POST /api/chat and websocket upgrades on /ws/chat.
func ChatRateLimit() func(http.Handler) http.Handler {
	authLimiter := newIPLimiter(rate.Limit(chatAuthRPS), chatAuthBurst)
	anonLimiter := newIPLimiter(rate.Limit(chatAnonRPS), chatAnonBurst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isChatPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			limiter, limit := anonLimiter, chatAnonBurst
			if hasBearer(r) {
				limiter, limit = authLimiter, chatAuthBurst
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))

			if !limiter.allow(clientIP(r)) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				reject(w, http.StatusTooManyRequests, "Too many chat messages. Please slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
