package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
)

// SessionDuration is 7 days
const SessionDuration = 7 * 24 * time.Hour

var ErrInvalidSession = &AuthError{Message: "Session is invalid or has expired"}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type session struct {
	userID  string
	expires time.Time
}

// SessionManager maps signed session tokens to live workspaces. Every
// session of one user shares that user's workspace, so there is a single
// in-memory collection per store and user. A token outliving its
// workspace (after a restart) is resumed from the account record it names.
type SessionManager struct {
	kv     database.KeyValueStore
	secret []byte
	ttl    time.Duration
	wsCfg  WorkspaceConfig
	now    func() time.Time
	log    *zap.Logger

	mu         sync.Mutex
	sessions   map[string]*session
	workspaces map[string]*Workspace // by user id
	revoked    map[string]time.Time
}

func NewSessionManager(kv database.KeyValueStore, secret string, ttl time.Duration, wsCfg WorkspaceConfig) *SessionManager {
	if ttl <= 0 {
		ttl = SessionDuration
	}
	log := wsCfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionManager{
		kv:         kv,
		secret:     []byte(secret),
		ttl:        ttl,
		wsCfg:      wsCfg,
		now:        time.Now,
		log:        log.Named("session"),
		sessions:   make(map[string]*session),
		workspaces: make(map[string]*Workspace),
		revoked:    make(map[string]time.Time),
	}
}

// NewWorkspace returns an unauthenticated workspace ready for Login or Signup.
func (m *SessionManager) NewWorkspace(ctx context.Context) (*Workspace, error) {
	ws := NewWorkspace(m.kv, m.wsCfg)
	if err := ws.Open(ctx); err != nil {
		return nil, err
	}
	return ws, nil
}

// Create registers ws, which must be signed in, and returns its token.
func (m *SessionManager) Create(ws *Workspace) (string, error) {
	u, ok := ws.Identity.CurrentUser()
	if !ok {
		return "", ErrNotSignedIn
	}

	sid := uuid.NewString()
	now := m.now()
	expires := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sid,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	m.mu.Lock()
	m.attachLocked(u.ID, ws)
	m.sessions[sid] = &session{userID: u.ID, expires: expires}
	m.mu.Unlock()
	return signed, nil
}

// attachLocked makes ws the live workspace of userID unless one is already
// signed in, in which case ws is dropped and the live one is returned.
func (m *SessionManager) attachLocked(userID string, ws *Workspace) *Workspace {
	if live, ok := m.workspaces[userID]; ok && live.Identity.CurrentUserID() == userID {
		return live
	}
	m.workspaces[userID] = ws
	return ws
}

// Workspace returns the live workspace of userID, if any session holds it.
func (m *SessionManager) Workspace(userID string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[userID]
	return ws, ok
}

// Resolve verifies token and returns its workspace and session id.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*Workspace, string, error) {
	if token == "" {
		return nil, "", ErrInvalidSession
	}
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, "", ErrInvalidSession
	}
	sid := claims.ID

	m.mu.Lock()
	if _, gone := m.revoked[sid]; gone {
		m.mu.Unlock()
		return nil, "", ErrInvalidSession
	}
	if s, ok := m.sessions[sid]; ok {
		ws := m.workspaces[s.userID]
		m.mu.Unlock()
		if ws == nil || ws.Identity.CurrentUserID() != s.userID {
			return nil, "", ErrInvalidSession
		}
		return ws, sid, nil
	}
	if live, ok := m.workspaces[claims.Subject]; ok && live.Identity.CurrentUserID() == claims.Subject {
		m.sessions[sid] = &session{userID: claims.Subject, expires: claims.ExpiresAt.Time}
		m.mu.Unlock()
		return live, sid, nil
	}
	m.mu.Unlock()

	ws, err := m.NewWorkspace(ctx)
	if err != nil {
		return nil, "", err
	}
	if _, err := ws.Identity.Resume(ctx, claims.Subject, claims.Email); err != nil {
		if errors.Is(err, errInvalidCredentials) {
			return nil, "", ErrInvalidSession
		}
		return nil, "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ws = m.attachLocked(claims.Subject, ws)
	if _, ok := m.sessions[sid]; !ok {
		m.sessions[sid] = &session{userID: claims.Subject, expires: claims.ExpiresAt.Time}
		m.log.Debug("session resumed", zap.String("user_id", claims.Subject))
	}
	return ws, sid, nil
}

// Invalidate drops sid and rejects its token until it expires. The
// user's workspace is signed out once no session holds it.
func (m *SessionManager) Invalidate(sid string) {
	m.mu.Lock()
	expires := m.now().Add(m.ttl)
	var orphan *Workspace
	if s, ok := m.sessions[sid]; ok {
		expires = s.expires
		orphan = m.dropLocked(sid, s)
	}
	m.revoked[sid] = expires
	m.mu.Unlock()

	m.release(orphan)
}

// dropLocked removes sid and returns the user's workspace when it was the
// last session holding it.
func (m *SessionManager) dropLocked(sid string, s *session) *Workspace {
	delete(m.sessions, sid)
	for _, other := range m.sessions {
		if other.userID == s.userID {
			return nil
		}
	}
	ws := m.workspaces[s.userID]
	delete(m.workspaces, s.userID)
	return ws
}

func (m *SessionManager) release(ws *Workspace) {
	if ws == nil {
		return
	}
	if err := ws.Identity.Logout(context.Background()); err != nil {
		m.log.Warn("sign out released workspace", zap.Error(err))
	}
}

// Len is the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep forgets expired sessions and revocations.
func (m *SessionManager) Sweep() {
	now := m.now()
	var orphans []*Workspace

	m.mu.Lock()
	for sid, s := range m.sessions {
		if now.After(s.expires) {
			if ws := m.dropLocked(sid, s); ws != nil {
				orphans = append(orphans, ws)
			}
		}
	}
	for sid, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, sid)
		}
	}
	m.mu.Unlock()

	for _, ws := range orphans {
		m.release(ws)
	}
}

// StartJanitor sweeps every interval until ctx is done.
func (m *SessionManager) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
