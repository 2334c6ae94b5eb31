package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

const (
	// CurrentUserKey holds the signed-in user when session persistence is on.
	CurrentUserKey   = "user"
	accountKeyPrefix = "account_"
	// Emails containing this marker may sign in without registering.
	demoEmailMarker = "test"
	demoUserName    = "Test User"

	DefaultAuthDelay = time.Second
)

var errInvalidCredentials = &AuthError{Message: "Invalid email or password"}

// AccountKey is the persistence key of the credential record for email.
func AccountKey(email string) string {
	return accountKeyPrefix + utils.NormalizeEmail(email)
}

// ChangeListener is told about every identity change; user is nil after logout.
type ChangeListener func(ctx context.Context, user *models.User) error

type IdentityOption func(*IdentityProvider)

// WithAuthDelay sets the simulated latency of Login and Signup.
func WithAuthDelay(d time.Duration) IdentityOption {
	return func(p *IdentityProvider) { p.delay = d }
}

// WithPersistentSession stores the signed-in user under CurrentUserKey so
// Restore can pick it up in a later process.
func WithPersistentSession() IdentityOption {
	return func(p *IdentityProvider) { p.persistSession = true }
}

func WithIdentityLogger(log *zap.Logger) IdentityOption {
	return func(p *IdentityProvider) { p.log = log }
}

func WithUserIDGenerator(newID func() string) IdentityOption {
	return func(p *IdentityProvider) { p.newID = newID }
}

// IdentityProvider is the simulated authentication flow. Registered
// accounts are checked against their argon2id hash; unknown emails
// containing "test" are let in as demo accounts.
type IdentityProvider struct {
	mu             sync.Mutex
	kv             database.KeyValueStore
	delay          time.Duration
	persistSession bool
	newID          func() string
	now            func() time.Time
	log            *zap.Logger

	user      *models.User
	listeners []ChangeListener
}

func NewIdentityProvider(kv database.KeyValueStore, opts ...IdentityOption) *IdentityProvider {
	p := &IdentityProvider{
		kv:    kv,
		delay: DefaultAuthDelay,
		newID: uuid.NewString,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Named("identity")
	return p
}

// OnChange registers l. Listeners run in registration order.
func (p *IdentityProvider) OnChange(l ChangeListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

func (p *IdentityProvider) CurrentUser() (models.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return models.User{}, false
	}
	return *p.user, true
}

// CurrentUserID returns "" when nobody is signed in.
func (p *IdentityProvider) CurrentUserID() string {
	u, _ := p.CurrentUser()
	return u.ID
}

func (p *IdentityProvider) Authenticated() bool {
	_, ok := p.CurrentUser()
	return ok
}

// Login signs in email. On failure the current state is left as it was.
func (p *IdentityProvider) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := p.wait(ctx); err != nil {
		return models.User{}, err
	}
	// The demo marker is matched case-sensitively on what was typed.
	demo := strings.Contains(email, demoEmailMarker)
	email = utils.NormalizeEmail(email)
	if email == "" {
		return models.User{}, errInvalidCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var account models.Account
	found, err := readJSON(ctx, p.kv, AccountKey(email), &account)
	if err != nil {
		return models.User{}, err
	}

	switch {
	case found && account.PasswordHash != "":
		ok, err := utils.VerifyPassword(password, account.PasswordHash)
		if err != nil || !ok {
			p.log.Info("login rejected", zap.String("reason", "password mismatch"))
			return models.User{}, errInvalidCredentials
		}
	case found:
		// demo account, any password
	case demo:
		account = models.Account{
			User:      models.User{ID: p.newID(), Name: demoUserName, Email: email},
			CreatedAt: p.now().UTC(),
		}
		if err := writeJSON(ctx, p.kv, AccountKey(email), account); err != nil {
			return models.User{}, err
		}
		p.log.Info("demo account created", zap.String("user_id", account.User.ID))
	default:
		p.log.Info("login rejected", zap.String("reason", "unknown account"))
		return models.User{}, errInvalidCredentials
	}

	if err := p.setUser(ctx, &account.User); err != nil {
		return models.User{}, err
	}
	return account.User, nil
}

// Signup registers a new account and signs it in. The user id is fabricated.
func (p *IdentityProvider) Signup(ctx context.Context, name, email, password string) (models.User, error) {
	if err := p.wait(ctx); err != nil {
		return models.User{}, err
	}
	if err := utils.ValidateName(name); err != nil {
		return models.User{}, err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := utils.Required("password", password); err != nil {
		return models.User{}, err
	}
	email = utils.NormalizeEmail(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	var existing models.Account
	found, err := readJSON(ctx, p.kv, AccountKey(email), &existing)
	if err != nil {
		return models.User{}, err
	}
	if found {
		return models.User{}, &AuthError{Message: "An account with this email already exists"}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	account := models.Account{
		User:         models.User{ID: p.newID(), Name: strings.TrimSpace(name), Email: email},
		PasswordHash: hash,
		CreatedAt:    p.now().UTC(),
	}
	if err := writeJSON(ctx, p.kv, AccountKey(email), account); err != nil {
		return models.User{}, err
	}
	p.log.Info("account created", zap.String("user_id", account.User.ID))

	if err := p.setUser(ctx, &account.User); err != nil {
		return models.User{}, err
	}
	return account.User, nil
}

// Logout signs out. Local state is cleared even if the persisted session
// could not be removed; that failure is still returned.
func (p *IdentityProvider) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.user = nil
	p.notify(ctx, nil)
	if p.persistSession {
		return deleteKey(ctx, p.kv, CurrentUserKey)
	}
	return nil
}

// Restore signs in the user saved by a previous process, if any.
func (p *IdentityProvider) Restore(ctx context.Context) (models.User, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var u models.User
	found, err := readJSON(ctx, p.kv, CurrentUserKey, &u)
	if err != nil || !found || u.ID == "" {
		return models.User{}, false, err
	}
	if err := p.setUser(ctx, &u); err != nil {
		return models.User{}, false, err
	}
	return u, true, nil
}

// setUser switches identity and tells listeners. If a listener fails the
// provider falls back to signed out so stores never hold a half-loaded user.
func (p *IdentityProvider) setUser(ctx context.Context, u *models.User) error {
	if p.persistSession {
		if err := writeJSON(ctx, p.kv, CurrentUserKey, u); err != nil {
			return err
		}
	}
	p.user = u
	if err := p.notify(ctx, u); err != nil {
		p.user = nil
		p.notify(ctx, nil)
		if p.persistSession {
			_ = deleteKey(ctx, p.kv, CurrentUserKey)
		}
		return err
	}
	p.log.Debug("identity changed", zap.String("user_id", u.ID))
	return nil
}

func (p *IdentityProvider) notify(ctx context.Context, u *models.User) error {
	for _, l := range p.listeners {
		if err := l(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (p *IdentityProvider) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Resume signs in the registered account for email without checking its
// password. It backs server sessions whose token was already verified.
func (p *IdentityProvider) Resume(ctx context.Context, userID, email string) (models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var account models.Account
	found, err := readJSON(ctx, p.kv, AccountKey(email), &account)
	if err != nil {
		return models.User{}, err
	}
	if !found || account.User.ID != userID {
		return models.User{}, errInvalidCredentials
	}
	if err := p.setUser(ctx, &account.User); err != nil {
		return models.User{}, err
	}
	return account.User, nil
}
