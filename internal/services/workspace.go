package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

type WorkspaceConfig struct {
	AuthDelay time.Duration
	// PersistSession keeps the signed-in user under CurrentUserKey (CLI use).
	PersistSession bool
	// Clock overrides time.Now for entry dates.
	Clock  func() time.Time
	Logger *zap.Logger
}

// Workspace is the per-identity context: one identity provider and the
// stores scoped to it. Signing in loads the stores, signing out clears
// them, and switching users does both.
type Workspace struct {
	Identity  *IdentityProvider
	Moods     *MoodStore
	Journal   *JournalStore
	Favorites *FavoritesStore

	log *zap.Logger
}

func NewWorkspace(kv database.KeyValueStore, cfg WorkspaceConfig) *Workspace {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	storeOpts := []StoreOption{WithLogger(log)}
	if cfg.Clock != nil {
		storeOpts = append(storeOpts, WithClock(cfg.Clock))
	}
	identityOpts := []IdentityOption{WithAuthDelay(cfg.AuthDelay), WithIdentityLogger(log)}
	if cfg.PersistSession {
		identityOpts = append(identityOpts, WithPersistentSession())
	}

	w := &Workspace{
		Identity:  NewIdentityProvider(kv, identityOpts...),
		Moods:     NewMoodStore(kv, storeOpts...),
		Journal:   NewJournalStore(kv, storeOpts...),
		Favorites: NewFavoritesStore(kv, log),
		log:       log,
	}
	w.Identity.OnChange(w.onIdentityChange)
	return w
}

func (w *Workspace) onIdentityChange(ctx context.Context, u *models.User) error {
	if u == nil {
		w.Moods.Clear()
		w.Journal.Clear()
		if err := w.Favorites.Load(ctx, ""); err != nil {
			w.log.Warn("reload anonymous favorites", zap.Error(err))
		}
		return nil
	}

	if err := w.Moods.Load(ctx, u.ID); err != nil {
		return err
	}
	if err := w.Journal.Load(ctx, u.ID); err != nil {
		w.Moods.Clear()
		return err
	}
	if err := w.Favorites.Load(ctx, u.ID); err != nil {
		w.Moods.Clear()
		w.Journal.Clear()
		return err
	}
	return nil
}

// Open brings a fresh workspace to its initial state: the anonymous
// favorites plus, with a persistent session, the previously signed-in user.
func (w *Workspace) Open(ctx context.Context) error {
	if err := w.Favorites.Load(ctx, ""); err != nil {
		return err
	}
	if !w.Identity.persistSession {
		w.Moods.Clear()
		w.Journal.Clear()
		return nil
	}
	_, ok, err := w.Identity.Restore(ctx)
	if err != nil {
		return err
	}
	if !ok {
		w.Moods.Clear()
		w.Journal.Clear()
	}
	return nil
}

// Loading is true while any store is still reading from persistence.
func (w *Workspace) Loading() bool {
	return w.Moods.Loading() || w.Journal.Loading()
}
