package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
)

// DateLayout is the calendar date format used for entry dates.
const DateLayout = "2006-01-02"

type storeConfig struct {
	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

// StoreOption customizes MoodStore and JournalStore.
type StoreOption func(*storeConfig)

// WithClock replaces time.Now. "Today" is derived from the clock's local date.
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) { c.now = now }
}

// WithIDGenerator replaces the uuid generator for new entries.
func WithIDGenerator(newID func() string) StoreOption {
	return func(c *storeConfig) { c.newID = newID }
}

func WithLogger(log *zap.Logger) StoreOption {
	return func(c *storeConfig) { c.log = log }
}

func newStoreConfig(opts []StoreOption) storeConfig {
	cfg := storeConfig{now: time.Now, newID: uuid.NewString, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// collection is the per-user, write-through entry list shared by the
// mood and journal stores. Callers hold mu around every method except
// isLoading.
type collection[T any] struct {
	mu      sync.Mutex
	kv      database.KeyValueStore
	prefix  string
	clone   func(T) T
	log     *zap.Logger
	loading atomic.Bool

	userID string
	items  []T
}

func newCollection[T any](kv database.KeyValueStore, prefix string, clone func(T) T, log *zap.Logger) *collection[T] {
	c := &collection[T]{kv: kv, prefix: prefix, clone: clone, log: log}
	// nothing has been loaded until an identity shows up
	c.loading.Store(true)
	return c
}

func (c *collection[T]) key() string {
	return c.prefix + c.userID
}

// load replaces the in-memory items with userID's persisted list. On
// failure the collection stays detached from any user so later writes
// cannot clobber data that was never read.
func (c *collection[T]) load(ctx context.Context, userID string) error {
	c.loading.Store(true)
	defer c.loading.Store(false)

	c.userID = ""
	c.items = nil

	var items []T
	if _, err := readJSON(ctx, c.kv, c.prefix+userID, &items); err != nil {
		c.log.Error("load entries failed", zap.String("key", c.prefix+userID), zap.Error(err))
		return err
	}
	c.userID = userID
	c.items = items
	c.log.Debug("entries loaded", zap.String("key", c.key()), zap.Int("count", len(items)))
	return nil
}

func (c *collection[T]) clear() {
	c.userID = ""
	c.items = nil
	c.loading.Store(false)
}

func (c *collection[T]) active() bool {
	return c.userID != ""
}

// draft returns a private copy of the items for a mutation to edit.
func (c *collection[T]) draft() []T {
	next := make([]T, len(c.items))
	for i, item := range c.items {
		next[i] = c.clone(item)
	}
	return next
}

// save persists next and only then makes it the in-memory state, so a
// failed write leaves the collection exactly as it was.
func (c *collection[T]) save(ctx context.Context, next []T) error {
	if next == nil {
		next = []T{}
	}
	if err := writeJSON(ctx, c.kv, c.key(), next); err != nil {
		c.log.Warn("save entries failed", zap.String("key", c.key()), zap.Error(err))
		return err
	}
	c.items = next
	return nil
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = c.clone(item)
	}
	return out
}

func (c *collection[T]) isLoading() bool {
	return c.loading.Load()
}
