package services

import (
	"context"
	"slices"
	"time"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

const moodKeyPrefix = "mood_entries_"

// MoodEntriesKey is the persistence key of a user's mood history.
func MoodEntriesKey(userID string) string {
	return moodKeyPrefix + userID
}

// MoodStore holds the signed-in user's mood history, one entry per local
// calendar day. Every mutation is written through before it returns.
// Without a loaded user, mutations are no-ops.
type MoodStore struct {
	c     *collection[models.MoodEntry]
	now   func() time.Time
	newID func() string
}

func NewMoodStore(kv database.KeyValueStore, opts ...StoreOption) *MoodStore {
	cfg := newStoreConfig(opts)
	return &MoodStore{
		c:     newCollection(kv, moodKeyPrefix, func(e models.MoodEntry) models.MoodEntry { return e }, cfg.log.Named("mood")),
		now:   cfg.now,
		newID: cfg.newID,
	}
}

// Load switches the store to userID and reads its persisted entries.
func (s *MoodStore) Load(ctx context.Context, userID string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.load(ctx, userID)
}

// Clear drops the in-memory entries. Persisted data is untouched.
func (s *MoodStore) Clear() {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.clear()
}

// Loading is true until the first Load or Clear completes, and while a Load runs.
func (s *MoodStore) Loading() bool {
	return s.c.isLoading()
}

func (s *MoodStore) UserID() string {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.userID
}

func (s *MoodStore) today() string {
	return s.now().Format(DateLayout)
}

// AddOrUpdateToday records mood for today's date. An existing entry for
// today keeps its id and date and gets the new mood and notes.
func (s *MoodStore) AddOrUpdateToday(ctx context.Context, mood models.Mood, notes string) (models.MoodEntry, error) {
	if !mood.Valid() {
		return models.MoodEntry{}, invalidMood(mood)
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.active() {
		return models.MoodEntry{}, nil
	}

	today := s.today()
	next := s.c.draft()
	idx := slices.IndexFunc(next, func(e models.MoodEntry) bool { return e.Date == today })
	if idx >= 0 {
		next[idx].Mood = mood
		next[idx].Notes = notes
	} else {
		next = append(next, models.MoodEntry{ID: s.newID(), Date: today, Mood: mood, Notes: notes})
		idx = len(next) - 1
	}

	if err := s.c.save(ctx, next); err != nil {
		return models.MoodEntry{}, err
	}
	return next[idx], nil
}

// UpdateByID replaces mood and notes of the entry with id. Unknown ids are ignored.
func (s *MoodStore) UpdateByID(ctx context.Context, id string, mood models.Mood, notes string) error {
	if !mood.Valid() {
		return invalidMood(mood)
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.active() {
		return nil
	}

	next := s.c.draft()
	idx := slices.IndexFunc(next, func(e models.MoodEntry) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	next[idx].Mood = mood
	next[idx].Notes = notes
	return s.c.save(ctx, next)
}

// DeleteByID removes the entry with id. Unknown ids are ignored.
func (s *MoodStore) DeleteByID(ctx context.Context, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.active() {
		return nil
	}

	next := s.c.draft()
	idx := slices.IndexFunc(next, func(e models.MoodEntry) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	next = append(next[:idx], next[idx+1:]...)
	return s.c.save(ctx, next)
}

// TodayEntry returns the entry dated today, if any.
func (s *MoodStore) TodayEntry() (models.MoodEntry, bool) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	today := s.today()
	for _, e := range s.c.items {
		if e.Date == today {
			return e, true
		}
	}
	return models.MoodEntry{}, false
}

// List returns a copy of all entries in insertion order.
func (s *MoodStore) List() []models.MoodEntry {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.snapshot()
}

func invalidMood(m models.Mood) error {
	return &utils.ValidationError{Field: "mood", Message: "Mood must be one of great, good, okay, bad, awful (got \"" + string(m) + "\")"}
}
