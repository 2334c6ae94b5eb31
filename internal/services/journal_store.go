package services

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

const journalKeyPrefix = "journal_entries_"

// JournalEntriesKey is the persistence key of a user's journal.
func JournalEntriesKey(userID string) string {
	return journalKeyPrefix + userID
}

// JournalStore holds the signed-in user's journal, oldest entry first.
type JournalStore struct {
	c     *collection[models.JournalEntry]
	now   func() time.Time
	newID func() string
}

func NewJournalStore(kv database.KeyValueStore, opts ...StoreOption) *JournalStore {
	cfg := newStoreConfig(opts)
	return &JournalStore{
		c:     newCollection(kv, journalKeyPrefix, cloneJournalEntry, cfg.log.Named("journal")),
		now:   cfg.now,
		newID: cfg.newID,
	}
}

func cloneJournalEntry(e models.JournalEntry) models.JournalEntry {
	e.Tags = append([]string{}, e.Tags...)
	return e
}

func (s *JournalStore) Load(ctx context.Context, userID string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.load(ctx, userID)
}

func (s *JournalStore) Clear() {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.clear()
}

func (s *JournalStore) Loading() bool {
	return s.c.isLoading()
}

func (s *JournalStore) UserID() string {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.userID
}

// Add appends a new entry dated today. Title and content must be non-blank.
func (s *JournalStore) Add(ctx context.Context, title, content string, tags []string) (models.JournalEntry, error) {
	if err := validateJournal(title, content); err != nil {
		return models.JournalEntry{}, err
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.active() {
		return models.JournalEntry{}, nil
	}

	entry := models.JournalEntry{
		ID:      s.newID(),
		Date:    s.now().Format(DateLayout),
		Title:   title,
		Content: content,
		Tags:    NormalizeTags(tags),
	}
	next := append(s.c.draft(), entry)
	if err := s.c.save(ctx, next); err != nil {
		return models.JournalEntry{}, err
	}
	return cloneJournalEntry(entry), nil
}

// UpdateByID replaces title, content and tags of the entry with id,
// keeping its id and date. Unknown ids are ignored.
func (s *JournalStore) UpdateByID(ctx context.Context, id, title, content string, tags []string) error {
	if err := validateJournal(title, content); err != nil {
		return err
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.active() {
		return nil
	}

	next := s.c.draft()
	idx := slices.IndexFunc(next, func(e models.JournalEntry) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	next[idx].Title = title
	next[idx].Content = content
	next[idx].Tags = NormalizeTags(tags)
	return s.c.save(ctx, next)
}

// DeleteByID removes the entry with id. Unknown ids are ignored.
func (s *JournalStore) DeleteByID(ctx context.Context, id string) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.active() {
		return nil
	}

	next := s.c.draft()
	idx := slices.IndexFunc(next, func(e models.JournalEntry) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	return s.c.save(ctx, slices.Delete(next, idx, idx+1))
}

func (s *JournalStore) GetByID(id string) (models.JournalEntry, bool) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	for _, e := range s.c.items {
		if e.ID == id {
			return cloneJournalEntry(e), true
		}
	}
	return models.JournalEntry{}, false
}

// List returns every entry, oldest first.
func (s *JournalStore) List() []models.JournalEntry {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.snapshot()
}

// Filter returns the entries whose title or content contains searchText
// (case-insensitive, empty matches all) and that carry every tag in
// requiredTags. Order follows List.
func (s *JournalStore) Filter(searchText string, requiredTags []string) []models.JournalEntry {
	return FilterJournal(s.List(), searchText, requiredTags)
}

// Tags returns the distinct tags across all entries, sorted.
func (s *JournalStore) Tags() []string {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	seen := make(map[string]struct{})
	for _, e := range s.c.items {
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterJournal is the pure query behind JournalStore.Filter.
func FilterJournal(entries []models.JournalEntry, searchText string, requiredTags []string) []models.JournalEntry {
	query := strings.ToLower(searchText)
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Title), query) &&
			!strings.Contains(strings.ToLower(e.Content), query) {
			continue
		}
		if !hasAllTags(e, requiredTags) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func hasAllTags(e models.JournalEntry, tags []string) bool {
	for _, t := range tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

// NormalizeTags trims tags, drops blanks and duplicates, and keeps first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func validateJournal(title, content string) error {
	if err := utils.Required("title", title); err != nil {
		return err
	}
	return utils.Required("content", content)
}
