package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

func newTestJournal(t *testing.T, kv database.KeyValueStore) *JournalStore {
	t.Helper()
	s := NewJournalStore(kv, WithClock(fixedClock("2024-06-10")), WithIDGenerator(sequentialIDs("j")))
	require.NoError(t, s.Load(context.Background(), "u1"))
	return s
}

func TestJournalStore_Add(t *testing.T) {
	kv := database.NewMemoryStore()
	s := newTestJournal(t, kv)

	e, err := s.Add(context.Background(), "Morning", "Slept well", []string{" calm ", "sleep", "calm", ""})
	require.NoError(t, err)
	assert.Equal(t, models.JournalEntry{ID: "j1", Date: "2024-06-10", Title: "Morning", Content: "Slept well", Tags: []string{"calm", "sleep"}}, e)
	assert.JSONEq(t, `[{"id":"j1","date":"2024-06-10","title":"Morning","content":"Slept well","tags":["calm","sleep"]}]`, rawValue(kv, "journal_entries_u1"))
}

func TestJournalStore_AddValidates(t *testing.T) {
	s := newTestJournal(t, database.NewMemoryStore())

	_, err := s.Add(context.Background(), "  ", "content", nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Title")

	_, err = s.Add(context.Background(), "title", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content")
	assert.Empty(t, s.List())
}

func TestJournalStore_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := newTestJournal(t, database.NewMemoryStore())
	e, err := s.Add(ctx, "a", "b", []string{"x"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateByID(ctx, e.ID, "a2", "b2", []string{"y"}))
	got, ok := s.GetByID(e.ID)
	require.True(t, ok)
	assert.Equal(t, models.JournalEntry{ID: e.ID, Date: e.Date, Title: "a2", Content: "b2", Tags: []string{"y"}}, got)

	err = s.UpdateByID(ctx, e.ID, "", "b3", nil)
	assert.True(t, IsValidation(err))

	require.NoError(t, s.UpdateByID(ctx, "missing", "t", "c", nil))
	assert.Len(t, s.List(), 1)
}

func TestJournalStore_Delete(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	s := newTestJournal(t, kv)
	a, _ := s.Add(ctx, "a", "a", nil)
	b, _ := s.Add(ctx, "b", "b", nil)

	require.NoError(t, s.DeleteByID(ctx, a.ID))
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	require.NoError(t, s.DeleteByID(ctx, b.ID))
	assert.Equal(t, "[]", rawValue(kv, "journal_entries_u1"))
}

func TestJournalStore_GetByIDReturnsCopy(t *testing.T) {
	s := newTestJournal(t, database.NewMemoryStore())
	e, err := s.Add(context.Background(), "t", "c", []string{"a"})
	require.NoError(t, err)

	got, _ := s.GetByID(e.ID)
	got.Tags[0] = "mutated"
	again, _ := s.GetByID(e.ID)
	assert.Equal(t, []string{"a"}, again.Tags)
}

func TestJournalStore_FilterAndTags(t *testing.T) {
	ctx := context.Background()
	s := newTestJournal(t, database.NewMemoryStore())
	_, _ = s.Add(ctx, "Work day", "Long meeting", []string{"work", "stress"})
	_, _ = s.Add(ctx, "Beach", "Calm waves and SUN", []string{"calm"})
	_, _ = s.Add(ctx, "Deadline", "Work again", []string{"work"})

	titles := func(es []models.JournalEntry) []string {
		out := make([]string, 0, len(es))
		for _, e := range es {
			out = append(out, e.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Work day", "Beach", "Deadline"}, titles(s.Filter("", nil)))
	assert.Equal(t, []string{"Work day", "Deadline"}, titles(s.Filter("WORK", nil)))
	assert.Equal(t, []string{"Beach"}, titles(s.Filter("sun", nil)))
	assert.Equal(t, []string{"Work day"}, titles(s.Filter("", []string{"work", "stress"})))
	assert.Empty(t, s.Filter("beach", []string{"work"}))
	assert.Equal(t, []string{"calm", "stress", "work"}, s.Tags())
}

func TestJournalStore_WriteFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyStore()
	s := newTestJournal(t, kv)
	e, err := s.Add(ctx, "keep", "me", nil)
	require.NoError(t, err)

	kv.failWrites.Store(true)
	err = s.DeleteByID(ctx, e.ID)
	assert.True(t, IsPersistence(err))
	assert.Len(t, s.List(), 1)
}

func TestJournalStore_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	s := newTestJournal(t, kv)

	_, err := s.Add(ctx, "Gratitude", "Thankful for \"quiet\" mornings\nand tea ☕", []string{"gratitude", "morning"})
	require.NoError(t, err)
	_, err = s.Add(ctx, "Untagged", "Nothing special", nil)
	require.NoError(t, err)
	third, err := s.Add(ctx, "Work", "Deadline", []string{"work"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateByID(ctx, third.ID, "Work, later", "Deadline met", []string{"work", "relief"}))

	reloaded := NewJournalStore(kv)
	require.NoError(t, reloaded.Load(ctx, "u1"))
	assert.Equal(t, s.List(), reloaded.List())
	assert.Equal(t, s.Tags(), reloaded.Tags())
}
