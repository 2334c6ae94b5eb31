package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

func newTestWorkspace(t *testing.T, kv database.KeyValueStore, persist bool) *Workspace {
	t.Helper()
	ws := NewWorkspace(kv, WorkspaceConfig{PersistSession: persist, Clock: fixedClock("2024-05-01")})
	require.NoError(t, ws.Open(context.Background()))
	return ws
}

func TestWorkspace_SignInLoadsStores(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	require.NoError(t, kv.Write(ctx, "mood_entries_u9", []byte(`[{"id":"x","date":"2024-04-30","mood":"good","notes":""}]`)))
	require.NoError(t, kv.Write(ctx, AccountKey("test@example.com"), []byte(`{"user":{"id":"u9","name":"Test User","email":"test@example.com"}}`)))

	ws := newTestWorkspace(t, kv, false)
	assert.False(t, ws.Loading())
	assert.Empty(t, ws.Moods.List())

	_, err := ws.Identity.Login(ctx, "test@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "u9", ws.Moods.UserID())
	assert.Equal(t, "u9", ws.Journal.UserID())
	require.Len(t, ws.Moods.List(), 1)

	require.NoError(t, ws.Identity.Logout(ctx))
	assert.Empty(t, ws.Moods.List())
	assert.Empty(t, ws.Moods.UserID())
	assert.Empty(t, ws.Journal.UserID())
}

func TestWorkspace_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	ws := newTestWorkspace(t, kv, false)

	_, err := ws.Identity.Signup(ctx, "Ada", "ada@example.com", "pw")
	require.NoError(t, err)
	_, err = ws.Moods.AddOrUpdateToday(ctx, models.MoodGreat, "ada")
	require.NoError(t, err)
	_, err = ws.Journal.Add(ctx, "ada", "entry", nil)
	require.NoError(t, err)

	_, err = ws.Identity.Signup(ctx, "Bob", "bob@example.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, ws.Moods.List())
	assert.Empty(t, ws.Journal.List())

	require.NoError(t, ws.Identity.Logout(ctx))
	_, err = ws.Identity.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	require.Len(t, ws.Moods.List(), 1)
	assert.Equal(t, "ada", ws.Moods.List()[0].Notes)
}

func TestWorkspace_FavoritesFollowIdentity(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	ws := newTestWorkspace(t, kv, false)
	text := Affirmations("general")[0]

	on, err := ws.Favorites.Toggle(ctx, text)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Contains(t, rawValue(kv, FavoritesKey), text)

	u, err := ws.Identity.Login(ctx, "test@example.com", "x")
	require.NoError(t, err)
	assert.Empty(t, ws.Favorites.List())

	_, err = ws.Favorites.Toggle(ctx, text)
	require.NoError(t, err)
	assert.NotEmpty(t, rawValue(kv, FavoritesKeyFor(u.ID)))

	require.NoError(t, ws.Identity.Logout(ctx))
	assert.Equal(t, []string{text}, ws.Favorites.List())
}

func TestWorkspace_LoadFailureSignsOut(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyStore()
	ws := newTestWorkspace(t, kv, false)
	_, err := ws.Identity.Signup(ctx, "Ada", "ada@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, ws.Identity.Logout(ctx))

	u, err := ws.Identity.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, kv.MemoryStore.Write(ctx, JournalEntriesKey(u.ID), []byte("{broken")))
	require.NoError(t, ws.Identity.Logout(ctx))

	_, err = ws.Identity.Login(ctx, "ada@example.com", "pw")
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.False(t, ws.Identity.Authenticated())
	assert.Empty(t, ws.Moods.UserID())
	assert.Empty(t, ws.Journal.UserID())
}

func TestWorkspace_OpenRestoresPersistentSession(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	first := newTestWorkspace(t, kv, true)
	u, err := first.Identity.Login(ctx, "test@example.com", "x")
	require.NoError(t, err)
	_, err = first.Moods.AddOrUpdateToday(ctx, models.MoodOkay, "")
	require.NoError(t, err)

	second := newTestWorkspace(t, kv, true)
	assert.Equal(t, u.ID, second.Identity.CurrentUserID())
	assert.Len(t, second.Moods.List(), 1)
}
