package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/models"
)

func newTestIdentity(kv database.KeyValueStore, opts ...IdentityOption) *IdentityProvider {
	opts = append([]IdentityOption{WithAuthDelay(0), WithUserIDGenerator(sequentialIDs("user-"))}, opts...)
	return NewIdentityProvider(kv, opts...)
}

func TestIdentity_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	p := newTestIdentity(kv)

	u, err := p.Signup(ctx, " Ada ", "Ada@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}, u)
	assert.True(t, p.Authenticated())
	assert.Contains(t, rawValue(kv, "account_ada@example.com"), "$argon2id$")

	require.NoError(t, p.Logout(ctx))
	assert.False(t, p.Authenticated())

	again, err := p.Login(ctx, "ADA@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u, again)
}

func TestIdentity_LoginRejections(t *testing.T) {
	ctx := context.Background()
	p := newTestIdentity(database.NewMemoryStore())
	_, err := p.Signup(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, p.Logout(ctx))

	for _, tc := range []struct{ email, password string }{
		{"ada@example.com", "wrong"},
		{"nobody@example.com", "x"},
		{"", "x"},
	} {
		_, err := p.Login(ctx, tc.email, tc.password)
		require.Error(t, err)
		assert.True(t, IsAuth(err))
		assert.Equal(t, "Invalid email or password", err.Error())
		assert.False(t, p.Authenticated())
	}
}

func TestIdentity_FailedLoginKeepsCurrentUser(t *testing.T) {
	ctx := context.Background()
	p := newTestIdentity(database.NewMemoryStore())
	u, err := p.Login(ctx, "test@example.com", "anything")
	require.NoError(t, err)

	_, err = p.Login(ctx, "stranger@example.com", "x")
	require.Error(t, err)
	assert.Equal(t, u.ID, p.CurrentUserID())
}

func TestIdentity_DemoAccountIsStable(t *testing.T) {
	ctx := context.Background()
	p := newTestIdentity(database.NewMemoryStore())

	first, err := p.Login(ctx, "test@example.com", "one")
	require.NoError(t, err)
	assert.Equal(t, "Test User", first.Name)

	require.NoError(t, p.Logout(ctx))
	second, err := p.Login(ctx, "TEST@example.com", "two")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestIdentity_DemoMarkerIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	p := newTestIdentity(database.NewMemoryStore())

	_, err := p.Login(ctx, "TEST@example.com", "x")
	assert.ErrorIs(t, err, errInvalidCredentials)
	assert.False(t, p.Authenticated())

	u, err := p.Login(ctx, "Tester.test@Example.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "tester.test@example.com", u.Email)
}

func TestIdentity_SignupValidation(t *testing.T) {
	ctx := context.Background()
	p := newTestIdentity(database.NewMemoryStore())

	_, err := p.Signup(ctx, "", "a@b.com", "pw")
	assert.True(t, IsValidation(err))
	_, err = p.Signup(ctx, "A", "not-an-email", "pw")
	assert.True(t, IsValidation(err))
	_, err = p.Signup(ctx, "A", "a@b.com", " ")
	assert.True(t, IsValidation(err))
	assert.False(t, p.Authenticated())

	_, err = p.Signup(ctx, "A", "a@b.com", "pw")
	require.NoError(t, err)
	_, err = p.Signup(ctx, "B", "A@B.com", "pw2")
	require.Error(t, err)
	assert.True(t, IsAuth(err))
}

func TestIdentity_ListenerFailureSignsOut(t *testing.T) {
	ctx := context.Background()
	p := newTestIdentity(database.NewMemoryStore())
	boom := errors.New("load failed")

	var seen []string
	p.OnChange(func(_ context.Context, u *models.User) error {
		if u == nil {
			seen = append(seen, "out")
			return nil
		}
		seen = append(seen, "in")
		return boom
	})

	_, err := p.Login(ctx, "test@example.com", "x")
	assert.ErrorIs(t, err, boom)
	assert.False(t, p.Authenticated())
	assert.Equal(t, []string{"in", "out"}, seen)
}

func TestIdentity_PersistentSession(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	p := newTestIdentity(kv, WithPersistentSession())
	u, err := p.Login(ctx, "test@example.com", "x")
	require.NoError(t, err)
	assert.NotEmpty(t, rawValue(kv, CurrentUserKey))

	restored := newTestIdentity(kv, WithPersistentSession())
	got, ok, err := restored.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u, got)

	require.NoError(t, restored.Logout(ctx))
	assert.Empty(t, rawValue(kv, CurrentUserKey))

	_, ok, err = newTestIdentity(kv, WithPersistentSession()).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentity_Resume(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	u, err := newTestIdentity(kv).Signup(ctx, "Ada", "ada@example.com", "pw")
	require.NoError(t, err)

	p := newTestIdentity(kv)
	got, err := p.Resume(ctx, u.ID, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = newTestIdentity(kv).Resume(ctx, "someone-else", u.Email)
	assert.True(t, IsAuth(err))
}

func TestIdentity_DelayHonorsContext(t *testing.T) {
	p := NewIdentityProvider(database.NewMemoryStore(), WithAuthDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Login(ctx, "test@example.com", "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, p.Authenticated())
}
