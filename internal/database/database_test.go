package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/config"
	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/database/kvtest"
)

func TestMemoryStore(t *testing.T) {
	store := database.NewMemoryStore()
	kvtest.Run(t, store)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()

	buf := []byte("abc")
	require.NoError(t, store.Write(ctx, "k", buf))
	buf[0] = 'z'

	got, _, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _, _ := store.Read(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_Closed(t *testing.T) {
	store := database.NewMemoryStore()
	require.NoError(t, store.Close())

	_, _, err := store.Read(context.Background(), "k")
	assert.ErrorIs(t, err, database.ErrClosed)
	assert.ErrorIs(t, store.Write(context.Background(), "k", nil), database.ErrClosed)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.db")
	db, err := database.OpenSQLite(context.Background(), path)
	require.NoError(t, err)

	store := database.NewSQLiteStore(db)
	t.Cleanup(func() { _ = store.Close() })
	kvtest.Run(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	db, err := database.OpenSQLite(ctx, path)
	require.NoError(t, err)
	store := database.NewSQLiteStore(db)
	require.NoError(t, store.Write(ctx, "journal_entries_u1", []byte(`[]`)))
	require.NoError(t, store.Close())

	db, err = database.OpenSQLite(ctx, path)
	require.NoError(t, err)
	store = database.NewSQLiteStore(db)
	defer store.Close()

	got, ok, err := store.Read(ctx, "journal_entries_u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(got))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := database.NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	kvtest.Run(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	store := database.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer store.Close()

	require.NoError(t, store.Write(context.Background(), "user", []byte(`{"id":"1"}`)))
	got, err := mr.Get(database.RedisKeyPrefix + "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, got)
	assert.Equal(t, time.Duration(0), mr.TTL(database.RedisKeyPrefix+"user"))
}

func TestPostgresStore(t *testing.T) {
	uri := os.Getenv("TEST_POSTGRES_URI")
	if uri == "" {
		t.Skip("TEST_POSTGRES_URI not set")
	}
	db, err := database.ConnectPostgres(context.Background(), uri, zap.NewNop())
	require.NoError(t, err)

	store := database.NewPostgresStore(db)
	t.Cleanup(func() { _ = store.Close() })
	kvtest.Run(t, store)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	client, db, err := database.ConnectMongo(context.Background(), uri, zap.NewNop())
	require.NoError(t, err)

	store := database.NewMongoStore(client, db)
	t.Cleanup(func() { _ = store.Close() })
	kvtest.Run(t, store)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	backend, err := database.Open(ctx, &config.Config{StorageDriver: config.DriverMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &database.MemoryStore{}, backend.Store)
	assert.Nil(t, backend.Redis)
	require.NoError(t, backend.Close())

	cfg := &config.Config{
		StorageDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "serenify.db"),
	}
	backend, err = database.Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &database.SQLStore{}, backend.Store)
	require.NoError(t, backend.Close())

	mr := miniredis.RunT(t)
	backend, err = database.Open(ctx, &config.Config{
		StorageDriver: config.DriverRedis,
		RedisURI:      "redis://" + mr.Addr() + "/0",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, backend.Redis)
	require.NoError(t, backend.Close())

	_, err = database.Open(ctx, &config.Config{StorageDriver: "etcd"}, zap.NewNop())
	assert.Error(t, err)
}
