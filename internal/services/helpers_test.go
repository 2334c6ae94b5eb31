package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
)

var errBackendDown = errors.New("backend down")

// flakyStore wraps a MemoryStore and fails on demand.
type flakyStore struct {
	*database.MemoryStore
	failReads  atomic.Bool
	failWrites atomic.Bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: database.NewMemoryStore()}
}

func (s *flakyStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failReads.Load() {
		return nil, false, errBackendDown
	}
	return s.MemoryStore.Read(ctx, key)
}

func (s *flakyStore) Write(ctx context.Context, key string, value []byte) error {
	if s.failWrites.Load() {
		return errBackendDown
	}
	return s.MemoryStore.Write(ctx, key, value)
}

func fixedClock(date string) func() time.Time {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		panic(err)
	}
	t = t.Add(9 * time.Hour)
	return func() time.Time { return t }
}

func sequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("%s%d", prefix, n.Add(1)) }
}

func rawValue(kv database.KeyValueStore, key string) string {
	v, ok, err := kv.Read(context.Background(), key)
	if err != nil || !ok {
		return ""
	}
	return string(v)
}
