package services

import (
	"context"
	"encoding/json"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
)

// readJSON loads key into dest. ok is false when the key has never been written.
func readJSON(ctx context.Context, kv database.KeyValueStore, key string, dest any) (bool, error) {
	data, ok, err := kv.Read(ctx, key)
	if err != nil {
		return false, &PersistenceError{Op: "read", Key: key, Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

func writeJSON(ctx context.Context, kv database.KeyValueStore, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := kv.Write(ctx, key, data); err != nil {
		return &PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func deleteKey(ctx context.Context, kv database.KeyValueStore, key string) error {
	if err := kv.Delete(ctx, key); err != nil {
		return &PersistenceError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
