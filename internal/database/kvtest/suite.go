// Package kvtest holds the behavioral suite every KeyValueStore must pass.
package kvtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-wellness/internal/database"
)

// Run exercises store against the persistence contract. Keys are made
// unique per call so the suite can share a long-lived backend.
func Run(t *testing.T, store database.KeyValueStore) {
	t.Helper()
	ctx := context.Background()
	ns := fmt.Sprintf("kvtest_%s_", t.Name())

	t.Run("MissingKey", func(t *testing.T) {
		v, ok, err := store.Read(ctx, ns+"missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		payload := []byte(`[{"id":"a1","date":"2024-05-01","mood":"good","notes":"ünïcode ✓"}]`)
		require.NoError(t, store.Write(ctx, ns+"roundtrip", payload))

		got, ok, err := store.Read(ctx, ns+"roundtrip")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, payload, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, ns+"overwrite", []byte(`["first"]`)))
		require.NoError(t, store.Write(ctx, ns+"overwrite", []byte(`["second"]`)))

		got, ok, err := store.Read(ctx, ns+"overwrite")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `["second"]`, string(got))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, ns+"delete", []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, ns+"delete"))

		_, ok, err := store.Read(ctx, ns+"delete")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, ns+"never-written"))
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, ns+"mood_entries_u1", []byte(`["u1"]`)))
		require.NoError(t, store.Write(ctx, ns+"mood_entries_u2", []byte(`["u2"]`)))

		got, _, err := store.Read(ctx, ns+"mood_entries_u1")
		require.NoError(t, err)
		assert.Equal(t, `["u1"]`, string(got))
	})
}
