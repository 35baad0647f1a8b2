// Package storetest checks that a store.Backend behaves like a slot store.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/cart/internal/store"
)

// Run exercises b. It expects b to start empty.
func Run(t *testing.T, b store.Backend) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		_, err := b.Get("absent")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, b.Set("k", `{"items":[],"nextId":1}`))
		v, err := b.Get("k")
		require.NoError(t, err)
		assert.Equal(t, `{"items":[],"nextId":1}`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, b.Set("k", "first"))
		require.NoError(t, b.Set("k", "second"))
		v, err := b.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("unicode value", func(t *testing.T) {
		require.NoError(t, b.Set("u", "Помідори"))
		v, err := b.Get("u")
		require.NoError(t, err)
		assert.Equal(t, "Помідори", v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, b.Set("a", "1"))
		require.NoError(t, b.Set("b", "2"))
		v, err := b.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "1", v)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, b.Set("gone", "x"))
		require.NoError(t, b.Delete("gone"))
		_, err := b.Get("gone")
		assert.ErrorIs(t, err, store.ErrNotFound)
		require.NoError(t, b.Delete("gone"))
	})
}
