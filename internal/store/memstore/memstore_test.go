package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/cart/internal/store/storetest"
)

func TestBackend(t *testing.T) {
	storetest.Run(t, New())
}

func TestFailWrites(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("k", "v"))

	s.FailWrites(assert.AnError)
	assert.ErrorIs(t, s.Set("k", "w"), assert.AnError)
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	s.FailWrites(nil)
	require.NoError(t, s.Set("k", "w"))
}
