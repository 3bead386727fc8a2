package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDGenerator_GenerateV7(t *testing.T) {
	g := NewSessionIDGenerator()

	id, err := uuid.Parse(g.Generate())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestSessionIDGenerator_Unique(t *testing.T) {
	g := NewSessionIDGenerator()
	seen := make(map[string]struct{})

	for range 100 {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestSessionIDGenerator_Ordered(t *testing.T) {
	g := NewSessionIDGenerator()

	first := g.Generate()
	second := g.Generate()
	assert.Less(t, first, second)
}
