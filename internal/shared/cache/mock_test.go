package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpCache_AlwaysMisses(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	assert.NoError(t, c.SetSuggestions(ctx, 0, "par", []string{"Paracetamol"}))
	names, _, hit, err := c.GetSuggestions(ctx, "par")
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, names)
	assert.NoError(t, c.InvalidateSuggestions(ctx))
	assert.NoError(t, c.Close())
}
