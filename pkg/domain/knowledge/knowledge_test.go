package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasePreservesOrderAndIsolation(t *testing.T) {
	rules := []string{"first", "second", "third"}
	base := NewBase(rules)

	// Mutating the input or the returned copy must not reach the base.
	rules[0] = "mutated"
	got := base.Rules()
	got[1] = "also mutated"

	assert.Equal(t, "first", base.Rule(0))
	assert.Equal(t, "second", base.Rule(1))
	assert.Equal(t, 3, base.Len())
	assert.Equal(t, []string{"first", "second", "third"}, base.Rules())
}

func TestDefaultBase(t *testing.T) {
	base := DefaultBase()

	assert.Equal(t, 22, base.Len())
	assert.Contains(t, base.Rules(), "Use 'a' before consonant sounds and 'an' before vowel sounds.")
}
