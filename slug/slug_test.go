package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Spicy Tofu", "spicy-tofu"},
		{"already clean", "spicy-tofu", "spicy-tofu"},
		{"punctuation", "Grandma's Best Pie!", "grandma-s-best-pie"},
		{"multiple separators", "a  --  b", "a-b"},
		{"leading and trailing junk", "  ...Tacos!  ", "tacos"},
		{"digits survive", "5-Minute Bread", "5-minute-bread"},
		{"unicode letters", "Crème Brûlée", "crème-brûlée"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestMake_EmptyNormalizationFallsBack(t *testing.T) {
	// Input that normalizes away entirely must not produce an empty slug.
	assert.Equal(t, "!!!", Make("  !!!  "))
}

func TestAllocate_NoCollision(t *testing.T) {
	got := Allocate("Spicy Tofu", func(string) bool { return false })
	assert.Equal(t, "spicy-tofu", got)
}

func TestAllocate_SuffixesOnCollision(t *testing.T) {
	taken := map[string]bool{"spicy-tofu": true, "spicy-tofu-1": true}
	got := Allocate("Spicy Tofu", func(c string) bool { return taken[c] })
	assert.Equal(t, "spicy-tofu-2", got)
}

func TestAllocate_IdenticalTitlesGetDistinctSlugs(t *testing.T) {
	taken := map[string]bool{}
	exists := func(c string) bool { return taken[c] }

	first := Allocate("Spicy Tofu", exists)
	taken[first] = true
	second := Allocate("Spicy Tofu", exists)

	assert.Equal(t, "spicy-tofu", first)
	assert.Equal(t, "spicy-tofu-1", second)
	assert.NotEqual(t, first, second)
}

func TestAllocate_SelfExclusionViaCallback(t *testing.T) {
	// A record keeping its own slug on edit is not a collision: the caller
	// excludes the record's own identifier inside the exists closure.
	store := map[string]int{"spicy-tofu": 42, "other-dish": 7}
	editingID := 42
	exists := func(c string) bool {
		id, ok := store[c]
		return ok && id != editingID
	}
	assert.Equal(t, "spicy-tofu", Allocate("Spicy Tofu", exists))
}

func TestUsernameCandidate(t *testing.T) {
	assert.Equal(t, "janedoe", UsernameCandidate("Jane Doe", 1))
	assert.Equal(t, "janedoe2", UsernameCandidate("Jane Doe", 2))
	assert.Equal(t, "janedoe7", UsernameCandidate("Jane Doe", 7))
}

func TestAllocateUsername(t *testing.T) {
	taken := map[string]bool{"janedoe": true, "janedoe2": true}
	got := AllocateUsername("Jane Doe", func(c string) bool { return taken[c] })
	assert.Equal(t, "janedoe3", got)
}
