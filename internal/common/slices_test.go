package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, Unique([]string{}))
}

func TestAppendUnique(t *testing.T) {
	got := AppendUnique([]string{"species", "measures_1"}, "measures_1", "measures_1_urgency", "species", "x", "x")
	assert.Equal(t, []string{"species", "measures_1", "measures_1_urgency", "x"}, got)

	assert.Equal(t, []string{"a"}, AppendUnique([]string(nil), "a", "a"))
}

func TestContainsAndIsEmpty(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsEmpty([]int{1}))
}
