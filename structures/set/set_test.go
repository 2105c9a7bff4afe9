package set

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSet_Add(t *testing.T) {
	set := New("a")
	set.Add("b", "c")
	assert.Len(t, set, 3)
	assert.True(t, set.Has("a"))
	assert.True(t, set.Has("c"))
	assert.False(t, set.Has("d"))
}

func TestSet_Add_NilSet(t *testing.T) {
	var set Set[int]
	assert.False(t, set.Has(1))
	set = set.Add(1)
	assert.True(t, set.Has(1), "Adding to a nil set should return a usable set")
}
