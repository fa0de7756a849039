package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashContent_Deterministic(t *testing.T) {
	a := HashContent([]byte("hello"))
	b := HashContent([]byte("hello"))
	c := HashContent([]byte("hello!"))

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHashPaths_OrderIndependent(t *testing.T) {
	a := HashPaths([]string{"/a", "/b"})
	b := HashPaths([]string{"/b", "/a"})
	assert.Equal(t, a, b)
}

func TestHashPaths_DifferentSetsDiffer(t *testing.T) {
	a := HashPaths([]string{"/a", "/b"})
	b := HashPaths([]string{"/a", "/c"})
	assert.NotEqual(t, a, b)
}

func TestCanonicalPaths_DoesNotMutateInput(t *testing.T) {
	in := []string{"/z", "/a"}
	out := CanonicalPaths(in)

	assert.Equal(t, []string{"/a", "/z"}, out)
	assert.Equal(t, []string{"/z", "/a"}, in)
}
