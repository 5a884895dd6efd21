package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSizeAndOrder(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 168)
	assert.Equal(t, Size(), len(c))
	assert.Equal(t, "qy", c[0])
	assert.Equal(t, "qu", c[1])
	assert.Equal(t, "q;", c[len(Right)-1])
	assert.Equal(t, "wy", c[len(Right)])
	assert.Equal(t, "v;", c[len(c)-1])
}

func TestCatalogUniqueNoRepeats(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range Catalog() {
		require.Len(t, []rune(l), 2)
		assert.NotEqual(t, l[0], l[1], "label %q repeats a character", l)
		assert.False(t, seen[l], "duplicate label %q", l)
		seen[l] = true
	}
}

func TestAssignIsDeterministicPrefix(t *testing.T) {
	for _, n := range []int{0, 1, 4, 37, 168} {
		a := Assign(n)
		b := Assign(n)
		require.Len(t, a, n)
		assert.Equal(t, a, b)
		assert.Equal(t, Catalog()[:n], a)

		distinct := map[string]bool{}
		for _, l := range a {
			distinct[l] = true
		}
		assert.Len(t, distinct, n)
	}
}

func TestAssignClamps(t *testing.T) {
	assert.Len(t, Assign(500), Size())
	assert.Empty(t, Assign(-3))
}

func TestAssignReturnsCopy(t *testing.T) {
	a := Assign(2)
	a[0] = "zz"
	assert.Equal(t, "qy", Catalog()[0])
}

func TestIndexAndAlphabet(t *testing.T) {
	assert.Equal(t, 0, Index("qy"))
	assert.Equal(t, len(Right), Index("wy"))
	assert.Equal(t, -1, Index("yq"))
	assert.Equal(t, -1, Index("qq"))

	for _, r := range Left + Right {
		assert.True(t, InAlphabet(r), "%q", r)
	}
	assert.False(t, InAlphabet('b'))
	assert.False(t, InAlphabet('Q'))
}

func TestAlphabetCoversLabels(t *testing.T) {
	a := Alphabet()
	assert.Len(t, a, len(Left)+len(Right))
	for _, r := range a {
		assert.True(t, InAlphabet(r))
	}
}
