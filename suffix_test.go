package ftrie

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSuffixTrie() *Trie[int] {
	tr := NewTrie[int]()
	for i, k := range []string{"car", "cart", "cards", "care", "dog", "do"} {
		tr.add(toRunes(k), i)
	}
	return tr
}

func TestWalkSuffixesAll(t *testing.T) {
	tr := seedSuffixTrie()
	var keys []string
	tr.WalkSuffixes("", 0, func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)
	assert.Equal(t, []string{"car", "cards", "care", "cart", "do", "dog"}, keys)
}

func TestWalkSuffixesPrefix(t *testing.T) {
	tr := seedSuffixTrie()
	var keys []string
	tr.WalkSuffixes("car", 0, func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)
	assert.Equal(t, []string{"car", "cards", "care", "cart"}, keys)
}

func TestWalkSuffixesMaxDepth(t *testing.T) {
	tr := seedSuffixTrie()
	var keys []string
	tr.WalkSuffixes("car", 1, func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)
	assert.Equal(t, []string{"car", "care", "cart"}, keys)
}

func TestWalkSuffixesNoMatchingPrefix(t *testing.T) {
	tr := seedSuffixTrie()
	called := false
	tr.WalkSuffixes("zzz", 0, func(_ string, _ int) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestWalkSuffixesStopsEarly(t *testing.T) {
	tr := seedSuffixTrie()
	count := 0
	tr.WalkSuffixes("", 0, func(_ string, _ int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestSuffixIterMatchesWalk(t *testing.T) {
	tr := seedSuffixTrie()

	var walked []string
	tr.WalkSuffixes("car", 0, func(k string, _ int) bool {
		walked = append(walked, k)
		return true
	})

	it := tr.IterSuffixes("car", 0)
	var iterated []string
	for it.Next() {
		iterated = append(iterated, it.Key())
	}
	require.NoError(t, it.Err())

	sort.Strings(walked)
	sort.Strings(iterated)
	assert.Equal(t, walked, iterated)
}

func TestSuffixIterReset(t *testing.T) {
	tr := seedSuffixTrie()
	it := tr.IterSuffixes("do", 0)
	require.True(t, it.Next())
	first := it.Key()

	it.Reset()
	require.True(t, it.Next())
	assert.Equal(t, first, it.Key())
}

func TestSuffixIterInvalidatedByMutation(t *testing.T) {
	tr := seedSuffixTrie()
	it := tr.IterSuffixes("", 0)
	require.True(t, it.Next())

	tr.add(toRunes("zzz"), 99)

	assert.False(t, it.Next())
	require.Error(t, it.Err())
	assert.ErrorIs(t, it.Err(), ErrIterationInvalidated)
}

func TestSuffixIterEmptyTrie(t *testing.T) {
	tr := NewTrie[int]()
	it := tr.IterSuffixes("", 0)
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}
