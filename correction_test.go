package ftrie

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCorrectionTrie() *Trie[int] {
	tr := NewTrie[int]()
	for i, k := range []string{"cat", "cats", "bat", "can"} {
		tr.add(toRunes(k), i)
	}
	return tr
}

func collectCorrections(tr *Trie[int], query string, maxDepth int) []string {
	var keys []string
	tr.WalkCorrections(query, maxDepth, func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)
	return keys
}

func TestWalkCorrectionsExactMatchZeroEdits(t *testing.T) {
	tr := seedCorrectionTrie()
	keys := collectCorrections(tr, "cat", 2)
	assert.Contains(t, keys, "cat")
}

func TestWalkCorrectionsDelete(t *testing.T) {
	tr := seedCorrectionTrie()
	// "caat" -> delete one 'a' -> "cat"
	keys := collectCorrections(tr, "caat", 1)
	assert.Contains(t, keys, "cat")
}

func TestWalkCorrectionsInsert(t *testing.T) {
	tr := seedCorrectionTrie()
	// "ct" -> insert 'a' -> "cat"
	keys := collectCorrections(tr, "ct", 1)
	assert.Contains(t, keys, "cat")
}

func TestWalkCorrectionsChange(t *testing.T) {
	tr := seedCorrectionTrie()
	// "cot" -> change 'o' to 'a' -> "cat"
	keys := collectCorrections(tr, "cot", 1)
	assert.Contains(t, keys, "cat")
}

func TestWalkCorrectionsTranspose(t *testing.T) {
	tr := seedCorrectionTrie()
	// "cta" -> transpose 't' and 'a' -> "cat"
	keys := collectCorrections(tr, "cta", 1)
	assert.Contains(t, keys, "cat")
}

// A maxDepth of 0 means unbounded: the budget is clamped to the trie height.
func TestWalkCorrectionsZeroBudgetMeansUnbounded(t *testing.T) {
	tr := seedCorrectionTrie()
	keys := collectCorrections(tr, "cot", 0)
	assert.Contains(t, keys, "cat")

	keys = collectCorrections(tr, "cat", 0)
	assert.Equal(t, collectCorrections(tr, "cat", tr.Height()), keys)
}

func TestWalkCorrectionsStopsEarly(t *testing.T) {
	tr := seedCorrectionTrie()
	count := 0
	tr.WalkCorrections("cat", 2, func(_ string, _ int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestWalkCorrectionsNoMatch(t *testing.T) {
	tr := seedCorrectionTrie()
	keys := collectCorrections(tr, "zzzzzzzz", 1)
	assert.Empty(t, keys)
}

func TestCorrectionIterMatchesWalkMultiset(t *testing.T) {
	tr := seedCorrectionTrie()

	var walked []string
	tr.WalkCorrections("cat", 2, func(k string, _ int) bool {
		walked = append(walked, k)
		return true
	})
	sort.Strings(walked)

	it := tr.IterCorrections("cat", 2)
	var iterated []string
	for it.Next() {
		iterated = append(iterated, it.Key())
	}
	require.NoError(t, it.Err())
	sort.Strings(iterated)

	assert.Equal(t, walked, iterated, "callback and iterator forms must emit the same multiset, duplicates included")
}

func TestCorrectionIterReset(t *testing.T) {
	tr := seedCorrectionTrie()
	it := tr.IterCorrections("cat", 1)
	require.True(t, it.Next())
	first := it.Key()

	it.Reset()
	require.True(t, it.Next())
	assert.Equal(t, first, it.Key())
}

func TestCorrectionIterInvalidatedByMutation(t *testing.T) {
	tr := seedCorrectionTrie()
	it := tr.IterCorrections("cat", 1)
	require.True(t, it.Next())

	tr.add(toRunes("zzz"), 99)

	assert.False(t, it.Next())
	require.Error(t, it.Err())
	assert.ErrorIs(t, it.Err(), ErrIterationInvalidated)
}

func TestCorrectionIterEmptyTrie(t *testing.T) {
	tr := NewTrie[int]()
	it := tr.IterCorrections("cat", 2)
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}

// TestWalkCorrectionsRepeatable exercises a query deep enough to trigger
// every edit kind (DELETE, TRANSPOSE, INSERT, CHANGE) in the same walk and
// confirms that two independent walks over the same trie produce identical,
// non-empty results. Each walk starts from its own fresh scratch buffer, so
// this checks that the walk is deterministic; it does not by itself detect a
// do/undo imbalance that corrupts both walks the same way.
func TestWalkCorrectionsRepeatable(t *testing.T) {
	tr := seedCorrectionTrie()
	first := collectCorrections(tr, "xat", 2)
	second := collectCorrections(tr, "xat", 2)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
