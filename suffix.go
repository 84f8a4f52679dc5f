package ftrie

// sufFrame is one DFS activation: the node being visited, a lazily-created
// cursor over its children, the length the shared key buffer should be
// truncated to while this frame is active, and whether its own value has
// already been reported.
type sufFrame[V any] struct {
	n       *node[V]
	cursor  childCursor[V]
	keyLen  int
	visited bool
}

// WalkSuffixes enumerates every stored key beginning with prefix, within
// maxDepth additional characters beyond the prefix (0 means unbounded,
// clamped to the trie's height), in DFS order. Grounded on the teacher's
// non-recursive kv.go dfs: an explicit frame stack instead of recursion.
func (t *Trie[V]) WalkSuffixes(prefix string, maxDepth int, cb func(key string, value V) bool) {
	if maxDepth <= 0 {
		maxDepth = t.height
	}
	pre := toRunes(prefix)
	start := t.descend(t.root, pre)
	if start == nil {
		return
	}

	key := make([]rune, len(pre), len(pre)+maxDepth)
	copy(key, pre)

	st := newStack[*sufFrame[V]](maxDepth + 2)
	st.push(&sufFrame[V]{n: start, keyLen: len(key)})

	for {
		f, ok := st.peek()
		if !ok {
			return
		}
		if !f.visited {
			f.visited = true
			if f.n.hasValue {
				if !cb(string(key[:f.keyLen]), f.n.value) {
					return
				}
			}
		}
		if f.keyLen-len(pre) >= maxDepth || f.n.children == nil {
			st.pop()
			continue
		}
		if f.cursor == nil {
			f.cursor = f.n.children.newCursor()
		}
		child := f.cursor.next()
		if child == nil {
			st.pop()
			continue
		}
		key = append(key[:f.keyLen], child.label)
		st.push(&sufFrame[V]{n: child, keyLen: len(key)})
	}
}

// SuffixIter is the lazy, resettable form of WalkSuffixes.
type SuffixIter[V any] struct {
	t              *Trie[V]
	pre            []rune
	requestedDepth int
	maxDepth       int
	key            []rune
	st             *stack[*sufFrame[V]]
	err            error
	curKey         string
	curVal         V
}

// IterSuffixes constructs a SuffixIter and positions it at the start.
func (t *Trie[V]) IterSuffixes(prefix string, maxDepth int) *SuffixIter[V] {
	it := &SuffixIter[V]{t: t, pre: toRunes(prefix), requestedDepth: maxDepth}
	it.Reset()
	return it
}

// Reset repositions the iterator at the beginning and clears the trie's
// dirty flag. It does not re-validate — a mutation that happened before
// Reset is simply forgotten, per spec.md §4.3.
func (it *SuffixIter[V]) Reset() {
	it.err = nil
	md := it.requestedDepth
	if md <= 0 {
		md = it.t.height
	}
	it.maxDepth = md

	it.key = make([]rune, len(it.pre), len(it.pre)+md)
	copy(it.key, it.pre)

	it.st = newStack[*sufFrame[V]](md + 2)
	if start := it.t.descend(it.t.root, it.pre); start != nil {
		it.st.push(&sufFrame[V]{n: start, keyLen: len(it.key)})
	}
	it.t.clearDirty()
}

// Next advances to the next match. It returns false when exhausted or when
// the trie was mutated since construction/Reset (see Err).
func (it *SuffixIter[V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.t.dirty {
		it.err = wrapIterationError("suffix")
		return false
	}
	for {
		f, ok := it.st.peek()
		if !ok {
			return false
		}
		if !f.visited {
			f.visited = true
			if f.n.hasValue {
				it.curKey = string(it.key[:f.keyLen])
				it.curVal = f.n.value
				return true
			}
		}
		if f.keyLen-len(it.pre) >= it.maxDepth || f.n.children == nil {
			it.st.pop()
			continue
		}
		if f.cursor == nil {
			f.cursor = f.n.children.newCursor()
		}
		child := f.cursor.next()
		if child == nil {
			it.st.pop()
			continue
		}
		it.key = append(it.key[:f.keyLen], child.label)
		it.st.push(&sufFrame[V]{n: child, keyLen: len(it.key)})
	}
}

// Key returns the key for the current match.
func (it *SuffixIter[V]) Key() string { return it.curKey }

// Value returns the value for the current match.
func (it *SuffixIter[V]) Value() V { return it.curVal }

// Err returns the error that stopped iteration, if any.
func (it *SuffixIter[V]) Err() error { return it.err }

// Close releases the iterator's stack and working key early.
func (it *SuffixIter[V]) Close() {
	it.st = nil
	it.key = nil
}
