package ftrie

// approxNodeBytes is a best-effort per-node accounting unit for mem_usage.
// It does not try to be exact — spec.md §3 only asks for "a best-effort
// accumulator over allocations the trie owns" — but gives callers a rough
// budget to reason about, the same spirit as the teacher's maxKeyLength
// preallocation constant in kv.go.
const approxNodeBytes = 64

// Trie is the core single-threaded mapping from []rune keys to values V.
// See spec.md §3 for the invariants it maintains.
type Trie[V any] struct {
	root          *node[V]
	nodeCount     int
	itemCount     int
	height        int
	dirty         bool
	memUsage      int64
	newChildIndex childIndexFactory[V]

	// onSet/onDelete are ref-count hooks for an external caller (spec.md §6):
	// invoked after a value is stored or removed so a host binding can keep
	// its own reference accounting balanced. The core never interprets V.
	onSet    func(v V)
	onDelete func(v V)
}

// TrieOption configures a Trie at construction time.
type TrieOption[V any] func(*Trie[V])

// WithChildIndex selects the child-index implementation new nodes use.
// Defaults to the bucketed hash index (2..128 buckets).
func WithChildIndex[V any](factory childIndexFactory[V]) TrieOption[V] {
	return func(t *Trie[V]) {
		t.newChildIndex = factory
	}
}

// WithHashBounds overrides the hash child index's doubling bounds.
func WithHashBounds[V any](min, max int) TrieOption[V] {
	return func(t *Trie[V]) {
		t.newChildIndex = newHashChildIndexFactory[V](min, max)
	}
}

// withHooks wires the ref-count hooks used by Map[V]; unexported, since a
// bare Trie has no ref-counting contract of its own — that belongs to the
// external interface layer (spec.md §5's shared-resource policy).
func withHooks[V any](onSet, onDelete func(V)) TrieOption[V] {
	return func(t *Trie[V]) {
		t.onSet = onSet
		t.onDelete = onDelete
	}
}

// NewTrie creates an empty trie.
func NewTrie[V any](opts ...TrieOption[V]) *Trie[V] {
	t := &Trie[V]{
		root:   newNode[V](0),
		height: 0,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.newChildIndex == nil {
		t.newChildIndex = newHashChildIndexFactory[V](defaultHashMinBuckets, defaultHashMaxBuckets)
	}
	t.nodeCount = 1 // root
	return t
}

// Len returns the number of stored keys (item_count).
func (t *Trie[V]) Len() int { return t.itemCount }

// NodeCount returns the number of nodes, including the root.
func (t *Trie[V]) NodeCount() int { return t.nodeCount }

// Height returns the length of the longest stored key (never decreased on
// deletion — an upper bound, not a tight maximum; see spec.md §9).
func (t *Trie[V]) Height() int { return t.height }

// MemUsage returns the best-effort accumulated allocation estimate.
func (t *Trie[V]) MemUsage() int64 { return t.memUsage }

// Dirty reports whether a mutation has occurred since the flag was last
// cleared (by iterator construction).
func (t *Trie[V]) Dirty() bool { return t.dirty }

func (t *Trie[V]) clearDirty() { t.dirty = false }

func (t *Trie[V]) childAt(n *node[V], c rune) *node[V] {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children.get(c)
}

// descend follows chars from n, returning the terminal node reached, or nil
// if any character has no matching child.
func (t *Trie[V]) descend(n *node[V], chars []rune) *node[V] {
	cur := n
	for _, c := range chars {
		cur = t.childAt(cur, c)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// search walks from root following key. It distinguishes "key is a prefix of
// a stored key" (terminal node exists but has no value) from "key is
// stored" (terminal node has a value) per spec.md §4.1.
func (t *Trie[V]) search(key []rune) (*node[V], bool) {
	n := t.descend(t.root, key)
	if n == nil || !n.hasValue {
		return nil, false
	}
	return n, true
}

// add walks from root, creating nodes as needed, and stores value at the
// terminal. Returns the previous value and whether one was present.
func (t *Trie[V]) add(key []rune, value V) (old V, hadOld bool) {
	n := t.root
	for _, c := range key {
		if n.children == nil {
			n.children = t.newChildIndex()
		}
		next := n.children.get(c)
		if next == nil {
			next = newNode[V](c)
			n.children.insert(next)
			t.nodeCount++
			t.memUsage += approxNodeBytes
		}
		n = next
	}

	if n.hasValue {
		old, hadOld = n.value, true
	}
	n.value = value
	if !n.hasValue {
		n.hasValue = true
		t.itemCount++
	}
	if len(key) > t.height {
		t.height = len(key)
	}
	t.dirty = true

	if t.onSet != nil {
		t.onSet(value)
	}

	return old, hadOld
}

// del locates the terminal for key and, if it holds a value, clears it and
// prunes every ancestor left valueless and childless, per spec.md §4.1's
// path-recording alternative to the back-walk (spec.md §9).
func (t *Trie[V]) del(key []rune) (old V, hadOld bool) {
	path := make([]*node[V], 0, len(key)+1)
	path = append(path, t.root)

	n := t.root
	for _, c := range key {
		n = t.childAt(n, c)
		if n == nil {
			return old, false
		}
		path = append(path, n)
	}

	if !n.hasValue {
		return old, false
	}

	old, hadOld = n.value, true
	var zero V
	n.value = zero
	n.hasValue = false
	t.itemCount--
	t.dirty = true

	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.hasValue || cur.children != nil && cur.children.len() > 0 {
			break
		}
		parent := path[i-1]
		parent.children.remove(cur.label)
		t.nodeCount--
		t.memUsage -= approxNodeBytes
	}

	if t.onDelete != nil {
		t.onDelete(old)
	}

	return old, hadOld
}

// reset empties the trie back to just-the-root, for Clear.
func (t *Trie[V]) reset() {
	t.root = newNode[V](0)
	t.nodeCount = 1
	t.itemCount = 0
	t.height = 0
	t.memUsage = 0
	t.dirty = true
}
