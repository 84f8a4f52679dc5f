package ftrie

import "sync"

// Map is the external, mapping-like surface over a Trie (spec.md §6),
// grounded on the teacher's KV[V] wrapping a Geche[K, V]. Unlike the
// original source, key arguments here are plain Go strings — the
// "non-string key" error category (spec.md §7) is a host-language
// dynamic-typing concern with no analogue once keys are statically typed,
// so it is not represented as a runtime check.
type Map[V any] struct {
	t   *Trie[V]
	mux *sync.RWMutex
}

// KV is one key/value pair, the result unit of every enumeration operation.
type KV[V any] struct {
	Key   string
	Value V
}

// NewMap constructs an empty Map. Pass TrieOption values (WithChildIndex,
// WithHashBounds) to configure the underlying trie.
func NewMap[V any](opts ...TrieOption[V]) *Map[V] {
	return &Map[V]{t: NewTrie(opts...)}
}

// WithMutex enables sync.RWMutex locking around every operation, the same
// locking texture as the teacher's Locker[K, V], for a caller that needs
// concurrent access despite the core's single-threaded contract (spec.md
// §5). It returns the receiver for chaining and is a no-op if already
// enabled.
func (m *Map[V]) WithMutex() *Map[V] {
	if m.mux == nil {
		m.mux = &sync.RWMutex{}
	}
	return m
}

// WithRefHooks installs the ref-count callbacks invoked on insert/removal,
// the place a host binding would hang its own reference accounting
// (spec.md §5's shared-resource policy; the core never interprets V).
func (m *Map[V]) WithRefHooks(onSet, onDelete func(V)) *Map[V] {
	withHooks(onSet, onDelete)(m.t)
	return m
}

func (m *Map[V]) lock()    { if m.mux != nil { m.mux.Lock() } }
func (m *Map[V]) unlock()  { if m.mux != nil { m.mux.Unlock() } }
func (m *Map[V]) rlock()   { if m.mux != nil { m.mux.RLock() } }
func (m *Map[V]) runlock() { if m.mux != nil { m.mux.RUnlock() } }

// Len returns the number of stored keys.
func (m *Map[V]) Len() int {
	m.rlock()
	defer m.runlock()
	return m.t.Len()
}

// NodeCount returns the number of trie nodes, including the root.
func (m *Map[V]) NodeCount() int {
	m.rlock()
	defer m.runlock()
	return m.t.NodeCount()
}

// MemUsage returns the best-effort accumulated allocation estimate.
func (m *Map[V]) MemUsage() int64 {
	m.rlock()
	defer m.runlock()
	return m.t.MemUsage()
}

// Contains reports whether key is stored.
func (m *Map[V]) Contains(key string) bool {
	m.rlock()
	defer m.runlock()
	_, ok := m.t.search(toRunes(key))
	return ok
}

// Get returns the value stored at key, or ErrNotFound.
func (m *Map[V]) Get(key string) (V, error) {
	m.rlock()
	defer m.runlock()
	n, ok := m.t.search(toRunes(key))
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return n.value, nil
}

// GetOr returns the value stored at key, or def if absent.
func (m *Map[V]) GetOr(key string, def V) V {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	return v
}

// Set stores value at key, overwriting any prior value.
func (m *Map[V]) Set(key string, value V) {
	m.lock()
	defer m.unlock()
	m.t.add(toRunes(key), value)
}

// Delete removes key, reporting ErrNotFound if it was absent.
func (m *Map[V]) Delete(key string) error {
	m.lock()
	defer m.unlock()
	if _, ok := m.t.del(toRunes(key)); !ok {
		return ErrNotFound
	}
	return nil
}

// Items returns every stored key beginning with prefix (backed by the
// suffix engine), up to maxDepth additional characters beyond prefix
// (0 = unbounded).
func (m *Map[V]) Items(prefix string, maxDepth int) []KV[V] {
	m.rlock()
	defer m.runlock()
	var out []KV[V]
	m.t.WalkSuffixes(prefix, maxDepth, func(k string, v V) bool {
		out = append(out, KV[V]{Key: k, Value: v})
		return true
	})
	return out
}

// Keys is Items projected onto keys.
func (m *Map[V]) Keys(prefix string, maxDepth int) []string {
	items := m.Items(prefix, maxDepth)
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

// Values is Items projected onto values.
func (m *Map[V]) Values(prefix string, maxDepth int) []V {
	items := m.Items(prefix, maxDepth)
	vals := make([]V, len(items))
	for i, it := range items {
		vals[i] = it.Value
	}
	return vals
}

// Update sets every pair in pairs, in order.
func (m *Map[V]) Update(pairs []KV[V]) {
	m.lock()
	defer m.unlock()
	for _, p := range pairs {
		m.t.add(toRunes(p.Key), p.Value)
	}
}

// UpdateMap is Update taking a Go map of pairs.
func (m *Map[V]) UpdateMap(pairs map[string]V) {
	m.lock()
	defer m.unlock()
	for k, v := range pairs {
		m.t.add(toRunes(k), v)
	}
}

// Clear empties the trie, running the delete ref-count hook on every value
// first, per spec.md §6.
func (m *Map[V]) Clear() {
	m.lock()
	defer m.unlock()
	if m.t.onDelete != nil {
		m.t.WalkSuffixes("", 0, func(_ string, v V) bool {
			m.t.onDelete(v)
			return true
		})
	}
	m.t.reset()
}

// Copy returns a new, independent Map over a copy of every stored pair
// (each ref-incremented via the onSet hook as it is inserted) — a true,
// unscoped full copy, resolving the Open Question in spec.md §9 about
// whether a prefix/max_depth should scope it.
func (m *Map[V]) Copy() *Map[V] {
	m.rlock()
	defer m.runlock()

	cp := &Map[V]{t: NewTrie(func(t *Trie[V]) {
		t.newChildIndex = m.t.newChildIndex
		t.onSet = m.t.onSet
		t.onDelete = m.t.onDelete
	})}

	m.t.WalkSuffixes("", 0, func(k string, v V) bool {
		cp.t.add(toRunes(k), v)
		return true
	})
	return cp
}

// Iter is the default iterator: every stored key, from the root, via the
// suffix engine.
func (m *Map[V]) Iter() *SuffixIter[V] {
	return m.t.IterSuffixes("", 0)
}

// Suffixes is Items under the name spec.md §6's table uses.
func (m *Map[V]) Suffixes(prefix string, maxDepth int) []KV[V] {
	return m.Items(prefix, maxDepth)
}

// IterSuffixes is the lazy form of Suffixes. Iterators are not
// lock-protected even on a WithMutex Map: concurrent Set/Delete while an
// iterator is live is exactly what the dirty flag (spec.md §5) exists to
// detect, not something the mutex should silently serialize away.
func (m *Map[V]) IterSuffixes(prefix string, maxDepth int) *SuffixIter[V] {
	return m.t.IterSuffixes(prefix, maxDepth)
}

// Prefixes returns every stored key that is a prefix of query.
func (m *Map[V]) Prefixes(query string, maxDepth int) []KV[V] {
	m.rlock()
	defer m.runlock()
	var out []KV[V]
	m.t.WalkPrefixes(query, maxDepth, func(k string, v V) bool {
		out = append(out, KV[V]{Key: k, Value: v})
		return true
	})
	return out
}

// IterPrefixes is the lazy form of Prefixes.
func (m *Map[V]) IterPrefixes(query string, maxDepth int) *PrefixIter[V] {
	return m.t.IterPrefixes(query, maxDepth)
}

// Corrections returns every stored key within maxDepth edits of query, not
// deduplicated (spec.md §4.5.3).
func (m *Map[V]) Corrections(query string, maxDepth int) []KV[V] {
	m.rlock()
	defer m.runlock()
	var out []KV[V]
	m.t.WalkCorrections(query, maxDepth, func(k string, v V) bool {
		out = append(out, KV[V]{Key: k, Value: v})
		return true
	})
	return out
}

// IterCorrections is the lazy form of Corrections.
func (m *Map[V]) IterCorrections(query string, maxDepth int) *CorrectionIter[V] {
	return m.t.IterCorrections(query, maxDepth)
}

// Serialize renders the trie per spec.md §4.6.
func (m *Map[V]) Serialize() (nodeCount int, height int, memUsage int64, blob []byte, values []V) {
	m.rlock()
	defer m.runlock()
	return m.t.Serialize()
}

// Deserialize replaces this Map's trie in place.
func (m *Map[V]) Deserialize(nodeCount int, height int, memUsage int64, blob []byte, values []V) error {
	m.lock()
	defer m.unlock()
	return m.t.Deserialize(nodeCount, height, memUsage, blob, values)
}
