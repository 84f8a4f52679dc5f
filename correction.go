package ftrie

// The correction engine enumerates every stored key reachable from a query
// by at most maxDepth edits drawn from DELETE, TRANSPOSE, INSERT, CHANGE.
// INSERT and CHANGE only try characters that are children of the current
// trie prefix node — the essential pruning from spec.md §4.5 and
// original_source/trie.c's trie_cor_callback, which walks
// `p = prefix->children; p; p = p->next` rather than a fixed alphabet.
//
// Matches are not deduplicated (spec.md §4.5.3): the same stored key can be
// emitted once per distinct edit path that reaches it.

// WalkCorrections is the recursive callback form (spec.md §4.5.1). query is
// edited in place against a single shared scratch buffer sized to
// len(query)+maxDepth, with every edit bracketed by a matched do/undo pair
// so the buffer is byte-for-byte restored once a branch returns.
func (t *Trie[V]) WalkCorrections(query string, maxDepth int, cb func(key string, value V) bool) {
	if maxDepth <= 0 {
		maxDepth = t.height
	}
	wk := newWorkKey(toRunes(query), maxDepth)
	stopped := false

	var rec func(pprefix *node[V], cIndex, cDepth int)
	rec = func(pprefix *node[V], cIndex, cDepth int) {
		// cIndex > wk.n is the hard stop from spec.md §4.5.3's termination
		// argument; checked before indexing wk.buf[cIndex-1] below, since
		// INDEXCHG can produce cIndex == wk.n+1 and wk.buf has no logically
		// valid character at that position.
		if stopped || pprefix == nil || cIndex > wk.n {
			return
		}

		var prefix *node[V]
		if cIndex > 0 {
			prefix = t.childAt(pprefix, wk.buf[cIndex-1])
			if prefix == nil {
				return
			}
		} else {
			prefix = pprefix
		}

		if n := t.descend(prefix, wk.s()[cIndex:]); n != nil && n.hasValue {
			if !cb(string(wk.s()), n.value) {
				stopped = true
				return
			}
		}

		if cDepth == 0 {
			return
		}

		// DELETE
		if wk.n > 1 && cIndex < wk.n {
			removed := wk.deleteAt(cIndex)
			rec(t.root, 0, cDepth-1)
			wk.undoDelete(cIndex, removed)
			if stopped {
				return
			}
		}

		// TRANSPOSE
		if cIndex < wk.n-1 {
			wk.transpose(cIndex)
			rec(pprefix, cIndex, cDepth-1)
			wk.undoTranspose(cIndex)
			if stopped {
				return
			}
		}

		// INSERT: one candidate per child of prefix.
		if prefix.children != nil {
			cur := prefix.children.newCursor()
			for ch := cur.next(); ch != nil; ch = cur.next() {
				wk.insertAt(cIndex, ch.label)
				rec(pprefix, cIndex, cDepth-1)
				wk.undoInsert(cIndex)
				if stopped {
					return
				}
			}
		}

		// CHANGE: one candidate per child of prefix.
		if cIndex < wk.n && prefix.children != nil {
			cur := prefix.children.newCursor()
			for ch := cur.next(); ch != nil; ch = cur.next() {
				old := wk.changeAt(cIndex, ch.label)
				rec(pprefix, cIndex, cDepth-1)
				wk.undoChange(cIndex, old)
				if stopped {
					return
				}
			}
		}

		// INDEXCHG: advance without spending budget.
		if cIndex <= wk.n {
			rec(prefix, cIndex+1, cDepth)
		}
	}

	rec(t.root, 0, maxDepth)
}

// --- iterator form: explicit work stack (k0) + history stack (k1) ---------

// corPos enumerates which of the five recursion slots a frame should
// execute next, per spec.md §4.5.2.
type corPos int

const (
	corMatch corPos = iota
	corDelete
	corTranspose
	corInsert
	corChange
	corIndexChg
	corDone
)

// corFrame is one pending activation in the work stack k0.
type corFrame[V any] struct {
	pprefix *node[V]
	prefix  *node[V]
	cIndex  int
	cDepth  int
	pos     corPos
	cursor  childCursor[V]
}

type undoKind int

const (
	undoDelete undoKind = iota
	undoTranspose
	undoInsert
	undoChange
)

// undoRecord is one entry in the history stack k1: a pending do awaiting
// its matching undo once the subtree it spawned is fully drained.
type undoRecord struct {
	kind  undoKind
	index int
	ch    rune
}

func (r undoRecord) apply(wk *workKey) {
	switch r.kind {
	case undoDelete:
		wk.undoDelete(r.index, r.ch)
	case undoTranspose:
		wk.undoTranspose(r.index)
	case undoInsert:
		wk.undoInsert(r.index)
	case undoChange:
		wk.undoChange(r.index, r.ch)
	}
}

// corTask is one entry in k0: either a real frame to process, or a marker
// that says "pop k1 and undo" once its own turn comes up — this is what
// lets a single do-performing frame stay alive (further down the stack)
// while its recursive child runs above it, and resume exactly where it
// left off once the child (and the marker) are gone.
type corTask[V any] struct {
	frame *corFrame[V] // nil for an undo marker
}

// CorrectionIter is the lazy, resettable form of WalkCorrections.
type CorrectionIter[V any] struct {
	t              *Trie[V]
	query          []rune
	requestedDepth int
	maxDepth       int
	wk             *workKey
	k0             []corTask[V]
	k1             []undoRecord
	err            error
	curKey         string
	curVal         V
}

// IterCorrections constructs a CorrectionIter and positions it at the start.
func (t *Trie[V]) IterCorrections(query string, maxDepth int) *CorrectionIter[V] {
	it := &CorrectionIter[V]{t: t, query: toRunes(query), requestedDepth: maxDepth}
	it.Reset()
	return it
}

// Reset clears both stacks, pushes the initial INDEXCHG frame at
// (c_index=0, c_depth=max_depth, prefix=root), and clears the trie's dirty
// flag, per spec.md §4.5.2.
func (it *CorrectionIter[V]) Reset() {
	it.err = nil
	md := it.requestedDepth
	if md <= 0 {
		md = it.t.height
	}
	it.maxDepth = md

	it.wk = newWorkKey(it.query, md)
	it.k0 = make([]corTask[V], 0, md+4)
	it.k1 = make([]undoRecord, 0, md+1)
	it.k0 = append(it.k0, corTask[V]{frame: &corFrame[V]{pprefix: it.t.root, cIndex: 0, cDepth: md}})
	it.t.clearDirty()
}

func (it *CorrectionIter[V]) pushFrame(pprefix *node[V], cIndex, cDepth int) {
	it.k0 = append(it.k0, corTask[V]{frame: &corFrame[V]{pprefix: pprefix, cIndex: cIndex, cDepth: cDepth}})
}

func (it *CorrectionIter[V]) pushUndo(rec undoRecord) {
	it.k1 = append(it.k1, rec)
	it.k0 = append(it.k0, corTask[V]{})
}

func (it *CorrectionIter[V]) popK0() {
	it.k0 = it.k0[:len(it.k0)-1]
}

// Next advances to the next match. It returns false when exhausted or when
// the trie was mutated since construction/Reset (see Err).
func (it *CorrectionIter[V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.t.dirty {
		it.err = wrapIterationError("correction")
		return false
	}

	for len(it.k0) > 0 {
		task := it.k0[len(it.k0)-1]

		if task.frame == nil {
			// Undo marker: pop it, pop+apply the matching history entry.
			it.popK0()
			rec := it.k1[len(it.k1)-1]
			it.k1 = it.k1[:len(it.k1)-1]
			rec.apply(it.wk)
			continue
		}

		f := task.frame
		switch f.pos {
		case corMatch:
			if f.cIndex > it.wk.n {
				it.popK0()
				continue
			}
			var prefix *node[V]
			if f.cIndex > 0 {
				prefix = it.t.childAt(f.pprefix, it.wk.buf[f.cIndex-1])
				if prefix == nil {
					it.popK0()
					continue
				}
			} else {
				prefix = f.pprefix
			}
			f.prefix = prefix
			f.pos = corDelete
			if n := it.t.descend(prefix, it.wk.s()[f.cIndex:]); n != nil && n.hasValue {
				it.curKey = string(it.wk.s())
				it.curVal = n.value
				return true
			}

		case corDelete:
			if f.cDepth == 0 {
				it.popK0()
				continue
			}
			f.pos = corTranspose
			if it.wk.n > 1 && f.cIndex < it.wk.n {
				removed := it.wk.deleteAt(f.cIndex)
				it.pushUndo(undoRecord{kind: undoDelete, index: f.cIndex, ch: removed})
				it.pushFrame(it.t.root, 0, f.cDepth-1)
			}

		case corTranspose:
			f.pos = corInsert
			if f.cIndex < it.wk.n-1 {
				it.wk.transpose(f.cIndex)
				it.pushUndo(undoRecord{kind: undoTranspose, index: f.cIndex})
				it.pushFrame(f.pprefix, f.cIndex, f.cDepth-1)
			}

		case corInsert:
			if f.cursor == nil {
				if f.prefix.children != nil {
					f.cursor = f.prefix.children.newCursor()
				} else {
					f.cursor = emptyCursor[V]{}
				}
			}
			if ch := f.cursor.next(); ch != nil {
				it.wk.insertAt(f.cIndex, ch.label)
				it.pushUndo(undoRecord{kind: undoInsert, index: f.cIndex})
				it.pushFrame(f.pprefix, f.cIndex, f.cDepth-1)
				continue
			}
			f.pos = corChange
			f.cursor = nil

		case corChange:
			if f.cIndex >= it.wk.n {
				f.pos = corIndexChg
				continue
			}
			if f.cursor == nil {
				if f.prefix.children != nil {
					f.cursor = f.prefix.children.newCursor()
				} else {
					f.cursor = emptyCursor[V]{}
				}
			}
			if ch := f.cursor.next(); ch != nil {
				old := it.wk.changeAt(f.cIndex, ch.label)
				it.pushUndo(undoRecord{kind: undoChange, index: f.cIndex, ch: old})
				it.pushFrame(f.pprefix, f.cIndex, f.cDepth-1)
				continue
			}
			f.pos = corIndexChg

		case corIndexChg:
			f.pos = corDone
			if f.cIndex <= it.wk.n {
				it.pushFrame(f.prefix, f.cIndex+1, f.cDepth)
			}

		default: // corDone
			it.popK0()
		}
	}

	return false
}

// Key returns the key for the current match.
func (it *CorrectionIter[V]) Key() string { return it.curKey }

// Value returns the value for the current match.
func (it *CorrectionIter[V]) Value() V { return it.curVal }

// Err returns the error that stopped iteration, if any.
func (it *CorrectionIter[V]) Err() error { return it.err }

// Close releases the iterator's stacks and working key early.
func (it *CorrectionIter[V]) Close() {
	it.k0 = nil
	it.k1 = nil
	it.wk = nil
}
