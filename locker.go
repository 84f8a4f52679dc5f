package ftrie

import (
	"sync"
	"sync/atomic"
)

// MapLocker wraps a Map and provides Lock()/RLock() methods returning a
// MapTx that exposes the same operations. The Tx is not a transaction in
// the sense of supporting commit/rollback or an isolation level above READ
// COMMITTED — it only lets a caller run several Map operations atomically
// with respect to Map's own per-call locking, the same contract as the
// teacher's Locker[K, V]/Tx[K, V].
type MapLocker[V any] struct {
	m   *Map[V]
	mux *sync.RWMutex
}

// NewMapLocker creates a new MapLocker wrapping m.
func NewMapLocker[V any](m *Map[V]) *MapLocker[V] {
	return &MapLocker[V]{
		m:   m,
		mux: &sync.RWMutex{},
	}
}

// MapTx is a "transaction" object returned by MapLocker.Lock() and
// MapLocker.RLock(). See MapLocker for more details.
type MapTx[V any] struct {
	m        *Map[V]
	mux      *sync.RWMutex
	writable bool
	unlocked int32
}

// Lock returns a read/write locked Tx.
func (l *MapLocker[V]) Lock() *MapTx[V] {
	l.mux.Lock()
	return &MapTx[V]{m: l.m, mux: l.mux, writable: true}
}

// RLock returns a read-only locked Tx.
func (l *MapLocker[V]) RLock() *MapTx[V] {
	l.mux.RLock()
	return &MapTx[V]{m: l.m, mux: l.mux, writable: false}
}

// Unlock releases the underlying lock. Panics if called twice.
func (tx *MapTx[V]) Unlock() {
	if atomic.LoadInt32(&tx.unlocked) == 1 {
		panic("ftrie: unlocking already unlocked transaction")
	}
	atomic.StoreInt32(&tx.unlocked, 1)
	if tx.writable {
		tx.mux.Unlock()
		return
	}
	tx.mux.RUnlock()
}

func (tx *MapTx[V]) checkUnlocked() {
	if atomic.LoadInt32(&tx.unlocked) == 1 {
		panic("ftrie: cannot use unlocked transaction")
	}
}

// Set stores value at key. Panics if called on an RLocked Tx.
func (tx *MapTx[V]) Set(key string, value V) {
	tx.checkUnlocked()
	if !tx.writable {
		panic("ftrie: cannot set in read-only transaction")
	}
	tx.m.Set(key, value)
}

// Get returns the value stored at key.
func (tx *MapTx[V]) Get(key string) (V, error) {
	tx.checkUnlocked()
	return tx.m.Get(key)
}

// Delete removes key. Panics if called on an RLocked Tx.
func (tx *MapTx[V]) Delete(key string) error {
	tx.checkUnlocked()
	if !tx.writable {
		panic("ftrie: cannot delete in read-only transaction")
	}
	return tx.m.Delete(key)
}

// Len returns the total number of elements in the map.
func (tx *MapTx[V]) Len() int {
	tx.checkUnlocked()
	return tx.m.Len()
}

// Suffixes lists every stored key beginning with prefix, within maxDepth
// characters beyond it — the transactional analogue of the teacher's
// ListByPrefix, generalized from a single always-on capability to this
// map's own native suffix engine rather than an optional type assertion.
func (tx *MapTx[V]) Suffixes(prefix string, maxDepth int) []KV[V] {
	tx.checkUnlocked()
	return tx.m.Suffixes(prefix, maxDepth)
}
