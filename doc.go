// Package ftrie implements a generic trie (prefix tree) mapping Unicode
// string keys to arbitrary values, using Go generics (requires go 1.18+).
//
// Beyond plain lookup/insert/delete, it supports three enumeration modes
// over the stored keys: suffix enumeration (every key beginning with a
// prefix), prefix enumeration (every stored key that is itself a prefix of
// a query), and bounded-edit-distance correction (every stored key within
// a given number of deletions, transpositions, insertions and changes of a
// query). Each mode is available both as a collect-all callback walk and
// as a lazy, resettable iterator.
//
// Map wraps a Trie with the external, mapping-like surface most callers
// want. Trie itself is the lower-level engine: it exports its enumeration,
// iterator and serialization methods, while inserting and removing keys is
// exposed only through Map.
package ftrie
