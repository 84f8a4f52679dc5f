package ftrie

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors, initialised once at package load and never mutated —
// the "typed error marker" spec.md §9 describes as the only process-wide
// state the system carries. Simple cases stay plain sentinels in the
// teacher's own texture (geche/doc.go declares ErrNotFound the same way);
// the two categories that need to travel with structured context reach for
// github.com/pkg/errors instead of a hand-rolled wrapped-error type.
var (
	// ErrNotFound is returned by Get/Delete when the key is absent.
	ErrNotFound = errors.New("ftrie: key not found")

	// ErrInvalidKey marks a key that cannot be interpreted as a string.
	// Keys are statically typed Go strings throughout this package, so no
	// operation here returns it.
	ErrInvalidKey = errors.New("ftrie: invalid key")

	// ErrIterationInvalidated is the base sentinel wrapped by errors
	// surfaced from Next() after a mutation occurred mid-iteration.
	ErrIterationInvalidated = errors.New("ftrie: trie modified during iteration")

	// ErrMalformedState is the base sentinel wrapped by Deserialize parse
	// errors.
	ErrMalformedState = errors.New("ftrie: malformed serialized state")
)

// wrapIterationError reports which enumeration engine observed the dirty
// flag, via pkg/errors so callers can still errors.Is against the sentinel.
func wrapIterationError(kind string) error {
	return pkgerrors.Wrapf(ErrIterationInvalidated, "%s iterator", kind)
}

// wrapMalformedState reports which field of the serialized blob failed to
// parse.
func wrapMalformedState(field string) error {
	return pkgerrors.Wrapf(ErrMalformedState, "field %q", field)
}
