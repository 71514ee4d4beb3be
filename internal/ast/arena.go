// Package ast implements the Glint abstract syntax tree: an arena-of-IDs
// model where every node is addressed by a 1-based index rather than a
// pointer, grounded on the teacher's internal/ast/arena.go. Rewriting a
// node in place (spec.md §4.D) means overwriting the slot `Get` returns a
// pointer into; the old contents are never reclaimed.
package ast

import "fortio.org/safecast"

// Arena is a monotonically growing, 1-based-indexed store of T. Index 0
// is reserved to mean "no such node".
type Arena[T any] struct {
	data []T
}

// NewArena allocates an Arena with capHint as the initial capacity hint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic("ast: arena overflow")
	}
	return n
}

// Get returns a pointer into the arena's backing slice for index, or nil
// for index 0. The returned pointer is the mutation target for in-place
// rewrites.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage read-only, for traversal/printing.
func (a *Arena[T]) Slice() []T { return a.data }

// Len returns the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic("ast: arena overflow")
	}
	return n
}
