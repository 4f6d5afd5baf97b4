package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a 1-based generic store for AST nodes: index 0 is reserved so
// NoNodeID can mean "no child here" (spec §4.11's malformed-AST
// tolerance). Modeled directly on the teacher's ast.Arena.
type Arena[T any] struct {
	data []*T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]*T, 0, capHint)}
}

// Allocate appends value and returns its 1-based id.
func (a *Arena[T]) Allocate(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns a pointer to the element named by a 1-based id, or nil for
// id 0 or an out-of-range id.
func (a *Arena[T]) Get(id uint32) *T {
	if id == 0 || int(id) > len(a.data) {
		return nil
	}
	return a.data[id-1]
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	return n
}
