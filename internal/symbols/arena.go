package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// arena is a generic append-only store, modeled on the teacher's
// ast.Arena but 0-indexed: spec §8's testable property 1 requires
// {symbol.id} to equal exactly {0,...,N-1}, so SymbolID 0 must be a real
// symbol rather than a reserved sentinel.
type arena[T any] struct {
	data []*T
}

func newArena[T any](capHint uint) *arena[T] {
	return &arena[T]{data: make([]*T, 0, capHint)}
}

// allocate appends value and returns its dense index.
func (a *arena[T]) allocate(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.len() - 1
}

func (a *arena[T]) get(index uint32) *T {
	if int(index) >= len(a.data) {
		return nil
	}
	return a.data[index]
}

func (a *arena[T]) len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("symbols: arena overflow: %w", err))
	}
	return n
}
