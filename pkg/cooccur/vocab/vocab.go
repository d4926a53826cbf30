package vocab

import (
	"fmt"

	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
)

// Index assigns each distinct symbol of one variable a dense integer
// in [0, Size). The assignment is fixed at construction; an Index is
// read-only afterwards, so two computations never share mutable state.
type Index struct {
	symbols []string
	ids     map[string]int
}

// New builds an index over the given symbols in the order supplied.
// Duplicates are rejected so that the symbol→id mapping stays bijective.
func New(symbols []string) (*Index, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: vocabulary must contain at least one symbol", internalerr.ErrInvalidInput)
	}

	idx := &Index{
		symbols: make([]string, 0, len(symbols)),
		ids:     make(map[string]int, len(symbols)),
	}
	for _, s := range symbols {
		if _, dup := idx.ids[s]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", internalerr.ErrInvalidInput, s)
		}
		idx.ids[s] = len(idx.symbols)
		idx.symbols = append(idx.symbols, s)
	}
	return idx, nil
}

// Discover builds an index from a symbol stream, assigning ids in
// order of first occurrence. Convenience fallback for callers without
// a declared vocabulary.
func Discover(symbols []string) *Index {
	idx := &Index{ids: make(map[string]int)}
	for _, s := range symbols {
		if _, seen := idx.ids[s]; seen {
			continue
		}
		idx.ids[s] = len(idx.symbols)
		idx.symbols = append(idx.symbols, s)
	}
	return idx
}

// ID returns the dense index for a symbol.
func (x *Index) ID(symbol string) (int, error) {
	id, ok := x.ids[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", internalerr.ErrUnknownSymbol, symbol)
	}
	return id, nil
}

// Symbol returns the symbol registered at the given index.
func (x *Index) Symbol(id int) (string, error) {
	if id < 0 || id >= len(x.symbols) {
		return "", fmt.Errorf("%w: index %d out of range [0,%d)", internalerr.ErrInvalidInput, id, len(x.symbols))
	}
	return x.symbols[id], nil
}

// Size returns the number of distinct symbols.
func (x *Index) Size() int {
	return len(x.symbols)
}

// Symbols returns the symbols in index order. The slice is a copy.
func (x *Index) Symbols() []string {
	out := make([]string, len(x.symbols))
	copy(out, x.symbols)
	return out
}
