package counts

import (
	"fmt"

	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
	"github.com/cognicore/cooccur/pkg/cooccur/vocab"
)

// Pair is one observed co-occurrence of an X symbol with a Y symbol.
type Pair struct {
	X string
	Y string
}

// Matrix holds co-occurrence counts for two indexed variables.
// Cell (i,j) is the number of observed pairs mapping to X index i and
// Y index j. A Matrix is built in one pass and not mutated afterwards.
type Matrix struct {
	cells [][]int64
	total int64
	xv    *vocab.Index
	yv    *vocab.Index
}

// Count tallies the pair stream against two pre-built vocabularies.
// Every symbol must already be registered; an unregistered symbol is a
// contract violation upstream and fails the whole count.
func Count(pairs []Pair, xv, yv *vocab.Index) (*Matrix, error) {
	if xv == nil || yv == nil {
		return nil, fmt.Errorf("%w: nil vocabulary index", internalerr.ErrInvalidInput)
	}

	m := newMatrix(xv, yv)
	for _, p := range pairs {
		i, err := xv.ID(p.X)
		if err != nil {
			return nil, err
		}
		j, err := yv.ID(p.Y)
		if err != nil {
			return nil, err
		}
		m.cells[i][j]++
		m.total++
	}
	return m, nil
}

// CountDiscover builds both vocabularies from the pair stream in
// first-seen order, then tallies. Returns the matrix with the two
// indexes it was counted against.
func CountDiscover(pairs []Pair) (*Matrix, *vocab.Index, *vocab.Index, error) {
	xs := make([]string, len(pairs))
	ys := make([]string, len(pairs))
	for k, p := range pairs {
		xs[k] = p.X
		ys[k] = p.Y
	}

	xv := vocab.Discover(xs)
	yv := vocab.Discover(ys)

	m, err := Count(pairs, xv, yv)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, xv, yv, nil
}

func newMatrix(xv, yv *vocab.Index) *Matrix {
	cells := make([][]int64, xv.Size())
	for i := range cells {
		cells[i] = make([]int64, yv.Size())
	}
	return &Matrix{cells: cells, xv: xv, yv: yv}
}

// At returns the count for cell (i,j).
func (m *Matrix) At(i, j int) int64 {
	return m.cells[i][j]
}

// Total returns N, the number of observed pairs.
func (m *Matrix) Total() int64 {
	return m.total
}

// Rows returns |X|.
func (m *Matrix) Rows() int {
	return len(m.cells)
}

// Cols returns |Y|.
func (m *Matrix) Cols() int {
	if len(m.cells) == 0 {
		return 0
	}
	return len(m.cells[0])
}

// XIndex returns the vocabulary the rows were counted against.
func (m *Matrix) XIndex() *vocab.Index { return m.xv }

// YIndex returns the vocabulary the columns were counted against.
func (m *Matrix) YIndex() *vocab.Index { return m.yv }
