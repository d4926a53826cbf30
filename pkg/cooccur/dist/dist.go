package dist

import (
	"fmt"
	"math"

	"github.com/cognicore/cooccur/pkg/cooccur/counts"
	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
)

// SumTolerance is the absolute tolerance for the joint and both
// marginals summing to one.
const SumTolerance = 1e-9

// Joint is the empirical joint distribution over two indexed
// variables, with its two marginals. Immutable after Estimate.
type Joint struct {
	P  [][]float64 // P[i][j] = C[i][j] / N
	Px []float64   // row marginal
	Py []float64   // column marginal
}

// Estimate normalizes a count matrix into a joint distribution and
// derives the marginals by row and column summation. A matrix with a
// zero total is rejected before any division happens.
func Estimate(m *counts.Matrix) (*Joint, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil count matrix", internalerr.ErrInvalidInput)
	}
	if m.Total() == 0 {
		return nil, fmt.Errorf("%w: no observed pairs to normalize", internalerr.ErrEmptyCorpus)
	}

	n := float64(m.Total())
	rows, cols := m.Rows(), m.Cols()

	j := &Joint{
		P:  make([][]float64, rows),
		Px: make([]float64, rows),
		Py: make([]float64, cols),
	}
	for i := 0; i < rows; i++ {
		j.P[i] = make([]float64, cols)
		for k := 0; k < cols; k++ {
			p := float64(m.At(i, k)) / n
			j.P[i][k] = p
			j.Px[i] += p
			j.Py[k] += p
		}
	}
	return j, nil
}

// Validate checks that the joint and both marginals each sum to one
// within SumTolerance and that no cell is negative or non-finite.
func (j *Joint) Validate() error {
	var total, totalX, totalY float64
	for i := range j.P {
		for _, p := range j.P[i] {
			if p < 0 || p > 1 || math.IsNaN(p) {
				return fmt.Errorf("%w: joint cell %v outside [0,1]", internalerr.ErrInvalidInput, p)
			}
			total += p
		}
	}
	for _, p := range j.Px {
		totalX += p
	}
	for _, p := range j.Py {
		totalY += p
	}

	for name, sum := range map[string]float64{"joint": total, "Px": totalX, "Py": totalY} {
		if math.Abs(sum-1.0) > SumTolerance {
			return fmt.Errorf("%w: %s sums to %v, want 1", internalerr.ErrInvalidInput, name, sum)
		}
	}
	return nil
}
