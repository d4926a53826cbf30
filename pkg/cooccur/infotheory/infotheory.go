package infotheory

import (
	"fmt"
	"math"

	"github.com/cognicore/cooccur/pkg/cooccur/dist"
	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
)

// IdentityTolerance bounds the allowed drift between the two
// independent computations of I(X,Y).
const IdentityTolerance = 1e-6

// Metrics holds the information-theoretic summary of one joint
// distribution. All logarithms are base 2, so units are bits.
type Metrics struct {
	// PMI[i][j] = log2(P[i][j] / (Px[i]*Py[j])) for populated cells.
	// Cells with zero joint probability hold 0 and carry no value;
	// use PMIAt to tell the two apart.
	PMI [][]float64

	MI  float64 // I(X,Y)
	HX  float64 // H(X)
	HY  float64 // H(Y)
	HXY float64 // H(X,Y)

	support [][]bool
}

// Compute derives the PMI matrix, mutual information and entropies
// from a joint distribution.
//
// Zero-probability cells never reach a logarithm: every accumulation
// branches on P > 0 first, matching the limit p*log(p) -> 0. The
// scalar I(X,Y) is additionally recomputed as HX + HY - HXY as a
// cross-check; the two must agree within IdentityTolerance.
func Compute(j *dist.Joint) (*Metrics, error) {
	if j == nil {
		return nil, fmt.Errorf("%w: nil joint distribution", internalerr.ErrInvalidInput)
	}

	rows := len(j.P)
	m := &Metrics{
		PMI:     make([][]float64, rows),
		support: make([][]bool, rows),
	}

	for i := 0; i < rows; i++ {
		m.PMI[i] = make([]float64, len(j.P[i]))
		m.support[i] = make([]bool, len(j.P[i]))
		for k, p := range j.P[i] {
			if p == 0 {
				continue
			}
			// A populated cell sits inside both marginals, so a zero
			// marginal here means the counting invariant was broken.
			if j.Px[i] <= 0 || j.Py[k] <= 0 {
				return nil, fmt.Errorf("%w: joint cell (%d,%d)=%v with Px=%v Py=%v",
					internalerr.ErrDegenerateMarginal, i, k, p, j.Px[i], j.Py[k])
			}

			pmi := math.Log2(p) - math.Log2(j.Px[i]) - math.Log2(j.Py[k])
			m.PMI[i][k] = pmi
			m.support[i][k] = true
			m.MI += p * pmi
			m.HXY -= p * math.Log2(p)
		}
	}

	for _, p := range j.Px {
		if p > 0 {
			m.HX -= p * math.Log2(p)
		}
	}
	for _, p := range j.Py {
		if p > 0 {
			m.HY -= p * math.Log2(p)
		}
	}

	if drift := math.Abs(m.MI - (m.HX + m.HY - m.HXY)); drift > IdentityTolerance {
		return nil, fmt.Errorf("%w: I(X,Y) drifts from HX+HY-HXY by %v", internalerr.ErrInvalidInput, drift)
	}
	return m, nil
}

// PMIAt returns the PMI of cell (i,j) and whether the cell is
// populated. Unpopulated cells contribute nothing to any expectation.
func (m *Metrics) PMIAt(i, j int) (float64, bool) {
	if i < 0 || i >= len(m.support) || j < 0 || j >= len(m.support[i]) {
		return 0, false
	}
	return m.PMI[i][j], m.support[i][j]
}
