package report

import (
	"crypto/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/cooccur/pkg/cooccur/dist"
	"github.com/cognicore/cooccur/pkg/cooccur/infotheory"
)

// DefaultTopK is how many associations a report keeps when the caller
// does not say otherwise.
const DefaultTopK = 10

// Builder constructs explainable analysis reports
type Builder struct {
	entropy *ulid.MonotonicEntropy
	topK    int
}

// New creates a new report builder keeping topK associations per
// report. topK <= 0 falls back to DefaultTopK.
func New(topK int) *Builder {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		topK:    topK,
	}
}

// Report is a structured, explainable analysis result
type Report struct {
	ID          string
	Corpus      string
	GeneratedAt time.Time
	MI          float64
	HX          float64
	HY          float64
	HXY         float64
	XSymbols    []string
	YSymbols    []string
	Top         []Association
}

// Association is one populated joint cell, ranked by PMI
type Association struct {
	X     string  `json:"x"`
	Y     string  `json:"y"`
	PMI   float64 `json:"pmi"`
	Joint float64 `json:"joint"`
}

// Build assembles a report from one computation's outputs. Populated
// cells are ranked by PMI descending, ties broken by joint mass then
// by label, and the top K kept.
func (b *Builder) Build(corpus string, xSymbols, ySymbols []string, j *dist.Joint, m *infotheory.Metrics) Report {
	r := Report{
		ID:          ulid.MustNew(ulid.Now(), b.entropy).String(),
		Corpus:      corpus,
		GeneratedAt: time.Now(),
		MI:          m.MI,
		HX:          m.HX,
		HY:          m.HY,
		HXY:         m.HXY,
		XSymbols:    append([]string(nil), xSymbols...),
		YSymbols:    append([]string(nil), ySymbols...),
	}

	var assocs []Association
	for i := range xSymbols {
		for k := range ySymbols {
			pmi, ok := m.PMIAt(i, k)
			if !ok {
				continue
			}
			assocs = append(assocs, Association{
				X:     xSymbols[i],
				Y:     ySymbols[k],
				PMI:   pmi,
				Joint: j.P[i][k],
			})
		}
	}

	sort.Slice(assocs, func(i, k int) bool {
		if assocs[i].PMI != assocs[k].PMI {
			return assocs[i].PMI > assocs[k].PMI
		}
		if assocs[i].Joint != assocs[k].Joint {
			return assocs[i].Joint > assocs[k].Joint
		}
		if assocs[i].X != assocs[k].X {
			return assocs[i].X < assocs[k].X
		}
		return assocs[i].Y < assocs[k].Y
	})

	if len(assocs) > b.topK {
		assocs = assocs[:b.topK]
	}
	r.Top = assocs
	return r
}
