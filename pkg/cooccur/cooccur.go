package cooccur

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cognicore/cooccur/pkg/cooccur/counts"
	"github.com/cognicore/cooccur/pkg/cooccur/dist"
	"github.com/cognicore/cooccur/pkg/cooccur/infotheory"
	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
	"github.com/cognicore/cooccur/pkg/cooccur/report"
	"github.com/cognicore/cooccur/pkg/cooccur/store"
	"github.com/cognicore/cooccur/pkg/cooccur/vocab"
)

// Pair is one observed co-occurrence of an X symbol with a Y symbol.
type Pair struct {
	X string
	Y string
}

// Result bundles everything one computation produces. All matrices are
// indexed by the symbol orders in XSymbols and YSymbols.
type Result struct {
	XSymbols []string
	YSymbols []string

	Joint   *dist.Joint
	Metrics *infotheory.Metrics
	N       int64 // total observed pairs
}

// Compute runs the full pipeline over a pair stream, discovering both
// vocabularies in first-seen order. This is the convenience mode; use
// ComputeWithVocab when the caller owns a canonical symbol order.
func Compute(pairs []Pair) (*Result, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no pairs supplied", internalerr.ErrEmptyCorpus)
	}

	m, xv, yv, err := counts.CountDiscover(toCountPairs(pairs))
	if err != nil {
		return nil, err
	}
	return finish(m, xv, yv)
}

// ComputeWithVocab runs the full pipeline against caller-supplied
// vocabularies. Every symbol in the stream must be declared; an
// undeclared symbol fails the whole computation with ErrUnknownSymbol.
func ComputeWithVocab(pairs []Pair, xv, yv *vocab.Index) (*Result, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no pairs supplied", internalerr.ErrEmptyCorpus)
	}

	m, err := counts.Count(toCountPairs(pairs), xv, yv)
	if err != nil {
		return nil, err
	}
	return finish(m, xv, yv)
}

func finish(m *counts.Matrix, xv, yv *vocab.Index) (*Result, error) {
	j, err := dist.Estimate(m)
	if err != nil {
		return nil, err
	}
	metrics, err := infotheory.Compute(j)
	if err != nil {
		return nil, err
	}
	return &Result{
		XSymbols: xv.Symbols(),
		YSymbols: yv.Symbols(),
		Joint:    j,
		Metrics:  metrics,
		N:        m.Total(),
	}, nil
}

func toCountPairs(pairs []Pair) []counts.Pair {
	out := make([]counts.Pair, len(pairs))
	for i, p := range pairs {
		out[i] = counts.Pair{X: p.X, Y: p.Y}
	}
	return out
}

// Engine is the store-backed analysis facade
type Engine struct {
	store   store.Store
	builder *report.Builder
	xv      *vocab.Index
	yv      *vocab.Index
}

// Options configures an Engine instance
type Options struct {
	Store store.Store
	TopK  int // associations kept per report

	// Optional declared vocabularies. When set, Analyze runs in
	// strict mode; otherwise symbols are discovered per corpus.
	XVocab *vocab.Index
	YVocab *vocab.Index
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	return &Engine{
		store:   opts.Store,
		builder: report.New(opts.TopK),
		xv:      opts.XVocab,
		yv:      opts.YVocab,
	}
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	return e.store.Close()
}

// Observe appends pair observations to a named corpus, creating the
// corpus on first use.
func (e *Engine) Observe(ctx context.Context, corpus string, pairs []Pair) error {
	if err := e.store.CreateCorpus(ctx, corpus); err != nil {
		return err
	}

	stored := make([]store.Pair, len(pairs))
	for i, p := range pairs {
		stored[i] = store.Pair{X: p.X, Y: p.Y}
	}
	return e.store.AppendPairs(ctx, corpus, stored)
}

// Analyze loads a corpus's observations, runs the pipeline, persists
// a report and returns it.
func (e *Engine) Analyze(ctx context.Context, corpus string) (report.Report, error) {
	stored, err := e.store.GetPairs(ctx, corpus)
	if err != nil {
		return report.Report{}, err
	}

	pairs := make([]Pair, len(stored))
	for i, p := range stored {
		pairs[i] = Pair{X: p.X, Y: p.Y}
	}

	var res *Result
	if e.xv != nil && e.yv != nil {
		res, err = ComputeWithVocab(pairs, e.xv, e.yv)
	} else {
		res, err = Compute(pairs)
	}
	if err != nil {
		return report.Report{}, err
	}

	rep := e.builder.Build(corpus, res.XSymbols, res.YSymbols, res.Joint, res.Metrics)
	if err := e.store.SaveReport(ctx, toStoreReport(rep)); err != nil {
		return report.Report{}, err
	}
	return rep, nil
}

// Reports returns up to k stored reports for a corpus, newest first.
func (e *Engine) Reports(ctx context.Context, corpus string, k int) ([]store.Report, error) {
	return e.store.ReportsByCorpus(ctx, corpus, k)
}

func toStoreReport(r report.Report) store.Report {
	top, _ := json.Marshal(r.Top)
	return store.Report{
		ID:          r.ID,
		Corpus:      r.Corpus,
		GeneratedAt: r.GeneratedAt,
		MI:          r.MI,
		HX:          r.HX,
		HY:          r.HY,
		HXY:         r.HXY,
		XSymbols:    r.XSymbols,
		YSymbols:    r.YSymbols,
		TopJSON:     string(top),
	}
}
