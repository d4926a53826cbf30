package store

import (
	"context"
	"time"
)

// Store is the main interface for persisting corpora of pair
// observations and the reports computed from them.
type Store interface {
	Close() error

	// Corpora
	CreateCorpus(ctx context.Context, name string) error
	GetCorpus(ctx context.Context, name string) (Corpus, bool, error)
	ListCorpora(ctx context.Context) ([]Corpus, error)

	// Observations
	AppendPairs(ctx context.Context, corpus string, pairs []Pair) error
	GetPairs(ctx context.Context, corpus string) ([]Pair, error)
	CountPairs(ctx context.Context, corpus string) (int64, error)

	// Reports
	SaveReport(ctx context.Context, r Report) error
	GetReport(ctx context.Context, id string) (Report, bool, error)
	ReportsByCorpus(ctx context.Context, corpus string, k int) ([]Report, error)
}

// Pair is one stored co-occurrence observation.
type Pair struct {
	X string
	Y string
}

// Corpus describes a named collection of pair observations.
type Corpus struct {
	Name      string
	CreatedAt time.Time
	Pairs     int64
}

// Report is a stored analysis result.
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
	TopJSON     string // JSON-encoded top associations
}
