package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
	"github.com/cognicore/cooccur/pkg/cooccur/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	corpora map[string]store.Corpus
	pairs   map[string][]store.Pair
	reports map[string]store.Report
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		corpora: make(map[string]store.Corpus),
		pairs:   make(map[string][]store.Pair),
		reports: make(map[string]store.Report),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// CreateCorpus registers a corpus name. Creating an existing corpus is
// a no-op so callers can observe into the same corpus repeatedly.
func (s *Store) CreateCorpus(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return fmt.Errorf("%w: empty corpus name", internalerr.ErrInvalidInput)
	}
	if _, ok := s.corpora[name]; !ok {
		s.corpora[name] = store.Corpus{Name: name, CreatedAt: time.Now()}
	}
	return nil
}

// GetCorpus returns a corpus by name.
func (s *Store) GetCorpus(ctx context.Context, name string) (store.Corpus, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.corpora[name]
	if !ok {
		return store.Corpus{}, false, nil
	}
	c.Pairs = int64(len(s.pairs[name]))
	return c, true, nil
}

// ListCorpora returns all corpora sorted by name.
func (s *Store) ListCorpora(ctx context.Context) ([]store.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Corpus, 0, len(s.corpora))
	for name, c := range s.corpora {
		c.Pairs = int64(len(s.pairs[name]))
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AppendPairs adds observations to a corpus.
func (s *Store) AppendPairs(ctx context.Context, corpus string, pairs []store.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.corpora[corpus]; !ok {
		return fmt.Errorf("%w: corpus %q", internalerr.ErrNotFound, corpus)
	}
	s.pairs[corpus] = append(s.pairs[corpus], pairs...)
	return nil
}

// GetPairs returns all observations for a corpus in insertion order.
func (s *Store) GetPairs(ctx context.Context, corpus string) ([]store.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.corpora[corpus]; !ok {
		return nil, fmt.Errorf("%w: corpus %q", internalerr.ErrNotFound, corpus)
	}
	out := make([]store.Pair, len(s.pairs[corpus]))
	copy(out, s.pairs[corpus])
	return out, nil
}

// CountPairs returns the number of stored observations for a corpus.
func (s *Store) CountPairs(ctx context.Context, corpus string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.corpora[corpus]; !ok {
		return 0, fmt.Errorf("%w: corpus %q", internalerr.ErrNotFound, corpus)
	}
	return int64(len(s.pairs[corpus])), nil
}

// SaveReport stores a report by ID.
func (s *Store) SaveReport(ctx context.Context, r store.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		return fmt.Errorf("%w: report without ID", internalerr.ErrInvalidInput)
	}
	s.reports[r.ID] = copyReport(r)
	return nil
}

// GetReport returns a report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (store.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.reports[id]; ok {
		return copyReport(r), true, nil
	}
	return store.Report{}, false, nil
}

// ReportsByCorpus returns up to k reports for a corpus, newest first.
func (s *Store) ReportsByCorpus(ctx context.Context, corpus string, k int) ([]store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Report
	for _, r := range s.reports {
		if r.Corpus == corpus {
			out = append(out, copyReport(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func copyReport(r store.Report) store.Report {
	out := r
	out.XSymbols = append([]string(nil), r.XSymbols...)
	out.YSymbols = append([]string(nil), r.YSymbols...)
	return out
}
