package counts

import (
	"errors"
	"testing"

	"github.com/cognicore/cooccur/pkg/cooccur/internalerr"
	"github.com/cognicore/cooccur/pkg/cooccur/vocab"
)

func petPairs() []Pair {
	return []Pair{
		{X: "dog", Y: "Chloe"},
		{X: "dog", Y: "Ozzie"},
		{X: "cat", Y: "Jinx"},
		{X: "cat", Y: "Fritz"},
		{X: "cat", Y: "Chloe"},
		{X: "gecko", Y: "Remy"},
	}
}

func TestCountReferenceScenario(t *testing.T) {
	xv, err := vocab.New([]string{"dog", "cat", "gecko"})
	if err != nil {
		t.Fatalf("x vocab: %v", err)
	}
	yv, err := vocab.New([]string{"Chloe", "Ozzie", "Jinx", "Fritz", "Remy"})
	if err != nil {
		t.Fatalf("y vocab: %v", err)
	}

	m, err := Count(petPairs(), xv, yv)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}

	want := [][]int64{
		{1, 1, 0, 0, 0},
		{1, 0, 1, 1, 0},
		{0, 0, 0, 0, 1},
	}
	if m.Rows() != 3 || m.Cols() != 5 {
		t.Fatalf("shape = %dx%d, want 3x5", m.Rows(), m.Cols())
	}
	for i := range want {
		for j := range want[i] {
			if m.At(i, j) != want[i][j] {
				t.Errorf("C[%d][%d] = %d, want %d", i, j, m.At(i, j), want[i][j])
			}
		}
	}
	if m.Total() != 6 {
		t.Errorf("Total = %d, want 6", m.Total())
	}
}

func TestCountUnknownSymbol(t *testing.T) {
	xv, _ := vocab.New([]string{"dog"})
	yv, _ := vocab.New([]string{"Chloe"})

	_, err := Count([]Pair{{X: "ferret", Y: "Chloe"}}, xv, yv)
	if !errors.Is(err, internalerr.ErrUnknownSymbol) {
		t.Errorf("undeclared x symbol should fail with ErrUnknownSymbol, got %v", err)
	}

	_, err = Count([]Pair{{X: "dog", Y: "Nibbles"}}, xv, yv)
	if !errors.Is(err, internalerr.ErrUnknownSymbol) {
		t.Errorf("undeclared y symbol should fail with ErrUnknownSymbol, got %v", err)
	}
}

func TestCountNilVocab(t *testing.T) {
	_, err := Count(petPairs(), nil, nil)
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("nil vocab should fail with ErrInvalidInput, got %v", err)
	}
}

func TestCountDiscoverMatchesDeclared(t *testing.T) {
	m, xv, yv, err := CountDiscover(petPairs())
	if err != nil {
		t.Fatalf("CountDiscover: %v", err)
	}

	// First-seen order matches the declared order of the reference
	// scenario, so the matrices must be identical.
	if xv.Size() != 3 || yv.Size() != 5 {
		t.Fatalf("vocab sizes = %d,%d, want 3,5", xv.Size(), yv.Size())
	}
	if got, _ := xv.Symbol(0); got != "dog" {
		t.Errorf("first x symbol = %q, want %q", got, "dog")
	}
	if got, _ := yv.Symbol(4); got != "Remy" {
		t.Errorf("last y symbol = %q, want %q", got, "Remy")
	}
	if m.At(1, 0) != 1 {
		t.Errorf("C[cat][Chloe] = %d, want 1", m.At(1, 0))
	}
}

func TestCountEmptyStream(t *testing.T) {
	xv, _ := vocab.New([]string{"dog"})
	yv, _ := vocab.New([]string{"Chloe"})

	m, err := Count(nil, xv, yv)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if m.Total() != 0 {
		t.Errorf("Total = %d, want 0", m.Total())
	}
}
