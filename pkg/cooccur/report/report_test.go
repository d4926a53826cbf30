package report

import (
	"testing"

	"github.com/cognicore/cooccur/pkg/cooccur/counts"
	"github.com/cognicore/cooccur/pkg/cooccur/dist"
	"github.com/cognicore/cooccur/pkg/cooccur/infotheory"
)

func buildInputs(t *testing.T) ([]string, []string, *dist.Joint, *infotheory.Metrics) {
	t.Helper()

	pairs := []counts.Pair{
		{X: "dog", Y: "Chloe"},
		{X: "dog", Y: "Ozzie"},
		{X: "cat", Y: "Jinx"},
		{X: "cat", Y: "Fritz"},
		{X: "cat", Y: "Chloe"},
		{X: "gecko", Y: "Remy"},
	}
	m, xv, yv, err := counts.CountDiscover(pairs)
	if err != nil {
		t.Fatalf("CountDiscover: %v", err)
	}
	j, err := dist.Estimate(m)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	metrics, err := infotheory.Compute(j)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return xv.Symbols(), yv.Symbols(), j, metrics
}

func TestBuildRanksByPMI(t *testing.T) {
	xs, ys, j, m := buildInputs(t)

	b := New(0) // DefaultTopK
	rep := b.Build("pets", xs, ys, j, m)

	if len(rep.Top) != 6 {
		t.Fatalf("populated cells = %d, want 6", len(rep.Top))
	}
	for i := 1; i < len(rep.Top); i++ {
		if rep.Top[i].PMI > rep.Top[i-1].PMI {
			t.Errorf("associations out of order at %d: %v after %v", i, rep.Top[i].PMI, rep.Top[i-1].PMI)
		}
	}

	// gecko/Remy is a deterministic pairing and must rank first:
	// P=1/6 against marginals of 1/6 each gives PMI = log2(6).
	if rep.Top[0].X != "gecko" || rep.Top[0].Y != "Remy" {
		t.Errorf("top association = (%s,%s), want (gecko,Remy)", rep.Top[0].X, rep.Top[0].Y)
	}
}

func TestBuildTruncatesToTopK(t *testing.T) {
	xs, ys, j, m := buildInputs(t)

	rep := New(2).Build("pets", xs, ys, j, m)
	if len(rep.Top) != 2 {
		t.Errorf("kept %d associations, want 2", len(rep.Top))
	}
}

func TestBuildGeneratesUniqueIDs(t *testing.T) {
	xs, ys, j, m := buildInputs(t)

	b := New(0)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rep := b.Build("pets", xs, ys, j, m)
		if rep.ID == "" {
			t.Fatal("empty report ID")
		}
		if seen[rep.ID] {
			t.Fatalf("duplicate report ID %q", rep.ID)
		}
		seen[rep.ID] = true
	}
}

func TestBuildCopiesSymbols(t *testing.T) {
	xs, ys, j, m := buildInputs(t)

	rep := New(0).Build("pets", xs, ys, j, m)
	xs[0] = "mutated"
	if rep.XSymbols[0] != "dog" {
		t.Error("report should hold its own copy of the symbol slices")
	}
}

func TestBuildCarriesScalars(t *testing.T) {
	xs, ys, j, m := buildInputs(t)

	rep := New(0).Build("pets", xs, ys, j, m)
	if rep.MI != m.MI || rep.HX != m.HX || rep.HY != m.HY || rep.HXY != m.HXY {
		t.Error("report scalars should match the computed metrics")
	}
	if rep.Corpus != "pets" {
		t.Errorf("corpus = %q, want %q", rep.Corpus, "pets")
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
}
