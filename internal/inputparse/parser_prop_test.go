package inputparse_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/xuanyiying/movr/internal/inputparse"
)

// genPath generates a plausible non-blank path-like token: rapid won't
// produce lines that are themselves blank, so the flat/pairs parsers see
// exactly as many "paths" as the generator emitted.
func genPath(t *rapid.T) string {
	return rapid.StringMatching(`[a-zA-Z0-9_./-]{1,12}`).Draw(t, "path")
}

func TestFlatParse_NeverErrorsOnNonEmptyInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		lines := make([]string, n)
		for i := range lines {
			lines[i] = genPath(t)
		}
		pairs, err := inputparse.Parse(lines, inputparse.Flat)
		if err != nil {
			t.Fatalf("flat parse must not error on non-empty input: %v", err)
		}
		if got, want := len(pairs), n/2; got != want {
			t.Fatalf("expected %d pairs, got %d", want, got)
		}
	})
}

func TestPairsParse_EvenCountRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		lines := make([]string, 2*n)
		for i := range lines {
			lines[i] = genPath(t)
		}
		pairs, err := inputparse.Parse(lines, inputparse.Pairs)
		if err != nil {
			t.Fatalf("pairs parse must not error on even non-empty input: %v", err)
		}
		if len(pairs) != n {
			t.Fatalf("expected %d pairs, got %d", n, len(pairs))
		}
		for i, p := range pairs {
			if p.Orig != lines[2*i] || p.New != lines[2*i+1] {
				t.Fatalf("pair %d mismatched source lines", i)
			}
		}
	})
}

func TestParse_IsDeterministicAcrossStructures(t *testing.T) {
	structures := []inputparse.Structure{inputparse.Flat, inputparse.Pairs, inputparse.RenameOnly}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 10).Draw(t, "n")
		lines := make([]string, n)
		for i := range lines {
			lines[i] = genPath(t)
		}
		structure := structures[rapid.IntRange(0, len(structures)-1).Draw(t, "structure")]
		p1, err1 := inputparse.Parse(lines, structure)
		p2, err2 := inputparse.Parse(lines, structure)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("non-deterministic error across identical calls")
		}
		if err1 != nil {
			return
		}
		if len(p1) != len(p2) {
			t.Fatalf("non-deterministic pair count")
		}
		for i := range p1 {
			if p1[i] != p2[i] {
				t.Fatalf("non-deterministic pair at %d", i)
			}
		}
	})
}
