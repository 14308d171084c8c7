package lower

import (
	"testing"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
)

// In normal position the left value is cached behind a fresh binding
// and the chain evaluates against that.
func TestLowerMembershipNormal(t *testing.T) {
	got := mustLower(t, "x = f()\nx in [1, 2, 3]")
	want := "(= x (f)) (block (= _in@1 x) (or (=== _in@1 1) (or (=== _in@1 2) (=== _in@1 3))))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerMembershipEmptyList(t *testing.T) {
	got := mustLower(t, "x = 1\nx in []")
	want := "(= x 1) (block (= _in@1 x) false)"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// Guards reuse the tested value directly; no binding is possible there.
func TestLowerMembershipGuard(t *testing.T) {
	got := mustLower(t, "fn x when x in [1, 2] -> :ok end")
	want := "(fn ([x] when (or (=== x 1) (=== x 2)) -> :ok))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// In pattern position the chain joins the clause guard through the
// extra-guard accumulator and the pattern stays a plain variable.
func TestLowerMembershipPattern(t *testing.T) {
	got := mustLower(t, "case v() do\n  x in [1, 2] -> x\n  _ -> 0\nend")
	want := "(case (v) ([x] when (or (=== x 1) (=== x 2)) -> x) ([_] -> 0))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerMembershipPatternWildcard(t *testing.T) {
	got := mustLower(t, "case v() do\n  _ in [1, 2] -> :small\n  _ -> :other\nend")
	want := "(case (v) ([_in@1] when (or (=== _in@1 1) (=== _in@1 2)) -> :small) ([_] -> :other))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// Accumulated membership guards conjoin with the written guard.
func TestLowerMembershipPatternWithGuard(t *testing.T) {
	got := mustLower(t, "case v() do\n  x in [1, 2] when x > 0 -> x\n  _ -> 0\nend")
	want := "(case (v) ([x] when (and (or (=== x 1) (=== x 2)) (> x 0)) -> x) ([_] -> 0))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerNotIn(t *testing.T) {
	got := mustLower(t, "fn x when x not in [1] -> :ok end")
	want := "(fn ([x] when (not (=== x 1)) -> :ok))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	got = mustLower(t, "x = f()\nx not in [1, 2]")
	want = "(= x (f)) (block (= _in@1 x) (not (or (=== _in@1 1) (=== _in@1 2))))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// String membership compares against each character code.
func TestLowerMembershipString(t *testing.T) {
	got := mustLower(t, `fn c when c in "ab" -> c end`)
	want := "(fn ([c] when (or (=== c 97) (=== c 98)) -> c))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerMembershipAscendingRange(t *testing.T) {
	got := mustLower(t, "fn x when x in 1..3 -> x end")
	want := "(fn ([x] when (and (>= x 1) (<= x 3)) -> x))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// Descending constant bounds still lower, with the comparisons swapped,
// and report a deprecation.
func TestLowerMembershipDescendingRange(t *testing.T) {
	got, fx := lowerAt(t, "x = 5\nx in 3..1", scope.New("test.ex"))
	want := "(= x 5) (block (= _in@1 x) (and (<= _in@1 3) (>= _in@1 1)))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if !fx.bag.HasWarnings() {
		t.Fatal("no deprecation reported")
	}
	found := false
	for _, d := range fx.bag.Items() {
		if d.Code == diag.LowDeprecatedRange {
			found = true
		}
	}
	if !found {
		t.Error("missing LowDeprecatedRange diagnostic")
	}
}

// Dynamic bounds emit both orders behind a runtime comparison.
func TestLowerMembershipDynamicRange(t *testing.T) {
	got := mustLower(t, "fn x, lo, hi when x in lo..hi -> x end")
	want := "(fn ([x lo hi] when (or (and (<= lo hi) (and (>= x lo) (<= x hi))) (and (< hi lo) (and (<= x lo) (>= x hi)))) -> x))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerMembershipInvalidRight(t *testing.T) {
	f := lowerFailure(t, "x = 1\nx in y()", scope.New("test.ex"))
	wantCode(t, f, diag.LowInvalidMembership)
}

// The cached binding advances the synthetic counter, so consecutive
// tests get distinct names.
func TestLowerMembershipCounterAdvances(t *testing.T) {
	got := mustLower(t, "a = 1\nb = 2\na in [1]\nb in [2]")
	want := "(= a 1) (= b 2) (block (= _in@1 a) (=== _in@1 1)) (block (= _in@2 b) (=== _in@2 2))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}
