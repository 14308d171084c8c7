package lower

import (
	"testing"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
)

func TestLowerOperators(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 + 2", "(+ 1 2)"},
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"a() ++ b()", "(++ (a) (b))"},
		{`"a" <> "b"`, `(<> "a" "b")`},
		{"1 == 2", "(== 1 2)"},
		{"1 !== 2", "(!== 1 2)"},
		{"1 < 2 and 2 < 3", "(and (< 1 2) (< 2 3))"},
		{"a() or b()", "(or (a) (b))"},
		{"true xor false", "(xor true false)"},
		{"a() && b()", "(&& (a) (b))"},
		{"a() || b()", "(|| (a) (b))"},
		{"not true", "(not true)"},
		{"1..10", "(.. 1 10)"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			if got := mustLower(t, c.src); got != c.want {
				t.Errorf("lower(%q) = %q, want %q", c.src, got, c.want)
			}
		})
	}
}

// Signed numeric literals fold at translation time instead of lowering
// to operator calls.
func TestLowerSignFolding(t *testing.T) {
	cases := []struct{ src, want string }{
		{"-5", "-5"},
		{"+5", "5"},
		{"-2.5", "-2.5"},
		{"x = 1\n-x", "(= x 1) (- x)"},
		{"-f()", "(- (f))"},
		{"1 - -2", "(- 1 -2)"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			if got := mustLower(t, c.src); got != c.want {
				t.Errorf("lower(%q) = %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestLowerNegationOfUnknownValue(t *testing.T) {
	got := mustLower(t, "x = f()\n!x")
	want := "(= x (f)) (case x ([_in@1] when (or (=== _in@1 false) (=== _in@1 nil)) -> true) ([_] -> false))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// A statically boolean subject collapses the coercion case to literal
// boolean patterns.
func TestLowerNegationOfBooleanExpression(t *testing.T) {
	cases := []struct{ src, want string }{
		{"!(1 == 2)", "(case (== 1 2) ([false] -> true) ([true] -> false))"},
		{"!!(1 == 2)", "(case (== 1 2) ([false] -> false) ([true] -> true))"},
		{"!(not f())", "(case (not (f)) ([false] -> true) ([true] -> false))"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			if got := mustLower(t, c.src); got != c.want {
				t.Errorf("got %q\nwant %q", got, c.want)
			}
		})
	}
}

// In guard position boolean coercion expands inline; no case is
// available there.
func TestLowerNegationInGuard(t *testing.T) {
	got := mustLower(t, "fn x when !x -> 1 end")
	want := "(fn ([x] when (or (=== x false) (=== x nil)) -> 1))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	got = mustLower(t, "fn x when !!x -> 1 end")
	want = "(fn ([x] when (and (!== x false) (!== x nil)) -> 1))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerOperatorInPatternFails(t *testing.T) {
	f := lowerFailure(t, "a + b = 1", scope.New("test.ex"))
	wantCode(t, f, diag.LowInvalidPattern)
}

func TestLowerSignedPatternLiterals(t *testing.T) {
	got := mustLower(t, "-1 = x()")
	if got != "(= -1 (x))" {
		t.Errorf("got %q", got)
	}
	f := lowerFailure(t, "-y = x()", scope.New("test.ex"))
	wantCode(t, f, diag.LowInvalidPattern)
}
