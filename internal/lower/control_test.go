package lower

import (
	"testing"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
)

func TestLowerCase(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"literal patterns",
			"case f() do\n  1 -> :one\n  2 -> :two\nend",
			"(case (f) ([1] -> :one) ([2] -> :two))",
		},
		{
			"binding pattern",
			"case f() do\n  {:ok, v} -> v\n  :error -> nil\nend",
			"(case (f) ([{:ok v}] -> v) ([:error] -> nil))",
		},
		{
			"guarded clause",
			"case f() do\n  n when n > 0 -> n\n  _ -> 0\nend",
			"(case (f) ([n] when (> n 0) -> n) ([_] -> 0))",
		},
		{
			"multi statement body",
			"case f() do\n  1 ->\n    a = 2\n    a\nend",
			"(case (f) ([1] -> (= a 2) a))",
		},
		{
			"stacked guards join with or",
			"case f() do\n  n when n > 1 when n < 0 -> n\nend",
			"(case (f) ([n] when (or (> n 1) (< n 0)) -> n))",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustLower(t, tc.src)
			if got != tc.want {
				t.Errorf("got %q\nwant %q", got, tc.want)
			}
		})
	}
}

// Clause bindings survive the case. A name bound in any branch reads
// as a variable afterwards.
func TestLowerCaseBindingsEscape(t *testing.T) {
	got := mustLower(t, "case f() do\n  y -> y\nend\ny")
	want := "(case (f) ([y] -> y)) y"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerCaseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no do block", "case f()", diag.LowInvalidArgs},
		{"second argument not a block", "case(f(), 1)", diag.LowMissingDoBlock},
		{"two patterns", "case f() do\n  a, b -> a\nend", diag.LowInvalidClauseShape},
		{"plain body", "case f() do\n  :ok\nend", diag.LowInvalidClauseShape},
		{"stray section", "case f() do\n  x -> x\nafter\n  :done\nend", diag.LowInvalidArgs},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := lowerFailure(t, tc.src, scope.New("test.ex"))
			wantCode(t, f, tc.code)
		})
	}
}

func TestLowerTry(t *testing.T) {
	got := mustLower(t, "try do\n  work()\nrescue\n  e -> handle(e)\ncatch\n  k, v -> pair(k, v)\nelse\n  val -> val\nafter\n  cleanup()\nend")
	want := "(try (do (work)) (catch ([e] -> (handle e)) ([k v] -> (pair k v))) (else ([val] -> val)) (after (cleanup)))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerTryDoOnly(t *testing.T) {
	got := mustLower(t, "try do\n  f()\nend")
	want := "(try (do (f)))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerTryEmptyBody(t *testing.T) {
	got := mustLower(t, "try do\nrescue\n  e -> e\nend")
	want := "(try (do) (catch ([e] -> e)))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// Bindings made in the protected body stay visible in the handler
// clauses.
func TestLowerTryBodyBindingsReachHandlers(t *testing.T) {
	got := mustLower(t, "try do\n  x = compute()\nrescue\n  e -> x\nend")
	want := "(try (do (= x (compute))) (catch ([e] -> x)))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

// The after body runs for effect only, so nothing it binds leaks out.
func TestLowerTryAfterBindsNothing(t *testing.T) {
	got := mustLower(t, "try do\n  :ok\nafter\n  x = 1\nend\nx")
	want := "(try (do :ok) (after (= x 1))) (x)"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerTryErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no do block", "try(1)", diag.LowMissingDoBlock},
		{"three patterns", "try do\n  f()\ncatch\n  a, b, c -> a\nend", diag.LowInvalidTryBranch},
		{"plain rescue body", "try do\n  f()\nrescue\n  :oops\nend", diag.LowInvalidClauseShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := lowerFailure(t, tc.src, scope.New("test.ex"))
			wantCode(t, f, tc.code)
		})
	}
}

func TestLowerReceive(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"message clauses",
			"receive do\n  {:ok, v} -> v\n  {:error, e} -> e\nend",
			"(receive ([{:ok v}] -> v) ([{:error e}] -> e))",
		},
		{
			"with timeout",
			"receive do\n  msg -> msg\nafter\n  100 -> :timeout\nend",
			"(receive ([msg] -> msg) (after 100 :timeout))",
		},
		{
			"timeout only",
			"receive do\nafter\n  t() -> :late\nend",
			"(receive (after (t) :late))",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustLower(t, tc.src)
			if got != tc.want {
				t.Errorf("got %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestLowerReceiveErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"rescue section", "receive do\n  m -> m\nrescue\n  e -> e\nend", diag.LowInvalidReceive},
		{"two timeout clauses", "receive do\n  m -> m\nafter\n  1 -> :a\n  2 -> :b\nend", diag.LowInvalidReceive},
		{"guarded timeout", "receive do\n  m -> m\nafter\n  t when t > 0 -> :late\nend", diag.LowInvalidReceive},
		{"two message patterns", "receive do\n  a, b -> a\nend", diag.LowInvalidClauseShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := lowerFailure(t, tc.src, scope.New("test.ex"))
			wantCode(t, f, tc.code)
		})
	}
}

func TestLowerFn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"identity", "fn x -> x end", "(fn ([x] -> x))"},
		{"zero arity", "fn -> :ok end", "(fn ([] -> :ok))"},
		{"parenthesized head", "fn(a, b) -> a end", "(fn ([a b] -> a))"},
		{
			"multiple clauses",
			"fn\n  0 -> :zero\n  n -> n\nend",
			"(fn ([0] -> :zero) ([n] -> n))",
		},
		{
			"guarded",
			"fn x when x > 0 -> x end",
			"(fn ([x] when (> x 0) -> x))",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustLower(t, tc.src)
			if got != tc.want {
				t.Errorf("got %q\nwant %q", got, tc.want)
			}
		})
	}
}

// Anonymous functions close over outer bindings but never leak their
// own.
func TestLowerFnScoping(t *testing.T) {
	got := mustLower(t, "x = 1\nf = fn -> x end")
	want := "(= x 1) (= f (fn ([] -> x)))"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	got = mustLower(t, "fn y -> y end\ny")
	want = "(fn ([y] -> y)) (y)"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLowerFnMixedArityFails(t *testing.T) {
	f := lowerFailure(t, "fn\n  x -> x\n  a, b -> a\nend", scope.New("test.ex"))
	wantCode(t, f, diag.LowInvalidClauseShape)
}

func TestLowerGuardLegality(t *testing.T) {
	allowed := mustLower(t, "fn x when is_atom(x) -> x end")
	want := "(fn ([x] when (is_atom x) -> x))"
	if allowed != want {
		t.Errorf("got %q\nwant %q", allowed, want)
	}

	cases := []struct {
		name string
		src  string
	}{
		{"local call", "fn x when foo(x) -> x end"},
		{"remote call", "fn x when :lists.member(x, [1]) -> x end"},
		{"match", "fn x when (y = x) -> x end"},
		{"try", "fn x when try(x) -> x end"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := lowerFailure(t, tc.src, scope.New("test.ex"))
			wantCode(t, f, diag.LowInvalidGuardExpr)
		})
	}
}
