package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB cap per corpus entry

// languageSeeds is a hand-picked corpus spanning every construct the
// front end handles, plus shapes that stress error recovery.
var languageSeeds = []string{
	"",
	"x = 1\n",
	":ok\n",
	"defmodule Foo do\n  def add(a, b), do: a + b\nend\n",
	"defmodule Outer do\n  defmodule Inner do\n    def ping, do: :pong\n  end\nend\n",
	"defmodule M do\n  @moduledoc \"docs\"\n  @limit 10\n  def limit, do: @limit\nend\n",
	"case x do\n  {:ok, v} -> v\n  {:error, _} -> nil\nend\n",
	"receive do\n  {:msg, m} -> m\nafter\n  100 -> :timeout\nend\n",
	"try do\n  risky()\nrescue\n  e -> {:error, e}\nafter\n  cleanup()\nend\n",
	"fn a, b when a > b -> a\n   a, _ -> a\nend\n",
	"x in 1..10\n",
	"x in 10..1\n",
	"v in [1, 2, 3]\n",
	"[h | t] = list\n",
	"{a, b} = {1, 2.5}\n",
	"\"hello\" <> \"world\"\n",
	"'char list'\n",
	"\"\"\"\nheredoc body\n\"\"\"\n",
	"alias Deep.Nested.Mod, as: M\n",
	"apply(Mod, :fun, [1, 2])\n",
	"&local/2\n",
	"not (a and b) or c\n",
	"# just a comment\n",
	"0b101 + 0o17 + 0xFF + 1_000_000\n",
	"1.5e10 - 2.0E-3\n",
	"@attr\n",
	"if x, do: 1, else: 2\n",
}

// edgeSeeds are inputs that previously tripped recovery paths: open
// constructs, orphan terminators, interleaved delimiters.
var edgeSeeds = []string{
	"defmodule Foo do\n",
	"end\n",
	"case x do\n   1 ->\n",
	"(((((\n",
	")\n",
	"[1, 2\n",
	"{:a, \n",
	"\"unterminated\n",
	"'unterminated\n",
	":\n",
	"x in\n",
	"def f do :x end\n",
	"| | |\n",
	"..\n",
	"@\n",
	"do do do\n",
	"fn ->\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
	for _, s := range edgeSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
