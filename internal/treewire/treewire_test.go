package treewire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/lower"
	"github.com/l4u/elixir/internal/modenv"
	"github.com/l4u/elixir/internal/parser"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/source"
)

// lowerSource runs the real pipeline so the round trip sees trees the
// translator actually produces.
func lowerSource(t *testing.T, module, src string) []*core.Node {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("wire.ex", []byte(src)))
	bag := diag.NewBag(64)
	res := parser.Parse(f, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	tr := lower.New(f, modenv.New(module), lower.Options{Reporter: &diag.BagReporter{Bag: bag}})
	stmts, _, err := tr.Unit(res.Term, scope.New("wire.ex").WithModule(module))
	if err != nil {
		t.Fatalf("lower failed: %v", err)
	}
	return stmts
}

// Exercises every node kind the translator can emit.
const wireSource = `@limit 5
x = 1.5
s = "hi"
pair = {:ok, [1 | [2]]}
defmodule Sub do
  :ok
end
def pick(n) when n in 1..3 do
  case f(n) do
    {:ok, v} -> v
    _ -> nil
  end
end
g = fn y -> y end
r = function(:lists, map, 2)
try do
  work()
rescue
  e -> e
after
  done()
end
receive do
  m -> m
after
  100 -> :late
end
x in [1, 2]`

func TestMsgpackRoundTrip(t *testing.T) {
	stmts := lowerSource(t, "M", wireSource)
	want := core.PrintStmts(stmts)

	var buf bytes.Buffer
	if err := WriteMsgpack(&buf, FromCore("wire.ex", "M", stmts)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	tree, err := ReadMsgpack(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tree.Schema != Schema || tree.File != "wire.ex" || tree.Module != "M" {
		t.Errorf("envelope = %d %q %q", tree.Schema, tree.File, tree.Module)
	}
	back, err := tree.Core()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := core.PrintStmts(back); got != want {
		t.Errorf("round trip changed the tree\ngot  %q\nwant %q", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	stmts := lowerSource(t, "M", wireSource)
	want := core.PrintStmts(stmts)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, FromCore("wire.ex", "M", stmts)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "def"`) {
		t.Errorf("JSON output missing def node:\n%s", buf.String())
	}
	tree, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	back, err := tree.Core()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := core.PrintStmts(back); got != want {
		t.Errorf("round trip changed the tree\ngot  %q\nwant %q", got, want)
	}
}

// Zero-valued literal payloads must survive omitempty.
func TestZeroLiteralsRoundTrip(t *testing.T) {
	stmts := []*core.Node{
		core.NewInt(1, 0),
		core.NewFloat(1, 0),
		core.NewStr(1, ""),
		&core.Node{Kind: core.KindList, Line: 1, Data: core.ListData{}},
	}
	want := core.PrintStmts(stmts)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, FromCore("", "", stmts)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	tree, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	back, err := tree.Core()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := core.PrintStmts(back); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSchemaMismatch(t *testing.T) {
	tree := FromCore("", "", []*core.Node{core.NewNil(1)})
	tree.Schema = Schema + 1
	if _, err := tree.Core(); err == nil {
		t.Fatal("foreign schema accepted")
	}
}

func TestUnknownKind(t *testing.T) {
	tree := &Tree{Schema: Schema, Stmts: []*Node{{Kind: "portal"}}}
	if _, err := tree.Core(); err == nil {
		t.Fatal("unknown kind accepted")
	}
	tree = &Tree{Schema: Schema, Stmts: []*Node{{Kind: "def", Def: "defx"}}}
	if _, err := tree.Core(); err == nil {
		t.Fatal("unknown definition kind accepted")
	}
}
