package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/driver"
	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/treewire"
)

func fakeResult(t *testing.T) *driver.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.ex", []byte("1 + 2\n"))
	file := fs.Get(id)
	return &driver.Result{
		FileSet: fs,
		File:    file,
		Units: []driver.Unit{
			{Module: "", Line: 1, Stmts: []*core.Node{
				core.NewOp(1, "+", core.NewInt(1, 1), core.NewInt(1, 2)),
			}},
		},
		Bag: diag.NewBag(10),
	}
}

func TestEmitUnitsText(t *testing.T) {
	res := fakeResult(t)

	var buf bytes.Buffer
	if err := emitUnits(&buf, res, "text", false); err != nil {
		t.Fatalf("emitUnits: %v", err)
	}
	if got := buf.String(); got != "(+ 1 2)\n" {
		t.Errorf("text output = %q", got)
	}
}

func TestEmitUnitsTextHeadersForMultipleUnits(t *testing.T) {
	res := fakeResult(t)
	res.Units = append(res.Units, driver.Unit{
		Module: "Foo",
		Line:   1,
		Stmts:  []*core.Node{core.NewAtom(1, "ok")},
	})

	var buf bytes.Buffer
	if err := emitUnits(&buf, res, "text", false); err != nil {
		t.Fatalf("emitUnits: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "== main.ex ==\n(+ 1 2)\n") {
		t.Errorf("missing file unit header in:\n%s", out)
	}
	if !strings.Contains(out, "== Foo ==\n:ok\n") {
		t.Errorf("missing module unit header in:\n%s", out)
	}

	buf.Reset()
	if err := emitUnits(&buf, res, "text", true); err != nil {
		t.Fatalf("emitUnits quiet: %v", err)
	}
	if strings.Contains(buf.String(), "==") {
		t.Errorf("quiet output still has headers:\n%s", buf.String())
	}
}

func TestEmitUnitsSkipsFailedUnits(t *testing.T) {
	res := fakeResult(t)
	res.Units = append(res.Units, driver.Unit{Module: "Broken", Line: 3, Stmts: nil})

	var buf bytes.Buffer
	if err := emitUnits(&buf, res, "text", true); err != nil {
		t.Fatalf("emitUnits: %v", err)
	}
	if got := buf.String(); got != "(+ 1 2)\n" {
		t.Errorf("failed unit leaked into output: %q", got)
	}
}

func TestEmitUnitsJSON(t *testing.T) {
	res := fakeResult(t)

	var buf bytes.Buffer
	if err := emitUnits(&buf, res, "json", false); err != nil {
		t.Fatalf("emitUnits: %v", err)
	}

	var trees []*treewire.Tree
	if err := json.Unmarshal(buf.Bytes(), &trees); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(trees) != 1 || trees[0].File != "main.ex" {
		t.Fatalf("trees = %+v", trees)
	}
	stmts, err := trees[0].Core()
	if err != nil {
		t.Fatalf("Core: %v", err)
	}
	if got := core.PrintStmts(stmts); got != "(+ 1 2)" {
		t.Errorf("round trip = %q", got)
	}
}

func TestEmitUnitsMsgpack(t *testing.T) {
	res := fakeResult(t)

	var buf bytes.Buffer
	if err := emitUnits(&buf, res, "msgpack", false); err != nil {
		t.Fatalf("emitUnits: %v", err)
	}

	tree, err := treewire.ReadMsgpack(&buf)
	if err != nil {
		t.Fatalf("ReadMsgpack: %v", err)
	}
	stmts, err := tree.Core()
	if err != nil {
		t.Fatalf("Core: %v", err)
	}
	if got := core.PrintStmts(stmts); got != "(+ 1 2)" {
		t.Errorf("round trip = %q", got)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"fancy", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestErrorCount(t *testing.T) {
	if errorCount(nil) != 0 {
		t.Error("nil bag should count zero")
	}

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LowDeprecatedRange, source.Span{}, "w"))
	bag.Add(diag.New(diag.SevError, diag.SynExpectExpression, source.Span{}, "e1"))
	bag.Add(diag.New(diag.SevError, diag.LowDefOutsideModule, source.Span{}, "e2"))
	if got := errorCount(bag); got != 2 {
		t.Errorf("errorCount = %d, want 2", got)
	}
}

func TestIsReplCommand(t *testing.T) {
	for _, s := range []string{":quit", ":q", ":exit", ":help"} {
		if !isReplCommand(s) {
			t.Errorf("%q should be a repl command", s)
		}
	}
	// Atom expressions must reach the pipeline untouched.
	for _, s := range []string{":ok", ":error", "quit", "x = 1"} {
		if isReplCommand(s) {
			t.Errorf("%q must not be treated as a command", s)
		}
	}
}

func TestHistoryPath(t *testing.T) {
	if got := historyPath(project.Config{HistoryFile: "/tmp/h"}); got != "/tmp/h" {
		t.Errorf("explicit path = %q", got)
	}

	got := historyPath(project.Config{HistoryFile: "~/custom_history"})
	if strings.HasPrefix(got, "~") {
		t.Errorf("tilde not expanded: %q", got)
	}
	if !strings.HasSuffix(got, "custom_history") {
		t.Errorf("suffix lost: %q", got)
	}

	def := historyPath(project.Config{})
	if def != "" && !strings.HasSuffix(def, ".elx_history") {
		t.Errorf("default = %q", def)
	}
}

func TestRenderVersionJSONUsesPlainVersion(t *testing.T) {
	info := versionInfo{Colored: "\x1b[1m1.2.3\x1b[0m", Plain: "1.2.3", GitCommit: "abc"}

	var buf bytes.Buffer
	err := renderVersionJSON(&buf, info, versionOptions{showHash: true})
	if err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}

	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "elx" || payload.Version != "1.2.3" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.GitCommit != "abc" {
		t.Errorf("git commit = %q", payload.GitCommit)
	}
	if payload.BuildDate != "" {
		t.Errorf("date leaked without --date: %q", payload.BuildDate)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("ANSI escapes in JSON output: %q", buf.String())
	}
}

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Colored: "1.2.3", Plain: "1.2.3", GitCommit: "abc", BuildDate: "2024-01-15"}

	var buf bytes.Buffer
	renderVersionPretty(&buf, info, versionOptions{showHash: true, showDate: true})
	out := buf.String()
	if !strings.Contains(out, "elx 1.2.3") {
		t.Errorf("missing banner in %q", out)
	}
	if !strings.Contains(out, "commit: abc") || !strings.Contains(out, "2024-01-15") {
		t.Errorf("missing metadata in %q", out)
	}

	buf.Reset()
	renderVersionPretty(&buf, info, versionOptions{})
	if !strings.Contains(buf.String(), "--full") {
		t.Errorf("hint line missing in %q", buf.String())
	}
}
