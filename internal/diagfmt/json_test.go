package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/token"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	fs, fileID := testFixture()

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnknownChar,
		source.Span{File: fileID, Start: 10, End: 11},
		"unknown character '$'",
	))
	d := diag.New(
		diag.SevWarning,
		diag.LowDeprecatedRange,
		source.Span{File: fileID, Start: 0, End: 1},
		"descending range",
	)
	d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: fileID, Start: 2, End: 3}, Msg: "see here"})
	bag.Add(d)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})

	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "LEX1001" {
		t.Errorf("first = %s %s", first.Severity, first.Code)
	}
	if first.Location.File != "main.ex" || first.Location.StartByte != 10 || first.Location.EndByte != 11 {
		t.Errorf("location = %+v", first.Location)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 5 {
		t.Errorf("positions = %+v", first.Location)
	}

	second := out.Diagnostics[1]
	if second.Severity != "WARNING" {
		t.Errorf("second severity = %s", second.Severity)
	}
	if len(second.Notes) != 1 || second.Notes[0].Message != "see here" {
		t.Errorf("notes = %+v", second.Notes)
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	fs, fileID := testFixture()

	bag := diag.NewBag(10)
	for i := uint32(0); i < 5; i++ {
		bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken,
			source.Span{File: fileID, Start: i, End: i + 1}, "boom"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d after Max=2", out.Count)
	}
	if bag.Len() != 5 {
		t.Fatalf("bag itself was truncated to %d", bag.Len())
	}
}

func TestJSONEncodes(t *testing.T) {
	fs, fileID := testFixture()

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynExpectExpression,
		source.Span{File: fileID, Start: 0, End: 1}, "expected expression"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Count != 1 || decoded.Diagnostics[0].Code != "SYN2003" {
		t.Errorf("decoded = %+v", decoded)
	}
	// Positions were not requested, so they must be absent.
	if strings.Contains(buf.String(), "start_line") {
		t.Errorf("unexpected positions in:\n%s", buf.String())
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.ex", []byte("x = 1"))

	tokens := []token.Token{
		{Kind: token.Ident, Text: "x", Span: source.Span{File: fileID, Start: 0, End: 1}},
		{Kind: token.Assign, Span: source.Span{File: fileID, Start: 2, End: 3},
			Leading: []token.Trivia{{Kind: token.TriviaSpace}}},
		{Kind: token.IntLit, Text: "1", Span: source.Span{File: fileID, Start: 4, End: 5},
			Leading: []token.Trivia{{Kind: token.TriviaSpace}}},
		{Kind: token.EOF, Span: source.Span{File: fileID, Start: 5, End: 5}},
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `Ident`) || !strings.Contains(out, `"x"`) {
		t.Errorf("missing ident line in:\n%s", out)
	}
	if !strings.Contains(out, "at 1:1-1:2") {
		t.Errorf("missing position in:\n%s", out)
	}
	if !strings.Contains(out, "(leading: Space)") {
		t.Errorf("missing trivia in:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("got %d lines, want 4:\n%s", lines, out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tokens := []token.Token{
		{Kind: token.AtomLit, Text: "ok", Span: source.Span{Start: 0, End: 3}},
		{Kind: token.EOF, Span: source.Span{Start: 3, End: 3}},
	}

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}

	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d tokens, want 2", len(decoded))
	}
	if decoded[0].Kind != "AtomLit" || decoded[0].Text != "ok" {
		t.Errorf("first = %+v", decoded[0])
	}
	if decoded[1].Kind != "EOF" {
		t.Errorf("second = %+v", decoded[1])
	}
}
