package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/source"
)

func testFixture() (*source.FileSet, source.FileID) {
	fs := source.NewFileSet()
	content := []byte("x = 1\ny = $\n")
	fileID := fs.AddVirtual("/home/user/project/src/main.ex", content)
	fs.SetBaseDir("/home/user/project")
	return fs, fileID
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	fs, fileID := testFixture()

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnknownChar,
		source.Span{File: fileID, Start: 10, End: 11},
		"unknown character '$'",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "main.ex:2:5: ERROR LEX1001: unknown character '$'") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, " 2 | y = $\n   |     ^\n") {
		t.Errorf("missing underline in:\n%s", out)
	}
	if !strings.Contains(out, " 1 | x = 1") {
		t.Errorf("missing context line in:\n%s", out)
	}
}

func TestPrettyPathModes(t *testing.T) {
	fs, fileID := testFixture()

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 4, End: 5},
		"unterminated string",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute path", PathModeAbsolute, "/home/user/project/src/main.ex"},
		{"relative path", PathModeRelative, "src/main.ex"},
		{"basename only", PathModeBasename, "main.ex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR") || !strings.Contains(out, "LEX1002") {
				t.Errorf("missing severity or code in:\n%s", out)
			}
		})
	}
}

func TestPrettyMultilineSpanStopsAtLineEnd(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.ex", []byte("foo(\n  1\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.SynTokenMissing,
		source.Span{File: fileID, Start: 0, End: 8},
		"missing terminator: )",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()

	// The underline covers only the first spanned line.
	if !strings.Contains(out, " 1 | foo(\n   | ^~~~\n") {
		t.Errorf("bad underline in:\n%s", out)
	}
}

func TestPrettyNoSpan(t *testing.T) {
	fs, _ := testFixture()

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "failed to load file: boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "ERROR IO4001: failed to load file: boom") {
		t.Errorf("missing plain header in:\n%s", out)
	}
	if strings.Contains(out, "main.ex") {
		t.Errorf("span-less diagnostic got a path in:\n%s", out)
	}
	if strings.Contains(out, "|") {
		t.Errorf("span-less diagnostic got an excerpt in:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, fileID := testFixture()

	d := diag.New(
		diag.SevWarning,
		diag.LowDeprecatedRange,
		source.Span{File: fileID, Start: 6, End: 11},
		"descending ranges in 'in' are deprecated",
	)
	d.Notes = append(d.Notes, diag.Note{
		Span: source.Span{File: fileID, Start: 0, End: 1},
		Msg:  "bound defined here",
	})
	d = d.WithFix("swap the bounds", diag.FixEdit{
		Span:    source.Span{File: fileID, Start: 6, End: 11},
		NewText: "1..3",
	})

	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	out := buf.String()

	if !strings.Contains(out, "WARNING LOW3901") {
		t.Errorf("missing warning header in:\n%s", out)
	}
	if !strings.Contains(out, "main.ex:1:1: note: bound defined here") {
		t.Errorf("missing note in:\n%s", out)
	}
	if !strings.Contains(out, "fix: swap the bounds") {
		t.Errorf("missing fix in:\n%s", out)
	}

	// Hidden without the flags.
	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out = buf.String()
	if strings.Contains(out, "note:") || strings.Contains(out, "fix:") {
		t.Errorf("notes or fixes shown without flags in:\n%s", out)
	}
}
