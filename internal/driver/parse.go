package driver

import (
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/parser"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/syntax"
)

// ParseResult carries the quoted surface tree of one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Term    syntax.Term
	// Incomplete is set when input ended inside an open construct;
	// the repl keeps reading instead of reporting.
	Incomplete bool
	Bag        *diag.Bag
}

// Parse loads a file from disk and parses it into a quoted term.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fs.Get(fileID), maxDiagnostics), nil
}

// ParseSource parses an in-memory buffer, for the repl and tests.
func ParseSource(name string, src []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseFile(fs, fs.Get(fileID), maxDiagnostics)
}

func parseFile(fs *source.FileSet, file *source.File, maxDiagnostics int) *ParseResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	res := parser.Parse(file, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: uint(maxDiagnostics),
	})

	return &ParseResult{
		FileSet:    fs,
		File:       file,
		Term:       res.Term,
		Incomplete: res.Incomplete,
		Bag:        bag,
	}
}
