// Package driver wires the pipeline stages together: it loads sources,
// tokenizes, parses, and runs the lowering stage over every compilation
// unit a file produces. A file is one unit; every defmodule the
// translator meets schedules another, so one input fans out into a
// queue of units the driver drains concurrently. Diagnostics from all
// units merge back into a single bag in scheduling order, so output is
// deterministic regardless of worker count.
package driver

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/source"

	"github.com/l4u/elixir/internal/buildpipeline"
)

// Options adjusts a driver run.
type Options struct {
	// MaxDiagnostics caps every per-unit bag and the merged bag.
	// Zero falls back to DefaultMaxDiagnostics.
	MaxDiagnostics int

	// Jobs bounds the concurrent unit workers. Zero or negative uses
	// GOMAXPROCS.
	Jobs int

	// Internal compiles in bootstrap mode: documentation attributes
	// are elided instead of stored.
	Internal bool

	// Cache, when non-nil, serves lowered trees for unchanged units
	// and stores fresh ones. A nil cache disables caching entirely.
	Cache *DiskCache

	// Sink receives progress events per unit and stage. May be nil.
	Sink buildpipeline.ProgressSink
}

// DefaultMaxDiagnostics is the bag cap used when Options leaves it zero.
const DefaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Unit is the lowered outcome of one compilation unit: the file's
// top-level statements, or the body of one scheduled module.
type Unit struct {
	// Module is the fully qualified module name, empty for the
	// file's top level.
	Module string
	// Line is where the unit's defmodule sits, 1 for the top level.
	Line uint32
	// Stmts is the lowered statement list. Nil after a failed unit.
	Stmts []*core.Node
	// Cached is set when the unit was served from the disk cache.
	Cached bool
}

// Result is the outcome of lowering one file and everything it
// scheduled.
type Result struct {
	FileSet *source.FileSet
	File    *source.File

	// Units holds every compiled unit in scheduling order: the top
	// level first, then modules in the order their defmodule forms
	// were met, breadth first.
	Units []Unit

	// Bag carries the merged diagnostics of all units.
	Bag *diag.Bag

	// Timings accumulates per-stage wall time across units.
	Timings *buildpipeline.Timings
}

// HasErrors reports whether any unit produced an error diagnostic.
func (r *Result) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// Stmts returns the lowered statements of all units flattened in
// scheduling order. Convenient for printing a whole run.
func (r *Result) Stmts() []*core.Node {
	var out []*core.Node
	for i := range r.Units {
		out = append(out, r.Units[i].Stmts...)
	}
	return out
}
