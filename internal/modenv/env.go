// Package modenv holds the per-unit module environment: the attribute
// table, the definitions table, the alias table and the scheduled-module
// queue. One Env exists per compilation unit and is owned by that unit's
// translator; units never share an Env, so none of this is locked.
package modenv

import (
	"fmt"
	"maps"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/syntax"
)

// Task is one queued module compilation: a nested defmodule body waiting
// to be translated as its own unit. The alias snapshot is taken at
// scheduling time, so the nested module reads its lexical parent's
// namespace exactly once; later alias writes in the parent do not leak.
type Task struct {
	Name    string
	Line    uint32
	Body    syntax.Term
	Aliases map[string]string
}

// Definition is one registered definition head.
type Definition struct {
	Kind  core.DefKind
	Name  string
	Arity int
	Line  uint32
}

// IsMacro reports whether the definition is a macro kind.
func (d Definition) IsMacro() bool {
	return d.Kind == core.DefMacro || d.Kind == core.DefMacroPrivate
}

type defKey struct {
	name  string
	arity int
}

// Env is the compile-time environment of one module unit.
type Env struct {
	// Module is the fully qualified module name, empty at the top level
	// of a file.
	Module string

	attrs    map[string]syntax.Term
	defs     map[defKey]Definition
	defOrder []defKey
	aliases  map[string]string
	tasks    []Task
}

func New(module string) *Env {
	return &Env{
		Module:  module,
		attrs:   make(map[string]syntax.Term),
		defs:    make(map[defKey]Definition),
		aliases: make(map[string]string),
	}
}

// ===== Attributes =====

// Put sets a module attribute. Values are translation-time constants;
// the caller validates that before storing.
func (e *Env) Put(name string, value syntax.Term) {
	e.attrs[name] = value
}

// Get reads the current value of a module attribute.
func (e *Env) Get(name string) (syntax.Term, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// ===== Definitions =====

// Define records a definition head. Additional clauses re-register
// freely; the same name and arity under a different kind is an error.
func (e *Env) Define(kind core.DefKind, name string, arity int, line uint32) error {
	k := defKey{name: name, arity: arity}
	if prev, ok := e.defs[k]; ok {
		if prev.Kind != kind {
			return fmt.Errorf("%s %s/%d already defined as %s", kind, name, arity, prev.Kind)
		}
		return nil
	}
	e.defs[k] = Definition{Kind: kind, Name: name, Arity: arity, Line: line}
	e.defOrder = append(e.defOrder, k)
	return nil
}

// Lookup returns the registered definition for name/arity.
func (e *Env) Lookup(name string, arity int) (Definition, bool) {
	d, ok := e.defs[defKey{name: name, arity: arity}]
	return d, ok
}

// Definitions returns every registered head in first-seen order.
func (e *Env) Definitions() []Definition {
	out := make([]Definition, len(e.defOrder))
	for i, k := range e.defOrder {
		out[i] = e.defs[k]
	}
	return out
}

// ===== Aliases =====

// PutAlias registers short as an abbreviation for full. A later
// registration of the same short name overwrites the earlier one.
func (e *Env) PutAlias(short, full string) {
	e.aliases[short] = full
}

// ResolveAlias resolves the first segment of an alias reference.
func (e *Env) ResolveAlias(first string) (string, bool) {
	full, ok := e.aliases[first]
	return full, ok
}

// AliasSnapshot returns a copy of the alias table.
func (e *Env) AliasSnapshot() map[string]string {
	return maps.Clone(e.aliases)
}

// SeedAliases installs a parent unit's snapshot into a fresh env.
func (e *Env) SeedAliases(snapshot map[string]string) {
	maps.Copy(e.aliases, snapshot)
}

// ===== Scheduled modules =====

// Schedule queues a nested module body for later translation, capturing
// the alias table as it stands now.
func (e *Env) Schedule(name string, line uint32, body syntax.Term) {
	e.tasks = append(e.tasks, Task{
		Name:    name,
		Line:    line,
		Body:    body,
		Aliases: maps.Clone(e.aliases),
	})
}

// Tasks returns the queued module tasks in scheduling order.
func (e *Env) Tasks() []Task {
	return e.tasks
}
