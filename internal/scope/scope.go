// Package scope carries the translation-time context threaded through
// every lowering call: where we are (module, function, file), what kind
// of expression position we are in (normal, guard, match), and what the
// translation has accumulated so far (bindings, synthetic-name counter,
// extra guards, scheduled nested modules).
//
// Scopes are values. Every method returns a fresh Scope and leaves the
// receiver untouched, so sibling subtrees can be lowered from the same
// starting scope and reconciled afterwards with Merge.
package scope

import (
	"maps"
	"slices"
	"strconv"

	"github.com/l4u/elixir/internal/core"
)

// Context enumerates expression positions with distinct legality rules.
type Context uint8

const (
	ContextNormal Context = iota // ordinary expression position
	ContextGuard                 // inside a clause guard
	ContextMatch                 // inside a pattern
)

func (c Context) String() string {
	switch c {
	case ContextNormal:
		return "normal"
	case ContextGuard:
		return "guard"
	case ContextMatch:
		return "match"
	default:
		return "invalid"
	}
}

// FunctionRef identifies the enclosing definition. The zero value means
// translation is not inside a function body.
type FunctionRef struct {
	Name  string
	Arity int
}

// IsSet reports whether the reference names a function.
func (f FunctionRef) IsSet() bool { return f.Name != "" }

// Scope is the per-call-site translation context.
//
// The lexical fields (File, Module, Function, Context, Noname) describe
// the position being translated and are controlled by the caller via the
// With* forks. The accumulator fields (Counter, Vars, ExtraGuards,
// Scheduled) flow upward through returned scopes and are reconciled with
// Merge.
type Scope struct {
	File     string
	Module   string // fully qualified enclosing module, "" at top level
	Function FunctionRef
	Context  Context
	Noname   bool // bindings introduced here must not escape

	Counter     int
	Vars        map[string]bool
	ExtraGuards []*core.Node
	Scheduled   []string
}

// New returns the scope a compilation unit starts from.
func New(file string) Scope {
	return Scope{File: file}
}

// ===== Lexical forks =====

// WithModule returns s positioned inside the named module.
func (s Scope) WithModule(name string) Scope {
	s.Module = name
	return s
}

// WithFunction returns s positioned inside a definition body.
func (s Scope) WithFunction(name string, arity int) Scope {
	s.Function = FunctionRef{Name: name, Arity: arity}
	return s
}

// WithContext returns s repositioned into the given expression context.
func (s Scope) WithContext(c Context) Scope {
	s.Context = c
	return s
}

// WithNoname returns s with escape-free binding mode set or cleared.
func (s Scope) WithNoname(v bool) Scope {
	s.Noname = v
	return s
}

// InsideModule reports whether translation is under a module definition.
func (s Scope) InsideModule() bool { return s.Module != "" }

// InsideFunction reports whether translation is under a definition body.
func (s Scope) InsideFunction() bool { return s.Function.IsSet() }

// InGuard reports whether translation is in guard position.
func (s Scope) InGuard() bool { return s.Context == ContextGuard }

// InMatch reports whether translation is in pattern position.
func (s Scope) InMatch() bool { return s.Context == ContextMatch }

// ===== Accumulators =====

// Bind records a variable binding. Under Noname the binding is not
// recorded, so it stays invisible to scopes merged later.
func (s Scope) Bind(name string) Scope {
	if s.Noname {
		return s
	}
	vars := maps.Clone(s.Vars)
	if vars == nil {
		vars = make(map[string]bool, 1)
	}
	vars[name] = true
	s.Vars = vars
	return s
}

// Bound reports whether the variable has been bound in this scope chain.
func (s Scope) Bound(name string) bool { return s.Vars[name] }

// BuildVar mints a synthetic variable name ("_in@1" for hint "in"). The
// counter advances even under Noname so names stay unique; only the
// binding record is suppressed.
func (s Scope) BuildVar(hint string) (Scope, string) {
	s.Counter++
	name := "_" + hint + "@" + strconv.Itoa(s.Counter)
	return s.Bind(name), name
}

// PushGuard appends a lowered condition to the extra-guard accumulator.
// Membership tests in pattern position stash their expansion here; the
// clause assembler drains it into the clause guard.
func (s Scope) PushGuard(g *core.Node) Scope {
	guards := slices.Clone(s.ExtraGuards)
	s.ExtraGuards = append(guards, g)
	return s
}

// DrainGuards removes and returns the accumulated extra guards.
func (s Scope) DrainGuards() (Scope, []*core.Node) {
	guards := s.ExtraGuards
	s.ExtraGuards = nil
	return s, guards
}

// Schedule records a nested module for out-of-line compilation. Names
// are kept in first-seen order without duplicates.
func (s Scope) Schedule(module string) Scope {
	if slices.Contains(s.Scheduled, module) {
		return s
	}
	s.Scheduled = append(slices.Clone(s.Scheduled), module)
	return s
}

// Advance carries forward everything Merge does except the bindings.
// Definition and fn bodies merge this way: their variables are local,
// but the counter and scheduled-module worklist must still flow up.
func (s Scope) Advance(other Scope) Scope {
	vars := s.Vars
	s = s.Merge(other)
	s.Vars = vars
	return s
}

// Merge folds the accumulated state of a scope returned by a
// sub-translation into s: bindings are united, the counter advances to
// the larger value, scheduled modules are united in order, and the
// extra-guard list advances to the longer of the two (sub-translations
// only ever append, so the lists share the caller's prefix). The lexical
// fields stay the receiver's, which restores the caller's position after
// a sub-translation ran under a forked context.
func (s Scope) Merge(other Scope) Scope {
	if other.Counter > s.Counter {
		s.Counter = other.Counter
	}
	if len(other.Vars) > 0 {
		vars := maps.Clone(s.Vars)
		if vars == nil {
			vars = make(map[string]bool, len(other.Vars))
		}
		maps.Copy(vars, other.Vars)
		s.Vars = vars
	}
	if len(other.ExtraGuards) > len(s.ExtraGuards) {
		s.ExtraGuards = other.ExtraGuards
	}
	for _, m := range other.Scheduled {
		s = s.Schedule(m)
	}
	return s
}
