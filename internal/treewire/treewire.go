// Package treewire is the wire form of lowered trees: a flat,
// kind-tagged envelope that serializes to msgpack for the disk cache
// and to JSON for tooling. The in-memory model in internal/core stays
// interface-typed; this package owns the flattening.
package treewire

import (
	"fmt"

	"github.com/l4u/elixir/internal/core"
)

// Schema is the wire schema version. Bump it when the Node layout
// changes; readers reject other versions instead of misdecoding.
const Schema uint16 = 1

// Tree is the envelope for one lowered unit.
type Tree struct {
	Schema uint16  `json:"schema" msgpack:"schema"`
	File   string  `json:"file,omitempty" msgpack:"file"`
	Module string  `json:"module,omitempty" msgpack:"module"`
	Stmts  []*Node `json:"stmts" msgpack:"stmts"`
}

// Node is one wire node. Kind selects which fields are meaningful;
// everything else stays at its zero value and is omitted from JSON.
// Zero-valued payload fields are lossless because the decoder reads
// only the fields the kind names.
type Node struct {
	Kind string `json:"kind" msgpack:"kind"`
	Line uint32 `json:"line,omitempty" msgpack:"line"`

	// literal: Lit discriminates atom/int/float/str.
	Lit   string  `json:"lit,omitempty" msgpack:"lit,omitempty"`
	Atom  string  `json:"atom,omitempty" msgpack:"atom,omitempty"`
	Int   int64   `json:"int,omitempty" msgpack:"int,omitempty"`
	Float float64 `json:"float,omitempty" msgpack:"float,omitempty"`
	Str   string  `json:"str,omitempty" msgpack:"str,omitempty"`

	// var, op, local_call, remote_call, fun_ref, module, def
	Name string `json:"name,omitempty" msgpack:"name,omitempty"`

	// op, local_call, remote_call
	Args []*Node `json:"args,omitempty" msgpack:"args,omitempty"`

	// remote_call
	Target *Node `json:"target,omitempty" msgpack:"target,omitempty"`

	// fun_ref, def
	Module string `json:"module,omitempty" msgpack:"module,omitempty"`
	Arity  int    `json:"arity,omitempty" msgpack:"arity,omitempty"`

	// match
	Pattern *Node `json:"pattern,omitempty" msgpack:"pattern,omitempty"`
	Value   *Node `json:"value,omitempty" msgpack:"value,omitempty"`

	// list, tuple
	Elems []*Node `json:"elems,omitempty" msgpack:"elems,omitempty"`
	Tail  *Node   `json:"tail,omitempty" msgpack:"tail,omitempty"`

	// block
	Stmts []*Node `json:"stmts,omitempty" msgpack:"stmts,omitempty"`

	// case
	Subject *Node     `json:"subject,omitempty" msgpack:"subject,omitempty"`
	Clauses []*Clause `json:"clauses,omitempty" msgpack:"clauses,omitempty"`

	// try
	Body       []*Node   `json:"body,omitempty" msgpack:"body,omitempty"`
	Exceptions []*Clause `json:"exceptions,omitempty" msgpack:"exceptions,omitempty"`
	Else       []*Clause `json:"else,omitempty" msgpack:"else,omitempty"`
	After      []*Node   `json:"after,omitempty" msgpack:"after,omitempty"`

	// receive
	Timeout     *Node   `json:"timeout,omitempty" msgpack:"timeout,omitempty"`
	TimeoutBody []*Node `json:"timeout_body,omitempty" msgpack:"timeout_body,omitempty"`

	// def
	Def    string  `json:"def,omitempty" msgpack:"def,omitempty"`
	Clause *Clause `json:"clause,omitempty" msgpack:"clause,omitempty"`

	// alias
	Short string `json:"short,omitempty" msgpack:"short,omitempty"`
	Full  string `json:"full,omitempty" msgpack:"full,omitempty"`
}

// Clause is the wire form of core.Clause.
type Clause struct {
	Patterns []*Node `json:"patterns,omitempty" msgpack:"patterns,omitempty"`
	Guard    *Node   `json:"guard,omitempty" msgpack:"guard,omitempty"`
	Body     []*Node `json:"body,omitempty" msgpack:"body,omitempty"`
	Line     uint32  `json:"line,omitempty" msgpack:"line"`
}

// FromCore flattens a lowered statement list into its wire envelope.
func FromCore(file, module string, stmts []*core.Node) *Tree {
	return &Tree{Schema: Schema, File: file, Module: module, Stmts: toWireList(stmts)}
}

// Core rebuilds the lowered statement list. It fails on schema
// mismatches and on kinds this reader does not know.
func (t *Tree) Core() ([]*core.Node, error) {
	if t.Schema != Schema {
		return nil, fmt.Errorf("treewire: schema %d, reader supports %d", t.Schema, Schema)
	}
	return fromWireList(t.Stmts)
}

func toWireList(nodes []*core.Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = toWire(n)
	}
	return out
}

func toWireClauses(clauses []core.Clause) []*Clause {
	if len(clauses) == 0 {
		return nil
	}
	out := make([]*Clause, len(clauses))
	for i, c := range clauses {
		out[i] = &Clause{
			Patterns: toWireList(c.Patterns),
			Guard:    toWire(c.Guard),
			Body:     toWireList(c.Body),
			Line:     c.Line,
		}
	}
	return out
}

func toWire(n *core.Node) *Node {
	if n == nil {
		return nil
	}
	w := &Node{Line: n.Line}
	switch d := n.Data.(type) {
	case core.LiteralData:
		w.Kind = "literal"
		switch d.Kind {
		case core.LitAtom:
			w.Lit, w.Atom = "atom", d.Atom
		case core.LitInt:
			w.Lit, w.Int = "int", d.Int
		case core.LitFloat:
			w.Lit, w.Float = "float", d.Float
		case core.LitStr:
			w.Lit, w.Str = "str", d.Str
		}
	case core.VarData:
		w.Kind, w.Name = "var", d.Name
	case core.MatchData:
		w.Kind = "match"
		w.Pattern, w.Value = toWire(d.Pattern), toWire(d.Value)
	case core.OpData:
		w.Kind, w.Name, w.Args = "op", d.Name, toWireList(d.Args)
	case core.LocalCallData:
		w.Kind, w.Name, w.Args = "local_call", d.Name, toWireList(d.Args)
	case core.RemoteCallData:
		w.Kind, w.Name = "remote_call", d.Name
		w.Target, w.Args = toWire(d.Target), toWireList(d.Args)
	case core.FunRefData:
		w.Kind = "fun_ref"
		w.Module, w.Name, w.Arity = d.Module, d.Name, d.Arity
	case core.CaseData:
		w.Kind = "case"
		w.Subject, w.Clauses = toWire(d.Subject), toWireClauses(d.Clauses)
	case core.TryData:
		w.Kind = "try"
		w.Body = toWireList(d.Body)
		w.Exceptions = toWireClauses(d.Exceptions)
		w.Else = toWireClauses(d.Else)
		w.After = toWireList(d.After)
	case core.ReceiveData:
		w.Kind = "receive"
		w.Clauses = toWireClauses(d.Clauses)
		w.Timeout = toWire(d.Timeout)
		w.TimeoutBody = toWireList(d.TimeoutBody)
	case core.FunData:
		w.Kind, w.Clauses = "fn", toWireClauses(d.Clauses)
	case core.BlockData:
		w.Kind, w.Stmts = "block", toWireList(d.Stmts)
	case core.ListData:
		w.Kind = "list"
		w.Elems, w.Tail = toWireList(d.Elems), toWire(d.Tail)
	case core.TupleData:
		w.Kind, w.Elems = "tuple", toWireList(d.Elems)
	case core.ModuleData:
		w.Kind, w.Name = "module", d.Name
	case core.DefData:
		w.Kind = "def"
		w.Def, w.Name, w.Arity = d.Def.String(), d.Name, d.Arity
		cl := d.Clause
		w.Clause = &Clause{
			Patterns: toWireList(cl.Patterns),
			Guard:    toWire(cl.Guard),
			Body:     toWireList(cl.Body),
			Line:     cl.Line,
		}
	case core.AliasData:
		w.Kind = "alias"
		w.Short, w.Full = d.Short, d.Full
	}
	return w
}

func fromWireList(nodes []*Node) ([]*core.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*core.Node, len(nodes))
	for i, w := range nodes {
		n, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func fromWireClauses(clauses []*Clause) ([]core.Clause, error) {
	if len(clauses) == 0 {
		return nil, nil
	}
	out := make([]core.Clause, len(clauses))
	for i, w := range clauses {
		c, err := fromWireClause(w)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func fromWireClause(w *Clause) (core.Clause, error) {
	pats, err := fromWireList(w.Patterns)
	if err != nil {
		return core.Clause{}, err
	}
	guard, err := fromWire(w.Guard)
	if err != nil {
		return core.Clause{}, err
	}
	body, err := fromWireList(w.Body)
	if err != nil {
		return core.Clause{}, err
	}
	return core.Clause{Patterns: pats, Guard: guard, Body: body, Line: w.Line}, nil
}

var defKindNames = map[string]core.DefKind{
	"def":       core.DefFunction,
	"defp":      core.DefPrivate,
	"defmacro":  core.DefMacro,
	"defmacrop": core.DefMacroPrivate,
}

func fromWire(w *Node) (*core.Node, error) {
	if w == nil {
		return nil, nil
	}
	n := &core.Node{Line: w.Line}
	switch w.Kind {
	case "literal":
		n.Kind = core.KindLiteral
		switch w.Lit {
		case "atom":
			n.Data = core.LiteralData{Kind: core.LitAtom, Atom: w.Atom}
		case "int":
			n.Data = core.LiteralData{Kind: core.LitInt, Int: w.Int}
		case "float":
			n.Data = core.LiteralData{Kind: core.LitFloat, Float: w.Float}
		case "str":
			n.Data = core.LiteralData{Kind: core.LitStr, Str: w.Str}
		default:
			return nil, fmt.Errorf("treewire: unknown literal kind %q", w.Lit)
		}
	case "var":
		n.Kind, n.Data = core.KindVar, core.VarData{Name: w.Name}
	case "match":
		pat, err := fromWire(w.Pattern)
		if err != nil {
			return nil, err
		}
		val, err := fromWire(w.Value)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindMatch, core.MatchData{Pattern: pat, Value: val}
	case "op":
		args, err := fromWireList(w.Args)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindOp, core.OpData{Name: w.Name, Args: args}
	case "local_call":
		args, err := fromWireList(w.Args)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindLocalCall, core.LocalCallData{Name: w.Name, Args: args}
	case "remote_call":
		target, err := fromWire(w.Target)
		if err != nil {
			return nil, err
		}
		args, err := fromWireList(w.Args)
		if err != nil {
			return nil, err
		}
		n.Kind = core.KindRemoteCall
		n.Data = core.RemoteCallData{Target: target, Name: w.Name, Args: args}
	case "fun_ref":
		n.Kind = core.KindFunRef
		n.Data = core.FunRefData{Module: w.Module, Name: w.Name, Arity: w.Arity}
	case "case":
		subject, err := fromWire(w.Subject)
		if err != nil {
			return nil, err
		}
		clauses, err := fromWireClauses(w.Clauses)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindCase, core.CaseData{Subject: subject, Clauses: clauses}
	case "try":
		body, err := fromWireList(w.Body)
		if err != nil {
			return nil, err
		}
		exceptions, err := fromWireClauses(w.Exceptions)
		if err != nil {
			return nil, err
		}
		elseClauses, err := fromWireClauses(w.Else)
		if err != nil {
			return nil, err
		}
		after, err := fromWireList(w.After)
		if err != nil {
			return nil, err
		}
		n.Kind = core.KindTry
		n.Data = core.TryData{Body: body, Exceptions: exceptions, Else: elseClauses, After: after}
	case "receive":
		clauses, err := fromWireClauses(w.Clauses)
		if err != nil {
			return nil, err
		}
		timeout, err := fromWire(w.Timeout)
		if err != nil {
			return nil, err
		}
		tb, err := fromWireList(w.TimeoutBody)
		if err != nil {
			return nil, err
		}
		n.Kind = core.KindReceive
		n.Data = core.ReceiveData{Clauses: clauses, Timeout: timeout, TimeoutBody: tb}
	case "fn":
		clauses, err := fromWireClauses(w.Clauses)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindFun, core.FunData{Clauses: clauses}
	case "block":
		stmts, err := fromWireList(w.Stmts)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindBlock, core.BlockData{Stmts: stmts}
	case "list":
		elems, err := fromWireList(w.Elems)
		if err != nil {
			return nil, err
		}
		tail, err := fromWire(w.Tail)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindList, core.ListData{Elems: elems, Tail: tail}
	case "tuple":
		elems, err := fromWireList(w.Elems)
		if err != nil {
			return nil, err
		}
		n.Kind, n.Data = core.KindTuple, core.TupleData{Elems: elems}
	case "module":
		n.Kind, n.Data = core.KindModule, core.ModuleData{Name: w.Name}
	case "def":
		kind, ok := defKindNames[w.Def]
		if !ok {
			return nil, fmt.Errorf("treewire: unknown definition kind %q", w.Def)
		}
		if w.Clause == nil {
			return nil, fmt.Errorf("treewire: def node without a clause")
		}
		cl, err := fromWireClause(w.Clause)
		if err != nil {
			return nil, err
		}
		n.Kind = core.KindDef
		n.Data = core.DefData{Def: kind, Name: w.Name, Arity: w.Arity, Clause: cl}
	case "alias":
		n.Kind, n.Data = core.KindAlias, core.AliasData{Short: w.Short, Full: w.Full}
	default:
		return nil, fmt.Errorf("treewire: unknown node kind %q", w.Kind)
	}
	return n, nil
}
