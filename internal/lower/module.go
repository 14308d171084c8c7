package lower

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// defmodule lowers a module definition. The body is not lowered here:
// it is scheduled on the environment with a snapshot of the current
// aliases, and the driver compiles it as its own unit. What remains in
// the surrounding tree is the module wrapper node, preceded by an
// implicit alias when nesting changed the effective name.
func (t *Translator) defmodule(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: defmodule is not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "defmodule is not a valid pattern")
	}
	if s.InsideFunction() {
		return nil, s, t.fail(diag.LowModuleInFunction, line, "cannot define a module inside a function")
	}
	if len(n.Args) != 2 {
		if len(n.Args) < 2 {
			return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in defmodule")
		}
		return nil, s, t.fail(diag.LowInvalidArgs, line, "defmodule expects a module name and a do block")
	}
	sections, ok := formSections(n)
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in defmodule")
	}
	body, ok := sectionValue(sections, "do")
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in defmodule")
	}
	for _, item := range sections {
		if p := item.(syntax.Pair); p.Key != "do" {
			return nil, s, t.fail(diag.LowInvalidArgs, line, "unexpected %s block in defmodule", p.Key)
		}
	}

	var name, aliasShort, aliasFull string
	switch ref := n.Args[0].(type) {
	case *syntax.Node:
		if !ref.IsCallNamed(syntax.TagAliases) {
			return nil, s, t.fail(diag.LowInvalidModuleName, line, "invalid module name: expected a compile-time alias or atom")
		}
		segs, err := t.aliasSegments(ref, line)
		if err != nil {
			return nil, s, err
		}
		rooted := false
		if segs[0] == "Elixir" && len(segs) > 1 {
			segs = segs[1:]
			rooted = true
		} else if t.env != nil {
			// A registered alias expands to an absolute name.
			if full, ok := t.env.ResolveAlias(segs[0]); ok {
				segs[0] = full
				rooted = true
			}
		}
		name = strings.Join(segs, ".")
		if !rooted && s.InsideModule() {
			aliasShort = segs[0]
			aliasFull = s.Module + "." + segs[0]
			name = s.Module + "." + name
		}
	case syntax.Atom:
		// Atom references name the module verbatim, with no nesting.
		name = string(ref)
	default:
		return nil, s, t.fail(diag.LowInvalidModuleName, line, "invalid module name: expected a compile-time alias or atom")
	}

	if t.env != nil {
		if aliasShort != "" {
			t.env.PutAlias(aliasShort, aliasFull)
		}
		t.env.Schedule(name, line, body)
	}
	s2 := s.Schedule(name)

	mod := &core.Node{Kind: core.KindModule, Line: line, Data: core.ModuleData{Name: name}}
	if aliasShort == "" {
		return mod, s2, nil
	}
	al := &core.Node{Kind: core.KindAlias, Line: line, Data: core.AliasData{Short: aliasShort, Full: aliasFull}}
	return core.NewBlock(line, al, mod), s2, nil
}

func (t *Translator) aliasSegments(ref *syntax.Node, line uint32) ([]string, error) {
	if len(ref.Args) == 0 {
		return nil, t.fail(diag.LowInvalidModuleName, line, "invalid module reference")
	}
	segs := make([]string, 0, len(ref.Args))
	for _, a := range ref.Args {
		atom, ok := a.(syntax.Atom)
		if !ok {
			return nil, t.fail(diag.LowInvalidModuleName, line, "invalid module reference")
		}
		segs = append(segs, string(atom))
	}
	return segs, nil
}

var defKinds = map[syntax.Atom]core.DefKind{
	"def":       core.DefFunction,
	"defp":      core.DefPrivate,
	"defmacro":  core.DefMacro,
	"defmacrop": core.DefMacroPrivate,
}

// define lowers one def/defp/defmacro/defmacrop clause. Each surface
// clause registers with the environment and lowers to its own Def node;
// grouping clauses of the same name and arity is the backend's job.
func (t *Translator) define(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	kindName := string(n.Tag)
	kind := defKinds[n.Tag]

	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: %s is not allowed", kindName)
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "%s is not a valid pattern", kindName)
	}
	if s.InsideFunction() {
		return nil, s, t.fail(diag.LowNestedDef, line, "cannot define %s inside another definition", kindName)
	}
	if !s.InsideModule() {
		return nil, s, t.fail(diag.LowDefOutsideModule, line, "cannot define %s outside a module", kindName)
	}
	if len(n.Args) != 2 {
		if len(n.Args) < 2 {
			return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in %s", kindName)
		}
		return nil, s, t.fail(diag.LowInvalidArgs, line, "%s expects a definition head and a do block", kindName)
	}
	sections, ok := formSections(n)
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in %s", kindName)
	}
	doBody, ok := sectionValue(sections, "do")
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in %s", kindName)
	}
	for _, item := range sections {
		if p := item.(syntax.Pair); p.Key != "do" {
			return nil, s, t.fail(diag.LowInvalidArgs, line, "unexpected %s block in %s", p.Key, kindName)
		}
	}

	headTerm := n.Args[0]
	var guardTerm syntax.Term
	if w, okW := headTerm.(*syntax.Node); okW && w.IsCallNamed(syntax.TagWhen) && len(w.Args) == 2 {
		headTerm = w.Args[0]
		guardTerm = w.Args[1]
	}
	head, okH := headTerm.(*syntax.Node)
	if !okH {
		return nil, s, t.fail(diag.LowInvalidDefName, line, "invalid definition head")
	}
	if head.IsCallNamed(syntax.TagAliases) {
		return nil, s, t.fail(diag.LowInvalidDefName, line, "invalid definition name: expected a lowercase name")
	}
	name := string(head.Tag)
	if r, _ := utf8.DecodeRuneInString(name); name == "" || unicode.IsUpper(r) {
		return nil, s, t.fail(diag.LowInvalidDefName, line, "invalid definition name: expected a lowercase name")
	}
	params := head.Args
	arity := len(params)

	if err := t.env.Define(kind, name, arity, line); err != nil {
		return nil, s, t.fail(diag.LowDefKindConflict, line, "%s", err)
	}

	// The body lowers in a fresh variable scope: definitions do not
	// see module-level bindings.
	fs := scope.New(s.File).WithModule(s.Module).WithFunction(name, arity)
	fs.Counter = s.Counter

	ps, _ := fs.WithContext(scope.ContextMatch).DrainGuards()
	patNodes, ps2, err := t.args(params, ps, line)
	if err != nil {
		return nil, s, err
	}
	ps2, extra := ps2.DrainGuards()

	var guard *core.Node
	if guardTerm != nil {
		guard, ps2, err = t.guardExpr(guardTerm, ps2, line)
		if err != nil {
			return nil, s, err
		}
	}
	full := conjoinGuards(line, extra, guard)

	bodyNode, bs, err := t.expr(doBody, ps2.WithContext(scope.ContextNormal), line)
	if err != nil {
		return nil, s, err
	}

	cl := core.Clause{Patterns: patNodes, Guard: full, Body: core.Pack(bodyNode), Line: line}
	data := core.DefData{Def: kind, Name: name, Arity: arity, Clause: cl}
	return &core.Node{Kind: core.KindDef, Line: line, Data: data}, s.Advance(bs), nil
}

// aliasForm lowers an explicit alias declaration, registering the short
// name for the rest of the unit and leaving an Alias node in the tree.
func (t *Translator) aliasForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: alias is not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "alias is not a valid pattern")
	}
	if len(n.Args) != 1 && len(n.Args) != 2 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "alias expects a module and an optional as: option")
	}
	target, ok := n.Args[0].(*syntax.Node)
	if !ok || !target.IsCallNamed(syntax.TagAliases) {
		return nil, s, t.fail(diag.LowInvalidModuleName, line, "alias expects a compile-time module reference")
	}
	full, err := t.resolveAlias(target, line)
	if err != nil {
		return nil, s, err
	}
	lastSeg, _ := target.Args[len(target.Args)-1].(syntax.Atom)
	short := string(lastSeg)

	if len(n.Args) == 2 {
		opts, ok := n.Args[1].(syntax.List)
		if !ok {
			return nil, s, t.fail(diag.LowInvalidArgs, line, "alias expects a module and an optional as: option")
		}
		for _, item := range opts {
			p, okP := item.(syntax.Pair)
			if !okP || p.Key != "as" {
				return nil, s, t.fail(diag.LowInvalidArgs, line, "alias expects a module and an optional as: option")
			}
			asNode, okAs := p.Value.(*syntax.Node)
			if !okAs || !asNode.IsCallNamed(syntax.TagAliases) || len(asNode.Args) != 1 {
				return nil, s, t.fail(diag.LowInvalidArgs, line, "the as: option of alias expects a single alias segment")
			}
			seg, _ := asNode.Args[0].(syntax.Atom)
			short = string(seg)
		}
	}
	if short == "" {
		return nil, s, t.fail(diag.LowInvalidModuleName, line, "alias expects a compile-time module reference")
	}

	if t.env != nil {
		t.env.PutAlias(short, full)
	}
	data := core.AliasData{Short: short, Full: full}
	return &core.Node{Kind: core.KindAlias, Line: line, Data: data}, s, nil
}
