package syntax

// Term is one node of a quoted surface tree. The sum is sealed: Atom, Int,
// Float, Str, List, Pair and *Node are the only implementations.
type Term interface {
	isTerm()
}

// Atom is a symbolic constant: :ok, alias segments, operator names, and the
// booleans and nil, which are just the atoms of those names.
type Atom string

// Int is an integer literal.
type Int int64

// Float is a float literal.
type Float float64

// Str is a string literal with escapes already resolved.
type Str string

// List is an ordered sequence of terms. Keyword lists are Lists whose every
// element is a Pair.
type List []Term

// Pair is a keyword-list entry (`key: value`).
type Pair struct {
	Key   Atom
	Value Term
}

// Meta is the positional metadata a Node carries.
type Meta struct {
	Line   uint32
	Column uint32
}

// Node is the tagged form {tag, meta, args}.
//
// Args == nil means an identifier occurrence (variable or zero-arg
// candidate); Args != nil, possibly empty, means a call shape. Everything
// the parser produces beyond bare literals is a Node: operator
// applications, local and remote calls, blocks, clauses, special forms.
type Node struct {
	Tag  Atom
	Meta Meta
	Args []Term
}

func (Atom) isTerm()  {}
func (Int) isTerm()   {}
func (Float) isTerm() {}
func (Str) isTerm()   {}
func (List) isTerm()  {}
func (Pair) isTerm()  {}
func (*Node) isTerm() {}

// Well-known tags of the quoted convention.
const (
	// TagAliases marks an alias reference; Args holds the segment atoms.
	TagAliases Atom = "__aliases__"
	// TagBlock marks a statement sequence; Args holds the statements.
	TagBlock Atom = "__block__"
	// TagClause marks one `patterns -> body` clause; Args is [List patterns, body].
	TagClause Atom = "->"
	// TagWhen wraps a guarded clause head; Args is [head, guard].
	TagWhen Atom = "when"
	// TagDot marks a remote call; Args is [target, fun Atom, List args].
	TagDot Atom = "."
	// TagTuple marks a tuple constructor; Args holds the elements.
	TagTuple Atom = "{}"
)

const (
	AtomTrue  Atom = "true"
	AtomFalse Atom = "false"
	AtomNil   Atom = "nil"
	// AtomUnderscore is the wildcard identifier.
	AtomUnderscore Atom = "_"
)

// NewVar builds an identifier occurrence (Args stays nil).
func NewVar(name Atom, meta Meta) *Node {
	return &Node{Tag: name, Meta: meta}
}

// NewCall builds a call-shaped node. Args is never nil, so a zero-argument
// call stays distinguishable from a variable.
func NewCall(tag Atom, meta Meta, args ...Term) *Node {
	if args == nil {
		args = []Term{}
	}
	return &Node{Tag: tag, Meta: meta, Args: args}
}

// NewRemoteCall builds the dotted call shape target.fun(args...).
func NewRemoteCall(target Term, fun Atom, meta Meta, args ...Term) *Node {
	return &Node{Tag: TagDot, Meta: meta, Args: []Term{target, fun, List(args)}}
}

// NewAlias builds an alias reference from its segments.
func NewAlias(meta Meta, segments ...Atom) *Node {
	args := make([]Term, len(segments))
	for i, s := range segments {
		args[i] = s
	}
	return &Node{Tag: TagAliases, Meta: meta, Args: args}
}

// IsVar reports whether the node is an identifier occurrence.
func (n *Node) IsVar() bool { return n.Args == nil }

// IsCall reports whether the node is call-shaped.
func (n *Node) IsCall() bool { return n.Args != nil }

// IsCallNamed reports whether the node is a call with the given tag.
func (n *Node) IsCallNamed(tag Atom) bool { return n.Args != nil && n.Tag == tag }

// IsWildcard reports whether the node is the `_` identifier.
func (n *Node) IsWildcard() bool { return n.Args == nil && n.Tag == AtomUnderscore }

// IsBooleanAtom reports whether t is the atom true or false.
func IsBooleanAtom(t Term) bool {
	a, ok := t.(Atom)
	return ok && (a == AtomTrue || a == AtomFalse)
}

// TermMeta returns the positional metadata of t, which is zero for
// everything but Nodes: bare literals carry no position of their own and
// inherit the enclosing form's.
func TermMeta(t Term) Meta {
	if n, ok := t.(*Node); ok {
		return n.Meta
	}
	return Meta{}
}
