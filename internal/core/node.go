package core

// Node is one lowered tree node: a kind, the source line it came from, and
// a kind-specific payload.
type Node struct {
	Kind Kind
	Line uint32
	Data NodeData
}

// NodeData is the interface for kind-specific payloads.
type NodeData interface {
	nodeData()
}

// Clause is the element of every clause list (case, try, receive, fn, def).
// Body is a packed flat statement list, never a nested Block.
type Clause struct {
	Patterns []*Node
	Guard    *Node // nil when unguarded
	Body     []*Node
	Line     uint32
}

// LitKind enumerates literal value kinds. Booleans and nil are atoms of
// those names, not kinds of their own.
type LitKind uint8

const (
	LitAtom LitKind = iota
	LitInt
	LitFloat
	LitStr
)

// LiteralData holds data for KindLiteral.
type LiteralData struct {
	Kind  LitKind
	Atom  string
	Int   int64
	Float float64
	Str   string
}

func (LiteralData) nodeData() {}

// VarData holds data for KindVar. Synthetic variables carry their
// counter-suffixed name (`_in@1`).
type VarData struct {
	Name string
}

func (VarData) nodeData() {}

// MatchData holds data for KindMatch.
type MatchData struct {
	Pattern *Node
	Value   *Node
}

func (MatchData) nodeData() {}

// OpData holds data for KindOp. Args has one element for unary operators,
// two for binary.
type OpData struct {
	Name string
	Args []*Node
}

func (OpData) nodeData() {}

// LocalCallData holds data for KindLocalCall.
type LocalCallData struct {
	Name string
	Args []*Node
}

func (LocalCallData) nodeData() {}

// RemoteCallData holds data for KindRemoteCall. Target is usually a
// literal atom but may be any expression.
type RemoteCallData struct {
	Target *Node
	Name   string
	Args   []*Node
}

func (RemoteCallData) nodeData() {}

// FunRefData holds data for KindFunRef. Module is empty for references to
// the current module.
type FunRefData struct {
	Module string
	Name   string
	Arity  int
}

func (FunRefData) nodeData() {}

// CaseData holds data for KindCase.
type CaseData struct {
	Subject *Node
	Clauses []Clause
}

func (CaseData) nodeData() {}

// TryData holds data for KindTry. Body and After are packed statement
// lists; Exceptions holds the rescue and catch clauses in source order.
type TryData struct {
	Body       []*Node
	Exceptions []Clause
	Else       []Clause
	After      []*Node
}

func (TryData) nodeData() {}

// ReceiveData holds data for KindReceive. Timeout is nil when there is no
// after section; TimeoutBody is its packed statement list.
type ReceiveData struct {
	Clauses     []Clause
	Timeout     *Node
	TimeoutBody []*Node
}

func (ReceiveData) nodeData() {}

// FunData holds data for KindFun.
type FunData struct {
	Clauses []Clause
}

func (FunData) nodeData() {}

// BlockData holds data for KindBlock.
type BlockData struct {
	Stmts []*Node
}

func (BlockData) nodeData() {}

// ListData holds data for KindList. Tail is nil for proper lists.
type ListData struct {
	Elems []*Node
	Tail  *Node
}

func (ListData) nodeData() {}

// TupleData holds data for KindTuple.
type TupleData struct {
	Elems []*Node
}

func (TupleData) nodeData() {}

// ModuleData holds data for KindModule. Name is the fully qualified module
// name; the body is compiled as its own scheduled unit, not carried here.
type ModuleData struct {
	Name string
}

func (ModuleData) nodeData() {}

// DefKind enumerates definition kinds.
type DefKind uint8

const (
	DefFunction DefKind = iota
	DefPrivate
	DefMacro
	DefMacroPrivate
)

// String returns the definition keyword.
func (k DefKind) String() string {
	switch k {
	case DefFunction:
		return "def"
	case DefPrivate:
		return "defp"
	case DefMacro:
		return "defmacro"
	case DefMacroPrivate:
		return "defmacrop"
	default:
		return "unknown"
	}
}

// DefData holds data for KindDef: one definition clause plus its identity.
type DefData struct {
	Def    DefKind
	Name   string
	Arity  int
	Clause Clause
}

func (DefData) nodeData() {}

// AliasData holds data for KindAlias.
type AliasData struct {
	Short string
	Full  string
}

func (AliasData) nodeData() {}

// ===== Constructors =====

// NewAtom builds a literal atom node.
func NewAtom(line uint32, name string) *Node {
	return &Node{Kind: KindLiteral, Line: line, Data: LiteralData{Kind: LitAtom, Atom: name}}
}

// NewBool builds the literal atom true or false.
func NewBool(line uint32, v bool) *Node {
	if v {
		return NewAtom(line, "true")
	}
	return NewAtom(line, "false")
}

// NewNil builds the literal atom nil.
func NewNil(line uint32) *Node { return NewAtom(line, "nil") }

// NewInt builds a literal integer node.
func NewInt(line uint32, v int64) *Node {
	return &Node{Kind: KindLiteral, Line: line, Data: LiteralData{Kind: LitInt, Int: v}}
}

// NewFloat builds a literal float node.
func NewFloat(line uint32, v float64) *Node {
	return &Node{Kind: KindLiteral, Line: line, Data: LiteralData{Kind: LitFloat, Float: v}}
}

// NewStr builds a literal string node.
func NewStr(line uint32, s string) *Node {
	return &Node{Kind: KindLiteral, Line: line, Data: LiteralData{Kind: LitStr, Str: s}}
}

// NewVar builds a variable reference.
func NewVar(line uint32, name string) *Node {
	return &Node{Kind: KindVar, Line: line, Data: VarData{Name: name}}
}

// NewOp builds an operator call.
func NewOp(line uint32, name string, args ...*Node) *Node {
	return &Node{Kind: KindOp, Line: line, Data: OpData{Name: name, Args: args}}
}

// NewMatch builds a pattern match node.
func NewMatch(line uint32, pattern, value *Node) *Node {
	return &Node{Kind: KindMatch, Line: line, Data: MatchData{Pattern: pattern, Value: value}}
}

// NewLocalCall builds a local call node.
func NewLocalCall(line uint32, name string, args ...*Node) *Node {
	return &Node{Kind: KindLocalCall, Line: line, Data: LocalCallData{Name: name, Args: args}}
}

// NewRemoteCall builds a call on an explicit target node.
func NewRemoteCall(line uint32, target *Node, name string, args ...*Node) *Node {
	return &Node{Kind: KindRemoteCall, Line: line, Data: RemoteCallData{Target: target, Name: name, Args: args}}
}

// NewRemoteCallAtom builds a call on a literal module atom.
func NewRemoteCallAtom(line uint32, module, name string, args ...*Node) *Node {
	return NewRemoteCall(line, NewAtom(line, module), name, args...)
}

// NewBlock builds a statement sequence node.
func NewBlock(line uint32, stmts ...*Node) *Node {
	return &Node{Kind: KindBlock, Line: line, Data: BlockData{Stmts: stmts}}
}

// ===== Inspection helpers =====

// AtomValue returns the atom name when n is a literal atom.
func AtomValue(n *Node) (string, bool) {
	if n == nil || n.Kind != KindLiteral {
		return "", false
	}
	d, ok := n.Data.(LiteralData)
	if !ok || d.Kind != LitAtom {
		return "", false
	}
	return d.Atom, true
}

// IsAtom reports whether n is the literal atom with the given name.
func IsAtom(n *Node, name string) bool {
	a, ok := AtomValue(n)
	return ok && a == name
}

// Pack flattens n into the statement-list shape block bodies use: a Block
// unwraps into its statements, anything else becomes a one-element list.
func Pack(n *Node) []*Node {
	if n == nil {
		return nil
	}
	if n.Kind == KindBlock {
		return n.Data.(BlockData).Stmts
	}
	return []*Node{n}
}
