package core

// Kind enumerates lowered node kinds.
type Kind uint8

const (
	// KindLiteral is an embedded constant: atom, integer, float or string.
	KindLiteral Kind = iota
	// KindVar is a variable reference.
	KindVar
	// KindMatch is a pattern match (pattern = value).
	KindMatch
	// KindOp is an operator call (+, ===, and, not, ...).
	KindOp
	// KindLocalCall is a call to a function of the current module.
	KindLocalCall
	// KindRemoteCall is a qualified call on a module or dynamic target.
	KindRemoteCall
	// KindFunRef is a function reference (&name/arity).
	KindFunRef
	// KindCase is clause dispatch over a subject.
	KindCase
	// KindTry is a protected body with exception/else clauses and cleanup.
	KindTry
	// KindReceive is a mailbox receive with an optional timeout.
	KindReceive
	// KindFun is an anonymous function.
	KindFun
	// KindBlock is a statement sequence in expression position.
	KindBlock
	// KindList is a list constructor, possibly with an improper tail.
	KindList
	// KindTuple is a tuple constructor.
	KindTuple
	// KindModule is the wrapper a module definition lowers to.
	KindModule
	// KindDef is a function or macro definition.
	KindDef
	// KindAlias is an alias registration emitted for nested modules.
	KindAlias
)

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindVar:
		return "Var"
	case KindMatch:
		return "Match"
	case KindOp:
		return "Op"
	case KindLocalCall:
		return "LocalCall"
	case KindRemoteCall:
		return "RemoteCall"
	case KindFunRef:
		return "FunRef"
	case KindCase:
		return "Case"
	case KindTry:
		return "Try"
	case KindReceive:
		return "Receive"
	case KindFun:
		return "Fun"
	case KindBlock:
		return "Block"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindModule:
		return "Module"
	case KindDef:
		return "Def"
	case KindAlias:
		return "Alias"
	default:
		return "Unknown"
	}
}
