package core

// ReturnsBoolean reports whether a lowered form statically evaluates to a
// boolean: the literals true/false, comparison operators, and strict
// boolean operators. and/or short-circuit to their right operand, so they
// only count when that operand does.
func ReturnsBoolean(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindLiteral:
		d, ok := n.Data.(LiteralData)
		return ok && d.Kind == LitAtom && (d.Atom == "true" || d.Atom == "false")
	case KindOp:
		d, ok := n.Data.(OpData)
		if !ok {
			return false
		}
		switch d.Name {
		case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "not", "xor":
			return true
		case "and", "or":
			return len(d.Args) == 2 && ReturnsBoolean(d.Args[1])
		}
	}
	return false
}
