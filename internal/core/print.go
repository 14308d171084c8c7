package core

import (
	"strconv"
	"strings"
)

// Print renders a lowered tree in compact prefix notation: deterministic,
// one line, no trailing space. Tests assert against it and `elx lower
// --emit text` dumps it.
func Print(n *Node) string {
	var sb strings.Builder
	appendNode(&sb, n)
	return sb.String()
}

// PrintStmts renders a packed statement list space-separated.
func PrintStmts(stmts []*Node) string {
	var sb strings.Builder
	appendStmts(&sb, stmts)
	return sb.String()
}

func appendNode(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case KindLiteral:
		appendLiteral(sb, n.Data.(LiteralData))
	case KindVar:
		sb.WriteString(n.Data.(VarData).Name)
	case KindMatch:
		d := n.Data.(MatchData)
		sb.WriteString("(= ")
		appendNode(sb, d.Pattern)
		sb.WriteByte(' ')
		appendNode(sb, d.Value)
		sb.WriteByte(')')
	case KindOp:
		d := n.Data.(OpData)
		sb.WriteByte('(')
		sb.WriteString(d.Name)
		appendArgs(sb, d.Args)
		sb.WriteByte(')')
	case KindLocalCall:
		d := n.Data.(LocalCallData)
		sb.WriteByte('(')
		sb.WriteString(d.Name)
		appendArgs(sb, d.Args)
		sb.WriteByte(')')
	case KindRemoteCall:
		d := n.Data.(RemoteCallData)
		sb.WriteByte('(')
		appendNode(sb, d.Target)
		sb.WriteByte('.')
		sb.WriteString(d.Name)
		appendArgs(sb, d.Args)
		sb.WriteByte(')')
	case KindFunRef:
		d := n.Data.(FunRefData)
		sb.WriteByte('&')
		if d.Module != "" {
			sb.WriteByte(':')
			sb.WriteString(d.Module)
			sb.WriteByte('.')
		}
		sb.WriteString(d.Name)
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(d.Arity))
	case KindCase:
		d := n.Data.(CaseData)
		sb.WriteString("(case ")
		appendNode(sb, d.Subject)
		appendClauses(sb, d.Clauses)
		sb.WriteByte(')')
	case KindTry:
		d := n.Data.(TryData)
		sb.WriteString("(try (do")
		appendStmtsSpaced(sb, d.Body)
		sb.WriteByte(')')
		if len(d.Exceptions) > 0 {
			sb.WriteString(" (catch")
			appendClauses(sb, d.Exceptions)
			sb.WriteByte(')')
		}
		if len(d.Else) > 0 {
			sb.WriteString(" (else")
			appendClauses(sb, d.Else)
			sb.WriteByte(')')
		}
		if len(d.After) > 0 {
			sb.WriteString(" (after")
			appendStmtsSpaced(sb, d.After)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case KindReceive:
		d := n.Data.(ReceiveData)
		sb.WriteString("(receive")
		appendClauses(sb, d.Clauses)
		if d.Timeout != nil {
			sb.WriteString(" (after ")
			appendNode(sb, d.Timeout)
			appendStmtsSpaced(sb, d.TimeoutBody)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case KindFun:
		d := n.Data.(FunData)
		sb.WriteString("(fn")
		appendClauses(sb, d.Clauses)
		sb.WriteByte(')')
	case KindBlock:
		d := n.Data.(BlockData)
		sb.WriteString("(block")
		appendStmtsSpaced(sb, d.Stmts)
		sb.WriteByte(')')
	case KindList:
		d := n.Data.(ListData)
		sb.WriteByte('[')
		for i, e := range d.Elems {
			if i > 0 {
				sb.WriteByte(' ')
			}
			appendNode(sb, e)
		}
		if d.Tail != nil {
			sb.WriteString(" | ")
			appendNode(sb, d.Tail)
		}
		sb.WriteByte(']')
	case KindTuple:
		d := n.Data.(TupleData)
		sb.WriteByte('{')
		for i, e := range d.Elems {
			if i > 0 {
				sb.WriteByte(' ')
			}
			appendNode(sb, e)
		}
		sb.WriteByte('}')
	case KindModule:
		d := n.Data.(ModuleData)
		sb.WriteString("(module ")
		sb.WriteString(d.Name)
		sb.WriteByte(')')
	case KindDef:
		d := n.Data.(DefData)
		sb.WriteByte('(')
		sb.WriteString(d.Def.String())
		sb.WriteByte(' ')
		sb.WriteString(d.Name)
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(d.Arity))
		sb.WriteByte(' ')
		appendClause(sb, d.Clause)
		sb.WriteByte(')')
	case KindAlias:
		d := n.Data.(AliasData)
		sb.WriteString("(alias ")
		sb.WriteString(d.Short)
		sb.WriteByte(' ')
		sb.WriteString(d.Full)
		sb.WriteByte(')')
	default:
		sb.WriteString("<unknown>")
	}
}

func appendArgs(sb *strings.Builder, args []*Node) {
	for _, a := range args {
		sb.WriteByte(' ')
		appendNode(sb, a)
	}
}

func appendStmts(sb *strings.Builder, stmts []*Node) {
	for i, s := range stmts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		appendNode(sb, s)
	}
}

func appendStmtsSpaced(sb *strings.Builder, stmts []*Node) {
	for _, s := range stmts {
		sb.WriteByte(' ')
		appendNode(sb, s)
	}
}

func appendClauses(sb *strings.Builder, clauses []Clause) {
	for _, c := range clauses {
		sb.WriteByte(' ')
		appendClause(sb, c)
	}
}

func appendClause(sb *strings.Builder, c Clause) {
	sb.WriteString("([")
	for i, p := range c.Patterns {
		if i > 0 {
			sb.WriteByte(' ')
		}
		appendNode(sb, p)
	}
	sb.WriteByte(']')
	if c.Guard != nil {
		sb.WriteString(" when ")
		appendNode(sb, c.Guard)
	}
	sb.WriteString(" ->")
	appendStmtsSpaced(sb, c.Body)
	sb.WriteByte(')')
}

func appendLiteral(sb *strings.Builder, d LiteralData) {
	switch d.Kind {
	case LitAtom:
		appendAtomName(sb, d.Atom)
	case LitInt:
		sb.WriteString(strconv.FormatInt(d.Int, 10))
	case LitFloat:
		s := strconv.FormatFloat(d.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)
	case LitStr:
		sb.WriteString(strconv.Quote(d.Str))
	}
}

func appendAtomName(sb *strings.Builder, name string) {
	switch name {
	case "true", "false", "nil":
		sb.WriteString(name)
		return
	}
	sb.WriteByte(':')
	if isPlainAtomName(name) {
		sb.WriteString(name)
		return
	}
	sb.WriteString(strconv.Quote(name))
}

func isPlainAtomName(name string) bool {
	if name == "" {
		return false
	}
	switch name {
	case "+", "-", "*", "/", "++", "--", "<>",
		"==", "!=", "===", "!==", "<", "<=", ">", ">=",
		"and", "or", "xor", "not", "=", "..", "->", "|", ".":
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '.':
			// dots allowed: qualified module names are atoms
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		case c == '?' || c == '!':
			return i == len(name)-1
		default:
			return false
		}
	}
	return true
}
