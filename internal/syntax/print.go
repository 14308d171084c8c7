package syntax

import (
	"strconv"
	"strings"
)

// The String methods render terms in quoted-tuple notation: identifier
// occurrences as {:name, line, nil}, calls as {:name, line, [args]}.
// Tests and the `parse` command lean on this being deterministic.

func (a Atom) String() string {
	var sb strings.Builder
	appendAtom(&sb, a)
	return sb.String()
}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (s Str) String() string { return strconv.Quote(string(s)) }

func (l List) String() string {
	var sb strings.Builder
	appendTerm(&sb, l)
	return sb.String()
}

func (p Pair) String() string {
	var sb strings.Builder
	appendTerm(&sb, p)
	return sb.String()
}

func (n *Node) String() string {
	var sb strings.Builder
	appendTerm(&sb, n)
	return sb.String()
}

// String renders any term in the same notation without needing the
// concrete type.
func String(t Term) string {
	var sb strings.Builder
	appendTerm(&sb, t)
	return sb.String()
}

func appendTerm(sb *strings.Builder, t Term) {
	switch v := t.(type) {
	case Atom:
		appendAtom(sb, v)
	case Int:
		sb.WriteString(v.String())
	case Float:
		sb.WriteString(v.String())
	case Str:
		sb.WriteString(v.String())
	case List:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			appendTerm(sb, e)
		}
		sb.WriteByte(']')
	case Pair:
		appendKey(sb, v.Key)
		sb.WriteString(": ")
		appendTerm(sb, v.Value)
	case *Node:
		sb.WriteByte('{')
		appendAtom(sb, v.Tag)
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatUint(uint64(v.Meta.Line), 10))
		sb.WriteString(", ")
		if v.Args == nil {
			sb.WriteString("nil")
		} else {
			appendTerm(sb, List(v.Args))
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid term>")
	}
}

func appendAtom(sb *strings.Builder, a Atom) {
	switch a {
	case AtomTrue, AtomFalse, AtomNil:
		sb.WriteString(string(a))
		return
	}
	if isBareAtom(string(a)) {
		sb.WriteByte(':')
		sb.WriteString(string(a))
		return
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.Quote(string(a)))
}

func appendKey(sb *strings.Builder, key Atom) {
	if isBareAtom(string(key)) && !isOperatorAtom(string(key)) {
		sb.WriteString(string(key))
		return
	}
	sb.WriteString(strconv.Quote(string(key)))
}

// isBareAtom reports whether name renders without quoting after the colon:
// identifier-shaped names (with optional trailing ? or !) and operators.
func isBareAtom(name string) bool {
	if name == "" {
		return false
	}
	if isOperatorAtom(name) {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
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

func isOperatorAtom(name string) bool {
	switch name {
	case "+", "-", "*", "/", "++", "--", "<>",
		"==", "!=", "===", "!==", "<", "<=", ">", ">=",
		"&&", "||", "!", "=", "..", "->", "|", ".", "@", "{}":
		return true
	}
	return false
}
