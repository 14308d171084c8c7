package core

import "testing"

func TestAtomValue(t *testing.T) {
	if v, ok := AtomValue(NewAtom(1, "ok")); !ok || v != "ok" {
		t.Errorf("expected ok atom, got %q %v", v, ok)
	}
	if _, ok := AtomValue(NewInt(1, 3)); ok {
		t.Errorf("int literal is not an atom")
	}
	if _, ok := AtomValue(NewVar(1, "ok")); ok {
		t.Errorf("var is not an atom")
	}
	if _, ok := AtomValue(nil); ok {
		t.Errorf("nil node is not an atom")
	}
}

func TestIsAtom(t *testing.T) {
	if !IsAtom(NewNil(1), "nil") {
		t.Errorf("NewNil must be the nil atom")
	}
	if !IsAtom(NewBool(1, true), "true") || !IsAtom(NewBool(1, false), "false") {
		t.Errorf("NewBool must produce the boolean atoms")
	}
	if IsAtom(NewAtom(1, "ok"), "error") {
		t.Errorf("wrong name must not match")
	}
}

func TestPack(t *testing.T) {
	a := NewInt(1, 1)
	b := NewInt(2, 2)

	if got := Pack(NewBlock(1, a, b)); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("block must unwrap into its statements, got %v", got)
	}
	if got := Pack(a); len(got) != 1 || got[0] != a {
		t.Errorf("single node must wrap into a one-element list, got %v", got)
	}
	if got := Pack(nil); got != nil {
		t.Errorf("nil packs to nil, got %v", got)
	}
}

func TestReturnsBoolean(t *testing.T) {
	x := NewVar(1, "x")
	y := NewVar(1, "y")

	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"true literal", NewBool(1, true), true},
		{"false literal", NewBool(1, false), true},
		{"nil literal", NewNil(1), false},
		{"other atom", NewAtom(1, "ok"), false},
		{"int literal", NewInt(1, 0), false},
		{"var", x, false},
		{"comparison", NewOp(1, "===", x, y), true},
		{"less than", NewOp(1, "<", x, y), true},
		{"not", NewOp(1, "not", x), true},
		{"xor", NewOp(1, "xor", x, y), true},
		{"arith", NewOp(1, "+", x, y), false},
		{"concat", NewOp(1, "<>", x, y), false},
		{"and of comparisons", NewOp(1, "and", NewOp(1, "<", x, y), NewOp(1, ">", x, y)), true},
		{"and with plain rhs", NewOp(1, "and", NewOp(1, "<", x, y), y), false},
		{"or with boolean rhs", NewOp(1, "or", x, NewBool(1, false)), true},
		{"local call", NewLocalCall(1, "is_atom", x), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReturnsBoolean(tt.node); got != tt.want {
				t.Errorf("ReturnsBoolean = %v, want %v", got, tt.want)
			}
		})
	}

	if ReturnsBoolean(nil) {
		t.Errorf("nil never returns boolean")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindLiteral, "Literal"},
		{KindVar, "Var"},
		{KindCase, "Case"},
		{KindReceive, "Receive"},
		{KindAlias, "Alias"},
		{Kind(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDefKindString(t *testing.T) {
	tests := []struct {
		kind DefKind
		want string
	}{
		{DefFunction, "def"},
		{DefPrivate, "defp"},
		{DefMacro, "defmacro"},
		{DefMacroPrivate, "defmacrop"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("DefKind %d: got %q, want %q", tt.kind, got, tt.want)
		}
	}
}
