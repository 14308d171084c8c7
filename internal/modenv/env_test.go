package modenv

import (
	"testing"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/syntax"
)

func TestAttributes(t *testing.T) {
	e := New("Config")

	if _, ok := e.Get("timeout"); ok {
		t.Fatal("unset attribute reported as present")
	}

	e.Put("timeout", syntax.Int(5000))
	v, ok := e.Get("timeout")
	if !ok {
		t.Fatal("attribute lost after Put")
	}
	if v != syntax.Int(5000) {
		t.Errorf("attribute = %v, want 5000", v)
	}

	// Overwrite keeps the latest value.
	e.Put("timeout", syntax.Int(100))
	v, _ = e.Get("timeout")
	if v != syntax.Int(100) {
		t.Errorf("attribute after overwrite = %v, want 100", v)
	}
}

func TestDefineAndLookup(t *testing.T) {
	e := New("Math")

	if err := e.Define(core.DefFunction, "add", 2, 1); err != nil {
		t.Fatalf("Define: %v", err)
	}
	// A second clause of the same definition re-registers freely.
	if err := e.Define(core.DefFunction, "add", 2, 2); err != nil {
		t.Fatalf("Define second clause: %v", err)
	}

	d, ok := e.Lookup("add", 2)
	if !ok {
		t.Fatal("Lookup miss for registered definition")
	}
	if d.Kind != core.DefFunction || d.Line != 1 {
		t.Errorf("definition = %+v, want def at line 1", d)
	}

	// Same name, different arity is a separate definition.
	if _, ok := e.Lookup("add", 3); ok {
		t.Error("Lookup hit for unregistered arity")
	}
}

func TestDefineKindConflict(t *testing.T) {
	e := New("M")

	if err := e.Define(core.DefFunction, "go", 1, 1); err != nil {
		t.Fatalf("Define: %v", err)
	}
	err := e.Define(core.DefMacro, "go", 1, 2)
	if err == nil {
		t.Fatal("conflicting kind accepted")
	}
	want := "defmacro go/1 already defined as def"
	if err.Error() != want {
		t.Errorf("conflict error = %q, want %q", err.Error(), want)
	}

	// The original registration survives.
	d, _ := e.Lookup("go", 1)
	if d.Kind != core.DefFunction {
		t.Errorf("kind after rejected redefine = %s, want def", d.Kind)
	}
}

func TestDefinitionsOrder(t *testing.T) {
	e := New("M")
	_ = e.Define(core.DefFunction, "b", 0, 1)
	_ = e.Define(core.DefPrivate, "a", 1, 2)
	_ = e.Define(core.DefFunction, "b", 0, 3) // extra clause, no new entry

	defs := e.Definitions()
	if len(defs) != 2 {
		t.Fatalf("Definitions len = %d, want 2", len(defs))
	}
	if defs[0].Name != "b" || defs[1].Name != "a" {
		t.Errorf("order = %s, %s; want b, a", defs[0].Name, defs[1].Name)
	}
}

func TestIsMacro(t *testing.T) {
	tests := []struct {
		kind core.DefKind
		want bool
	}{
		{core.DefFunction, false},
		{core.DefPrivate, false},
		{core.DefMacro, true},
		{core.DefMacroPrivate, true},
	}
	for _, tt := range tests {
		d := Definition{Kind: tt.kind}
		if got := d.IsMacro(); got != tt.want {
			t.Errorf("IsMacro(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestAliases(t *testing.T) {
	e := New("Foo")
	e.PutAlias("Bar", "Foo.Bar")

	full, ok := e.ResolveAlias("Bar")
	if !ok || full != "Foo.Bar" {
		t.Errorf("ResolveAlias(Bar) = %q, %v; want Foo.Bar, true", full, ok)
	}
	if _, ok := e.ResolveAlias("Baz"); ok {
		t.Error("ResolveAlias hit for unregistered alias")
	}

	// Remapping overwrites.
	e.PutAlias("Bar", "Other.Bar")
	full, _ = e.ResolveAlias("Bar")
	if full != "Other.Bar" {
		t.Errorf("ResolveAlias after remap = %q, want Other.Bar", full)
	}
}

func TestAliasSnapshotIsDetached(t *testing.T) {
	e := New("Foo")
	e.PutAlias("Bar", "Foo.Bar")

	snap := e.AliasSnapshot()
	e.PutAlias("Baz", "Foo.Baz")

	if _, ok := snap["Baz"]; ok {
		t.Error("snapshot sees writes made after it was taken")
	}

	child := New("Foo.Bar")
	child.SeedAliases(snap)
	if full, ok := child.ResolveAlias("Bar"); !ok || full != "Foo.Bar" {
		t.Errorf("seeded alias = %q, %v; want Foo.Bar, true", full, ok)
	}
}

func TestScheduleSnapshotsAliases(t *testing.T) {
	e := New("Foo")
	e.PutAlias("Bar", "Foo.Bar")
	e.Schedule("Foo.Bar", 3, syntax.Atom("body"))
	e.PutAlias("Late", "Foo.Late")

	tasks := e.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("Tasks len = %d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.Name != "Foo.Bar" || task.Line != 3 {
		t.Errorf("task = %+v, want Foo.Bar at line 3", task)
	}
	if _, ok := task.Aliases["Bar"]; !ok {
		t.Error("task snapshot missing alias present at scheduling time")
	}
	if _, ok := task.Aliases["Late"]; ok {
		t.Error("task snapshot sees alias written after scheduling")
	}
}
