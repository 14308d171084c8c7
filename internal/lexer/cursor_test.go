package lexer

import (
	"testing"

	"github.com/l4u/elixir/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ex", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	if cursor.EOF() {
		t.Error("expected not EOF at start")
	}
	if cursor.Peek() != 'a' {
		t.Errorf("expected peek 'a', got %c", cursor.Peek())
	}
	if b := cursor.Bump(); b != 'a' {
		t.Errorf("expected bump 'a', got %c", b)
	}

	if cursor.Peek() != '\n' {
		t.Errorf("expected peek '\\n', got %c", cursor.Peek())
	}
	if b := cursor.Bump(); b != '\n' {
		t.Errorf("expected bump '\\n', got %c", b)
	}

	if b := cursor.Bump(); b != 'b' {
		t.Errorf("expected bump 'b', got %c", b)
	}

	if !cursor.EOF() {
		t.Error("expected EOF at end")
	}
	if cursor.Peek() != 0 {
		t.Errorf("expected peek 0 at EOF, got %c", cursor.Peek())
	}
	if b := cursor.Bump(); b != 0 {
		t.Errorf("expected bump 0 at EOF, got %c", b)
	}
}

func TestCursorPeek2(t *testing.T) {
	file := createFile("abc")
	cursor := NewCursor(file)

	b0, b1, ok := cursor.Peek2()
	if !ok {
		t.Error("expected Peek2 to succeed at start")
	}
	if b0 != 'a' || b1 != 'b' {
		t.Errorf("expected Peek2('a', 'b'), got (%c, %c)", b0, b1)
	}

	cursor.Bump()

	b0, b1, ok = cursor.Peek2()
	if !ok {
		t.Error("expected Peek2 to succeed in middle")
	}
	if b0 != 'b' || b1 != 'c' {
		t.Errorf("expected Peek2('b', 'c'), got (%c, %c)", b0, b1)
	}

	cursor.Bump()

	// Only one byte remains.
	b0, b1, ok = cursor.Peek2()
	if ok {
		t.Error("expected Peek2 to fail at end")
	}
	if b0 != 0 || b1 != 0 {
		t.Errorf("expected Peek2(0, 0) at end, got (%c, %c)", b0, b1)
	}
}

func TestCursorSpanFromResolve(t *testing.T) {
	// "α\nβ": α is 2 bytes, \n is 1 byte, β is 2 bytes.
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ex", []byte("α\nβ"))
	file := fs.Get(id)

	cursor := NewCursor(file)

	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span := cursor.SpanFrom(mark)

	if span.Start != 0 || span.End != 2 {
		t.Errorf("expected span (0,2), got (%d,%d)", span.Start, span.End)
	}

	start, end := fs.Resolve(span)
	if want := (source.LineCol{Line: 1, Col: 1}); start != want {
		t.Errorf("expected start %+v, got %+v", want, start)
	}
	if want := (source.LineCol{Line: 2, Col: 0}); end != want {
		t.Errorf("expected end %+v, got %+v", want, end)
	}

	mark2 := cursor.Mark()
	cursor.Bump()
	span2 := cursor.SpanFrom(mark2)

	if span2.Start != 2 || span2.End != 3 {
		t.Errorf("expected span2 (2,3), got (%d,%d)", span2.Start, span2.End)
	}
}

func TestCursorEat(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	if !cursor.Eat('a') {
		t.Error("expected Eat('a') to succeed")
	}
	if !cursor.Eat('\n') {
		t.Error("expected Eat('\\n') to succeed")
	}
	if !cursor.Eat('b') {
		t.Error("expected Eat('b') to succeed")
	}
	if !cursor.EOF() {
		t.Error("expected EOF after consuming everything")
	}
	if cursor.Eat('x') {
		t.Error("expected Eat('x') at EOF to fail")
	}

	cursor.Reset(Mark(0))
	if cursor.Eat('x') {
		t.Error("expected Eat('x') to fail when current char is 'a'")
	}
	if cursor.Peek() != 'a' {
		t.Errorf("expected cursor position unchanged after failed Eat, got %c", cursor.Peek())
	}
}

func TestCursorMarkReset(t *testing.T) {
	file := createFile("abc")
	cursor := NewCursor(file)

	mark1 := cursor.Mark()
	cursor.Bump()
	mark2 := cursor.Mark()
	cursor.Bump()

	cursor.Reset(mark2)
	if cursor.Peek() != 'b' {
		t.Errorf("expected peek 'b' after reset to mark2, got %c", cursor.Peek())
	}

	cursor.Reset(mark1)
	if cursor.Peek() != 'a' {
		t.Errorf("expected peek 'a' after reset to mark1, got %c", cursor.Peek())
	}
}
