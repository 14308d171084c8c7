package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"do":     KwDo,
		"end":    KwEnd,
		"fn":     KwFn,
		"when":   KwWhen,
		"in":     KwIn,
		"and":    KwAnd,
		"or":     KwOr,
		"not":    KwNot,
		"true":   KwTrue,
		"false":  KwFalse,
		"nil":    KwNil,
		"rescue": KwRescue,
		"catch":  KwCatch,
		"after":  KwAfter,
		"else":   KwElse,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Do", "END", "When", // case matters
		"case", "try", "receive", "defmodule", "def", // form names stay identifiers
		"identifier", "to_string",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestBlockKeyword(t *testing.T) {
	for _, k := range []Kind{KwRescue, KwCatch, KwAfter, KwElse} {
		if !BlockKeyword(k) {
			t.Fatalf("BlockKeyword(%v) = false, want true", k)
		}
	}
	for _, k := range []Kind{KwDo, KwEnd, Ident, KwWhen} {
		if BlockKeyword(k) {
			t.Fatalf("BlockKeyword(%v) = true, want false", k)
		}
	}
}
