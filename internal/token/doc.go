// Package token defines lexical token kinds and trivia for the compiler.
// Invariants:
//   - Token.Span covers the whole lexeme, including quote or colon sigils.
//   - Token.Text holds the cooked payload: atoms and keyword keys without
//     their sigil, strings with escapes resolved.
//   - Newlines are real tokens (expression terminators); spaces and `#`
//     comments are leading Trivia and never appear in the token stream.
//   - Form names such as case, try, receive, defmodule or def are plain
//     identifiers. The parser and lowering layers give them meaning.
package token
