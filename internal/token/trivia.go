package token

import "github.com/l4u/elixir/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaComment:
		return "Comment"
	}
	return "Unknown"
}

// Trivia is whitespace or a `#` comment skipped by the parser but kept
// attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
