package token_test

import (
	"testing"

	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/token"
)

func TestCommentTriviaShape(t *testing.T) {
	tv := token.Trivia{
		Kind: token.TriviaComment,
		Span: source.Span{Start: 0, End: 10},
		Text: "# comment",
	}
	tok := token.Token{
		Kind:    token.Ident,
		Span:    source.Span{Start: 42, End: 45},
		Text:    "foo",
		Leading: []token.Trivia{tv},
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaComment {
		t.Fatalf("comment trivia must stay attached to the following token")
	}
}
