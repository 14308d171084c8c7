package diag

import (
	"errors"
	"fmt"

	"github.com/l4u/elixir/internal/source"
)

// Failure is the error a phase returns when a diagnostic aborts its
// unit. Phases below the driver return it instead of reporting, so the
// first error unwinds translation while warnings keep flowing through
// the Reporter; the driver files failures into the unit's Bag.
type Failure struct {
	Code    Code
	Span    source.Span
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code.ID(), f.Message)
}

// Fail builds a Failure with a formatted message.
func Fail(code Code, span source.Span, format string, args ...any) *Failure {
	return &Failure{Code: code, Span: span, Message: fmt.Sprintf(format, args...)}
}

// AsFailure extracts a *Failure wrapped anywhere in err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Diagnostic converts the failure into its Bag entry.
func (f *Failure) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     f.Code,
		Message:  f.Message,
		Primary:  f.Span,
	}
}
