package compiler

import (
	"fmt"

	"github.com/blb-lang/blbc/internal/diagnostics"
)

// Report renders a pipeline error as the driver's diagnostic text. Every
// pass error except the translator's carries a span; a TranslatorError is
// a bug indicator, not a user error, and is reported without one.
func Report(err error, file, src string, color bool) string {
	if sp, ok := err.(diagnostics.Spanned); ok {
		return diagnostics.New(sp, file, src).Format(color)
	}
	return fmt.Sprintf("internal compiler error: %v", err)
}
