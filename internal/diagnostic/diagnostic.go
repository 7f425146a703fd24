// Package diagnostic implements the error taxonomy shared by every compiler
// phase: a Diagnostic carries the phase it was raised in, a source location,
// and a message, and renders in the driver's standard
// "Error [<phase>]: <message> at line <N>" form (spec §6, §7).
package diagnostic

import (
	"fmt"

	"github.com/lumen-lang/lumenc/internal/token"
)

// Phase names the pipeline stage (or out-of-core boundary) that raised a
// Diagnostic.
type Phase string

const (
	Read      Phase = "read"
	Lexer     Phase = "lexer"
	Parser    Phase = "parser"
	Type      Phase = "type"
	Codegen   Phase = "codegen"
	Assembler Phase = "assembler"
	Linker    Phase = "linker"
)

// Diagnostic is a single error. The core's policy is "first error terminates
// the phase" (spec §7) — there is deliberately no severity/warning level here,
// unlike the ambient diagnostics the driver also emits for e.g. --watch status.
type Diagnostic struct {
	Phase   Phase
	Pos     token.Position
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("Error [%s]: %s at line %d", d.Phase, d.Message, d.Pos.Line)
}

// New constructs a Diagnostic for the given phase, location, and formatted
// message.
func New(phase Phase, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
