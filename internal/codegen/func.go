package codegen

import (
	"fmt"

	"github.com/lumen-lang/lumenc/internal/ast"
)

// emitFunction emits one user-defined function, mangled as _user_<name>
// (spec §4.4 Calls). Its own scope stack and frame offset are independent of
// any caller's.
func (g *Generator) emitFunction(fn *ast.Function) error {
	g.pushScope()
	defer g.popScope()

	savedOff := g.frameOff
	g.frameOff = 0
	defer func() { g.frameOff = savedOff }()

	fmt.Fprintf(&g.buf, "_user_%s:\n", fn.Name)
	g.emitPrologue(frameSlabFunc)

	regs := g.intArgRegs()
	pTypes := paramTypes(fn)
	for i, p := range fn.Params {
		slot := g.declareLocal(p.Name, pTypes[i], false)
		if i < len(regs) {
			fmt.Fprintf(&g.buf, "  mov qword [rbp-%d], %s\n", slot.Offset, regs[i])
		} else {
			// excess params were pushed right-to-left by the caller; the
			// N-th excess argument sits above the return address.
			stackIdx := i - len(regs)
			fmt.Fprintf(&g.buf, "  mov rax, qword [rbp+%d]\n", 16+8*stackIdx)
			fmt.Fprintf(&g.buf, "  mov qword [rbp-%d], rax\n", slot.Offset)
		}
	}

	for _, stmt := range fn.Body {
		if err := g.emitStatement(stmt); err != nil {
			return err
		}
	}

	// Fall-through return for a function whose body doesn't end in an
	// explicit return: rax is 0. The type checker does not require a non-void
	// function to end in a return, so this also covers such functions.
	g.buf.WriteString("  xor rax, rax\n")
	g.emitEpilogue()
	return nil
}

// emitMain emits the "main:" label whose body is every top-level statement
// that is not a Function or Import declaration (spec §4.4 Program layout).
func (g *Generator) emitMain(topLevel []ast.Statement) error {
	g.pushScope()
	defer g.popScope()

	savedOff := g.frameOff
	g.frameOff = 0
	defer func() { g.frameOff = savedOff }()

	g.buf.WriteString("main:\n")
	g.emitPrologue(frameSlabMain)

	for _, stmt := range topLevel {
		if err := g.emitStatement(stmt); err != nil {
			return err
		}
	}

	g.emitExitSequence()
	return nil
}

// emitPrologue reserves slab bytes rounded up to 16-byte alignment (spec
// §4.4: fixed reservation, not size-driven — see the Design Note on the
// fixed stack slab).
func (g *Generator) emitPrologue(slab int) {
	if rem := slab % 16; rem != 0 {
		slab += 16 - rem
	}
	g.buf.WriteString("  push rbp\n")
	g.buf.WriteString("  mov rbp, rsp\n")
	fmt.Fprintf(&g.buf, "  sub rsp, %d\n", slab)
}

func (g *Generator) emitEpilogue() {
	g.buf.WriteString("  mov rsp, rbp\n")
	g.buf.WriteString("  pop rbp\n")
	g.buf.WriteString("  ret\n")
}

// emitExitSequence terminates main per host convention (spec §4.4 Program
// layout): Windows calls ExitProcess(0); POSIX returns 0 to its C runtime
// entry.
func (g *Generator) emitExitSequence() {
	if g.abi == Win64 {
		g.buf.WriteString("  mov rcx, 0\n")
		g.buf.WriteString("  call ExitProcess\n")
		return
	}
	g.buf.WriteString("  mov rax, 0\n")
	g.emitEpilogue()
}
