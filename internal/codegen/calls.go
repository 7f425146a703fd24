package codegen

import (
	"fmt"

	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/types"
)

// emitCall distinguishes the three call shapes of spec §4.4: a module-level
// print/println builtin, a bare-identifier user function, or a member call
// on anything else (static dispatch by property name only — see the Design
// Note on member-call dispatch).
func (g *Generator) emitCall(call *ast.Call) error {
	if member, ok := call.Callee.(*ast.Member); ok {
		if isPrintModule(member.Object) && (member.Property == "print" || member.Property == "println") {
			return g.emitBuiltinPrint(call)
		}
		return g.emitMemberCall(member, call)
	}

	if ident, ok := call.Callee.(*ast.Identifier); ok {
		return g.emitUserCall(ident.Name, call.Args)
	}

	return fmt.Errorf("codegen: unsupported call target %T", call.Callee)
}

func isPrintModule(obj ast.Expression) bool {
	id, ok := obj.(*ast.Identifier)
	return ok && id.Name == "io"
}

// emitBuiltinPrint dispatches to _print_str/_print_float/_print_bool/_print_int
// by the first argument's static type (spec §4.4).
func (g *Generator) emitBuiltinPrint(call *ast.Call) error {
	if len(call.Args) == 0 {
		return fmt.Errorf("codegen: io.print requires one argument")
	}
	arg := call.Args[0]
	if err := g.emitExpr(arg); err != nil {
		return err
	}

	target := "_print_int"
	switch g.staticExprType(arg).Tag {
	case types.STRING:
		target = "_print_str"
	case types.FLOAT:
		target = "_print_float"
	case types.BOOL:
		target = "_print_bool"
	}

	regs := g.intArgRegs()
	fmt.Fprintf(&g.buf, "  mov %s, rax\n", regs[0])
	fmt.Fprintf(&g.buf, "  call %s\n", target)
	return nil
}

// emitUserCall calls a bare-identifier user function, mangled _user_<name>.
// Arguments beyond the available parameter registers are pushed
// right-to-left (spec §4.4).
func (g *Generator) emitUserCall(name string, args []ast.Expression) error {
	regs := g.intArgRegs()

	var registerArgs, stackArgs []ast.Expression
	if len(args) > len(regs) {
		registerArgs = args[:len(regs)]
		stackArgs = args[len(regs):]
	} else {
		registerArgs = args
	}

	for i := len(stackArgs) - 1; i >= 0; i-- {
		if err := g.emitExpr(stackArgs[i]); err != nil {
			return err
		}
		g.buf.WriteString("  push rax\n")
	}

	// Register arguments are evaluated left-to-right and staged onto the
	// stack first, since evaluating straight into their destination
	// registers would clobber earlier results still needed by later
	// argument expressions.
	for _, a := range registerArgs {
		if err := g.emitExpr(a); err != nil {
			return err
		}
		g.buf.WriteString("  push rax\n")
	}
	for i := len(registerArgs) - 1; i >= 0; i-- {
		fmt.Fprintf(&g.buf, "  pop %s\n", regs[i])
	}

	if g.shadowSpace() > 0 {
		fmt.Fprintf(&g.buf, "  sub rsp, %d\n", g.shadowSpace())
	}
	fmt.Fprintf(&g.buf, "  call _user_%s\n", name)
	if g.shadowSpace() > 0 {
		fmt.Fprintf(&g.buf, "  add rsp, %d\n", g.shadowSpace())
	}
	if len(stackArgs) > 0 {
		fmt.Fprintf(&g.buf, "  add rsp, %d\n", 8*len(stackArgs))
	}
	return nil
}

// emitMemberCall lowers obj.method(args): the object is evaluated and
// discarded, then _user_<property> is invoked (spec §4.4 — static dispatch
// by property name, no real method receiver; see the Design Note on
// member-call dispatch).
func (g *Generator) emitMemberCall(member *ast.Member, call *ast.Call) error {
	if err := g.emitExpr(member.Object); err != nil {
		return err
	}
	return g.emitUserCall(member.Property, call.Args)
}

// emitMember lowers a bare member-access expression (not a call) to ANY,
// per spec §4.3's typing rule — code-gen evaluates the object for side
// effects and produces a zero placeholder for the (unmodeled) property value.
func (g *Generator) emitMember(m *ast.Member) error {
	if err := g.emitExpr(m.Object); err != nil {
		return err
	}
	g.buf.WriteString("  xor rax, rax\n")
	return nil
}
