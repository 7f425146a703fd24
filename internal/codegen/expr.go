package codegen

import (
	"fmt"
	"strconv"

	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/types"
)

// emitExpr lowers expr, leaving its result in rax (spec §4.4: integer and
// pointer results live in rax; float-typed expressions are additionally
// loaded into xmm0 at call/print sites that need them — see the Design Note
// on float register routing for why this is not end-to-end).
func (g *Generator) emitExpr(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.emitLiteral(e)
	case *ast.Identifier:
		return g.emitIdentifier(e)
	case *ast.Binary:
		return g.emitBinary(e)
	case *ast.Unary:
		return g.emitUnary(e)
	case *ast.Call:
		return g.emitCall(e)
	case *ast.Member:
		return g.emitMember(e)
	default:
		return fmt.Errorf("codegen: unhandled expression %T", expr)
	}
}

func (g *Generator) emitLiteral(l *ast.Literal) error {
	switch l.Kind {
	case ast.LitInt:
		fmt.Fprintf(&g.buf, "  mov rax, %d\n", l.Int)
	case ast.LitFloat:
		fmt.Fprintf(&g.buf, "  mov rax, __float64__(%s)\n", strconv.FormatFloat(l.Float, 'g', -1, 64))
	case ast.LitBool:
		if l.Bool {
			g.buf.WriteString("  mov rax, 1\n")
		} else {
			g.buf.WriteString("  mov rax, 0\n")
		}
	case ast.LitString:
		label := g.strs.intern(l.Str)
		fmt.Fprintf(&g.buf, "  lea rax, [rel %s]\n", label)
	}
	return nil
}

// emitIdentifier resolves name via lexically innermost scope lookup;
// undeclared names emit a zero placeholder (spec §3 invariant, an
// implementation quirk kept as specified — see the Design Note on permissive
// unresolved identifiers).
func (g *Generator) emitIdentifier(id *ast.Identifier) error {
	slot, ok := g.resolveLocal(id.Name)
	if !ok {
		g.buf.WriteString("  xor rax, rax\n")
		return nil
	}
	fmt.Fprintf(&g.buf, "  mov rax, qword [rbp-%d]\n", slot.Offset)
	return nil
}

func (g *Generator) emitBinary(b *ast.Binary) error {
	switch b.Op {
	case ast.OpAnd:
		return g.emitShortCircuitAnd(b)
	case ast.OpOr:
		return g.emitShortCircuitOr(b)
	default:
		return g.emitArithOrCompare(b)
	}
}

// emitArithOrCompare uses the standard "evaluate left, push, evaluate right
// into rcx, pop rax, op" pattern (spec §4.4).
func (g *Generator) emitArithOrCompare(b *ast.Binary) error {
	if err := g.emitExpr(b.Left); err != nil {
		return err
	}
	g.buf.WriteString("  push rax\n")
	if err := g.emitExpr(b.Right); err != nil {
		return err
	}
	g.buf.WriteString("  mov rcx, rax\n")
	g.buf.WriteString("  pop rax\n")

	switch b.Op {
	case ast.OpAdd:
		g.buf.WriteString("  add rax, rcx\n")
	case ast.OpSub:
		g.buf.WriteString("  sub rax, rcx\n")
	case ast.OpMul:
		g.buf.WriteString("  imul rax, rcx\n")
	case ast.OpDiv:
		g.buf.WriteString("  cqo\n")
		g.buf.WriteString("  idiv rcx\n")
	case ast.OpMod:
		g.buf.WriteString("  cqo\n")
		g.buf.WriteString("  idiv rcx\n")
		g.buf.WriteString("  mov rax, rdx\n")
	case ast.OpEq:
		g.emitCompare("sete")
	case ast.OpNe:
		g.emitCompare("setne")
	case ast.OpLt:
		g.emitCompare("setl")
	case ast.OpGt:
		g.emitCompare("setg")
	case ast.OpLe:
		g.emitCompare("setle")
	case ast.OpGe:
		g.emitCompare("setge")
	default:
		return fmt.Errorf("codegen: unhandled binary operator %v", b.Op)
	}
	return nil
}

func (g *Generator) emitCompare(setcc string) {
	g.buf.WriteString("  cmp rax, rcx\n")
	fmt.Fprintf(&g.buf, "  %s al\n", setcc)
	g.buf.WriteString("  movzx rax, al\n")
}

// emitShortCircuitAnd must not evaluate the right operand when the left is
// already false (spec §4.4, §8 property 7).
func (g *Generator) emitShortCircuitAnd(b *ast.Binary) error {
	falseLabel := g.newLabel("and_false")
	endLabel := g.newLabel("and_end")

	if err := g.emitExpr(b.Left); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jz %s\n", falseLabel)

	if err := g.emitExpr(b.Right); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jz %s\n", falseLabel)

	g.buf.WriteString("  mov rax, 1\n")
	fmt.Fprintf(&g.buf, "  jmp %s\n", endLabel)
	fmt.Fprintf(&g.buf, "%s:\n", falseLabel)
	g.buf.WriteString("  mov rax, 0\n")
	fmt.Fprintf(&g.buf, "%s:\n", endLabel)
	return nil
}

// emitShortCircuitOr is the dual of emitShortCircuitAnd, jumping to a
// true-label as soon as the result is known.
func (g *Generator) emitShortCircuitOr(b *ast.Binary) error {
	trueLabel := g.newLabel("or_true")
	endLabel := g.newLabel("or_end")

	if err := g.emitExpr(b.Left); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jnz %s\n", trueLabel)

	if err := g.emitExpr(b.Right); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jnz %s\n", trueLabel)

	g.buf.WriteString("  mov rax, 0\n")
	fmt.Fprintf(&g.buf, "  jmp %s\n", endLabel)
	fmt.Fprintf(&g.buf, "%s:\n", trueLabel)
	g.buf.WriteString("  mov rax, 1\n")
	fmt.Fprintf(&g.buf, "%s:\n", endLabel)
	return nil
}

func (g *Generator) emitUnary(u *ast.Unary) error {
	if err := g.emitExpr(u.Operand); err != nil {
		return err
	}
	switch u.Op {
	case ast.OpNot:
		g.buf.WriteString("  test rax, rax\n")
		g.buf.WriteString("  sete al\n")
		g.buf.WriteString("  movzx rax, al\n")
	case ast.OpNeg:
		g.buf.WriteString("  neg rax\n")
	case ast.OpPos:
		// no-op: unary "+" leaves the operand's value unchanged.
	case ast.OpBitNot:
		g.buf.WriteString("  not rax\n")
	default:
		return fmt.Errorf("codegen: unhandled unary operator %v", u.Op)
	}
	return nil
}

// staticExprType approximates the type checker's expression typing rules
// well enough to pick a print built-in (spec §4.4 Calls: dispatch by the
// first argument's static type) without re-running full inference in
// code-gen — code-gen never mutates or re-derives the AST's semantics beyond
// what it needs to select an emission shape.
func (g *Generator) staticExprType(expr ast.Expression) types.Info {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitInt:
			return types.Info{Tag: types.INT}
		case ast.LitFloat:
			return types.Info{Tag: types.FLOAT}
		case ast.LitString:
			return types.Info{Tag: types.STRING}
		case ast.LitBool:
			return types.Info{Tag: types.BOOL}
		}
	case *ast.Identifier:
		if slot, ok := g.resolveLocal(e.Name); ok {
			return slot.Type
		}
	case *ast.Binary:
		switch e.Op {
		case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe, ast.OpAnd, ast.OpOr:
			return types.Info{Tag: types.BOOL}
		case ast.OpAdd:
			left := g.staticExprType(e.Left)
			if left.Tag == types.STRING {
				return types.Info{Tag: types.STRING}
			}
			if left.Tag == types.FLOAT || g.staticExprType(e.Right).Tag == types.FLOAT {
				return types.Info{Tag: types.FLOAT}
			}
			return types.Info{Tag: types.INT}
		default:
			if g.staticExprType(e.Left).Tag == types.FLOAT || g.staticExprType(e.Right).Tag == types.FLOAT {
				return types.Info{Tag: types.FLOAT}
			}
			return types.Info{Tag: types.INT}
		}
	case *ast.Call:
		if fn, isBare := e.Callee.(*ast.Identifier); isBare {
			if info, ok := g.funcs[fn.Name]; ok {
				return info.Return
			}
		}
	}
	return types.Info{Tag: types.ANY}
}
