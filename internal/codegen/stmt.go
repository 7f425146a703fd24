package codegen

import (
	"fmt"

	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/types"
)

func (g *Generator) emitStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Let:
		return g.emitLet(s)
	case *ast.Assign:
		return g.emitAssign(s)
	case *ast.ExprStmt:
		return g.emitExprDiscard(s.Expr)
	case *ast.If:
		return g.emitIf(s)
	case *ast.While:
		return g.emitWhile(s)
	case *ast.For:
		return g.emitFor(s)
	case *ast.Return:
		return g.emitReturn(s)
	case *ast.Break:
		return g.emitBreak(s)
	case *ast.Continue:
		return g.emitContinue(s)
	case *ast.Function:
		// nested Function statements are not emitted here; the type checker
		// assumes only top-level Function statements exist (spec §3).
		return nil
	case *ast.Import:
		return nil
	default:
		return fmt.Errorf("codegen: unhandled statement %T", stmt)
	}
}

func (g *Generator) emitLet(s *ast.Let) error {
	if err := g.emitExpr(s.Value); err != nil {
		return err
	}
	declared := types.FromName(s.Type.Name)
	slot := g.declareLocal(s.Name, declared, s.Mutable)
	fmt.Fprintf(&g.buf, "  mov qword [rbp-%d], rax\n", slot.Offset)
	return nil
}

func (g *Generator) emitAssign(s *ast.Assign) error {
	if err := g.emitExpr(s.Value); err != nil {
		return err
	}
	slot, ok := g.resolveLocal(s.Target)
	if !ok {
		// spec §3 invariant: an undeclared name at code-gen time is dropped
		// silently (implementation quirk, kept as specified).
		return nil
	}
	fmt.Fprintf(&g.buf, "  mov qword [rbp-%d], rax\n", slot.Offset)
	return nil
}

// emitExprDiscard evaluates an expression for its side effects, discarding
// the resulting rax/xmm0.
func (g *Generator) emitExprDiscard(e ast.Expression) error {
	return g.emitExpr(e)
}

func (g *Generator) emitIf(s *ast.If) error {
	elseLabel := g.newLabel("else")
	endLabel := g.newLabel("endif")

	if err := g.emitExpr(s.Cond); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jz %s\n", elseLabel)

	if err := g.emitBlock(s.Then); err != nil {
		return err
	}
	fmt.Fprintf(&g.buf, "  jmp %s\n", endLabel)

	fmt.Fprintf(&g.buf, "%s:\n", elseLabel)
	if s.Else != nil {
		if err := g.emitBlock(s.Else); err != nil {
			return err
		}
	}
	fmt.Fprintf(&g.buf, "%s:\n", endLabel)
	return nil
}

func (g *Generator) emitBlock(stmts []ast.Statement) error {
	g.pushScope()
	defer g.popScope()
	for _, s := range stmts {
		if err := g.emitStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitWhile(s *ast.While) error {
	startLabel := g.newLabel("while")
	endLabel := g.newLabel("endwhile")

	g.loopStack = append(g.loopStack, loopTarget{BreakLabel: endLabel, ContinueLabel: startLabel})
	defer func() { g.loopStack = g.loopStack[:len(g.loopStack)-1] }()

	fmt.Fprintf(&g.buf, "%s:\n", startLabel)
	if err := g.emitExpr(s.Cond); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jz %s\n", endLabel)

	if err := g.emitBlock(s.Body); err != nil {
		return err
	}
	fmt.Fprintf(&g.buf, "  jmp %s\n", startLabel)
	fmt.Fprintf(&g.buf, "%s:\n", endLabel)
	return nil
}

func (g *Generator) emitFor(s *ast.For) error {
	startLabel := g.newLabel("for")
	updateLabel := g.newLabel("forupd")
	endLabel := g.newLabel("endfor")

	g.pushScope()
	defer g.popScope()

	if err := g.emitStatement(s.Init); err != nil {
		return err
	}

	fmt.Fprintf(&g.buf, "%s:\n", startLabel)
	if err := g.emitExpr(s.Cond); err != nil {
		return err
	}
	g.buf.WriteString("  test rax, rax\n")
	fmt.Fprintf(&g.buf, "  jz %s\n", endLabel)

	g.loopStack = append(g.loopStack, loopTarget{BreakLabel: endLabel, ContinueLabel: updateLabel})
	for _, st := range s.Body {
		if err := g.emitStatement(st); err != nil {
			g.loopStack = g.loopStack[:len(g.loopStack)-1]
			return err
		}
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	fmt.Fprintf(&g.buf, "%s:\n", updateLabel)
	if err := g.emitStatement(s.Update); err != nil {
		return err
	}
	fmt.Fprintf(&g.buf, "  jmp %s\n", startLabel)
	fmt.Fprintf(&g.buf, "%s:\n", endLabel)
	return nil
}

func (g *Generator) emitReturn(s *ast.Return) error {
	if s.Value != nil {
		if err := g.emitExpr(s.Value); err != nil {
			return err
		}
	} else {
		g.buf.WriteString("  xor rax, rax\n")
	}
	g.emitEpilogue()
	return nil
}

func (g *Generator) emitBreak(s *ast.Break) error {
	if len(g.loopStack) == 0 {
		return fmt.Errorf("codegen: break outside of loop")
	}
	target := g.loopStack[len(g.loopStack)-1]
	fmt.Fprintf(&g.buf, "  jmp %s\n", target.BreakLabel)
	return nil
}

func (g *Generator) emitContinue(s *ast.Continue) error {
	if len(g.loopStack) == 0 {
		return fmt.Errorf("codegen: continue outside of loop")
	}
	target := g.loopStack[len(g.loopStack)-1]
	fmt.Fprintf(&g.buf, "  jmp %s\n", target.ContinueLabel)
	return nil
}
