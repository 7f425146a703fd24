package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lumen-lang/lumenc/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src, "t.lum")
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return prog
}

func TestPrecedence(t *testing.T) {
	prog := mustParse(t, "let x: int = 2 + 3 * 4")
	let := prog.Statements[0].(*ast.Let)
	bin, ok := let.Value.(*ast.Binary)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level '+', got %#v", let.Value)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected '*' nested under '+', got %#v", bin.Right)
	}
}

func TestLeftAssociativity(t *testing.T) {
	prog := mustParse(t, "let x: int = 8 - 4 - 2")
	let := prog.Statements[0].(*ast.Let)
	top, ok := let.Value.(*ast.Binary)
	if !ok || top.Op != ast.OpSub {
		t.Fatalf("expected top-level '-', got %#v", let.Value)
	}
	// left-associative: (8 - 4) - 2, so the left child is itself a Binary.
	if _, ok := top.Left.(*ast.Binary); !ok {
		t.Fatalf("expected left-associative nesting on the left, got %#v", top.Left)
	}
	if lit, ok := top.Right.(*ast.Literal); !ok || lit.Int != 2 {
		t.Fatalf("expected literal 2 on the right, got %#v", top.Right)
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	prog := mustParse(t, "let x: int = -2 + 3")
	let := prog.Statements[0].(*ast.Let)
	top, ok := let.Value.(*ast.Binary)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("expected top-level '+', got %#v", let.Value)
	}
	if _, ok := top.Left.(*ast.Unary); !ok {
		t.Fatalf("expected unary '-' on the left, got %#v", top.Left)
	}
}

func TestMemberCallChain(t *testing.T) {
	prog := mustParse(t, "io.print(42)")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %#v", stmt.Expr)
	}
	member, ok := call.Callee.(*ast.Member)
	if !ok || member.Property != "print" {
		t.Fatalf("expected Call(Member(io, print), ...), got %#v", call.Callee)
	}
}

func TestAssignmentToIdentifier(t *testing.T) {
	prog := mustParse(t, "x = 2")
	assign, ok := prog.Statements[0].(*ast.Assign)
	if !ok || assign.Target != "x" {
		t.Fatalf("expected Assign(x, ...), got %#v", prog.Statements[0])
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, err := Parse("1 + 1 = 2", "t.lum")
	if err == nil {
		t.Fatal("expected a parse error for invalid assignment target")
	}
}

func TestTrailingCommaRejected(t *testing.T) {
	_, err := Parse("f(1, 2,)", "t.lum")
	if err == nil {
		t.Fatal("expected a parse error for trailing comma")
	}
}

func TestElseIfChain(t *testing.T) {
	src := `if (a) { } else if (b) { } else { }`
	prog := mustParse(t, src)
	top := prog.Statements[0].(*ast.If)
	if len(top.Else) != 1 {
		t.Fatalf("expected single nested If in Else, got %d stmts", len(top.Else))
	}
	if _, ok := top.Else[0].(*ast.If); !ok {
		t.Fatalf("expected nested If, got %#v", top.Else[0])
	}
}

// Parser determinism (spec §8 property 3): parsing the same source twice
// must yield structurally identical ASTs.
func TestParserIsDeterministic(t *testing.T) {
	src := `
func add(a: int, b: int) => int {
	return a + b
}
let x: int = add(2, 40)
while (x > 0) {
	x = x - 1
}
`
	a := mustParse(t, src)
	b := mustParse(t, src)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("two parses of the same source differ:\n%s", diff)
	}
}
