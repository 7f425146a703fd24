package typechecker

import (
	"strings"
	"testing"

	"github.com/lumen-lang/lumenc/internal/parser"
)

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse(src, "t.lum")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Check(prog)
}

func TestLetWideningAccepted(t *testing.T) {
	if err := checkSrc(t, "let x: float = 2 + 3 * 4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssignToImmutableRejected(t *testing.T) {
	err := checkSrc(t, "let x: int = 1\nx = 2")
	if err == nil || !strings.Contains(err.Error(), "Cannot assign to immutable variable: x") {
		t.Fatalf("expected immutability error, got %v", err)
	}
}

func TestAssignToMutableAccepted(t *testing.T) {
	if err := checkSrc(t, "var x: int = 1\nx = 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestArityMismatchRejected(t *testing.T) {
	src := `
func add(a: int, b: int) => int { return a + b }
let x: int = add(1)
`
	err := checkSrc(t, src)
	if err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

// Without a hoisting pre-pass (spec §4.3), a call preceding its function's
// declaration sees an unknown callee — permissively typed ANY rather than
// rejected (spec §9).
func TestForwardReferenceIsPermissive(t *testing.T) {
	src := `
let x: int = add(1, 2)
func add(a: int, b: int) => int { return a + b }
`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error for forward-referenced call: %v", err)
	}
}

func TestScopeShadowing(t *testing.T) {
	src := `
let x: int = 1
if (true) {
	let x: bool = true
	var y: bool = x
	y = false
}
`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("shadowing should be legal: %v", err)
	}
}

func TestConditionMustBeBool(t *testing.T) {
	err := checkSrc(t, "let x: int = 1\nwhile (x) { x = x - 1 }")
	if err == nil {
		t.Fatal("expected condition-type error")
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	err := checkSrc(t, "return 1")
	if err == nil {
		t.Fatal("expected return-outside-function error")
	}
}

func TestShortCircuitOperandsPermitAny(t *testing.T) {
	src := `
func f() => any { return true }
let x: bool = f() && true
`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
