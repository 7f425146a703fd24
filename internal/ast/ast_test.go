package ast

import (
	"testing"

	"github.com/lumen-lang/lumenc/internal/token"
)

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name string
		lit  *Literal
		want string
	}{
		{"int", &Literal{Kind: LitInt, Int: 42}, "42"},
		{"negative int", &Literal{Kind: LitInt, Int: -7}, "-7"},
		{"float", &Literal{Kind: LitFloat, Float: 3.5}, "3.5"},
		{"string", &Literal{Kind: LitString, Str: "hi"}, "\"hi\""},
		{"true", &Literal{Kind: LitBool, Bool: true}, "true"},
		{"false", &Literal{Kind: LitBool, Bool: false}, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lit.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinaryStringNesting(t *testing.T) {
	b := &Binary{
		Op:   OpAdd,
		Left: &Literal{Kind: LitInt, Int: 1},
		Right: &Binary{
			Op:    OpMul,
			Left:  &Literal{Kind: LitInt, Int: 2},
			Right: &Literal{Kind: LitInt, Int: 3},
		},
	}
	want := "(1 + (2 * 3))"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUnaryString(t *testing.T) {
	u := &Unary{Op: OpNeg, Operand: &Literal{Kind: LitInt, Int: 5}}
	if got, want := u.String(), "-5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMemberChainString(t *testing.T) {
	m := &Member{Object: &Identifier{Name: "obj"}, Property: "field"}
	if got, want := m.String(), "obj.field"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// TestNodePosRoundTrip exercises spec §8 property: every node reports the
// exact Position it was constructed with.
func TestNodePosRoundTrip(t *testing.T) {
	pos := token.Position{Filename: "f.lum", Line: 3, Column: 7}
	nodes := []Node{
		&Literal{Position: pos},
		&Identifier{Position: pos},
		&Binary{Position: pos},
		&Unary{Position: pos},
		&Call{Position: pos},
		&Member{Position: pos},
		&Let{Position: pos},
		&Assign{Position: pos},
		&ExprStmt{Position: pos},
		&If{Position: pos},
		&While{Position: pos},
		&For{Position: pos},
		&Return{Position: pos},
		&Break{Position: pos},
		&Continue{Position: pos},
		&Function{Position: pos},
		&Import{Position: pos},
	}
	for _, n := range nodes {
		if n.Pos() != pos {
			t.Errorf("%T.Pos() = %v, want %v", n, n.Pos(), pos)
		}
	}
}

func TestExpressionAndStatementMarkersDisjoint(t *testing.T) {
	var _ Expression = &Literal{}
	var _ Expression = &Identifier{}
	var _ Expression = &Binary{}
	var _ Expression = &Unary{}
	var _ Expression = &Call{}
	var _ Expression = &Member{}

	var _ Statement = &Let{}
	var _ Statement = &Assign{}
	var _ Statement = &ExprStmt{}
	var _ Statement = &If{}
	var _ Statement = &While{}
	var _ Statement = &For{}
	var _ Statement = &Return{}
	var _ Statement = &Break{}
	var _ Statement = &Continue{}
	var _ Statement = &Function{}
	var _ Statement = &Import{}

	for _, n := range []Node{&Literal{}, &Identifier{}, &Binary{}, &Unary{}, &Call{}, &Member{}} {
		if _, ok := n.(Statement); ok {
			t.Errorf("%T implements both Expression and Statement", n)
		}
	}
	for _, n := range []Node{&Let{}, &Assign{}, &ExprStmt{}, &If{}, &While{}, &For{}, &Return{}, &Break{}, &Continue{}, &Function{}, &Import{}} {
		if _, ok := n.(Expression); ok {
			t.Errorf("%T implements both Statement and Expression", n)
		}
	}
}
