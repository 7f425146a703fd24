package typechecker

import (
	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/types"
)

// typeOf computes an expression's type per the rules in spec §4.3.
// Identifier returns ANY for unresolved names rather than failing — the
// permissive policy documented in spec §9 (masks typos; a strict
// reimplementation would reject these with a dedicated error instead).
func (c *Checker) typeOf(expr ast.Expression) (types.Info, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.typeOfLiteral(e), nil
	case *ast.Identifier:
		if sym, ok := c.lookup(e.Name); ok {
			return sym.Type, nil
		}
		return types.Info{Tag: types.ANY}, nil
	case *ast.Binary:
		return c.typeOfBinary(e)
	case *ast.Unary:
		return c.typeOfUnary(e)
	case *ast.Call:
		return c.typeOfCall(e)
	case *ast.Member:
		return types.Info{Tag: types.ANY}, nil
	default:
		return types.Info{}, typeErr(expr.Pos(), "unknown expression kind %T", expr)
	}
}

func (c *Checker) typeOfLiteral(l *ast.Literal) types.Info {
	switch l.Kind {
	case ast.LitInt:
		return types.Info{Tag: types.INT}
	case ast.LitFloat:
		return types.Info{Tag: types.FLOAT}
	case ast.LitString:
		return types.Info{Tag: types.STRING}
	case ast.LitBool:
		return types.Info{Tag: types.BOOL}
	default:
		return types.Info{Tag: types.ANY}
	}
}

func (c *Checker) typeOfBinary(b *ast.Binary) (types.Info, error) {
	left, err := c.typeOf(b.Left)
	if err != nil {
		return types.Info{}, err
	}
	right, err := c.typeOf(b.Right)
	if err != nil {
		return types.Info{}, err
	}

	switch b.Op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return types.Info{Tag: types.BOOL}, nil

	case ast.OpAnd, ast.OpOr:
		if !boolish(left) {
			return types.Info{}, typeErr(b.Left.Pos(), "operand of %s must be bool, got %s", symOf(b.Op), left)
		}
		if !boolish(right) {
			return types.Info{}, typeErr(b.Right.Pos(), "operand of %s must be bool, got %s", symOf(b.Op), right)
		}
		return types.Info{Tag: types.BOOL}, nil

	case ast.OpAdd:
		if left.Tag == types.STRING {
			return types.Info{Tag: types.STRING}, nil
		}
		if left.Tag == types.FLOAT || right.Tag == types.FLOAT {
			return types.Info{Tag: types.FLOAT}, nil
		}
		return types.Info{Tag: types.INT}, nil

	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if left.Tag == types.FLOAT || right.Tag == types.FLOAT {
			return types.Info{Tag: types.FLOAT}, nil
		}
		return types.Info{Tag: types.INT}, nil

	default:
		return types.Info{}, typeErr(b.Position, "unknown binary operator")
	}
}

func boolish(t types.Info) bool { return t.Tag == types.BOOL || t.Tag == types.ANY }

func symOf(op ast.BinaryOp) string {
	if op == ast.OpAnd {
		return "&&"
	}
	return "||"
}

func (c *Checker) typeOfUnary(u *ast.Unary) (types.Info, error) {
	operand, err := c.typeOf(u.Operand)
	if err != nil {
		return types.Info{}, err
	}

	switch u.Op {
	case ast.OpNot:
		if !boolish(operand) {
			return types.Info{}, typeErr(u.Position, "operand of ! must be bool, got %s", operand)
		}
		return types.Info{Tag: types.BOOL}, nil
	case ast.OpBitNot:
		return types.Info{Tag: types.INT}, nil
	case ast.OpNeg, ast.OpPos:
		return operand, nil
	default:
		return types.Info{}, typeErr(u.Position, "unknown unary operator")
	}
}

// typeOfCall: a known function's arity must match and each argument must
// satisfy actual ≲ param; an unknown callee (including every module member
// call, e.g. io.print) yields ANY.
func (c *Checker) typeOfCall(call *ast.Call) (types.Info, error) {
	ident, isBare := call.Callee.(*ast.Identifier)
	if !isBare {
		for _, arg := range call.Args {
			if _, err := c.typeOf(arg); err != nil {
				return types.Info{}, err
			}
		}
		return types.Info{Tag: types.ANY}, nil
	}

	sig, known := c.funcs[ident.Name]
	if !known {
		for _, arg := range call.Args {
			if _, err := c.typeOf(arg); err != nil {
				return types.Info{}, err
			}
		}
		return types.Info{Tag: types.ANY}, nil
	}

	if len(call.Args) != len(sig.Params) {
		return types.Info{}, typeErr(call.Position, "function %s expects %d argument(s), got %d", ident.Name, len(sig.Params), len(call.Args))
	}

	for i, arg := range call.Args {
		actual, err := c.typeOf(arg)
		if err != nil {
			return types.Info{}, err
		}
		if !types.CompatibleWith(actual, sig.Params[i]) {
			return types.Info{}, typeErr(arg.Pos(), "argument %d of %s: cannot use %s as %s", i+1, ident.Name, actual, sig.Params[i])
		}
	}

	return sig.Return, nil
}
