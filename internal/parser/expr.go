package parser

import (
	"strconv"

	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/token"
)

// precedence table (spec §4.2), ascending, all left-associative.
var binaryPrec = map[token.Kind]int{
	token.OR:      1,
	token.AND:     2,
	token.EQ:      3,
	token.NE:      3,
	token.LT:      4,
	token.GT:      4,
	token.LE:      4,
	token.GE:      4,
	token.PLUS:    5,
	token.MINUS:   5,
	token.STAR:    6,
	token.SLASH:   6,
	token.PERCENT: 6,
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.PLUS:    ast.OpAdd,
	token.MINUS:   ast.OpSub,
	token.STAR:    ast.OpMul,
	token.SLASH:   ast.OpDiv,
	token.PERCENT: ast.OpMod,
	token.EQ:      ast.OpEq,
	token.NE:      ast.OpNe,
	token.LT:      ast.OpLt,
	token.GT:      ast.OpGt,
	token.LE:      ast.OpLe,
	token.GE:      ast.OpGe,
	token.AND:     ast.OpAnd,
	token.OR:      ast.OpOr,
}

// parseExpression implements precedence climbing: it parses a unary/primary
// expression, then repeatedly folds in binary operators whose precedence is
// at least minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binaryPrec[p.cur().Kind]
		if !ok || prec < minPrec {
			return left, nil
		}

		opTok := p.advance()
		right, err := p.parseExpression(prec + 1) // left-associative: strictly higher on the right
		if err != nil {
			return nil, err
		}

		left = &ast.Binary{Op: binaryOps[opTok.Kind], Left: left, Right: right, Position: opTok.Pos}
	}
}

// parseUnary handles the prefix operators !, -, ~, which bind tighter than
// any binary operator (spec §4.2).
func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur().Kind {
	case token.BANG:
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNot, Operand: operand, Position: pos}, nil
	case token.MINUS:
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNeg, Operand: operand, Position: pos}, nil
	case token.PLUS:
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpPos, Operand: operand, Position: pos}, nil
	case token.TILDE:
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpBitNot, Operand: operand, Position: pos}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by a chain of ".IDENT",
// "::IDENT", and "(args)" suffixes. obj.prop(args) becomes
// Call(Member(obj, prop), args).
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Kind {
		case token.DOT, token.SCOPE:
			dotPos := p.advance().Pos
			name, err := p.consume(token.IDENTIFIER, "after '.' or '::'")
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{Object: expr, Property: name.Value, Position: dotPos}
		case token.LPAREN:
			args, pos, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args, Position: pos}
		default:
			return expr, nil
		}
	}
}

// parseArgs parses "(" [ expr ("," expr)* ] ")" — a trailing comma is not
// permitted.
func (p *Parser) parseArgs() ([]ast.Expression, token.Position, error) {
	open, err := p.consume(token.LPAREN, "to start argument list")
	if err != nil {
		return nil, token.Position{}, err
	}

	var args []ast.Expression
	for !p.at(token.RPAREN) {
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, token.Position{}, err
		}
		args = append(args, arg)

		if p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				return nil, token.Position{}, perr(p.cur().Pos, "trailing comma not permitted in argument list")
			}
			continue
		}
		break
	}

	if _, err := p.consume(token.RPAREN, "to close argument list"); err != nil {
		return nil, token.Position{}, err
	}
	return args, open.Pos, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()

	switch tok.Kind {
	case token.INTEGER:
		p.advance()
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, perr(tok.Pos, "invalid integer literal %q", tok.Value)
		}
		return &ast.Literal{Kind: ast.LitInt, Int: v, Position: tok.Pos}, nil

	case token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, perr(tok.Pos, "invalid float literal %q", tok.Value)
		}
		return &ast.Literal{Kind: ast.LitFloat, Float: v, Position: tok.Pos}, nil

	case token.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.LitString, Str: tok.Value, Position: tok.Pos}, nil

	case token.TRUE:
		p.advance()
		return &ast.Literal{Kind: ast.LitBool, Bool: true, Position: tok.Pos}, nil

	case token.FALSE:
		p.advance()
		return &ast.Literal{Kind: ast.LitBool, Bool: false, Position: tok.Pos}, nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "to close parenthesized expression"); err != nil {
			return nil, err
		}
		return inner, nil

	case token.IDENTIFIER:
		p.advance()
		return &ast.Identifier{Name: tok.Value, Position: tok.Pos}, nil

	default:
		return nil, perr(tok.Pos, "expected an expression, got %s", tok.Kind)
	}
}
