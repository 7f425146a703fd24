// Package parser implements Lumen's parser: recursive descent for statements,
// Pratt-style precedence climbing for expressions. No backtracking, one-token
// lookahead.
package parser

import (
	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/diagnostic"
	"github.com/lumen-lang/lumenc/internal/lexer"
	"github.com/lumen-lang/lumenc/internal/token"
)

// Parser holds a token vector and a cursor into it.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse tokenizes source under filename and parses it into a Program. It
// returns the first diagnostic encountered — lexing or parsing — since
// parsing aborts at the first error (spec §4.2 Errors).
func Parse(source, filename string) (*ast.Program, error) {
	toks := lexer.Tokenize(source, filename)
	if last := toks[len(toks)-1]; last.Kind == token.ERROR {
		return nil, diagnostic.New(diagnostic.Lexer, last.Pos, "%s", last.Value)
	}

	p := &Parser{tokens: toks}
	return p.parseProgram()
}

func New(toks []token.Token) *Parser {
	return &Parser{tokens: toks}
}

func (p *Parser) cur() token.Token  { return p.tokens[p.pos] }
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

// consume requires the current token be of kind k, advancing past it; any
// mismatch raises a structured parse error at the current token's location.
func (p *Parser) consume(k token.Kind, context string) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, diagnostic.New(diagnostic.Parser, p.cur().Pos,
			"expected %s %s, got %s", k, context, p.cur().Kind)
	}
	return p.advance(), nil
}

func perr(pos token.Position, format string, args ...any) error {
	return diagnostic.New(diagnostic.Parser, pos, format, args...)
}

// ParseProgram parses a full Program from the parser's token vector.
func (p *Parser) ParseProgram() (*ast.Program, error) { return p.parseProgram() }

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

// parseBlock parses "{" stmt* "}".
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.consume(token.LBRACE, "to start block"); err != nil {
		return nil, err
	}

	var stmts []ast.Statement
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.consume(token.RBRACE, "to close block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) skipSemicolons() {
	for p.at(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	defer p.skipSemicolons()

	switch p.cur().Kind {
	case token.LET, token.CONST, token.VAR:
		return p.parseLet()
	case token.FUNC:
		return p.parseFunc()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		pos := p.advance().Pos
		return &ast.Break{Position: pos}, nil
	case token.CONTINUE:
		pos := p.advance().Pos
		return &ast.Continue{Position: pos}, nil
	case token.IMPORT:
		return p.parseImport()
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseType() (ast.TypeExpr, error) {
	tok := p.cur()

	var name string
	switch tok.Kind {
	case token.KW_INT, token.KW_FLOAT, token.KW_BOOL, token.KW_CHAR,
		token.KW_STRING, token.KW_VOID, token.KW_ANY, token.IDENTIFIER:
		name = tok.Value
		p.advance()
	default:
		return ast.TypeExpr{}, perr(tok.Pos, "expected a type, got %s", tok.Kind)
	}

	te := ast.TypeExpr{Name: name, Position: tok.Pos}
	// "?" is not currently produced by the lexer as a distinct token (spec §4.2);
	// optionality is always false for the core grammar.
	return te, nil
}

func (p *Parser) parseLet() (ast.Statement, error) {
	kw := p.advance() // let | const | var
	mutable := kw.Kind == token.VAR

	name, err := p.consume(token.IDENTIFIER, "as declaration name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON, "after declaration name"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.ASSIGN, "in let statement"); err != nil {
		return nil, err
	}
	val, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	return &ast.Let{Name: name.Value, Type: typ, Value: val, Mutable: mutable, Position: kw.Pos}, nil
}

func (p *Parser) parseFunc() (ast.Statement, error) {
	kw := p.advance() // func
	name, err := p.consume(token.IDENTIFIER, "as function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPAREN, "to start parameter list"); err != nil {
		return nil, err
	}

	var params []ast.Param
	for !p.at(token.RPAREN) {
		pname, err := p.consume(token.IDENTIFIER, "as parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.COLON, "after parameter name"); err != nil {
			return nil, err
		}
		ptyp, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pname.Value, Type: ptyp})

		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.consume(token.RPAREN, "to close parameter list"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.ARROW, "before return type"); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{Name: name.Value, Params: params, ReturnType: retType, Body: body, Position: kw.Pos}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	kw := p.advance() // if
	if _, err := p.consume(token.LPAREN, "after if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "after if condition"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock []ast.Statement
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBlock = []ast.Statement{elseIf}
		} else {
			elseBlock, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}

	return &ast.If{Cond: cond, Then: then, Else: elseBlock, Position: kw.Pos}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	kw := p.advance() // while
	if _, err := p.consume(token.LPAREN, "after while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Position: kw.Pos}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	kw := p.advance() // for
	if _, err := p.consume(token.LPAREN, "after for"); err != nil {
		return nil, err
	}

	initStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	// trailing ";" after the condition is optionally consumed (spec §4.2).
	if p.at(token.SEMICOLON) {
		p.advance()
	}

	updateStmt, err := p.parseExprOrAssignStatement()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.RPAREN, "after for clauses"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.For{Init: initStmt, Cond: cond, Update: updateStmt, Body: body, Position: kw.Pos}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	kw := p.advance() // return

	if p.at(token.RBRACE) || p.at(token.EOF) {
		return &ast.Return{Position: kw.Pos}, nil
	}

	val, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: val, Position: kw.Pos}, nil
}

func (p *Parser) parseImport() (ast.Statement, error) {
	kw := p.advance() // import
	name, err := p.consume(token.IDENTIFIER, "as import name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.FROM, "after import name"); err != nil {
		return nil, err
	}
	first, err := p.consume(token.IDENTIFIER, "as import module path")
	if err != nil {
		return nil, err
	}
	path := []string{first.Value}
	for p.at(token.SCOPE) {
		p.advance()
		seg, err := p.consume(token.IDENTIFIER, "in import module path")
		if err != nil {
			return nil, err
		}
		path = append(path, seg.Value)
	}

	return &ast.Import{Name: name.Value, Path: path, Position: kw.Pos}, nil
}

// parseExprOrAssignStatement parses either an Assign (IDENT "=" expr) or a
// plain ExprStmt. Any other assignment target is a parse error.
func (p *Parser) parseExprOrAssignStatement() (ast.Statement, error) {
	startPos := p.cur().Pos
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.at(token.ASSIGN) {
		p.advance()
		ident, ok := expr.(*ast.Identifier)
		if !ok {
			return nil, perr(startPos, "Invalid assignment target")
		}
		val, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: ident.Name, Value: val, Position: startPos}, nil
	}

	return &ast.ExprStmt{Expr: expr, Position: startPos}, nil
}
