// Package parser implements the Pythia recursive descent parser: a
// single-token-lookahead driver over the lexer, a generic combinator
// for delimiter-separated lists, a precedence-climbing expression
// engine, and the statement grammar. Errors never abort a parse; they
// are reported to the context's diagnostics bag at the location of the
// last consumed token and parsing resynchronizes at a known delimiter.
package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
)

// Parser holds the token stream state of one parse.
type Parser struct {
	lexer *lexer.Lexer
	ctx   *Context
	ahead lexer.Token
	last  lexer.Token // most recently consumed token; diagnostics anchor
}

// Parse runs the grammar over the lexer's token stream. It returns
// true when at least one statement was produced; only then does the
// context take ownership of the tree.
func Parse(lx *lexer.Lexer, ctx *Context) bool {
	p := &Parser{lexer: lx, ctx: ctx}
	p.consume()

	var stmts []ast.Stmt
	for p.ahead.Type != lexer.TokenEOF {
		if p.maybeConsume(lexer.TokenNewline) {
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}

	if len(stmts) == 0 {
		return false
	}
	prog := &ast.Program{Stmts: stmts}
	prog.Span = position.Join(stmts[0].GetSpan(), stmts[len(stmts)-1].GetSpan())
	ctx.takeAST(prog)
	return true
}

// consume shifts the lookahead by one token.
func (p *Parser) consume() {
	p.last = p.ahead
	p.ahead = p.lexer.NextToken()
}

// maybeConsume consumes the lookahead only when it has the given type.
func (p *Parser) maybeConsume(tt lexer.TokenType) bool {
	if p.ahead.Type == tt {
		p.consume()
		return true
	}
	return false
}

// match consumes the lookahead regardless and reports when it was not
// of the expected type, keeping the stream moving through errors.
func (p *Parser) match(tt lexer.TokenType) bool {
	actual := p.ahead.Type
	p.consume()
	if actual != tt {
		p.failMatch(false)
		return false
	}
	return true
}

// skipTo discards tokens until the lookahead is of the given type or
// the input ends. The resynchronization token itself is not consumed.
func (p *Parser) skipTo(tt lexer.TokenType) {
	for p.ahead.Type != tt && p.ahead.Type != lexer.TokenEOF {
		p.consume()
	}
}

// failMatch reports an unexpected token at the last consumed location,
// optionally consuming the offending lookahead first.
func (p *Parser) failMatch(consume bool) {
	if consume {
		p.consume()
	}
	p.report(diagnostics.UnexpectedToken)
}

func (p *Parser) report(kind diagnostics.Kind) {
	p.ctx.report(kind, p.last.Span)
}

// parseList parses a separator-delimited sequence: one mandatory item,
// then further items after each separator. With trailingOK, a
// separator followed by no item terminates the list; the returned
// boolean tells the caller that this happened, so non-list grammar
// (a *args/**kwargs tail, say) can be attempted next.
func parseList[T ast.Node](
	p *Parser,
	sep lexer.TokenType,
	isAhead func() bool,
	parseItem func() T,
	trailingOK bool,
) (ast.List[T], bool) {
	var list ast.List[T]
	for {
		list.Append(parseItem())
		if !p.maybeConsume(sep) {
			return list, false
		}
		list.AppendDelim(p.last.Span)
		if trailingOK && !isAhead() {
			return list, true
		}
	}
}

// parseName consumes one token and yields its identifier. When the
// token was not an identifier the error is reported and the name comes
// back empty, keeping the tree total.
func (p *Parser) parseName() *ast.SimpleName {
	if p.match(lexer.TokenIdentifier) {
		return &ast.SimpleName{Span: p.last.Span, Value: p.last.Literal}
	}
	return &ast.SimpleName{Span: p.last.Span}
}

// parseDottedName parses NAME ('.' NAME)*.
func (p *Parser) parseDottedName() ast.Name {
	names, _ := parseList(p, lexer.TokenDot, p.isNameAhead, p.parseName, false)
	if names.Len() == 1 {
		return names.Items[0]
	}
	return &ast.DottedName{Names: names}
}

// identName extracts the plain identifier behind an expression, when
// there is one.
func identName(e ast.Expr) (*ast.SimpleName, bool) {
	ident, ok := e.(*ast.IdentExpr)
	if !ok {
		return nil, false
	}
	name, ok := ident.Name.(*ast.SimpleName)
	return name, ok
}

// ===== Lookahead predicates =====

func (p *Parser) isNameAhead() bool {
	return p.ahead.Type == lexer.TokenIdentifier
}

func (p *Parser) isTestAhead() bool {
	if p.ahead.Type == lexer.TokenLambda || p.ahead.Type == lexer.TokenNot {
		return true
	}
	return p.isExprAhead()
}

func (p *Parser) isExprAhead() bool {
	switch p.ahead.Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenTilde:
		return true
	default:
		return p.isAtomAhead()
	}
}

func (p *Parser) isAtomAhead() bool {
	switch p.ahead.Type {
	case lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenBacktick, lexer.TokenIdentifier,
		lexer.TokenInteger, lexer.TokenFloat, lexer.TokenString,
		lexer.TokenNone, lexer.TokenTrue, lexer.TokenFalse:
		return true
	default:
		return false
	}
}

func (p *Parser) isArgAhead() bool {
	switch p.ahead.Type {
	case lexer.TokenStar, lexer.TokenDoubleStar:
		return true
	default:
		return p.isTestAhead()
	}
}

func (p *Parser) isSubscriptAhead() bool {
	switch p.ahead.Type {
	case lexer.TokenEllipsis, lexer.TokenColon:
		return true
	default:
		return p.isTestAhead()
	}
}
