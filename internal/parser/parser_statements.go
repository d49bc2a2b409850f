package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
)

// parseStmt dispatches on the lookahead: compound statements are
// handled directly, everything else goes through the simple-statement
// line grammar.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.ahead.Type {
	case lexer.TokenIf:
		return p.parseIfStmt(lexer.TokenIf)
	case lexer.TokenWhile:
		return p.parseWhileStmt()
	case lexer.TokenFor:
		return p.parseForStmt()
	case lexer.TokenTry:
		return p.parseTryStmt()
	case lexer.TokenWith:
		return p.parseWithStmt()
	case lexer.TokenDef:
		return p.parseFuncDecl(nil)
	case lexer.TokenClass:
		return p.parseClassDecl(nil)
	case lexer.TokenAt:
		return p.parseDecorated()
	default:
		return p.parseSimpleStmt()
	}
}

// parseSimpleStmt parses one logical line of small statements joined
// by semicolons, ending at the newline.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	stmt := p.parseSmallStmt()
	if p.maybeConsume(lexer.TokenNewline) {
		return stmt
	}

	block := &ast.BlockStmt{Stmts: []ast.Stmt{stmt}}
	for p.maybeConsume(lexer.TokenSemicolon) {
		if p.ahead.Type == lexer.TokenNewline || p.ahead.Type == lexer.TokenEOF {
			break
		}
		block.Stmts = append(block.Stmts, p.parseSmallStmt())
	}
	if !p.match(lexer.TokenNewline) {
		p.skipTo(lexer.TokenNewline)
	}
	return block
}

func (p *Parser) parseSmallStmt() ast.Stmt {
	switch p.ahead.Type {
	case lexer.TokenPrint:
		return p.parsePrintStmt()
	case lexer.TokenDel:
		return p.parseDelStmt()
	case lexer.TokenPass:
		p.consume()
		return &ast.PassStmt{KeyLoc: p.last.Span}
	case lexer.TokenBreak:
		p.consume()
		return &ast.BreakStmt{KeyLoc: p.last.Span}
	case lexer.TokenContinue:
		p.consume()
		return &ast.ContinueStmt{KeyLoc: p.last.Span}
	case lexer.TokenReturn:
		return p.parseReturnStmt()
	case lexer.TokenRaise:
		return p.parseRaiseStmt()
	case lexer.TokenYield:
		return &ast.YieldStmt{X: p.parseYieldExpr()}
	case lexer.TokenImport, lexer.TokenFrom:
		return &ast.DeclStmt{Decl: p.parseImportDecl()}
	case lexer.TokenGlobal:
		return p.parseGlobalStmt()
	case lexer.TokenExec:
		return p.parseExecStmt()
	case lexer.TokenAssert:
		return p.parseAssertStmt()
	default:
		return p.parseExprStmt()
	}
}

// augOp maps a compound assignment token to its operator.
func augOp(tt lexer.TokenType) ast.Op {
	switch tt {
	case lexer.TokenPlusAssign:
		return ast.OpAdd
	case lexer.TokenMinusAssign:
		return ast.OpSub
	case lexer.TokenStarAssign:
		return ast.OpMul
	case lexer.TokenSlashAssign:
		return ast.OpDiv
	case lexer.TokenPercentAssign:
		return ast.OpMod
	case lexer.TokenAmperAssign:
		return ast.OpBitAnd
	case lexer.TokenPipeAssign:
		return ast.OpBitOr
	case lexer.TokenCaretAssign:
		return ast.OpBitXor
	case lexer.TokenShlAssign:
		return ast.OpShl
	case lexer.TokenShrAssign:
		return ast.OpShr
	case lexer.TokenDoubleStarAssign:
		return ast.OpPow
	case lexer.TokenDoubleSlashAssign:
		return ast.OpFloorDiv
	default:
		return ast.OpNone
	}
}

// parseExprStmt parses testlist (('=' (yield_expr | testlist))* |
// augassign (yield_expr | testlist)). Chained plain assignments nest:
// "a = b = 1" stores the inner assignment as the value of the outer.
func (p *Parser) parseExprStmt() ast.Stmt {
	exprs, _ := p.parseTestList()
	for {
		tt := p.ahead.Type
		if tt != lexer.TokenAssign && !tt.IsAugAssign() {
			break
		}
		p.consume()
		assign := &ast.AssignExpr{Targets: exprs, Aug: augOp(tt), OpLoc: p.last.Span}
		if p.ahead.Type == lexer.TokenYield {
			assign.Values.Append(p.parseYieldExpr())
		} else {
			assign.Values, _ = p.parseTestList()
		}
		exprs = ast.List[ast.Expr]{}
		exprs.Append(assign)
		if tt.IsAugAssign() {
			break
		}
	}
	return &ast.ExprStmt{Exprs: exprs}
}

// parsePrintStmt parses 'print' [ '>>' test [',' test+] | test+ ].
// A final comma suppresses the newline and is recorded on the node.
func (p *Parser) parsePrintStmt() ast.Stmt {
	p.match(lexer.TokenPrint)
	stmt := &ast.PrintStmt{KeyLoc: p.last.Span}

	wantTest := false
	if p.maybeConsume(lexer.TokenShr) {
		stmt.DestLoc = p.last.Span
		stmt.Dest = p.parseTest()
		if !p.maybeConsume(lexer.TokenComma) {
			return stmt
		}
		wantTest = true
	}

	if wantTest || p.isTestAhead() {
		stmt.Args.Append(p.parseTest())
		if p.maybeConsume(lexer.TokenComma) {
			stmt.Args.AppendDelim(p.last.Span)
			if p.isTestAhead() {
				rest, trailing := p.parseTestList()
				stmt.Args.Merge(rest)
				stmt.TrailingComma = trailing
			} else {
				stmt.TrailingComma = true
			}
		}
	}
	return stmt
}

func (p *Parser) parseDelStmt() ast.Stmt {
	p.match(lexer.TokenDel)
	stmt := &ast.DelStmt{KeyLoc: p.last.Span}
	stmt.Targets, _ = p.parseExprList()
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	p.match(lexer.TokenReturn)
	stmt := &ast.ReturnStmt{KeyLoc: p.last.Span}
	if p.isTestAhead() {
		stmt.Values, _ = p.parseTestList()
	}
	return stmt
}

// parseRaiseStmt parses 'raise' [test [',' test [',' test]]].
func (p *Parser) parseRaiseStmt() ast.Stmt {
	p.match(lexer.TokenRaise)
	stmt := &ast.RaiseStmt{KeyLoc: p.last.Span}
	if !p.isTestAhead() {
		return stmt
	}
	stmt.Exc = p.parseTest()
	if p.maybeConsume(lexer.TokenComma) {
		stmt.Arg = p.parseTest()
		if p.maybeConsume(lexer.TokenComma) {
			stmt.Traceback = p.parseTest()
		}
	}
	return stmt
}

func (p *Parser) parseGlobalStmt() ast.Stmt {
	p.match(lexer.TokenGlobal)
	group := &ast.VarGroup{KeyLoc: p.last.Span}
	group.Names, _ = parseList(p, lexer.TokenComma, p.isNameAhead, p.parseName, false)
	return &ast.DeclStmt{Decl: group}
}

// parseExecStmt parses 'exec' expr ['in' test [',' test]].
func (p *Parser) parseExecStmt() ast.Stmt {
	p.match(lexer.TokenExec)
	stmt := &ast.ExecStmt{KeyLoc: p.last.Span}
	stmt.Code = p.parseExpr()
	if p.maybeConsume(lexer.TokenIn) {
		stmt.InLoc = p.last.Span
		stmt.Globals = p.parseTest()
		if p.maybeConsume(lexer.TokenComma) {
			stmt.Locals = p.parseTest()
		}
	}
	return stmt
}

func (p *Parser) parseAssertStmt() ast.Stmt {
	p.match(lexer.TokenAssert)
	stmt := &ast.AssertStmt{KeyLoc: p.last.Span}
	stmt.Cond = p.parseTest()
	if p.maybeConsume(lexer.TokenComma) {
		stmt.Msg = p.parseTest()
	}
	return stmt
}

// parseImportDecl parses both import forms. The from-import counts
// leading dots for relative imports; three consecutive dots lex as an
// ellipsis token.
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	if p.ahead.Type == lexer.TokenImport {
		p.consume()
		decl := &ast.ImportDecl{KeyLoc: p.last.Span}
		for {
			mod := &ast.ImportModule{Name: p.parseDottedName()}
			if p.maybeConsume(lexer.TokenAs) {
				mod.AsLoc = p.last.Span
				mod.Alias = p.parseName()
			}
			decl.Modules.Append(mod)
			if !p.maybeConsume(lexer.TokenComma) {
				return decl
			}
			decl.Modules.AppendDelim(p.last.Span)
		}
	}

	p.match(lexer.TokenFrom)
	decl := &ast.ImportDecl{KeyLoc: p.last.Span}
	wantName := true
	for {
		if p.maybeConsume(lexer.TokenDot) {
			decl.Dots++
		} else if p.maybeConsume(lexer.TokenEllipsis) {
			decl.Dots += 3
		} else {
			break
		}
		decl.DotsLoc = position.Join(decl.DotsLoc, p.last.Span)
		wantName = false
	}

	if wantName || p.isNameAhead() {
		mod := &ast.ImportModule{Name: p.parseDottedName()}
		p.match(lexer.TokenImport)
		mod.SelectLoc = p.last.Span
		mod.Members = p.parseImportMembers()
		decl.Modules.Append(mod)
		return decl
	}

	// Dots-only relative form: from . import mod [as alias], ...
	p.match(lexer.TokenImport)
	for {
		mod := &ast.ImportModule{Name: p.parseName()}
		if p.maybeConsume(lexer.TokenAs) {
			mod.AsLoc = p.last.Span
			mod.Alias = p.parseName()
		}
		decl.Modules.Append(mod)
		if !p.maybeConsume(lexer.TokenComma) {
			return decl
		}
		decl.Modules.AppendDelim(p.last.Span)
	}
}

// parseImportMembers parses the selected names of a from-import: '*',
// or a name list with optional aliases, optionally parenthesized.
func (p *Parser) parseImportMembers() ast.List[*ast.ImportMember] {
	var members ast.List[*ast.ImportMember]

	if p.maybeConsume(lexer.TokenStar) {
		members.Append(&ast.ImportMember{Name: &ast.StarName{Span: p.last.Span}})
		return members
	}

	wantParen := p.maybeConsume(lexer.TokenLParen)
	for {
		member := &ast.ImportMember{Name: p.parseName()}
		if p.maybeConsume(lexer.TokenAs) {
			member.AsLoc = p.last.Span
			member.Alias = p.parseName()
		}
		members.Append(member)
		if !p.maybeConsume(lexer.TokenComma) {
			break
		}
		members.AppendDelim(p.last.Span)
		if wantParen && p.ahead.Type == lexer.TokenRParen {
			break
		}
	}
	if wantParen {
		if !p.match(lexer.TokenRParen) {
			p.skipTo(lexer.TokenRParen)
		}
	}
	return members
}

// parseIfStmt parses if/elif/else. Each elif restarts here and nests
// as the else branch of the previous condition.
func (p *Parser) parseIfStmt(key lexer.TokenType) ast.Stmt {
	p.match(key)
	stmt := &ast.IfStmt{IfLoc: p.last.Span}
	stmt.Cond = p.parseTest()
	p.match(lexer.TokenColon)
	stmt.Body = p.parseSuite()

	switch p.ahead.Type {
	case lexer.TokenElif:
		stmt.Else = p.parseIfStmt(lexer.TokenElif)
	case lexer.TokenElse:
		p.consume()
		stmt.ElseLoc = p.last.Span
		p.match(lexer.TokenColon)
		stmt.Else = p.parseSuite()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	p.match(lexer.TokenWhile)
	stmt := &ast.WhileStmt{KeyLoc: p.last.Span}
	stmt.Cond = p.parseTest()
	p.match(lexer.TokenColon)
	stmt.Body = p.parseSuite()
	if p.maybeConsume(lexer.TokenElse) {
		stmt.ElseLoc = p.last.Span
		p.match(lexer.TokenColon)
		stmt.Else = p.parseSuite()
	}
	return stmt
}

func (p *Parser) parseForStmt() ast.Stmt {
	p.match(lexer.TokenFor)
	stmt := &ast.ForStmt{KeyLoc: p.last.Span}
	stmt.Targets, _ = p.parseExprList()
	p.match(lexer.TokenIn)
	stmt.InLoc = p.last.Span
	stmt.Iter, _ = p.parseTestList()
	p.match(lexer.TokenColon)
	stmt.Body = p.parseSuite()
	if p.maybeConsume(lexer.TokenElse) {
		stmt.ElseLoc = p.last.Span
		p.match(lexer.TokenColon)
		stmt.Else = p.parseSuite()
	}
	return stmt
}

// parseTryStmt parses try/except/else/finally. An else clause is only
// legal after at least one except and at most once; a try with no
// except clauses must end in finally.
func (p *Parser) parseTryStmt() ast.Stmt {
	p.match(lexer.TokenTry)
	stmt := &ast.TryStmt{KeyLoc: p.last.Span}
	p.match(lexer.TokenColon)
	stmt.Body = p.parseSuite()

	badClause := false
	for {
		switch p.ahead.Type {
		case lexer.TokenExcept:
			stmt.Catches = append(stmt.Catches, p.parseCatchClause())

		case lexer.TokenElse:
			if len(stmt.Catches) == 0 || stmt.Else != nil {
				// Report once, then discard the whole clause so the
				// statements after it still parse cleanly.
				p.failMatch(true)
				badClause = true
				p.match(lexer.TokenColon)
				p.parseSuite()
				continue
			}
			p.consume()
			stmt.ElseLoc = p.last.Span
			p.match(lexer.TokenColon)
			stmt.Else = p.parseSuite()

		case lexer.TokenFinally:
			p.consume()
			fin := &ast.FinallyClause{KeyLoc: p.last.Span}
			p.match(lexer.TokenColon)
			fin.Body = p.parseSuite()
			stmt.Finally = fin
			return stmt

		default:
			if len(stmt.Catches) == 0 && !badClause {
				p.failMatch(false)
			}
			return stmt
		}
	}
}

// parseCatchClause parses 'except' [test [('as' | ',') name]] ':'
// suite. The binding must be a plain name.
func (p *Parser) parseCatchClause() *ast.CatchClause {
	p.match(lexer.TokenExcept)
	clause := &ast.CatchClause{KeyLoc: p.last.Span}

	if p.isTestAhead() {
		clause.Exc = p.parseTest()
		if p.ahead.Type == lexer.TokenAs || p.ahead.Type == lexer.TokenComma {
			p.consume()
			clause.AsLoc = p.last.Span
			binding := p.parseTest()
			if name, ok := identName(binding); ok {
				clause.Binding = name
			} else {
				p.ctx.report(diagnostics.NameRequired, binding.GetSpan())
			}
		}
	}

	p.match(lexer.TokenColon)
	clause.ColonLoc = p.last.Span
	clause.Body = p.parseSuite()
	return clause
}

func (p *Parser) parseWithStmt() ast.Stmt {
	p.match(lexer.TokenWith)
	stmt := &ast.WithStmt{KeyLoc: p.last.Span}
	stmt.Items, _ = parseList(p, lexer.TokenComma, p.isTestAhead, p.parseWithItem, false)
	p.match(lexer.TokenColon)
	stmt.ColonLoc = p.last.Span
	stmt.Body = p.parseSuite()
	return stmt
}

// parseWithItem parses test ['as' expr], representing the bound form
// as an assignment.
func (p *Parser) parseWithItem() ast.Expr {
	test := p.parseTest()
	if !p.maybeConsume(lexer.TokenAs) {
		return test
	}
	assign := &ast.AssignExpr{OpLoc: p.last.Span}
	assign.Targets.Append(test)
	assign.Values.Append(p.parseExpr())
	return assign
}

// parseDecorated parses a run of decorator lines followed by the def
// or class they apply to.
func (p *Parser) parseDecorated() ast.Stmt {
	var decorators []*ast.Decorator
	for {
		p.match(lexer.TokenAt)
		dec := &ast.Decorator{AtLoc: p.last.Span, Name: p.parseDottedName()}
		if p.maybeConsume(lexer.TokenLParen) {
			dec.HasCall = true
			dec.Lparen = p.last.Span
			if p.isArgAhead() {
				dec.Args = p.parseArgList()
			}
			if !p.match(lexer.TokenRParen) {
				p.skipTo(lexer.TokenRParen)
			}
			dec.Rparen = p.last.Span
		}
		if !p.match(lexer.TokenNewline) {
			p.skipTo(lexer.TokenNewline)
		}
		decorators = append(decorators, dec)
		if p.ahead.Type != lexer.TokenAt {
			break
		}
	}

	switch p.ahead.Type {
	case lexer.TokenDef:
		return p.parseFuncDecl(decorators)
	case lexer.TokenClass:
		return p.parseClassDecl(decorators)
	default:
		p.failMatch(true)
		return &ast.BadStmt{Span: p.last.Span}
	}
}

func (p *Parser) parseFuncDecl(decorators []*ast.Decorator) ast.Stmt {
	p.match(lexer.TokenDef)
	spec := &ast.FuncSpec{KeyLoc: p.last.Span}
	decl := &ast.FuncDecl{Decorators: decorators, Spec: spec}
	decl.Name = p.parseName()
	p.match(lexer.TokenLParen)
	spec.Params = p.parseParamClause(true)
	p.match(lexer.TokenColon)
	spec.ColonLoc = p.last.Span
	decl.Body = p.parseSuite()
	return &ast.DeclStmt{Decl: decl}
}

// parseParamClause parses the formal parameter grammar shared by def
// and lambda. Plain parameters with optional defaults come first, then
// at most one *name, then at most one **name. wantParen is set for the
// def form, where the clause closes at a right parenthesis.
func (p *Parser) parseParamClause(wantParen bool) *ast.ParamClause {
	clause := &ast.ParamClause{}
	if wantParen {
		clause.Lparen = p.last.Span
	}

	seenStar := false
	for {
		takeComma := true
		switch p.ahead.Type {
		case lexer.TokenIdentifier:
			if seenStar {
				p.consume()
				break
			}
			param := &ast.Param{Kind: ast.PlainParam, Name: p.parseName()}
			if p.maybeConsume(lexer.TokenAssign) {
				param.AssignLoc = p.last.Span
				param.Default = p.parseTest()
			}
			clause.Params.Append(param)

		case lexer.TokenStar:
			if seenStar {
				takeComma = false
				break
			}
			seenStar = true
			p.consume()
			starLoc := p.last.Span
			clause.Params.Append(&ast.Param{Kind: ast.ListParam, StarLoc: starLoc, Name: p.parseName()})

		case lexer.TokenDoubleStar:
			p.consume()
			starLoc := p.last.Span
			clause.Params.Append(&ast.Param{Kind: ast.MapParam, StarLoc: starLoc, Name: p.parseName()})
			takeComma = false

		default:
			takeComma = false
		}

		if !takeComma || !p.maybeConsume(lexer.TokenComma) {
			break
		}
		clause.Params.AppendDelim(p.last.Span)
	}

	if wantParen {
		if !p.match(lexer.TokenRParen) {
			p.skipTo(lexer.TokenRParen)
		}
		clause.Rparen = p.last.Span
	}
	return clause
}

func (p *Parser) parseClassDecl(decorators []*ast.Decorator) ast.Stmt {
	p.match(lexer.TokenClass)
	spec := &ast.RecordSpec{KeyLoc: p.last.Span}
	decl := &ast.ClassDecl{Decorators: decorators, Spec: spec}
	decl.Name = p.parseName()

	if p.maybeConsume(lexer.TokenLParen) {
		if p.isTestAhead() {
			bases, _ := p.parseTestList()
			// Only identifier-shaped bases are kept as names.
			for i, base := range bases.Items {
				if name, ok := identName(base); ok {
					spec.Bases.Append(ast.Name(name))
					if i < len(bases.Delims) {
						spec.Bases.AppendDelim(bases.Delims[i])
					}
				}
			}
		}
		if !p.match(lexer.TokenRParen) {
			p.skipTo(lexer.TokenRParen)
		}
	}

	p.match(lexer.TokenColon)
	spec.ColonLoc = p.last.Span
	decl.Body = p.parseSuite()
	return &ast.DeclStmt{Decl: decl}
}

// parseSuite parses the body of a compound statement: either small
// statements on the same line, or a newline followed by an indented
// block.
func (p *Parser) parseSuite() ast.Stmt {
	if !p.maybeConsume(lexer.TokenNewline) {
		return p.parseSimpleStmt()
	}

	p.match(lexer.TokenIndent)
	block := &ast.BlockStmt{}
	block.Stmts = append(block.Stmts, p.parseStmt())
	for !p.maybeConsume(lexer.TokenDedent) {
		if p.ahead.Type == lexer.TokenEOF {
			break
		}
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	return block
}
