package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/position"
)

// precedence orders the binary-operator levels of the expression
// grammar. Comparisons, boolean operators, and the power operator live
// outside this table.
type precedence int

const (
	precZero precedence = iota
	precOr
	precXor
	precAnd
	precShift
	precTerm
	precFactor
)

// precAhead maps the lookahead to its binary-operator level, or
// precZero when it is not a binary operator.
func (p *Parser) precAhead() (precedence, ast.Op) {
	switch p.ahead.Type {
	case lexer.TokenPipe:
		return precOr, ast.OpBitOr
	case lexer.TokenCaret:
		return precXor, ast.OpBitXor
	case lexer.TokenAmper:
		return precAnd, ast.OpBitAnd
	case lexer.TokenShl:
		return precShift, ast.OpShl
	case lexer.TokenShr:
		return precShift, ast.OpShr
	case lexer.TokenPlus:
		return precTerm, ast.OpAdd
	case lexer.TokenMinus:
		return precTerm, ast.OpSub
	case lexer.TokenStar:
		return precFactor, ast.OpMul
	case lexer.TokenSlash:
		return precFactor, ast.OpDiv
	case lexer.TokenDoubleSlash:
		return precFactor, ast.OpFloorDiv
	case lexer.TokenPercent:
		return precFactor, ast.OpMod
	default:
		return precZero, ast.OpNone
	}
}

// parseTest parses the full conditional expression grammar:
// or_test ['if' or_test 'else' test] | lambdef.
func (p *Parser) parseTest() ast.Expr {
	if p.ahead.Type == lexer.TokenLambda {
		return p.parseLambda(p.parseTest)
	}

	orTest := p.parseOrTest()
	if p.maybeConsume(lexer.TokenIf) {
		cond := &ast.CondExpr{Then: orTest, IfLoc: p.last.Span, Cond: p.parseOrTest()}
		p.match(lexer.TokenElse)
		cond.ElseLoc = p.last.Span
		cond.Else = p.parseTest()
		return cond
	}
	return orTest
}

// parseOldTest parses the restricted test used in comprehension
// filters and their lambda bodies, which excludes the conditional
// form.
func (p *Parser) parseOldTest() ast.Expr {
	if p.ahead.Type == lexer.TokenLambda {
		return p.parseLambda(p.parseOldTest)
	}
	return p.parseOrTest()
}

// parseLambda parses 'lambda' [varargslist] ':' body, with the body
// grammar supplied by the caller.
func (p *Parser) parseLambda(body func() ast.Expr) ast.Expr {
	p.match(lexer.TokenLambda)
	l := &ast.LambdaExpr{KeyLoc: p.last.Span}
	l.Params = p.parseParamClause(false)
	p.match(lexer.TokenColon)
	l.ColonLoc = p.last.Span
	l.Body = body()
	return l
}

// parseOrTest parses and_test ('or' and_test)*.
func (p *Parser) parseOrTest() ast.Expr {
	left := p.parseAndTest()
	for p.maybeConsume(lexer.TokenOr) {
		opLoc := p.last.Span
		left = &ast.BinaryExpr{Left: left, Op: ast.OpOr, OpLoc: opLoc, Right: p.parseAndTest()}
	}
	return left
}

// parseAndTest parses not_test ('and' not_test)*.
func (p *Parser) parseAndTest() ast.Expr {
	left := p.parseNotTest()
	for p.maybeConsume(lexer.TokenAnd) {
		opLoc := p.last.Span
		left = &ast.BinaryExpr{Left: left, Op: ast.OpAnd, OpLoc: opLoc, Right: p.parseNotTest()}
	}
	return left
}

// parseNotTest parses 'not' not_test | comparison.
func (p *Parser) parseNotTest() ast.Expr {
	if p.maybeConsume(lexer.TokenNot) {
		return &ast.UnaryExpr{Op: ast.OpNot, OpLoc: p.last.Span, Operand: p.parseNotTest()}
	}
	return p.parseComparison()
}

// parseComparison parses expr (comp_op expr)*, left-associative.
// "is not" and "not in" are recognized as two-token operators.
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseExpr()
	for {
		var op ast.Op
		switch p.ahead.Type {
		case lexer.TokenLt:
			op = ast.OpLt
		case lexer.TokenGt:
			op = ast.OpGt
		case lexer.TokenLe:
			op = ast.OpLe
		case lexer.TokenGe:
			op = ast.OpGe
		case lexer.TokenEq:
			op = ast.OpEq
		case lexer.TokenNe:
			op = ast.OpNe
		case lexer.TokenIn:
			op = ast.OpIn
		case lexer.TokenIs:
			op = ast.OpIs
		case lexer.TokenNot: // must be 'not in'
			p.consume()
			p.match(lexer.TokenIn)
			opLoc := p.last.Span
			left = &ast.BinaryExpr{Left: left, Op: ast.OpNotIn, OpLoc: opLoc, Right: p.parseExpr()}
			continue
		default:
			return left
		}
		p.consume()
		opLoc := p.last.Span
		if op == ast.OpIs && p.maybeConsume(lexer.TokenNot) {
			op = ast.OpIsNot
			opLoc = position.Join(opLoc, p.last.Span)
		}
		left = &ast.BinaryExpr{Left: left, Op: op, OpLoc: opLoc, Right: p.parseExpr()}
	}
}

// parseExpr parses the arithmetic/bitwise grammar, from bitwise-or
// down to term and factor.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr climbs the precedence levels: operators below the
// current minimum return control to the caller; an accepted operator
// parses its right operand one level tighter, so equal-precedence
// chains associate left.
func (p *Parser) parseBinaryExpr(min precedence) ast.Expr {
	left := p.parseFactor()
	for {
		prec, op := p.precAhead()
		if prec < min {
			return left
		}
		p.consume()
		opLoc := p.last.Span
		right := p.parseBinaryExpr(prec + 1)
		left = &ast.BinaryExpr{Left: left, Op: op, OpLoc: opLoc, Right: right}
	}
}

// parseFactor parses ('+'|'-'|'~') factor | power.
func (p *Parser) parseFactor() ast.Expr {
	var op ast.Op
	switch p.ahead.Type {
	case lexer.TokenPlus:
		op = ast.OpPos
	case lexer.TokenMinus:
		op = ast.OpNeg
	case lexer.TokenTilde:
		op = ast.OpInvert
	default:
		return p.parsePower()
	}
	p.consume()
	return &ast.UnaryExpr{Op: op, OpLoc: p.last.Span, Operand: p.parseFactor()}
}

// parsePower parses atom trailer* ['**' factor]. Trailers are calls,
// subscripts, and member accesses, applied left to right; the power
// operator then binds the whole chain to a right-associative exponent.
func (p *Parser) parsePower() ast.Expr {
	atom := p.parseAtom()
	for {
		switch p.ahead.Type {
		case lexer.TokenLParen:
			p.consume()
			call := &ast.CallExpr{Fn: atom, Lparen: p.last.Span}
			if p.isArgAhead() {
				call.Args = p.parseArgList()
			}
			if !p.match(lexer.TokenRParen) {
				p.skipTo(lexer.TokenRParen)
			}
			call.Rparen = p.last.Span
			atom = call

		case lexer.TokenLBracket:
			p.consume()
			sub := &ast.SubscriptExpr{Target: atom, Lbracket: p.last.Span}
			sub.Index = p.parseSubscriptList()
			if !p.match(lexer.TokenRBracket) {
				p.skipTo(lexer.TokenRBracket)
			}
			sub.Rbracket = p.last.Span
			atom = sub

		case lexer.TokenDot:
			p.consume()
			atom = &ast.MemberExpr{Target: atom, DotLoc: p.last.Span, Sel: p.parseName()}

		default:
			if p.maybeConsume(lexer.TokenDoubleStar) {
				opLoc := p.last.Span
				return &ast.BinaryExpr{Left: atom, Op: ast.OpPow, OpLoc: opLoc, Right: p.parseFactor()}
			}
			return atom
		}
	}
}

// parseAtom parses the leaf expression forms and the bracketed
// container forms.
func (p *Parser) parseAtom() ast.Expr {
	switch p.ahead.Type {
	case lexer.TokenLParen:
		return p.parseWrappedOrTuple()

	case lexer.TokenLBrace:
		return p.parseDictOrSetMaker()

	case lexer.TokenLBracket:
		return p.parseListMaker()

	case lexer.TokenBacktick:
		// Legacy repr form. The inner expressions are parsed for
		// error reporting and discarded.
		p.consume()
		start := p.last.Span
		parseList(p, lexer.TokenComma, p.isTestAhead, p.parseTest, false)
		if !p.match(lexer.TokenBacktick) {
			p.skipTo(lexer.TokenBacktick)
		}
		return &ast.StrLit{Span: position.Join(start, p.last.Span)}

	case lexer.TokenIdentifier:
		return &ast.IdentExpr{Name: p.parseName()}

	case lexer.TokenInteger:
		p.consume()
		return &ast.NumLit{Span: p.last.Span, Kind: ast.IntNum, Text: p.last.Literal}

	case lexer.TokenFloat:
		p.consume()
		return &ast.NumLit{Span: p.last.Span, Kind: ast.FloatNum, Text: p.last.Literal}

	case lexer.TokenNone:
		p.consume()
		return &ast.NoneLit{Span: p.last.Span}

	case lexer.TokenTrue, lexer.TokenFalse:
		isTrue := p.ahead.Type == lexer.TokenTrue
		p.consume()
		return &ast.BoolLit{Span: p.last.Span, Value: isTrue}

	case lexer.TokenString:
		return p.parseStrLit()

	default:
		p.failMatch(true)
		return &ast.BadExpr{Span: p.last.Span}
	}
}

// parseStrLit parses one string literal and chains adjacent literals
// into a right-leaning concatenation.
func (p *Parser) parseStrLit() ast.Expr {
	p.match(lexer.TokenString)
	str := &ast.StrLit{Span: p.last.Span, Text: p.last.Literal}
	if p.ahead.Type == lexer.TokenString {
		return &ast.ConcatExpr{Left: str, Right: p.parseStrLit()}
	}
	return str
}

// parseSubscriptList parses subscript (',' subscript)* [','],
// yielding a tuple node when more than one subscript appears.
func (p *Parser) parseSubscriptList() ast.Expr {
	subs, _ := parseList(p, lexer.TokenComma, p.isSubscriptAhead, p.parseSubscript, true)
	if subs.Len() == 1 {
		return subs.Items[0]
	}
	return &ast.TupleLit{Elems: subs}
}

// parseSubscript parses '...' | test | [test] ':' [test] [sliceop].
func (p *Parser) parseSubscript() ast.Expr {
	switch p.ahead.Type {
	case lexer.TokenEllipsis:
		p.consume()
		return &ast.EllipsisLit{Span: p.last.Span}

	case lexer.TokenColon:
		p.consume()
		return p.completeRange(nil)

	default:
		test := p.parseTest()
		if p.maybeConsume(lexer.TokenColon) {
			return p.completeRange(test)
		}
		return test
	}
}

// completeRange finishes a slice whose first colon was just consumed.
func (p *Parser) completeRange(low ast.Expr) ast.Expr {
	r := &ast.RangeExpr{Low: low, ColonLoc: p.last.Span}
	if p.isTestAhead() {
		r.High = p.parseTest()
	}
	if p.maybeConsume(lexer.TokenColon) {
		r.Colon2 = p.last.Span
	}
	if p.isTestAhead() {
		r.Step = p.parseTest()
	}
	return r
}

// parseWrappedOrTuple disambiguates the parenthesized forms:
// () and (x,) and (x, y) are tuples, (x) is a wrapped expression,
// (x for ...) is a generator, (yield ...) wraps a yield.
func (p *Parser) parseWrappedOrTuple() ast.Expr {
	p.match(lexer.TokenLParen)
	lparen := p.last.Span

	if p.maybeConsume(lexer.TokenRParen) {
		return &ast.TupleLit{Lparen: lparen, Rparen: p.last.Span}
	}

	if p.ahead.Type == lexer.TokenYield {
		return p.completeWrapped(lparen, func() ast.Expr { return p.parseYieldExpr() })
	}

	test := p.parseTest()
	switch p.ahead.Type {
	case lexer.TokenFor:
		return p.completeWrapped(lparen, func() ast.Expr {
			compre := &ast.CompreExpr{Kind: ast.GeneratorCompre, Elem: test}
			p.parseListFor(compre)
			return compre
		})

	case lexer.TokenComma:
		p.consume()
		tuple := &ast.TupleLit{Lparen: lparen}
		tuple.Elems.Append(test)
		tuple.Elems.AppendDelim(p.last.Span)
		if p.isTestAhead() {
			rest, _ := p.parseTestList()
			tuple.Elems.Merge(rest)
		}
		if !p.match(lexer.TokenRParen) {
			p.skipTo(lexer.TokenRParen)
		}
		tuple.Rparen = p.last.Span
		return tuple

	default:
		return p.completeWrapped(lparen, func() ast.Expr { return test })
	}
}

func (p *Parser) completeWrapped(lparen position.Span, build func() ast.Expr) ast.Expr {
	x := build()
	if !p.match(lexer.TokenRParen) {
		p.skipTo(lexer.TokenRParen)
	}
	return &ast.WrappedExpr{Lparen: lparen, X: x, Rparen: p.last.Span}
}

// parseListMaker parses '[' [listmaker] ']': a list literal or a list
// comprehension when 'for' follows the first element.
func (p *Parser) parseListMaker() ast.Expr {
	p.match(lexer.TokenLBracket)
	lbracket := p.last.Span

	lit := &ast.ListLit{Lbracket: lbracket}
	if p.maybeConsume(lexer.TokenRBracket) {
		lit.Rbracket = p.last.Span
		return lit
	}

	test := p.parseTest()
	if p.ahead.Type == lexer.TokenFor {
		compre := &ast.CompreExpr{Kind: ast.ListCompre, LDelim: lbracket, Elem: test}
		p.parseListFor(compre)
		if !p.match(lexer.TokenRBracket) {
			p.skipTo(lexer.TokenRBracket)
		}
		compre.RDelim = p.last.Span
		return compre
	}

	lit.Elems.Append(test)
	if p.maybeConsume(lexer.TokenComma) {
		lit.Elems.AppendDelim(p.last.Span)
		if p.isTestAhead() {
			rest, _ := p.parseTestList()
			lit.Elems.Merge(rest)
		}
	}
	if !p.match(lexer.TokenRBracket) {
		p.skipTo(lexer.TokenRBracket)
	}
	lit.Rbracket = p.last.Span
	return lit
}

// parseDictOrSetMaker parses '{' [dictorsetmaker] '}'. A ':' after the
// first element makes the form dict-shaped; a 'for' then turns either
// shape into a comprehension. Empty braces are a dict.
func (p *Parser) parseDictOrSetMaker() ast.Expr {
	p.match(lexer.TokenLBrace)
	lbrace := p.last.Span

	if p.maybeConsume(lexer.TokenRBrace) {
		return &ast.DictLit{Lbrace: lbrace, Rbrace: p.last.Span}
	}

	test := p.parseTest()
	switch p.ahead.Type {
	case lexer.TokenColon:
		p.consume()
		kv := &ast.KeyValueExpr{Key: test, ColonLoc: p.last.Span, Value: p.parseTest()}

		if p.ahead.Type == lexer.TokenFor {
			compre := &ast.CompreExpr{Kind: ast.DictCompre, LDelim: lbrace, Elem: kv}
			p.parseListFor(compre)
			if !p.match(lexer.TokenRBrace) {
				p.skipTo(lexer.TokenRBrace)
			}
			compre.RDelim = p.last.Span
			return compre
		}

		dict := &ast.DictLit{Lbrace: lbrace}
		dict.Entries.Append(kv)
		for p.maybeConsume(lexer.TokenComma) {
			if !p.isTestAhead() {
				break
			}
			dict.Entries.AppendDelim(p.last.Span)
			kv := &ast.KeyValueExpr{Key: p.parseTest()}
			p.match(lexer.TokenColon)
			kv.ColonLoc = p.last.Span
			kv.Value = p.parseTest()
			dict.Entries.Append(kv)
		}
		if !p.match(lexer.TokenRBrace) {
			p.skipTo(lexer.TokenRBrace)
		}
		dict.Rbrace = p.last.Span
		return dict

	case lexer.TokenFor:
		compre := &ast.CompreExpr{Kind: ast.SetCompre, LDelim: lbrace, Elem: test}
		p.parseListFor(compre)
		if !p.match(lexer.TokenRBrace) {
			p.skipTo(lexer.TokenRBrace)
		}
		compre.RDelim = p.last.Span
		return compre

	default:
		set := &ast.SetLit{Lbrace: lbrace}
		set.Elems.Append(test)
		if p.maybeConsume(lexer.TokenComma) {
			set.Elems.AppendDelim(p.last.Span)
			rest, _ := p.parseTestList()
			set.Elems.Merge(rest)
		}
		if !p.match(lexer.TokenRBrace) {
			p.skipTo(lexer.TokenRBrace)
		}
		set.Rbrace = p.last.Span
		return set
	}
}

// parseYieldExpr parses 'yield' [testlist].
func (p *Parser) parseYieldExpr() *ast.YieldExpr {
	p.match(lexer.TokenYield)
	y := &ast.YieldExpr{KeyLoc: p.last.Span}
	if p.isTestAhead() {
		y.Values, _ = p.parseTestList()
	}
	return y
}

// parseArg parses one call argument: test [comp_for] | test '=' test.
func (p *Parser) parseArg() ast.Expr {
	test := p.parseTest()
	switch p.ahead.Type {
	case lexer.TokenFor:
		compre := &ast.CompreExpr{Kind: ast.GeneratorCompre, Elem: test}
		p.parseCompFor(compre)
		return compre

	case lexer.TokenAssign:
		p.consume()
		assign := &ast.AssignExpr{OpLoc: p.last.Span}
		assign.Targets.Append(test)
		assign.Values.Append(p.parseTest())
		return assign

	default:
		return test
	}
}

// parseArgList parses the call argument grammar, where plain and
// keyword arguments may be followed by *args and **kwargs tails. A
// trailing comma after *args requires the **kwargs form to follow.
func (p *Parser) parseArgList() ast.List[ast.Expr] {
	var args ast.List[ast.Expr]
	if p.isTestAhead() {
		list, trailing := parseList(p, lexer.TokenComma, p.isTestAhead, p.parseArg, true)
		args = list
		// Without a trailing comma this argument was the last one.
		if !trailing {
			return args
		}
	}

	wantDoubleStar := false
	if p.maybeConsume(lexer.TokenStar) {
		unpack := &ast.UnpackExpr{StarLoc: p.last.Span, Kind: ast.StarUnpack, Operand: p.parseTest()}
		args.Append(unpack)

		if p.maybeConsume(lexer.TokenComma) {
			args.AppendDelim(p.last.Span)
			if p.isTestAhead() {
				rest, trailing := parseList(p, lexer.TokenComma, p.isTestAhead, p.parseArg, true)
				args.Merge(rest)
				if trailing {
					wantDoubleStar = true
				}
			} else {
				wantDoubleStar = true
			}
		}
	}

	if p.maybeConsume(lexer.TokenDoubleStar) {
		args.Append(&ast.UnpackExpr{StarLoc: p.last.Span, Kind: ast.DoubleStarUnpack, Operand: p.parseTest()})
	} else if wantDoubleStar {
		p.failMatch(true)
	}

	return args
}

// parseCompFor and parseListFor are the two entry points into the
// comprehension clause chain. They differ only in the range rule: the
// generator/argument contexts allow a full or_test, while the literal
// contexts restrict the range to the lambda-safe test list, of which
// the first expression is kept.
func (p *Parser) parseCompFor(c *ast.CompreExpr) {
	p.parseGenerators(c, p.parseOrTest)
}

func (p *Parser) parseListFor(c *ast.CompreExpr) {
	p.parseGenerators(c, p.parseSafeRange)
}

func (p *Parser) parseSafeRange() ast.Expr {
	tests, _ := parseList(p, lexer.TokenComma, p.isTestAhead, p.parseOldTest, true)
	return tests.Items[0]
}

// parseGenerators parses the alternating chain of 'for targets in
// range' segments and 'if filter' segments, attaching each filter to
// the generator it follows.
func (p *Parser) parseGenerators(c *ast.CompreExpr, rangeRule func() ast.Expr) {
	for {
		switch p.ahead.Type {
		case lexer.TokenFor:
			p.consume()
			gen := &ast.Generator{ForLoc: p.last.Span}
			gen.Targets, _ = p.parseExprList()
			p.match(lexer.TokenIn)
			gen.InLoc = p.last.Span
			gen.Range = rangeRule()
			c.Gens = append(c.Gens, gen)

		case lexer.TokenIf:
			if len(c.Gens) == 0 {
				return
			}
			p.consume()
			gen := c.Gens[len(c.Gens)-1]
			gen.IfLocs = append(gen.IfLocs, p.last.Span)
			gen.Filters = append(gen.Filters, p.parseOldTest())

		default:
			return
		}
	}
}

// parseExprList parses expr (',' expr)* [','].
func (p *Parser) parseExprList() (ast.List[ast.Expr], bool) {
	return parseList(p, lexer.TokenComma, p.isExprAhead, p.parseExpr, true)
}

// parseTestList parses test (',' test)* [','].
func (p *Parser) parseTestList() (ast.List[ast.Expr], bool) {
	return parseList(p, lexer.TokenComma, p.isTestAhead, p.parseTest, true)
}
