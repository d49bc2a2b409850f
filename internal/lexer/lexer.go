// Package lexer implements the Pythia lexical analyzer: the scanning
// primitives for identifiers, numbers, and strings, parameterized by a
// Syntax classification table, plus the Python line structure on top
// of them (logical newlines, the indentation stack, implicit line
// joining inside brackets, and backslash continuations).
package lexer

import (
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/position"
)

// tabWidth is the column multiple a tab advances to when measuring
// indentation.
const tabWidth = 8

// Config carries the optional collaborators of a Lexer.
type Config struct {
	Filename string
	Syntax   *Syntax
	Diags    *diagnostics.Bag
}

// Lexer scans one source buffer and produces tokens on demand. It is
// total: every call returns a token, with TokenEOF repeating forever
// once the input is exhausted.
type Lexer struct {
	input    string
	filename string
	syntax   *Syntax
	diags    *diagnostics.Bag

	pos  int // byte offset of the next unread character
	line int // 1-based line of pos
	col  int // 1-based column of pos

	indents        []int // indentation stack, always holds 0 at the bottom
	pendingDedents int
	depth          int // open bracket depth; suppresses line structure
	atLineStart    bool
}

// New creates a lexer with the default dialect and no diagnostics sink.
func New(input string) *Lexer {
	return NewWithConfig(input, Config{})
}

// NewWithConfig creates a lexer with explicit collaborators. A nil
// Syntax falls back to the default dialect; a nil Diags discards
// lexical reports.
func NewWithConfig(input string, cfg Config) *Lexer {
	syntax := cfg.Syntax
	if syntax == nil {
		syntax = NewSyntax(DefaultDialect())
	}
	return &Lexer{
		input:       input,
		filename:    cfg.Filename,
		syntax:      syntax,
		diags:       cfg.Diags,
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// here returns the position of the next unread character.
func (l *Lexer) here() position.Position {
	return position.Position{Filename: l.filename, Line: l.line, Column: l.col, Offset: l.pos}
}

// advance consumes one character.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// peek returns the character dist bytes ahead, or 0 past the end.
func (l *Lexer) peek(dist int) byte {
	if l.pos+dist >= len(l.input) {
		return 0
	}
	return l.input[l.pos+dist]
}

func (l *Lexer) makeToken(tt TokenType, start position.Position) Token {
	return Token{
		Type:    tt,
		Literal: l.input[start.Offset:l.pos],
		Span:    position.NewSpan(start, l.here()),
	}
}

// markerToken builds a zero-width token (NEWLINE at EOF, INDENT,
// DEDENT, EOF) anchored at the current position.
func (l *Lexer) markerToken(tt TokenType) Token {
	here := l.here()
	return Token{Type: tt, Span: position.NewSpan(here, here)}
}

func (l *Lexer) report(kind diagnostics.Kind, span position.Span) {
	if l.diags != nil {
		l.diags.Report(kind, span)
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	for {
		if l.pendingDedents > 0 {
			l.pendingDedents--
			return l.markerToken(TokenDedent)
		}

		if l.pos >= len(l.input) {
			// A final logical line without a trailing newline still
			// terminates; then the indent stack unwinds.
			if !l.atLineStart {
				l.atLineStart = true
				return l.markerToken(TokenNewline)
			}
			if len(l.indents) > 1 {
				l.indents = l.indents[:len(l.indents)-1]
				return l.markerToken(TokenDedent)
			}
			return l.markerToken(TokenEOF)
		}

		if l.atLineStart && l.depth == 0 {
			if tok, ok := l.scanIndentation(); ok {
				return tok
			}
			continue
		}

		switch ch := l.input[l.pos]; {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '\\' && l.peek(1) == '\n':
			l.advance()
			l.advance()
		case ch == '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		case ch == '\n':
			start := l.here()
			l.advance()
			if l.depth > 0 {
				continue
			}
			l.atLineStart = true
			return l.makeToken(TokenNewline, start)
		default:
			return l.scanToken()
		}
	}
}

// scanIndentation measures the leading whitespace of a code line and
// compares it against the indent stack. Blank and comment-only lines
// are swallowed. Returns (token, true) when the comparison produced an
// INDENT or the first of one or more DEDENTs.
func (l *Lexer) scanIndentation() (Token, bool) {
	for {
		width := 0
		for l.pos < len(l.input) {
			switch l.input[l.pos] {
			case ' ':
				width++
			case '\t':
				width = (width/tabWidth + 1) * tabWidth
			default:
				goto measured
			}
			l.advance()
		}
	measured:
		if l.pos >= len(l.input) {
			return Token{}, false
		}
		switch l.input[l.pos] {
		case '\n':
			l.advance()
			continue
		case '\r':
			l.advance()
			continue
		case '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}

		l.atLineStart = false
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			return l.markerToken(TokenIndent), true
		case width < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.pendingDedents++
			}
			l.pendingDedents--
			return l.markerToken(TokenDedent), true
		default:
			return Token{}, false
		}
	}
}

// scanToken dispatches on the first character of a non-whitespace
// lexeme.
func (l *Lexer) scanToken() Token {
	start := l.here()
	ch := l.input[l.pos]

	switch {
	case l.syntax.IsIdentFirst(ch):
		return l.scanWord(start)
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1))):
		return l.scanNumber(start)
	case ch == '"' || ch == '\'':
		return l.scanString(start)
	}

	return l.scanOperator(start)
}

// scanWord scans an identifier run and classifies it against the
// keyword table. A short all-letter run directly followed by a quote
// is a string prefix (r'', b"", ur'' and friends).
func (l *Lexer) scanWord(start position.Position) Token {
	for l.pos < len(l.input) && l.syntax.IsIdentChar(l.input[l.pos]) {
		l.advance()
	}
	lexeme := l.input[start.Offset:l.pos]

	if l.pos < len(l.input) && (l.input[l.pos] == '"' || l.input[l.pos] == '\'') && isStringPrefix(lexeme) {
		return l.scanString(start)
	}

	return l.makeToken(l.syntax.ClassifyWord(lexeme), start)
}

func isStringPrefix(lexeme string) bool {
	if len(lexeme) == 0 || len(lexeme) > 2 {
		return false
	}
	for i := 0; i < len(lexeme); i++ {
		switch lexeme[i] {
		case 'r', 'R', 'b', 'B', 'u', 'U':
		default:
			return false
		}
	}
	return true
}

// scanNumber scans one numeric literal. A leading 0 branches into the
// radix sub-scans, each requiring at least one valid digit after its
// prefix; a 0 followed by anything else degrades to the plain decimal
// run. The result switches from integer to float the first time a dot
// or exponent appears.
func (l *Lexer) scanNumber(start position.Position) Token {
	if l.input[l.pos] == '0' {
		next := l.peek(1)
		switch {
		case l.syntax.IsOctalPrefix(next):
			return l.scanRadixRun(start, isOctalDigit)
		case l.syntax.IsHexPrefix(next):
			return l.scanRadixRun(start, isHexDigit)
		case l.syntax.IsBinPrefix(next):
			return l.scanRadixRun(start, isBinDigit)
		}
	}

	tt := TokenInteger
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if !isDigit(ch) && ch != '.' && !l.syntax.IsExponent(ch) {
			break
		}
		if !isDigit(ch) {
			tt = TokenFloat
		}
		l.advance()
		if l.syntax.IsExponent(ch) && (l.peek(0) == '+' || l.peek(0) == '-') {
			l.advance()
		}
	}
	return l.makeToken(tt, start)
}

func isBinDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// scanRadixRun consumes a radix prefix and its maximal digit run. A
// missing first digit is reported but still yields an integer token
// covering what was consumed.
func (l *Lexer) scanRadixRun(start position.Position, valid func(byte) bool) Token {
	l.advance() // 0
	l.advance() // prefix letter
	if l.pos >= len(l.input) || !valid(l.input[l.pos]) {
		l.report(diagnostics.InvalidRadixDigit, position.NewSpan(start, l.here()))
		return l.makeToken(TokenInteger, start)
	}
	for l.pos < len(l.input) && valid(l.input[l.pos]) {
		l.advance()
	}
	return l.makeToken(TokenInteger, start)
}

// scanString scans one string literal, including any prefix letters
// already consumed by the caller. Triple-quoted forms may span lines;
// in single-quoted forms a bare newline ends the literal with an
// unterminated report. A backslash always consumes the following
// character. The scanner is tolerant: a token is produced either way.
func (l *Lexer) scanString(start position.Position) Token {
	quote := l.input[l.pos]
	l.advance()

	triple := false
	if l.peek(0) == quote && l.peek(1) == quote {
		l.advance()
		l.advance()
		triple = true
	}

	terminated := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
			continue
		}
		if ch == '\n' && !triple {
			break
		}
		if ch == quote {
			if !triple {
				l.advance()
				terminated = true
				break
			}
			if l.peek(1) == quote && l.peek(2) == quote {
				l.advance()
				l.advance()
				l.advance()
				terminated = true
				break
			}
		}
		l.advance()
	}

	if !terminated {
		l.report(diagnostics.UnterminatedString, position.NewSpan(start, l.here()))
	}
	return l.makeToken(TokenString, start)
}

// scanOperator scans operators and delimiters with maximal munch.
// Bracket tokens adjust the joining depth.
func (l *Lexer) scanOperator(start position.Position) Token {
	ch := l.input[l.pos]
	l.advance()

	two := l.peek(0)
	switch ch {
	case '(':
		l.depth++
		return l.makeToken(TokenLParen, start)
	case ')':
		if l.depth > 0 {
			l.depth--
		}
		return l.makeToken(TokenRParen, start)
	case '[':
		l.depth++
		return l.makeToken(TokenLBracket, start)
	case ']':
		if l.depth > 0 {
			l.depth--
		}
		return l.makeToken(TokenRBracket, start)
	case '{':
		l.depth++
		return l.makeToken(TokenLBrace, start)
	case '}':
		if l.depth > 0 {
			l.depth--
		}
		return l.makeToken(TokenRBrace, start)
	case ',':
		return l.makeToken(TokenComma, start)
	case ':':
		return l.makeToken(TokenColon, start)
	case ';':
		return l.makeToken(TokenSemicolon, start)
	case '@':
		return l.makeToken(TokenAt, start)
	case '`':
		return l.makeToken(TokenBacktick, start)
	case '~':
		return l.makeToken(TokenTilde, start)
	case '.':
		if two == '.' && l.peek(1) == '.' {
			l.advance()
			l.advance()
			return l.makeToken(TokenEllipsis, start)
		}
		return l.makeToken(TokenDot, start)
	case '=':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenEq, start)
		}
		return l.makeToken(TokenAssign, start)
	case '!':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenNe, start)
		}
		return l.makeToken(TokenError, start)
	case '<':
		switch two {
		case '=':
			l.advance()
			return l.makeToken(TokenLe, start)
		case '>':
			l.advance()
			return l.makeToken(TokenNe, start)
		case '<':
			l.advance()
			if l.peek(0) == '=' {
				l.advance()
				return l.makeToken(TokenShlAssign, start)
			}
			return l.makeToken(TokenShl, start)
		}
		return l.makeToken(TokenLt, start)
	case '>':
		switch two {
		case '=':
			l.advance()
			return l.makeToken(TokenGe, start)
		case '>':
			l.advance()
			if l.peek(0) == '=' {
				l.advance()
				return l.makeToken(TokenShrAssign, start)
			}
			return l.makeToken(TokenShr, start)
		}
		return l.makeToken(TokenGt, start)
	case '*':
		switch two {
		case '*':
			l.advance()
			if l.peek(0) == '=' {
				l.advance()
				return l.makeToken(TokenDoubleStarAssign, start)
			}
			return l.makeToken(TokenDoubleStar, start)
		case '=':
			l.advance()
			return l.makeToken(TokenStarAssign, start)
		}
		return l.makeToken(TokenStar, start)
	case '/':
		switch two {
		case '/':
			l.advance()
			if l.peek(0) == '=' {
				l.advance()
				return l.makeToken(TokenDoubleSlashAssign, start)
			}
			return l.makeToken(TokenDoubleSlash, start)
		case '=':
			l.advance()
			return l.makeToken(TokenSlashAssign, start)
		}
		return l.makeToken(TokenSlash, start)
	case '+':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenPlusAssign, start)
		}
		return l.makeToken(TokenPlus, start)
	case '-':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenMinusAssign, start)
		}
		return l.makeToken(TokenMinus, start)
	case '%':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenPercentAssign, start)
		}
		return l.makeToken(TokenPercent, start)
	case '&':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenAmperAssign, start)
		}
		return l.makeToken(TokenAmper, start)
	case '|':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenPipeAssign, start)
		}
		return l.makeToken(TokenPipe, start)
	case '^':
		if two == '=' {
			l.advance()
			return l.makeToken(TokenCaretAssign, start)
		}
		return l.makeToken(TokenCaret, start)
	}

	return l.makeToken(TokenError, start)
}
