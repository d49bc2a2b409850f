package lexer

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var py3 = semver.MustParse("3.0.0")

// Dialect selects the language level the front-end targets. The
// keyword table depends on it: print and exec are statements only
// below 3.0.
type Dialect struct {
	version *semver.Version
}

// NewDialect parses a language version like "2.7" or "3.4.1".
func NewDialect(version string) (Dialect, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return Dialect{}, fmt.Errorf("invalid language version %q: %w", version, err)
	}
	return Dialect{version: v}, nil
}

// DefaultDialect returns the 2.7 language level.
func DefaultDialect() Dialect {
	return Dialect{version: semver.MustParse("2.7.0")}
}

// HasPrintStatement returns true if print and exec are keywords.
func (d Dialect) HasPrintStatement() bool {
	if d.version == nil {
		return true
	}
	return d.version.LessThan(py3)
}

func (d Dialect) String() string {
	if d.version == nil {
		return "2.7.0"
	}
	return d.version.String()
}

// Syntax is the classification table that parameterizes the tokenizer
// primitives: which characters start and continue identifiers, which
// letters introduce a radix or exponent, and which words are keywords.
type Syntax struct {
	keywords map[string]TokenType
}

// NewSyntax builds the classification table for a dialect.
func NewSyntax(d Dialect) *Syntax {
	keywords := map[string]TokenType{
		"and":      TokenAnd,
		"as":       TokenAs,
		"assert":   TokenAssert,
		"break":    TokenBreak,
		"class":    TokenClass,
		"continue": TokenContinue,
		"def":      TokenDef,
		"del":      TokenDel,
		"elif":     TokenElif,
		"else":     TokenElse,
		"except":   TokenExcept,
		"finally":  TokenFinally,
		"for":      TokenFor,
		"from":     TokenFrom,
		"global":   TokenGlobal,
		"if":       TokenIf,
		"import":   TokenImport,
		"in":       TokenIn,
		"is":       TokenIs,
		"lambda":   TokenLambda,
		"not":      TokenNot,
		"or":       TokenOr,
		"pass":     TokenPass,
		"raise":    TokenRaise,
		"return":   TokenReturn,
		"try":      TokenTry,
		"while":    TokenWhile,
		"with":     TokenWith,
		"yield":    TokenYield,
		"None":     TokenNone,
		"True":     TokenTrue,
		"False":    TokenFalse,
	}
	if d.HasPrintStatement() {
		keywords["print"] = TokenPrint
		keywords["exec"] = TokenExec
	}
	return &Syntax{keywords: keywords}
}

// IsIdentFirst returns true if ch may start an identifier.
func (s *Syntax) IsIdentFirst(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

// IsIdentChar returns true if ch may continue an identifier.
func (s *Syntax) IsIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// IsOctalPrefix returns true if ch after a leading 0 selects octal.
func (s *Syntax) IsOctalPrefix(ch byte) bool {
	return ch == 'o' || ch == 'O'
}

// IsHexPrefix returns true if ch after a leading 0 selects hexadecimal.
func (s *Syntax) IsHexPrefix(ch byte) bool {
	return ch == 'x' || ch == 'X'
}

// IsBinPrefix returns true if ch after a leading 0 selects binary.
func (s *Syntax) IsBinPrefix(ch byte) bool {
	return ch == 'b' || ch == 'B'
}

// IsExponent returns true if ch marks a float exponent.
func (s *Syntax) IsExponent(ch byte) bool {
	return ch == 'e' || ch == 'E'
}

// ClassifyWord maps a scanned lexeme to its keyword token type, or
// TokenIdentifier if the word is not a keyword.
func (s *Syntax) ClassifyWord(lexeme string) TokenType {
	if tt, ok := s.keywords[lexeme]; ok {
		return tt
	}
	return TokenIdentifier
}

// isLetter checks if character is an ASCII letter.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is an ASCII digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isOctalDigit(ch byte) bool {
	return '0' <= ch && ch <= '7'
}
