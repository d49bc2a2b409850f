package lexer

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/position"
)

// TokenType represents the type of a token.
type TokenType int

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError
	TokenNewline
	TokenIndent
	TokenDedent

	// Literals and names
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenString
	TokenNone
	TokenTrue
	TokenFalse

	// Keywords
	TokenAnd
	TokenAs
	TokenAssert
	TokenBreak
	TokenClass
	TokenContinue
	TokenDef
	TokenDel
	TokenElif
	TokenElse
	TokenExcept
	TokenExec
	TokenFinally
	TokenFor
	TokenFrom
	TokenGlobal
	TokenIf
	TokenImport
	TokenIn
	TokenIs
	TokenLambda
	TokenNot
	TokenOr
	TokenPass
	TokenPrint
	TokenRaise
	TokenReturn
	TokenTry
	TokenWhile
	TokenWith
	TokenYield

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenDoubleStar
	TokenSlash
	TokenDoubleSlash
	TokenPercent
	TokenAmper
	TokenPipe
	TokenCaret
	TokenTilde
	TokenShl
	TokenShr
	TokenLt
	TokenGt
	TokenLe
	TokenGe
	TokenEq
	TokenNe
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAmperAssign
	TokenPipeAssign
	TokenCaretAssign
	TokenShlAssign
	TokenShrAssign
	TokenDoubleStarAssign
	TokenDoubleSlashAssign

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenSemicolon
	TokenDot
	TokenEllipsis
	TokenAt
	TokenBacktick
)

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenError:   "ERROR",
	TokenNewline: "NEWLINE",
	TokenIndent:  "INDENT",
	TokenDedent:  "DEDENT",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",
	TokenNone:       "NONE",
	TokenTrue:       "TRUE",
	TokenFalse:      "FALSE",

	TokenAnd:      "AND",
	TokenAs:       "AS",
	TokenAssert:   "ASSERT",
	TokenBreak:    "BREAK",
	TokenClass:    "CLASS",
	TokenContinue: "CONTINUE",
	TokenDef:      "DEF",
	TokenDel:      "DEL",
	TokenElif:     "ELIF",
	TokenElse:     "ELSE",
	TokenExcept:   "EXCEPT",
	TokenExec:     "EXEC",
	TokenFinally:  "FINALLY",
	TokenFor:      "FOR",
	TokenFrom:     "FROM",
	TokenGlobal:   "GLOBAL",
	TokenIf:       "IF",
	TokenImport:   "IMPORT",
	TokenIn:       "IN",
	TokenIs:       "IS",
	TokenLambda:   "LAMBDA",
	TokenNot:      "NOT",
	TokenOr:       "OR",
	TokenPass:     "PASS",
	TokenPrint:    "PRINT",
	TokenRaise:    "RAISE",
	TokenReturn:   "RETURN",
	TokenTry:      "TRY",
	TokenWhile:    "WHILE",
	TokenWith:     "WITH",
	TokenYield:    "YIELD",

	TokenPlus:              "PLUS",
	TokenMinus:             "MINUS",
	TokenStar:              "STAR",
	TokenDoubleStar:        "DOUBLE_STAR",
	TokenSlash:             "SLASH",
	TokenDoubleSlash:       "DOUBLE_SLASH",
	TokenPercent:           "PERCENT",
	TokenAmper:             "AMPER",
	TokenPipe:              "PIPE",
	TokenCaret:             "CARET",
	TokenTilde:             "TILDE",
	TokenShl:               "SHL",
	TokenShr:               "SHR",
	TokenLt:                "LT",
	TokenGt:                "GT",
	TokenLe:                "LE",
	TokenGe:                "GE",
	TokenEq:                "EQ",
	TokenNe:                "NE",
	TokenAssign:            "ASSIGN",
	TokenPlusAssign:        "PLUS_ASSIGN",
	TokenMinusAssign:       "MINUS_ASSIGN",
	TokenStarAssign:        "STAR_ASSIGN",
	TokenSlashAssign:       "SLASH_ASSIGN",
	TokenPercentAssign:     "PERCENT_ASSIGN",
	TokenAmperAssign:       "AMPER_ASSIGN",
	TokenPipeAssign:        "PIPE_ASSIGN",
	TokenCaretAssign:       "CARET_ASSIGN",
	TokenShlAssign:         "SHL_ASSIGN",
	TokenShrAssign:         "SHR_ASSIGN",
	TokenDoubleStarAssign:  "DOUBLE_STAR_ASSIGN",
	TokenDoubleSlashAssign: "DOUBLE_SLASH_ASSIGN",

	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBracket:  "LBRACKET",
	TokenRBracket:  "RBRACKET",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",
	TokenComma:     "COMMA",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
	TokenDot:       "DOT",
	TokenEllipsis:  "ELLIPSIS",
	TokenAt:        "AT",
	TokenBacktick:  "BACKTICK",
}

// Token represents a lexical token with its raw lexeme and source span.
type Token struct {
	Type    TokenType
	Literal string // raw source slice, quotes and prefixes included
	Span    position.Span
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Span: %s}", t.Type, t.Literal, t.Span)
}

// IsAugAssign returns true for the compound assignment operators.
func (t TokenType) IsAugAssign() bool {
	switch t {
	case TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAmperAssign, TokenPipeAssign, TokenCaretAssign,
		TokenShlAssign, TokenShrAssign, TokenDoubleStarAssign, TokenDoubleSlashAssign:
		return true
	}
	return false
}
