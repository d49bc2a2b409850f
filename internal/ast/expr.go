package ast

import (
	"fmt"
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

// Op identifies the operator of a unary, binary, or augmented
// assignment node.
type Op int

const (
	OpNone Op = iota

	// Boolean and comparison operators.
	OpOr
	OpAnd
	OpNot
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpIn
	OpNotIn
	OpIs
	OpIsNot

	// Bitwise and shift operators.
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl
	OpShr

	// Arithmetic operators.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow

	// Unary-only operators.
	OpPos
	OpNeg
	OpInvert
)

var opNames = map[Op]string{
	OpNone:     "",
	OpOr:       "or",
	OpAnd:      "and",
	OpNot:      "not",
	OpLt:       "<",
	OpGt:       ">",
	OpLe:       "<=",
	OpGe:       ">=",
	OpEq:       "==",
	OpNe:       "!=",
	OpIn:       "in",
	OpNotIn:    "not in",
	OpIs:       "is",
	OpIsNot:    "is not",
	OpBitOr:    "|",
	OpBitXor:   "^",
	OpBitAnd:   "&",
	OpShl:      "<<",
	OpShr:      ">>",
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpPos:      "+",
	OpNeg:      "-",
	OpInvert:   "~",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// NumKind distinguishes integer from floating-point literals.
type NumKind int

const (
	IntNum NumKind = iota
	FloatNum
)

func (k NumKind) String() string {
	if k == FloatNum {
		return "float"
	}
	return "int"
}

// BadExpr is a placeholder produced during error recovery.
type BadExpr struct {
	Span position.Span
}

func (e *BadExpr) GetSpan() position.Span { return e.Span }
func (e *BadExpr) exprNode()              {}
func (e *BadExpr) String() string         { return "<bad expr>" }

// IdentExpr is a name in expression position. The name may be dotted
// when the expression stands for an imported module path.
type IdentExpr struct {
	Name Name
}

func (e *IdentExpr) GetSpan() position.Span { return e.Name.GetSpan() }
func (e *IdentExpr) exprNode()              {}
func (e *IdentExpr) String() string         { return e.Name.String() }

// NumLit is an integer or floating-point literal. Text is the raw
// lexeme, radix prefix included.
type NumLit struct {
	Span position.Span
	Kind NumKind
	Text string
}

func (e *NumLit) GetSpan() position.Span { return e.Span }
func (e *NumLit) exprNode()              {}
func (e *NumLit) String() string         { return e.Text }

// BoolLit is True or False.
type BoolLit struct {
	Span  position.Span
	Value bool
}

func (e *BoolLit) GetSpan() position.Span { return e.Span }
func (e *BoolLit) exprNode()              {}
func (e *BoolLit) String() string {
	if e.Value {
		return "True"
	}
	return "False"
}

// NoneLit is the None literal.
type NoneLit struct {
	Span position.Span
}

func (e *NoneLit) GetSpan() position.Span { return e.Span }
func (e *NoneLit) exprNode()              {}
func (e *NoneLit) String() string         { return "None" }

// EllipsisLit is the "..." form inside a subscript.
type EllipsisLit struct {
	Span position.Span
}

func (e *EllipsisLit) GetSpan() position.Span { return e.Span }
func (e *EllipsisLit) exprNode()              {}
func (e *EllipsisLit) String() string         { return "..." }

// StrLit is one string literal token, quotes and prefix included. The
// legacy backtick repr form also lands here, spanning the backticks.
type StrLit struct {
	Span position.Span
	Text string
}

func (e *StrLit) GetSpan() position.Span { return e.Span }
func (e *StrLit) exprNode()              {}
func (e *StrLit) String() string         { return e.Text }

// ConcatExpr joins two adjacent string literals. Chains lean right:
// "a" "b" "c" is Concat("a", Concat("b", "c")).
type ConcatExpr struct {
	Left  Expr
	Right Expr
}

func (e *ConcatExpr) GetSpan() position.Span {
	return position.Join(e.Left.GetSpan(), e.Right.GetSpan())
}
func (e *ConcatExpr) exprNode()      {}
func (e *ConcatExpr) String() string { return e.Left.String() + " " + e.Right.String() }

// BinaryExpr is a binary operation, including comparisons, boolean
// and/or, and the right-associative power operator.
type BinaryExpr struct {
	Left  Expr
	Op    Op
	OpLoc position.Span
	Right Expr
}

func (e *BinaryExpr) GetSpan() position.Span {
	return position.Join(e.Left.GetSpan(), e.Right.GetSpan())
}
func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// UnaryExpr is a prefix operation: not, +, -, ~.
type UnaryExpr struct {
	Op      Op
	OpLoc   position.Span
	Operand Expr
}

func (e *UnaryExpr) GetSpan() position.Span {
	return position.Join(e.OpLoc, e.Operand.GetSpan())
}
func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) String() string {
	if e.Op == OpNot {
		return fmt.Sprintf("(not %s)", e.Operand)
	}
	return fmt.Sprintf("(%s%s)", e.Op, e.Operand)
}

// CondExpr is the conditional expression: Then if Cond else Else.
type CondExpr struct {
	Then    Expr
	IfLoc   position.Span
	Cond    Expr
	ElseLoc position.Span
	Else    Expr
}

func (e *CondExpr) GetSpan() position.Span {
	return position.Join(e.Then.GetSpan(), e.Else.GetSpan())
}
func (e *CondExpr) exprNode() {}
func (e *CondExpr) String() string {
	return fmt.Sprintf("(%s if %s else %s)", e.Then, e.Cond, e.Else)
}

// LambdaExpr is an anonymous function whose body is a single
// expression.
type LambdaExpr struct {
	KeyLoc   position.Span
	Params   *ParamClause
	ColonLoc position.Span
	Body     Expr
}

func (e *LambdaExpr) GetSpan() position.Span {
	return position.Join(e.KeyLoc, e.Body.GetSpan())
}
func (e *LambdaExpr) exprNode() {}
func (e *LambdaExpr) String() string {
	return fmt.Sprintf("lambda %s: %s", e.Params, e.Body)
}

// CallExpr applies arguments to a callable.
type CallExpr struct {
	Fn     Expr
	Lparen position.Span
	Args   List[Expr]
	Rparen position.Span
}

func (e *CallExpr) GetSpan() position.Span {
	return position.Join(e.Fn.GetSpan(), e.Rparen)
}
func (e *CallExpr) exprNode() {}
func (e *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Fn, &e.Args)
}

// SubscriptExpr is bracketed access on a base: indexing or slicing,
// depending on the index node.
type SubscriptExpr struct {
	Target   Expr
	Lbracket position.Span
	Index    Expr
	Rbracket position.Span
}

func (e *SubscriptExpr) GetSpan() position.Span {
	return position.Join(e.Target.GetSpan(), e.Rbracket)
}
func (e *SubscriptExpr) exprNode() {}
func (e *SubscriptExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.Target, e.Index)
}

// RangeExpr is a slice: [Low]:[High][:[Step]]. Any bound may be nil.
type RangeExpr struct {
	Low      Expr
	ColonLoc position.Span
	High     Expr
	Colon2   position.Span
	Step     Expr
}

func (e *RangeExpr) GetSpan() position.Span {
	span := e.ColonLoc
	if e.Low != nil {
		span = position.Join(e.Low.GetSpan(), span)
	}
	if e.High != nil {
		span = position.Join(span, e.High.GetSpan())
	}
	if e.Step != nil {
		span = position.Join(span, e.Step.GetSpan())
	}
	return span
}
func (e *RangeExpr) exprNode() {}
func (e *RangeExpr) String() string {
	var sb strings.Builder
	if e.Low != nil {
		sb.WriteString(e.Low.String())
	}
	sb.WriteByte(':')
	if e.High != nil {
		sb.WriteString(e.High.String())
	}
	if e.Step != nil {
		sb.WriteByte(':')
		sb.WriteString(e.Step.String())
	}
	return sb.String()
}

// MemberExpr is attribute access: Base.Sel.
type MemberExpr struct {
	Target Expr
	DotLoc position.Span
	Sel    Name
}

func (e *MemberExpr) GetSpan() position.Span {
	return position.Join(e.Target.GetSpan(), e.Sel.GetSpan())
}
func (e *MemberExpr) exprNode() {}
func (e *MemberExpr) String() string {
	return fmt.Sprintf("%s.%s", e.Target, e.Sel)
}

// AssignExpr is an assignment, including the keyword-argument and
// with-item "as" forms. Aug is OpNone for plain "=", otherwise the
// augmented operator. Chained assignments nest: a = b = c parses with
// the inner assignment as the single target of the outer one.
type AssignExpr struct {
	Targets List[Expr]
	Aug     Op
	OpLoc   position.Span
	Values  List[Expr]
}

func (e *AssignExpr) GetSpan() position.Span {
	return position.Join(e.Targets.GetSpan(), e.Values.GetSpan())
}
func (e *AssignExpr) exprNode() {}
func (e *AssignExpr) String() string {
	op := "="
	if e.Aug != OpNone {
		op = e.Aug.String() + "="
	}
	return fmt.Sprintf("%s %s %s", &e.Targets, op, &e.Values)
}

// UnpackKind distinguishes *args from **kwargs unpacking.
type UnpackKind int

const (
	StarUnpack UnpackKind = iota
	DoubleStarUnpack
)

// UnpackExpr is an argument-list unpacking form: *expr or **expr.
type UnpackExpr struct {
	StarLoc position.Span
	Kind    UnpackKind
	Operand Expr
}

func (e *UnpackExpr) GetSpan() position.Span {
	return position.Join(e.StarLoc, e.Operand.GetSpan())
}
func (e *UnpackExpr) exprNode() {}
func (e *UnpackExpr) String() string {
	if e.Kind == DoubleStarUnpack {
		return "**" + e.Operand.String()
	}
	return "*" + e.Operand.String()
}

// YieldExpr suspends the enclosing generator, optionally producing
// values.
type YieldExpr struct {
	KeyLoc position.Span
	Values List[Expr]
}

func (e *YieldExpr) GetSpan() position.Span {
	if e.Values.Len() == 0 {
		return e.KeyLoc
	}
	return position.Join(e.KeyLoc, e.Values.GetSpan())
}
func (e *YieldExpr) exprNode() {}
func (e *YieldExpr) String() string {
	if e.Values.Len() == 0 {
		return "yield"
	}
	return "yield " + (&e.Values).String()
}

// WrappedExpr is a parenthesized group that is not a tuple.
type WrappedExpr struct {
	Lparen position.Span
	X      Expr
	Rparen position.Span
}

func (e *WrappedExpr) GetSpan() position.Span { return position.Join(e.Lparen, e.Rparen) }
func (e *WrappedExpr) exprNode()              {}
func (e *WrappedExpr) String() string         { return "(" + e.X.String() + ")" }

// TupleLit is a tuple: (), (1,), (1, 2).
type TupleLit struct {
	Lparen position.Span
	Elems  List[Expr]
	Rparen position.Span
}

func (e *TupleLit) GetSpan() position.Span {
	return position.Join(e.Lparen, position.Join((&e.Elems).GetSpan(), e.Rparen))
}
func (e *TupleLit) exprNode()              {}
func (e *TupleLit) String() string         { return "(" + (&e.Elems).String() + ",)" }

// ListLit is a bracketed list literal.
type ListLit struct {
	Lbracket position.Span
	Elems    List[Expr]
	Rbracket position.Span
}

func (e *ListLit) GetSpan() position.Span { return position.Join(e.Lbracket, e.Rbracket) }
func (e *ListLit) exprNode()              {}
func (e *ListLit) String() string         { return "[" + (&e.Elems).String() + "]" }

// SetLit is a braced literal whose first element carried no colon.
// The empty braced form {} is a DictLit.
type SetLit struct {
	Lbrace position.Span
	Elems  List[Expr]
	Rbrace position.Span
}

func (e *SetLit) GetSpan() position.Span { return position.Join(e.Lbrace, e.Rbrace) }
func (e *SetLit) exprNode()              {}
func (e *SetLit) String() string         { return "{" + (&e.Elems).String() + "}" }

// KeyValueExpr is one key: value entry of a dict literal or dict
// comprehension.
type KeyValueExpr struct {
	Key      Expr
	ColonLoc position.Span
	Value    Expr
}

func (e *KeyValueExpr) GetSpan() position.Span {
	return position.Join(e.Key.GetSpan(), e.Value.GetSpan())
}
func (e *KeyValueExpr) exprNode() {}
func (e *KeyValueExpr) String() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Value)
}

// DictLit is a braced dict literal. Entries are KeyValueExpr nodes.
type DictLit struct {
	Lbrace  position.Span
	Entries List[Expr]
	Rbrace  position.Span
}

func (e *DictLit) GetSpan() position.Span { return position.Join(e.Lbrace, e.Rbrace) }
func (e *DictLit) exprNode()              {}
func (e *DictLit) String() string         { return "{" + (&e.Entries).String() + "}" }

// CompreKind tells which container a comprehension builds.
type CompreKind int

const (
	ListCompre CompreKind = iota
	SetCompre
	DictCompre
	GeneratorCompre
)

func (k CompreKind) String() string {
	switch k {
	case SetCompre:
		return "set"
	case DictCompre:
		return "dict"
	case GeneratorCompre:
		return "generator"
	default:
		return "list"
	}
}

// Generator is one "for targets in range [if filter]*" arm of a
// comprehension.
type Generator struct {
	ForLoc  position.Span
	Targets List[Expr]
	InLoc   position.Span
	Range   Expr
	IfLocs  []position.Span
	Filters []Expr
}

func (g *Generator) GetSpan() position.Span {
	span := g.ForLoc
	if g.Range != nil {
		span = position.Join(span, g.Range.GetSpan())
	}
	for _, f := range g.Filters {
		span = position.Join(span, f.GetSpan())
	}
	return span
}
func (g *Generator) String() string {
	var sb strings.Builder
	sb.WriteString("for ")
	sb.WriteString((&g.Targets).String())
	sb.WriteString(" in ")
	if g.Range != nil {
		sb.WriteString(g.Range.String())
	}
	for _, f := range g.Filters {
		sb.WriteString(" if ")
		sb.WriteString(f.String())
	}
	return sb.String()
}

// CompreExpr is a comprehension of any of the four container kinds.
// For DictCompre the element is a KeyValueExpr.
type CompreExpr struct {
	Kind   CompreKind
	LDelim position.Span
	Elem   Expr
	Gens   []*Generator
	RDelim position.Span
}

func (e *CompreExpr) GetSpan() position.Span {
	span := position.Join(e.LDelim, e.Elem.GetSpan())
	for _, gen := range e.Gens {
		span = position.Join(span, gen.GetSpan())
	}
	return position.Join(span, e.RDelim)
}
func (e *CompreExpr) exprNode()              {}
func (e *CompreExpr) String() string {
	var sb strings.Builder
	sb.WriteString(e.Elem.String())
	for _, gen := range e.Gens {
		sb.WriteByte(' ')
		sb.WriteString(gen.String())
	}
	return sb.String()
}
