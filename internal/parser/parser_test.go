package parser

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, *diagnostics.Bag) {
	t.Helper()
	bag := diagnostics.NewBag()
	lx := lexer.NewWithConfig(src, lexer.Config{Filename: "test.py", Diags: bag})
	ctx := NewContext("test.py", bag)
	if !Parse(lx, ctx) {
		t.Fatalf("Parse(%q) produced no program", src)
	}
	return ctx.Program(), bag
}

func singleStmt(t *testing.T, src string) ast.Stmt {
	t.Helper()
	prog, _ := parseSource(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	return prog.Stmts[0]
}

func singleExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	raw := singleStmt(t, src)
	stmt, ok := raw.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement for %q is %T, want *ast.ExprStmt", src, raw)
	}
	if stmt.Exprs.Len() != 1 {
		t.Fatalf("got %d expressions, want 1", stmt.Exprs.Len())
	}
	return stmt.Exprs.Items[0]
}

func singleDecl(t *testing.T, src string) ast.Decl {
	t.Helper()
	stmt, ok := singleStmt(t, src).(*ast.DeclStmt)
	if !ok {
		t.Fatalf("statement for %q is not a declaration", src)
	}
	return stmt.Decl
}

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3\n", "(1 + (2 * 3))"},
		{"a * b + c\n", "((a * b) + c)"},
		{"a - b - c\n", "((a - b) - c)"},
		{"2 ** 3 ** 4\n", "(2 ** (3 ** 4))"},
		{"-a ** b\n", "(-(a ** b))"},
		{"a | b ^ c & d\n", "(a | (b ^ (c & d)))"},
		{"a << 1 + 2\n", "(a << (1 + 2))"},
		{"not a or b and c\n", "((not a) or (b and c))"},
		{"a < b == c\n", "((a < b) == c)"},
		{"a not in b\n", "(a not in b)"},
		{"a is not b\n", "(a is not b)"},
		{"x if c else y\n", "(x if c else y)"},
		{"f(x).y[0]\n", "f(x).y[0]"},
		{"f(a, b = 1, *args, **kw)\n", "f(a, b = 1, *args, **kw)"},
		{"lambda x, y=1: x + y\n", "lambda x, y=1: (x + y)"},
		{"'a' 'b'\n", "'a' 'b'"},
		{"a[1:2:3]\n", "a[1:2:3]"},
		{"a[::2]\n", "a[::2]"},
		{"(x)\n", "(x)"},
		{"(1, 2)\n", "(1, 2,)"},
		{"(yield 1)\n", "(yield 1)"},
		{"[x for x in ys if x > 0]\n", "x for x in ys if (x > 0)"},
		{"{k: v for k, v in items}\n", "k: v for k, v in items"},
		{"(x for x in y)\n", "(x for x in y)"},
		{"{1: 2}\n", "{1: 2}"},
		{"{1, 2}\n", "{1, 2}"},
		{"os.path.join(a, b)\n", "os.path.join(a, b)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := singleExpr(t, tt.src)
			if got := expr.String(); got != tt.want {
				t.Errorf("parsed %q as %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestBracedFormDisambiguation(t *testing.T) {
	tests := []struct {
		src  string
		want string // node type name per ast.Dump
	}{
		{"{}\n", "DictLit"},
		{"{1}\n", "SetLit"},
		{"{1: 2}\n", "DictLit"},
		{"{x for x in y}\n", "CompreExpr"},
		{"{x: y for x in y}\n", "CompreExpr"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := singleExpr(t, tt.src)
			dump, ok := ast.Dump(expr).(map[string]any)
			if !ok {
				t.Fatalf("Dump returned %T, want map", ast.Dump(expr))
			}
			if got := dump["node"]; got != tt.want {
				t.Errorf("parsed %q as %v, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestCompreKinds(t *testing.T) {
	tests := []struct {
		src  string
		want ast.CompreKind
	}{
		{"[x for x in y]\n", ast.ListCompre},
		{"{x for x in y}\n", ast.SetCompre},
		{"{x: 1 for x in y}\n", ast.DictCompre},
	}
	for _, tt := range tests {
		expr := singleExpr(t, tt.src)
		compre, ok := expr.(*ast.CompreExpr)
		if !ok {
			t.Fatalf("parsed %q as %T, want *ast.CompreExpr", tt.src, expr)
		}
		if compre.Kind != tt.want {
			t.Errorf("%q: kind = %v, want %v", tt.src, compre.Kind, tt.want)
		}
	}
}

func TestGeneratorInCall(t *testing.T) {
	expr := singleExpr(t, "sum(x * x for x in xs)\n")
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", expr)
	}
	if call.Args.Len() != 1 {
		t.Fatalf("got %d arguments, want 1", call.Args.Len())
	}
	compre, ok := call.Args.Items[0].(*ast.CompreExpr)
	if !ok {
		t.Fatalf("argument is %T, want *ast.CompreExpr", call.Args.Items[0])
	}
	if compre.Kind != ast.GeneratorCompre {
		t.Errorf("kind = %v, want generator", compre.Kind)
	}
}

func TestAssignments(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		expr := singleExpr(t, "x = 1 + 2 * 3\n")
		assign, ok := expr.(*ast.AssignExpr)
		if !ok {
			t.Fatalf("got %T, want *ast.AssignExpr", expr)
		}
		if assign.Aug != ast.OpNone {
			t.Errorf("aug = %v, want none", assign.Aug)
		}
		if got := assign.Values.Items[0].String(); got != "(1 + (2 * 3))" {
			t.Errorf("value = %s, want (1 + (2 * 3))", got)
		}
	})

	t.Run("chained", func(t *testing.T) {
		expr := singleExpr(t, "a = b = 1\n")
		outer, ok := expr.(*ast.AssignExpr)
		if !ok {
			t.Fatalf("got %T, want *ast.AssignExpr", expr)
		}
		inner, ok := outer.Targets.Items[0].(*ast.AssignExpr)
		if !ok {
			t.Fatalf("target is %T, want nested *ast.AssignExpr", outer.Targets.Items[0])
		}
		if got := inner.String(); got != "a = b" {
			t.Errorf("inner = %s, want a = b", got)
		}
		if got := outer.Values.Items[0].String(); got != "1" {
			t.Errorf("outer value = %s, want 1", got)
		}
	})

	t.Run("augmented", func(t *testing.T) {
		expr := singleExpr(t, "x //= 2\n")
		assign, ok := expr.(*ast.AssignExpr)
		if !ok {
			t.Fatalf("got %T, want *ast.AssignExpr", expr)
		}
		if assign.Aug != ast.OpFloorDiv {
			t.Errorf("aug = %v, want floor-div", assign.Aug)
		}
	})

	t.Run("tuple targets", func(t *testing.T) {
		expr := singleExpr(t, "x, y = 1, 2\n")
		assign := expr.(*ast.AssignExpr)
		if assign.Targets.Len() != 2 || assign.Values.Len() != 2 {
			t.Errorf("targets/values = %d/%d, want 2/2", assign.Targets.Len(), assign.Values.Len())
		}
	})

	t.Run("yield value", func(t *testing.T) {
		expr := singleExpr(t, "x = yield 5\n")
		assign := expr.(*ast.AssignExpr)
		if _, ok := assign.Values.Items[0].(*ast.YieldExpr); !ok {
			t.Errorf("value is %T, want *ast.YieldExpr", assign.Values.Items[0])
		}
	})
}

func TestPrintStatement(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		stmt, ok := singleStmt(t, "print 1, 2\n").(*ast.PrintStmt)
		if !ok {
			t.Fatal("want *ast.PrintStmt")
		}
		if stmt.Args.Len() != 2 || stmt.TrailingComma {
			t.Errorf("args = %d, trailing = %v; want 2, false", stmt.Args.Len(), stmt.TrailingComma)
		}
	})

	t.Run("trailing comma", func(t *testing.T) {
		stmt := singleStmt(t, "print 1,\n").(*ast.PrintStmt)
		if !stmt.TrailingComma {
			t.Error("trailing comma not recorded")
		}
	})

	t.Run("chevron dest", func(t *testing.T) {
		stmt := singleStmt(t, "print >>f, x\n").(*ast.PrintStmt)
		if stmt.Dest == nil || stmt.Dest.String() != "f" {
			t.Errorf("dest = %v, want f", stmt.Dest)
		}
		if stmt.Args.Len() != 1 {
			t.Errorf("args = %d, want 1", stmt.Args.Len())
		}
	})

	t.Run("bare", func(t *testing.T) {
		stmt := singleStmt(t, "print\n").(*ast.PrintStmt)
		if stmt.Args.Len() != 0 {
			t.Errorf("args = %d, want 0", stmt.Args.Len())
		}
	})
}

func TestPrintIsCallInLaterDialects(t *testing.T) {
	dialect, err := lexer.NewDialect("3.4")
	if err != nil {
		t.Fatal(err)
	}
	bag := diagnostics.NewBag()
	lx := lexer.NewWithConfig("print(1)\n", lexer.Config{Syntax: lexer.NewSyntax(dialect), Diags: bag})
	ctx := NewContext("test.py", bag)
	if !Parse(lx, ctx) {
		t.Fatal("Parse produced no program")
	}
	stmt, ok := ctx.Program().Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", ctx.Program().Stmts[0])
	}
	if _, ok := stmt.Exprs.Items[0].(*ast.CallExpr); !ok {
		t.Errorf("got %T, want *ast.CallExpr", stmt.Exprs.Items[0])
	}
	if !bag.Empty() {
		t.Errorf("unexpected diagnostics: %v", bag.All())
	}
}

func TestImports(t *testing.T) {
	t.Run("plain with alias", func(t *testing.T) {
		decl := singleDecl(t, "import os.path, sys as system\n").(*ast.ImportDecl)
		if decl.Modules.Len() != 2 {
			t.Fatalf("modules = %d, want 2", decl.Modules.Len())
		}
		if got := decl.Modules.Items[0].Name.String(); got != "os.path" {
			t.Errorf("first module = %s, want os.path", got)
		}
		if alias := decl.Modules.Items[1].Alias; alias == nil || alias.Value != "system" {
			t.Errorf("second alias = %v, want system", alias)
		}
	})

	t.Run("relative selective", func(t *testing.T) {
		decl := singleDecl(t, "from ..pkg import a as b, c\n").(*ast.ImportDecl)
		if decl.Dots != 2 {
			t.Errorf("dots = %d, want 2", decl.Dots)
		}
		if decl.Modules.Len() != 1 {
			t.Fatalf("modules = %d, want 1", decl.Modules.Len())
		}
		members := decl.Modules.Items[0].Members
		if members.Len() != 2 {
			t.Fatalf("members = %d, want 2", members.Len())
		}
		if alias := members.Items[0].Alias; alias == nil || alias.Value != "b" {
			t.Errorf("first alias = %v, want b", alias)
		}
	})

	t.Run("dots only", func(t *testing.T) {
		decl := singleDecl(t, "from . import m\n").(*ast.ImportDecl)
		if decl.Dots != 1 {
			t.Errorf("dots = %d, want 1", decl.Dots)
		}
		if decl.Modules.Len() != 1 || decl.Modules.Items[0].Members.Len() != 0 {
			t.Error("want one member-less module")
		}
	})

	t.Run("wildcard", func(t *testing.T) {
		decl := singleDecl(t, "from mod import *\n").(*ast.ImportDecl)
		members := decl.Modules.Items[0].Members
		if members.Len() != 1 {
			t.Fatalf("members = %d, want 1", members.Len())
		}
		if _, ok := members.Items[0].Name.(*ast.StarName); !ok {
			t.Errorf("member is %T, want *ast.StarName", members.Items[0].Name)
		}
	})

	t.Run("parenthesized", func(t *testing.T) {
		decl := singleDecl(t, "from mod import (a, b,)\n").(*ast.ImportDecl)
		if got := decl.Modules.Items[0].Members.Len(); got != 2 {
			t.Errorf("members = %d, want 2", got)
		}
	})

	t.Run("rendering", func(t *testing.T) {
		decl := singleDecl(t, "from ..pkg import a as b, c\n")
		if got := decl.String(); got != "from ..pkg import a as b, c" {
			t.Errorf("rendered %q", got)
		}
	})
}

func TestIfElifElseNesting(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"
	stmt := singleStmt(t, src).(*ast.IfStmt)
	elif, ok := stmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else branch is %T, want nested *ast.IfStmt", stmt.Else)
	}
	if elif.Else == nil {
		t.Error("final else missing from nested branch")
	}
}

func TestLoopElse(t *testing.T) {
	whileStmt := singleStmt(t, "while a:\n    pass\nelse:\n    pass\n").(*ast.WhileStmt)
	if whileStmt.Else == nil {
		t.Error("while else missing")
	}

	forStmt := singleStmt(t, "for x, y in pairs, extras:\n    pass\nelse:\n    pass\n").(*ast.ForStmt)
	if forStmt.Targets.Len() != 2 || forStmt.Iter.Len() != 2 {
		t.Errorf("targets/iter = %d/%d, want 2/2", forStmt.Targets.Len(), forStmt.Iter.Len())
	}
	if forStmt.Else == nil {
		t.Error("for else missing")
	}
}

func TestWithStatement(t *testing.T) {
	stmt := singleStmt(t, "with open(p) as f, lock:\n    pass\n").(*ast.WithStmt)
	if stmt.Items.Len() != 2 {
		t.Fatalf("items = %d, want 2", stmt.Items.Len())
	}
	bound, ok := stmt.Items.Items[0].(*ast.AssignExpr)
	if !ok {
		t.Fatalf("first item is %T, want *ast.AssignExpr", stmt.Items.Items[0])
	}
	if got := bound.Values.Items[0].String(); got != "f" {
		t.Errorf("binding = %s, want f", got)
	}
}

func TestTryStatement(t *testing.T) {
	src := "try:\n    pass\nexcept A as e:\n    pass\nexcept:\n    pass\nelse:\n    pass\nfinally:\n    pass\n"
	prog, bag := parseSource(t, src)
	if !bag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", bag.All())
	}
	stmt := prog.Stmts[0].(*ast.TryStmt)
	if len(stmt.Catches) != 2 {
		t.Fatalf("catches = %d, want 2", len(stmt.Catches))
	}
	if b := stmt.Catches[0].Binding; b == nil || b.Value != "e" {
		t.Errorf("binding = %v, want e", b)
	}
	if stmt.Catches[1].Exc != nil {
		t.Error("bare except should have no exception expression")
	}
	if stmt.Else == nil || stmt.Finally == nil {
		t.Error("else or finally clause missing")
	}
}

func TestTryDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diagnostics.Kind
	}{
		{"else without except", "try:\n    pass\nelse:\n    pass\n", diagnostics.UnexpectedToken},
		{"second else", "try:\n    pass\nexcept:\n    pass\nelse:\n    pass\nelse:\n    pass\n", diagnostics.UnexpectedToken},
		{"missing handler", "try:\n    pass\n", diagnostics.UnexpectedToken},
		{"comma binding must be a name", "try:\n    pass\nexcept E, a.b:\n    pass\n", diagnostics.NameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diagnostics.NewBag()
			lx := lexer.NewWithConfig(tt.src, lexer.Config{Diags: bag})
			Parse(lx, NewContext("test.py", bag))
			if bag.Count() != 1 {
				t.Fatalf("diagnostics = %d, want 1 (%v)", bag.Count(), bag.All())
			}
			if got := bag.All()[0].Kind; got != tt.want {
				t.Errorf("diagnostic = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTryElseWithoutExceptKeepsEmptyCatchList(t *testing.T) {
	bag := diagnostics.NewBag()
	lx := lexer.NewWithConfig("try:\n    pass\nelse:\n    pass\n", lexer.Config{Diags: bag})
	ctx := NewContext("test.py", bag)
	if !Parse(lx, ctx) {
		t.Fatal("Parse produced no program")
	}
	stmt := ctx.Program().Stmts[0].(*ast.TryStmt)
	if len(stmt.Catches) != 0 || stmt.Else != nil {
		t.Errorf("catches = %d, else = %v; want empty, nil", len(stmt.Catches), stmt.Else)
	}
}

func TestFuncDecl(t *testing.T) {
	src := "def f(a, b=1, *args, **kw):\n    return a\n"
	decl := singleDecl(t, src).(*ast.FuncDecl)
	if decl.Name.Value != "f" {
		t.Errorf("name = %s, want f", decl.Name.Value)
	}
	params := decl.Spec.Params.Params
	if params.Len() != 4 {
		t.Fatalf("params = %d, want 4", params.Len())
	}
	kinds := []ast.ParamKind{ast.PlainParam, ast.PlainParam, ast.ListParam, ast.MapParam}
	for i, want := range kinds {
		if params.Items[i].Kind != want {
			t.Errorf("param %d kind = %v, want %v", i, params.Items[i].Kind, want)
		}
	}
	if params.Items[1].Default == nil {
		t.Error("default for second parameter missing")
	}
}

func TestDecorators(t *testing.T) {
	src := "@dec\n@other(1)\ndef f():\n    pass\n"
	decl := singleDecl(t, src).(*ast.FuncDecl)
	if len(decl.Decorators) != 2 {
		t.Fatalf("decorators = %d, want 2", len(decl.Decorators))
	}
	if decl.Decorators[0].HasCall {
		t.Error("first decorator should have no call")
	}
	second := decl.Decorators[1]
	if !second.HasCall || second.Args.Len() != 1 {
		t.Errorf("second decorator call args = %d, want 1", second.Args.Len())
	}
}

func TestClassDecl(t *testing.T) {
	src := "class C(A, B):\n    pass\n"
	decl := singleDecl(t, src).(*ast.ClassDecl)
	if decl.Name.Value != "C" {
		t.Errorf("name = %s, want C", decl.Name.Value)
	}
	if decl.Spec.Bases.Len() != 2 {
		t.Fatalf("bases = %d, want 2", decl.Spec.Bases.Len())
	}
	if got := decl.Spec.Bases.Items[0].String(); got != "A" {
		t.Errorf("first base = %s, want A", got)
	}
}

func TestSimpleStatementLine(t *testing.T) {
	block, ok := singleStmt(t, "x = 1; y = 2\n").(*ast.BlockStmt)
	if !ok {
		t.Fatal("want *ast.BlockStmt for a semicolon line")
	}
	if len(block.Stmts) != 2 {
		t.Errorf("statements = %d, want 2", len(block.Stmts))
	}
}

func TestSmallStatements(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"pass\n", "pass"},
		{"del a, b\n", "del a, b"},
		{"global a, b\n", "global a, b"},
		{"assert x, 'msg'\n", "assert x, 'msg'"},
		{"raise E, arg\n", "raise E, arg"},
		{"return 1, 2\n", "return 1, 2"},
		{"exec code in g, l\n", "exec code in g, l"},
		{"yield x\n", "yield x"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := singleStmt(t, tt.src).String(); got != tt.want {
				t.Errorf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorRecovery(t *testing.T) {
	prog, bag := parseSource(t, "a = ]\nb = 1\n")
	if len(prog.Stmts) != 2 {
		t.Fatalf("statements = %d, want 2", len(prog.Stmts))
	}
	if bag.Count() != 1 {
		t.Errorf("diagnostics = %d, want 1", bag.Count())
	}
	if bag.All()[0].Kind != diagnostics.UnexpectedToken {
		t.Errorf("kind = %v, want unexpected-token", bag.All()[0].Kind)
	}
	second := prog.Stmts[1].(*ast.ExprStmt)
	if got := second.String(); got != "b = 1" {
		t.Errorf("statement after recovery = %q, want b = 1", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# comment only\n"} {
		bag := diagnostics.NewBag()
		lx := lexer.NewWithConfig(src, lexer.Config{Diags: bag})
		ctx := NewContext("test.py", bag)
		if Parse(lx, ctx) {
			t.Errorf("Parse(%q) = true, want false", src)
		}
	}
}

func TestProgramSpan(t *testing.T) {
	prog, _ := parseSource(t, "x = 1\ny = 2\n")
	span := prog.GetSpan()
	if !span.IsValid() {
		t.Fatal("program span invalid")
	}
	if span.Start.Line != 1 || span.End.Line != 2 {
		t.Errorf("span covers lines %d..%d, want 1..2", span.Start.Line, span.End.Line)
	}
}
