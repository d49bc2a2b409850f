package frontend

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/lexer"
)

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "def main():\n    return 0\n"
	if err := afero.WriteFile(fs, "main.py", []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := LoadFile("main.py", Options{FS: fs})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Ok() {
		t.Fatalf("parse failed: %v", res.Diags.All())
	}
	if len(res.Program.Stmts) != 1 {
		t.Errorf("statements = %d, want 1", len(res.Program.Stmts))
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("absent.py", Options{FS: afero.NewMemMapFs()})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseDialectSelection(t *testing.T) {
	src := "print 'x'\n"

	legacy, err := Parse("a.py", src, Options{LangVersion: "2.7"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := legacy.Program.Stmts[0].(*ast.PrintStmt); !ok {
		t.Errorf("2.7: got %T, want *ast.PrintStmt", legacy.Program.Stmts[0])
	}

	modern, err := Parse("a.py", src, Options{LangVersion: "3.4"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := modern.Program.Stmts[0].(*ast.ExprStmt); !ok {
		t.Errorf("3.4: got %T, want *ast.ExprStmt", modern.Program.Stmts[0])
	}
}

func TestParseBadVersion(t *testing.T) {
	if _, err := Parse("a.py", "pass\n", Options{LangVersion: "not-a-version"}); err == nil {
		t.Fatal("expected an error for a malformed language version")
	}
}

func TestParseCollectsDiagnostics(t *testing.T) {
	res, err := Parse("a.py", "x = 0x\n", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Diags.Empty() {
		t.Error("expected a lexical diagnostic")
	}
	if res.Program == nil {
		t.Error("a tree should still be produced")
	}
}

func TestParseEmptySource(t *testing.T) {
	res, err := Parse("a.py", "# nothing here\n", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Program != nil {
		t.Error("no statements should yield a nil program")
	}
	if res.Ok() {
		t.Error("Ok must be false without a program")
	}
}

func TestTokenize(t *testing.T) {
	tokens, bag, err := Tokenize("a.py", "x = 1\n", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", bag.All())
	}
	want := []lexer.TokenType{
		lexer.TokenIdentifier, lexer.TokenAssign, lexer.TokenInteger,
		lexer.TokenNewline, lexer.TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Type, tt)
		}
	}
}
