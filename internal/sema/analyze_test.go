// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package sema

import (
	"testing"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/lex"
	"github.com/faberlang/faber/internal/parse"
)

func analyzeSrc(t *testing.T, src string) *Context {
	t.Helper()
	toks, err := lex.Lex("test.fab", src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	mod, err := parse.Parse("test.fab", lex.Prepare(toks))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Analyze(mod)
}

func TestAnalyzeLiteralTypes(t *testing.T) {
	toks, _ := lex.Lex("test.fab", "fixum x = 1\nfixum y = \"s\"\nfixum z = verum")
	mod, _ := parse.Parse("test.fab", lex.Prepare(toks))
	ctx := Analyze(mod)

	wantSpecies := []string{"numerus", "textus", "bivalens"}
	for i, stmt := range mod.Corpus {
		v := stmt.(*ast.StmtVaria)
		got := ctx.GetExprType(v.Valor)
		if got.String() != wantSpecies[i] {
			t.Errorf("stmt %d: got type %q, want %q", i, got.String(), wantSpecies[i])
		}
	}
}

func TestAnalyzeUndefinedIdentifier(t *testing.T) {
	ctx := analyzeSrc(t, "fixum x = y")
	if len(ctx.Errores) == 0 {
		t.Fatal("expected a semantic error for undefined identifier 'y'")
	}
}

func TestAnalyzeDefinedIdentifier(t *testing.T) {
	ctx := analyzeSrc(t, "fixum x = 1\nfixum y = x")
	for _, e := range ctx.Errores {
		t.Errorf("unexpected semantic error: %s", e.Nuntius)
	}
}

func TestAnalyzeFunctioRegistration(t *testing.T) {
	ctx := analyzeSrc(t, "functio adde(numerus a, numerus b) -> numerus { redde a + b }")
	sym := ctx.Global.Quaere("adde")
	if sym == nil {
		t.Fatal("expected 'adde' to be registered in the global scope")
	}
	if sym.Species != FunctioSym {
		t.Errorf("got species %v, want FunctioSym", sym.Species)
	}
}

func TestAnalyzeGenusRegistration(t *testing.T) {
	ctx := analyzeSrc(t, "genus Punctum { numerus x numerus y }")
	if _, ok := ctx.GenusRegistry["Punctum"]; !ok {
		t.Fatal("expected 'Punctum' to be registered in GenusRegistry")
	}
	g := ctx.GenusRegistry["Punctum"]
	if _, ok := g.Agri["x"]; !ok {
		t.Error("expected field 'x' on Punctum")
	}
}

func TestResolveTypusNomenAliases(t *testing.T) {
	ctx := NewContext()
	tests := []struct {
		nomen string
		want  string
	}{
		{"vacuus", "vacuum"},
		{"quodlibet", "ignotum"},
		{"quidlibet", "ignotum"},
		{"numerus", "numerus"},
	}
	for _, tt := range tests {
		got := ctx.ResolveTypusNomen(tt.nomen)
		if got.String() != tt.want {
			t.Errorf("ResolveTypusNomen(%q) = %q, want %q", tt.nomen, got.String(), tt.want)
		}
	}
}
