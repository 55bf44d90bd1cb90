// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"testing"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/lex"
)

func parseSrc(t *testing.T, src string) *ast.Modulus {
	t.Helper()
	toks, err := lex.Lex("test.fab", src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	mod, err := Parse("test.fab", lex.Prepare(toks))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return mod
}

func TestParseVaria(t *testing.T) {
	mod := parseSrc(t, "fixum numerus x = 1")
	if len(mod.Corpus) != 1 {
		t.Fatalf("got %d statements, want 1", len(mod.Corpus))
	}
	v, ok := mod.Corpus[0].(*ast.StmtVaria)
	if !ok {
		t.Fatalf("got %T, want *ast.StmtVaria", mod.Corpus[0])
	}
	if v.Nomen != "x" || v.Species != ast.Fixum {
		t.Errorf("got nomen=%q species=%v, want x/Fixum", v.Nomen, v.Species)
	}
}

func TestParseFunctio(t *testing.T) {
	mod := parseSrc(t, "functio adde(numerus a, numerus b) -> numerus { redde a + b }")
	fn, ok := mod.Corpus[0].(*ast.StmtFunctio)
	if !ok {
		t.Fatalf("got %T, want *ast.StmtFunctio", mod.Corpus[0])
	}
	if fn.Nomen != "adde" || len(fn.Params) != 2 {
		t.Errorf("got nomen=%q params=%d, want adde/2", fn.Nomen, len(fn.Params))
	}
}

func TestParseIteratioEx(t *testing.T) {
	mod := parseSrc(t, "ex lista fixum item { scribe item }")
	it, ok := mod.Corpus[0].(*ast.StmtIteratio)
	if !ok {
		t.Fatalf("got %T, want *ast.StmtIteratio", mod.Corpus[0])
	}
	if it.Species != ast.IterEx || it.Binding != "item" {
		t.Errorf("got species=%v binding=%q, want Ex/item", it.Species, it.Binding)
	}
}

func TestParseIteratioItera(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.IterSpecies
	}{
		{"itera ex", "itera ex lista fixum item { scribe item }", ast.IterEx},
		{"itera de", "itera de mappa fixum item { scribe item }", ast.IterDe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parseSrc(t, tt.src)
			it, ok := mod.Corpus[0].(*ast.StmtIteratio)
			if !ok {
				t.Fatalf("got %T, want *ast.StmtIteratio", mod.Corpus[0])
			}
			if it.Species != tt.want {
				t.Errorf("got species=%v, want %v", it.Species, tt.want)
			}
		})
	}
}

func TestParseTernary(t *testing.T) {
	mod := parseSrc(t, "fixum numerus x = 1 sic verum secus 2")
	v := mod.Corpus[0].(*ast.StmtVaria)
	cond, ok := v.Valor.(*ast.ExprCondicio)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprCondicio", v.Valor)
	}
	if _, ok := cond.Cons.(*ast.ExprLittera); !ok {
		t.Errorf("got cons %T, want *ast.ExprLittera", cond.Cons)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		inclusive bool
	}{
		{"usque inclusive", "fixum x = 1 usque 10", true},
		{"ante exclusive", "fixum x = 1 ante 10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parseSrc(t, tt.src)
			v := mod.Corpus[0].(*ast.StmtVaria)
			r, ok := v.Valor.(*ast.ExprAmbitus)
			if !ok {
				t.Fatalf("got %T, want *ast.ExprAmbitus", v.Valor)
			}
			if r.Inclusive != tt.inclusive {
				t.Errorf("got inclusive=%v, want %v", r.Inclusive, tt.inclusive)
			}
		})
	}
}

func TestParseImport(t *testing.T) {
	mod := parseSrc(t, `§ importa ex "util" foo, bar ut baz`)
	imp, ok := mod.Corpus[0].(*ast.StmtImporta)
	if !ok {
		t.Fatalf("got %T, want *ast.StmtImporta", mod.Corpus[0])
	}
	if imp.Fons != "util" || len(imp.Specs) != 2 {
		t.Fatalf("got fons=%q specs=%d, want util/2", imp.Fons, len(imp.Specs))
	}
	if imp.Specs[1].Imported != "bar" || imp.Specs[1].Local != "baz" {
		t.Errorf("got spec[1]=%+v, want bar/baz", imp.Specs[1])
	}
}

func TestParseNonNullMember(t *testing.T) {
	mod := parseSrc(t, "fixum x = a!.b")
	v := mod.Corpus[0].(*ast.StmtVaria)
	m, ok := v.Valor.(*ast.ExprMembrum)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprMembrum", v.Valor)
	}
	if !m.NonNull || m.Computed {
		t.Errorf("got NonNull=%v Computed=%v, want true/false", m.NonNull, m.Computed)
	}
}

func TestParseSyntaxError(t *testing.T) {
	toks, err := lex.Lex("test.fab", "fixum numerus x =")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = Parse("test.fab", lex.Prepare(toks))
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}
