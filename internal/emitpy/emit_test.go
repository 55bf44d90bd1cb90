// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package emitpy

import (
	"strings"
	"testing"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/lex"
	"github.com/faberlang/faber/internal/parse"
)

func parseSrc(t *testing.T, src string) *ast.Modulus {
	t.Helper()
	toks, err := lex.Lex("test.fab", src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	mod, err := parse.Parse("test.fab", lex.Prepare(toks))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return mod
}

func TestEmitVaria(t *testing.T) {
	mod := parseSrc(t, "fixum numerus x = 1")
	got := Emit(mod)
	if !strings.Contains(got, "x: int = 1") {
		t.Errorf("got %q, want it to contain 'x: int = 1'", got)
	}
}

func TestEmitFunctio(t *testing.T) {
	mod := parseSrc(t, "functio adde(numerus a, numerus b) -> numerus { redde a + b }")
	got := Emit(mod)
	if !strings.Contains(got, "def adde(a: int, b: int) -> int:") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "return (a + b)") {
		t.Errorf("got %q, want a return statement", got)
	}
}

func TestEmitFacDumLoop(t *testing.T) {
	mod := parseSrc(t, "fac { scribe 1 } dum falsum")
	got := Emit(mod)
	if !strings.Contains(got, "while True:") || !strings.Contains(got, "break") {
		t.Errorf("got %q, want an emulated do-while loop", got)
	}
}

func TestEmitGenusIsDataclass(t *testing.T) {
	mod := parseSrc(t, "genus Punctum { numerus x numerus y }")
	got := Emit(mod)
	if !strings.Contains(got, "@dataclass") || !strings.Contains(got, "class Punctum:") {
		t.Errorf("got %q, want a @dataclass class", got)
	}
}

func TestEmitBuiltinMethodRewrite(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"longitudo", "fixum x = lista.longitudo()", "len(lista)"},
		{"appende", "lista.appende(1)", "lista.append(1)"},
		{"maiuscula", "fixum x = s.maiuscula()", "s.upper()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parseSrc(t, tt.src)
			got := Emit(mod)
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestEmitImportCollection(t *testing.T) {
	mod := parseSrc(t, "ordo Color { RUBRUM }")
	got := Emit(mod)
	if !strings.Contains(got, "from enum import Enum, auto") {
		t.Errorf("got %q, want the enum import collected", got)
	}
}

func TestEmitEgoBecomesSelf(t *testing.T) {
	mod := parseSrc(t, "genus Punctum { numerus x functio salve() { scribe ego } }")
	got := Emit(mod)
	if !strings.Contains(got, "print(self)") {
		t.Errorf("got %q, want ego lowered to self", got)
	}
}

func TestEmitIncipitMain(t *testing.T) {
	mod := parseSrc(t, `incipit { scribe "salve" }`)
	got := Emit(mod)
	if !strings.Contains(got, `if __name__ == "__main__":`) {
		t.Errorf("got %q, want the __main__ guard", got)
	}
	if !strings.Contains(got, `print("salve")`) {
		t.Errorf("got %q, want the print call", got)
	}
}

func TestEmitDiscretioRecords(t *testing.T) {
	mod := parseSrc(t, `discretio Res { Bene { textus msg } Male { numerus code } }`)
	got := Emit(mod)
	for _, want := range []string{"class Bene:", "msg: str", "class Male:", "code: int", "Res = Bene | Male"} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want it to contain %q", got, want)
		}
	}
}

func TestEmitDiscernePatternMatch(t *testing.T) {
	mod := parseSrc(t, `discretio Res { Bene { textus msg } Male { numerus code } }
functio informa(Res r) {
	discerne r {
		casu Bene pro msg { scribe msg }
		casu Male pro code { scribe code }
	}
}`)
	got := Emit(mod)
	if !strings.Contains(got, "match r:") {
		t.Errorf("got %q, want a match statement", got)
	}
	if !strings.Contains(got, "case Bene(msg):") || !strings.Contains(got, "case Male(code):") {
		t.Errorf("got %q, want variant-constructor case patterns", got)
	}
}

func TestEmitSectioSlice(t *testing.T) {
	mod := parseSrc(t, `fixum x = s.sectio(2, 5)`)
	got := Emit(mod)
	if !strings.Contains(got, "s[2:5]") {
		t.Errorf("got %q, want a slice expression", got)
	}
}

func TestEmitNullCoalesce(t *testing.T) {
	mod := parseSrc(t, `fixum x = a vel b`)
	got := Emit(mod)
	if !strings.Contains(got, "(a if a is not None else b)") {
		t.Errorf("got %q, want a nullable-fallback conditional", got)
	}
}
