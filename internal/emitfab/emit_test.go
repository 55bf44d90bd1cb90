// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package emitfab

import (
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

// assertRoundTrips re-parses Emit's output and checks it parses cleanly
// and reaches a fixed point: emit(parse(emit(mod))) == emit(mod).
func assertRoundTrips(t *testing.T, src string) string {
	t.Helper()
	mod := parseSrc(t, src)
	out := Emit(mod)

	toks, err := lex.Lex("test.fab", out)
	if err != nil {
		t.Fatalf("re-lex emitted source failed: %v\nsource:\n%s", err, out)
	}
	mod2, err := parse.Parse("test.fab", lex.Prepare(toks))
	if err != nil {
		t.Fatalf("re-parse emitted source failed: %v\nsource:\n%s", err, out)
	}
	out2 := Emit(mod2)
	if out != out2 {
		t.Fatalf("emit output is not a fixed point:\nfirst:\n%s\nsecond:\n%s", out, out2)
	}
	return out
}

func TestEmitRoundTrip(t *testing.T) {
	srcs := []string{
		"fixum numerus x = 1",
		"functio adde(numerus a, numerus b) -> numerus { redde a + b }",
		"si verum { scribe 1 } secus { scribe 2 }",
		"dum verum { rumpe }",
		"ex lista fixum item { scribe item }",
		"itera de mappa fixum item { scribe item }",
		"genus Punctum { numerus x numerus y }",
		"pactum Forma { functio area() -> numerus }",
		"ordo Color { RUBRUM, VIRIDE, CAERULEUM }",
		"discretio Optio { Aliquid { numerus valor }, Nihilum }",
		`§ importa ex "util" foo, bar ut baz`,
		"fixum x = 1 usque 10",
		"fixum x = 1 ante 10",
		"fixum x = 1 sic verum secus 2",
		"fixum f = clausura x: numerus : x + 1",
		"fixum f = clausura x, y { redde x + y }",
		"fixum f = clausura { redde 1 }",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			assertRoundTrips(t, src)
		})
	}
}

func TestEmitTernaryUsesSicSecus(t *testing.T) {
	mod := parseSrc(t, "fixum x = 1 sic verum secus 2")
	out := Emit(mod)
	if !contains(out, "sic") || !contains(out, "secus") {
		t.Errorf("expected sic/secus ternary form in output, got %q", out)
	}
	if contains(out, "?") {
		t.Errorf("did not expect C-style ternary operator in output, got %q", out)
	}
}

func TestEmitInnatumPreservesType(t *testing.T) {
	mod := parseSrc(t, "fixum x = a innatum numerus")
	out := Emit(mod)
	if !contains(out, "innatum numerus") {
		t.Errorf("expected innatum to preserve its type annotation, got %q", out)
	}
}

func TestEmitClausuraMatchesParserGrammar(t *testing.T) {
	mod := parseSrc(t, "fixum f = clausura x: numerus : x + 1")
	out := Emit(mod)
	if !contains(out, "clausura x: numerus : ") {
		t.Errorf("expected clausura's own grammar (no arrow), got %q", out)
	}
	if contains(out, "=>") {
		t.Errorf("did not expect a (params) => arrow in output, got %q", out)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
