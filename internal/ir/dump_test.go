// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ir

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/faberlang/faber/internal/lex"
	"github.com/faberlang/faber/internal/parse"
)

func TestDumpTokens(t *testing.T) {
	toks, err := lex.Lex("test.fab", "fixum x = 1")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	toks = lex.Prepare(toks)
	views := DumpTokens(toks)
	if len(views) != len(toks) {
		t.Fatalf("got %d views, want %d", len(views), len(toks))
	}
	if views[0].Tag != "Keyword" || views[0].Value != "fixum" {
		t.Errorf("got %+v, want tag=Keyword value=fixum", views[0])
	}
	if views[0].Locus.Linea != 1 || views[0].Locus.Columna != 1 {
		t.Errorf("got locus %+v, want line=1 col=1", views[0].Locus)
	}
}

func TestDumpNodeDiscriminator(t *testing.T) {
	toks, err := lex.Lex("test.fab", "fixum numerus x = 1")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	mod, err := parse.Parse("test.fab", lex.Prepare(toks))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	dump := DumpNode(mod)
	if dump["_type"] != "Modulus" {
		t.Fatalf("got _type=%v, want Modulus", dump["_type"])
	}
	corpus, ok := dump["Corpus"].([]interface{})
	if !ok || len(corpus) != 1 {
		t.Fatalf("got Corpus=%v, want a 1-element slice", dump["Corpus"])
	}
	stmt, ok := corpus[0].(map[string]interface{})
	if !ok {
		t.Fatalf("got %T, want map[string]interface{}", corpus[0])
	}
	if stmt["_type"] != "StmtVaria" {
		t.Errorf("got _type=%v, want StmtVaria", stmt["_type"])
	}
	if stmt["Nomen"] != "x" {
		t.Errorf("got Nomen=%v, want x", stmt["Nomen"])
	}
}

func TestDumpNodeEnumMarshalsAsTagString(t *testing.T) {
	toks, err := lex.Lex("test.fab", "fixum numerus x = 1")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	mod, err := parse.Parse("test.fab", lex.Prepare(toks))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	raw, err := json.Marshal(DumpNode(mod))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"Species":"Fixum"`) {
		t.Errorf("got %s, want Species to marshal as the tag string \"Fixum\", not a raw int", out)
	}
}
