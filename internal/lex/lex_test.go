// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lex

import (
	"testing"

	"github.com/faberlang/faber/internal/token"
)

func TestLexTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Tag
	}{
		{
			name: "varia declaration",
			src:  "varia numerus x = 1",
			want: []token.Tag{token.Keyword, token.Identifier, token.Identifier, token.Operator, token.Number, token.EOF},
		},
		{
			name: "string literal",
			src:  `"hello"`,
			want: []token.Tag{token.String, token.EOF},
		},
		{
			name: "comment stripped",
			src:  "# a comment\nvaria x",
			want: []token.Tag{token.Keyword, token.Identifier, token.EOF},
		},
		{
			name: "operators",
			src:  "a == b !== c",
			want: []token.Tag{token.Identifier, token.Operator, token.Identifier, token.Operator, token.Identifier, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex("test.fab", tt.src)
			if err != nil {
				t.Fatalf("Lex() error = %v", err)
			}
			toks = Prepare(toks)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(tt.want), toks)
			}
			for i, tag := range tt.want {
				if toks[i].Tag != tag {
					t.Errorf("token %d: got tag %v, want %v (lexeme %q)", i, toks[i].Tag, tag, toks[i].Lexeme)
				}
			}
		})
	}
}

func TestLexTripleQuotedString(t *testing.T) {
	src := "\"\"\"\nhello\nworld\"\"\""
	toks, err := Lex("test.fab", src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	toks = Prepare(toks)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[0].Tag != token.String {
		t.Errorf("got tag %v, want String", toks[0].Tag)
	}
	if toks[0].Lexeme != "hello\nworld" {
		t.Errorf("got lexeme %q, want %q", toks[0].Lexeme, "hello\nworld")
	}
}

func TestLexEscapeSequences(t *testing.T) {
	toks, err := Lex("test.fab", `"a\nb\tc"`)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	toks = Prepare(toks)
	if toks[0].Lexeme != "a\nb\tc" {
		t.Errorf("got %q, want %q", toks[0].Lexeme, "a\nb\tc")
	}
}

func TestLexSectionSign(t *testing.T) {
	toks, err := Lex("test.fab", `§ importa ex "x" *`)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	toks = Prepare(toks)
	if toks[0].Tag != token.Punctuator || toks[0].Lexeme != "§" {
		t.Errorf("got %+v, want § punctuator", toks[0])
	}
}
