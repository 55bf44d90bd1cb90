// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package token defines the Faber token tag set and the Token value the
// lexer produces, one entry per spec.md §3 "Token" data model.
package token

import "github.com/faberlang/faber/internal/diag"

// Tag classifies a Token. Unlike the teacher's one-struct-per-kind markup
// tokens (token.CharData, token.BlockStart, ...), Faber's tokens are
// homogeneous: every lexeme carries the same (tag, text, locus) shape, so
// a single Token struct with a Tag discriminator is the idiomatic fit here.
type Tag int

const (
	EOF Tag = iota
	Newline
	Identifier
	Number
	String
	Operator
	Punctuator
	Keyword
	Comment
)

func (t Tag) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case String:
		return "String"
	case Operator:
		return "Operator"
	case Punctuator:
		return "Punctuator"
	case Keyword:
		return "Keyword"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit: its classification tag, the exact
// source lexeme, and the Locus of its first byte.
type Token struct {
	Tag    Tag
	Lexeme string
	Locus  diag.Locus
}

// Is reports whether the token has the given tag and, if lexeme is
// non-empty, that exact lexeme. Mirrors the parser's "check" helper need
// to test both dimensions without allocating.
func (t Token) Is(tag Tag, lexeme string) bool {
	if t.Tag != tag {
		return false
	}
	if lexeme == "" {
		return true
	}
	return t.Lexeme == lexeme
}

// Keywords is the fixed keyword set, ported verbatim from the original
// lexer's KEYWORDS frozenset. An identifier whose lexeme is a member
// classifies as Keyword, not Identifier.
var Keywords = map[string]bool{
	// Declarations
	"varia": true, "fixum": true, "figendum": true, "variandum": true,
	"functio": true, "genus": true, "pactum": true, "ordo": true, "discretio": true, "typus": true,
	"ex": true, "importa": true, "ut": true,
	// Modifiers
	"publica": true, "privata": true, "protecta": true, "generis": true, "implet": true, "sub": true, "abstractus": true,
	// Control flow
	"si": true, "sin": true, "secus": true, "dum": true, "fac": true, "elige": true, "casu": true, "ceterum": true, "discerne": true, "custodi": true,
	"de": true, "itera": true, "in": true, "pro": true, "omnia": true,
	// Actions
	"redde": true, "reddit": true, "rumpe": true, "perge": true, "iace": true, "mori": true, "tempta": true, "cape": true, "demum": true,
	"scribe": true, "vide": true, "mone": true, "adfirma": true, "tacet": true,
	// Expressions
	"cede": true, "novum": true, "clausura": true, "qua": true, "innatum": true, "finge": true,
	"sic": true, "scriptum": true,
	// Operators (word-form)
	"et": true, "aut": true, "vel": true, "inter": true, "intra": true,
	"non": true, "nihil": true, "nonnihil": true, "positivum": true, "negativum": true, "nulla": true, "nonnulla": true,
	// Conversion operators
	"numeratum": true, "fractatum": true, "textatum": true, "bivalentum": true,
	// Literals
	"verum": true, "falsum": true, "ego": true,
	// Entry
	"incipit": true, "incipiet": true,
	// Test
	"probandum": true, "proba": true,
	// Type
	"usque": true, "ante": true,
	// Annotations
	"publicum": true, "externa": true,
}

// Operators is tried longest-first per spec.md §4.1.
var Operators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||", "??",
	"+=", "-=", "*=", "/=", "->", "..",
	"+", "-", "*", "/", "%", "<", ">", "=", "&", "|", "^", "~",
}

// Punctuators are the single-character structural tokens.
const Punctuators = "(){}[],.;:@#?!"

// SectionSign is the distinguished multi-byte punctuator prefixing
// top-level directives (spec.md §4.1 "Section sign").
const SectionSign = '§'
