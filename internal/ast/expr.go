// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/faberlang/faber/internal/diag"

// LitteraSpecies classifies an ExprLittera's value.
type LitteraSpecies int

const (
	LitNumerus LitteraSpecies = iota
	LitFractus
	LitTextus
	LitVerum
	LitFalsum
	LitNihil
)

func (s LitteraSpecies) String() string {
	switch s {
	case LitNumerus:
		return "Numerus"
	case LitFractus:
		return "Fractus"
	case LitTextus:
		return "Textus"
	case LitVerum:
		return "Verum"
	case LitFalsum:
		return "Falsum"
	case LitNihil:
		return "Nihil"
	default:
		return "Unknown"
	}
}

// Param is a function/lambda parameter.
type Param struct {
	Nomen     string
	Typus     Typus
	Default   Expr
	Rest      bool
	Optional  bool
	Ownership string // "ex" | "de" | "in" | ""
	At        diag.Locus
}

// ObiectumProp is one key/value pair of an object literal, a variant
// constructor's field list (ExprFinge), or a postfix-novum initializer.
type ObiectumProp struct {
	Key       Expr
	Valor     Expr
	Shorthand bool
	Computed  bool
	At        diag.Locus
}

// ExprNomen is an identifier reference.
type ExprNomen struct {
	Pos
	Valor string
}

func (*ExprNomen) exprNode()       {}
func (*ExprNomen) TypeName() string { return "ExprNomen" }

// ExprEgo is the self-reference `ego`.
type ExprEgo struct{ Pos }

func (*ExprEgo) exprNode()       {}
func (*ExprEgo) TypeName() string { return "ExprEgo" }

// ExprLittera is a literal value.
type ExprLittera struct {
	Pos
	Species LitteraSpecies
	Valor   string
}

func (*ExprLittera) exprNode()       {}
func (*ExprLittera) TypeName() string { return "ExprLittera" }

// ExprBinaria is a binary expression.
type ExprBinaria struct {
	Pos
	Signum string
	Sin    Expr
	Dex    Expr
}

func (*ExprBinaria) exprNode()       {}
func (*ExprBinaria) TypeName() string { return "ExprBinaria" }

// ExprUnaria is a unary expression.
type ExprUnaria struct {
	Pos
	Signum string
	Arg    Expr
}

func (*ExprUnaria) exprNode()       {}
func (*ExprUnaria) TypeName() string { return "ExprUnaria" }

// ExprAssignatio is an assignment expression.
type ExprAssignatio struct {
	Pos
	Signum string
	Sin    Expr
	Dex    Expr
}

func (*ExprAssignatio) exprNode()       {}
func (*ExprAssignatio) TypeName() string { return "ExprAssignatio" }

// ExprCondicio is a ternary conditional (`cond sic cons secus alt`).
type ExprCondicio struct {
	Pos
	Cond Expr
	Cons Expr
	Alt  Expr
}

func (*ExprCondicio) exprNode()       {}
func (*ExprCondicio) TypeName() string { return "ExprCondicio" }

// ExprVocatio is a function call.
type ExprVocatio struct {
	Pos
	Callee Expr
	Args   []Expr
}

func (*ExprVocatio) exprNode()       {}
func (*ExprVocatio) TypeName() string { return "ExprVocatio" }

// ExprMembrum is a member access, optionally computed ([expr]) and/or
// non-null-asserted (!.name / ![expr]).
type ExprMembrum struct {
	Pos
	Obj      Expr
	Prop     Expr
	Computed bool
	NonNull  bool
}

func (*ExprMembrum) exprNode()       {}
func (*ExprMembrum) TypeName() string { return "ExprMembrum" }

// ExprSeries is an array literal.
type ExprSeries struct {
	Pos
	Elementa []Expr
}

func (*ExprSeries) exprNode()       {}
func (*ExprSeries) TypeName() string { return "ExprSeries" }

// ExprObiectum is an object literal.
type ExprObiectum struct {
	Pos
	Props []ObiectumProp
}

func (*ExprObiectum) exprNode()       {}
func (*ExprObiectum) TypeName() string { return "ExprObiectum" }

// ExprClausura is a lambda. Corpus is either a Stmt (block body) or an
// Expr (single-expression body).
type ExprClausura struct {
	Pos
	Params     []Param
	CorpusStmt Stmt
	CorpusExpr Expr
}

func (*ExprClausura) exprNode()       {}
func (*ExprClausura) TypeName() string { return "ExprClausura" }

// ExprNovum is a constructor call `novum Callee(args) { init }`.
type ExprNovum struct {
	Pos
	Callee Expr
	Args   []Expr
	Init   Expr // *ExprObiectum or nil
}

func (*ExprNovum) exprNode()       {}
func (*ExprNovum) TypeName() string { return "ExprNovum" }

// ExprCede is an await expression (`cede arg`).
type ExprCede struct {
	Pos
	Arg Expr
}

func (*ExprCede) exprNode()       {}
func (*ExprCede) TypeName() string { return "ExprCede" }

// ExprQua is a type assertion `expr qua Type`.
type ExprQua struct {
	Pos
	Expr  Expr
	Typus Typus
}

func (*ExprQua) exprNode()       {}
func (*ExprQua) TypeName() string { return "ExprQua" }

// ExprInnatum is an inline type assertion `expr innatum Type`.
type ExprInnatum struct {
	Pos
	Expr  Expr
	Typus Typus
}

func (*ExprInnatum) exprNode()       {}
func (*ExprInnatum) TypeName() string { return "ExprInnatum" }

// ExprPostfixNovum is the postfix constructor form `{ ... } novum Type`.
type ExprPostfixNovum struct {
	Pos
	Expr  Expr
	Typus Typus
}

func (*ExprPostfixNovum) exprNode()       {}
func (*ExprPostfixNovum) TypeName() string { return "ExprPostfixNovum" }

// ExprFinge is a discriminated-union variant constructor.
type ExprFinge struct {
	Pos
	Variant string
	Campi   []ObiectumProp
	Typus   Typus
}

func (*ExprFinge) exprNode()       {}
func (*ExprFinge) TypeName() string { return "ExprFinge" }

// ExprScriptum is a template string, `§` marking interpolation slots.
type ExprScriptum struct {
	Pos
	Template string
	Args     []Expr
}

func (*ExprScriptum) exprNode()       {}
func (*ExprScriptum) TypeName() string { return "ExprScriptum" }

// ExprAmbitus is a range `start usque end` (inclusive) or `start ante end`
// (exclusive).
type ExprAmbitus struct {
	Pos
	Start     Expr
	End       Expr
	Inclusive bool
}

func (*ExprAmbitus) exprNode()       {}
func (*ExprAmbitus) TypeName() string { return "ExprAmbitus" }

// ExprConversio is a numeratum/fractatum/textatum/bivalentum conversion,
// with an optional `vel fallback` for the two numeric ones.
type ExprConversio struct {
	Pos
	Expr     Expr
	Species  string
	Fallback Expr
}

func (*ExprConversio) exprNode()       {}
func (*ExprConversio) TypeName() string { return "ExprConversio" }
