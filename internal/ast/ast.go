// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ast defines Faber's intermediate representation: tagged-variant
// families for types, expressions, and statements, one struct per shape
// implementing a common Node interface. This follows the teacher's
// one-struct-per-kind pattern (token/token.go's CharData/Identifier/...)
// rather than a single struct with a Kind tag field, which is the
// idiomatic Go way to model what the Python original expresses as a
// dataclass union with a `tag: str` discriminator.
package ast

import "github.com/faberlang/faber/internal/diag"

// Node is implemented by every IR node: types, expressions, statements,
// and the module itself. TypeName returns the "_type" discriminator spec.md
// §6 requires on every node in the JSON IR dump.
type Node interface {
	Locus() diag.Locus
	TypeName() string
}

// Pos is embedded by every concrete node to satisfy half of Node; each
// node type supplies its own TypeName.
type Pos struct {
	At diag.Locus
}

func (p Pos) Locus() diag.Locus { return p.At }

// Typus is the surface type-annotation sum (spec.md §3 "Types").
type Typus interface {
	Node
	typusNode()
}

// Expr is the expression sum (spec.md §3 "Expressions").
type Expr interface {
	Node
	exprNode()
}

// Stmt is the statement sum (spec.md §3 "Statements").
type Stmt interface {
	Node
	stmtNode()
}

// Modulus is one compilation unit: an ordered list of top-level
// statements.
type Modulus struct {
	Corpus []Stmt
	At     diag.Locus
}

func (m *Modulus) Locus() diag.Locus { return m.At }
func (m *Modulus) TypeName() string  { return "Modulus" }
