// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

// TypusNomen is a simple named type.
type TypusNomen struct {
	Pos
	Nomen string
}

func (*TypusNomen) typusNode()      {}
func (*TypusNomen) TypeName() string { return "TypusNomen" }

// TypusNullabilis is a nullable type T? — a distinct node, not a union
// with a null singleton (spec.md §3).
type TypusNullabilis struct {
	Pos
	Inner Typus
}

func (*TypusNullabilis) typusNode()       {}
func (*TypusNullabilis) TypeName() string { return "TypusNullabilis" }

// TypusGenericus is a generic application Name<T1,...,Tn>.
type TypusGenericus struct {
	Pos
	Nomen string
	Args  []Typus
}

func (*TypusGenericus) typusNode()       {}
func (*TypusGenericus) TypeName() string { return "TypusGenericus" }

// TypusFunctio is a function type (T1,...,Tn) -> R.
type TypusFunctio struct {
	Pos
	Params  []Typus
	Returns Typus
}

func (*TypusFunctio) typusNode()       {}
func (*TypusFunctio) TypeName() string { return "TypusFunctio" }

// TypusUnio is a union type T1 | ... | Tn.
type TypusUnio struct {
	Pos
	Members []Typus
}

func (*TypusUnio) typusNode()       {}
func (*TypusUnio) TypeName() string { return "TypusUnio" }

// TypusLitteralis is a literal used as a type, e.g. "hello" or 42.
type TypusLitteralis struct {
	Pos
	Valor string
}

func (*TypusLitteralis) typusNode()       {}
func (*TypusLitteralis) TypeName() string { return "TypusLitteralis" }
