// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package sema implements Faber's two-pass semantic analyzer: a
// declaration-collection pass followed by a body-analysis pass that
// resolves every expression's SemType and records diagnostics for
// undefined identifiers. Grounded in
// original_source/fons/nanus-py/scope.py (semantic type dataclasses,
// Scopus/SemanticContext) and semantic.py (the two-pass walk), restructured
// as a tagged-variant interface family per the teacher's ast-node idiom
// (internal/ast) rather than Python's duck-typed dataclass union.
package sema

import "strings"

// SemType is the semantic-type sum: resolved types distinct from the
// surface ast.Typus annotations that produced them.
type SemType interface {
	String() string
	semType()
}

// Primitivus is one of the built-in scalar types.
type Primitivus struct {
	Species    string // "textus" | "numerus" | "fractus" | "bivalens" | "nihil" | "vacuum"
	Nullabilis bool
}

func (*Primitivus) semType() {}
func (p *Primitivus) String() string {
	if p.Nullabilis {
		return p.Species + "?"
	}
	return p.Species
}

// Lista is a list type lista<T>.
type Lista struct {
	Elementum  SemType
	Nullabilis bool
}

func (*Lista) semType() {}
func (l *Lista) String() string {
	s := "lista<" + str(l.Elementum) + ">"
	if l.Nullabilis {
		s += "?"
	}
	return s
}

// Tabula is a map type tabula<K, V>.
type Tabula struct {
	Clavis     SemType
	Valor      SemType
	Nullabilis bool
}

func (*Tabula) semType() {}
func (t *Tabula) String() string {
	s := "tabula<" + str(t.Clavis) + ", " + str(t.Valor) + ">"
	if t.Nullabilis {
		s += "?"
	}
	return s
}

// Copia is a set type copia<T>.
type Copia struct {
	Elementum  SemType
	Nullabilis bool
}

func (*Copia) semType() {}
func (c *Copia) String() string {
	s := "copia<" + str(c.Elementum) + ">"
	if c.Nullabilis {
		s += "?"
	}
	return s
}

// Functio is a function type.
type Functio struct {
	Params     []SemType
	Reditus    SemType
	Nullabilis bool
}

func (*Functio) semType() {}
func (f *Functio) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = str(p)
	}
	s := "functio(" + strings.Join(parts, ", ") + ")"
	if f.Reditus != nil {
		s += " -> " + str(f.Reditus)
	}
	if f.Nullabilis {
		s += "?"
	}
	return s
}

// Genus is a class/struct type.
type Genus struct {
	Nomen      string
	Agri       map[string]SemType
	Methodi    map[string]*Functio
	Nullabilis bool
}

func (*Genus) semType() {}
func (g *Genus) String() string {
	if g.Nullabilis {
		return g.Nomen + "?"
	}
	return g.Nomen
}

// Ordo is an enum type.
type Ordo struct {
	Nomen  string
	Membra map[string]int
}

func (*Ordo) semType()        {}
func (o *Ordo) String() string { return o.Nomen }

// Discretio is a discriminated union type.
type Discretio struct {
	Nomen      string
	Variantes  map[string]*Genus
}

func (*Discretio) semType()        {}
func (d *Discretio) String() string { return d.Nomen }

// Pactum is an interface type.
type Pactum struct {
	Nomen   string
	Methodi map[string]*Functio
}

func (*Pactum) semType()        {}
func (p *Pactum) String() string { return p.Nomen }

// Usitatum is a reference to a user-defined type, possibly unresolved.
type Usitatum struct {
	Nomen      string
	Nullabilis bool
}

func (*Usitatum) semType() {}
func (u *Usitatum) String() string {
	if u.Nullabilis {
		return u.Nomen + "?"
	}
	return u.Nomen
}

// Unio is a union type A | B | C.
type Unio struct {
	Membra     []SemType
	Nullabilis bool
}

func (*Unio) semType() {}
func (u *Unio) String() string {
	parts := make([]string, len(u.Membra))
	for i, m := range u.Membra {
		parts[i] = str(m)
	}
	s := strings.Join(parts, " | ")
	if u.Nullabilis {
		s += "?"
	}
	return s
}

// TypusParametrum is a generic type parameter (T in lista<T>).
type TypusParametrum struct{ Nomen string }

func (*TypusParametrum) semType()        {}
func (p *TypusParametrum) String() string { return p.Nomen }

// Ignotum is the unknown/error type for unresolved cases.
type Ignotum struct{ Ratio string }

func (*Ignotum) semType()        {}
func (*Ignotum) String() string { return "ignotum" }

func str(t SemType) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// Primitive type constants.
var (
	Textus   = &Primitivus{Species: "textus"}
	Numerus  = &Primitivus{Species: "numerus"}
	Fractus  = &Primitivus{Species: "fractus"}
	Bivalens = &Primitivus{Species: "bivalens"}
	Nihil    = &Primitivus{Species: "nihil"}
	Vacuum   = &Primitivus{Species: "vacuum"}
	IgnotumT = &Ignotum{Ratio: "unresolved"}
)

// Nullabilis returns a nullable copy of t, preserving its concrete shape.
func Nullabilis(t SemType) SemType {
	switch v := t.(type) {
	case nil:
		return nil
	case *Primitivus:
		return &Primitivus{Species: v.Species, Nullabilis: true}
	case *Lista:
		return &Lista{Elementum: v.Elementum, Nullabilis: true}
	case *Tabula:
		return &Tabula{Clavis: v.Clavis, Valor: v.Valor, Nullabilis: true}
	case *Copia:
		return &Copia{Elementum: v.Elementum, Nullabilis: true}
	case *Functio:
		return &Functio{Params: v.Params, Reditus: v.Reditus, Nullabilis: true}
	case *Genus:
		return &Genus{Nomen: v.Nomen, Agri: v.Agri, Methodi: v.Methodi, Nullabilis: true}
	case *Usitatum:
		return &Usitatum{Nomen: v.Nomen, Nullabilis: true}
	case *Unio:
		return &Unio{Membra: v.Membra, Nullabilis: true}
	default:
		return t
	}
}

func isNumeric(t SemType) bool {
	p, ok := t.(*Primitivus)
	return ok && (p.Species == "numerus" || p.Species == "fractus")
}

func isFractus(t SemType) bool {
	p, ok := t.(*Primitivus)
	return ok && p.Species == "fractus"
}

func isTextus(t SemType) bool {
	p, ok := t.(*Primitivus)
	return ok && p.Species == "textus"
}
