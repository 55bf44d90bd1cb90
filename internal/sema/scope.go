// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package sema

import (
	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/diag"
)

// SymbolSpecies classifies what kind of symbol an entry is.
type SymbolSpecies int

const (
	Variabilis SymbolSpecies = iota
	FunctioSym
	Parametrum
	TypusSym
	GenusSym
	OrdoSym
	DiscretioSym
	PactumSym
	VariansSym
)

// ScopusSpecies classifies what kind of lexical scope a Scopus is.
type ScopusSpecies int

const (
	Global ScopusSpecies = iota
	FunctioScope
	MassaScope
	GenusScope
)

// Symbolum is a named entity in the symbol table.
type Symbolum struct {
	Nomen     string
	Typus     SemType
	Species   SymbolSpecies
	Mutabilis bool
	Locus     diag.Locus
	Node      ast.Node
}

// Scopus is a lexical scope with its own symbol table and an optional
// parent to chain lookups through.
type Scopus struct {
	Parent  *Scopus
	Symbola map[string]*Symbolum
	Species ScopusSpecies
	Nomen   string
}

func newScopus(parent *Scopus, species ScopusSpecies, nomen string) *Scopus {
	return &Scopus{Parent: parent, Symbola: make(map[string]*Symbolum), Species: species, Nomen: nomen}
}

// Definie adds a symbol to this scope.
func (s *Scopus) Definie(sym *Symbolum) { s.Symbola[sym.Nomen] = sym }

// Quaere looks up a symbol in this scope and its parent chain.
func (s *Scopus) Quaere(nomen string) *Symbolum {
	if sym, ok := s.Symbola[nomen]; ok {
		return sym
	}
	if s.Parent != nil {
		return s.Parent.Quaere(nomen)
	}
	return nil
}

// QuaereLocalis looks up a symbol only in this scope.
func (s *Scopus) QuaereLocalis(nomen string) *Symbolum { return s.Symbola[nomen] }

// QuaereTypus looks up a type symbol (genus, ordo, discretio, pactum, typus alias).
func (s *Scopus) QuaereTypus(nomen string) *Symbolum {
	sym := s.Quaere(nomen)
	if sym == nil {
		return nil
	}
	switch sym.Species {
	case GenusSym, OrdoSym, DiscretioSym, PactumSym, TypusSym:
		return sym
	default:
		return nil
	}
}

// SemanticError is one diagnostic recorded during analysis (spec.md §4.3:
// semantic errors are collected, not fatal — unlike lexical/syntax errors).
type SemanticError struct {
	Nuntius string
	Locus   diag.Locus
}

// Context holds all state threaded through both analysis passes.
type Context struct {
	Global        *Scopus
	Current       *Scopus
	Typi          map[string]SemType
	OrdoRegistry  map[string]*Ordo
	DiscRegistry  map[string]*Discretio
	GenusRegistry map[string]*Genus
	Errores       []SemanticError
	exprTypes     map[ast.Expr]SemType
}

// NewContext creates a fresh analysis context rooted at the global scope.
func NewContext() *Context {
	g := newScopus(nil, Global, "")
	return &Context{
		Global:        g,
		Current:       g,
		Typi:          make(map[string]SemType),
		OrdoRegistry:  make(map[string]*Ordo),
		DiscRegistry:  make(map[string]*Discretio),
		GenusRegistry: make(map[string]*Genus),
		exprTypes:     make(map[ast.Expr]SemType),
	}
}

// IntraScopum enters a new child scope.
func (c *Context) IntraScopum(species ScopusSpecies, nomen string) {
	c.Current = newScopus(c.Current, species, nomen)
}

// ExiScopum exits the current scope back to its parent, a no-op at the
// global scope.
func (c *Context) ExiScopum() {
	if c.Current.Parent != nil {
		c.Current = c.Current.Parent
	}
}

// Definie adds a symbol to the current scope.
func (c *Context) Definie(sym *Symbolum) { c.Current.Definie(sym) }

// Quaere looks a symbol up through the current scope chain.
func (c *Context) Quaere(nomen string) *Symbolum { return c.Current.Quaere(nomen) }

// Error records a semantic diagnostic without aborting analysis.
func (c *Context) Error(nuntius string, locus diag.Locus) {
	c.Errores = append(c.Errores, SemanticError{Nuntius: nuntius, Locus: locus})
}

// RegisterTypus registers a resolved type under a name.
func (c *Context) RegisterTypus(nomen string, typus SemType) { c.Typi[nomen] = typus }

// ResolveTypusNomen resolves a bare type name to its SemType, consulting
// primitives (including the supplemented vacuus/quodlibet/quidlibet aliases
// — SPEC_FULL.md "Supplemented features" item 2), then registered types,
// then the genus/ordo/discretio registries, falling back to an unresolved
// Usitatum reference.
func (c *Context) ResolveTypusNomen(nomen string) SemType {
	switch nomen {
	case "textus":
		return Textus
	case "numerus":
		return Numerus
	case "fractus":
		return Fractus
	case "bivalens":
		return Bivalens
	case "nihil":
		return Nihil
	case "vacuum", "vacuus":
		return Vacuum
	case "ignotum", "quodlibet", "quidlibet":
		return IgnotumT
	}

	if t, ok := c.Typi[nomen]; ok {
		return t
	}
	if t, ok := c.OrdoRegistry[nomen]; ok {
		return t
	}
	if t, ok := c.DiscRegistry[nomen]; ok {
		return t
	}
	if t, ok := c.GenusRegistry[nomen]; ok {
		return t
	}

	return &Usitatum{Nomen: nomen}
}

// SetExprType records the resolved type of an expression node.
func (c *Context) SetExprType(e ast.Expr, t SemType) {
	if e == nil {
		return
	}
	c.exprTypes[e] = t
}

// GetExprType retrieves the resolved type of an expression node, or
// IgnotumT if it was never analyzed.
func (c *Context) GetExprType(e ast.Expr) SemType {
	if e == nil {
		return IgnotumT
	}
	if t, ok := c.exprTypes[e]; ok {
		return t
	}
	return IgnotumT
}
