// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package emitpy lowers a Faber AST to Python-like host source, the
// non-round-trip direction spec.md §4.4/§8 requires. Grounded in
// original_source/fons/nanus-py/emitter_py.py's PyEmitter, translated
// statement-for-statement and expression-for-expression; the builtin
// method rewrite table (longitudo/appende/divide/...) and the import
// scan both keep the original's exact member lists.
package emitpy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/faberlang/faber/internal/ast"
)

var pyBinaryOps = map[string]string{
	"et": "and", "aut": "or", "==": "==", "!=": "!=", "===": "is", "!==": "is not",
}

var pyUnaryOps = map[string]string{
	"non": "not ", "nihil": "", "nonnihil": "", "positivum": "+", "negativum": "-",
}

var pyTypeMap = map[string]string{
	"textus": "str", "numerus": "int", "fractus": "float", "bivalens": "bool",
	"nihil": "None", "vacuum": "None", "vacuus": "None",
	"ignotum": "Any", "quodlibet": "Any", "quidlibet": "Any",
	"lista": "list", "tabula": "dict", "copia": "set",
}

const indentUnit = "    "

// Emit lowers a module to Python-like source.
func Emit(mod *ast.Modulus) string {
	e := &emitter{}
	return e.emit(mod)
}

type emitter struct{}

func (e *emitter) emit(mod *ast.Modulus) string {
	var lines []string

	imports := e.collectImports(mod)
	if len(imports) > 0 {
		sorted := make([]string, 0, len(imports))
		for imp := range imports {
			sorted = append(sorted, imp)
		}
		sort.Strings(sorted)
		lines = append(lines, sorted...)
		lines = append(lines, "")
	}

	for _, stmt := range mod.Corpus {
		code := e.stmt(stmt, "")
		if code != "" {
			lines = append(lines, code, "")
		}
	}

	return strings.Join(lines, "\n")
}

func (e *emitter) collectImports(mod *ast.Modulus) map[string]bool {
	imports := make(map[string]bool)
	for _, stmt := range mod.Corpus {
		e.scanImports(stmt, imports)
	}
	return imports
}

func (e *emitter) scanImports(s ast.Stmt, imports map[string]bool) {
	switch st := s.(type) {
	case *ast.StmtPactum:
		imports["from typing import Protocol"] = true
	case *ast.StmtOrdo:
		imports["from enum import Enum, auto"] = true
	case *ast.StmtDiscretio:
		imports["from dataclasses import dataclass"] = true
	case *ast.StmtGenus:
		imports["from dataclasses import dataclass"] = true
		for _, m := range st.Methodi {
			e.scanImports(m, imports)
		}
	case *ast.StmtFunctio:
		if st.Corpus != nil {
			e.scanImports(st.Corpus, imports)
		}
	case *ast.StmtMassa:
		for _, s2 := range st.Corpus {
			e.scanImports(s2, imports)
		}
	case *ast.StmtSi:
		e.scanImports(st.Cons, imports)
		if st.Alt != nil {
			e.scanImports(st.Alt, imports)
		}
	case *ast.StmtDum:
		e.scanImports(st.Corpus, imports)
	case *ast.StmtIteratio:
		e.scanImports(st.Corpus, imports)
	case *ast.StmtElige:
		for _, c := range st.Casus {
			e.scanImports(c.Corpus, imports)
		}
		if st.Default != nil {
			e.scanImports(st.Default, imports)
		}
	case *ast.StmtTempta:
		e.scanImports(st.Corpus, imports)
		if st.Cape != nil {
			e.scanImports(st.Cape.Corpus, imports)
		}
		if st.Demum != nil {
			e.scanImports(st.Demum, imports)
		}
	case *ast.StmtProbandum:
		for _, s2 := range st.Corpus {
			e.scanImports(s2, imports)
		}
	case *ast.StmtProba:
		e.scanImports(st.Corpus, imports)
	case *ast.StmtIncipit:
		e.scanImports(st.Corpus, imports)
	}
}

func (e *emitter) stmt(s ast.Stmt, indent string) string {
	switch st := s.(type) {
	case *ast.StmtVaria:
		return e.varia(st, indent)
	case *ast.StmtFunctio:
		return e.functio(st, indent)
	case *ast.StmtGenus:
		return e.genus(st, indent)
	case *ast.StmtPactum:
		return e.pactum(st, indent)
	case *ast.StmtOrdo:
		return e.ordo(st, indent)
	case *ast.StmtDiscretio:
		return e.discretio(st, indent)
	case *ast.StmtImporta:
		return e.importa(st, indent)
	case *ast.StmtRedde:
		return e.redde(st, indent)
	case *ast.StmtSi:
		return e.si(st, indent)
	case *ast.StmtDum:
		return e.dum(st, indent)
	case *ast.StmtFacDum:
		return e.facDum(st, indent)
	case *ast.StmtIteratio:
		return e.iteratio(st, indent)
	case *ast.StmtIn:
		return indent + "if " + e.expr(st.Expr) + ":\n" + e.stmt(st.Corpus, indent+indentUnit)
	case *ast.StmtElige:
		return e.elige(st, indent)
	case *ast.StmtDiscerne:
		return e.discerne(st, indent)
	case *ast.StmtCustodi:
		return e.custodi(st, indent)
	case *ast.StmtTempta:
		return e.tempta(st, indent)
	case *ast.StmtIace:
		if st.Fatale {
			if st.Arg != nil {
				return fmt.Sprintf("%sraise SystemExit(%s)", indent, e.expr(st.Arg))
			}
			return indent + "raise SystemExit()"
		}
		return fmt.Sprintf("%sraise Exception(%s)", indent, e.expr(st.Arg))
	case *ast.StmtRumpe:
		return indent + "break"
	case *ast.StmtPerge:
		return indent + "continue"
	case *ast.StmtScribe:
		return e.scribe(st, indent)
	case *ast.StmtAdfirma:
		code := indent + "assert " + e.expr(st.Cond)
		if st.Msg != nil {
			code += ", " + e.expr(st.Msg)
		}
		return code
	case *ast.StmtExpressia:
		return indent + e.expr(st.Expr)
	case *ast.StmtMassa:
		return e.massa(st, indent)
	case *ast.StmtIncipit:
		return e.incipit(st, indent)
	case *ast.StmtProbandum:
		return e.probandum(st, indent)
	case *ast.StmtProba:
		return e.proba(st, indent)
	case *ast.StmtTypusAlias:
		return indent + st.Nomen + " = " + e.typus(st.Typus)
	default:
		return indent + "# unknown statement"
	}
}

func (e *emitter) massa(s *ast.StmtMassa, indent string) string {
	if len(s.Corpus) == 0 {
		return indent + "pass"
	}
	lines := make([]string, len(s.Corpus))
	for i, stmt := range s.Corpus {
		lines[i] = e.stmt(stmt, indent)
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) varia(s *ast.StmtVaria, indent string) string {
	if s.Externa {
		return indent + "# extern: " + s.Nomen
	}
	typAnn := ""
	if s.Typus != nil {
		typAnn = ": " + e.typus(s.Typus)
	}
	if s.Valor != nil {
		return fmt.Sprintf("%s%s%s = %s", indent, s.Nomen, typAnn, e.expr(s.Valor))
	}
	if typAnn != "" {
		return fmt.Sprintf("%s%s%s = None", indent, s.Nomen, typAnn)
	}
	return fmt.Sprintf("%s%s = None", indent, s.Nomen)
}

func (e *emitter) functio(s *ast.StmtFunctio, indent string) string {
	if s.Externa {
		return indent + "# extern: " + s.Nomen
	}

	def := "def "
	if s.Asynca {
		def = "async def "
	}
	head := indent + def + s.Nomen + "("
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = e.param(p)
	}
	head += strings.Join(params, ", ") + ")"
	if s.TypusReditus != nil {
		head += " -> " + e.typus(s.TypusReditus)
	}
	head += ":"

	var body string
	if s.Corpus != nil {
		body = e.stmt(s.Corpus, indent+indentUnit)
	} else {
		body = indent + indentUnit + "pass"
	}
	return head + "\n" + body
}

func (e *emitter) method(s *ast.StmtFunctio, indent string) string {
	def := "def "
	if s.Asynca {
		def = "async def "
	}
	head := indent + def + s.Nomen + "(self"
	for _, p := range s.Params {
		head += ", " + e.param(p)
	}
	head += ")"
	if s.TypusReditus != nil {
		head += " -> " + e.typus(s.TypusReditus)
	}
	head += ":"

	var body string
	if s.Corpus != nil {
		body = e.stmt(s.Corpus, indent+indentUnit)
	} else {
		body = indent + indentUnit + "pass"
	}
	return head + "\n" + body
}

func (e *emitter) genus(s *ast.StmtGenus, indent string) string {
	lines := []string{indent + "@dataclass", indent + "class " + s.Nomen + ":"}
	inner := indent + indentUnit

	if len(s.Campi) == 0 && len(s.Methodi) == 0 {
		lines = append(lines, inner+"pass")
		return strings.Join(lines, "\n")
	}

	for _, c := range s.Campi {
		typ := "Any"
		if c.Typus != nil {
			typ = e.typus(c.Typus)
		}
		if c.Valor != nil {
			lines = append(lines, fmt.Sprintf("%s%s: %s = %s", inner, c.Nomen, typ, e.expr(c.Valor)))
		} else {
			lines = append(lines, fmt.Sprintf("%s%s: %s", inner, c.Nomen, typ))
		}
	}

	for _, m := range s.Methodi {
		if fn, ok := m.(*ast.StmtFunctio); ok {
			lines = append(lines, "", e.method(fn, inner))
		}
	}

	return strings.Join(lines, "\n")
}

func (e *emitter) pactum(s *ast.StmtPactum, indent string) string {
	lines := []string{indent + "class " + s.Nomen + "(Protocol):"}
	inner := indent + indentUnit

	if len(s.Methodi) == 0 {
		lines = append(lines, inner+"pass")
		return strings.Join(lines, "\n")
	}

	for _, m := range s.Methodi {
		def := "def "
		if m.Asynca {
			def = "async def "
		}
		head := inner + def + m.Nomen + "(self"
		for _, p := range m.Params {
			head += ", " + e.param(p)
		}
		head += ")"
		if m.TypusReditus != nil {
			head += " -> " + e.typus(m.TypusReditus)
		}
		head += ": ..."
		lines = append(lines, head)
	}

	return strings.Join(lines, "\n")
}

func (e *emitter) ordo(s *ast.StmtOrdo, indent string) string {
	lines := []string{indent + "class " + s.Nomen + "(Enum):"}
	inner := indent + indentUnit

	if len(s.Membra) == 0 {
		lines = append(lines, inner+"pass")
		return strings.Join(lines, "\n")
	}

	for _, m := range s.Membra {
		if m.Valor != nil {
			lines = append(lines, fmt.Sprintf("%s%s = %s", inner, m.Nomen, *m.Valor))
		} else {
			lines = append(lines, fmt.Sprintf("%s%s = auto()", inner, m.Nomen))
		}
	}

	return strings.Join(lines, "\n")
}

func (e *emitter) discretio(s *ast.StmtDiscretio, indent string) string {
	var lines []string

	for _, v := range s.Variantes {
		lines = append(lines, indent+"@dataclass", indent+"class "+v.Nomen+":")
		inner := indent + indentUnit
		if len(v.Campi) > 0 {
			for _, f := range v.Campi {
				typ := "Any"
				if f.Typus != nil {
					typ = e.typus(f.Typus)
				}
				lines = append(lines, fmt.Sprintf("%s%s: %s", inner, f.Nomen, typ))
			}
		} else {
			lines = append(lines, inner+"pass")
		}
		lines = append(lines, "")
	}

	names := make([]string, len(s.Variantes))
	for i, v := range s.Variantes {
		names[i] = v.Nomen
	}
	lines = append(lines, fmt.Sprintf("%s%s = %s", indent, s.Nomen, strings.Join(names, " | ")))

	return strings.Join(lines, "\n")
}

func (e *emitter) importa(s *ast.StmtImporta, indent string) string {
	module := strings.NewReplacer("/", ".", "-", "_").Replace(s.Fons)
	if s.Totum {
		alias := module
		if s.Alias != nil {
			alias = *s.Alias
		}
		return fmt.Sprintf("%simport %s as %s", indent, module, alias)
	}

	if len(s.Specs) == 0 {
		return fmt.Sprintf("%s# empty import from %s", indent, module)
	}

	specs := make([]string, len(s.Specs))
	for i, sp := range s.Specs {
		if sp.Imported != sp.Local {
			specs[i] = sp.Imported + " as " + sp.Local
		} else {
			specs[i] = sp.Imported
		}
	}
	return fmt.Sprintf("%sfrom %s import %s", indent, module, strings.Join(specs, ", "))
}

func (e *emitter) redde(s *ast.StmtRedde, indent string) string {
	if s.Valor == nil {
		return indent + "return"
	}
	return indent + "return " + e.expr(s.Valor)
}

func (e *emitter) si(s *ast.StmtSi, indent string) string {
	lines := []string{indent + "if " + e.expr(s.Cond) + ":", e.stmt(s.Cons, indent+indentUnit)}
	if s.Alt != nil {
		if inner, ok := s.Alt.(*ast.StmtSi); ok {
			chained := e.si(inner, "")
			lines = append(lines, indent+"el"+chained[len(""):])
		} else {
			lines = append(lines, indent+"else:", e.stmt(s.Alt, indent+indentUnit))
		}
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) dum(s *ast.StmtDum, indent string) string {
	return indent + "while " + e.expr(s.Cond) + ":\n" + e.stmt(s.Corpus, indent+indentUnit)
}

func (e *emitter) facDum(s *ast.StmtFacDum, indent string) string {
	inner := indent + indentUnit
	lines := []string{
		indent + "while True:",
		e.stmt(s.Corpus, inner),
		inner + "if not (" + e.expr(s.Cond) + "):",
		inner + indentUnit + "break",
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) iteratio(s *ast.StmtIteratio, indent string) string {
	head := indent + "for " + s.Binding + " in " + e.expr(s.Iter) + ":"
	if s.Asynca {
		head = indent + "async for " + s.Binding + " in " + e.expr(s.Iter) + ":"
	}
	return head + "\n" + e.stmt(s.Corpus, indent+indentUnit)
}

func (e *emitter) elige(s *ast.StmtElige, indent string) string {
	lines := []string{indent + "match " + e.expr(s.Discrim) + ":"}
	inner := indent + indentUnit
	for _, c := range s.Casus {
		lines = append(lines, inner+"case "+e.expr(c.Cond)+":", e.stmt(c.Corpus, inner+indentUnit))
	}
	if s.Default != nil {
		lines = append(lines, inner+"case _:", e.stmt(s.Default, inner+indentUnit))
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) discerne(s *ast.StmtDiscerne, indent string) string {
	discrim := make([]string, len(s.Discrim))
	for i, d := range s.Discrim {
		discrim[i] = e.expr(d)
	}
	var head string
	if len(s.Discrim) > 1 {
		head = indent + "match (" + strings.Join(discrim, ", ") + "):"
	} else {
		head = indent + "match " + strings.Join(discrim, ", ") + ":"
	}
	lines := []string{head}
	inner := indent + indentUnit
	for _, c := range s.Casus {
		var patterns []string
		for _, p := range c.Patterns {
			if p.Wildcard {
				patterns = append(patterns, "_")
				continue
			}
			pat := p.Variant
			if len(p.Bindings) > 0 {
				pat += "(" + strings.Join(p.Bindings, ", ") + ")"
			}
			if p.Alias != nil {
				pat += " as " + *p.Alias
			}
			patterns = append(patterns, pat)
		}
		lines = append(lines, inner+"case "+strings.Join(patterns, ", ")+":", e.stmt(c.Corpus, inner+indentUnit))
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) custodi(s *ast.StmtCustodi, indent string) string {
	var lines []string
	for _, c := range s.Clausulae {
		lines = append(lines, indent+"if "+e.expr(c.Cond)+":", e.stmt(c.Corpus, indent+indentUnit))
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) tempta(s *ast.StmtTempta, indent string) string {
	lines := []string{indent + "try:", e.stmt(s.Corpus, indent+indentUnit)}
	if s.Cape != nil {
		lines = append(lines, indent+"except Exception as "+s.Cape.Param+":", e.stmt(s.Cape.Corpus, indent+indentUnit))
	}
	if s.Demum != nil {
		lines = append(lines, indent+"finally:", e.stmt(s.Demum, indent+indentUnit))
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) scribe(s *ast.StmtScribe, indent string) string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = e.expr(a)
	}
	joined := strings.Join(args, ", ")
	if s.Gradus == ast.GradusMone {
		return fmt.Sprintf("%simport sys; print(%s, file=sys.stderr)", indent, joined)
	}
	return fmt.Sprintf("%sprint(%s)", indent, joined)
}

func (e *emitter) incipit(s *ast.StmtIncipit, indent string) string {
	if s.Asynca {
		lines := []string{
			indent + "async def main():",
			e.stmt(s.Corpus, indent+indentUnit),
			"",
			indent + `if __name__ == "__main__":`,
			indent + indentUnit + "import asyncio",
			indent + indentUnit + "asyncio.run(main())",
		}
		return strings.Join(lines, "\n")
	}
	lines := []string{indent + `if __name__ == "__main__":`, e.stmt(s.Corpus, indent+indentUnit)}
	return strings.Join(lines, "\n")
}

func (e *emitter) probandum(s *ast.StmtProbandum, indent string) string {
	safeName := strings.NewReplacer(" ", "_", "-", "_").Replace(s.Nomen)
	lines := []string{indent + "class Test" + safeName + ":"}
	inner := indent + indentUnit
	if len(s.Corpus) == 0 {
		lines = append(lines, inner+"pass")
	} else {
		for _, stmt := range s.Corpus {
			lines = append(lines, e.stmt(stmt, inner))
		}
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) proba(s *ast.StmtProba, indent string) string {
	safeName := strings.NewReplacer(" ", "_", "-", "_").Replace(s.Nomen)
	lines := []string{indent + "def test_" + safeName + "(self):", e.stmt(s.Corpus, indent+indentUnit)}
	return strings.Join(lines, "\n")
}

func (e *emitter) expr(ex ast.Expr) string {
	if ex == nil {
		return "None"
	}

	switch v := ex.(type) {
	case *ast.ExprNomen:
		return v.Valor
	case *ast.ExprEgo:
		return "self"
	case *ast.ExprLittera:
		switch v.Species {
		case ast.LitTextus:
			return pyStringLiteral(v.Valor)
		case ast.LitVerum:
			return "True"
		case ast.LitFalsum:
			return "False"
		case ast.LitNihil:
			return "None"
		default:
			return v.Valor
		}
	case *ast.ExprBinaria:
		if v.Signum == "vel" {
			left, right := e.expr(v.Sin), e.expr(v.Dex)
			return fmt.Sprintf("(%s if %s is not None else %s)", left, left, right)
		}
		if v.Signum == "inter" {
			return fmt.Sprintf("%s in %s", e.expr(v.Sin), e.expr(v.Dex))
		}
		if v.Signum == "intra" {
			return fmt.Sprintf("%s not in %s", e.expr(v.Sin), e.expr(v.Dex))
		}
		op, ok := pyBinaryOps[v.Signum]
		if !ok {
			op = v.Signum
		}
		return fmt.Sprintf("(%s %s %s)", e.expr(v.Sin), op, e.expr(v.Dex))
	case *ast.ExprUnaria:
		if v.Signum == "nonnihil" {
			return fmt.Sprintf("(%s is not None)", e.expr(v.Arg))
		}
		if v.Signum == "nihil" {
			return fmt.Sprintf("(%s is None)", e.expr(v.Arg))
		}
		op, ok := pyUnaryOps[v.Signum]
		if !ok {
			op = v.Signum
		}
		return fmt.Sprintf("(%s%s)", op, e.expr(v.Arg))
	case *ast.ExprAssignatio:
		return fmt.Sprintf("%s %s %s", e.expr(v.Sin), v.Signum, e.expr(v.Dex))
	case *ast.ExprVocatio:
		if callee, ok := v.Callee.(*ast.ExprMembrum); ok && !callee.Computed {
			if prop, ok := callee.Prop.(*ast.ExprLittera); ok {
				if rewritten, handled := e.rewriteBuiltinCall(callee.Obj, prop.Valor, v.Args); handled {
					return rewritten
				}
			}
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = e.expr(a)
		}
		return fmt.Sprintf("%s(%s)", e.expr(v.Callee), strings.Join(args, ", "))
	case *ast.ExprMembrum:
		obj := e.expr(v.Obj)
		if v.Computed {
			return fmt.Sprintf("%s[%s]", obj, e.expr(v.Prop))
		}
		prop := e.expr(v.Prop)
		if lit, ok := v.Prop.(*ast.ExprLittera); ok {
			prop = lit.Valor
		}
		switch prop {
		case "longitudo":
			return fmt.Sprintf("len(%s)", obj)
		case "primus":
			return fmt.Sprintf("%s[0]", obj)
		case "ultimus":
			return fmt.Sprintf("%s[-1]", obj)
		}
		return fmt.Sprintf("%s.%s", obj, prop)
	case *ast.ExprCondicio:
		return fmt.Sprintf("(%s if %s else %s)", e.expr(v.Cons), e.expr(v.Cond), e.expr(v.Alt))
	case *ast.ExprSeries:
		items := make([]string, len(v.Elementa))
		for i, el := range v.Elementa {
			items[i] = e.expr(el)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *ast.ExprObiectum:
		var pairs []string
		for _, p := range v.Props {
			if p.Shorthand {
				key := e.expr(p.Key)
				pairs = append(pairs, fmt.Sprintf(`"%s": %s`, key, key))
				continue
			}
			key := e.expr(p.Key)
			if lit, ok := p.Key.(*ast.ExprLittera); ok {
				key = pyStringLiteral(lit.Valor)
			}
			pairs = append(pairs, fmt.Sprintf("%s: %s", key, e.expr(p.Valor)))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	case *ast.ExprClausura:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = p.Nomen
		}
		if v.CorpusExpr != nil {
			return fmt.Sprintf("lambda %s: %s", strings.Join(params, ", "), e.expr(v.CorpusExpr))
		}
		return fmt.Sprintf("(lambda %s: None)", strings.Join(params, ", "))
	case *ast.ExprNovum:
		callee := e.expr(v.Callee)
		if init, ok := v.Init.(*ast.ExprObiectum); ok {
			return fmt.Sprintf("%s(%s)", callee, e.objectFields(init))
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = e.expr(a)
		}
		return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	case *ast.ExprPostfixNovum:
		typ := e.typus(v.Typus)
		if obj, ok := v.Expr.(*ast.ExprObiectum); ok {
			return fmt.Sprintf("%s(%s)", typ, e.objectFields(obj))
		}
		return fmt.Sprintf("%s(%s)", typ, e.expr(v.Expr))
	case *ast.ExprQua:
		return e.expr(v.Expr)
	case *ast.ExprInnatum:
		return e.expr(v.Expr)
	case *ast.ExprCede:
		return "await " + e.expr(v.Arg)
	case *ast.ExprFinge:
		var fields []string
		for _, p := range v.Campi {
			key := e.expr(p.Key)
			if lit, ok := p.Key.(*ast.ExprLittera); ok {
				key = lit.Valor
			}
			fields = append(fields, fmt.Sprintf("%s=%s", key, e.expr(p.Valor)))
		}
		return fmt.Sprintf("%s(%s)", v.Variant, strings.Join(fields, ", "))
	case *ast.ExprScriptum:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = e.expr(a)
		}
		tmpl := strings.NewReplacer("{", "{{", "}", "}}", "§", "{}").Replace(v.Template)
		return fmt.Sprintf("%s.format(%s)", pyStringLiteral(tmpl), strings.Join(args, ", "))
	case *ast.ExprAmbitus:
		start, end := e.expr(v.Start), e.expr(v.End)
		if v.Inclusive {
			return fmt.Sprintf("range(%s, %s + 1)", start, end)
		}
		return fmt.Sprintf("range(%s, %s)", start, end)
	case *ast.ExprConversio:
		// Supplemented: the original emitter_py.py never handled
		// ExprConversio at all (fell through to "# unknown expr") even
		// though the parser and semantic analyzer both support it.
		builtin := map[string]string{"numeratum": "int", "fractatum": "float", "textatum": "str", "bivalentum": "bool"}[v.Species]
		if builtin == "" {
			builtin = v.Species
		}
		if v.Fallback != nil {
			return fmt.Sprintf("_faber_convert(%s, %s, %s)", builtin, e.expr(v.Expr), e.expr(v.Fallback))
		}
		return fmt.Sprintf("%s(%s)", builtin, e.expr(v.Expr))
	default:
		return "# unknown expr"
	}
}

// rewriteBuiltinCall maps Faber's named collection/string methods onto
// their Python equivalents (append/add/join/split/...), matching the
// original emitter's hand-picked rewrite table exactly.
func (e *emitter) rewriteBuiltinCall(obj ast.Expr, method string, rawArgs []ast.Expr) (string, bool) {
	objCode := e.expr(obj)
	args := make([]string, len(rawArgs))
	for i, a := range rawArgs {
		args[i] = e.expr(a)
	}
	joined := strings.Join(args, ", ")

	switch method {
	case "longitudo":
		return fmt.Sprintf("len(%s)", objCode), true
	case "appende":
		return fmt.Sprintf("%s.append(%s)", objCode, joined), true
	case "adde":
		return fmt.Sprintf("%s.add(%s)", objCode, joined), true
	case "coniunge":
		return fmt.Sprintf("%s.join(%s)", joined, objCode), true
	case "continet":
		return fmt.Sprintf("%s in %s", joined, objCode), true
	case "initium":
		return fmt.Sprintf("%s.startswith(%s)", objCode, joined), true
	case "finis":
		return fmt.Sprintf("%s.endswith(%s)", objCode, joined), true
	case "maiuscula":
		return fmt.Sprintf("%s.upper()", objCode), true
	case "minuscula":
		return fmt.Sprintf("%s.lower()", objCode), true
	case "recide":
		return fmt.Sprintf("%s.strip()", objCode), true
	case "divide":
		return fmt.Sprintf("%s.split(%s)", objCode, joined), true
	case "muta":
		return fmt.Sprintf("%s.replace(%s)", objCode, joined), true
	case "sectio":
		switch len(args) {
		case 2:
			return fmt.Sprintf("%s[%s:%s]", objCode, args[0], args[1]), true
		case 1:
			return fmt.Sprintf("%s[%s:]", objCode, args[0]), true
		}
	}
	return "", false
}

func (e *emitter) objectFields(obj *ast.ExprObiectum) string {
	var fields []string
	for _, p := range obj.Props {
		key := e.expr(p.Key)
		if lit, ok := p.Key.(*ast.ExprLittera); ok {
			key = lit.Valor
		}
		fields = append(fields, fmt.Sprintf("%s=%s", key, e.expr(p.Valor)))
	}
	return strings.Join(fields, ", ")
}

func (e *emitter) typus(t ast.Typus) string {
	if t == nil {
		return "Any"
	}
	switch v := t.(type) {
	case *ast.TypusNomen:
		if py, ok := pyTypeMap[v.Nomen]; ok {
			return py
		}
		return v.Nomen
	case *ast.TypusNullabilis:
		return e.typus(v.Inner) + " | None"
	case *ast.TypusGenericus:
		base, ok := pyTypeMap[v.Nomen]
		if !ok {
			base = v.Nomen
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = e.typus(a)
		}
		return fmt.Sprintf("%s[%s]", base, strings.Join(args, ", "))
	case *ast.TypusFunctio:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = e.typus(p)
		}
		ret := "None"
		if v.Returns != nil {
			ret = e.typus(v.Returns)
		}
		return fmt.Sprintf("Callable[[%s], %s]", strings.Join(params, ", "), ret)
	case *ast.TypusUnio:
		members := make([]string, len(v.Members))
		for i, m := range v.Members {
			members[i] = e.typus(m)
		}
		return strings.Join(members, " | ")
	case *ast.TypusLitteralis:
		return v.Valor
	default:
		return "Any"
	}
}

func (e *emitter) param(p ast.Param) string {
	typ := ""
	if p.Typus != nil {
		typ = e.typus(p.Typus)
	}
	name := p.Nomen
	if p.Rest {
		name = "*" + name
	}
	result := name
	if typ != "" {
		result += ": " + typ
	}
	if p.Default != nil {
		result += " = " + e.expr(p.Default)
	}
	return result
}

// pyStringLiteral renders a double-quoted Python string literal. The
// escapes strconv.Quote produces (\", \\, \n, \t, \xNN, \uNNNN) are all
// valid inside a Python string literal.
func pyStringLiteral(s string) string {
	return strconv.Quote(s)
}
