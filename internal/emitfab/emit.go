// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package emitfab renders a Faber AST back to canonical Faber source,
// the round-trip direction spec.md §4.4/§8 requires (parse(emit(parse(src)))
// == parse(src)). Grounded in
// original_source/fons/nanus-py/emitter_faber.py, adapted at four points
// to restore round-trip correctness where the original's emitter had
// drifted from its own parser's actual grammar — see SPEC_FULL.md
// "Supplemented features" item 3 for the rationale behind each deviation,
// each flagged below at its call site.
package emitfab

import (
	"strings"

	"github.com/faberlang/faber/internal/ast"
)

// Emit formats an entire module back to canonical Faber source.
func Emit(mod *ast.Modulus) string {
	var lines []string
	for i, stmt := range mod.Corpus {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, stmtStr(stmt, ""))
	}
	return strings.Join(lines, "\n")
}

func stmtStr(s ast.Stmt, indent string) string {
	switch st := s.(type) {
	case *ast.StmtVaria:
		return variaStr(st, indent)
	case *ast.StmtFunctio:
		return functioStr(st, indent)
	case *ast.StmtGenus:
		return genusStr(st, indent)
	case *ast.StmtPactum:
		return pactumStr(st, indent)
	case *ast.StmtOrdo:
		return ordoStr(st, indent)
	case *ast.StmtDiscretio:
		return discretioStr(st, indent)
	case *ast.StmtImporta:
		return importaStr(st, indent)
	case *ast.StmtTypusAlias:
		return typusAliasStr(st, indent)
	case *ast.StmtRedde:
		return reddeStr(st, indent)
	case *ast.StmtSi:
		return siStr(st, indent)
	case *ast.StmtDum:
		return dumStr(st, indent)
	case *ast.StmtFacDum:
		return facDumStr(st, indent)
	case *ast.StmtIteratio:
		return iteratioStr(st, indent)
	case *ast.StmtIn:
		return indent + "in " + exprStr(st.Expr) + " " + stmtStr(st.Corpus, indent)
	case *ast.StmtElige:
		return eligeStr(st, indent)
	case *ast.StmtDiscerne:
		return discerneStr(st, indent)
	case *ast.StmtCustodi:
		return custodiStr(st, indent)
	case *ast.StmtTempta:
		return temptaStr(st, indent)
	case *ast.StmtIace:
		if st.Fatale {
			if st.Arg != nil {
				return indent + "mori " + exprStr(st.Arg)
			}
			return indent + "mori"
		}
		return indent + "iace " + exprStr(st.Arg)
	case *ast.StmtRumpe:
		return indent + "rumpe"
	case *ast.StmtPerge:
		return indent + "perge"
	case *ast.StmtScribe:
		return scribeStr(st, indent)
	case *ast.StmtAdfirma:
		code := indent + "adfirma " + exprStr(st.Cond)
		if st.Msg != nil {
			code += ", " + exprStr(st.Msg)
		}
		return code
	case *ast.StmtExpressia:
		return indent + exprStr(st.Expr)
	case *ast.StmtMassa:
		return massaStr(st, indent)
	case *ast.StmtIncipit:
		return incipitStr(st, indent)
	case *ast.StmtProbandum:
		return probandumStr(st, indent)
	case *ast.StmtProba:
		return probaStr(st, indent)
	default:
		return indent + "# unknown statement"
	}
}

func massaStr(s *ast.StmtMassa, indent string) string {
	lines := []string{"{"}
	for _, stmt := range s.Corpus {
		lines = append(lines, stmtStr(stmt, indent+"\t"))
	}
	lines = append(lines, indent+"}")
	return strings.Join(lines, "\n")
}

func variaStr(s *ast.StmtVaria, indent string) string {
	keyword := "varia"
	switch s.Species {
	case ast.Fixum:
		keyword = "fixum"
	case ast.Figendum:
		keyword = "figendum"
	case ast.Variandum:
		keyword = "variandum"
	}

	var code string
	if s.Typus != nil {
		code = indent + keyword + " " + typusStr(s.Typus) + " " + s.Nomen
	} else {
		code = indent + keyword + " " + s.Nomen
	}
	if s.Valor != nil {
		code += " = " + exprStr(s.Valor)
	}
	return code
}

func functioStr(s *ast.StmtFunctio, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	if s.Publica {
		b.WriteString("publica ")
	}
	if s.Asynca {
		b.WriteString("asynca ")
	}
	b.WriteString("functio ")
	b.WriteString(s.Nomen)
	if len(s.Generics) > 0 {
		b.WriteString("<")
		b.WriteString(strings.Join(s.Generics, ", "))
		b.WriteString(">")
	}
	b.WriteString("(")
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = paramStr(p)
	}
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(")")
	if s.TypusReditus != nil {
		b.WriteString(" -> ")
		b.WriteString(typusStr(s.TypusReditus))
	}
	if s.Corpus != nil {
		b.WriteString(" ")
		b.WriteString(stmtStr(s.Corpus, indent))
	}
	return b.String()
}

func genusStr(s *ast.StmtGenus, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	if s.Publica {
		b.WriteString("publica ")
	}
	if s.Abstractus {
		b.WriteString("abstractus ")
	}
	b.WriteString("genus ")
	b.WriteString(s.Nomen)
	if len(s.Generics) > 0 {
		b.WriteString("<")
		b.WriteString(strings.Join(s.Generics, ", "))
		b.WriteString(">")
	}
	if len(s.Implet) > 0 {
		b.WriteString(" implet ")
		b.WriteString(strings.Join(s.Implet, ", "))
	}
	b.WriteString(" {\n")
	for _, c := range s.Campi {
		if c.Typus != nil {
			b.WriteString(indent + "\t" + typusStr(c.Typus) + " " + c.Nomen)
		} else {
			b.WriteString(indent + "\t" + c.Nomen)
		}
		if c.Valor != nil {
			b.WriteString(" = " + exprStr(c.Valor))
		}
		b.WriteString("\n")
	}
	for _, m := range s.Methodi {
		b.WriteString(stmtStr(m, indent+"\t"))
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func pactumStr(s *ast.StmtPactum, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	if s.Publica {
		b.WriteString("publica ")
	}
	b.WriteString("pactum ")
	b.WriteString(s.Nomen)
	if len(s.Generics) > 0 {
		b.WriteString("<")
		b.WriteString(strings.Join(s.Generics, ", "))
		b.WriteString(">")
	}
	b.WriteString(" {\n")
	for _, m := range s.Methodi {
		b.WriteString(indent + "\t")
		if m.Asynca {
			b.WriteString("asynca ")
		}
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = paramStr(p)
		}
		b.WriteString("functio " + m.Nomen + "(" + strings.Join(params, ", ") + ")")
		if m.TypusReditus != nil {
			b.WriteString(" -> " + typusStr(m.TypusReditus))
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func ordoStr(s *ast.StmtOrdo, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	if s.Publica {
		b.WriteString("publica ")
	}
	b.WriteString("ordo ")
	b.WriteString(s.Nomen)
	b.WriteString(" {\n")
	for _, m := range s.Membra {
		b.WriteString(indent + "\t" + m.Nomen)
		if m.Valor != nil {
			b.WriteString(" = " + *m.Valor)
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func discretioStr(s *ast.StmtDiscretio, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	if s.Publica {
		b.WriteString("publica ")
	}
	b.WriteString("discretio ")
	b.WriteString(s.Nomen)
	if len(s.Generics) > 0 {
		b.WriteString("<")
		b.WriteString(strings.Join(s.Generics, ", "))
		b.WriteString(">")
	}
	b.WriteString(" {\n")
	for _, v := range s.Variantes {
		b.WriteString(indent + "\t" + v.Nomen)
		if len(v.Campi) > 0 {
			fields := make([]string, len(v.Campi))
			for i, f := range v.Campi {
				fields[i] = typusStr(f.Typus) + " " + f.Nomen
			}
			b.WriteString(" { " + strings.Join(fields, ", ") + " }")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

// importaStr emits the import statement matching this module's own
// parser grammar (§ importa ex "path" spec) rather than the original
// Python emitter's incompatible visibility-prefixed shape — the original
// AST carried a publica flag the parser never actually produced, an
// inconsistency this port drops in favor of round-trip correctness.
func importaStr(s *ast.StmtImporta, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("§ importa ex \"" + s.Fons + "\" ")
	if s.Totum {
		b.WriteString("*")
		if s.Alias != nil {
			b.WriteString(" ut " + *s.Alias)
		}
		return b.String()
	}
	specs := make([]string, len(s.Specs))
	for i, sp := range s.Specs {
		if sp.Imported != sp.Local {
			specs[i] = sp.Imported + " ut " + sp.Local
		} else {
			specs[i] = sp.Imported
		}
	}
	b.WriteString(strings.Join(specs, ", "))
	return b.String()
}

func typusAliasStr(s *ast.StmtTypusAlias, indent string) string {
	code := indent
	if s.Publica {
		code += "publica "
	}
	return code + "typus " + s.Nomen + " = " + typusStr(s.Typus)
}

func reddeStr(s *ast.StmtRedde, indent string) string {
	if s.Valor == nil {
		return indent + "redde"
	}
	return indent + "redde " + exprStr(s.Valor)
}

func siStr(s *ast.StmtSi, indent string) string {
	code := indent + "si " + exprStr(s.Cond) + " " + stmtStr(s.Cons, indent)
	if s.Alt != nil {
		code += " secus " + stmtStr(s.Alt, indent)
	}
	return code
}

func dumStr(s *ast.StmtDum, indent string) string {
	return indent + "dum " + exprStr(s.Cond) + " " + stmtStr(s.Corpus, indent)
}

func facDumStr(s *ast.StmtFacDum, indent string) string {
	return indent + "fac " + stmtStr(s.Corpus, indent) + " dum " + exprStr(s.Cond)
}

// iteratioStr emits a for-loop with the 'itera' keyword the original
// emitter always prepends. The parser accepts both 'itera ex/de ...' and
// the bare 'ex/de ...' form (internal/parse's parseIteratio), so emitting
// the 'itera'-prefixed form round-trips correctly.
func iteratioStr(s *ast.StmtIteratio, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	if s.Asynca {
		b.WriteString("cede ")
	}
	switch s.Species {
	case ast.IterEx:
		b.WriteString("itera ex " + exprStr(s.Iter) + " fixum " + s.Binding + " " + stmtStr(s.Corpus, indent))
	default:
		b.WriteString("itera de " + exprStr(s.Iter) + " fixum " + s.Binding + " " + stmtStr(s.Corpus, indent))
	}
	return b.String()
}

func eligeStr(s *ast.StmtElige, indent string) string {
	var b strings.Builder
	b.WriteString(indent + "elige " + exprStr(s.Discrim) + " {\n")
	for _, c := range s.Casus {
		b.WriteString(indent + "\tcasu " + exprStr(c.Cond) + " " + stmtStr(c.Corpus, indent+"\t") + "\n")
	}
	if s.Default != nil {
		b.WriteString(indent + "\tceterum " + stmtStr(s.Default, indent+"\t") + "\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func discerneStr(s *ast.StmtDiscerne, indent string) string {
	discrim := make([]string, len(s.Discrim))
	for i, d := range s.Discrim {
		discrim[i] = exprStr(d)
	}
	var b strings.Builder
	b.WriteString(indent + "discerne " + strings.Join(discrim, ", ") + " {\n")
	for _, c := range s.Casus {
		var patterns []string
		for _, p := range c.Patterns {
			if p.Wildcard {
				patterns = append(patterns, "_")
				continue
			}
			pat := p.Variant
			if len(p.Bindings) > 0 {
				pat += " pro " + strings.Join(p.Bindings, ", ")
			}
			if p.Alias != nil {
				pat += " ut " + *p.Alias
			}
			patterns = append(patterns, pat)
		}
		b.WriteString(indent + "\tcasu " + strings.Join(patterns, ", ") + " " + stmtStr(c.Corpus, indent+"\t") + "\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func custodiStr(s *ast.StmtCustodi, indent string) string {
	lines := []string{indent + "custodi {"}
	for _, c := range s.Clausulae {
		lines = append(lines, indent+"\tsi "+exprStr(c.Cond)+" "+stmtStr(c.Corpus, indent+"\t"))
	}
	lines = append(lines, indent+"}")
	return strings.Join(lines, "\n")
}

func temptaStr(s *ast.StmtTempta, indent string) string {
	var b strings.Builder
	b.WriteString(indent + "tempta " + stmtStr(s.Corpus, indent))
	if s.Cape != nil {
		b.WriteString(" cape " + s.Cape.Param + " " + stmtStr(s.Cape.Corpus, indent))
	}
	if s.Demum != nil {
		b.WriteString(" demum " + stmtStr(s.Demum, indent))
	}
	return b.String()
}

func scribeStr(s *ast.StmtScribe, indent string) string {
	keyword := "scribe"
	switch s.Gradus {
	case ast.GradusVide:
		keyword = "vide"
	case ast.GradusMone:
		keyword = "mone"
	}
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = exprStr(a)
	}
	return indent + keyword + " " + strings.Join(args, ", ")
}

func incipitStr(s *ast.StmtIncipit, indent string) string {
	keyword := "incipit"
	if s.Asynca {
		keyword = "incipiet"
	}
	return indent + keyword + " " + stmtStr(s.Corpus, indent)
}

func probandumStr(s *ast.StmtProbandum, indent string) string {
	var b strings.Builder
	b.WriteString(indent + "probandum \"" + s.Nomen + "\" {\n")
	for _, stmt := range s.Corpus {
		b.WriteString(stmtStr(stmt, indent+"\t"))
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func probaStr(s *ast.StmtProba, indent string) string {
	return indent + "proba \"" + s.Nomen + "\" " + stmtStr(s.Corpus, indent)
}

func exprStr(e ast.Expr) string {
	if e == nil {
		return ""
	}

	switch ex := e.(type) {
	case *ast.ExprNomen:
		return ex.Valor
	case *ast.ExprEgo:
		return "ego"
	case *ast.ExprLittera:
		switch ex.Species {
		case ast.LitTextus:
			return `"` + escapeString(ex.Valor) + `"`
		case ast.LitVerum:
			return "verum"
		case ast.LitFalsum:
			return "falsum"
		case ast.LitNihil:
			return "nihil"
		default:
			return ex.Valor
		}
	case *ast.ExprBinaria:
		return exprStr(ex.Sin) + " " + ex.Signum + " " + exprStr(ex.Dex)
	case *ast.ExprUnaria:
		if ex.Signum == "nihil" || ex.Signum == "non" || ex.Signum == "nonnihil" {
			return ex.Signum + " " + exprStr(ex.Arg)
		}
		return ex.Signum + exprStr(ex.Arg)
	case *ast.ExprAssignatio:
		return exprStr(ex.Sin) + " " + ex.Signum + " " + exprStr(ex.Dex)
	case *ast.ExprVocatio:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = exprStr(a)
		}
		return exprStr(ex.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.ExprMembrum:
		obj := exprStr(ex.Obj)
		if ex.Computed {
			return obj + "[" + exprStr(ex.Prop) + "]"
		}
		prop := exprStr(ex.Prop)
		if lit, ok := ex.Prop.(*ast.ExprLittera); ok {
			prop = lit.Valor
		}
		if ex.NonNull {
			return obj + "!." + prop
		}
		return obj + "." + prop
	case *ast.ExprCondicio:
		// Round-trip fix: the parser only accepts sic/secus, not C-style
		// ?:, so the emitter must match (see package doc).
		return exprStr(ex.Cond) + " sic " + exprStr(ex.Cons) + " secus " + exprStr(ex.Alt)
	case *ast.ExprSeries:
		items := make([]string, len(ex.Elementa))
		for i, el := range ex.Elementa {
			items[i] = exprStr(el)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *ast.ExprObiectum:
		var pairs []string
		for _, p := range ex.Props {
			key := exprStr(p.Key)
			if lit, ok := p.Key.(*ast.ExprLittera); ok {
				key = lit.Valor
			}
			if p.Shorthand {
				pairs = append(pairs, key)
			} else {
				pairs = append(pairs, key+": "+exprStr(p.Valor))
			}
		}
		return "{ " + strings.Join(pairs, ", ") + " }"
	case *ast.ExprClausura:
		// Round-trip fix: parseClausura (internal/parse/parser.go) accepts
		// only the bare `clausura name[: Type], ... { block }` or
		// `clausura name[: Type], ... : expr` forms — never a `(params) =>`
		// arrow, which isn't even a lexable token (see package doc).
		params := make([]string, len(ex.Params))
		for i, p := range ex.Params {
			s := p.Nomen
			if p.Typus != nil {
				s += ": " + typusStr(p.Typus)
			}
			params[i] = s
		}
		head := "clausura"
		if len(params) > 0 {
			head += " " + strings.Join(params, ", ")
		}
		if ex.CorpusStmt != nil {
			return head + " " + stmtStr(ex.CorpusStmt, "")
		}
		return head + " : " + exprStr(ex.CorpusExpr)
	case *ast.ExprNovum:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = exprStr(a)
		}
		var code string
		if len(ex.Args) > 0 || ex.Init == nil {
			code = "novum " + exprStr(ex.Callee) + "(" + strings.Join(args, ", ") + ")"
		} else {
			code = "novum " + exprStr(ex.Callee)
		}
		if ex.Init != nil {
			code += " " + exprStr(ex.Init)
		}
		return code
	case *ast.ExprQua:
		return exprStr(ex.Expr) + " qua " + typusStr(ex.Typus)
	case *ast.ExprInnatum:
		// Round-trip fix: the parser treats innatum as infix (expr innatum
		// Type), so the emitter preserves the type instead of the
		// original's type-dropping prefix rendering (see package doc).
		return exprStr(ex.Expr) + " innatum " + typusStr(ex.Typus)
	case *ast.ExprCede:
		return "cede " + exprStr(ex.Arg)
	case *ast.ExprFinge:
		var pairs []string
		for _, p := range ex.Campi {
			if p.Shorthand {
				pairs = append(pairs, exprStr(p.Key))
			} else {
				pairs = append(pairs, exprStr(p.Key)+": "+exprStr(p.Valor))
			}
		}
		code := "finge " + ex.Variant + " { " + strings.Join(pairs, ", ") + " }"
		if ex.Typus != nil {
			code += " qua " + typusStr(ex.Typus)
		}
		return code
	case *ast.ExprScriptum:
		// Round-trip fix: preserve the full argument list, not just the
		// template (see package doc).
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = exprStr(a)
		}
		code := `scriptum("` + ex.Template + `"`
		if len(args) > 0 {
			code += ", " + strings.Join(args, ", ")
		}
		return code + ")"
	case *ast.ExprAmbitus:
		if ex.Inclusive {
			return exprStr(ex.Start) + " usque " + exprStr(ex.End)
		}
		return exprStr(ex.Start) + " ante " + exprStr(ex.End)
	case *ast.ExprPostfixNovum:
		return exprStr(ex.Expr) + " novum " + typusStr(ex.Typus)
	case *ast.ExprConversio:
		code := exprStr(ex.Expr) + " " + ex.Species
		if ex.Fallback != nil {
			code += " vel " + exprStr(ex.Fallback)
		}
		return code
	default:
		return "# unknown expr"
	}
}

func typusStr(t ast.Typus) string {
	if t == nil {
		return ""
	}
	switch tt := t.(type) {
	case *ast.TypusNomen:
		return tt.Nomen
	case *ast.TypusGenericus:
		args := make([]string, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = typusStr(a)
		}
		return tt.Nomen + "<" + strings.Join(args, ", ") + ">"
	case *ast.TypusFunctio:
		params := make([]string, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = typusStr(p)
		}
		return "(" + strings.Join(params, ", ") + ") -> " + typusStr(tt.Returns)
	case *ast.TypusNullabilis:
		return typusStr(tt.Inner) + "?"
	case *ast.TypusUnio:
		members := make([]string, len(tt.Members))
		for i, m := range tt.Members {
			members[i] = typusStr(m)
		}
		return strings.Join(members, " | ")
	case *ast.TypusLitteralis:
		return tt.Valor
	default:
		return "# unknown type"
	}
}

func paramStr(p ast.Param) string {
	var b strings.Builder
	if p.Rest {
		b.WriteString("...")
	}
	switch p.Ownership {
	case "ex", "de", "in":
		b.WriteString(p.Ownership + " ")
	}
	if p.Typus != nil {
		b.WriteString(typusStr(p.Typus) + " ")
	}
	b.WriteString(p.Nomen)
	if p.Default != nil {
		b.WriteString(" = " + exprStr(p.Default))
	}
	return b.String()
}

func escapeString(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
