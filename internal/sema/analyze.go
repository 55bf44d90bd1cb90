// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package sema

import "github.com/faberlang/faber/internal/ast"

// Analyze performs two-pass semantic analysis on a parsed module: pass one
// collects every top-level type/function declaration so forward references
// resolve regardless of declaration order, pass two walks every statement
// and expression, resolving and recording types and collecting diagnostics
// for undefined identifiers. Grounded in
// original_source/fons/nanus-py/semantic.py's analyze().
func Analyze(mod *ast.Modulus) *Context {
	ctx := NewContext()

	for _, stmt := range mod.Corpus {
		collectDeclaration(ctx, stmt)
	}

	for _, stmt := range mod.Corpus {
		analyzeStatement(ctx, stmt)
	}

	return ctx
}

func collectDeclaration(ctx *Context, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.StmtGenus:
		collectGenus(ctx, s)
	case *ast.StmtOrdo:
		collectOrdo(ctx, s)
	case *ast.StmtDiscretio:
		collectDiscretio(ctx, s)
	case *ast.StmtPactum:
		collectPactum(ctx, s)
	case *ast.StmtFunctio:
		collectFunctio(ctx, s)
	}
}

func collectGenus(ctx *Context, s *ast.StmtGenus) {
	genus := &Genus{Nomen: s.Nomen, Agri: make(map[string]SemType), Methodi: make(map[string]*Functio)}

	for _, campus := range s.Campi {
		if campus.Typus != nil {
			genus.Agri[campus.Nomen] = resolveTypusAnnotatio(ctx, campus.Typus)
		} else {
			genus.Agri[campus.Nomen] = IgnotumT
		}
	}

	for _, method := range s.Methodi {
		if fn, ok := method.(*ast.StmtFunctio); ok {
			genus.Methodi[fn.Nomen] = resolveFunctioTypus(ctx, fn)
		}
	}

	ctx.GenusRegistry[s.Nomen] = genus
	ctx.RegisterTypus(s.Nomen, genus)
	ctx.Definie(&Symbolum{Nomen: s.Nomen, Typus: genus, Species: GenusSym, Locus: s.Locus(), Node: s})
}

func collectOrdo(ctx *Context, s *ast.StmtOrdo) {
	ordo := &Ordo{Nomen: s.Nomen, Membra: make(map[string]int)}
	for i, m := range s.Membra {
		ordo.Membra[m.Nomen] = i
	}
	ctx.OrdoRegistry[s.Nomen] = ordo
	ctx.RegisterTypus(s.Nomen, ordo)
	ctx.Definie(&Symbolum{Nomen: s.Nomen, Typus: ordo, Species: OrdoSym, Locus: s.Locus(), Node: s})
}

func collectDiscretio(ctx *Context, s *ast.StmtDiscretio) {
	disc := &Discretio{Nomen: s.Nomen, Variantes: make(map[string]*Genus)}

	for _, v := range s.Variantes {
		variant := &Genus{Nomen: v.Nomen, Agri: make(map[string]SemType)}
		for _, f := range v.Campi {
			if f.Typus != nil {
				variant.Agri[f.Nomen] = resolveTypusAnnotatio(ctx, f.Typus)
			} else {
				variant.Agri[f.Nomen] = IgnotumT
			}
		}
		disc.Variantes[v.Nomen] = variant
		ctx.Definie(&Symbolum{Nomen: v.Nomen, Typus: variant, Species: VariansSym, Locus: v.At})
	}

	ctx.DiscRegistry[s.Nomen] = disc
	ctx.RegisterTypus(s.Nomen, disc)
	ctx.Definie(&Symbolum{Nomen: s.Nomen, Typus: disc, Species: DiscretioSym, Locus: s.Locus(), Node: s})
}

func collectPactum(ctx *Context, s *ast.StmtPactum) {
	pactum := &Pactum{Nomen: s.Nomen, Methodi: make(map[string]*Functio)}
	for _, m := range s.Methodi {
		pactum.Methodi[m.Nomen] = resolvePactumMethodTypus(ctx, m)
	}
	ctx.RegisterTypus(s.Nomen, pactum)
	ctx.Definie(&Symbolum{Nomen: s.Nomen, Typus: pactum, Species: PactumSym, Locus: s.Locus(), Node: s})
}

func collectFunctio(ctx *Context, s *ast.StmtFunctio) {
	if s.Externa {
		return
	}
	ft := resolveFunctioTypus(ctx, s)
	ctx.Definie(&Symbolum{Nomen: s.Nomen, Typus: ft, Species: FunctioSym, Locus: s.Locus(), Node: s})
}

func resolveFunctioTypus(ctx *Context, s *ast.StmtFunctio) *Functio {
	params := make([]SemType, len(s.Params))
	for i, p := range s.Params {
		if p.Typus != nil {
			params[i] = resolveTypusAnnotatio(ctx, p.Typus)
		} else {
			params[i] = IgnotumT
		}
	}
	var reditus SemType
	if s.TypusReditus != nil {
		reditus = resolveTypusAnnotatio(ctx, s.TypusReditus)
	}
	return &Functio{Params: params, Reditus: reditus}
}

func resolvePactumMethodTypus(ctx *Context, m ast.PactumMethodus) *Functio {
	params := make([]SemType, len(m.Params))
	for i, p := range m.Params {
		if p.Typus != nil {
			params[i] = resolveTypusAnnotatio(ctx, p.Typus)
		} else {
			params[i] = IgnotumT
		}
	}
	var reditus SemType
	if m.TypusReditus != nil {
		reditus = resolveTypusAnnotatio(ctx, m.TypusReditus)
	}
	return &Functio{Params: params, Reditus: reditus}
}

// resolveTypusAnnotatio converts an ast.Typus surface annotation into its
// resolved SemType.
func resolveTypusAnnotatio(ctx *Context, typus ast.Typus) SemType {
	if typus == nil {
		return IgnotumT
	}

	switch t := typus.(type) {
	case *ast.TypusNomen:
		return ctx.ResolveTypusNomen(t.Nomen)

	case *ast.TypusNullabilis:
		return Nullabilis(resolveTypusAnnotatio(ctx, t.Inner))

	case *ast.TypusGenericus:
		switch t.Nomen {
		case "lista":
			elem := SemType(IgnotumT)
			if len(t.Args) > 0 {
				elem = resolveTypusAnnotatio(ctx, t.Args[0])
			}
			return &Lista{Elementum: elem}
		case "tabula":
			clavis := SemType(Textus)
			valor := SemType(IgnotumT)
			if len(t.Args) > 0 {
				clavis = resolveTypusAnnotatio(ctx, t.Args[0])
			}
			if len(t.Args) > 1 {
				valor = resolveTypusAnnotatio(ctx, t.Args[1])
			}
			return &Tabula{Clavis: clavis, Valor: valor}
		case "copia", "collectio":
			elem := SemType(IgnotumT)
			if len(t.Args) > 0 {
				elem = resolveTypusAnnotatio(ctx, t.Args[0])
			}
			return &Copia{Elementum: elem}
		default:
			return &Usitatum{Nomen: t.Nomen}
		}

	case *ast.TypusFunctio:
		params := make([]SemType, len(t.Params))
		for i, p := range t.Params {
			params[i] = resolveTypusAnnotatio(ctx, p)
		}
		var reditus SemType
		if t.Returns != nil {
			reditus = resolveTypusAnnotatio(ctx, t.Returns)
		}
		return &Functio{Params: params, Reditus: reditus}

	case *ast.TypusUnio:
		membra := make([]SemType, len(t.Members))
		for i, m := range t.Members {
			membra[i] = resolveTypusAnnotatio(ctx, m)
		}
		return &Unio{Membra: membra}

	case *ast.TypusLitteralis:
		return Textus

	default:
		return IgnotumT
	}
}

func analyzeStatement(ctx *Context, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.StmtMassa:
		ctx.IntraScopum(MassaScope, "")
		for _, inner := range s.Corpus {
			analyzeStatement(ctx, inner)
		}
		ctx.ExiScopum()

	case *ast.StmtVaria:
		analyzeVaria(ctx, s)

	case *ast.StmtFunctio:
		analyzeFunctio(ctx, s)

	case *ast.StmtGenus:
		analyzeGenus(ctx, s)

	case *ast.StmtSi:
		analyzeExpression(ctx, s.Cond)
		analyzeStatement(ctx, s.Cons)
		if s.Alt != nil {
			analyzeStatement(ctx, s.Alt)
		}

	case *ast.StmtDum:
		analyzeExpression(ctx, s.Cond)
		analyzeStatement(ctx, s.Corpus)

	case *ast.StmtFacDum:
		analyzeStatement(ctx, s.Corpus)
		analyzeExpression(ctx, s.Cond)

	case *ast.StmtIteratio:
		analyzeExpression(ctx, s.Iter)
		ctx.IntraScopum(MassaScope, "")
		iterType := ctx.GetExprType(s.Iter)
		elemType := SemType(IgnotumT)
		if lista, ok := iterType.(*Lista); ok {
			elemType = lista.Elementum
		}
		ctx.Definie(&Symbolum{Nomen: s.Binding, Typus: elemType, Species: Variabilis})
		analyzeStatement(ctx, s.Corpus)
		ctx.ExiScopum()

	case *ast.StmtElige:
		analyzeExpression(ctx, s.Discrim)
		for _, c := range s.Casus {
			analyzeExpression(ctx, c.Cond)
			analyzeStatement(ctx, c.Corpus)
		}
		if s.Default != nil {
			analyzeStatement(ctx, s.Default)
		}

	case *ast.StmtDiscerne:
		for _, d := range s.Discrim {
			analyzeExpression(ctx, d)
		}
		for _, c := range s.Casus {
			ctx.IntraScopum(MassaScope, "")
			for _, p := range c.Patterns {
				analyzePattern(ctx, p, s.Discrim)
			}
			analyzeStatement(ctx, c.Corpus)
			ctx.ExiScopum()
		}

	case *ast.StmtRedde:
		if s.Valor != nil {
			analyzeExpression(ctx, s.Valor)
		}

	case *ast.StmtExpressia:
		analyzeExpression(ctx, s.Expr)

	case *ast.StmtScribe:
		for _, arg := range s.Args {
			analyzeExpression(ctx, arg)
		}

	case *ast.StmtAdfirma:
		analyzeExpression(ctx, s.Cond)
		if s.Msg != nil {
			analyzeExpression(ctx, s.Msg)
		}

	case *ast.StmtIace:
		if s.Arg != nil {
			analyzeExpression(ctx, s.Arg)
		}

	case *ast.StmtCustodi:
		for _, c := range s.Clausulae {
			analyzeExpression(ctx, c.Cond)
			analyzeStatement(ctx, c.Corpus)
		}

	case *ast.StmtIncipit:
		analyzeStatement(ctx, s.Corpus)

	case *ast.StmtTempta:
		analyzeStatement(ctx, s.Corpus)
		if s.Cape != nil {
			analyzeStatement(ctx, s.Cape.Corpus)
		}
		if s.Demum != nil {
			analyzeStatement(ctx, s.Demum)
		}

	case *ast.StmtTypusAlias:
		target := resolveTypusAnnotatio(ctx, s.Typus)
		ctx.RegisterTypus(s.Nomen, target)
		ctx.Definie(&Symbolum{Nomen: s.Nomen, Typus: target, Species: TypusSym, Locus: s.Locus(), Node: s})

	case *ast.StmtIn:
		analyzeExpression(ctx, s.Expr)
		analyzeStatement(ctx, s.Corpus)
	}
}

func analyzeVaria(ctx *Context, s *ast.StmtVaria) {
	if s.Externa {
		return
	}

	varType := SemType(IgnotumT)

	if s.Typus != nil {
		varType = resolveTypusAnnotatio(ctx, s.Typus)
	}

	if s.Valor != nil {
		analyzeExpression(ctx, s.Valor)
		initType := ctx.GetExprType(s.Valor)
		if s.Typus == nil {
			varType = initType
		}
	}

	ctx.Definie(&Symbolum{
		Nomen: s.Nomen, Typus: varType, Species: Variabilis,
		Mutabilis: s.Species == ast.Varia, Locus: s.Locus(), Node: s,
	})
}

func analyzeFunctio(ctx *Context, s *ast.StmtFunctio) {
	if s.Externa || s.Corpus == nil {
		return
	}

	ctx.IntraScopum(FunctioScope, s.Nomen)

	for _, p := range s.Params {
		paramType := SemType(IgnotumT)
		if p.Typus != nil {
			paramType = resolveTypusAnnotatio(ctx, p.Typus)
		}
		ctx.Definie(&Symbolum{Nomen: p.Nomen, Typus: paramType, Species: Parametrum})
	}

	analyzeStatement(ctx, s.Corpus)

	ctx.ExiScopum()
}

func analyzeGenus(ctx *Context, s *ast.StmtGenus) {
	for _, method := range s.Methodi {
		fn, ok := method.(*ast.StmtFunctio)
		if !ok {
			continue
		}
		ctx.IntraScopum(GenusScope, s.Nomen)
		genus := ctx.GenusRegistry[s.Nomen]
		var egoType SemType
		if genus != nil {
			egoType = genus
		}
		ctx.Definie(&Symbolum{Nomen: "ego", Typus: egoType, Species: Variabilis})
		analyzeFunctio(ctx, fn)
		ctx.ExiScopum()
	}
}

func analyzePattern(ctx *Context, p ast.VariansPattern, discrim []ast.Expr) {
	if p.Wildcard {
		return
	}

	if len(discrim) > 0 {
		discrimType := ctx.GetExprType(discrim[0])
		if disc, ok := discrimType.(*Discretio); ok {
			if variant, ok := disc.Variantes[p.Variant]; ok {
				for _, b := range p.Bindings {
					fieldType := SemType(IgnotumT)
					if t, ok := variant.Agri[b]; ok {
						fieldType = t
					}
					ctx.Definie(&Symbolum{Nomen: b, Typus: fieldType, Species: Variabilis})
				}
			}
		}
	}

	if p.Alias != nil {
		ctx.Definie(&Symbolum{Nomen: *p.Alias, Typus: IgnotumT, Species: Variabilis})
	}
}

func analyzeExpression(ctx *Context, expr ast.Expr) SemType {
	if expr == nil {
		return IgnotumT
	}

	var result SemType

	switch e := expr.(type) {
	case *ast.ExprLittera:
		result = analyzeLittera(e)

	case *ast.ExprNomen:
		result = analyzeNomen(ctx, e)

	case *ast.ExprEgo:
		sym := ctx.Quaere("ego")
		if sym != nil {
			result = sym.Typus
		} else {
			result = IgnotumT
		}

	case *ast.ExprBinaria:
		result = analyzeBinaria(ctx, e)

	case *ast.ExprUnaria:
		result = analyzeUnaria(ctx, e)

	case *ast.ExprAssignatio:
		analyzeExpression(ctx, e.Sin)
		analyzeExpression(ctx, e.Dex)
		result = ctx.GetExprType(e.Sin)

	case *ast.ExprCondicio:
		analyzeExpression(ctx, e.Cond)
		consType := analyzeExpression(ctx, e.Cons)
		analyzeExpression(ctx, e.Alt)
		result = consType

	case *ast.ExprVocatio:
		result = analyzeVocatio(ctx, e)

	case *ast.ExprMembrum:
		result = analyzeMembrum(ctx, e)

	case *ast.ExprSeries:
		result = analyzeSeries(ctx, e)

	case *ast.ExprObiectum:
		result = analyzeObiectum(ctx, e)

	case *ast.ExprClausura:
		result = analyzeClausura(ctx, e)

	case *ast.ExprNovum:
		result = analyzeNovum(ctx, e)

	case *ast.ExprFinge:
		result = analyzeFinge(ctx, e)

	case *ast.ExprCede:
		result = analyzeExpression(ctx, e.Arg)

	case *ast.ExprQua:
		result = resolveTypusAnnotatio(ctx, e.Typus)

	case *ast.ExprInnatum:
		result = resolveTypusAnnotatio(ctx, e.Typus)

	case *ast.ExprPostfixNovum:
		result = resolveTypusAnnotatio(ctx, e.Typus)

	case *ast.ExprScriptum:
		for _, arg := range e.Args {
			analyzeExpression(ctx, arg)
		}
		result = Textus

	case *ast.ExprAmbitus:
		analyzeExpression(ctx, e.Start)
		analyzeExpression(ctx, e.End)
		result = &Lista{Elementum: Numerus}

	case *ast.ExprConversio:
		analyzeExpression(ctx, e.Expr)
		if e.Fallback != nil {
			analyzeExpression(ctx, e.Fallback)
		}
		switch e.Species {
		case "numeratum":
			result = Numerus
		case "fractatum":
			result = Fractus
		case "textatum":
			result = Textus
		case "bivalentum":
			result = Bivalens
		default:
			result = IgnotumT
		}

	default:
		result = IgnotumT
	}

	ctx.SetExprType(expr, result)
	return result
}

func analyzeLittera(e *ast.ExprLittera) SemType {
	switch e.Species {
	case ast.LitTextus:
		return Textus
	case ast.LitNumerus:
		return Numerus
	case ast.LitFractus:
		return Fractus
	case ast.LitVerum, ast.LitFalsum:
		return Bivalens
	case ast.LitNihil:
		return Nihil
	default:
		return IgnotumT
	}
}

func analyzeNomen(ctx *Context, e *ast.ExprNomen) SemType {
	if sym := ctx.Quaere(e.Valor); sym != nil {
		return sym.Typus
	}

	t := ctx.ResolveTypusNomen(e.Valor)
	if _, unresolved := t.(*Usitatum); t != nil && !unresolved {
		return t
	}

	ctx.Error("undefined identifier: "+e.Valor, e.Locus())
	return IgnotumT
}

func analyzeBinaria(ctx *Context, e *ast.ExprBinaria) SemType {
	leftType := analyzeExpression(ctx, e.Sin)
	rightType := analyzeExpression(ctx, e.Dex)

	switch e.Signum {
	case "+", "-", "*", "/", "%":
		if isNumeric(leftType) && isNumeric(rightType) {
			if isFractus(leftType) || isFractus(rightType) {
				return Fractus
			}
			return Numerus
		}
		if e.Signum == "+" && isTextus(leftType) {
			return Textus
		}
		return IgnotumT
	case "==", "!=", "<", ">", "<=", ">=":
		return Bivalens
	case "et", "aut", "&&", "||":
		return Bivalens
	case "vel":
		return leftType
	default:
		return IgnotumT
	}
}

func analyzeUnaria(ctx *Context, e *ast.ExprUnaria) SemType {
	argType := analyzeExpression(ctx, e.Arg)

	switch e.Signum {
	case "non", "!":
		return Bivalens
	case "nihil", "nonnihil", "nulla", "nonnulla":
		return Bivalens
	default:
		return argType
	}
}

func analyzeVocatio(ctx *Context, e *ast.ExprVocatio) SemType {
	for _, arg := range e.Args {
		analyzeExpression(ctx, arg)
	}

	calleeType := analyzeExpression(ctx, e.Callee)

	if fn, ok := calleeType.(*Functio); ok {
		if fn.Reditus != nil {
			return fn.Reditus
		}
		return Vacuum
	}

	if membrum, ok := e.Callee.(*ast.ExprMembrum); ok {
		objType := ctx.GetExprType(membrum.Obj)
		if genus, ok := objType.(*Genus); ok {
			if lit, ok := membrum.Prop.(*ast.ExprLittera); ok {
				if method, ok := genus.Methodi[lit.Valor]; ok {
					if method.Reditus != nil {
						return method.Reditus
					}
					return Vacuum
				}
			}
		}
	}

	if nomen, ok := e.Callee.(*ast.ExprNomen); ok {
		if genus, ok := ctx.GenusRegistry[nomen.Valor]; ok {
			return genus
		}
	}

	return IgnotumT
}

func analyzeMembrum(ctx *Context, e *ast.ExprMembrum) SemType {
	objType := analyzeExpression(ctx, e.Obj)

	if e.Computed {
		analyzeExpression(ctx, e.Prop)
		switch t := objType.(type) {
		case *Lista:
			return t.Elementum
		case *Tabula:
			return t.Valor
		case *Copia:
			return Bivalens
		default:
			return IgnotumT
		}
	}

	lit, ok := e.Prop.(*ast.ExprLittera)
	if !ok {
		return IgnotumT
	}
	propName := lit.Valor

	if propName == "longitudo" {
		switch objType.(type) {
		case *Lista, *Tabula, *Copia:
			return Numerus
		}
		if isTextus(objType) {
			return Numerus
		}
	}

	if propName == "primus" || propName == "ultimus" {
		if lista, ok := objType.(*Lista); ok {
			return lista.Elementum
		}
	}

	if genus, ok := objType.(*Genus); ok {
		if t, ok := genus.Agri[propName]; ok {
			return t
		}
		if t, ok := genus.Methodi[propName]; ok {
			return t
		}
	}

	if usitatum, ok := objType.(*Usitatum); ok {
		if genus, ok := ctx.GenusRegistry[usitatum.Nomen]; ok {
			if t, ok := genus.Agri[propName]; ok {
				return t
			}
			if t, ok := genus.Methodi[propName]; ok {
				return t
			}
		}
	}

	if ordo, ok := objType.(*Ordo); ok {
		if _, ok := ordo.Membra[propName]; ok {
			return ordo
		}
	}

	if disc, ok := objType.(*Discretio); ok {
		if t, ok := disc.Variantes[propName]; ok {
			return t
		}
	}

	return IgnotumT
}

func analyzeSeries(ctx *Context, e *ast.ExprSeries) SemType {
	elemType := SemType(IgnotumT)
	for i, elem := range e.Elementa {
		t := analyzeExpression(ctx, elem)
		if i == 0 {
			elemType = t
		}
	}
	return &Lista{Elementum: elemType}
}

func analyzeObiectum(ctx *Context, e *ast.ExprObiectum) SemType {
	fields := make(map[string]SemType)
	for _, p := range e.Props {
		valueType := analyzeExpression(ctx, p.Valor)
		if lit, ok := p.Key.(*ast.ExprLittera); ok {
			fields[lit.Valor] = valueType
		}
	}
	return &Genus{Nomen: "", Agri: fields}
}

func analyzeClausura(ctx *Context, e *ast.ExprClausura) SemType {
	params := make([]SemType, len(e.Params))

	ctx.IntraScopum(FunctioScope, "")

	for i, p := range e.Params {
		paramType := SemType(IgnotumT)
		if p.Typus != nil {
			paramType = resolveTypusAnnotatio(ctx, p.Typus)
		}
		params[i] = paramType
		ctx.Definie(&Symbolum{Nomen: p.Nomen, Typus: paramType, Species: Parametrum})
	}

	var reditus SemType
	if e.CorpusStmt != nil {
		analyzeStatement(ctx, e.CorpusStmt)
	} else if e.CorpusExpr != nil {
		reditus = analyzeExpression(ctx, e.CorpusExpr)
	}

	ctx.ExiScopum()

	return &Functio{Params: params, Reditus: reditus}
}

func analyzeNovum(ctx *Context, e *ast.ExprNovum) SemType {
	for _, arg := range e.Args {
		analyzeExpression(ctx, arg)
	}
	if e.Init != nil {
		analyzeExpression(ctx, e.Init)
	}

	if nomen, ok := e.Callee.(*ast.ExprNomen); ok {
		if genus, ok := ctx.GenusRegistry[nomen.Valor]; ok {
			return genus
		}
		if sym := ctx.Quaere(nomen.Valor); sym != nil && sym.Species == VariansSym {
			return sym.Typus
		}
		return &Usitatum{Nomen: nomen.Valor}
	}

	return IgnotumT
}

func analyzeFinge(ctx *Context, e *ast.ExprFinge) SemType {
	for _, p := range e.Campi {
		analyzeExpression(ctx, p.Valor)
	}

	if sym := ctx.Quaere(e.Variant); sym != nil && sym.Species == VariansSym {
		return sym.Typus
	}

	for _, disc := range ctx.DiscRegistry {
		if t, ok := disc.Variantes[e.Variant]; ok {
			return t
		}
	}

	return &Usitatum{Nomen: e.Variant}
}
